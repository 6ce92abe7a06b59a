package seed

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sulaimanQasimi/shafaf-sub000/domain"
)

// LoadCatalog ingests the unit and product CSVs, ignoring duplicates so the
// seed is safe to run on every start. Units load first because products
// reference them by name.
func LoadCatalog(db *sqlx.DB, unitsPath, productsPath string) {
	loadUnits(db, unitsPath)
	loadProducts(db, productsPath)
}

func loadUnits(db *sqlx.DB, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load unit catalog %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read unit header: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start unit transaction: %v", err)
		return
	}
	stmt, err := tx.Preparex(`INSERT OR IGNORE INTO units (name) VALUES (?)`)
	if err != nil {
		log.Printf("unable to prepare unit insert: %v", err)
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read unit row: %v", err)
			continue
		}
		if len(record) < 1 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		if _, err := stmt.Exec(name); err != nil {
			log.Printf("unable to insert unit %s: %v", name, err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit unit seed: %v", err)
	} else {
		log.Printf("seeded unit catalog with %d rows", rows)
	}
}

func loadProducts(db *sqlx.DB, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("unable to load product catalog %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	unitIDs := unitIDsByName(db)

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read product header: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start product transaction: %v", err)
		return
	}
	stmt, err := tx.Preparex(`INSERT OR IGNORE INTO products (name, barcode, price, unit_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		log.Printf("unable to prepare product insert: %v", err)
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read product row: %v", err)
			continue
		}
		if len(record) < 4 {
			continue
		}
		name := strings.TrimSpace(record[0])
		barcode := strings.TrimSpace(record[1])
		if name == "" {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			log.Printf("unable to parse price for product %s: %v", name, err)
			continue
		}

		var unitID any
		if id, ok := unitIDs[strings.TrimSpace(record[3])]; ok {
			unitID = id
		}

		if _, err := stmt.Exec(name, barcode, price, unitID); err != nil {
			log.Printf("unable to insert product %s: %v", name, err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit product seed: %v", err)
	} else {
		log.Printf("seeded product catalog with %d rows", rows)
	}
}

func unitIDsByName(db *sqlx.DB) map[string]int64 {
	var units []domain.Unit
	if err := db.Select(&units, `SELECT id, name FROM units`); err != nil {
		log.Printf("unable to load units for product seed: %v", err)
		return nil
	}
	ids := make(map[string]int64, len(units))
	for _, unit := range units {
		ids[unit.Name] = unit.ID
	}
	return ids
}
