package database

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Connect opens the local SQLite store using the provided DSN.
func Connect(dsn string) *sqlx.DB {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	// Single connection: one writer, and the back office is single-user.
	db.SetMaxOpenConns(1)
	return db
}
