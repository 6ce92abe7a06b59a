package main

//go:generate swag init

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	_ "github.com/sulaimanQasimi/shafaf-sub000/docs"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/api"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/config"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/database"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/invoice"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/migrations"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/seed"
	"github.com/sulaimanQasimi/shafaf-sub000/internal/store"
)

// @title           Shafaf Pharmacy API
// @version         1.0.0
// @description     Back-office API for pharmacy sales, purchases, payments and printable invoices.
// @host            localhost:8080
// @BasePath        /

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.LoadCatalog(db, "assets/units.csv", "assets/products.csv")

	handler := api.New(store.New(db), invoice.NewRenderer(), cfg.PharmacyName)

	log.Printf("%s server starting on :%s", cfg.PharmacyName, cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
