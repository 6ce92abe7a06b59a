package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	DatabaseDSN  string
	HTTPPort     string
	PharmacyName string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		path := os.Getenv("DATABASE_PATH")
		if path == "" {
			path = "shafaf.db"
		}
		dsn = path + "?_pragma=foreign_keys(ON)"
	}

	name := os.Getenv("PHARMACY_NAME")
	if name == "" {
		name = "Shafaf Pharmacy"
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	return Config{DatabaseDSN: dsn, HTTPPort: port, PharmacyName: name}
}
