package main

import (
	"log"

	"github.com/meetinglabs/meeting-summarizer/internal/infrastructure/database"
	"github.com/meetinglabs/meeting-summarizer/pkg/config"
)

// Standalone schema migration, for preparing a database file without
// starting the server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewSQLiteDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Printf("🔄 Migrating schema in %s ...", cfg.Database.Path)
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	log.Println("✅ Schema is up to date")
}
