package main

import (
	"log"

	"loan-agent-be/internal/config"
	"loan-agent-be/internal/model"
	"loan-agent-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	// guide_chunks needs pgvector before AutoMigrate can create the column.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Fatalf("Failed to create vector extension: %v", err)
	}

	err = db.AutoMigrate(
		&model.Customer{},
		&model.GovernmentID{},
		&model.LoanApplication{},
		&model.AuditEvent{},
		&model.GuideChunk{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("✅ Migration complete")
}
