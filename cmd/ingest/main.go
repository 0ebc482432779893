package main

import (
	"context"
	"flag"
	"log"

	"loan-agent-be/internal/bootstrap"
	"loan-agent-be/internal/config"
	"loan-agent-be/pkg/database"
)

// Indexes the loan guide into the vector store. Run after cmd/migrate
// and whenever the guide document changes.
func main() {
	cfg := config.Load()
	guidePath := flag.String("guide", cfg.Loan.GuidePath, "path to the loan guide document")
	flag.Parse()

	gormDB, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	count, err := container.IngestService.Reindex(context.Background(), *guidePath)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	log.Printf("✅ Indexed %d chunks from %s", count, *guidePath)
}
