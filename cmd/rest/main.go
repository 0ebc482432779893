package main

import (
	"context"
	"log"

	"loan-agent-be/internal/bootstrap"
	"loan-agent-be/internal/config"
	"loan-agent-be/internal/server"
	"loan-agent-be/internal/tracer"
	"loan-agent-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.Init()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
