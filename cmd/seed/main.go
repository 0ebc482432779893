package main

import (
	"context"
	"log"
	"time"

	"loan-agent-be/internal/config"
	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/specification"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/database"
)

type seedCustomer struct {
	customer entity.Customer
	govID    entity.GovernmentID
}

// Seeds a couple of known customers with verified IDs so the existing-
// customer flow can be exercised locally.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	seeds := []seedCustomer{
		{
			customer: entity.Customer{
				FullName:    "Alice Smith",
				Email:       "alice@example.com",
				PhoneNumber: "9876543210",
				CreditScore: 780,
			},
			govID: entity.GovernmentID{IdType: "PAN", IdNumber: "P987654321"},
		},
		{
			customer: entity.Customer{
				FullName:    "Rahul Verma",
				Email:       "rahul@example.com",
				PhoneNumber: "9123456780",
				CreditScore: 710,
			},
			govID: entity.GovernmentID{IdType: "Aadhar", IdNumber: "123412341234"},
		},
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	uow := uowFactory.NewUnitOfWork(ctx)

	for _, seed := range seeds {
		existing, err := uow.CustomerRepository().FindOne(ctx, specification.ByEmailFold{Email: seed.customer.Email})
		if err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
		if existing != nil {
			log.Printf("Skipping %s (already present)", seed.customer.Email)
			continue
		}

		if err := uow.Begin(ctx); err != nil {
			log.Fatalf("Begin failed: %v", err)
		}

		customer := seed.customer
		customer.CreatedAt = time.Now()
		if err := uow.CustomerRepository().Create(ctx, &customer); err != nil {
			uow.Rollback()
			log.Fatalf("Seed customer failed: %v", err)
		}

		govID := seed.govID
		govID.CustomerId = customer.Id
		govID.CreatedAt = time.Now()
		if err := uow.GovernmentIDRepository().CreateIfAbsent(ctx, &govID); err != nil {
			uow.Rollback()
			log.Fatalf("Seed government ID failed: %v", err)
		}

		if err := uow.Commit(); err != nil {
			log.Fatalf("Commit failed: %v", err)
		}
		log.Printf("Seeded %s (customer %d)", customer.Email, customer.Id)
	}

	log.Println("✅ Seeding complete")
}
