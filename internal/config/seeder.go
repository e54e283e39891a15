package config

import (
	"context"
	"log"

	"lendledger/internal/adapters/persistence/models"
	"lendledger/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	customers repositories.CustomerRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{customers: repositories.NewCustomerRepository(db)}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedDemoCustomers(); err != nil {
		log.Printf("⚠️ Customer seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedDemoCustomers seeds demo customers.
// Customers are normally created by the back office; this stands in for
// that external actor in development so loans have someone to belong to.
// Fixed ids keep reruns idempotent.
func (s *Seeder) seedDemoCustomers() error {
	ctx := context.Background()
	demo := []models.Customer{
		{CustomerID: "cust-demo-0001", Name: "Asha Rao"},
		{CustomerID: "cust-demo-0002", Name: "Daniel Okafor"},
		{CustomerID: "cust-demo-0003", Name: "Mei Lin"},
	}

	for i := range demo {
		customer := demo[i]
		exists, err := s.customers.Exists(ctx, customer.CustomerID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.customers.Create(ctx, &customer); err != nil {
			return err
		}
		log.Printf("🌱 Seeded customer %s (%s)", customer.Name, customer.CustomerID)
	}

	return nil
}
