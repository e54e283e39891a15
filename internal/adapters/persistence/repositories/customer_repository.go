package repositories

import (
	"context"

	"lendledger/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormCustomerRepository handles customer data access
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Create creates a new customer
func (r *GormCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID gets a customer by ID
func (r *GormCustomerRepository) GetByID(ctx context.Context, customerID string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Exists checks whether a customer exists
func (r *GormCustomerRepository) Exists(ctx context.Context, customerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count > 0, err
}
