package repositories

import (
	"context"

	"lendledger/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormLoanRepository handles loan data access
type GormLoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

// Create creates a new loan
func (r *GormLoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID
func (r *GormLoanRepository) GetByID(ctx context.Context, loanID string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// GetByCustomerID gets all loans of a customer, oldest first. The order is
// stable so overview assembly can rely on it.
func (r *GormLoanRepository) GetByCustomerID(ctx context.Context, customerID string) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC, loan_id ASC").
		Find(&loans).Error
	return loans, err
}

// ListByStatus lists loans by status (used by the reconciliation job)
func (r *GormLoanRepository) ListByStatus(ctx context.Context, status string) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&loans).Error
	return loans, err
}
