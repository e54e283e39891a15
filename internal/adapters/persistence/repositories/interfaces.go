package repositories

import (
	"context"

	"lendledger/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
)

// CustomerRepository defines customer repository interface.
// Customers are read-only from the engine's point of view; Create exists
// for the dev seeder and tests.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, customerID string) (*models.Customer, error)
	Exists(ctx context.Context, customerID string) (bool, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, loanID string) (*models.Loan, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]*models.Loan, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Loan, error)
}

// PaymentRepository defines payment repository interface
type PaymentRepository interface {
	// Record inserts the payment and returns the total paid for the loan,
	// both inside a single storage transaction.
	Record(ctx context.Context, payment *models.Payment) (decimal.Decimal, error)

	// SnapshotByLoanID returns the ordered payment list and the paid sum
	// from the same read transaction, so both halves of a ledger view are
	// mutually consistent.
	SnapshotByLoanID(ctx context.Context, loanID string) ([]*models.Payment, decimal.Decimal, error)

	SumByLoanID(ctx context.Context, loanID string) (decimal.Decimal, error)
}
