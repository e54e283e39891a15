package repositories

import (
	"context"

	"lendledger/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository handles payment data access
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Record inserts the payment and recomputes the loan's paid sum in one
// transaction. The sum is a fresh full aggregate, not an incremental
// counter, so concurrent writers cannot drift it; the returned total
// includes this payment plus whatever else has committed.
func (r *GormPaymentRepository) Record(ctx context.Context, payment *models.Payment) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		var sumErr error
		total, sumErr = sumByLoanID(tx, payment.LoanID)
		return sumErr
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SnapshotByLoanID reads the ordered payment list and the paid sum inside
// one transaction. Ordering is payment_date ascending with payment_id as
// the tie-break; payment ids are time-ordered UUIDs, so the tie-break
// matches insertion order.
func (r *GormPaymentRepository) SnapshotByLoanID(ctx context.Context, loanID string) ([]*models.Payment, decimal.Decimal, error) {
	var payments []*models.Payment
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("loan_id = ?", loanID).
			Order("payment_date ASC, payment_id ASC").
			Find(&payments).Error; err != nil {
			return err
		}
		var sumErr error
		total, sumErr = sumByLoanID(tx, loanID)
		return sumErr
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return payments, total, nil
}

// SumByLoanID returns the paid sum for a loan
func (r *GormPaymentRepository) SumByLoanID(ctx context.Context, loanID string) (decimal.Decimal, error) {
	return sumByLoanID(r.db.WithContext(ctx), loanID)
}

func sumByLoanID(tx *gorm.DB, loanID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := tx.Model(&models.Payment{}).
		Where("loan_id = ?", loanID).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
