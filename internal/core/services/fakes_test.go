package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"lendledger/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes mirroring the gorm implementations closely
// enough for engine tests: same not-found error, same payment ordering,
// same full-sum aggregation.

type fakeLoanRepo struct {
	mu    sync.Mutex
	loans []*models.Loan
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{}
}

func (r *fakeLoanRepo) Create(ctx context.Context, loan *models.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *loan
	r.loans = append(r.loans, &copied)
	return nil
}

func (r *fakeLoanRepo) GetByID(ctx context.Context, loanID string) (*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, loan := range r.loans {
		if loan.LoanID == loanID {
			copied := *loan
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeLoanRepo) GetByCustomerID(ctx context.Context, customerID string) ([]*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Loan
	for _, loan := range r.loans {
		if loan.CustomerID == customerID {
			copied := *loan
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeLoanRepo) ListByStatus(ctx context.Context, status string) ([]*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Loan
	for _, loan := range r.loans {
		if loan.Status == status {
			copied := *loan
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{}
}

func (r *fakePaymentRepo) Record(ctx context.Context, payment *models.Payment) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *payment
	r.payments = append(r.payments, &copied)
	return r.sumLocked(payment.LoanID), nil
}

func (r *fakePaymentRepo) SnapshotByLoanID(ctx context.Context, loanID string) ([]*models.Payment, decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Payment
	for _, p := range r.payments {
		if p.LoanID == loanID {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].PaymentDate.Before(out[j].PaymentDate)
		}
		return out[i].PaymentID < out[j].PaymentID
	})
	return out, r.sumLocked(loanID), nil
}

func (r *fakePaymentRepo) SumByLoanID(ctx context.Context, loanID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sumLocked(loanID), nil
}

func (r *fakePaymentRepo) sumLocked(loanID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.payments {
		if p.LoanID == loanID {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// add seeds a payment directly, bypassing the service
func (r *fakePaymentRepo) add(loanID string, amount decimal.Decimal, at time.Time, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, &models.Payment{
		PaymentID:   id,
		LoanID:      loanID,
		Amount:      amount,
		PaymentType: models.PaymentTypeEMI,
		PaymentDate: at,
	})
}

// racingPaymentRepo lets a test land a payment between the snapshot
// read and the cache fill that follows it.
type racingPaymentRepo struct {
	*fakePaymentRepo
	afterSnapshot func()
}

func (r *racingPaymentRepo) SnapshotByLoanID(ctx context.Context, loanID string) ([]*models.Payment, decimal.Decimal, error) {
	payments, paid, err := r.fakePaymentRepo.SnapshotByLoanID(ctx, loanID)
	if fn := r.afterSnapshot; fn != nil {
		r.afterSnapshot = nil
		fn()
	}
	return payments, paid, err
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.data[key]
	return val, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *fakeCache) Close() error { return nil }
