package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"lendledger/internal/adapters/persistence/cache"
	"lendledger/internal/adapters/persistence/models"
	"lendledger/internal/adapters/persistence/repositories"
	"lendledger/internal/core/domain"
	"lendledger/internal/pkg/loanmath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger service errors
var (
	ErrLoanNotFound   = domain.ErrLoanNotFound
	ErrInvalidAmount  = errors.New("amount must be greater than 0")
	ErrMissingPayType = errors.New("payment type is required")
)

const paymentRecordedMsg = "Payment recorded successfully."

// LedgerService owns loan creation, payment recording and ledger views
type LedgerService struct {
	loanRepo    repositories.LoanRepository
	paymentRepo repositories.PaymentRepository
	cache       cache.Cache
	cacheTTL    time.Duration
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	loanRepo repositories.LoanRepository,
	paymentRepo repositories.PaymentRepository,
	ledgerCache cache.Cache,
	cacheTTL time.Duration,
) *LedgerService {
	return &LedgerService{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		cache:       ledgerCache,
		cacheTTL:    cacheTTL,
	}
}

// CreateLoanInput represents create loan input
type CreateLoanInput struct {
	CustomerID         string          `json:"customer_id"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	LoanPeriodYears    int             `json:"loan_period_years"`
	InterestRateYearly decimal.Decimal `json:"interest_rate_yearly"`
}

// CreateLoan computes the repayment schedule and persists a new ACTIVE
// loan. The customer id is taken as given; existence is not checked.
func (s *LedgerService) CreateLoan(ctx context.Context, input *CreateLoanInput) (*models.CreateLoanResponse, error) {
	if input.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}

	schedule, err := loanmath.ComputeSchedule(input.LoanAmount, input.LoanPeriodYears, input.InterestRateYearly)
	if err != nil {
		return nil, err
	}

	loan := &models.Loan{
		LoanID:          newID(),
		CustomerID:      input.CustomerID,
		PrincipalAmount: input.LoanAmount,
		TotalAmount:     schedule.TotalAmount,
		InterestRate:    input.InterestRateYearly,
		LoanPeriodYears: input.LoanPeriodYears,
		MonthlyEMI:      schedule.MonthlyEMI,
		Status:          models.LoanStatusActive,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	return &models.CreateLoanResponse{
		LoanID:             loan.LoanID,
		CustomerID:         loan.CustomerID,
		TotalAmountPayable: loan.TotalAmount,
		MonthlyEMI:         loan.MonthlyEMI,
	}, nil
}

// RecordPaymentInput represents record payment input
type RecordPaymentInput struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type"`
}

// RecordPayment appends a payment to a loan and returns the balance
// derived from the paid sum recomputed after the insert. Payments that
// drive the balance negative are accepted as-is; emis_left may be <= 0.
func (s *LedgerService) RecordPayment(ctx context.Context, loanID string, input *RecordPaymentInput) (*models.PaymentResponse, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if input.PaymentType == "" {
		return nil, ErrMissingPayType
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	payment := &models.Payment{
		PaymentID:   newID(),
		LoanID:      loan.LoanID,
		Amount:      input.Amount,
		PaymentType: input.PaymentType,
		PaymentDate: time.Now(),
	}

	totalPaid, err := s.paymentRepo.Record(ctx, payment)
	if err != nil {
		return nil, err
	}

	remaining := loan.TotalAmount.Sub(totalPaid)
	emisLeft := loanmath.EMIsLeft(remaining, loan.MonthlyEMI)

	// Bump the ledger cache version so views snapshotted before this
	// payment become unreachable, even when a concurrent reader writes
	// one back after the bump.
	if err := s.cache.Set(ctx, ledgerVersionKey(loan.LoanID), payment.PaymentID, s.cacheTTL); err != nil {
		log.Printf("⚠️ Warning: failed to invalidate ledger cache for %s: %v", loan.LoanID, err)
	}

	return &models.PaymentResponse{
		PaymentID:        payment.PaymentID,
		LoanID:           loan.LoanID,
		Message:          paymentRecordedMsg,
		RemainingBalance: remaining,
		EMIsLeft:         emisLeft,
	}, nil
}

// GetLedger returns the full ledger view of a loan: terms, ordered
// payment list and derived figures, all from one storage snapshot.
// The version is read before the snapshot, so a view filled under an
// old version can only be hit by readers that predate the payment
// which bumped it.
func (s *LedgerService) GetLedger(ctx context.Context, loanID string) (*models.LedgerResponse, error) {
	ver, ok := s.cache.Get(ctx, ledgerVersionKey(loanID))
	if !ok {
		ver = newID()
		if err := s.cache.Set(ctx, ledgerVersionKey(loanID), ver, s.cacheTTL); err != nil {
			log.Printf("⚠️ Warning: failed to set ledger cache version for %s: %v", loanID, err)
		}
	}
	cacheKey := ledgerCacheKey(loanID, ver)

	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var ledger models.LedgerResponse
		if err := json.Unmarshal([]byte(cached), &ledger); err == nil {
			return &ledger, nil
		}
		// Undecodable entry, drop it and rebuild from storage
		if err := s.cache.Del(ctx, cacheKey); err != nil {
			log.Printf("⚠️ Warning: failed to drop bad ledger cache entry for %s: %v", loanID, err)
		}
	}

	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}

	payments, paid, err := s.paymentRepo.SnapshotByLoanID(ctx, loan.LoanID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []*models.Payment{}
	}

	balance := loan.TotalAmount.Sub(paid)
	ledger := &models.LedgerResponse{
		LoanID:        loan.LoanID,
		CustomerID:    loan.CustomerID,
		Principal:     loan.PrincipalAmount,
		TotalAmount:   loan.TotalAmount,
		MonthlyEMI:    loan.MonthlyEMI,
		AmountPaid:    paid,
		BalanceAmount: balance,
		EMIsLeft:      loanmath.EMIsLeft(balance, loan.MonthlyEMI),
		Transactions:  payments,
	}

	if encoded, err := json.Marshal(ledger); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(encoded), s.cacheTTL); err != nil {
			log.Printf("⚠️ Warning: failed to cache ledger for %s: %v", loanID, err)
		}
	}

	return ledger, nil
}

func ledgerCacheKey(loanID, ver string) string {
	return "ledger:" + loanID + ":" + ver
}

func ledgerVersionKey(loanID string) string {
	return "ledger:ver:" + loanID
}

// newID returns a time-ordered unique identifier, so id order follows
// generation order.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
