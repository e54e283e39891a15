package services

import (
	"context"

	"lendledger/internal/adapters/persistence/models"
	"lendledger/internal/adapters/persistence/repositories"
	"lendledger/internal/core/domain"
	"lendledger/internal/pkg/loanmath"

	"golang.org/x/sync/errgroup"
)

// Overview service errors
var ErrNoLoansFound = domain.ErrNoLoansFound

// OverviewService aggregates per-loan ledger figures into a customer view
type OverviewService struct {
	loanRepo    repositories.LoanRepository
	paymentRepo repositories.PaymentRepository
}

// NewOverviewService creates a new overview service
func NewOverviewService(loanRepo repositories.LoanRepository, paymentRepo repositories.PaymentRepository) *OverviewService {
	return &OverviewService{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
	}
}

// Overview returns all loans of a customer with their derived figures.
// Per-loan paid sums are independent, so they run as one task per loan;
// results land in a slice indexed by fetch position, which keeps the
// assembled list in loan fetch order no matter which task finishes first.
func (s *OverviewService) Overview(ctx context.Context, customerID string) (*models.OverviewResponse, error) {
	loans, err := s.loanRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, ErrNoLoansFound
	}

	results := make([]*models.LoanOverview, len(loans))

	g, gctx := errgroup.WithContext(ctx)
	for i, loan := range loans {
		i, loan := i, loan
		g.Go(func() error {
			paid, err := s.paymentRepo.SumByLoanID(gctx, loan.LoanID)
			if err != nil {
				return err
			}
			balance := loan.TotalAmount.Sub(paid)
			results[i] = &models.LoanOverview{
				LoanID:        loan.LoanID,
				Principal:     loan.PrincipalAmount,
				TotalAmount:   loan.TotalAmount,
				TotalInterest: loan.TotalAmount.Sub(loan.PrincipalAmount),
				EMIAmount:     loan.MonthlyEMI,
				AmountPaid:    paid,
				EMIsLeft:      loanmath.EMIsLeft(balance, loan.MonthlyEMI),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.OverviewResponse{
		CustomerID: customerID,
		TotalLoans: len(loans),
		Loans:      results,
	}, nil
}
