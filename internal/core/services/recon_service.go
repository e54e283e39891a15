package services

import (
	"context"
	"log"
	"time"

	"lendledger/internal/adapters/persistence/models"
	"lendledger/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// ReconService re-derives every active loan's balance on a schedule and
// reports drift-prone states: loans fully paid but still ACTIVE (the
// status is never transitioned automatically) and over-paid loans. It
// only reports; it never mutates the ledger.
type ReconService struct {
	cron        *cron.Cron
	loanRepo    repositories.LoanRepository
	paymentRepo repositories.PaymentRepository
	schedule    string
}

// NewReconService creates a new reconciliation service
func NewReconService(loanRepo repositories.LoanRepository, paymentRepo repositories.PaymentRepository, schedule string) *ReconService {
	return &ReconService{
		cron:        cron.New(),
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		schedule:    schedule,
	}
}

// Start registers the reconciliation job and starts the scheduler
func (s *ReconService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("🚀 ReconService started [schedule: %s]", s.schedule)
	return nil
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *ReconService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 ReconService stopped")
}

func (s *ReconService) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	loans, err := s.loanRepo.ListByStatus(ctx, models.LoanStatusActive)
	if err != nil {
		log.Printf("❌ Recon: list active loans failed: %v", err)
		return
	}

	var settled, overpaid int
	for _, loan := range loans {
		paid, err := s.paymentRepo.SumByLoanID(ctx, loan.LoanID)
		if err != nil {
			log.Printf("❌ Recon: sum payments for %s failed: %v", loan.LoanID, err)
			continue
		}
		balance := loan.TotalAmount.Sub(paid)
		if balance.IsNegative() {
			overpaid++
			log.Printf("⚠️ Recon: loan %s over-paid by %s", loan.LoanID, balance.Neg())
			continue
		}
		if balance.IsZero() {
			settled++
			log.Printf("⚠️ Recon: loan %s fully paid but still %s", loan.LoanID, loan.Status)
		}
	}

	log.Printf("✅ Recon: %d active loans checked, %d settled-but-active, %d over-paid",
		len(loans), settled, overpaid)
}
