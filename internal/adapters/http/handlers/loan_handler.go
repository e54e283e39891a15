package handlers

import (
	"errors"

	"lendledger/internal/core/domain"
	"lendledger/internal/core/services"
	"lendledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan and ledger endpoints
type LoanHandler struct {
	ledgerService *services.LedgerService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(ledgerService *services.LedgerService) *LoanHandler {
	return &LoanHandler{
		ledgerService: ledgerService,
	}
}

// CreateLoanRequest represents create loan request
type CreateLoanRequest struct {
	CustomerID         string          `json:"customer_id"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	LoanPeriodYears    int             `json:"loan_period_years"`
	InterestRateYearly decimal.Decimal `json:"interest_rate_yearly"`
}

// Create creates a new loan with a computed repayment schedule.
// All four fields are required; absent or zero values are rejected
// before anything is written.
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.CustomerID == "" ||
		req.LoanAmount.LessThanOrEqual(decimal.Zero) ||
		req.LoanPeriodYears <= 0 ||
		req.InterestRateYearly.LessThanOrEqual(decimal.Zero) {
		return response.BadRequest(c, "Missing required fields")
	}

	input := &services.CreateLoanInput{
		CustomerID:         req.CustomerID,
		LoanAmount:         req.LoanAmount,
		LoanPeriodYears:    req.LoanPeriodYears,
		InterestRateYearly: req.InterestRateYearly,
	}

	loan, err := h.ledgerService.CreateLoan(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Missing required fields")
		}
		return response.InternalServerError(c, "Failed to create loan")
	}

	return c.Status(fiber.StatusCreated).JSON(loan)
}

// RecordPaymentRequest represents record payment request
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type"`
}

// RecordPayment records a payment against a loan and returns the balance
// recomputed after the insert
func (h *LoanHandler) RecordPayment(c *fiber.Ctx) error {
	loanID := c.Params("loan_id")

	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request")
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) || req.PaymentType == "" {
		return response.BadRequest(c, "Invalid request")
	}

	input := &services.RecordPaymentInput{
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
	}

	payment, err := h.ledgerService.RecordPayment(c.Context(), loanID, input)
	if err != nil {
		if errors.Is(err, services.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to record payment")
	}

	return c.JSON(payment)
}

// GetLedger returns the full ledger view of a loan
func (h *LoanHandler) GetLedger(c *fiber.Ctx) error {
	loanID := c.Params("loan_id")

	ledger, err := h.ledgerService.GetLedger(c.Context(), loanID)
	if err != nil {
		if errors.Is(err, services.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get ledger")
	}

	return c.JSON(ledger)
}
