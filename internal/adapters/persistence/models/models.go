package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Ledger Tables
// ============================================================

// Customer represents the customers table.
// Customers are created externally (seeder/back office); the ledger engine
// references them but never mutates them.
type Customer struct {
	CustomerID string    `gorm:"column:customer_id;primaryKey;size:36" json:"customer_id"`
	Name       string    `gorm:"size:100" json:"name"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// Loan status
const (
	LoanStatusActive  = "ACTIVE"
	LoanStatusPaidOff = "PAID_OFF"
)

// Payment types
const (
	PaymentTypeEMI     = "EMI"
	PaymentTypeLumpSum = "LUMP_SUM"
)

// Loan represents the loans table. Schedule figures (total_amount,
// monthly_emi) are fixed at creation and never recomputed.
type Loan struct {
	LoanID          string          `gorm:"column:loan_id;primaryKey;size:36" json:"loan_id"`
	CustomerID      string          `gorm:"column:customer_id;size:36;not null;index" json:"customer_id"`
	PrincipalAmount decimal.Decimal `gorm:"column:principal_amount;type:decimal(15,2);not null" json:"principal_amount"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(15,2);not null" json:"total_amount"`
	InterestRate    decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"`
	LoanPeriodYears int             `gorm:"column:loan_period_years;not null" json:"loan_period_years"`
	MonthlyEMI      decimal.Decimal `gorm:"column:monthly_emi;type:decimal(15,2);not null" json:"monthly_emi"`
	Status          string          `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID;references:CustomerID" json:"customer,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// Payment represents the payments table. Append-only; rows are immutable
// once created.
type Payment struct {
	PaymentID   string          `gorm:"column:payment_id;primaryKey;size:36" json:"payment_id"`
	LoanID      string          `gorm:"column:loan_id;size:36;not null;index" json:"loan_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentType string          `gorm:"size:20;not null" json:"payment_type"`
	PaymentDate time.Time       `gorm:"column:payment_date;autoCreateTime" json:"payment_date"`

	// Relations
	Loan *Loan `gorm:"foreignKey:LoanID;references:LoanID" json:"loan,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// ============================================================
// Response DTOs (wire format of /api/v1)
// ============================================================

// CreateLoanResponse DTO
type CreateLoanResponse struct {
	LoanID             string          `json:"loan_id"`
	CustomerID         string          `json:"customer_id"`
	TotalAmountPayable decimal.Decimal `json:"total_amount_payable"`
	MonthlyEMI         decimal.Decimal `json:"monthly_emi"`
}

// PaymentResponse DTO
type PaymentResponse struct {
	PaymentID        string          `json:"payment_id"`
	LoanID           string          `json:"loan_id"`
	Message          string          `json:"message"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	EMIsLeft         int64           `json:"emis_left"`
}

// LedgerResponse DTO
type LedgerResponse struct {
	LoanID        string          `json:"loan_id"`
	CustomerID    string          `json:"customer_id"`
	Principal     decimal.Decimal `json:"principal"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	MonthlyEMI    decimal.Decimal `json:"monthly_emi"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	EMIsLeft      int64           `json:"emis_left"`
	Transactions  []*Payment      `json:"transactions"`
}

// LoanOverview DTO (one entry per loan in a customer overview)
type LoanOverview struct {
	LoanID        string          `json:"loan_id"`
	Principal     decimal.Decimal `json:"principal"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	EMIAmount     decimal.Decimal `json:"emi_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	EMIsLeft      int64           `json:"emis_left"`
}

// OverviewResponse DTO
type OverviewResponse struct {
	CustomerID string          `json:"customer_id"`
	TotalLoans int             `json:"total_loans"`
	Loans      []*LoanOverview `json:"loans"`
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates the ledger tables if they do not exist
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Customer{},
		&Loan{},
		&Payment{},
	)
}
