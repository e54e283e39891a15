package loanmath

import (
	"lendledger/internal/core/domain"

	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// Schedule holds the repayment figures fixed at loan creation.
type Schedule struct {
	TotalAmount decimal.Decimal
	MonthlyEMI  decimal.Decimal
}

// ComputeSchedule computes total payable and monthly EMI using simple
// (non-compounding) interest over the full term:
//
//	interest = principal * years * (rate/100)
//	total    = principal + interest
//	emi      = total / (years*12)
//
// No rounding is applied; callers decide currency precision.
func ComputeSchedule(principal decimal.Decimal, years int, yearlyRatePercent decimal.Decimal) (Schedule, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return Schedule{}, domain.ErrInvalidInput
	}
	if years <= 0 {
		return Schedule{}, domain.ErrInvalidInput
	}
	if yearlyRatePercent.IsNegative() {
		return Schedule{}, domain.ErrInvalidInput
	}

	n := decimal.NewFromInt(int64(years))
	interest := principal.Mul(n).Mul(yearlyRatePercent.Div(hundred))
	total := principal.Add(interest)
	emi := total.Div(n.Mul(monthsInYear))

	return Schedule{TotalAmount: total, MonthlyEMI: emi}, nil
}

// EMIsLeft returns the number of whole installments still owed, i.e.
// ceil(balance / monthlyEMI). A negative balance (over-paid loan) yields
// a value <= 0; it is not clamped.
func EMIsLeft(balance, monthlyEMI decimal.Decimal) int64 {
	return balance.Div(monthlyEMI).Ceil().IntPart()
}
