package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
)

// Ledger errors
var (
	ErrLoanNotFound     = errors.New("loan not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNoLoansFound     = errors.New("no loans found for customer")
)
