package loan

import "errors"

// Every write operation fails with exactly one of these; checks run before
// any asset movement, so a failed operation leaves the record untouched.
var (
	ErrLoanAlreadyExists = errors.New("loan id already exists")
	ErrLoanNotFound      = errors.New("loan not found")

	ErrNotBorrower = errors.New("caller is not the borrower")
	ErrNotLender   = errors.New("caller is not the lender")

	ErrNotOpen   = errors.New("loan is not open")
	ErrNotFunded = errors.New("loan is not funded")

	ErrPastDue    = errors.New("loan is past due")
	ErrNotPastDue = errors.New("loan is not yet past due")

	ErrInvalidAmount = errors.New("invalid amount or asset legs")

	// ErrNoLenderAssigned should be unreachable given the state machine, but
	// Repay/ClaimDefault still check it.
	ErrNoLenderAssigned = errors.New("no lender assigned")

	ErrTransferFailed = errors.New("asset transfer failed")
)
