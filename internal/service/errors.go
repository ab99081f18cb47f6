package service

import "errors"

// Domain errors. All are expected, caller-facing outcomes; none are fatal.
// The purchase errors are request-shape failures and never produce a
// transaction record — business declines (NON_QUALIFIED_EXPENSE,
// INSUFFICIENT_FUNDS) are not errors, they are recorded DECLINED
// transactions.
var (
	// ErrAccountNotFound means the referenced account id has no account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAmount means a purchase amount is non-positive.
	ErrInvalidAmount = errors.New("purchase amount must be positive")

	// ErrInvalidAccount means a purchase references a missing account.
	ErrInvalidAccount = errors.New("purchase account not found")

	// ErrInvalidCard means the card is missing or belongs to another account.
	ErrInvalidCard = errors.New("card not found for account")

	// ErrInvalidMerchant means a purchase references a missing merchant.
	ErrInvalidMerchant = errors.New("merchant not found")
)
