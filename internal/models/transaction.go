package models

import "time"

// Transaction statuses.
const (
	StatusApproved = "APPROVED"
	StatusDeclined = "DECLINED"
)

// Decline reasons. DeclineReason is set iff the status is DECLINED.
const (
	DeclineNonQualifiedExpense = "NON_QUALIFIED_EXPENSE"
	DeclineInsufficientFunds   = "INSUFFICIENT_FUNDS"
)

// Transaction is an append-only record of a purchase attempt
type Transaction struct {
	ID            int64     `json:"id"`
	AccountID     int64     `json:"account_id"`
	CardID        int64     `json:"card_id"`
	MerchantID    int64     `json:"merchant_id"`
	MerchantName  string    `json:"merchant_name"`
	Amount        Cents     `json:"amount_cents"`
	Status        string    `json:"status"`
	DeclineReason *string   `json:"decline_reason"`
	CreatedAt     time.Time `json:"created_at"`
}
