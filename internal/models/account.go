package models

// Account represents an HSA spending account. Balance is held in cents.
type Account struct {
	ID      int64 `json:"id"`
	UserID  int64 `json:"user_id"`
	Balance Cents `json:"balance_cents"`
}
