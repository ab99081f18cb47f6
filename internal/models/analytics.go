package models

// LedgerStats represents aggregate ledger counters
type LedgerStats struct {
	Users        int64 `json:"users"`
	Accounts     int64 `json:"accounts"`
	Cards        int64 `json:"cards"`
	Transactions int64 `json:"transactions"`
	Approved     int64 `json:"approved"`
	Declined     int64 `json:"declined"`
	TotalSpent   Cents `json:"total_spent_cents"` // sum of approved purchase amounts
}
