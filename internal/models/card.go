package models

// Card represents the payment card issued for an account.
// The full card number is returned once at issuance and not retained.
type Card struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"account_id"`
	MaskedPAN string `json:"masked_pan"`
	Last4     string `json:"last4"`
	ExpMonth  int    `json:"exp_month"`
	ExpYear   int    `json:"exp_year"`
	CVV       string `json:"-"` // Not serialized
}
