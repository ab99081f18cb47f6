package models

// Merchant represents static merchant reference data
type Merchant struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	MCC      string `json:"mcc"`
	Category string `json:"category"`
}
