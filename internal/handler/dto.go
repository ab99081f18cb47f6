package handler

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hsa-ledger/internal/models"
)

// Request payloads. Amounts arrive as JSON dollar numbers and are parsed as
// decimals so the cent conversion is exact.

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type depositRequest struct {
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type issueCardRequest struct {
	AccountID int64 `json:"account_id"`
}

type purchaseRequest struct {
	AccountID  int64           `json:"account_id"`
	CardID     int64           `json:"card_id"`
	MerchantID int64           `json:"merchant_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// Response payloads. Monetary fields are dollar numbers.

type errorResponse struct {
	Error string `json:"error"`
}

type createUserResponse struct {
	UserID    int64   `json:"user_id"`
	AccountID int64   `json:"account_id"`
	Balance   float64 `json:"balance"`
}

type depositResponse struct {
	AccountID  int64   `json:"account_id"`
	NewBalance float64 `json:"new_balance"`
}

type cardIssuedResponse struct {
	CardID     int64  `json:"card_id"`
	AccountID  int64  `json:"account_id"`
	CardNumber string `json:"card_number"`
	MaskedPAN  string `json:"masked_pan"`
	CVV        string `json:"cvv"`
	ExpDate    string `json:"exp_date"`
}

type cardExistsResponse struct {
	Message   string `json:"message"`
	CardID    int64  `json:"card_id"`
	MaskedPAN string `json:"masked_pan"`
}

type purchaseResponse struct {
	TransactionID int64   `json:"transaction_id"`
	Status        string  `json:"status"`
	DeclineReason *string `json:"decline_reason"`
	NewBalance    float64 `json:"new_balance"`
}

type cardSummary struct {
	ID        int64  `json:"id"`
	MaskedPAN string `json:"masked_pan"`
	ExpDate   string `json:"exp_date"`
}

type transactionResponse struct {
	ID            int64     `json:"id"`
	AccountID     int64     `json:"account_id"`
	CardID        int64     `json:"card_id"`
	MerchantID    int64     `json:"merchant_id"`
	MerchantName  string    `json:"merchant_name"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	DeclineReason *string   `json:"decline_reason"`
	CreatedAt     time.Time `json:"created_at"`
}

type summaryResponse struct {
	AccountID    int64                 `json:"account_id"`
	Balance      float64               `json:"balance"`
	Card         *cardSummary          `json:"card"`
	Transactions []transactionResponse `json:"transactions"`
}

type statsResponse struct {
	Users        int64   `json:"users"`
	Accounts     int64   `json:"accounts"`
	Cards        int64   `json:"cards"`
	Transactions int64   `json:"transactions"`
	Approved     int64   `json:"approved"`
	Declined     int64   `json:"declined"`
	TotalSpent   float64 `json:"total_spent"`
}

func expDate(card models.Card) string {
	return fmt.Sprintf("%d/%d", card.ExpMonth, card.ExpYear)
}

func newCardSummary(card *models.Card) *cardSummary {
	if card == nil {
		return nil
	}
	return &cardSummary{ID: card.ID, MaskedPAN: card.MaskedPAN, ExpDate: expDate(*card)}
}

func newTransactionResponses(txns []models.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, transactionResponse{
			ID:            t.ID,
			AccountID:     t.AccountID,
			CardID:        t.CardID,
			MerchantID:    t.MerchantID,
			MerchantName:  t.MerchantName,
			Amount:        models.CentsToDollars(t.Amount),
			Status:        t.Status,
			DeclineReason: t.DeclineReason,
			CreatedAt:     t.CreatedAt,
		})
	}
	return out
}
