package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"hsa-ledger/internal/models"
	"hsa-ledger/internal/service"
)

// Error kinds surfaced to callers in the {"error": "<KIND>"} body.
const (
	errAccountNotFound = "ACCOUNT_NOT_FOUND"
	errInvalidAmount   = "INVALID_AMOUNT"
	errInvalidAccount  = "INVALID_ACCOUNT"
	errInvalidCard     = "INVALID_CARD"
	errInvalidMerchant = "INVALID_MERCHANT"
	errInvalidRequest  = "INVALID_REQUEST"
	errInternal        = "INTERNAL_ERROR"
)

// Handler exposes the core operations over HTTP
type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

// NewHandler creates a new handler
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", h.CreateUser).Methods("POST")
	router.HandleFunc("/deposits", h.Deposit).Methods("POST")
	router.HandleFunc("/cards", h.IssueCard).Methods("POST")
	router.HandleFunc("/merchants", h.ListMerchants).Methods("GET")
	router.HandleFunc("/purchase", h.Purchase).Methods("POST")
	router.HandleFunc("/accounts/{account_id}", h.AccountSummary).Methods("GET")
	router.HandleFunc("/stats", h.Stats).Methods("GET")
}

// CreateUser handles user + account provisioning
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}
	if req.Name == "" || req.Email == "" {
		h.writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	user, account := h.svc.CreateUser(req.Name, req.Email)
	h.writeJSON(w, http.StatusCreated, createUserResponse{
		UserID:    user.ID,
		AccountID: account.ID,
		Balance:   models.CentsToDollars(account.Balance),
	})
}

// Deposit handles a funds deposit
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	newBalance, err := h.svc.Deposit(req.AccountID, models.DollarsToCents(req.Amount))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, depositResponse{
		AccountID:  req.AccountID,
		NewBalance: models.CentsToDollars(newBalance),
	})
}

// IssueCard handles card issuance for an account
func (h *Handler) IssueCard(w http.ResponseWriter, r *http.Request) {
	var req issueCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	result, err := h.svc.IssueCard(req.AccountID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if result.AlreadyIssued {
		h.writeJSON(w, http.StatusOK, cardExistsResponse{
			Message:   "Card already issued",
			CardID:    result.Card.ID,
			MaskedPAN: result.Card.MaskedPAN,
		})
		return
	}
	h.writeJSON(w, http.StatusCreated, cardIssuedResponse{
		CardID:     result.Card.ID,
		AccountID:  result.Card.AccountID,
		CardNumber: result.CardNumber,
		MaskedPAN:  result.Card.MaskedPAN,
		CVV:        result.Card.CVV,
		ExpDate:    expDate(result.Card),
	})
}

// ListMerchants returns the static merchant catalog
func (h *Handler) ListMerchants(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Merchants())
}

// Purchase handles a purchase authorization request
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	result, err := h.svc.Purchase(req.AccountID, req.CardID, req.MerchantID, models.DollarsToCents(req.Amount))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, purchaseResponse{
		TransactionID: result.TransactionID,
		Status:        result.Status,
		DeclineReason: result.DeclineReason,
		NewBalance:    models.CentsToDollars(result.NewBalance),
	})
}

// AccountSummary returns balance, card and recent transactions for an account
func (h *Handler) AccountSummary(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.ParseInt(mux.Vars(r)["account_id"], 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	summary, err := h.svc.Summary(accountID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summaryResponse{
		AccountID:    summary.Account.ID,
		Balance:      models.CentsToDollars(summary.Account.Balance),
		Card:         newCardSummary(summary.Card),
		Transactions: newTransactionResponses(summary.Transactions),
	})
}

// Stats returns aggregate ledger counters
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	stats := h.svc.Stats()
	h.writeJSON(w, http.StatusOK, statsResponse{
		Users:        stats.Users,
		Accounts:     stats.Accounts,
		Cards:        stats.Cards,
		Transactions: stats.Transactions,
		Approved:     stats.Approved,
		Declined:     stats.Declined,
		TotalSpent:   models.CentsToDollars(stats.TotalSpent),
	})
}

// writeDomainError maps domain errors to HTTP statuses. Missing accounts are
// 404, invalid purchase references 422; anything else is unexpected.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		h.writeError(w, http.StatusNotFound, errAccountNotFound)
	case errors.Is(err, service.ErrInvalidAmount):
		h.writeError(w, http.StatusUnprocessableEntity, errInvalidAmount)
	case errors.Is(err, service.ErrInvalidAccount):
		h.writeError(w, http.StatusUnprocessableEntity, errInvalidAccount)
	case errors.Is(err, service.ErrInvalidCard):
		h.writeError(w, http.StatusUnprocessableEntity, errInvalidCard)
	case errors.Is(err, service.ErrInvalidMerchant):
		h.writeError(w, http.StatusUnprocessableEntity, errInvalidMerchant)
	default:
		h.log.WithError(err).Error("Unexpected error")
		h.writeError(w, http.StatusInternalServerError, errInternal)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Error("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, kind string) {
	h.writeJSON(w, status, errorResponse{Error: kind})
}
