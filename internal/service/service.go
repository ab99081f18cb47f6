package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"hsa-ledger/internal/catalog"
	"hsa-ledger/internal/config"
	"hsa-ledger/internal/models"
	"hsa-ledger/internal/repository"
	"hsa-ledger/internal/utils"
)

// Issued cards carry a fixed expiration date.
const (
	cardExpMonth   = 12
	cardExpYear    = 2029
	cardNumberSize = 16
)

const summaryTransactionLimit = 20

// Service handles business logic
type Service struct {
	repo    *repository.Repository
	catalog *catalog.Catalog
	log     *logrus.Logger
	config  *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, cat *catalog.Catalog, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, catalog: cat, log: log, config: cfg}
}

// IssueCardResult is the outcome of IssueCard. CardNumber holds the full
// unmasked number only when a card was newly issued; it is never stored.
type IssueCardResult struct {
	Card          models.Card
	CardNumber    string
	AlreadyIssued bool
}

// PurchaseResult is the outcome of an authorization decision.
type PurchaseResult struct {
	TransactionID int64
	Status        string
	DeclineReason *string
	NewBalance    models.Cents
}

// AccountSummary is the read model for an account.
type AccountSummary struct {
	Account      models.Account
	Card         *models.Card
	Transactions []models.Transaction
}

// CreateUser registers a user and opens a zero-balance HSA account for them
func (s *Service) CreateUser(name, email string) (models.User, models.Account) {
	user, account := s.repo.CreateUser(name, email)
	s.log.Infof("User registered: %s (account %d)", user.Email, account.ID)
	return user, account
}

// Deposit adds amount to the account balance and returns the new balance.
// TODO: reject non-positive deposit amounts once the frontend validates them.
func (s *Service) Deposit(accountID int64, amount models.Cents) (models.Cents, error) {
	newBalance, err := s.repo.CreditAccount(accountID, amount)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrAccountNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to credit account %d: %w", accountID, err)
	}
	s.log.Infof("Deposit of %d cents to account %d, balance %d", amount, accountID, newBalance)
	return newBalance, nil
}

// IssueCard issues the single card for an account. If a card already exists
// its public fields are returned with AlreadyIssued set; no duplicate is
// created and no error is raised.
func (s *Service) IssueCard(accountID int64) (*IssueCardResult, error) {
	if _, ok := s.repo.FindAccountByID(accountID); !ok {
		return nil, ErrAccountNotFound
	}

	cardNumber, err := utils.GenerateCardNumber(s.config.CardPrefix, cardNumberSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate card number: %w", err)
	}

	card, created := s.repo.CreateCard(models.Card{
		AccountID: accountID,
		MaskedPAN: utils.MaskPAN(cardNumber),
		Last4:     utils.Last4(cardNumber),
		ExpMonth:  cardExpMonth,
		ExpYear:   cardExpYear,
		CVV:       utils.GenerateCVV(),
	})
	if !created {
		return &IssueCardResult{Card: card, AlreadyIssued: true}, nil
	}

	s.log.Infof("Card %d issued for account %d", card.ID, accountID)
	return &IssueCardResult{Card: card, CardNumber: cardNumber}, nil
}

// Purchase runs the authorization decision for a purchase attempt.
//
// Request-shape checks come first, in order, and record nothing: invalid
// references are not business events and must not pollute the transaction
// log. A well-formed request always appends exactly one transaction:
// qualification is decided before funds, and the debit happens exactly once,
// only on approval, before the reported balance snapshot.
func (s *Service) Purchase(accountID, cardID, merchantID int64, amount models.Cents) (*PurchaseResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	account, ok := s.repo.FindAccountByID(accountID)
	if !ok {
		return nil, ErrInvalidAccount
	}
	card, ok := s.repo.FindCardByID(cardID)
	if !ok || card.AccountID != account.ID {
		return nil, ErrInvalidCard
	}
	merchant, ok := s.catalog.FindByID(merchantID)
	if !ok {
		return nil, ErrInvalidMerchant
	}

	status := models.StatusApproved
	var declineReason *string
	newBalance := account.Balance

	if !s.catalog.IsQualified(merchant.MCC) {
		status = models.StatusDeclined
		declineReason = strPtr(models.DeclineNonQualifiedExpense)
	} else {
		balance, err := s.repo.DebitAccount(account.ID, amount)
		if errors.Is(err, repository.ErrInsufficientFunds) {
			status = models.StatusDeclined
			declineReason = strPtr(models.DeclineInsufficientFunds)
			newBalance = balance
		} else if err != nil {
			return nil, fmt.Errorf("failed to debit account %d: %w", account.ID, err)
		} else {
			newBalance = balance
		}
	}

	txn := &models.Transaction{
		AccountID:     account.ID,
		CardID:        card.ID,
		MerchantID:    merchant.ID,
		MerchantName:  merchant.Name,
		Amount:        amount,
		Status:        status,
		DeclineReason: declineReason,
		CreatedAt:     time.Now().UTC(),
	}
	s.repo.AppendTransaction(txn)

	entry := s.log.WithFields(logrus.Fields{
		"transaction_id": txn.ID,
		"account_id":     account.ID,
		"merchant":       merchant.Name,
		"amount_cents":   amount,
		"status":         status,
	})
	if declineReason != nil {
		entry = entry.WithField("decline_reason", *declineReason)
	}
	entry.Info("Purchase decided")

	return &PurchaseResult{
		TransactionID: txn.ID,
		Status:        status,
		DeclineReason: declineReason,
		NewBalance:    newBalance,
	}, nil
}

// Merchants returns the static merchant catalog
func (s *Service) Merchants() []models.Merchant {
	return s.catalog.List()
}

// Summary returns the balance, card and the 20 most recent transactions of
// an account in chronological order.
func (s *Service) Summary(accountID int64) (*AccountSummary, error) {
	account, card, txns, ok := s.repo.AccountSummary(accountID, summaryTransactionLimit)
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &AccountSummary{Account: account, Card: card, Transactions: txns}, nil
}

// Stats returns aggregate ledger counters
func (s *Service) Stats() models.LedgerStats {
	return s.repo.Stats()
}

func strPtr(s string) *string {
	return &s
}
