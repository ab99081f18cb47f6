package repository

import (
	"sync"
	"time"

	"hsa-ledger/internal/models"
)

// Repository is the in-memory entity store: keyed collections per entity
// type plus per-type monotonic counters starting at 1. A single RWMutex
// serializes all mutations, so the funds check-then-debit in DebitAccount is
// atomic and concurrent purchases cannot over-debit an account. Reads return
// copies; entities are never deleted.
type Repository struct {
	mu sync.RWMutex

	users         map[int64]*models.User
	accounts      map[int64]*models.Account
	cards         map[int64]*models.Card
	cardByAccount map[int64]int64
	transactions  []*models.Transaction

	userSeq    int64
	accountSeq int64
	cardSeq    int64
	txnSeq     int64
}

// NewRepository initializes an empty store
func NewRepository() *Repository {
	return &Repository{
		users:         make(map[int64]*models.User),
		accounts:      make(map[int64]*models.Account),
		cards:         make(map[int64]*models.Card),
		cardByAccount: make(map[int64]int64),
	}
}

// CreateUser creates a user together with a zero-balance account.
// The pair is allocated under one lock so no partial state is visible.
func (r *Repository) CreateUser(name, email string) (models.User, models.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.userSeq++
	user := &models.User{ID: r.userSeq, Name: name, Email: email}
	r.users[user.ID] = user

	r.accountSeq++
	account := &models.Account{ID: r.accountSeq, UserID: user.ID, Balance: 0}
	r.accounts[account.ID] = account

	return *user, *account
}

// FindAccountByID retrieves a copy of an account
func (r *Repository) FindAccountByID(id int64) (models.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return models.Account{}, false
	}
	return *account, true
}

// CreditAccount adds amount to the account balance and returns the new
// balance. ErrNotFound if the account does not exist.
func (r *Repository) CreditAccount(id int64, amount models.Cents) (models.Cents, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return 0, ErrNotFound
	}
	account.Balance += amount
	return account.Balance, nil
}

// DebitAccount subtracts amount from the account balance if funds suffice.
// The check and the debit happen under one lock. On ErrInsufficientFunds the
// returned balance is the current, unchanged balance.
func (r *Repository) DebitAccount(id int64, amount models.Cents) (models.Cents, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return 0, ErrNotFound
	}
	if account.Balance < amount {
		return account.Balance, ErrInsufficientFunds
	}
	account.Balance -= amount
	return account.Balance, nil
}

// CreateCard stores a card for card.AccountID unless one already exists.
// Returns the stored card and whether it was created by this call; the
// existence check and the insert share one lock, so concurrent issuance
// cannot produce two cards for an account.
func (r *Repository) CreateCard(card models.Card) (models.Card, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, ok := r.cardByAccount[card.AccountID]; ok {
		return *r.cards[existingID], false
	}
	r.cardSeq++
	card.ID = r.cardSeq
	stored := card
	r.cards[card.ID] = &stored
	r.cardByAccount[card.AccountID] = card.ID
	return card, true
}

// FindCardByID retrieves a copy of a card
func (r *Repository) FindCardByID(id int64) (models.Card, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	card, ok := r.cards[id]
	if !ok {
		return models.Card{}, false
	}
	return *card, true
}

// FindCardByAccountID retrieves the card issued for an account, if any
func (r *Repository) FindCardByAccountID(accountID int64) (models.Card, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cardID, ok := r.cardByAccount[accountID]
	if !ok {
		return models.Card{}, false
	}
	return *r.cards[cardID], true
}

// AppendTransaction assigns the next transaction id and appends the record
// to the log. The log is append-only; records are never mutated.
func (r *Repository) AppendTransaction(txn *models.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txnSeq++
	txn.ID = r.txnSeq
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	stored := *txn
	r.transactions = append(r.transactions, &stored)
}

// AccountSummary returns the balance, card and the last `limit` transactions
// of an account in chronological order, all read under one lock so the
// caller observes a consistent snapshot.
func (r *Repository) AccountSummary(accountID int64, limit int) (models.Account, *models.Card, []models.Transaction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return models.Account{}, nil, nil, false
	}

	var card *models.Card
	if cardID, ok := r.cardByAccount[accountID]; ok {
		cp := *r.cards[cardID]
		card = &cp
	}

	var txns []models.Transaction
	for _, t := range r.transactions {
		if t.AccountID == accountID {
			txns = append(txns, *t)
		}
	}
	if len(txns) > limit {
		txns = txns[len(txns)-limit:]
	}

	return *account, card, txns, true
}

// Stats computes aggregate ledger counters
func (r *Repository) Stats() models.LedgerStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := models.LedgerStats{
		Users:        int64(len(r.users)),
		Accounts:     int64(len(r.accounts)),
		Cards:        int64(len(r.cards)),
		Transactions: int64(len(r.transactions)),
	}
	for _, t := range r.transactions {
		if t.Status == models.StatusApproved {
			stats.Approved++
			stats.TotalSpent += t.Amount
		} else {
			stats.Declined++
		}
	}
	return stats
}
