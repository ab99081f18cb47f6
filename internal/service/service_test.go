package service_test

import (
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsa-ledger/internal/catalog"
	"hsa-ledger/internal/config"
	"hsa-ledger/internal/models"
	"hsa-ledger/internal/repository"
	"hsa-ledger/internal/service"
)

// Merchant ids from the preloaded catalog used throughout:
// 1 = CVS Pharmacy (MCC 5912, qualified), 12 = Best Buy (MCC 5732, not).
const (
	pharmacyID    = 1
	electronicsID = 12
)

func newTestService() *service.Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{CardPrefix: "4111"}
	return service.NewService(repository.NewRepository(), catalog.New(), logger, cfg)
}

// provision creates a user, deposits the given amount and issues a card.
func provision(t *testing.T, svc *service.Service, deposit models.Cents) (accountID, cardID int64) {
	t.Helper()
	_, account := svc.CreateUser("Ana", "ana@example.com")
	if deposit != 0 {
		_, err := svc.Deposit(account.ID, deposit)
		require.NoError(t, err)
	}
	card, err := svc.IssueCard(account.ID)
	require.NoError(t, err)
	return account.ID, card.Card.ID
}

func TestCreateUser(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()

	user, account := svc.CreateUser("Ana", "ana@example.com")
	assert.Equal(int64(1), user.ID, "First user id should be 1")
	assert.Equal(int64(1), account.ID, "First account id should be 1")
	assert.Equal(user.ID, account.UserID, "Account should reference its user")
	assert.Equal(models.Cents(0), account.Balance, "New account should start at zero balance")

	user2, account2 := svc.CreateUser("Bob", "bob@example.com")
	assert.Equal(int64(2), user2.ID, "User ids should be monotonic")
	assert.Equal(int64(2), account2.ID, "Account ids should be monotonic")
}

func TestDeposit(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	_, account := svc.CreateUser("Ana", "ana@example.com")

	balance, err := svc.Deposit(account.ID, 10_000)
	assert.NoError(err)
	assert.Equal(models.Cents(10_000), balance)

	balance, err = svc.Deposit(account.ID, 2_500)
	assert.NoError(err)
	assert.Equal(models.Cents(12_500), balance, "Deposits should accumulate")

	_, err = svc.Deposit(999, 100)
	assert.ErrorIs(err, service.ErrAccountNotFound)
}

func TestDepositAcceptsNonPositiveAmounts(t *testing.T) {
	// Pins the current behavior: deposit amounts are not validated.
	assert := assert.New(t)
	svc := newTestService()
	_, account := svc.CreateUser("Ana", "ana@example.com")

	_, err := svc.Deposit(account.ID, 10_000)
	assert.NoError(err)
	balance, err := svc.Deposit(account.ID, -2_500)
	assert.NoError(err)
	assert.Equal(models.Cents(7_500), balance)
}

func TestIssueCard(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	_, account := svc.CreateUser("Ana", "ana@example.com")

	result, err := svc.IssueCard(account.ID)
	assert.NoError(err)
	assert.False(result.AlreadyIssued)
	assert.Equal(int64(1), result.Card.ID)
	assert.Equal(account.ID, result.Card.AccountID)
	assert.Len(result.CardNumber, 16)
	assert.Equal("4111", result.CardNumber[:4], "Card number should carry the configured prefix")
	assert.Regexp(`^4111 \*\*\*\* \*\*\*\* \d{4}$`, result.Card.MaskedPAN)
	assert.Equal(result.CardNumber[12:], result.Card.Last4)
	assert.Regexp(`^\d{3}$`, result.Card.CVV)
	assert.Equal(12, result.Card.ExpMonth)
	assert.Equal(2029, result.Card.ExpYear)

	_, err = svc.IssueCard(999)
	assert.ErrorIs(err, service.ErrAccountNotFound)
}

func TestIssueCardIdempotent(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	_, account := svc.CreateUser("Ana", "ana@example.com")

	first, err := svc.IssueCard(account.ID)
	assert.NoError(err)
	second, err := svc.IssueCard(account.ID)
	assert.NoError(err)

	assert.True(second.AlreadyIssued)
	assert.Equal(first.Card.ID, second.Card.ID, "Reissuing should return the same card")
	assert.Equal(first.Card.MaskedPAN, second.Card.MaskedPAN)
	assert.Empty(second.CardNumber, "Full card number is returned only at issuance")
	assert.Equal(int64(1), svc.Stats().Cards, "Exactly one card should exist for the account")
}

func TestPurchaseValidationOrder(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	accountID, cardID := provision(t, svc, 10_000)

	// A second account whose card must not work for the first account.
	_, otherAccount := svc.CreateUser("Bob", "bob@example.com")
	otherCard, err := svc.IssueCard(otherAccount.ID)
	assert.NoError(err)

	// Amount is checked before any reference resolution.
	_, err = svc.Purchase(999, 999, 999, -500)
	assert.ErrorIs(err, service.ErrInvalidAmount)
	_, err = svc.Purchase(accountID, cardID, pharmacyID, 0)
	assert.ErrorIs(err, service.ErrInvalidAmount)

	_, err = svc.Purchase(999, cardID, pharmacyID, 100)
	assert.ErrorIs(err, service.ErrInvalidAccount)

	_, err = svc.Purchase(accountID, 999, pharmacyID, 100)
	assert.ErrorIs(err, service.ErrInvalidCard)
	_, err = svc.Purchase(accountID, otherCard.Card.ID, pharmacyID, 100)
	assert.ErrorIs(err, service.ErrInvalidCard, "A card of another account is invalid")

	_, err = svc.Purchase(accountID, cardID, 999, 100)
	assert.ErrorIs(err, service.ErrInvalidMerchant)

	assert.Equal(int64(0), svc.Stats().Transactions,
		"Request-shape errors must not create transaction records")
}

func TestPurchaseScenario(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	accountID, cardID := provision(t, svc, 10_000)

	// Qualified merchant, sufficient funds.
	result, err := svc.Purchase(accountID, cardID, pharmacyID, 4_000)
	assert.NoError(err)
	assert.Equal(models.StatusApproved, result.Status)
	assert.Nil(result.DeclineReason)
	assert.Equal(models.Cents(6_000), result.NewBalance)

	// Non-qualified merchant: declined, balance untouched.
	result, err = svc.Purchase(accountID, cardID, electronicsID, 4_000)
	assert.NoError(err)
	assert.Equal(models.StatusDeclined, result.Status)
	if assert.NotNil(result.DeclineReason) {
		assert.Equal(models.DeclineNonQualifiedExpense, *result.DeclineReason)
	}
	assert.Equal(models.Cents(6_000), result.NewBalance)

	// Qualified merchant, insufficient funds: declined, balance untouched.
	result, err = svc.Purchase(accountID, cardID, pharmacyID, 100_000)
	assert.NoError(err)
	assert.Equal(models.StatusDeclined, result.Status)
	if assert.NotNil(result.DeclineReason) {
		assert.Equal(models.DeclineInsufficientFunds, *result.DeclineReason)
	}
	assert.Equal(models.Cents(6_000), result.NewBalance)

	// Invalid amount: no transaction recorded.
	_, err = svc.Purchase(accountID, cardID, pharmacyID, -500)
	assert.ErrorIs(err, service.ErrInvalidAmount)

	summary, err := svc.Summary(accountID)
	assert.NoError(err)
	assert.Equal(models.Cents(6_000), summary.Account.Balance)
	assert.Len(summary.Transactions, 3,
		"Every decided purchase records exactly one transaction, invalid requests none")
}

func TestQualificationCheckedBeforeFunds(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	accountID, cardID := provision(t, svc, 0) // zero balance

	result, err := svc.Purchase(accountID, cardID, electronicsID, 500)
	assert.NoError(err)
	assert.Equal(models.StatusDeclined, result.Status)
	if assert.NotNil(result.DeclineReason) {
		assert.Equal(models.DeclineNonQualifiedExpense, *result.DeclineReason,
			"Qualification is decided before the funds check")
	}
}

func TestSummaryReturnsLast20Chronological(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	accountID, cardID := provision(t, svc, 1_000_000)

	for i := 0; i < 25; i++ {
		_, err := svc.Purchase(accountID, cardID, pharmacyID, 100)
		assert.NoError(err)
	}

	summary, err := svc.Summary(accountID)
	assert.NoError(err)
	assert.Len(summary.Transactions, 20)
	assert.Equal(int64(6), summary.Transactions[0].ID, "Oldest of the last 20")
	assert.Equal(int64(25), summary.Transactions[19].ID, "Most recent last")
	for i := 1; i < len(summary.Transactions); i++ {
		assert.Greater(summary.Transactions[i].ID, summary.Transactions[i-1].ID,
			"Transactions should stay in chronological order")
	}

	_, err = svc.Summary(999)
	assert.ErrorIs(err, service.ErrAccountNotFound)
}

func TestBalanceConservation(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	accountID, cardID := provision(t, svc, 5_000)
	_, err := svc.Deposit(accountID, 2_500)
	assert.NoError(err)

	_, err = svc.Purchase(accountID, cardID, pharmacyID, 3_000) // approved
	assert.NoError(err)
	_, err = svc.Purchase(accountID, cardID, electronicsID, 1_000) // declined, non-qualified
	assert.NoError(err)
	_, err = svc.Purchase(accountID, cardID, pharmacyID, 100_000) // declined, insufficient
	assert.NoError(err)

	summary, err := svc.Summary(accountID)
	assert.NoError(err)
	assert.Equal(models.Cents(5_000+2_500-3_000), summary.Account.Balance,
		"Balance equals deposits minus approved purchases; declines change nothing")
}

func TestConcurrentPurchasesNeverOverdebit(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	accountID, cardID := provision(t, svc, 10_000)

	const attempts = 10
	const amount = models.Cents(3_000)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(accountID, cardID, pharmacyID, amount)
			assert.NoError(err)
		}()
	}
	wg.Wait()

	stats := svc.Stats()
	assert.Equal(int64(3), stats.Approved, "Only three 30.00 purchases fit into 100.00")
	assert.Equal(int64(attempts-3), stats.Declined)
	assert.Equal(int64(attempts), stats.Transactions)

	summary, err := svc.Summary(accountID)
	assert.NoError(err)
	assert.Equal(models.Cents(1_000), summary.Account.Balance)
	assert.GreaterOrEqual(summary.Account.Balance, models.Cents(0),
		"Approved purchases must never drive the balance negative")
}

func TestStats(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	accountID, cardID := provision(t, svc, 10_000)

	_, err := svc.Purchase(accountID, cardID, pharmacyID, 4_000)
	assert.NoError(err)
	_, err = svc.Purchase(accountID, cardID, electronicsID, 1_000)
	assert.NoError(err)

	stats := svc.Stats()
	assert.Equal(int64(1), stats.Users)
	assert.Equal(int64(1), stats.Accounts)
	assert.Equal(int64(1), stats.Cards)
	assert.Equal(int64(2), stats.Transactions)
	assert.Equal(int64(1), stats.Approved)
	assert.Equal(int64(1), stats.Declined)
	assert.Equal(models.Cents(4_000), stats.TotalSpent)
}

func TestMerchants(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()

	merchants := svc.Merchants()
	assert.Len(merchants, 15)
	assert.Equal("CVS Pharmacy", merchants[0].Name)
	assert.Equal("5912", merchants[0].MCC)
}
