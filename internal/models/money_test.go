package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hsa-ledger/internal/models"
)

func TestDollarsToCents(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(models.Cents(4000), models.DollarsToCents(decimal.NewFromInt(40)))
	assert.Equal(models.Cents(10050), models.DollarsToCents(decimal.RequireFromString("100.50")))
	assert.Equal(models.Cents(-500), models.DollarsToCents(decimal.NewFromInt(-5)))
	// Sub-cent precision rounds to the nearest cent.
	assert.Equal(models.Cents(1100), models.DollarsToCents(decimal.RequireFromString("10.999")))
	assert.Equal(models.Cents(0), models.DollarsToCents(decimal.Decimal{}))
}

func TestCentsToDollars(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(40.0, models.CentsToDollars(4000))
	assert.Equal(100.5, models.CentsToDollars(10050))
	assert.Equal(0.0, models.CentsToDollars(0))
	assert.Equal(-5.0, models.CentsToDollars(-500))
}
