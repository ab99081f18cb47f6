package utils_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"hsa-ledger/internal/utils"
)

func TestGenerateCardNumber(t *testing.T) {
	assert := assert.New(t)

	number, err := utils.GenerateCardNumber("4111", 16)
	assert.NoError(err)
	assert.Len(number, 16)
	assert.Equal("4111", number[:4])
	for _, c := range number {
		assert.True(c >= '0' && c <= '9', "Card number must be all digits: %q", number)
	}
}

func TestGenerateCardNumberInvalidLength(t *testing.T) {
	assert := assert.New(t)

	_, err := utils.GenerateCardNumber("4111", 3)
	assert.Error(err, "Length shorter than the prefix is invalid")

	_, err = utils.GenerateCardNumber("4111", 20)
	assert.Error(err, "PANs are at most 19 digits")
}

func TestGenerateCVV(t *testing.T) {
	assert := assert.New(t)

	for i := 0; i < 100; i++ {
		cvv := utils.GenerateCVV()
		assert.Len(cvv, 3)
		n, err := strconv.Atoi(cvv)
		assert.NoError(err)
		assert.GreaterOrEqual(n, 100)
		assert.LessOrEqual(n, 999)
	}
}

func TestMaskPAN(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("4111 **** **** 1234", utils.MaskPAN("4111111111111234"))
	assert.Equal("1234567", utils.MaskPAN("1234567"), "Short inputs are returned unmasked")
}

func TestLast4(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1234", utils.Last4("4111111111111234"))
	assert.Equal("123", utils.Last4("123"))
}
