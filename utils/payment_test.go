package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrossAmountTwoDecimalPrices(t *testing.T) {
	// 19.99 * 100 is 1998.9999... as a float; truncation undercharges
	assert.Equal(t, int64(1999), grossAmount(19.99))
	assert.Equal(t, int64(999), grossAmount(9.99))
	assert.Equal(t, int64(3999), grossAmount(39.99))
	assert.Equal(t, int64(4999), grossAmount(49.99))
}

func TestGrossAmountWholeAndSubUnit(t *testing.T) {
	assert.Equal(t, int64(10000), grossAmount(100))
	assert.Equal(t, int64(10), grossAmount(0.10))
	assert.Equal(t, int64(1), grossAmount(0.01))
	assert.Equal(t, int64(0), grossAmount(0))
}
