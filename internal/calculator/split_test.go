package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualShares_ExactDivision(t *testing.T) {
	shares, err := EqualShares(dec("100"), 2)
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.True(t, shares[0].Equal(dec("50")))
	assert.True(t, shares[1].Equal(dec("50")))
}

func TestEqualShares_RemainderOnLastShare(t *testing.T) {
	shares, err := EqualShares(dec("100"), 3)
	require.NoError(t, err)
	require.Len(t, shares, 3)

	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}
	assert.True(t, sum.Equal(dec("100")), "shares must sum exactly to the amount, got %s", sum)
	assert.True(t, shares[0].Equal(dec("33.33")))
	assert.True(t, shares[2].Equal(dec("33.34")))
}

func TestEqualShares_Invalid(t *testing.T) {
	_, err := EqualShares(dec("10"), 0)
	assert.Error(t, err)

	_, err = EqualShares(dec("-10"), 2)
	assert.Error(t, err)
}

func TestSharesFromPercentages(t *testing.T) {
	shares, err := SharesFromPercentages(dec("80"), []decimal.Decimal{dec("25"), dec("75")})
	require.NoError(t, err)
	assert.True(t, shares[0].Equal(dec("20")))
	assert.True(t, shares[1].Equal(dec("60")))
}

func TestSharesFromPercentages_MustSumToHundred(t *testing.T) {
	_, err := SharesFromPercentages(dec("80"), []decimal.Decimal{dec("25"), dec("50")})
	assert.Error(t, err)

	// Within epsilon is fine.
	_, err = SharesFromPercentages(dec("80"), []decimal.Decimal{dec("25.005"), dec("75")})
	assert.NoError(t, err)
}

func TestValidateShares_WithinEpsilon(t *testing.T) {
	// 99.995 against 100.00 differs by 0.005, inside the 0.01 tolerance.
	err := ValidateShares(dec("100.00"), []decimal.Decimal{dec("49.995"), dec("50.00")})
	assert.NoError(t, err)
}

func TestValidateShares_Mismatch(t *testing.T) {
	err := ValidateShares(dec("100.00"), []decimal.Decimal{dec("45.00"), dec("50.00")})
	assert.Error(t, err)
}

func TestValidateShares_NegativeShare(t *testing.T) {
	err := ValidateShares(dec("10"), []decimal.Decimal{dec("20"), dec("-10")})
	assert.Error(t, err)
}

func TestValidateShares_Empty(t *testing.T) {
	assert.Error(t, ValidateShares(dec("10"), nil))
}
