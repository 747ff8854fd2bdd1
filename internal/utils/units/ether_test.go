package units

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatEther(t *testing.T) {
	tests := []struct {
		wei  *big.Int
		want string
	}{
		{big.NewInt(0), "0"},
		{big.NewInt(1), "0.000000000000000001"},
		{big.NewInt(80_000_000_000_000_000), "0.08"},
		{new(big.Int).Mul(big.NewInt(3), big.NewInt(1e18)), "3"},
		{nil, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatEther(tt.wei))
	}
}

func TestToWeiRoundTrip(t *testing.T) {
	wei := ToWei(decimal.RequireFromString("0.125"))
	assert.Equal(t, "125000000000000000", wei.String())
	assert.Equal(t, "0.125", FormatEther(wei))
}
