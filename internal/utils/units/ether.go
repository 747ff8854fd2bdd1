package units

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// EtherDecimals is the number of decimals between wei and ether.
const EtherDecimals = 18

// ToEther converts a wei amount to ether without rounding.
func ToEther(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -EtherDecimals)
}

// FormatEther renders a wei amount in ether, trimming trailing zeros.
func FormatEther(wei *big.Int) string {
	return ToEther(wei).String()
}

// ToWei converts an ether decimal to wei, truncating below one wei.
func ToWei(ether decimal.Decimal) *big.Int {
	return ether.Shift(EtherDecimals).BigInt()
}
