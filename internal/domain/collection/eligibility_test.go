package collection

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	publicPrice  = big.NewInt(80_000_000_000_000_000)
	presalePrice = big.NewInt(50_000_000_000_000_000)
)

func at(ts int64) time.Time { return time.Unix(ts, 0) }

func multiWhitelisted() Descriptor {
	return Descriptor{
		Variant:         MultiWhitelisted,
		AssetID:         big.NewInt(7),
		MaxPerTxPublic:  5,
		MaxPerTxPresale: 2,
		PublicPrice:     publicPrice,
		PresalePrice:    presalePrice,
		SaleStart:       100,
		PublicSaleStart: 200,
		SaleEnd:         300,
		Active:          true,
	}
}

func singleWhitelisted() Descriptor {
	return Descriptor{
		Variant:         SingleWhitelisted,
		MaxSupply:       1000,
		MaxPerTxPublic:  10,
		MaxPerTxPresale: 3,
		PublicPrice:     publicPrice,
		PresalePrice:    presalePrice,
		SaleStart:       1_000,
		PublicSaleStart: 2_000,
	}
}

func TestEvaluateMultiWhitelistedScenarios(t *testing.T) {
	d := multiWhitelisted()

	a := Evaluate(d, at(150))
	assert.Equal(t, Presale, a.Phase)
	assert.Equal(t, 0, a.UnitPrice.Cmp(presalePrice))
	assert.Equal(t, uint64(2), a.PerTxLimit)

	b := Evaluate(d, at(250))
	assert.Equal(t, Public, b.Phase)
	assert.Equal(t, 0, b.UnitPrice.Cmp(publicPrice))
	assert.Equal(t, uint64(5), b.PerTxLimit)

	c := Evaluate(d, at(350))
	assert.Equal(t, Closed, c.Phase)
	assert.Nil(t, c.UnitPrice)
}

func TestEvaluateMultiTokenInactive(t *testing.T) {
	d := multiWhitelisted()
	d.Active = false
	assert.Equal(t, Closed, Evaluate(d, at(250)).Phase)

	d.Variant = MultiStandard
	assert.Equal(t, Closed, Evaluate(d, at(250)).Phase)
}

func TestEvaluateMultiStandardWindow(t *testing.T) {
	d := multiWhitelisted()
	d.Variant = MultiStandard

	tests := []struct {
		ts    int64
		phase Phase
	}{
		{99, Closed},
		{100, Public},
		{150, Public},
		{299, Public},
		{300, Closed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.phase, Evaluate(d, at(tt.ts)).Phase, "ts=%d", tt.ts)
	}

	d.SaleEnd = 0
	assert.Equal(t, Public, Evaluate(d, at(1_000_000)).Phase)
}

func TestEvaluateSingleWhitelistedPartition(t *testing.T) {
	for _, v := range []Variant{SingleWhitelisted, SingleBotGuarded} {
		d := singleWhitelisted()
		d.Variant = v
		for ts := int64(0); ts < 3_000; ts += 50 {
			snap := Evaluate(d, at(ts))
			switch {
			case ts < d.SaleStart:
				assert.Equal(t, Closed, snap.Phase, "ts=%d", ts)
			case ts < d.PublicSaleStart:
				assert.Equal(t, Presale, snap.Phase, "ts=%d", ts)
				assert.Equal(t, 0, snap.UnitPrice.Cmp(presalePrice))
				assert.Equal(t, d.MaxPerTxPresale, snap.PerTxLimit)
			default:
				assert.Equal(t, Public, snap.Phase, "ts=%d", ts)
				assert.Equal(t, 0, snap.UnitPrice.Cmp(publicPrice))
				assert.Equal(t, d.MaxPerTxPublic, snap.PerTxLimit)
			}
		}
	}
}

func TestEvaluateSingleStandardIsBinary(t *testing.T) {
	d := singleWhitelisted()
	d.Variant = SingleStandard
	d.PublicSaleStart = 0
	d.PresalePrice = nil

	assert.Equal(t, Closed, Evaluate(d, at(999)).Phase)
	for _, ts := range []int64{1_000, 1_500, 5_000} {
		snap := Evaluate(d, at(ts))
		assert.Equal(t, Public, snap.Phase)
		assert.Equal(t, 0, snap.UnitPrice.Cmp(publicPrice))
	}
}

func TestEvaluateVideoAlwaysPublic(t *testing.T) {
	d := Descriptor{Variant: VideoAsset, PublicPrice: publicPrice, MaxPerTxPublic: 1}
	for _, ts := range []int64{0, 1, 1 << 40} {
		snap := Evaluate(d, at(ts))
		assert.Equal(t, Public, snap.Phase)
		assert.Equal(t, uint64(1), snap.PerTxLimit)
		assert.Equal(t, uint64(1), ClampQuantity(5, snap.PerTxLimit))
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	for _, d := range []Descriptor{multiWhitelisted(), singleWhitelisted()} {
		for _, ts := range []int64{50, 150, 250, 1_500, 2_500} {
			first := Evaluate(d, at(ts))
			second := Evaluate(d, at(ts))
			assert.Equal(t, first, second)
		}
	}
}

func TestEvaluateDoesNotAliasPrices(t *testing.T) {
	d := multiWhitelisted()
	snap := Evaluate(d, at(250))
	snap.UnitPrice.SetInt64(1)
	assert.Equal(t, 0, d.PublicPrice.Cmp(publicPrice))
}

func TestClampQuantity(t *testing.T) {
	for _, q := range []uint64{0, 1, 2, 5, 9, 100} {
		for _, l := range []uint64{1, 3, 10} {
			got := ClampQuantity(q, l)
			assert.LessOrEqual(t, got, l)
			assert.Equal(t, min(q, l), got)
		}
	}
}

func TestDescriptorValidate(t *testing.T) {
	d := singleWhitelisted()
	require.NoError(t, d.Validate())

	d.CurrentSupply = 1001
	assert.Error(t, d.Validate())

	d = singleWhitelisted()
	d.SaleStart = 3_000
	assert.Error(t, d.Validate())

	d = multiWhitelisted()
	d.AssetID = nil
	assert.Error(t, d.Validate())
}

func TestDescriptorRemaining(t *testing.T) {
	d := Descriptor{Variant: SingleStandard, MaxSupply: 10, CurrentSupply: 4}
	n, capped := d.Remaining()
	assert.True(t, capped)
	assert.Equal(t, uint64(6), n)

	d.MaxSupply = 0
	_, capped = d.Remaining()
	assert.False(t, capped)
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("ERC1155Whitelist")
	require.NoError(t, err)
	assert.Equal(t, MultiWhitelisted, v)
	assert.True(t, v.IsMultiToken())
	assert.True(t, v.HasPresale())

	v, err = ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, SingleStandard, v)
	assert.False(t, v.HasPresale())

	_, err = ParseVariant("erc20")
	assert.Error(t, err)
}
