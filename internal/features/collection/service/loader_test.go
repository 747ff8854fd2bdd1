package service

import (
	"context"
	stderrors "errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mint-agent-backend/internal/common/errors"
	"mint-agent-backend/internal/domain/collection"
	"mint-agent-backend/internal/platform/ledger/ledgertest"
)

var contract = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

func singleLedger() *ledgertest.Ledger {
	return &ledgertest.Ledger{
		PublicPrice:  big.NewInt(100),
		PresalePrice: big.NewInt(60),
		Max:          500,
		Total:        42,
		Window:       collection.SaleWindow{Start: 1_000, PublicStart: 2_000},
		PublicLimit:  10,
		PresaleLimit: 2,
	}
}

func TestLoadRequiresAddressAndCollection(t *testing.T) {
	l := singleLedger()
	loader := NewLoader(l)

	_, err := loader.Load(context.Background(), Target{CollectionID: "drop", Variant: collection.SingleStandard})
	assert.True(t, errors.Is(err, errors.ErrCodeCollectionNotReady))

	_, err = loader.Load(context.Background(), Target{ContractAddress: contract, Variant: collection.SingleStandard})
	assert.True(t, errors.Is(err, errors.ErrCodeCollectionNotReady))
	assert.Empty(t, l.Reads)
}

func TestLoadMultiTokenRequiresAsset(t *testing.T) {
	l := singleLedger()
	_, err := NewLoader(l).Load(context.Background(), Target{
		ContractAddress: contract, CollectionID: "drop", Variant: collection.MultiWhitelisted,
	})
	assert.True(t, errors.Is(err, errors.ErrCodeAssetIDRequired))
	assert.Empty(t, l.Reads)
}

func TestLoadSingleStandard(t *testing.T) {
	l := singleLedger()
	d, err := NewLoader(l).Load(context.Background(), Target{
		ContractAddress: contract, CollectionID: "drop", Variant: collection.SingleStandard,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(500), d.MaxSupply)
	assert.Equal(t, uint64(42), d.CurrentSupply)
	assert.Equal(t, int64(1_000), d.SaleStart)
	assert.Equal(t, uint64(10), d.MaxPerTxPublic)
	assert.Zero(t, d.PublicSaleStart)
	assert.Nil(t, d.PresalePrice)
	assert.Equal(t, []string{"maxSupply", "totalSupply", "saleWindow", "price:public", "perTxLimit:public"}, l.Reads)
}

func TestLoadSingleWhitelisted(t *testing.T) {
	for _, v := range []collection.Variant{collection.SingleWhitelisted, collection.SingleBotGuarded} {
		l := singleLedger()
		d, err := NewLoader(l).Load(context.Background(), Target{
			ContractAddress: contract, CollectionID: "drop", Variant: v,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), d.MaxPerTxPresale)
		assert.Equal(t, int64(2_000), d.PublicSaleStart)
		assert.Equal(t, int64(60), d.PresalePrice.Int64())
		assert.Contains(t, l.Reads, "price:presale")
	}
}

func TestLoadVideo(t *testing.T) {
	l := singleLedger()
	d, err := NewLoader(l).Load(context.Background(), Target{
		ContractAddress: contract, CollectionID: "tv", Variant: collection.VideoAsset,
	})
	require.NoError(t, err)
	assert.Zero(t, d.MaxSupply)
	assert.Equal(t, uint64(1), d.MaxPerTxPublic)
	assert.Equal(t, int64(100), d.PublicPrice.Int64())
	assert.Equal(t, []string{"price:public"}, l.Reads)
}

func TestLoadMultiWhitelisted(t *testing.T) {
	l := singleLedger()
	l.Tokens = map[string]*collection.TokenRecord{
		"7": {TokenID: big.NewInt(7), MaxPerTx: 5, Price: big.NewInt(300), MaxSupply: 50,
			SaleStart: 100, SaleEnd: 300, Active: true},
	}
	root := common.HexToHash("0x01")
	l.Presales = map[string]*collection.PresaleRecord{
		"7": {PublicSaleStart: 200, MaxPresalePerAddr: 2, Price: big.NewInt(200), MerkleRoot: root},
	}

	d, err := NewLoader(l).Load(context.Background(), Target{
		ContractAddress: contract, CollectionID: "drop", Variant: collection.MultiWhitelisted, AssetID: "7",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), d.AssetID.Int64())
	assert.True(t, d.Active)
	assert.Equal(t, int64(300), d.SaleEnd)
	assert.Equal(t, int64(200), d.PublicSaleStart)
	assert.Equal(t, root, d.MerkleRoot)
	assert.Equal(t, []string{"tokenRecord", "presaleRecord"}, l.Reads)

	l.Reads = nil
	_, err = NewLoader(l).Load(context.Background(), Target{
		ContractAddress: contract, CollectionID: "drop", Variant: collection.MultiStandard, AssetID: "7",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tokenRecord"}, l.Reads)
}

func TestLoadStopsOnFirstReadFailure(t *testing.T) {
	l := singleLedger()
	l.ReadErr = stderrors.New("connection refused")
	_, err := NewLoader(l).Load(context.Background(), Target{
		ContractAddress: contract, CollectionID: "drop", Variant: collection.SingleWhitelisted,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, l.ReadErr)
	assert.Len(t, l.Reads, 1)
}

func TestLoadRejectsBrokenInvariant(t *testing.T) {
	l := singleLedger()
	l.Total = 501
	_, err := NewLoader(l).Load(context.Background(), Target{
		ContractAddress: contract, CollectionID: "drop", Variant: collection.SingleStandard,
	})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDescriptor))
}

func TestLoadMultiTokenRejectsMalformedAsset(t *testing.T) {
	l := singleLedger()
	_, err := NewLoader(l).Load(context.Background(), Target{
		ContractAddress: contract, CollectionID: "drop", Variant: collection.MultiStandard, AssetID: "token-seven",
	})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
	assert.Empty(t, l.Reads)
}
