package collection

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// SaleWindow holds the single-token sale timestamps (unix seconds).
type SaleWindow struct {
	Start       int64
	PublicStart int64
}

// TokenRecord is the on-chain sale record of one token in a multi-token collection.
type TokenRecord struct {
	TokenID   *big.Int
	MaxPerTx  uint64
	Price     *big.Int
	MaxSupply uint64
	SaleStart int64
	SaleEnd   int64
	SaleToken common.Address
	Active    bool
}

// PresaleRecord is the presale extension of a multi-token record.
type PresaleRecord struct {
	PublicSaleStart   int64
	MaxPresalePerAddr uint64
	Price             *big.Int
	MerkleRoot        common.Hash
}

// GuardedMint is the payload of a signature-guarded mint on the video contract.
type GuardedMint struct {
	Wallet      common.Address
	Quantity    uint64
	ExternalIDs [][32]byte
	Salt        *big.Int
	Signature   []byte
}

// LedgerReader exposes the read entry points of a collection contract.
type LedgerReader interface {
	Price(ctx context.Context, phase Phase) (*big.Int, error)
	MaxSupply(ctx context.Context) (uint64, error)
	TotalSupply(ctx context.Context) (uint64, error)
	SaleWindow(ctx context.Context) (SaleWindow, error)
	PerTxLimit(ctx context.Context, phase Phase) (uint64, error)
	TokenRecord(ctx context.Context, assetID *big.Int) (*TokenRecord, error)
	PresaleRecord(ctx context.Context, assetID *big.Int) (*PresaleRecord, error)
}

// LedgerWriter exposes the mint entry points. Each call submits one transaction
// carrying value wei; WaitMined blocks until it settles.
type LedgerWriter interface {
	MintPublic(ctx context.Context, quantity uint64, assetID *big.Int, value *big.Int) (*types.Transaction, error)
	MintPresale(ctx context.Context, quantity uint64, proof []common.Hash, assetID *big.Int, value *big.Int) (*types.Transaction, error)
	MintGuarded(ctx context.Context, req GuardedMint, value *big.Int) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}
