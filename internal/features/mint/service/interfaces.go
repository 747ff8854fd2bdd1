package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"mint-agent-backend/internal/domain/collection"
	collectionsvc "mint-agent-backend/internal/features/collection/service"
	"mint-agent-backend/internal/features/mint/models"
	"mint-agent-backend/internal/service/signer"
)

// Ledger is the collection contract as seen by the kit.
type Ledger interface {
	collection.LedgerReader
	collection.LedgerWriter
	ExternalIDUsed(ctx context.Context, externalID [32]byte) (bool, error)
}

// Wallet supplies the connected address.
type Wallet interface {
	Address() common.Address
}

// Authorizer issues signed-mint authorizations for video assets.
type Authorizer interface {
	Authorize(ctx context.Context, wallet common.Address, assetID string) (*signer.Authorization, error)
}

// BalanceReader reads account balances in wei.
type BalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// MintService is the mint client consumed by the delivery layer.
type MintService interface {
	Target() collectionsvc.Target
	Descriptor() collection.Descriptor
	Eligibility() collection.Snapshot
	Refresh(ctx context.Context) error
	SelectAsset(ctx context.Context, assetID string) error
	Mint(ctx context.Context, quantity uint64) (*types.Receipt, error)
	VideoMinted(ctx context.Context, videoID string) (bool, error)
	WalletBalance(ctx context.Context) (decimal.Decimal, error)
	RecentAttempts(ctx context.Context, limit int64) ([]models.Attempt, error)
}
