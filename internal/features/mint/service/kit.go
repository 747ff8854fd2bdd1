package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"mint-agent-backend/internal/common/errors"
	"mint-agent-backend/internal/common/logger"
	"mint-agent-backend/internal/domain/collection"
	collectionsvc "mint-agent-backend/internal/features/collection/service"
	"mint-agent-backend/internal/features/mint/models"
	"mint-agent-backend/internal/features/mint/repository"
	proofsvc "mint-agent-backend/internal/features/proof/service"
	"mint-agent-backend/internal/service/signer"
	"mint-agent-backend/internal/utils/units"
)

// errMissingProvider is raised when an operation needs a connected wallet.
// Translate maps it to ErrCodeWalletMissing.
var errMissingProvider = stderrors.New("missing provider")

// Deps are the collaborators of a Kit. Resolver, Authorizer, Journal and Balances
// are optional; Ledger is required.
type Deps struct {
	Ledger     Ledger
	Wallet     Wallet
	Resolver   proofsvc.Resolver
	Authorizer Authorizer
	Journal    repository.Journal
	Balances   BalanceReader
	Now        func() time.Time
}

// Kit is the mint client for one collection. It holds the loaded descriptor and
// dispatches mint attempts against it. Kit does no locking: callers must not
// refresh the descriptor while a mint attempt is in flight.
type Kit struct {
	target     collectionsvc.Target
	loader     *collectionsvc.Loader
	ledger     Ledger
	wallet     Wallet
	resolver   proofsvc.Resolver
	authorizer Authorizer
	journal    repository.Journal
	balances   BalanceReader
	now        func() time.Time
	log        zerolog.Logger

	descriptor collection.Descriptor
}

// NewKit loads the target's descriptor and returns a ready kit.
func NewKit(ctx context.Context, target collectionsvc.Target, deps Deps) (*Kit, error) {
	if deps.Ledger == nil {
		return nil, errors.NewValidationError("ledger", "required")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	k := &Kit{
		target:     target,
		loader:     collectionsvc.NewLoader(deps.Ledger),
		ledger:     deps.Ledger,
		wallet:     deps.Wallet,
		resolver:   deps.Resolver,
		authorizer: deps.Authorizer,
		journal:    deps.Journal,
		balances:   deps.Balances,
		now:        now,
		log:        logger.Component("mint"),
	}
	if err := k.Refresh(ctx); err != nil {
		return nil, err
	}
	return k, nil
}

// Target returns the collection the kit is bound to.
func (k *Kit) Target() collectionsvc.Target {
	return k.target
}

// Descriptor returns the currently loaded descriptor.
func (k *Kit) Descriptor() collection.Descriptor {
	return k.descriptor
}

// Eligibility evaluates the loaded descriptor at the current time.
func (k *Kit) Eligibility() collection.Snapshot {
	return collection.Evaluate(k.descriptor, k.now())
}

// Refresh re-reads the descriptor of the current target. On failure the previous
// descriptor is kept.
func (k *Kit) Refresh(ctx context.Context) error {
	d, err := k.loader.Load(ctx, k.target)
	if err != nil {
		return err
	}
	k.descriptor = d
	return nil
}

// SelectAsset switches a multi-token kit to another token id and loads it.
func (k *Kit) SelectAsset(ctx context.Context, assetID string) error {
	if !k.target.Variant.IsMultiToken() {
		return errors.NewValidationError("asset_id", "only multi-token collections have selectable assets")
	}
	next := k.target
	next.AssetID = assetID
	d, err := k.loader.Load(ctx, next)
	if err != nil {
		return err
	}
	k.target = next
	k.descriptor = d
	return nil
}

// VideoMinted reports whether a video has already been minted on the video contract.
func (k *Kit) VideoMinted(ctx context.Context, videoID string) (bool, error) {
	if k.target.Variant != collection.VideoAsset {
		return false, errors.NewUnsupportedVariant(k.target.Variant.String())
	}
	id, err := signer.ExternalID(videoID)
	if err != nil {
		return false, errors.NewValidationError("video_id", err.Error())
	}
	used, err := k.ledger.ExternalIDUsed(ctx, id)
	if err != nil {
		return false, errors.Translate(fmt.Errorf("read usedExternalID: %w", err))
	}
	return used, nil
}

// WalletBalance returns the connected wallet's balance in ether.
func (k *Kit) WalletBalance(ctx context.Context) (decimal.Decimal, error) {
	if k.wallet == nil || k.balances == nil {
		return decimal.Zero, errors.Translate(errMissingProvider)
	}
	wei, err := k.balances.BalanceAt(ctx, k.wallet.Address(), nil)
	if err != nil {
		return decimal.Zero, errors.Translate(fmt.Errorf("read balance: %w", err))
	}
	return units.ToEther(wei), nil
}

// RecentAttempts returns the latest journaled attempts, newest first. Without a
// journal the list is empty.
func (k *Kit) RecentAttempts(ctx context.Context, limit int64) ([]models.Attempt, error) {
	if k.journal == nil {
		return nil, nil
	}
	return k.journal.Recent(ctx, limit)
}

var _ MintService = (*Kit)(nil)
