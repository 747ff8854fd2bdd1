package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"

	"mint-agent-backend/internal/common/errors"
	"mint-agent-backend/internal/common/logger"
	"mint-agent-backend/internal/domain/collection"
)

// Target identifies the collection (and token, for multi-token variants) to load.
type Target struct {
	ContractAddress common.Address
	CollectionID    string
	Variant         collection.Variant
	// AssetID is the token id of a multi-token collection or the asset reference
	// of a video mint.
	AssetID         string
}

// TokenID parses AssetID as a uint256 token id.
func (t Target) TokenID() (*big.Int, error) {
	id, ok := math.ParseBig256(strings.TrimSpace(t.AssetID))
	if !ok || t.AssetID == "" {
		return nil, errors.NewValidationError("asset_id", "must be a uint256 token id")
	}
	return id, nil
}

// Loader populates collection descriptors from the ledger contract.
type Loader struct {
	ledger collection.LedgerReader
	now    func() time.Time
}

func NewLoader(ledger collection.LedgerReader) *Loader {
	return &Loader{ledger: ledger, now: time.Now}
}

// Load reads every sale fact the target's variant needs and returns a validated
// descriptor. Reads are sequential and the first failure aborts the load.
func (l *Loader) Load(ctx context.Context, t Target) (collection.Descriptor, error) {
	if t.ContractAddress == (common.Address{}) || t.CollectionID == "" {
		return collection.Descriptor{}, errors.NewCollectionNotReady()
	}
	if !t.Variant.Valid() {
		return collection.Descriptor{}, errors.NewUnsupportedVariant(t.Variant.String())
	}
	if t.Variant.IsMultiToken() && strings.TrimSpace(t.AssetID) == "" {
		return collection.Descriptor{}, errors.NewAssetIDRequired()
	}

	d := collection.Descriptor{Variant: t.Variant}
	var err error
	switch t.Variant {
	case collection.VideoAsset:
		err = l.loadVideo(ctx, &d)
	case collection.SingleStandard, collection.SingleWhitelisted, collection.SingleBotGuarded:
		err = l.loadSingle(ctx, &d)
	case collection.MultiStandard, collection.MultiWhitelisted:
		var tokenID *big.Int
		if tokenID, err = t.TokenID(); err == nil {
			err = l.loadMulti(ctx, &d, tokenID)
		}
	}
	if err != nil {
		return collection.Descriptor{}, err
	}
	d.LoadedAt = l.now()

	if err := d.Validate(); err != nil {
		return collection.Descriptor{}, err
	}

	logger.Debug().
		Str("collection_id", t.CollectionID).
		Str("variant", d.Variant.String()).
		Uint64("max_supply", d.MaxSupply).
		Uint64("current_supply", d.CurrentSupply).
		Int64("sale_start", d.SaleStart).
		Int64("public_sale_start", d.PublicSaleStart).
		Msg("Collection descriptor loaded")

	return d, nil
}

// The video contract has no supply cap and mints one token per transaction.
func (l *Loader) loadVideo(ctx context.Context, d *collection.Descriptor) error {
	price, err := l.ledger.Price(ctx, collection.Public)
	if err != nil {
		return fmt.Errorf("read public price: %w", err)
	}
	d.PublicPrice = price
	d.MaxPerTxPublic = 1
	return nil
}

func (l *Loader) loadSingle(ctx context.Context, d *collection.Descriptor) error {
	var err error
	if d.MaxSupply, err = l.ledger.MaxSupply(ctx); err != nil {
		return fmt.Errorf("read max supply: %w", err)
	}
	if d.CurrentSupply, err = l.ledger.TotalSupply(ctx); err != nil {
		return fmt.Errorf("read total supply: %w", err)
	}
	window, err := l.ledger.SaleWindow(ctx)
	if err != nil {
		return fmt.Errorf("read sale window: %w", err)
	}
	d.SaleStart = window.Start
	if d.PublicPrice, err = l.ledger.Price(ctx, collection.Public); err != nil {
		return fmt.Errorf("read public price: %w", err)
	}
	if d.MaxPerTxPublic, err = l.ledger.PerTxLimit(ctx, collection.Public); err != nil {
		return fmt.Errorf("read public tx limit: %w", err)
	}

	if !d.Variant.HasPresale() {
		return nil
	}
	if d.MaxPerTxPresale, err = l.ledger.PerTxLimit(ctx, collection.Presale); err != nil {
		return fmt.Errorf("read presale tx limit: %w", err)
	}
	d.PublicSaleStart = window.PublicStart
	if d.PresalePrice, err = l.ledger.Price(ctx, collection.Presale); err != nil {
		return fmt.Errorf("read presale price: %w", err)
	}
	return nil
}

func (l *Loader) loadMulti(ctx context.Context, d *collection.Descriptor, assetID *big.Int) error {
	rec, err := l.ledger.TokenRecord(ctx, assetID)
	if err != nil {
		return fmt.Errorf("read token %s: %w", assetID, err)
	}
	d.AssetID = new(big.Int).Set(assetID)
	d.MaxSupply = rec.MaxSupply
	d.MaxPerTxPublic = rec.MaxPerTx
	d.PublicPrice = rec.Price
	d.SaleStart = rec.SaleStart
	d.SaleEnd = rec.SaleEnd
	d.Active = rec.Active

	if !d.Variant.HasPresale() {
		return nil
	}
	pre, err := l.ledger.PresaleRecord(ctx, assetID)
	if err != nil {
		return fmt.Errorf("read presale record for token %s: %w", assetID, err)
	}
	d.PublicSaleStart = pre.PublicSaleStart
	d.MaxPerTxPresale = pre.MaxPresalePerAddr
	d.PresalePrice = pre.Price
	d.MerkleRoot = pre.MerkleRoot
	return nil
}
