package collection

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	apperrors "mint-agent-backend/internal/common/errors"
)

// Descriptor is the immutable set of sale facts for one collection, or for one token
// of a multi-token collection. Zero MaxSupply means uncapped, zero SaleEnd means no end.
type Descriptor struct {
	Variant         Variant     `json:"variant"`
	AssetID         *big.Int    `json:"asset_id,omitempty"`
	MaxSupply       uint64      `json:"max_supply"`
	CurrentSupply   uint64      `json:"current_supply"`
	MaxPerTxPublic  uint64      `json:"max_per_tx_public"`
	MaxPerTxPresale uint64      `json:"max_per_tx_presale,omitempty"`
	PublicPrice     *big.Int    `json:"public_price"`
	PresalePrice    *big.Int    `json:"presale_price,omitempty"`
	SaleStart       int64       `json:"sale_start"`
	SaleEnd         int64       `json:"sale_end,omitempty"`
	PublicSaleStart int64       `json:"public_sale_start,omitempty"`
	Active          bool        `json:"active"`
	MerkleRoot      common.Hash `json:"merkle_root,omitempty"`
	LoadedAt        time.Time   `json:"loaded_at"`
}

// Validate checks the supply and sale-window invariants.
func (d *Descriptor) Validate() error {
	if !d.Variant.Valid() {
		return apperrors.NewUnsupportedVariant(d.Variant.String())
	}
	if d.MaxSupply > 0 && d.CurrentSupply > d.MaxSupply {
		return apperrors.Newf(apperrors.ErrCodeInvalidDescriptor,
			"current supply %d exceeds max supply %d", d.CurrentSupply, d.MaxSupply)
	}
	if d.SaleStart != 0 && d.PublicSaleStart != 0 && d.SaleStart > d.PublicSaleStart {
		return apperrors.Newf(apperrors.ErrCodeInvalidDescriptor,
			"presale start %d is after public sale start %d", d.SaleStart, d.PublicSaleStart)
	}
	if d.Variant.IsMultiToken() && d.AssetID == nil {
		return apperrors.NewAssetIDRequired()
	}
	return nil
}

// Remaining returns the number of tokens still mintable and false when supply is uncapped.
func (d *Descriptor) Remaining() (uint64, bool) {
	if d.MaxSupply == 0 {
		return 0, false
	}
	if d.CurrentSupply >= d.MaxSupply {
		return 0, true
	}
	return d.MaxSupply - d.CurrentSupply, true
}
