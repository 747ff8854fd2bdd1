package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	apperrors "mint-agent-backend/internal/common/errors"
	"mint-agent-backend/internal/domain/collection"
)

// Backend is the chain connection a Contract needs; *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// ErrNotSupported is returned for entry points the variant's contract does not expose.
var ErrNotSupported = errors.New("entry point not supported by contract variant")

// Contract binds one collection contract and implements collection.LedgerReader
// and collection.LedgerWriter.
type Contract struct {
	variant collection.Variant
	address common.Address
	backend Backend
	bound   *bind.BoundContract
	wallet  Wallet
}

// NewContract binds address with the ABI of variant. wallet may be nil for a
// read-only contract.
func NewContract(backend Backend, address common.Address, variant collection.Variant, wallet Wallet) (*Contract, error) {
	parsed, err := abiFor(variant)
	if err != nil {
		return nil, err
	}
	return &Contract{
		variant: variant,
		address: address,
		backend: backend,
		bound:   bind.NewBoundContract(address, parsed, backend, backend, backend),
		wallet:  wallet,
	}, nil
}

func (c *Contract) Address() common.Address { return c.address }

func (c *Contract) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		if errors.Is(err, bind.ErrNoCode) {
			return nil, fmt.Errorf("%s: %w", method, apperrors.ErrCallException)
		}
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return out, nil
}

func (c *Contract) callUint(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	out, err := c.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty result", method)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (c *Contract) callUint64(ctx context.Context, method string) (uint64, error) {
	v, err := c.callUint(ctx, method)
	if err != nil {
		return 0, err
	}
	return toUint64(method, v)
}

func (c *Contract) Price(ctx context.Context, phase collection.Phase) (*big.Int, error) {
	switch {
	case c.variant == collection.VideoAsset && phase == collection.Public:
		return c.callUint(ctx, "tokenPrice")
	case c.variant.IsMultiToken() || c.variant == collection.VideoAsset:
		return nil, fmt.Errorf("price(%s): %w", phase, ErrNotSupported)
	case phase == collection.Presale:
		return c.callUint(ctx, "TOKEN_PRICE_PRESALE")
	default:
		return c.callUint(ctx, "TOKEN_PRICE")
	}
}

func (c *Contract) MaxSupply(ctx context.Context) (uint64, error) {
	if err := c.requireSingle("MAX_NFT"); err != nil {
		return 0, err
	}
	return c.callUint64(ctx, "MAX_NFT")
}

func (c *Contract) TotalSupply(ctx context.Context) (uint64, error) {
	if err := c.requireSingle("totalSupply"); err != nil {
		return 0, err
	}
	return c.callUint64(ctx, "totalSupply")
}

func (c *Contract) SaleWindow(ctx context.Context) (collection.SaleWindow, error) {
	if err := c.requireSingle("saleStartTime"); err != nil {
		return collection.SaleWindow{}, err
	}
	start, err := c.callUint(ctx, "saleStartTime")
	if err != nil {
		return collection.SaleWindow{}, err
	}
	w := collection.SaleWindow{Start: toUnix(start)}
	if c.variant == collection.SingleStandard {
		return w, nil
	}
	public, err := c.callUint(ctx, "publicSaleStartTime")
	if err != nil {
		return collection.SaleWindow{}, err
	}
	w.PublicStart = toUnix(public)
	return w, nil
}

func (c *Contract) PerTxLimit(ctx context.Context, phase collection.Phase) (uint64, error) {
	if err := c.requireSingle("perTxLimit"); err != nil {
		return 0, err
	}
	if phase == collection.Presale {
		return c.callUint64(ctx, "maxMintedPresalePerAddress")
	}
	return c.callUint64(ctx, "maxTokensPerTransaction")
}

func (c *Contract) TokenRecord(ctx context.Context, assetID *big.Int) (*collection.TokenRecord, error) {
	if !c.variant.IsMultiToken() {
		return nil, fmt.Errorf("dataToken: %w", ErrNotSupported)
	}
	out, err := c.call(ctx, "dataToken", assetID)
	if err != nil {
		return nil, err
	}
	if len(out) != 8 {
		return nil, fmt.Errorf("dataToken: unexpected %d outputs", len(out))
	}
	maxPerTx, err := toUint64("maxTokensPerTransaction", bigAt(out, 1))
	if err != nil {
		return nil, err
	}
	maxSupply, err := toUint64("maxSupply", bigAt(out, 3))
	if err != nil {
		return nil, err
	}
	return &collection.TokenRecord{
		TokenID:   bigAt(out, 0),
		MaxPerTx:  maxPerTx,
		Price:     bigAt(out, 2),
		MaxSupply: maxSupply,
		SaleStart: toUnix(bigAt(out, 4)),
		SaleEnd:   toUnix(bigAt(out, 5)),
		SaleToken: *abi.ConvertType(out[6], new(common.Address)).(*common.Address),
		Active:    *abi.ConvertType(out[7], new(bool)).(*bool),
	}, nil
}

func (c *Contract) PresaleRecord(ctx context.Context, assetID *big.Int) (*collection.PresaleRecord, error) {
	if c.variant != collection.MultiWhitelisted {
		return nil, fmt.Errorf("dataTokenPresale: %w", ErrNotSupported)
	}
	out, err := c.call(ctx, "dataTokenPresale", assetID)
	if err != nil {
		return nil, err
	}
	if len(out) != 4 {
		return nil, fmt.Errorf("dataTokenPresale: unexpected %d outputs", len(out))
	}
	maxPresale, err := toUint64("maxMintedPresalePerAddress", bigAt(out, 1))
	if err != nil {
		return nil, err
	}
	root := *abi.ConvertType(out[3], new([32]byte)).(*[32]byte)
	return &collection.PresaleRecord{
		PublicSaleStart:   toUnix(bigAt(out, 0)),
		MaxPresalePerAddr: maxPresale,
		Price:             bigAt(out, 2),
		MerkleRoot:        common.Hash(root),
	}, nil
}

// ExternalIDUsed reports whether a video external id has already been minted.
func (c *Contract) ExternalIDUsed(ctx context.Context, externalID [32]byte) (bool, error) {
	if c.variant != collection.VideoAsset {
		return false, fmt.Errorf("usedExternalID: %w", ErrNotSupported)
	}
	out, err := c.call(ctx, "usedExternalID", externalID)
	if err != nil {
		return false, err
	}
	if len(out) == 0 {
		return false, fmt.Errorf("usedExternalID: empty result")
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (c *Contract) MintPublic(ctx context.Context, quantity uint64, assetID, value *big.Int) (*types.Transaction, error) {
	qty := new(big.Int).SetUint64(quantity)
	switch {
	case c.variant.IsMultiToken():
		return c.transact(ctx, value, "buyNFTsPublic", assetID, qty)
	case c.variant == collection.VideoAsset:
		return nil, fmt.Errorf("buyNFTsPublic: %w", ErrNotSupported)
	default:
		return c.transact(ctx, value, "buyNFTsPublic", qty)
	}
}

func (c *Contract) MintPresale(ctx context.Context, quantity uint64, proof []common.Hash, assetID, value *big.Int) (*types.Transaction, error) {
	if !c.variant.HasPresale() {
		return nil, fmt.Errorf("buyNFTsPresale: %w", ErrNotSupported)
	}
	qty := new(big.Int).SetUint64(quantity)
	path := make([][32]byte, len(proof))
	for i, h := range proof {
		path[i] = h
	}
	if c.variant.IsMultiToken() {
		return c.transact(ctx, value, "buyNFTsPresale", assetID, qty, path)
	}
	return c.transact(ctx, value, "buyNFTsPresale", qty, path)
}

func (c *Contract) MintGuarded(ctx context.Context, req collection.GuardedMint, value *big.Int) (*types.Transaction, error) {
	if c.variant != collection.VideoAsset {
		return nil, fmt.Errorf("safeMint: %w", ErrNotSupported)
	}
	return c.transact(ctx, value, "safeMint",
		req.Wallet, new(big.Int).SetUint64(req.Quantity), req.ExternalIDs, req.Salt, req.Signature)
}

// WaitMined blocks until tx is included and fails when it reverted.
func (c *Contract) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	return receipt, nil
}

func (c *Contract) transact(ctx context.Context, value *big.Int, method string, args ...interface{}) (*types.Transaction, error) {
	if c.wallet == nil {
		return nil, errors.New("no provider found")
	}
	opts, err := c.wallet.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}
	opts.Value = value
	tx, err := c.bound.Transact(opts, method, args...)
	if err != nil {
		if errors.Is(err, bind.ErrNoCode) {
			return nil, fmt.Errorf("%s: %w", method, apperrors.ErrCallException)
		}
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return tx, nil
}

func (c *Contract) requireSingle(method string) error {
	switch c.variant {
	case collection.SingleStandard, collection.SingleWhitelisted, collection.SingleBotGuarded:
		return nil
	}
	return fmt.Errorf("%s: %w", method, ErrNotSupported)
}

func bigAt(out []interface{}, i int) *big.Int {
	return *abi.ConvertType(out[i], new(*big.Int)).(**big.Int)
}

func toUint64(field string, v *big.Int) (uint64, error) {
	if v == nil || v.Sign() < 0 || !v.IsUint64() {
		return 0, fmt.Errorf("%s: value %v out of range", field, v)
	}
	return v.Uint64(), nil
}

// toUnix saturates timestamps beyond int64 so far-future sentinels stay in the future.
func toUnix(v *big.Int) int64 {
	if v == nil {
		return 0
	}
	if !v.IsInt64() {
		return int64(^uint64(0) >> 1)
	}
	return v.Int64()
}
