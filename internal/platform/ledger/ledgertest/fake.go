// Package ledgertest provides an in-memory collection contract for tests.
package ledgertest

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"mint-agent-backend/internal/domain/collection"
)

// Mint records one submitted mint call.
type Mint struct {
	Method   string
	Quantity uint64
	AssetID  *big.Int
	Proof    []common.Hash
	Guarded  *collection.GuardedMint
	Value    *big.Int
}

// Ledger is a programmable fake implementing collection.LedgerReader and
// collection.LedgerWriter. Set Err* fields to force failures.
type Ledger struct {
	mu sync.Mutex

	PublicPrice     *big.Int
	PresalePrice    *big.Int
	Max             uint64
	Total           uint64
	Window          collection.SaleWindow
	PublicLimit     uint64
	PresaleLimit    uint64
	Tokens          map[string]*collection.TokenRecord
	Presales        map[string]*collection.PresaleRecord
	UsedExternalIDs map[[32]byte]bool

	ReadErr   error
	SubmitErr error
	WaitErr   error

	Reads []string
	Mints []Mint
	nonce uint64
}

func (l *Ledger) read(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Reads = append(l.Reads, name)
	return l.ReadErr
}

func (l *Ledger) Price(_ context.Context, phase collection.Phase) (*big.Int, error) {
	if err := l.read("price:" + phase.String()); err != nil {
		return nil, err
	}
	price := l.PublicPrice
	if phase == collection.Presale {
		price = l.PresalePrice
	}
	if price == nil {
		return new(big.Int), nil
	}
	return new(big.Int).Set(price), nil
}

func (l *Ledger) MaxSupply(context.Context) (uint64, error) {
	return l.Max, l.read("maxSupply")
}

func (l *Ledger) TotalSupply(context.Context) (uint64, error) {
	return l.Total, l.read("totalSupply")
}

func (l *Ledger) SaleWindow(context.Context) (collection.SaleWindow, error) {
	return l.Window, l.read("saleWindow")
}

func (l *Ledger) PerTxLimit(_ context.Context, phase collection.Phase) (uint64, error) {
	if err := l.read("perTxLimit:" + phase.String()); err != nil {
		return 0, err
	}
	if phase == collection.Presale {
		return l.PresaleLimit, nil
	}
	return l.PublicLimit, nil
}

func (l *Ledger) TokenRecord(_ context.Context, assetID *big.Int) (*collection.TokenRecord, error) {
	if err := l.read("tokenRecord"); err != nil {
		return nil, err
	}
	rec, ok := l.Tokens[assetID.String()]
	if !ok {
		return nil, fmt.Errorf("token %s not found", assetID)
	}
	return rec, nil
}

func (l *Ledger) PresaleRecord(_ context.Context, assetID *big.Int) (*collection.PresaleRecord, error) {
	if err := l.read("presaleRecord"); err != nil {
		return nil, err
	}
	rec, ok := l.Presales[assetID.String()]
	if !ok {
		return nil, fmt.Errorf("presale for token %s not found", assetID)
	}
	return rec, nil
}

func (l *Ledger) ExternalIDUsed(_ context.Context, externalID [32]byte) (bool, error) {
	if err := l.read("usedExternalID"); err != nil {
		return false, err
	}
	return l.UsedExternalIDs[externalID], nil
}

func (l *Ledger) submit(m Mint) (*types.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.SubmitErr != nil {
		return nil, l.SubmitErr
	}
	l.Mints = append(l.Mints, m)
	tx := types.NewTx(&types.LegacyTx{Nonce: l.nonce, Value: m.Value, Gas: 21000, GasPrice: big.NewInt(1)})
	l.nonce++
	return tx, nil
}

func (l *Ledger) MintPublic(_ context.Context, quantity uint64, assetID, value *big.Int) (*types.Transaction, error) {
	return l.submit(Mint{Method: "mintPublic", Quantity: quantity, AssetID: assetID, Value: value})
}

func (l *Ledger) MintPresale(_ context.Context, quantity uint64, proof []common.Hash, assetID, value *big.Int) (*types.Transaction, error) {
	return l.submit(Mint{Method: "mintPresale", Quantity: quantity, Proof: proof, AssetID: assetID, Value: value})
}

func (l *Ledger) MintGuarded(_ context.Context, req collection.GuardedMint, value *big.Int) (*types.Transaction, error) {
	return l.submit(Mint{Method: "mintGuarded", Quantity: req.Quantity, Guarded: &req, Value: value})
}

func (l *Ledger) WaitMined(_ context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if l.WaitErr != nil {
		return nil, l.WaitErr
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: tx.Hash(), BlockNumber: big.NewInt(1)}, nil
}

// Minted returns a copy of the recorded mint calls.
func (l *Ledger) Minted() []Mint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Mint(nil), l.Mints...)
}
