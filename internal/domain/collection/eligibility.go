package collection

import (
	"math/big"
	"time"
)

// Phase is the sale phase a collection is in at a given instant.
type Phase uint8

const (
	Closed Phase = iota
	Presale
	Public
)

func (p Phase) String() string {
	switch p {
	case Presale:
		return "presale"
	case Public:
		return "public"
	default:
		return "closed"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Snapshot is the eligibility outcome for one mint attempt. UnitPrice is nil when
// the sale is closed; PerTxLimit still carries the public limit so quantities can be clamped.
type Snapshot struct {
	Phase      Phase    `json:"phase"`
	UnitPrice  *big.Int `json:"unit_price,omitempty"`
	PerTxLimit uint64   `json:"per_tx_limit"`
}

// Evaluate derives the sale phase, unit price and per-transaction limit. It has no
// side effects and returns the same snapshot for the same inputs.
func Evaluate(d Descriptor, now time.Time) Snapshot {
	ts := now.Unix()

	var phase Phase
	switch d.Variant {
	case VideoAsset:
		return Snapshot{Phase: Public, UnitPrice: copyInt(d.PublicPrice), PerTxLimit: 1}
	case SingleStandard:
		phase = openAt(ts >= d.SaleStart)
	case SingleWhitelisted, SingleBotGuarded:
		phase = splitAt(ts, d.SaleStart, d.PublicSaleStart)
	case MultiStandard:
		phase = openAt(inWindow(d, ts))
	case MultiWhitelisted:
		if inWindow(d, ts) {
			phase = Presale
			if ts >= d.PublicSaleStart {
				phase = Public
			}
		}
	}

	switch phase {
	case Presale:
		return Snapshot{Phase: Presale, UnitPrice: copyInt(d.PresalePrice), PerTxLimit: d.MaxPerTxPresale}
	case Public:
		return Snapshot{Phase: Public, UnitPrice: copyInt(d.PublicPrice), PerTxLimit: d.MaxPerTxPublic}
	default:
		return Snapshot{Phase: Closed, PerTxLimit: d.MaxPerTxPublic}
	}
}

// ClampQuantity bounds a requested quantity by the per-transaction limit.
func ClampQuantity(requested, limit uint64) uint64 {
	if requested > limit {
		return limit
	}
	return requested
}

func openAt(open bool) Phase {
	if open {
		return Public
	}
	return Closed
}

// splitAt treats presale as "started but public not yet started", so the two
// phases can never overlap.
func splitAt(ts, saleStart, publicStart int64) Phase {
	switch {
	case ts >= publicStart:
		return Public
	case ts >= saleStart:
		return Presale
	default:
		return Closed
	}
}

func inWindow(d Descriptor, ts int64) bool {
	if !d.Active || ts < d.SaleStart {
		return false
	}
	return d.SaleEnd == 0 || ts < d.SaleEnd
}

func copyInt(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
