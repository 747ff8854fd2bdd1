package models

import (
	"time"

	"mint-agent-backend/internal/domain/collection"
)

// AttemptStatus is the terminal state of one mint attempt.
type AttemptStatus string

const (
	AttemptSucceeded AttemptStatus = "succeeded"
	AttemptFailed    AttemptStatus = "failed"
	AttemptCancelled AttemptStatus = "cancelled"
)

// Attempt is the journal record of one mint attempt.
type Attempt struct {
	ID        string        `json:"id"`
	Wallet    string        `json:"wallet"`
	Variant   string        `json:"variant"`
	AssetID   string        `json:"asset_id,omitempty"`
	Phase     string        `json:"phase"`
	Requested uint64        `json:"requested"`
	Quantity  uint64        `json:"quantity"`
	Amount    string        `json:"amount"`
	TxHash    string        `json:"tx_hash,omitempty"`
	Status    AttemptStatus `json:"status"`
	ErrorCode string        `json:"error_code,omitempty"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// MintRequest is the body of POST /mint.
type MintRequest struct {
	Quantity uint64 `json:"quantity" binding:"required,min=1"`
}

// MintResponse reports a settled mint.
type MintResponse struct {
	Success     bool   `json:"success"`
	TxHash      string `json:"tx_hash,omitempty"`
	BlockNumber uint64 `json:"block_number,omitempty"`
	GasUsed     uint64 `json:"gas_used,omitempty"`
	Message     string `json:"message,omitempty"`
}

// EligibilityResponse is the evaluated sale state of the collection.
type EligibilityResponse struct {
	Phase          string `json:"phase"`
	UnitPriceWei   string `json:"unit_price_wei,omitempty"`
	UnitPriceEther string `json:"unit_price_ether,omitempty"`
	PerTxLimit     uint64 `json:"per_tx_limit"`
	Remaining      uint64 `json:"remaining,omitempty"`
	SupplyCapped   bool   `json:"supply_capped"`
	EvaluatedAt    int64  `json:"evaluated_at"`
}

// CollectionResponse describes the bound collection and its loaded sale facts.
type CollectionResponse struct {
	ContractAddress string                `json:"contract_address"`
	CollectionID    string                `json:"collection_id"`
	Variant         string                `json:"variant"`
	AssetID         string                `json:"asset_id,omitempty"`
	Descriptor      collection.Descriptor `json:"descriptor"`
}

// VideoMintedResponse reports whether a video has been minted.
type VideoMintedResponse struct {
	VideoID string `json:"video_id"`
	Minted  bool   `json:"minted"`
}

// BalanceResponse is the connected wallet's balance.
type BalanceResponse struct {
	Ether string `json:"ether"`
}
