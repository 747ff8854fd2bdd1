package signer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"mint-agent-backend/internal/common/errors"
	"mint-agent-backend/internal/domain/collection"
)

// Authorization is the backend's signed permission to mint a video asset.
// Message is set instead of the other fields when the backend refuses.
type Authorization struct {
	ExternalIDs []string `json:"externalId"`
	Salt        string   `json:"salt"`
	Signature   string   `json:"signature"`
	Message     string   `json:"message,omitempty"`
}

// Service fetches signed-mint authorizations.
type Service struct {
	baseURL    string
	httpClient *http.Client
}

func NewService(baseURL string, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{baseURL: strings.TrimRight(baseURL, "/"), httpClient: &http.Client{Timeout: timeout}}
}

// Authorize requests GET /rfoxtv/signedMessage/{wallet}/{assetId}. Replies below 500
// are decoded so the caller can act on Message.
func (s *Service) Authorize(ctx context.Context, wallet common.Address, assetID string) (*Authorization, error) {
	endpoint := fmt.Sprintf("%s/rfoxtv/signedMessage/%s/%s", s.baseURL, wallet.Hex(), url.PathEscape(assetID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("signed mint authorization", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, errors.NewExternalAPIError("signed mint authorization", fmt.Errorf("http %d", resp.StatusCode))
	}
	var out Authorization
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.NewExternalAPIError("signed mint authorization", fmt.Errorf("decode: %w", err))
	}
	return &out, nil
}

// GuardedMint converts the authorization into contract arguments.
func (a *Authorization) GuardedMint(wallet common.Address, quantity uint64) (collection.GuardedMint, error) {
	ids := make([][32]byte, 0, len(a.ExternalIDs))
	for _, id := range a.ExternalIDs {
		b, err := ExternalID(id)
		if err != nil {
			return collection.GuardedMint{}, err
		}
		ids = append(ids, b)
	}
	salt, ok := math.ParseBig256(strings.TrimSpace(a.Salt))
	if !ok {
		return collection.GuardedMint{}, fmt.Errorf("invalid salt %q", a.Salt)
	}
	sig, err := hexutil.Decode(a.Signature)
	if err != nil {
		return collection.GuardedMint{}, fmt.Errorf("invalid signature: %w", err)
	}
	return collection.GuardedMint{
		Wallet:      wallet,
		Quantity:    quantity,
		ExternalIDs: ids,
		Salt:        salt,
		Signature:   sig,
	}, nil
}

// ExternalID encodes an external id as bytes32: 0x-prefixed 32-byte hex is taken
// as is, anything else is right-padded UTF-8 of at most 31 bytes.
func ExternalID(id string) ([32]byte, error) {
	var out [32]byte
	if strings.HasPrefix(id, "0x") && len(id) == 2+2*common.HashLength {
		b, err := hexutil.Decode(id)
		if err == nil {
			copy(out[:], b)
			return out, nil
		}
	}
	if len(id) > 31 {
		return out, fmt.Errorf("external id %q is too long for bytes32", id)
	}
	copy(out[:], id)
	return out, nil
}
