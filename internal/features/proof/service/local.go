package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"mint-agent-backend/internal/common/errors"
	"mint-agent-backend/internal/common/logger"
	"mint-agent-backend/internal/utils/merkle"
)

// LocalResolver computes the proof from a published address list. The list is
// fetched on every call because it may change between mint attempts.
type LocalResolver struct {
	listURL    string
	httpClient *http.Client
}

func NewLocalResolver(listURL string, timeout time.Duration) *LocalResolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LocalResolver{listURL: listURL, httpClient: &http.Client{Timeout: timeout}}
}

func (r *LocalResolver) Resolve(ctx context.Context, wallet common.Address) ([]common.Hash, error) {
	if wallet == (common.Address{}) {
		return nil, nil
	}
	addrs, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	tree := merkle.FromAddresses(addrs)
	proof := tree.Proof(merkle.AddressLeaf(wallet))

	logger.Debug().
		Str("wallet", wallet.Hex()).
		Int("leaves", tree.Len()).
		Str("root", tree.Root().Hex()).
		Int("proof_len", len(proof)).
		Msg("Computed presale proof")
	return proof, nil
}

func (r *LocalResolver) fetch(ctx context.Context) ([]common.Address, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.listURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("fetch address list", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError("fetch address list", fmt.Errorf("http %d", resp.StatusCode))
	}

	var raw []string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.NewExternalAPIError("fetch address list", fmt.Errorf("decode: %w", err))
	}
	addrs := make([]common.Address, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		addrs = append(addrs, common.HexToAddress(s))
	}
	return addrs, nil
}
