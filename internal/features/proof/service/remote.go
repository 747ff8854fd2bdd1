package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"mint-agent-backend/internal/common/errors"
	"mint-agent-backend/internal/common/logger"
	"mint-agent-backend/internal/features/proof/models"
)

// RemoteResolver asks the collection-scoped allow-list service for a proof.
type RemoteResolver struct {
	baseURL      string
	collectionID string
	httpClient   *http.Client
}

func NewRemoteResolver(baseURL, collectionID string, timeout time.Duration) *RemoteResolver {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteResolver{
		baseURL:      strings.TrimRight(baseURL, "/"),
		collectionID: collectionID,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Resolve posts the wallet to /drops/list/{collectionId}. Replies below 500 are
// decoded; a message field is the service saying the wallet is not eligible.
func (r *RemoteResolver) Resolve(ctx context.Context, wallet common.Address) ([]common.Hash, error) {
	body, err := json.Marshal(models.ListRequest{Wallet: wallet.Hex()})
	if err != nil {
		return nil, err
	}
	endpoint := r.baseURL + "/drops/list/" + url.PathEscape(r.collectionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("allow-list lookup", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, errors.NewExternalAPIError("allow-list lookup", fmt.Errorf("http %d", resp.StatusCode))
	}

	var out models.ListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.NewExternalAPIError("allow-list lookup", fmt.Errorf("decode response: %w", err))
	}
	if out.Message != "" {
		logger.Info().
			Str("wallet", wallet.Hex()).
			Str("collection_id", r.collectionID).
			Str("reason", out.Message).
			Msg("Wallet not eligible for presale")
		return nil, nil
	}

	proof := make([]common.Hash, 0, len(out.Proof))
	for _, p := range out.Proof {
		b, err := hexutil.Decode(p)
		if err != nil || len(b) != common.HashLength {
			return nil, errors.NewExternalAPIError("allow-list lookup", fmt.Errorf("malformed proof element %q", p))
		}
		proof = append(proof, common.BytesToHash(b))
	}
	return proof, nil
}
