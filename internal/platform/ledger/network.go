package ledger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	apperrors "mint-agent-backend/internal/common/errors"
)

// Dial connects to the RPC endpoint and checks that it serves the expected chain.
func Dial(ctx context.Context, rpcURL string, chainID *big.Int) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	if err := CheckNetwork(ctx, client, chainID); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// CheckNetwork fails with ErrCodeWrongNetwork when the backend serves another chain.
func CheckNetwork(ctx context.Context, backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
}, expected *big.Int) error {
	got, err := backend.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("read chain id: %w", err)
	}
	if expected != nil && got.Cmp(expected) != 0 {
		return apperrors.New(apperrors.ErrCodeWrongNetwork, "Please make sure you are connected to the right network.").
			WithDetail("expected_chain_id", expected.String()).
			WithDetail("chain_id", got.String())
	}
	return nil
}

// Balance returns the wei balance of account at the latest block.
func Balance(ctx context.Context, backend Backend, account common.Address) (*big.Int, error) {
	bal, err := backend.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, fmt.Errorf("balance of %s: %w", account.Hex(), err)
	}
	return bal, nil
}
