package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Resolver obtains the presale inclusion proof for a wallet. An empty proof with a
// nil error means the wallet is not eligible; callers must not retry on it.
type Resolver interface {
	Resolve(ctx context.Context, wallet common.Address) ([]common.Hash, error)
}
