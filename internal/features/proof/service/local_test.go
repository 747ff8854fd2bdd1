package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mint-agent-backend/internal/utils/merkle"
)

func listServer(t *testing.T, list []string, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		_ = json.NewEncoder(w).Encode(list)
	}))
}

func TestLocalResolverScenarioE(t *testing.T) {
	list := []string{"0xA", "0xB", "0xC"}
	srv := listServer(t, list, nil)
	defer srv.Close()
	r := NewLocalResolver(srv.URL, 0)

	proof, err := r.Resolve(context.Background(), common.HexToAddress("0xB"))
	require.NoError(t, err)
	assert.NotEmpty(t, proof)

	root := merkle.FromAddresses([]common.Address{
		common.HexToAddress("0xA"), common.HexToAddress("0xB"), common.HexToAddress("0xC"),
	}).Root()
	assert.True(t, merkle.Verify(root, merkle.AddressLeaf(common.HexToAddress("0xB")), proof))

	proof, err = r.Resolve(context.Background(), common.HexToAddress("0xD"))
	require.NoError(t, err)
	assert.Empty(t, proof)
}

func TestLocalResolverZeroWalletSkipsFetch(t *testing.T) {
	var hits int32
	srv := listServer(t, []string{"0xA"}, &hits)
	defer srv.Close()

	proof, err := NewLocalResolver(srv.URL, 0).Resolve(context.Background(), common.Address{})
	require.NoError(t, err)
	assert.Empty(t, proof)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestLocalResolverFetchesEveryAttempt(t *testing.T) {
	var hits int32
	srv := listServer(t, []string{"0xA", "0xB"}, &hits)
	defer srv.Close()
	r := NewLocalResolver(srv.URL, 0)

	for i := 0; i < 3; i++ {
		_, err := r.Resolve(context.Background(), common.HexToAddress("0xA"))
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestLocalResolverListUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewLocalResolver(srv.URL, 0).Resolve(context.Background(), common.HexToAddress("0xA"))
	assert.Error(t, err)
}
