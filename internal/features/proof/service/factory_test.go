package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mint-agent-backend/internal/domain/collection"
)

func TestNewResolverSelection(t *testing.T) {
	opts := Options{APIBaseURL: "https://api.example.org", CollectionID: "genesis", WhitelistURL: "https://cdn.example.org/list.json"}

	r, err := NewResolver(collection.SingleWhitelisted, opts)
	require.NoError(t, err)
	assert.IsType(t, &RemoteResolver{}, r)

	r, err = NewResolver(collection.SingleBotGuarded, opts)
	require.NoError(t, err)
	assert.IsType(t, &RemoteResolver{}, r)

	r, err = NewResolver(collection.MultiWhitelisted, opts)
	require.NoError(t, err)
	assert.IsType(t, &LocalResolver{}, r)

	for _, v := range []collection.Variant{collection.SingleStandard, collection.VideoAsset, collection.MultiStandard} {
		r, err = NewResolver(v, opts)
		require.NoError(t, err)
		assert.Nil(t, r, v.String())
	}
}

func TestNewResolverRequiresSource(t *testing.T) {
	_, err := NewResolver(collection.MultiWhitelisted, Options{APIBaseURL: "https://api.example.org"})
	assert.Error(t, err)

	_, err = NewResolver(collection.SingleWhitelisted, Options{WhitelistURL: "https://cdn.example.org/list.json"})
	assert.Error(t, err)
}
