package service

import (
	"time"

	"mint-agent-backend/internal/common/errors"
	"mint-agent-backend/internal/domain/collection"
)

// Options configures the proof strategies.
type Options struct {
	APIBaseURL   string
	CollectionID string
	WhitelistURL string
	Timeout      time.Duration
}

// NewResolver picks the proof strategy for a variant once, at initialisation.
// Single-token presales use the remote allow-list service, multi-token presales
// compute the proof from the published list. Variants without a presale get nil.
func NewResolver(v collection.Variant, opts Options) (Resolver, error) {
	switch v {
	case collection.SingleWhitelisted, collection.SingleBotGuarded:
		if opts.APIBaseURL == "" {
			return nil, errors.NewValidationError("api_base_url", "required for allow-list lookups")
		}
		return NewRemoteResolver(opts.APIBaseURL, opts.CollectionID, opts.Timeout), nil
	case collection.MultiWhitelisted:
		if opts.WhitelistURL == "" {
			return nil, errors.NewValidationError("whitelist_url", "required for multi-token presales")
		}
		return NewLocalResolver(opts.WhitelistURL, opts.Timeout), nil
	case collection.SingleStandard, collection.VideoAsset, collection.MultiStandard:
		return nil, nil
	}
	return nil, errors.NewUnsupportedVariant(v.String())
}
