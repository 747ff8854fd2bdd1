package collection

import (
	"strings"

	apperrors "mint-agent-backend/internal/common/errors"
)

// Variant is the closed set of supported collection contract shapes.
type Variant uint8

const (
	SingleStandard Variant = iota + 1
	SingleWhitelisted
	SingleBotGuarded
	VideoAsset
	MultiStandard
	MultiWhitelisted
)

var variantTags = map[Variant]string{
	SingleStandard:    "standard",
	SingleWhitelisted: "whitelist",
	SingleBotGuarded:  "botprevention",
	VideoAsset:        "rfoxtv",
	MultiStandard:     "erc1155",
	MultiWhitelisted:  "erc1155whitelist",
}

// ParseVariant resolves a configuration tag. An empty tag means the standard contract.
func ParseVariant(tag string) (Variant, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return SingleStandard, nil
	}
	for v, t := range variantTags {
		if t == tag {
			return v, nil
		}
	}
	return 0, apperrors.NewUnsupportedVariant(tag)
}

func (v Variant) String() string {
	if t, ok := variantTags[v]; ok {
		return t
	}
	return "unknown"
}

// Valid reports whether v is one of the declared variants.
func (v Variant) Valid() bool {
	_, ok := variantTags[v]
	return ok
}

// IsMultiToken reports whether sale parameters are scoped per token id.
func (v Variant) IsMultiToken() bool {
	return v == MultiStandard || v == MultiWhitelisted
}

// HasPresale reports whether the contract exposes a presale phase.
func (v Variant) HasPresale() bool {
	switch v {
	case SingleWhitelisted, SingleBotGuarded, MultiWhitelisted:
		return true
	}
	return false
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
