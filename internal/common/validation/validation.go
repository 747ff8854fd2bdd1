package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	MaxCollectionIDLength = 64
	// External ids are stored as bytes32 unless given as a 32-byte hex string.
	MaxVideoIDLength = 31
	// 2^256-1 has 78 decimal digits.
	MaxTokenIDDigits = 78
)

var (
	collectionIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	tokenIDRegex      = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
	hashRegex         = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

// ValidateAddress checks a hex account or contract address.
func ValidateAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}
	if !common.IsHexAddress(address) {
		return fmt.Errorf("address %q is not a valid hex address", address)
	}
	if common.HexToAddress(address) == (common.Address{}) {
		return fmt.Errorf("address cannot be the zero address")
	}
	return nil
}

// ValidateCollectionID checks the id used by the backend proof services.
func ValidateCollectionID(id string) error {
	if id == "" {
		return fmt.Errorf("collection id cannot be empty")
	}
	if len(id) > MaxCollectionIDLength {
		return fmt.Errorf("collection id cannot exceed %d characters", MaxCollectionIDLength)
	}
	if !collectionIDRegex.MatchString(id) {
		return fmt.Errorf("collection id may only contain letters, digits, '-' and '_'")
	}
	return nil
}

// ValidateTokenID checks a decimal uint256 token id.
func ValidateTokenID(id string) error {
	if id == "" {
		return fmt.Errorf("token id cannot be empty")
	}
	if len(id) > MaxTokenIDDigits || !tokenIDRegex.MatchString(id) {
		return fmt.Errorf("token id %q is not a decimal uint256", id)
	}
	return nil
}

// ValidateVideoID checks a video external id.
func ValidateVideoID(id string) error {
	if id == "" {
		return fmt.Errorf("video id cannot be empty")
	}
	if hashRegex.MatchString(id) {
		return nil
	}
	if len(id) > MaxVideoIDLength {
		return fmt.Errorf("video id cannot exceed %d bytes", MaxVideoIDLength)
	}
	return nil
}

// ValidateURL checks an absolute http(s) URL. Empty is allowed.
func ValidateURL(raw, fieldName string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid url: %v", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", fieldName)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", fieldName)
	}
	return nil
}

func ValidatePositiveInt(value int64, fieldName string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	return nil
}
