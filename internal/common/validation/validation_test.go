package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	assert.NoError(t, ValidateAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"))
	assert.Error(t, ValidateAddress(""))
	assert.Error(t, ValidateAddress("0x1234"))
	assert.Error(t, ValidateAddress("0x0000000000000000000000000000000000000000"))
}

func TestValidateTokenID(t *testing.T) {
	assert.NoError(t, ValidateTokenID("0"))
	assert.NoError(t, ValidateTokenID("115792089237316195423570985008687907853269984665640564039457584007913129639935"))
	assert.Error(t, ValidateTokenID(""))
	assert.Error(t, ValidateTokenID("007"))
	assert.Error(t, ValidateTokenID("-1"))
	assert.Error(t, ValidateTokenID("token-seven"))
}

func TestValidateVideoID(t *testing.T) {
	assert.NoError(t, ValidateVideoID("video-1"))
	assert.NoError(t, ValidateVideoID("0x"+strings.Repeat("ab", 32)))
	assert.Error(t, ValidateVideoID(""))
	assert.Error(t, ValidateVideoID(strings.Repeat("v", 32)))
}

func TestValidateCollectionID(t *testing.T) {
	assert.NoError(t, ValidateCollectionID("drop_1-a"))
	assert.Error(t, ValidateCollectionID(""))
	assert.Error(t, ValidateCollectionID("drop/1"))
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("", "whitelist_url"))
	assert.NoError(t, ValidateURL("https://cdn.example.com/list.json", "whitelist_url"))
	assert.Error(t, ValidateURL("ftp://cdn.example.com/list.json", "whitelist_url"))
	assert.Error(t, ValidateURL("https://", "whitelist_url"))
}
