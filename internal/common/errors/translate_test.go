package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelopeError struct {
	code int
	data interface{}
}

func (e *envelopeError) Error() string          { return "Internal JSON-RPC error." }
func (e *envelopeError) ErrorCode() int         { return e.code }
func (e *envelopeError) ErrorData() interface{} { return e.data }

func TestTranslateCategories(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"missing provider", stderrors.New("missing provider"), ErrCodeWalletMissing},
		{"no provider found", stderrors.New("No provider found"), ErrCodeWalletMissing},
		{"insufficient funds", stderrors.New("err: insufficient funds for gas * price + value: address 0x1"), ErrCodeInsufficientFunds},
		{"presale unauthorized", stderrors.New("execution reverted: Unauthorized to join the presale"), ErrCodeNotWhitelisted},
		{"limit", stderrors.New("execution reverted: You exceed the limit"), ErrCodeMaxMinted},
		{"sale not started", stderrors.New("execution reverted: Sale has not been started"), ErrCodeSaleNotStarted},
		{"call exception", fmt.Errorf("read MAX_NFT: %w", ErrCallException), ErrCodeWrongNetwork},
		{"unknown", stderrors.New("nonce too low"), ErrCodeUnknownLedger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Translate(tt.err)
			require.Error(t, out)
			assert.True(t, Is(out, tt.code), "got %v", out)
		})
	}
}

func TestTranslateUnknownKeepsMessage(t *testing.T) {
	out := Translate(stderrors.New("replacement transaction underpriced"))
	appErr, ok := AsAppError(out)
	require.True(t, ok)
	assert.Equal(t, "replacement transaction underpriced", appErr.Message)
}

func TestTranslateAbsorbsCancellation(t *testing.T) {
	for _, msg := range []string{
		"User rejected",
		"user closed modal",
		"User denied account authorization",
		"Accounts received is empty",
		"",
	} {
		assert.NoError(t, Translate(stderrors.New(msg)), msg)
	}
	assert.NoError(t, Translate(New(ErrCodeUserCancelled, "cancelled")))
	assert.NoError(t, Translate(nil))
}

func TestTranslateUnwrapsEnvelope(t *testing.T) {
	err := &envelopeError{
		code: rpcInternalError,
		data: map[string]interface{}{"message": "execution reverted: Unauthorized to join the presale"},
	}
	assert.True(t, Is(Translate(err), ErrCodeNotWhitelisted))

	other := &envelopeError{code: -32000, data: "insufficient funds"}
	assert.True(t, Is(Translate(other), ErrCodeUnknownLedger))
}

func TestTranslatePassesDecisionErrors(t *testing.T) {
	in := NewSaleNotActive()
	out := Translate(fmt.Errorf("mint: %w", in))
	assert.Same(t, in, out)
}

func TestTranslateOrder(t *testing.T) {
	// both substrings present: the earlier rule wins
	out := Translate(stderrors.New("insufficient funds; sale has not been started"))
	assert.True(t, Is(out, ErrCodeInsufficientFunds))
}
