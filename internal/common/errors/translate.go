package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

// ErrCallException marks a contract call that failed before execution, typically
// because the contract does not exist on the connected network.
var ErrCallException = stderrors.New("CALL_EXCEPTION")

// rpcInternalError is the JSON-RPC envelope code whose data carries the real failure.
const rpcInternalError = -32603

type rule struct {
	needles []string
	code    ErrorCode
	message string
}

// Order matters: earlier rules win when substrings overlap.
var rules = []rule{
	{
		needles: []string{"missing provider", "no provider found"},
		code:    ErrCodeWalletMissing,
		message: "Please install the MetaMask extension. If you are on mobile, open your MetaMask app and browse to this page.",
	},
	{
		needles: []string{"insufficient funds"},
		code:    ErrCodeInsufficientFunds,
		message: "Your wallet does not have enough balance.",
	},
	{
		needles: []string{"unauthorized to join the presale"},
		code:    ErrCodeNotWhitelisted,
		message: "You are not in the whitelist.",
	},
	{
		needles: []string{"exceed the limit"},
		code:    ErrCodeMaxMinted,
		message: "You reach max minted NFTs per address.",
	},
	{
		needles: []string{"sale has not been started"},
		code:    ErrCodeSaleNotStarted,
		message: "Sale has not been started.",
	},
}

const wrongNetworkMessage = "Please make sure you are connected to the right network."

var cancelPhrases = []string{
	"user rejected",
	"user closed modal",
	"user denied account authorization",
	"accounts received is empty",
}

// Translate maps a captured failure to a user-presentable *AppError.
// It returns nil when the failure is a user cancellation, which is absorbed silently.
// Decision-layer errors pass through unchanged; unrecognised failures keep their
// message verbatim under ErrCodeUnknownLedger.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok && appErr.Code != ErrCodeUnknownLedger {
		if appErr.Code == ErrCodeUserCancelled {
			return nil
		}
		return appErr
	}

	msg := failureMessage(err)
	lower := strings.ToLower(msg)

	for _, r := range rules {
		for _, needle := range r.needles {
			if strings.Contains(lower, needle) {
				return Wrap(err, r.code, r.message)
			}
		}
	}

	if stderrors.Is(err, ErrCallException) {
		return Wrap(err, ErrCodeWrongNetwork, wrongNetworkMessage)
	}

	if strings.TrimSpace(msg) == "" {
		return nil
	}

	for _, phrase := range cancelPhrases {
		if strings.Contains(lower, phrase) {
			return nil
		}
	}

	return Wrap(err, ErrCodeUnknownLedger, msg)
}

// failureMessage returns the message of err, replacing it with the inner failure
// when err is a JSON-RPC internal-error envelope.
func failureMessage(err error) string {
	var rpcErr rpc.Error
	if stderrors.As(err, &rpcErr) && rpcErr.ErrorCode() == rpcInternalError {
		var dataErr rpc.DataError
		if stderrors.As(err, &dataErr) {
			if inner := dataMessage(dataErr.ErrorData()); inner != "" {
				return inner
			}
		}
	}
	return err.Error()
}

func dataMessage(data interface{}) string {
	switch v := data.(type) {
	case nil:
		return ""
	case string:
		return v
	case error:
		return v.Error()
	case map[string]interface{}:
		if m, ok := v["message"].(string); ok {
			return m
		}
	}
	return fmt.Sprint(data)
}
