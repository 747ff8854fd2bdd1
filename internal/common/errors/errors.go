package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode identifies a failure category of a mint attempt.
type ErrorCode string

const (
	// Decision layer
	ErrCodeCollectionNotReady ErrorCode = "COLLECTION_NOT_READY"
	ErrCodeAssetIDRequired    ErrorCode = "ASSET_ID_REQUIRED"
	ErrCodeSaleNotActive      ErrorCode = "SALE_NOT_ACTIVE"
	ErrCodeLimitExceeded      ErrorCode = "LIMIT_EXCEEDED"
	ErrCodeNotWhitelisted     ErrorCode = "NOT_WHITELISTED"
	ErrCodeUnsupportedVariant ErrorCode = "UNSUPPORTED_VARIANT"
	ErrCodeProofSigningFailed ErrorCode = "PROOF_SIGNING_FAILED"
	ErrCodeInvalidDescriptor  ErrorCode = "INVALID_DESCRIPTOR"
	ErrCodeValidation         ErrorCode = "VALIDATION_ERROR"

	// Ledger / provider failures after translation
	ErrCodeWalletMissing     ErrorCode = "WALLET_MISSING"
	ErrCodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeMaxMinted         ErrorCode = "MAX_MINTED"
	ErrCodeSaleNotStarted    ErrorCode = "SALE_NOT_STARTED"
	ErrCodeWrongNetwork      ErrorCode = "WRONG_NETWORK"
	ErrCodeUserCancelled     ErrorCode = "USER_CANCELLED"
	ErrCodeUnknownLedger     ErrorCode = "UNKNOWN_LEDGER_FAILURE"

	// External APIs
	ErrCodeExternalAPI ErrorCode = "EXTERNAL_API_ERROR"

	// Server
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError is a typed failure carried out of the mint core.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Stack     []string               `json:"-"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsDecision reports whether the error was raised by the phase/limit/proof checks
// rather than by the ledger or a wallet provider.
func (e *AppError) IsDecision() bool {
	switch e.Code {
	case ErrCodeCollectionNotReady, ErrCodeAssetIDRequired, ErrCodeSaleNotActive,
		ErrCodeLimitExceeded, ErrCodeNotWhitelisted, ErrCodeUnsupportedVariant,
		ErrCodeProofSigningFailed, ErrCodeInvalidDescriptor, ErrCodeValidation:
		return true
	}
	return false
}

// WithDetail attaches a detail value to the error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates an application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Stack:     getStackTrace(),
	}
}

// Newf creates an application error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func getStackTrace() []string {
	var stack []string
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		if strings.Contains(fn.Name(), "internal/common/errors") {
			continue
		}
		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, fn.Name()))
		if len(stack) >= 10 {
			break
		}
	}
	return stack
}

// Constructors for the decision-layer taxonomy.

func NewCollectionNotReady() *AppError {
	return New(ErrCodeCollectionNotReady, "Collection is not ready yet.")
}

func NewAssetIDRequired() *AppError {
	return New(ErrCodeAssetIDRequired, "An asset id is required for multi-token collections.")
}

func NewSaleNotActive() *AppError {
	return New(ErrCodeSaleNotActive, "Collection is not on sale")
}

func NewLimitExceeded(limit uint64) *AppError {
	return Newf(ErrCodeLimitExceeded, "You can't mint more than %d tokens in this transaction", limit).
		WithDetail("limit", limit)
}

func NewNotWhitelisted(reason string) *AppError {
	e := New(ErrCodeNotWhitelisted, "Your wallet is not part of presale.")
	if reason != "" {
		e.WithDetail("reason", reason)
	}
	return e
}

func NewUnsupportedVariant(variant string) *AppError {
	return New(ErrCodeUnsupportedVariant, "This is not supported contract type").
		WithDetail("variant", variant)
}

func NewProofSigningFailed(reason string) *AppError {
	return New(ErrCodeProofSigningFailed, "There is a problem while signing your video for minting").
		WithDetail("reason", reason)
}

func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

func NewExternalAPIError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeExternalAPI, fmt.Sprintf("External API operation failed: %s", operation)).
		WithDetail("operation", operation)
}

// AsAppError extracts an *AppError from the chain of err.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil && stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries an *AppError with the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
