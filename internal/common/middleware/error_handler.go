package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mint-agent-backend/internal/common/errors"
	"mint-agent-backend/internal/common/logger"
)

const requestIDKey = "request_id"

// Recovery turns panics into a JSON 500 response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		appErr := errors.New(errors.ErrCodeInternal, "Internal server error").
			WithDetail("panic", fmt.Sprintf("%v", recovered))
		sendErrorResponse(c, appErr)
	})
}

// RequestID tags every request with an id, reusing X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success   bool             `json:"success"`
	Error     *errors.AppError `json:"error"`
	Timestamp time.Time        `json:"timestamp"`
	RequestID string           `json:"request_id"`
	Path      string           `json:"path,omitempty"`
	Method    string           `json:"method,omitempty"`
}

// RespondError writes err as an ErrorResponse. Errors that are not *AppError are
// reported as internal failures.
func RespondError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "Internal server error")
	}
	sendErrorResponse(c, appErr)
}

func sendErrorResponse(c *gin.Context, appErr *errors.AppError) {
	requestID := GetRequestID(c)
	statusCode := StatusCode(appErr)

	logError(c, appErr, statusCode)

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: requestID,
		Path:      c.Request.URL.Path,
		Method:    c.Request.Method,
	})
}

// StatusCode maps an error code to its HTTP status.
func StatusCode(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeValidation, errors.ErrCodeAssetIDRequired, errors.ErrCodeLimitExceeded:
		return http.StatusBadRequest
	case errors.ErrCodeNotWhitelisted:
		return http.StatusForbidden
	case errors.ErrCodeSaleNotActive, errors.ErrCodeSaleNotStarted, errors.ErrCodeMaxMinted:
		return http.StatusConflict
	case errors.ErrCodeUnsupportedVariant:
		return http.StatusNotImplemented
	case errors.ErrCodeInsufficientFunds:
		return http.StatusPaymentRequired
	case errors.ErrCodeCollectionNotReady, errors.ErrCodeWalletMissing, errors.ErrCodeWrongNetwork:
		return http.StatusServiceUnavailable
	case errors.ErrCodeExternalAPI, errors.ErrCodeProofSigningFailed, errors.ErrCodeUnknownLedger:
		return http.StatusBadGateway
	case errors.ErrCodeInvalidDescriptor:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func logError(c *gin.Context, appErr *errors.AppError, status int) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	if appErr.Cause != nil {
		event = event.Err(appErr.Cause)
	}
	event.
		Str("request_id", GetRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Str("error_message", appErr.Message).
		Interface("details", appErr.Details).
		Msg("Request failed")
}

// GetRequestID returns the id set by RequestID.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}
