package core

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the category of a failure, used for retry decisions.
type ErrorType int

// Error type constants categorize errors for proper handling and retry logic.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeNetwork indicates a network connectivity issue.
	ErrorTypeNetwork
	// ErrorTypeTimeout indicates the request exceeded its deadline.
	ErrorTypeTimeout
	// ErrorTypeRateLimit indicates rate limit was exceeded.
	ErrorTypeRateLimit
	// ErrorTypeAuthentication indicates invalid credentials, signature or timestamp.
	ErrorTypeAuthentication
	// ErrorTypeBadRequest indicates invalid request parameters.
	ErrorTypeBadRequest
	// ErrorTypeNotFound indicates the requested resource does not exist.
	ErrorTypeNotFound
	// ErrorTypeServerError indicates a server-side error.
	ErrorTypeServerError
	// ErrorTypeInsufficientFunds indicates account lacks required balance.
	ErrorTypeInsufficientFunds
	// ErrorTypeInvalidOrder indicates the order violates exchange rules.
	ErrorTypeInvalidOrder
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	names := [...]string{
		"UNKNOWN",
		"NETWORK",
		"TIMEOUT",
		"RATE_LIMIT",
		"AUTHENTICATION",
		"BAD_REQUEST",
		"NOT_FOUND",
		"SERVER_ERROR",
		"INSUFFICIENT_FUNDS",
		"INVALID_ORDER",
	}
	if t < 0 || int(t) >= len(names) {
		return "UNKNOWN"
	}
	return names[t]
}

// Sentinel errors for common error conditions.
var (
	// ErrUnsupportedMethod is returned for an HTTP method other than GET or POST.
	ErrUnsupportedMethod = errors.New("unsupported http method")
	// ErrUnsupportedSignType is returned for any signature scheme other than HmacSHA256.
	ErrUnsupportedSignType = errors.New("unsupported signature scheme")
	// ErrMissingHeader is returned when a credential-derived header would be empty.
	ErrMissingHeader = errors.New("missing authentication header")
	// ErrInvalidHeader is returned when a header value cannot be sent on the wire.
	ErrInvalidHeader = errors.New("invalid header value")
	// ErrMissingParam is returned when an endpoint's required parameter is absent.
	ErrMissingParam = errors.New("missing required parameter")
	// ErrNoCredentials is returned when no API credentials are configured.
	ErrNoCredentials = errors.New("no credentials configured")
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
	// ErrNotConnected is returned when WebSocket is not connected.
	ErrNotConnected = errors.New("websocket not connected")
)

// ConfigError reports a programmer or configuration mistake. It is raised
// before any network I/O and is never worth retrying.
type ConfigError struct {
	Code ErrorCode
	// Field names the offending parameter or header, when there is one.
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error (%s) %s: %v", e.Code, e.Field, e.Err)
	}
	return fmt.Sprintf("config error (%s): %v", e.Code, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SerializationError reports a parameter that cannot be encoded deterministically.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("serialize parameter %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("serialize parameters: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// TransportError reports an infrastructure failure: the network call failed,
// or the server answered with a non-2xx status. It is the only retryable class,
// and a retry must rebuild and re-sign the request.
type TransportError struct {
	Type ErrorType
	// StatusCode is zero when no response was received.
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport %s (%d): %s", e.Type, e.StatusCode, truncate(string(e.Body), 512))
	}
	return fmt.Sprintf("transport %s: %v", e.Type, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewStatusError builds the TransportError for a non-2xx response.
func NewStatusError(statusCode int, body []byte) *TransportError {
	return &TransportError{
		Type:       StatusErrorType(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Err:        fmt.Errorf("http status %d", statusCode),
	}
}

// StatusErrorType maps an HTTP status code to an ErrorType.
func StatusErrorType(statusCode int) ErrorType {
	switch {
	case statusCode >= 500:
		return ErrorTypeServerError
	case statusCode == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return ErrorTypeAuthentication
	case statusCode == http.StatusBadRequest:
		return ErrorTypeBadRequest
	case statusCode == http.StatusNotFound:
		return ErrorTypeNotFound
	default:
		return ErrorTypeUnknown
	}
}

// ExchangeError represents a well-formed error envelope returned by the exchange.
// Code, Message and RequestID are carried verbatim.
type ExchangeError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// StatusCode is the HTTP status code of the response carrying the envelope.
	StatusCode int `json:"status_code"`
	// Code is the exchange-specific error code.
	Code string `json:"code"`
	// Message is the human-readable error description.
	Message string `json:"message"`
	// RequestID is the exchange trace id, empty when the envelope had none.
	RequestID string `json:"request_id,omitempty"`
	// Timestamp is when the error was classified.
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface for ExchangeError.
func (e *ExchangeError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("[bitget] %s (%s): %s [request %s]", e.Type, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("[bitget] %s (%s): %s", e.Type, e.Code, e.Message)
}

// NewExchangeError creates a new ExchangeError. The timestamp is set to the current time.
func NewExchangeError(errorType ErrorType, statusCode int, code, message, requestID string) *ExchangeError {
	return &ExchangeError{
		Type:       errorType,
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		RequestID:  requestID,
		Timestamp:  time.Now(),
	}
}

// IsConfigError returns true if err is, or wraps, a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsSerializationError returns true if err is, or wraps, a SerializationError.
func IsSerializationError(err error) bool {
	var e *SerializationError
	return errors.As(err, &e)
}

// IsTransportError returns true if err is, or wraps, a TransportError.
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// IsExchangeError returns true if err is, or wraps, an ExchangeError.
func IsExchangeError(err error) bool {
	var e *ExchangeError
	return errors.As(err, &e)
}

// IsRetryable returns true only for transport failures. Configuration,
// serialization and exchange rejections will fail the same way again.
func IsRetryable(err error) bool {
	return IsTransportError(err)
}

// IsRateLimitError returns true if the error is a rate limit violation from either layer.
func IsRateLimitError(err error) bool {
	return errorType(err) == ErrorTypeRateLimit
}

// IsAuthenticationError returns true if the error is an authentication failure.
// Authentication errors require credential validation and are not retryable.
func IsAuthenticationError(err error) bool {
	return errorType(err) == ErrorTypeAuthentication
}

// IsTerminalError returns true if the exchange rejected the request for a
// reason a resend cannot fix.
func IsTerminalError(err error) bool {
	var e *ExchangeError
	if errors.As(err, &e) {
		return e.Type == ErrorTypeInsufficientFunds ||
			e.Type == ErrorTypeInvalidOrder ||
			e.Type == ErrorTypeNotFound
	}
	return false
}

func errorType(err error) ErrorType {
	var ex *ExchangeError
	if errors.As(err, &ex) {
		return ex.Type
	}
	var tr *TransportError
	if errors.As(err, &tr) {
		return tr.Type
	}
	return ErrorTypeUnknown
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
