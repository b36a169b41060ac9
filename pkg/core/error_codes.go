package core

import "errors"

// ErrorCode represents a machine-readable identifier for client-side failures.
// Exchange-side codes are carried verbatim in ExchangeError.Code instead.
type ErrorCode string

const (
	// ErrCodeInvalidConfig indicates the Config failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeUnsupportedMethod indicates an HTTP method other than GET or POST.
	ErrCodeUnsupportedMethod ErrorCode = "UNSUPPORTED_METHOD"
	// ErrCodeUnsupportedSignType indicates a signature scheme other than HmacSHA256.
	ErrCodeUnsupportedSignType ErrorCode = "UNSUPPORTED_SIGN_TYPE"
	// ErrCodeInvalidHeader indicates a missing or malformed authentication header.
	ErrCodeInvalidHeader ErrorCode = "INVALID_HEADER"
	// ErrCodeMissingParam indicates an endpoint's required parameter was not supplied.
	ErrCodeMissingParam ErrorCode = "MISSING_PARAM"
	// ErrCodeNoCredentials indicates an authenticated call without credentials.
	ErrCodeNoCredentials ErrorCode = "NO_CREDENTIALS"
	// ErrCodeUnknownOperation indicates an Operation with no endpoint mapping.
	ErrCodeUnknownOperation ErrorCode = "UNKNOWN_OPERATION"
	// ErrCodeClientClosed indicates use of a closed client.
	ErrCodeClientClosed ErrorCode = "CLIENT_CLOSED"
)

// IsErrorCode checks if the error is a ConfigError with the specified code.
func IsErrorCode(err error, code ErrorCode) bool {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Code == code
	}
	return false
}
