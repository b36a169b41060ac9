package signing

import (
	"golang.org/x/net/http/httpguts"

	"bitget/pkg/core"
)

const (
	HeaderContentType = "Content-Type"
	HeaderAccessKey   = "ACCESS-KEY"
	HeaderAccessSign  = "ACCESS-SIGN"
	HeaderTimestamp   = "ACCESS-TIMESTAMP"
	HeaderPassphrase  = "ACCESS-PASSPHRASE"
	HeaderLocale      = "locale"

	ContentTypeJSON = "application/json"
)

// Headers assembles the authentication header set. Every credential-derived
// header is mandatory; an empty or unsendable value fails construction.
// The secret never appears here, only the derived signature.
func Headers(apiKey, sign, timestamp, passphrase, locale string) (map[string]string, error) {
	headers := map[string]string{
		HeaderContentType: ContentTypeJSON,
	}

	for _, h := range [...]struct{ name, value string }{
		{HeaderAccessKey, apiKey},
		{HeaderAccessSign, sign},
		{HeaderTimestamp, timestamp},
		{HeaderPassphrase, passphrase},
	} {
		if h.value == "" {
			return nil, &core.ConfigError{Code: core.ErrCodeInvalidHeader, Field: h.name, Err: core.ErrMissingHeader}
		}
		if !httpguts.ValidHeaderFieldValue(h.value) {
			return nil, &core.ConfigError{Code: core.ErrCodeInvalidHeader, Field: h.name, Err: core.ErrInvalidHeader}
		}
		headers[h.name] = h.value
	}

	if err := setLocale(headers, locale); err != nil {
		return nil, err
	}
	return headers, nil
}

func publicHeaders(locale string) (map[string]string, error) {
	headers := map[string]string{HeaderContentType: ContentTypeJSON}
	if err := setLocale(headers, locale); err != nil {
		return nil, err
	}
	return headers, nil
}

func setLocale(headers map[string]string, locale string) error {
	if locale == "" {
		return nil
	}
	if !httpguts.ValidHeaderFieldValue(locale) {
		return &core.ConfigError{Code: core.ErrCodeInvalidHeader, Field: HeaderLocale, Err: core.ErrInvalidHeader}
	}
	headers[HeaderLocale] = locale
	return nil
}
