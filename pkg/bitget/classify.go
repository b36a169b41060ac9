package bitget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"bitget/pkg/core"
)

// FlexString decodes a JSON string or number into its textual form. Bitget
// sends envelope codes as "00000" over REST and as 0 over websocket.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := sonic.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	if string(data) == "null" {
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("code is neither string nor number: %s", data)
	}
	*s = FlexString(data)
	return nil
}

// envelope keeps each top-level member of a response undecoded, so a member
// of an unexpected type cannot hide the others. sonic decodes
// json.RawMessage natively.
type envelope map[string]json.RawMessage

func parseEnvelope(body []byte) (envelope, error) {
	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return env, nil
}

// member returns the raw value of key. JSON null counts as absent.
func (e envelope) member(key string) (json.RawMessage, bool) {
	raw := bytes.TrimSpace(e[key])
	if len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

// memberText renders a JSON string unquoted and any other value as its raw
// JSON text.
func memberText(raw json.RawMessage) string {
	var s string
	if err := sonic.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Classify inspects a 2xx response body. A JSON object carrying both "code"
// and "msg" whose code differs from successCode is returned as an
// *core.ExchangeError, whatever the types of those or any other members.
// Anything else, including a body that is not a JSON object, is an opaque
// success.
func Classify(body []byte, successCode string) error {
	env, err := parseEnvelope(body)
	if err != nil {
		return nil
	}
	rawCode, hasCode := env.member("code")
	rawMsg, hasMsg := env.member("msg")
	if !hasCode || !hasMsg {
		return nil
	}

	code := memberText(rawCode)
	if code == successCode {
		return nil
	}

	var requestID string
	if raw, ok := env.member("requestId"); ok {
		requestID = memberText(raw)
	}
	return core.NewExchangeError(mapErrorCode(code), 0, code, memberText(rawMsg), requestID)
}

// Decode extracts the "data" member of a success envelope into T.
func Decode[T any](body []byte) (T, error) {
	var out T
	env, err := parseEnvelope(body)
	if err != nil {
		return out, fmt.Errorf("unmarshal response: %w", err)
	}
	data, ok := env.member("data")
	if !ok {
		return out, nil
	}
	if err := sonic.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("unmarshal response data: %w", err)
	}
	return out, nil
}

// mapErrorCode assigns a category to a Bitget error code. Unlisted codes
// fall back on their numeric family.
func mapErrorCode(code string) core.ErrorType {
	switch code {
	case "40001", "40002", "40003", "40004", "40005", "40006", "40008",
		"40009", "40011", "40012", "40014", "40037", "30005", "30006", "30011", "30012":
		return core.ErrorTypeAuthentication
	case "429", "30007", "40010":
		return core.ErrorTypeRateLimit
	case "43012", "40754", "40762", "43117":
		return core.ErrorTypeInsufficientFunds
	case "43001", "40109", "40034":
		return core.ErrorTypeNotFound
	case "40017", "40019", "40020", "30001":
		return core.ErrorTypeBadRequest
	}

	switch {
	case strings.HasPrefix(code, "43"), strings.HasPrefix(code, "45"):
		return core.ErrorTypeInvalidOrder
	case strings.HasPrefix(code, "40"):
		return core.ErrorTypeBadRequest
	case strings.HasPrefix(code, "5"):
		return core.ErrorTypeServerError
	default:
		return core.ErrorTypeUnknown
	}
}
