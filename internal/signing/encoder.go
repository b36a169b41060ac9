// Package signing turns a method, path and parameter map into a signed
// Bitget request: canonical encoding, prehash construction, HMAC signing and
// header assembly.
package signing

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"

	"bitget/pkg/core"
)

var emptyBody = []byte("{}")

// EncodeQuery renders params as "?k1=v1&k2=v2" with keys in ascending
// lexicographic order. An empty map yields "" (no trailing "?").
func EncodeQuery(params core.Params) (string, error) {
	if len(params) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteByte('?')
	for i, k := range params.Keys() {
		v, err := formatValue(params[k])
		if err != nil {
			return "", &core.SerializationError{Key: k, Err: err}
		}
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	return b.String(), nil
}

// EncodeBody renders params as a JSON object with sorted keys at every depth.
// An empty or nil map yields "{}". The returned slice is what gets signed and
// what gets sent.
func EncodeBody(params core.Params) ([]byte, error) {
	if len(params) == 0 {
		return emptyBody, nil
	}

	normalized := make(map[string]any, len(params))
	for k, v := range params {
		nv, err := normalizeBodyValue(v)
		if err != nil {
			return nil, &core.SerializationError{Key: k, Err: err}
		}
		normalized[k] = nv
	}

	body, err := sonic.ConfigStd.Marshal(normalized)
	if err != nil {
		return nil, &core.SerializationError{Err: err}
	}
	return body, nil
}

func formatValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return formatFloat(float64(val), 32)
	case float64:
		return formatFloat(val, 64)
	case apd.Decimal:
		return val.String(), nil
	case *apd.Decimal:
		if val == nil {
			return "", errors.New("nil decimal")
		}
		return val.String(), nil
	case fmt.Stringer:
		return val.String(), nil
	case nil:
		return "", errors.New("nil value")
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

func formatFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("non-finite float %v", f)
	}
	return strconv.FormatFloat(f, 'f', -1, bits), nil
}

// normalizeBodyValue converts decimals to their string form, which is how the
// API expects prices and sizes. Everything else is left to the JSON encoder.
func normalizeBodyValue(v any) (any, error) {
	switch val := v.(type) {
	case apd.Decimal:
		return val.String(), nil
	case *apd.Decimal:
		if val == nil {
			return nil, errors.New("nil decimal")
		}
		return val.String(), nil
	case float32:
		return formatFloat(float64(val), 32)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("non-finite float %v", val)
		}
		return val, nil
	default:
		return v, nil
	}
}
