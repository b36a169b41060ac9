package signing

import (
	"math"
	"net/url"
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitget/pkg/core"
)

func TestEncodeQuery_SortsKeys(t *testing.T) {
	query, err := EncodeQuery(core.Params{
		"symbol":     "BTCUSDT",
		"marginCoin": "USDT",
	})
	require.NoError(t, err)
	assert.Equal(t, "?marginCoin=USDT&symbol=BTCUSDT", query)
}

func TestEncodeQuery_Empty(t *testing.T) {
	query, err := EncodeQuery(core.Params{})
	require.NoError(t, err)
	assert.Equal(t, "", query)

	query, err = EncodeQuery(nil)
	require.NoError(t, err)
	assert.Equal(t, "", query)
}

func TestEncodeQuery_StrictlyAscending(t *testing.T) {
	params := core.Params{
		"z": "1", "a": "2", "limit": 100, "endTime": int64(1700000000000),
		"B": "upper", "b": "lower", "startTime": uint64(1), "flag": true,
	}

	query, err := EncodeQuery(params)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(query, "?"))

	pairs := strings.Split(strings.TrimPrefix(query, "?"), "&")
	require.Len(t, pairs, len(params))
	for i := 1; i < len(pairs); i++ {
		prev := strings.SplitN(pairs[i-1], "=", 2)[0]
		cur := strings.SplitN(pairs[i], "=", 2)[0]
		assert.Less(t, prev, cur)
	}
}

func TestEncodeQuery_Idempotent(t *testing.T) {
	params := core.Params{
		"symbol": "BTCUSDT",
		"period": "1min",
		"limit":  "100",
		"note":   "a b&c",
	}

	first, err := EncodeQuery(params)
	require.NoError(t, err)

	values, err := url.ParseQuery(strings.TrimPrefix(first, "?"))
	require.NoError(t, err)

	decoded := core.Params{}
	for k := range values {
		decoded[k] = values.Get(k)
	}

	second, err := EncodeQuery(decoded)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "a b&c", values.Get("note"))
}

func TestEncodeQuery_ValueTypes(t *testing.T) {
	price, _, err := apd.NewFromString("50000.10")
	require.NoError(t, err)

	query, err := EncodeQuery(core.Params{
		"a": 42,
		"b": int64(-7),
		"c": 0.001,
		"d": false,
		"e": price,
		"f": *price,
	})
	require.NoError(t, err)
	assert.Equal(t, "?a=42&b=-7&c=0.001&d=false&e=50000.10&f=50000.10", query)
}

func TestEncodeQuery_RejectsUnsupported(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"slice", []string{"a"}},
		{"map", map[string]string{"a": "b"}},
		{"nil", nil},
		{"nan", math.NaN()},
		{"nil decimal", (*apd.Decimal)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeQuery(core.Params{"symbol": "BTCUSDT", "bad": tt.value})
			require.Error(t, err)
			assert.True(t, core.IsSerializationError(err))

			var serErr *core.SerializationError
			require.ErrorAs(t, err, &serErr)
			assert.Equal(t, "bad", serErr.Key)
		})
	}
}

func TestEncodeBody_SortedAndCompact(t *testing.T) {
	body, err := EncodeBody(core.Params{
		"symbol":    "BTCUSDT",
		"side":      "buy",
		"orderType": "limit",
		"force":     "gtc",
		"price":     "50000",
		"size":      "0.001",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"force":"gtc","orderType":"limit","price":"50000","side":"buy","size":"0.001","symbol":"BTCUSDT"}`, string(body))
}

func TestEncodeBody_Empty(t *testing.T) {
	body, err := EncodeBody(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body))

	body, err = EncodeBody(core.Params{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body))
}

func TestEncodeBody_Deterministic(t *testing.T) {
	params := core.Params{
		"nested": map[string]any{"z": 1, "a": "x", "m": []string{"q", "p"}},
		"b":      2,
		"a":      "1",
	}

	first, err := EncodeBody(params)
	require.NoError(t, err)
	for range 20 {
		again, err := EncodeBody(params)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, `{"a":"1","b":2,"nested":{"a":"x","m":["q","p"],"z":1}}`, string(first))
}

func TestEncodeBody_Decimal(t *testing.T) {
	size, _, err := apd.NewFromString("0.0100")
	require.NoError(t, err)

	body, err := EncodeBody(core.Params{"size": size})
	require.NoError(t, err)
	assert.Equal(t, `{"size":"0.0100"}`, string(body))
}

func TestEncodeBody_RejectsUnencodable(t *testing.T) {
	_, err := EncodeBody(core.Params{"bad": math.Inf(1)})
	require.Error(t, err)
	assert.True(t, core.IsSerializationError(err))

	_, err = EncodeBody(core.Params{"bad": make(chan int)})
	require.Error(t, err)
	assert.True(t, core.IsSerializationError(err))
}
