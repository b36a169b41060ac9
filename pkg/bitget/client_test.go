package bitget

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitget/internal/signing"
	"bitget/pkg/core"
)

const fixedMillis = 1700000000000

var fixedClock = func() time.Time { return time.UnixMilli(fixedMillis) }

type testServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*core.Config)) (*Client, *testServer) {
	t.Helper()

	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	config := core.DefaultConfig().
		WithBaseURL(ts.URL).
		WithCredentials(&core.Credentials{APIKey: "K", SecretKey: "S", Passphrase: "P"})
	for _, m := range mutate {
		m(config)
	}

	client, err := New(config, WithClock(fixedClock))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, ts
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestNew_Defaults(t *testing.T) {
	client, err := New(nil)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, core.DefaultBaseURL, client.Config().BaseURL)
	assert.Nil(t, client.builder)
}

func TestNew_RejectsRSA(t *testing.T) {
	config := core.DefaultConfig().
		WithCredentials(&core.Credentials{APIKey: "K", SecretKey: "S", Passphrase: "P"}).
		WithSignType(core.SignRSA)

	client, err := New(config)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, core.ErrUnsupportedSignType)

	_, err = New(core.DefaultConfig().WithSignType(core.SignRSA))
	assert.ErrorIs(t, err, core.ErrUnsupportedSignType)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(core.DefaultConfig().WithBaseURL("not a url"))
	require.Error(t, err)
	assert.True(t, core.IsConfigError(err))

	_, err = New(core.DefaultConfig().WithCredentials(&core.Credentials{APIKey: "K"}))
	assert.ErrorIs(t, err, core.ErrNoCredentials)
}

func TestNew_CopiesConfig(t *testing.T) {
	var apiKey, locale atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey.Store(r.Header.Get("ACCESS-KEY"))
		locale.Store(r.Header.Get("locale"))
		respond(`{"code":"00000","msg":"success","data":null}`)(w, r)
	}))
	defer server.Close()

	config := core.DefaultConfig().
		WithBaseURL(server.URL).
		WithCredentials(&core.Credentials{APIKey: "K", SecretKey: "S", Passphrase: "P"})
	client, err := New(config, WithClock(fixedClock))
	require.NoError(t, err)
	defer client.Close()

	config.SuccessCode = "0"
	config.Locale = "zh-CN"
	config.Credentials.APIKey = "changed"
	client.Config().SuccessCode = "1"

	_, err = client.Request(context.Background(), http.MethodGet, pathAccount, core.Params{"symbol": "BTCUSDT", "marginCoin": "USDT"})
	require.NoError(t, err)
	assert.Equal(t, "K", apiKey.Load())
	assert.Equal(t, "", locale.Load())
	assert.Equal(t, core.DefaultSuccessCode, client.Config().SuccessCode)
}

func TestClient_Request_SignedGet(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/mix/v1/account/account", r.URL.Path)
		assert.Equal(t, "marginCoin=USDT&symbol=BTCUSDT", r.URL.RawQuery)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "K", r.Header.Get("ACCESS-KEY"))
		assert.Equal(t, "r94Bb/bngrbmMmFAd+UQdYNr2IDX+EuXvXv16CGqY/c=", r.Header.Get("ACCESS-SIGN"))
		assert.Equal(t, "1700000000000", r.Header.Get("ACCESS-TIMESTAMP"))
		assert.Equal(t, "P", r.Header.Get("ACCESS-PASSPHRASE"))
		assert.Empty(t, r.Header.Get("locale"))

		respond(`{"code":"00000","msg":"success","data":{"x":1}}`)(w, r)
	})

	body, err := client.Request(context.Background(), http.MethodGet, "/api/mix/v1/account/account", core.Params{
		"symbol":     "BTCUSDT",
		"marginCoin": "USDT",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"00000","msg":"success","data":{"x":1}}`, string(body))
}

func TestClient_Request_SignedPost(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		assert.Equal(t, `{"force":"gtc","orderType":"limit","price":"50000","side":"buy","size":"0.001","symbol":"BTCUSDT"}`, string(body))
		assert.Empty(t, r.URL.RawQuery)

		ts := r.Header.Get("ACCESS-TIMESTAMP")
		want := signing.SignHMAC(signing.Prehash(ts, r.Method, r.URL.Path, body), "S")
		assert.Equal(t, want, r.Header.Get("ACCESS-SIGN"))
		assert.Equal(t, "tljHSx06fjyn8q8Ad/kM7iscRb/PWxGQPKTys/kiJv4=", r.Header.Get("ACCESS-SIGN"))

		respond(`{"code":"00000","msg":"success","data":{"orderId":"1"}}`)(w, r)
	})

	_, err := client.Request(context.Background(), http.MethodPost, "/api/v2/spot/trade/place-order", core.Params{
		"symbol":    "BTCUSDT",
		"side":      "buy",
		"orderType": "limit",
		"force":     "gtc",
		"price":     "50000",
		"size":      "0.001",
	})
	require.NoError(t, err)
}

func TestClient_Request_Locale(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "zh-CN", r.Header.Get("locale"))
		respond(`{"code":"00000","msg":"success"}`)(w, r)
	}, func(c *core.Config) { c.Locale = "zh-CN" })

	_, err := client.Request(context.Background(), http.MethodGet, pathAssets, nil)
	require.NoError(t, err)
}

func TestClient_Request_ExchangeError(t *testing.T) {
	client, _ := newTestClient(t, respond(`{"code":"40001","msg":"bad sign","requestId":"req-1"}`))

	body, err := client.Request(context.Background(), http.MethodGet, pathAssets, nil)
	require.Error(t, err)
	assert.Nil(t, body)

	var exErr *core.ExchangeError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, "40001", exErr.Code)
	assert.Equal(t, "bad sign", exErr.Message)
	assert.Equal(t, "req-1", exErr.RequestID)
	assert.Equal(t, http.StatusOK, exErr.StatusCode)
	assert.True(t, core.IsAuthenticationError(err))
	assert.False(t, core.IsRetryable(err))
}

func TestClient_Request_OpaqueSuccess(t *testing.T) {
	client, _ := newTestClient(t, respond(`plain text, not json`))

	body, err := client.Request(context.Background(), http.MethodGet, pathAssets, nil)
	require.NoError(t, err)
	assert.Equal(t, "plain text, not json", string(body))
}

func TestClient_Request_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":"40001","msg":"bad sign"}`))
	})

	_, err := client.Request(context.Background(), http.MethodGet, pathAssets, nil)
	require.Error(t, err)
	assert.False(t, core.IsExchangeError(err))

	var trErr *core.TransportError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, http.StatusInternalServerError, trErr.StatusCode)
	assert.Equal(t, core.ErrorTypeServerError, trErr.Type)
	assert.True(t, core.IsRetryable(err))
}

func TestClient_Request_UnsupportedMethod(t *testing.T) {
	client, ts := newTestClient(t, respond(`{}`))

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		_, err := client.Request(context.Background(), method, pathAssets, nil)
		assert.ErrorIs(t, err, core.ErrUnsupportedMethod)

		_, err = client.PublicRequest(context.Background(), method, pathTicker, nil)
		assert.ErrorIs(t, err, core.ErrUnsupportedMethod)
	}
	assert.Zero(t, ts.hits.Load())
}

func TestClient_Request_SerializationError(t *testing.T) {
	client, ts := newTestClient(t, respond(`{}`))

	_, err := client.Request(context.Background(), http.MethodGet, pathAssets, core.Params{"bad": struct{}{}})
	assert.True(t, core.IsSerializationError(err))
	assert.Zero(t, ts.hits.Load())
}

func TestClient_Request_NoCredentials(t *testing.T) {
	client, ts := newTestClient(t, respond(`{"code":"00000","msg":"success","data":[]}`), func(c *core.Config) {
		c.Credentials = nil
	})

	_, err := client.Request(context.Background(), http.MethodGet, pathAssets, nil)
	assert.ErrorIs(t, err, core.ErrNoCredentials)
	assert.Zero(t, ts.hits.Load())

	_, err = client.PublicRequest(context.Background(), http.MethodGet, pathTicker, core.Params{"symbol": "BTCUSDT"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, ts.hits.Load())
}

func TestClient_PublicRequest_Unsigned(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "symbol=BTCUSDT", r.URL.RawQuery)
		assert.Empty(t, r.Header.Get("ACCESS-KEY"))
		assert.Empty(t, r.Header.Get("ACCESS-SIGN"))
		respond(`{"code":"00000","msg":"success","data":[]}`)(w, r)
	})

	_, err := client.PublicRequest(context.Background(), http.MethodGet, pathTicker, core.Params{"symbol": "BTCUSDT"})
	require.NoError(t, err)
}

func TestClient_Do(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathOrderDetail, r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("ACCESS-SIGN"))
		respond(`{"code":"00000","msg":"success","data":{}}`)(w, r)
	})

	_, err := client.Do(context.Background(), core.OpGetOrderDetail, core.Params{"symbol": "BTCUSDT_UMCBL", "orderId": "1"})
	require.NoError(t, err)

	_, err = client.Do(context.Background(), core.Operation(999), nil)
	assert.True(t, core.IsErrorCode(err, core.ErrCodeUnknownOperation))
}

func TestClient_Close(t *testing.T) {
	client, ts := newTestClient(t, respond(`{}`))

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())

	_, err := client.Request(context.Background(), http.MethodGet, pathAssets, nil)
	assert.ErrorIs(t, err, core.ErrClientClosed)
	_, err = client.PublicRequest(context.Background(), http.MethodGet, pathTicker, nil)
	assert.ErrorIs(t, err, core.ErrClientClosed)
	assert.Zero(t, ts.hits.Load())
}

func TestClient_ServerTimeAndSync(t *testing.T) {
	var stamps []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == pathServerTime {
			respond(`{"code":"00000","msg":"success","data":{"serverTime":"1700000005000"}}`)(w, r)
			return
		}
		stamps = append(stamps, r.Header.Get("ACCESS-TIMESTAMP"))
		respond(`{"code":"00000","msg":"success"}`)(w, r)
	}, func(c *core.Config) { c.UseServerTime = true })

	server, err := client.ServerTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1700000005000), server.UnixMilli())

	_, err = client.Request(context.Background(), http.MethodGet, pathAssets, nil)
	require.NoError(t, err)

	offset, err := client.SyncTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, offset)
	assert.Equal(t, 5*time.Second, client.TimeOffset())

	_, err = client.Request(context.Background(), http.MethodGet, pathAssets, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"1700000000000", "1700000005000"}, stamps)
}

func TestClient_Go(t *testing.T) {
	client, _ := newTestClient(t, respond(`{"code":"00000","msg":"success","data":{"serverTime":"1"}}`))

	result := <-client.Go(context.Background(), core.OpServerTime, nil)
	require.NoError(t, result.Err)
	assert.Contains(t, string(result.Body), "serverTime")
}

func TestClient_DoAll(t *testing.T) {
	var inFlight, peak atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)

		symbol := r.URL.Query().Get("symbol")
		if symbol == "BAD" {
			respond(`{"code":"40034","msg":"symbol does not exist"}`)(w, r)
			return
		}
		respond(`{"code":"00000","msg":"success","data":"` + symbol + `"}`)(w, r)
	}, func(c *core.Config) { c.MaxConcurrency = 3 })

	symbols := []string{"A", "B", "BAD", "D", "E", "F", "G", "H"}
	calls := make([]Call, len(symbols))
	for i, s := range symbols {
		calls[i] = Call{Op: core.OpGetTicker, Params: core.Params{"symbol": s}}
	}

	results := client.DoAll(context.Background(), calls...)
	require.Len(t, results, len(symbols))

	for i, s := range symbols {
		if s == "BAD" {
			assert.True(t, core.IsExchangeError(results[i].Err))
			continue
		}
		require.NoError(t, results[i].Err)
		data, err := Decode[string](results[i].Body)
		require.NoError(t, err)
		assert.Equal(t, s, data)
	}
	assert.LessOrEqual(t, peak.Load(), int32(3))

	assert.Empty(t, client.DoAll(context.Background()))
}

func TestClient_ContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, respond(`{}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Request(ctx, http.MethodGet, pathAssets, nil)
	require.Error(t, err)
	assert.True(t, core.IsTransportError(err))
}

func TestSupportedOperations(t *testing.T) {
	ops := SupportedOperations()
	assert.Len(t, ops, len(endpoints))
	assert.Equal(t, core.OpServerTime, ops[0])
	assert.Equal(t, core.OpGetFundFlow, ops[len(ops)-1])
}
