package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Keys(t *testing.T) {
	p := Params{"symbol": "BTCUSDT", "marginCoin": "USDT", "limit": 10, "Zeta": true}

	assert.Equal(t, []string{"Zeta", "limit", "marginCoin", "symbol"}, p.Keys())
	assert.Empty(t, Params{}.Keys())
}

func TestParams_Set(t *testing.T) {
	p := Params{}
	result := p.Set("symbol", "BTCUSDT").
		SetIfNotEmpty("clientOid", "").
		SetIfNotEmpty("orderId", "42")

	assert.Equal(t, Params{"symbol": "BTCUSDT", "orderId": "42"}, result)
	assert.NotContains(t, p, "clientOid")
}

func TestNewRequest(t *testing.T) {
	req := NewRequest("GET", "/api/v2/spot/market/tickers")

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/api/v2/spot/market/tickers", req.Path)
	assert.NotNil(t, req.Params)
	assert.False(t, req.RequireAuth)
}

func TestRequest_Chaining(t *testing.T) {
	req := NewRequest("POST", "/api/v2/spot/trade/place-order").
		SetParam("symbol", "BTCUSDT").
		SetParams(Params{"side": "buy", "size": "1"}).
		SetRequireAuth(true)

	assert.Equal(t, Params{"symbol": "BTCUSDT", "side": "buy", "size": "1"}, req.Params)
	assert.True(t, req.RequireAuth)
}

func TestRequest_NilParams(t *testing.T) {
	req := &Request{Method: "GET", Path: "/x"}
	req.SetParam("a", "1")
	assert.Equal(t, Params{"a": "1"}, req.Params)

	req = &Request{Method: "GET", Path: "/x"}
	req.SetParams(nil)
	assert.NotNil(t, req.Params)
	assert.Empty(t, req.Params)
}
