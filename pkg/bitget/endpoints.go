package bitget

import (
	"net/http"

	"bitget/pkg/core"
)

const (
	pathServerTime = "/api/v2/public/time"

	pathTicker    = "/api/v2/spot/market/tickers"
	pathCandles   = "/api/v2/spot/market/candles"
	pathOrderBook = "/api/v2/spot/market/orderbook"

	pathAccount     = "/api/mix/v1/account/account"
	pathPositions   = "/api/mix/v1/position/allPosition"
	pathSetLeverage = "/api/mix/v1/account/setLeverage"

	pathPlaceSpotOrder         = "/api/v2/spot/trade/place-order"
	pathCancelSpotOrder        = "/api/v2/spot/trade/cancel-order"
	pathBatchCancelSpotOrders  = "/api/v2/spot/trade/batch-cancel-order"
	pathCancelSpotSymbolOrders = "/api/v2/spot/trade/cancel-symbol-order"
	pathCancelFuturesOrder     = "/api/mix/v1/order/cancel-order"
	pathCancelFuturesOrders    = "/api/mix/v1/order/cancel-batch-orders"

	pathFills              = "/api/mix/v1/order/fills"
	pathOrderDetail        = "/api/mix/v1/order/detail"
	pathSpotUnfilledOrders = "/api/v2/spot/trade/unfilled-orders"

	pathAssets   = "/api/spot/v1/account/assets"
	pathAsset    = "/api/v2/spot/account/assets"
	pathTransfer = "/api/spot/v1/wallet/transfer"
	pathFundFlow = "/api/v2/spot/account/bills"
)

type endpoint struct {
	Method string
	Path   string
	Auth   bool
}

var endpoints = map[core.Operation]endpoint{
	core.OpServerTime:   {http.MethodGet, pathServerTime, false},
	core.OpGetTicker:    {http.MethodGet, pathTicker, false},
	core.OpGetCandles:   {http.MethodGet, pathCandles, false},
	core.OpGetOrderBook: {http.MethodGet, pathOrderBook, false},

	core.OpGetAccount:   {http.MethodGet, pathAccount, true},
	core.OpGetPositions: {http.MethodGet, pathPositions, true},
	core.OpSetLeverage:  {http.MethodPost, pathSetLeverage, true},

	core.OpPlaceSpotOrder:         {http.MethodPost, pathPlaceSpotOrder, true},
	core.OpCancelSpotOrder:        {http.MethodPost, pathCancelSpotOrder, true},
	core.OpBatchCancelSpotOrders:  {http.MethodPost, pathBatchCancelSpotOrders, true},
	core.OpCancelSpotSymbolOrders: {http.MethodPost, pathCancelSpotSymbolOrders, true},
	core.OpCancelFuturesOrder:     {http.MethodPost, pathCancelFuturesOrder, true},
	core.OpCancelFuturesOrders:    {http.MethodPost, pathCancelFuturesOrders, true},

	core.OpGetFills:              {http.MethodGet, pathFills, true},
	core.OpGetOrderDetail:        {http.MethodGet, pathOrderDetail, true},
	core.OpGetSpotUnfilledOrders: {http.MethodGet, pathSpotUnfilledOrders, true},

	core.OpGetAssets:   {http.MethodGet, pathAssets, true},
	core.OpGetAsset:    {http.MethodGet, pathAsset, true},
	core.OpTransfer:    {http.MethodPost, pathTransfer, true},
	core.OpGetFundFlow: {http.MethodGet, pathFundFlow, true},
}

// SupportedOperations lists every operation Do can dispatch.
func SupportedOperations() []core.Operation {
	ops := make([]core.Operation, 0, len(endpoints))
	for op := core.OpServerTime; op <= core.OpGetFundFlow; op++ {
		if _, ok := endpoints[op]; ok {
			ops = append(ops, op)
		}
	}
	return ops
}
