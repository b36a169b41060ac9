package core

// Operation names a REST endpoint call site.
type Operation int

// Operation constants define all endpoints the client knows how to call.
const (
	// OpServerTime retrieves the exchange clock.
	OpServerTime Operation = iota
	// OpGetTicker retrieves spot ticker data.
	OpGetTicker
	// OpGetCandles retrieves spot candlesticks.
	OpGetCandles
	// OpGetOrderBook retrieves spot order book depth.
	OpGetOrderBook
	// OpGetAccount retrieves a futures account by symbol and margin coin.
	OpGetAccount
	// OpGetPositions retrieves all futures positions.
	OpGetPositions
	// OpSetLeverage changes futures leverage.
	OpSetLeverage
	// OpPlaceSpotOrder submits a spot order.
	OpPlaceSpotOrder
	// OpCancelSpotOrder cancels a spot order.
	OpCancelSpotOrder
	// OpBatchCancelSpotOrders cancels several spot orders at once.
	OpBatchCancelSpotOrders
	// OpCancelSpotSymbolOrders cancels every spot order on a symbol.
	OpCancelSpotSymbolOrders
	// OpCancelFuturesOrder cancels a futures order.
	OpCancelFuturesOrder
	// OpCancelFuturesOrders cancels several futures orders at once.
	OpCancelFuturesOrders
	// OpGetFills retrieves futures fills for an order.
	OpGetFills
	// OpGetOrderDetail retrieves a futures order.
	OpGetOrderDetail
	// OpGetSpotUnfilledOrders retrieves open spot orders.
	OpGetSpotUnfilledOrders
	// OpGetAssets retrieves all spot balances.
	OpGetAssets
	// OpGetAsset retrieves the spot balance for one coin.
	OpGetAsset
	// OpTransfer moves funds between account types.
	OpTransfer
	// OpGetFundFlow retrieves the spot bill history.
	OpGetFundFlow
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	names := [...]string{
		"SERVER_TIME",
		"GET_TICKER",
		"GET_CANDLES",
		"GET_ORDER_BOOK",
		"GET_ACCOUNT",
		"GET_POSITIONS",
		"SET_LEVERAGE",
		"PLACE_SPOT_ORDER",
		"CANCEL_SPOT_ORDER",
		"BATCH_CANCEL_SPOT_ORDERS",
		"CANCEL_SPOT_SYMBOL_ORDERS",
		"CANCEL_FUTURES_ORDER",
		"CANCEL_FUTURES_ORDERS",
		"GET_FILLS",
		"GET_ORDER_DETAIL",
		"GET_SPOT_UNFILLED_ORDERS",
		"GET_ASSETS",
		"GET_ASSET",
		"TRANSFER",
		"GET_FUND_FLOW",
	}
	if o < 0 || int(o) >= len(names) {
		return "UNKNOWN"
	}
	return names[o]
}
