package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want string
	}{
		{"server_time", OpServerTime, "SERVER_TIME"},
		{"get_ticker", OpGetTicker, "GET_TICKER"},
		{"get_order_book", OpGetOrderBook, "GET_ORDER_BOOK"},
		{"set_leverage", OpSetLeverage, "SET_LEVERAGE"},
		{"place_spot_order", OpPlaceSpotOrder, "PLACE_SPOT_ORDER"},
		{"batch_cancel_spot_orders", OpBatchCancelSpotOrders, "BATCH_CANCEL_SPOT_ORDERS"},
		{"cancel_futures_orders", OpCancelFuturesOrders, "CANCEL_FUTURES_ORDERS"},
		{"get_spot_unfilled_orders", OpGetSpotUnfilledOrders, "GET_SPOT_UNFILLED_ORDERS"},
		{"transfer", OpTransfer, "TRANSFER"},
		{"get_fund_flow", OpGetFundFlow, "GET_FUND_FLOW"},
		{"negative", Operation(-1), "UNKNOWN"},
		{"past_end", OpGetFundFlow + 1, "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.String())
		})
	}
}

func TestOperation_NamesAreUnique(t *testing.T) {
	seen := map[string]Operation{}
	for op := OpServerTime; op <= OpGetFundFlow; op++ {
		name := op.String()
		assert.NotEqual(t, "UNKNOWN", name, "operation %d", int(op))
		_, dup := seen[name]
		assert.False(t, dup, name)
		seen[name] = op
	}
	assert.Len(t, seen, 20)
}
