package bitget

import (
	"context"
	"net/http"

	"bitget/pkg/core"
)

// FillsRequest selects the futures fills of one order.
type FillsRequest struct {
	Symbol  string `json:"symbol" validate:"required"`
	OrderID string `json:"orderId" validate:"required"`
}

// OrderDetailRequest selects one futures order.
type OrderDetailRequest struct {
	Symbol    string `json:"symbol" validate:"required"`
	OrderID   string `json:"orderId" validate:"required_without=ClientOID"`
	ClientOID string `json:"clientOid"`
}

// UnfilledOrdersRequest selects open spot orders. Times are Unix milliseconds.
type UnfilledOrdersRequest struct {
	Symbol    string `json:"symbol" validate:"required"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime" validate:"omitempty,gtefield=StartTime"`
	Limit     int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// GetFills returns the executions of a futures order.
func (c *Client) GetFills(ctx context.Context, req FillsRequest) ([]Fill, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	body, err := c.Request(ctx, http.MethodGet, pathFills, core.Params{
		"symbol":  req.Symbol,
		"orderId": req.OrderID,
	})
	if err != nil {
		return nil, err
	}
	return Decode[[]Fill](body)
}

// GetOrderDetail returns a futures order.
func (c *Client) GetOrderDetail(ctx context.Context, req OrderDetailRequest) (*FuturesOrder, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	params := core.Params{"symbol": req.Symbol}
	params.SetIfNotEmpty("orderId", req.OrderID)
	params.SetIfNotEmpty("clientOid", req.ClientOID)

	body, err := c.Request(ctx, http.MethodGet, pathOrderDetail, params)
	if err != nil {
		return nil, err
	}
	return decodePtr[FuturesOrder](body)
}

// GetSpotUnfilledOrders returns the open spot orders on a symbol.
func (c *Client) GetSpotUnfilledOrders(ctx context.Context, req UnfilledOrdersRequest) ([]SpotOrder, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	params := core.Params{"symbol": req.Symbol}
	if req.StartTime > 0 {
		params["startTime"] = req.StartTime
	}
	if req.EndTime > 0 {
		params["endTime"] = req.EndTime
	}
	if req.Limit > 0 {
		params["limit"] = req.Limit
	}

	body, err := c.Request(ctx, http.MethodGet, pathSpotUnfilledOrders, params)
	if err != nil {
		return nil, err
	}
	return Decode[[]SpotOrder](body)
}
