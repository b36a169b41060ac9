package bitget

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"bitget/pkg/core"
)

// SpotOrderRequest places a spot order.
type SpotOrderRequest struct {
	Symbol string `json:"symbol" validate:"required"`
	// Side is "buy" or "sell".
	Side string `json:"side" validate:"required,oneof=buy sell"`
	// OrderType is "limit" or "market".
	OrderType string `json:"orderType" validate:"required,oneof=limit market"`
	// Force is the time in force: "gtc", "post_only", "fok" or "ioc".
	Force string       `json:"force" validate:"required"`
	Price *apd.Decimal `json:"price" validate:"required_if=OrderType limit"`
	Size  *apd.Decimal `json:"size" validate:"required"`
	// ClientOID is generated when empty.
	ClientOID string `json:"clientOid"`
}

// CancelSpotOrderRequest cancels one spot order by exchange or client id.
type CancelSpotOrderRequest struct {
	Symbol    string `json:"symbol" validate:"required"`
	OrderID   string `json:"orderId" validate:"required_without=ClientOID"`
	ClientOID string `json:"clientOid"`
}

// BatchCancelSpotRequest cancels several spot orders on one symbol.
type BatchCancelSpotRequest struct {
	Symbol   string   `json:"symbol" validate:"required"`
	OrderIDs []string `json:"orderList" validate:"required,min=1,max=50,dive,required"`
}

// CancelFuturesOrderRequest cancels one futures order.
type CancelFuturesOrderRequest struct {
	Symbol     string `json:"symbol" validate:"required"`
	MarginCoin string `json:"marginCoin" validate:"required"`
	OrderID    string `json:"orderId" validate:"required"`
}

// CancelFuturesOrdersRequest cancels several futures orders on one symbol.
type CancelFuturesOrdersRequest struct {
	Symbol     string   `json:"symbol" validate:"required"`
	MarginCoin string   `json:"marginCoin" validate:"required"`
	OrderIDs   []string `json:"orderIds" validate:"required,min=1,dive,required"`
}

type batchOrderItem struct {
	OrderID string `json:"orderId"`
	Symbol  string `json:"symbol"`
}

// PlaceSpotOrder submits a spot order.
func (c *Client) PlaceSpotOrder(ctx context.Context, req SpotOrderRequest) (*OrderResult, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	clientOID := req.ClientOID
	if clientOID == "" {
		clientOID = uuid.NewString()
	}

	params := core.Params{
		"symbol":    req.Symbol,
		"side":      req.Side,
		"orderType": req.OrderType,
		"force":     req.Force,
		"size":      req.Size,
		"clientOid": clientOID,
	}
	if req.Price != nil {
		params["price"] = req.Price
	}

	body, err := c.Request(ctx, http.MethodPost, pathPlaceSpotOrder, params)
	if err != nil {
		return nil, err
	}
	return decodePtr[OrderResult](body)
}

// CancelSpotOrder cancels a spot order.
func (c *Client) CancelSpotOrder(ctx context.Context, req CancelSpotOrderRequest) (*OrderResult, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	params := core.Params{"symbol": req.Symbol}
	params.SetIfNotEmpty("orderId", req.OrderID)
	params.SetIfNotEmpty("clientOid", req.ClientOID)

	body, err := c.Request(ctx, http.MethodPost, pathCancelSpotOrder, params)
	if err != nil {
		return nil, err
	}
	return decodePtr[OrderResult](body)
}

// BatchCancelSpotOrders cancels up to 50 spot orders in one request.
func (c *Client) BatchCancelSpotOrders(ctx context.Context, req BatchCancelSpotRequest) (*BatchResult, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	items := make([]batchOrderItem, len(req.OrderIDs))
	for i, id := range req.OrderIDs {
		items[i] = batchOrderItem{OrderID: id, Symbol: req.Symbol}
	}

	body, err := c.Request(ctx, http.MethodPost, pathBatchCancelSpotOrders, core.Params{
		"symbol":    req.Symbol,
		"batchMode": "multiple",
		"orderList": items,
	})
	if err != nil {
		return nil, err
	}
	return decodePtr[BatchResult](body)
}

// CancelSpotSymbolOrders cancels every open spot order on symbol.
func (c *Client) CancelSpotSymbolOrders(ctx context.Context, symbol string) (string, error) {
	if symbol == "" {
		return "", missingParam("symbol")
	}

	body, err := c.Request(ctx, http.MethodPost, pathCancelSpotSymbolOrders, core.Params{"symbol": symbol})
	if err != nil {
		return "", err
	}
	data, err := Decode[struct {
		Symbol string `json:"symbol"`
	}](body)
	if err != nil {
		return "", err
	}
	return data.Symbol, nil
}

// CancelFuturesOrder cancels a futures order.
func (c *Client) CancelFuturesOrder(ctx context.Context, req CancelFuturesOrderRequest) (*OrderResult, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	body, err := c.Request(ctx, http.MethodPost, pathCancelFuturesOrder, core.Params{
		"symbol":     req.Symbol,
		"marginCoin": req.MarginCoin,
		"orderId":    req.OrderID,
	})
	if err != nil {
		return nil, err
	}
	return decodePtr[OrderResult](body)
}

// CancelFuturesOrders cancels several futures orders on one symbol.
func (c *Client) CancelFuturesOrders(ctx context.Context, req CancelFuturesOrdersRequest) (*FuturesBatchResult, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	body, err := c.Request(ctx, http.MethodPost, pathCancelFuturesOrders, core.Params{
		"symbol":     req.Symbol,
		"marginCoin": req.MarginCoin,
		"orderIds":   strings.Join(req.OrderIDs, ","),
	})
	if err != nil {
		return nil, err
	}
	return decodePtr[FuturesBatchResult](body)
}

func missingParam(name string) error {
	return &core.ConfigError{
		Code:  core.ErrCodeMissingParam,
		Field: name,
		Err:   core.ErrMissingParam,
	}
}
