package bitget

import (
	"context"
	"net/http"

	"bitget/pkg/core"
)

// AccountRequest selects a futures account.
type AccountRequest struct {
	Symbol     string `json:"symbol" validate:"required"`
	MarginCoin string `json:"marginCoin" validate:"required"`
}

// PositionsRequest selects futures positions. ProductType is the v1 product
// line such as "umcbl"; when empty, Symbol is sent instead.
type PositionsRequest struct {
	ProductType string `json:"productType" validate:"required_without=Symbol"`
	Symbol      string `json:"symbol"`
	MarginCoin  string `json:"marginCoin" validate:"required"`
}

// LeverageRequest changes futures leverage.
type LeverageRequest struct {
	Symbol     string `json:"symbol" validate:"required"`
	MarginCoin string `json:"marginCoin" validate:"required"`
	Leverage   string `json:"leverage" validate:"required"`
	// HoldSide is "long" or "short" in isolated mode and empty in cross mode.
	HoldSide string `json:"holdSide"`
}

// GetAccount returns the futures account for a symbol and margin coin.
func (c *Client) GetAccount(ctx context.Context, req AccountRequest) (*Account, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	body, err := c.Request(ctx, http.MethodGet, pathAccount, core.Params{
		"symbol":     req.Symbol,
		"marginCoin": req.MarginCoin,
	})
	if err != nil {
		return nil, err
	}
	return decodePtr[Account](body)
}

// GetPositions returns all open futures positions.
func (c *Client) GetPositions(ctx context.Context, req PositionsRequest) ([]Position, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	params := core.Params{"marginCoin": req.MarginCoin}
	params.SetIfNotEmpty("productType", req.ProductType)
	params.SetIfNotEmpty("symbol", req.Symbol)

	body, err := c.Request(ctx, http.MethodGet, pathPositions, params)
	if err != nil {
		return nil, err
	}
	return Decode[[]Position](body)
}

// SetLeverage changes the leverage of a futures symbol.
func (c *Client) SetLeverage(ctx context.Context, req LeverageRequest) (*LeverageResult, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	params := core.Params{
		"symbol":     req.Symbol,
		"marginCoin": req.MarginCoin,
		"leverage":   req.Leverage,
	}
	params.SetIfNotEmpty("holdSide", req.HoldSide)

	body, err := c.Request(ctx, http.MethodPost, pathSetLeverage, params)
	if err != nil {
		return nil, err
	}
	return decodePtr[LeverageResult](body)
}

func decodePtr[T any](body []byte) (*T, error) {
	v, err := Decode[T](body)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
