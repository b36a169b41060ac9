package bitget

import (
	"context"
	"fmt"
	"net/http"

	"bitget/pkg/core"
)

// CandlesRequest selects spot candlesticks.
type CandlesRequest struct {
	Symbol string `json:"symbol" validate:"required"`
	// Granularity such as "1min", "15min", "1h", "1day".
	Period    string `json:"granularity" validate:"required"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
	Limit     int    `json:"limit" validate:"omitempty,min=1,max=1000"`
}

// OrderBookRequest selects spot depth.
type OrderBookRequest struct {
	Symbol string `json:"symbol" validate:"required"`
	// Type is the price aggregation step, "step0" through "step5".
	Type  string `json:"type"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=150"`
}

// GetTicker returns the spot ticker for symbol. An empty symbol returns all tickers.
func (c *Client) GetTicker(ctx context.Context, symbol string) ([]Ticker, error) {
	params := core.Params{}
	params.SetIfNotEmpty("symbol", symbol)

	body, err := c.PublicRequest(ctx, http.MethodGet, pathTicker, params)
	if err != nil {
		return nil, err
	}
	return Decode[[]Ticker](body)
}

// GetCandles returns spot candlesticks, oldest first.
func (c *Client) GetCandles(ctx context.Context, req CandlesRequest) ([]Candle, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	params := core.Params{
		"symbol":      req.Symbol,
		"granularity": req.Period,
	}
	if req.StartTime > 0 {
		params["startTime"] = req.StartTime
	}
	if req.EndTime > 0 {
		params["endTime"] = req.EndTime
	}
	if req.Limit > 0 {
		params["limit"] = req.Limit
	}

	body, err := c.PublicRequest(ctx, http.MethodGet, pathCandles, params)
	if err != nil {
		return nil, err
	}

	rows, err := Decode[[][]string](body)
	if err != nil {
		return nil, err
	}

	candles := make([]Candle, 0, len(rows))
	for i, row := range rows {
		if len(row) < 7 {
			return nil, fmt.Errorf("candle %d: expected at least 7 fields, got %d", i, len(row))
		}
		candle := Candle{
			Timestamp:   row[0],
			Open:        row[1],
			High:        row[2],
			Low:         row[3],
			Close:       row[4],
			BaseVolume:  row[5],
			QuoteVolume: row[6],
		}
		if len(row) > 7 {
			candle.USDTVolume = row[7]
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// GetOrderBook returns a spot depth snapshot.
func (c *Client) GetOrderBook(ctx context.Context, req OrderBookRequest) (*OrderBook, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	params := core.Params{"symbol": req.Symbol}
	params.SetIfNotEmpty("type", req.Type)
	if req.Limit > 0 {
		params["limit"] = req.Limit
	}

	body, err := c.PublicRequest(ctx, http.MethodGet, pathOrderBook, params)
	if err != nil {
		return nil, err
	}

	raw, err := Decode[rawOrderBook](body)
	if err != nil {
		return nil, err
	}

	asks, err := priceLevels(raw.Asks)
	if err != nil {
		return nil, fmt.Errorf("asks: %w", err)
	}
	bids, err := priceLevels(raw.Bids)
	if err != nil {
		return nil, fmt.Errorf("bids: %w", err)
	}
	return &OrderBook{Asks: asks, Bids: bids, Timestamp: raw.Ts}, nil
}

func priceLevels(rows [][]string) ([]PriceLevel, error) {
	levels := make([]PriceLevel, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("level %d: expected price and size, got %d fields", i, len(row))
		}
		levels = append(levels, PriceLevel{Price: row[0], Size: row[1]})
	}
	return levels, nil
}
