package bitget

import (
	"context"
	"net/http"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"bitget/pkg/core"
)

// TransferRequest moves funds between account types such as "spot",
// "mix_usdt" and "mix_usd".
type TransferRequest struct {
	FromType string       `json:"fromType" validate:"required"`
	ToType   string       `json:"toType" validate:"required,nefield=FromType"`
	Coin     string       `json:"coin" validate:"required"`
	Amount   *apd.Decimal `json:"amount" validate:"required"`
	// ClientOID is generated when empty.
	ClientOID string `json:"clientOid"`
}

// FundFlowRequest selects spot account bills. Times are Unix milliseconds.
type FundFlowRequest struct {
	Coin         string `json:"coin"`
	GroupType    string `json:"groupType"`
	BusinessType string `json:"businessType"`
	StartTime    int64  `json:"startTime"`
	EndTime      int64  `json:"endTime" validate:"omitempty,gtefield=StartTime"`
	Limit        int    `json:"limit" validate:"omitempty,min=1,max=500"`
	// IDLessThan pages backwards from a previous response's last billId.
	IDLessThan string `json:"idLessThan"`
}

// GetAssets returns every spot balance.
func (c *Client) GetAssets(ctx context.Context) ([]Asset, error) {
	body, err := c.Request(ctx, http.MethodGet, pathAssets, nil)
	if err != nil {
		return nil, err
	}
	return Decode[[]Asset](body)
}

// GetAsset returns the spot balance of one coin.
func (c *Client) GetAsset(ctx context.Context, coin string) ([]CoinAsset, error) {
	if coin == "" {
		return nil, missingParam("coin")
	}

	body, err := c.Request(ctx, http.MethodGet, pathAsset, core.Params{"coin": coin})
	if err != nil {
		return nil, err
	}
	return Decode[[]CoinAsset](body)
}

// Transfer moves funds between the caller's own accounts.
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	clientOID := req.ClientOID
	if clientOID == "" {
		clientOID = uuid.NewString()
	}

	body, err := c.Request(ctx, http.MethodPost, pathTransfer, core.Params{
		"fromType":  req.FromType,
		"toType":    req.ToType,
		"coin":      req.Coin,
		"amount":    req.Amount,
		"clientOid": clientOID,
	})
	if err != nil {
		return nil, err
	}
	return decodePtr[TransferResult](body)
}

// GetFundFlow returns spot account bills, newest first.
func (c *Client) GetFundFlow(ctx context.Context, req FundFlowRequest) ([]Bill, error) {
	if err := checkParams(req); err != nil {
		return nil, err
	}

	params := core.Params{}
	params.SetIfNotEmpty("coin", req.Coin)
	params.SetIfNotEmpty("groupType", req.GroupType)
	params.SetIfNotEmpty("businessType", req.BusinessType)
	params.SetIfNotEmpty("idLessThan", req.IDLessThan)
	if req.StartTime > 0 {
		params["startTime"] = req.StartTime
	}
	if req.EndTime > 0 {
		params["endTime"] = req.EndTime
	}
	if req.Limit > 0 {
		params["limit"] = req.Limit
	}

	body, err := c.Request(ctx, http.MethodGet, pathFundFlow, params)
	if err != nil {
		return nil, err
	}
	return Decode[[]Bill](body)
}
