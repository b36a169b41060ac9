package bitget

// Response models. Numeric fields are kept as the decimal strings Bitget
// sends; convert with apd when arithmetic is needed.

type serverTime struct {
	ServerTime FlexString `json:"serverTime"`
}

// Ticker is one entry of the spot tickers endpoint.
type Ticker struct {
	Symbol       string `json:"symbol"`
	High24h      string `json:"high24h"`
	Open         string `json:"open"`
	LastPrice    string `json:"lastPr"`
	Low24h       string `json:"low24h"`
	QuoteVolume  string `json:"quoteVolume"`
	BaseVolume   string `json:"baseVolume"`
	USDTVolume   string `json:"usdtVolume"`
	BidPrice     string `json:"bidPr"`
	AskPrice     string `json:"askPr"`
	BidSize      string `json:"bidSz"`
	AskSize      string `json:"askSz"`
	OpenUTC      string `json:"openUtc"`
	Timestamp    string `json:"ts"`
	ChangeUTC24h string `json:"changeUtc24h"`
	Change24h    string `json:"change24h"`
}

// Candle is one spot candlestick.
type Candle struct {
	Timestamp   string
	Open        string
	High        string
	Low         string
	Close       string
	BaseVolume  string
	QuoteVolume string
	USDTVolume  string
}

// PriceLevel is one side entry of an order book.
type PriceLevel struct {
	Price string
	Size  string
}

// OrderBook is a spot depth snapshot.
type OrderBook struct {
	Asks      []PriceLevel
	Bids      []PriceLevel
	Timestamp string
}

type rawOrderBook struct {
	Asks [][]string `json:"asks"`
	Bids [][]string `json:"bids"`
	Ts   string     `json:"ts"`
}

// Account is a futures account for one margin coin.
type Account struct {
	MarginCoin          string `json:"marginCoin"`
	Locked              string `json:"locked"`
	Available           string `json:"available"`
	CrossMaxAvailable   string `json:"crossMaxAvailable"`
	FixedMaxAvailable   string `json:"fixedMaxAvailable"`
	MaxTransferOut      string `json:"maxTransferOut"`
	Equity              string `json:"equity"`
	USDTEquity          string `json:"usdtEquity"`
	BTCEquity           string `json:"btcEquity"`
	CrossRiskRate       string `json:"crossRiskRate"`
	CrossMarginLeverage string `json:"crossMarginLeverage"`
	FixedLongLeverage   string `json:"fixedLongLeverage"`
	FixedShortLeverage  string `json:"fixedShortLeverage"`
	MarginMode          string `json:"marginMode"`
	HoldMode            string `json:"holdMode"`
	UnrealizedPL        string `json:"unrealizedPL"`
}

// Position is an open futures position.
type Position struct {
	MarginCoin       string     `json:"marginCoin"`
	Symbol           string     `json:"symbol"`
	HoldSide         string     `json:"holdSide"`
	Margin           string     `json:"margin"`
	Available        string     `json:"available"`
	Locked           string     `json:"locked"`
	Total            string     `json:"total"`
	Leverage         FlexString `json:"leverage"`
	AchievedProfits  string     `json:"achievedProfits"`
	AverageOpenPrice string     `json:"averageOpenPrice"`
	MarginMode       string     `json:"marginMode"`
	HoldMode         string     `json:"holdMode"`
	UnrealizedPL     string     `json:"unrealizedPL"`
	LiquidationPrice string     `json:"liquidationPrice"`
	MarketPrice      string     `json:"marketPrice"`
	CreatedAt        string     `json:"cTime"`
}

// LeverageResult is the leverage in effect after SetLeverage.
type LeverageResult struct {
	Symbol              string     `json:"symbol"`
	MarginCoin          string     `json:"marginCoin"`
	LongLeverage        FlexString `json:"longLeverage"`
	ShortLeverage       FlexString `json:"shortLeverage"`
	CrossMarginLeverage FlexString `json:"crossMarginLeverage"`
	MarginMode          string     `json:"marginMode"`
}

// OrderResult identifies an order accepted or cancelled by the exchange.
type OrderResult struct {
	OrderID   string `json:"orderId"`
	ClientOID string `json:"clientOid"`
}

// OrderFailure is one rejected entry of a batch operation.
type OrderFailure struct {
	OrderID   string `json:"orderId"`
	ClientOID string `json:"clientOid"`
	ErrorCode string `json:"errorCode"`
	ErrorMsg  string `json:"errorMsg"`
}

// BatchResult splits a spot batch response into accepted and rejected orders.
type BatchResult struct {
	SuccessList []OrderResult  `json:"successList"`
	FailureList []OrderFailure `json:"failureList"`
}

// FuturesBatchResult is the result of a futures batch cancel.
type FuturesBatchResult struct {
	Symbol     string   `json:"symbol"`
	MarginCoin string   `json:"marginCoin"`
	OrderIDs   []string `json:"order_ids"`
	FailInfos  []struct {
		OrderID string `json:"order_id"`
		ErrCode string `json:"err_code"`
		ErrMsg  string `json:"err_msg"`
	} `json:"fail_infos"`
}

// Fill is one futures trade execution.
type Fill struct {
	TradeID   string `json:"tradeId"`
	Symbol    string `json:"symbol"`
	OrderID   string `json:"orderId"`
	Price     string `json:"price"`
	Size      string `json:"sizeQty"`
	Fee       string `json:"fee"`
	Side      string `json:"side"`
	Amount    string `json:"fillAmount"`
	Profit    string `json:"profit"`
	TradeSide string `json:"tradeSide"`
	HoldMode  string `json:"holdMode"`
	Role      string `json:"takerMakerFlag"`
	CreatedAt string `json:"cTime"`
}

// FuturesOrder is the detail of a futures order.
type FuturesOrder struct {
	Symbol       string     `json:"symbol"`
	Size         FlexString `json:"size"`
	OrderID      string     `json:"orderId"`
	ClientOID    string     `json:"clientOid"`
	FilledQty    FlexString `json:"filledQty"`
	Fee          FlexString `json:"fee"`
	Price        FlexString `json:"price"`
	PriceAvg     FlexString `json:"priceAvg"`
	State        string     `json:"state"`
	Side         string     `json:"side"`
	TimeInForce  string     `json:"timeInForce"`
	TotalProfits FlexString `json:"totalProfits"`
	PosSide      string     `json:"posSide"`
	MarginCoin   string     `json:"marginCoin"`
	FilledAmount FlexString `json:"filledAmount"`
	OrderType    string     `json:"orderType"`
	Leverage     FlexString `json:"leverage"`
	MarginMode   string     `json:"marginMode"`
	CreatedAt    FlexString `json:"cTime"`
	UpdatedAt    FlexString `json:"uTime"`
}

// SpotOrder is an open spot order.
type SpotOrder struct {
	UserID      string `json:"userId"`
	Symbol      string `json:"symbol"`
	OrderID     string `json:"orderId"`
	ClientOID   string `json:"clientOid"`
	PriceAvg    string `json:"priceAvg"`
	Size        string `json:"size"`
	OrderType   string `json:"orderType"`
	Side        string `json:"side"`
	Status      string `json:"status"`
	BasePrice   string `json:"basePrice"`
	BaseVolume  string `json:"baseVolume"`
	QuoteVolume string `json:"quoteVolume"`
	OrderSource string `json:"orderSource"`
	CreatedAt   string `json:"cTime"`
	UpdatedAt   string `json:"uTime"`
}

// Asset is a spot balance as reported by the v1 assets endpoint.
type Asset struct {
	CoinID    FlexString `json:"coinId"`
	CoinName  string     `json:"coinName"`
	Available string     `json:"available"`
	Frozen    string     `json:"frozen"`
	Lock      string     `json:"lock"`
	UpdatedAt string     `json:"uTime"`
}

// CoinAsset is a spot balance as reported by the v2 assets endpoint.
type CoinAsset struct {
	Coin           string `json:"coin"`
	Available      string `json:"available"`
	Frozen         string `json:"frozen"`
	Locked         string `json:"locked"`
	LimitAvailable string `json:"limitAvailable"`
	UpdatedAt      string `json:"uTime"`
}

// TransferResult identifies a completed transfer.
type TransferResult struct {
	TransferID string `json:"transferId"`
	ClientOID  string `json:"clientOid"`
}

// Bill is one entry of the spot account bill history.
type Bill struct {
	BillID       string `json:"billId"`
	Coin         string `json:"coin"`
	GroupType    string `json:"groupType"`
	BusinessType string `json:"businessType"`
	Size         string `json:"size"`
	Balance      string `json:"balance"`
	Fees         string `json:"fees"`
	CreatedAt    string `json:"cTime"`
}
