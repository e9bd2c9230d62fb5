// types.go
// --------
// Domain types for the exchange's REST payloads. Monetary fields are
// shopspring decimals; timestamps are UNIX milliseconds as sent on the
// wire. Response types that the exchange reports usage counters for embed
// binancebridge.RateLimitSink.
package binance

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	binancebridge "github.com/openexch/binance-bridge"
	"github.com/openexch/binance-bridge/internal/timeutil"
)

// OrderSide of an order.
type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

// OrderType of an order.
type OrderType string

const (
	OrderTypeLimit           OrderType = "LIMIT"
	OrderTypeMarket          OrderType = "MARKET"
	OrderTypeStopLoss        OrderType = "STOP_LOSS"
	OrderTypeStopLossLimit   OrderType = "STOP_LOSS_LIMIT"
	OrderTypeTakeProfit      OrderType = "TAKE_PROFIT"
	OrderTypeTakeProfitLimit OrderType = "TAKE_PROFIT_LIMIT"
	OrderTypeLimitMaker      OrderType = "LIMIT_MAKER"
)

// TimeInForce of a limit order.
type TimeInForce string

const (
	GoodTillCanceled  TimeInForce = "GTC"
	ImmediateOrCancel TimeInForce = "IOC"
	FillOrKill        TimeInForce = "FOK"
)

// OrderStatus reported by the exchange.
type OrderStatus string

const (
	StatusNew             OrderStatus = "NEW"
	StatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	StatusFilled          OrderStatus = "FILLED"
	StatusCanceled        OrderStatus = "CANCELED"
	StatusRejected        OrderStatus = "REJECTED"
	StatusExpired         OrderStatus = "EXPIRED"
)

// KlineInterval is a candlestick interval identifier.
type KlineInterval string

const (
	Interval1m  KlineInterval = "1m"
	Interval5m  KlineInterval = "5m"
	Interval15m KlineInterval = "15m"
	Interval1h  KlineInterval = "1h"
	Interval4h  KlineInterval = "4h"
	Interval1d  KlineInterval = "1d"
	Interval1w  KlineInterval = "1w"
)

// RateLimitType categorizes the exchange's configured limits.
type RateLimitType string

const (
	RateLimitRequestWeight RateLimitType = "REQUEST_WEIGHT"
	RateLimitOrders        RateLimitType = "ORDERS"
	RateLimitRawRequests   RateLimitType = "RAW_REQUESTS"
)

// RateLimitInterval is the window unit of a configured limit.
type RateLimitInterval string

const (
	IntervalSecond RateLimitInterval = "SECOND"
	IntervalMinute RateLimitInterval = "MINUTE"
	IntervalDay    RateLimitInterval = "DAY"
)

// ServerTime is the exchange's clock.
type ServerTime struct {
	ServerTime int64 `json:"serverTime"`
}

// Time converts the millisecond timestamp.
func (s ServerTime) Time() time.Time {
	return timeutil.FromMs(s.ServerTime)
}

// RateLimitDescriptor is one configured limit advertised by the exchange.
type RateLimitDescriptor struct {
	RateLimitType RateLimitType     `json:"rateLimitType"`
	Interval      RateLimitInterval `json:"interval"`
	IntervalNum   int               `json:"intervalNum"`
	Limit         int               `json:"limit"`
}

// Symbol describes one tradable market.
type Symbol struct {
	Symbol             string   `json:"symbol"`
	Status             string   `json:"status"`
	BaseAsset          string   `json:"baseAsset"`
	BaseAssetPrecision int      `json:"baseAssetPrecision"`
	QuoteAsset         string   `json:"quoteAsset"`
	QuotePrecision     int      `json:"quotePrecision"`
	OrderTypes         []string `json:"orderTypes"`
}

// ExchangeInfo is the exchange's self-description. It receives usage
// counters on successful calls.
type ExchangeInfo struct {
	binancebridge.RateLimitSink

	Timezone   string                `json:"timezone"`
	ServerTime int64                 `json:"serverTime"`
	RateLimits []RateLimitDescriptor `json:"rateLimits"`
	Symbols    []Symbol              `json:"symbols"`
}

// PriceLevel is one side entry of an order book, sent on the wire as a
// ["price", "quantity"] string pair.
type PriceLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// UnmarshalJSON decodes the two-element array form.
func (p *PriceLevel) UnmarshalJSON(data []byte) error {
	var pair [2]decimal.Decimal
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("price level: %w", err)
	}
	p.Price, p.Quantity = pair[0], pair[1]
	return nil
}

// Depth is an order book snapshot.
type Depth struct {
	LastUpdateID int64        `json:"lastUpdateId"`
	Bids         []PriceLevel `json:"bids"`
	Asks         []PriceLevel `json:"asks"`
}

// Kline is one candlestick, sent on the wire as a positional array.
type Kline struct {
	OpenTime         int64
	Open             decimal.Decimal
	High             decimal.Decimal
	Low              decimal.Decimal
	Close            decimal.Decimal
	Volume           decimal.Decimal
	CloseTime        int64
	QuoteAssetVolume decimal.Decimal
	TradeCount       int64
}

// UnmarshalJSON decodes the positional array form. Trailing fields beyond
// the ones modeled here are ignored.
func (k *Kline) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("kline: %w", err)
	}
	if len(raw) < 9 {
		return fmt.Errorf("kline: expected at least 9 fields, got %d", len(raw))
	}
	fields := []any{
		&k.OpenTime, &k.Open, &k.High, &k.Low, &k.Close,
		&k.Volume, &k.CloseTime, &k.QuoteAssetVolume, &k.TradeCount,
	}
	for i, target := range fields {
		if err := json.Unmarshal(raw[i], target); err != nil {
			return fmt.Errorf("kline field %d: %w", i, err)
		}
	}
	return nil
}

// PriceTicker is the latest price for a symbol.
type PriceTicker struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

// AggTrade is a compressed trade record.
type AggTrade struct {
	ID           int64           `json:"a"`
	Price        decimal.Decimal `json:"p"`
	Quantity     decimal.Decimal `json:"q"`
	FirstTradeID int64           `json:"f"`
	LastTradeID  int64           `json:"l"`
	Time         int64           `json:"T"`
	IsBuyerMaker bool            `json:"m"`
}

// Balance is one asset's holdings in an account.
type Balance struct {
	Asset  string          `json:"asset"`
	Free   decimal.Decimal `json:"free"`
	Locked decimal.Decimal `json:"locked"`
}

// Account is the signed account snapshot. It receives usage counters on
// successful calls.
type Account struct {
	binancebridge.RateLimitSink

	MakerCommission  int64     `json:"makerCommission"`
	TakerCommission  int64     `json:"takerCommission"`
	BuyerCommission  int64     `json:"buyerCommission"`
	SellerCommission int64     `json:"sellerCommission"`
	CanTrade         bool      `json:"canTrade"`
	CanWithdraw      bool      `json:"canWithdraw"`
	CanDeposit       bool      `json:"canDeposit"`
	UpdateTime       int64     `json:"updateTime"`
	Balances         []Balance `json:"balances"`
}

// Order is a resting or historical order.
type Order struct {
	Symbol        string          `json:"symbol"`
	OrderID       int64           `json:"orderId"`
	ClientOrderID string          `json:"clientOrderId"`
	Price         decimal.Decimal `json:"price"`
	OrigQty       decimal.Decimal `json:"origQty"`
	ExecutedQty   decimal.Decimal `json:"executedQty"`
	Status        OrderStatus     `json:"status"`
	TimeInForce   TimeInForce     `json:"timeInForce"`
	Type          OrderType       `json:"type"`
	Side          OrderSide       `json:"side"`
	Time          int64           `json:"time"`
}

// OrderAck acknowledges order placement. It receives usage counters on
// successful calls, letting callers watch their order-count budget.
type OrderAck struct {
	binancebridge.RateLimitSink

	Symbol        string          `json:"symbol"`
	OrderID       int64           `json:"orderId"`
	ClientOrderID string          `json:"clientOrderId"`
	TransactTime  int64           `json:"transactTime"`
	Price         decimal.Decimal `json:"price"`
	OrigQty       decimal.Decimal `json:"origQty"`
	ExecutedQty   decimal.Decimal `json:"executedQty"`
	Status        OrderStatus     `json:"status"`
}

// CancelAck acknowledges order cancellation.
type CancelAck struct {
	binancebridge.RateLimitSink

	Symbol            string      `json:"symbol"`
	OrderID           int64       `json:"orderId"`
	OrigClientOrderID string      `json:"origClientOrderId"`
	ClientOrderID     string      `json:"clientOrderId"`
	Status            OrderStatus `json:"status"`
}

// Trade is one of the account's own fills.
type Trade struct {
	Symbol          string          `json:"symbol"`
	ID              int64           `json:"id"`
	OrderID         int64           `json:"orderId"`
	Price           decimal.Decimal `json:"price"`
	Quantity        decimal.Decimal `json:"qty"`
	Commission      decimal.Decimal `json:"commission"`
	CommissionAsset string          `json:"commissionAsset"`
	Time            int64           `json:"time"`
	IsBuyer         bool            `json:"isBuyer"`
	IsMaker         bool            `json:"isMaker"`
}
