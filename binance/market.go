// market.go
// ---------
// Public market-data endpoints. None of these require credentials; a
// MarketDataService built over an unauthenticated client works against
// both the production and test networks.
package binance

import (
	"context"
	"strconv"
	"time"

	binancebridge "github.com/openexch/binance-bridge"
	"github.com/openexch/binance-bridge/internal/timeutil"
)

// MarketDataService exposes the exchange's public market-data operations
// over a generated client.
type MarketDataService struct {
	client *binancebridge.Client
}

// NewMarketDataService binds the service to a client.
func NewMarketDataService(client *binancebridge.Client) *MarketDataService {
	return &MarketDataService{client: client}
}

// Ping tests connectivity to the REST API.
func (s *MarketDataService) Ping(ctx context.Context) error {
	return s.client.Get("/api/v3/ping", nil).Execute(ctx)
}

// ServerTime fetches the exchange's clock.
func (s *MarketDataService) ServerTime(ctx context.Context) (time.Time, error) {
	var st ServerTime
	if err := s.client.Get("/api/v3/time", &st).Execute(ctx); err != nil {
		return time.Time{}, err
	}
	return st.Time(), nil
}

// ExchangeInfo fetches the exchange's self-description, including its
// configured rate limits and tradable symbols.
func (s *MarketDataService) ExchangeInfo(ctx context.Context) (*ExchangeInfo, error) {
	info := &ExchangeInfo{}
	if err := s.client.Get("/api/v3/exchangeInfo", info).Execute(ctx); err != nil {
		return nil, err
	}
	return info, nil
}

// Depth fetches an order book snapshot. limit <= 0 uses the server default.
func (s *MarketDataService) Depth(ctx context.Context, symbol string, limit int) (*Depth, error) {
	depth := &Depth{}
	call := s.client.Get("/api/v3/depth", depth).Param("symbol", symbol)
	if limit > 0 {
		call.Param("limit", strconv.Itoa(limit))
	}
	if err := call.Execute(ctx); err != nil {
		return nil, err
	}
	return depth, nil
}

// Klines fetches candlesticks for a symbol within [start, end]. Zero times
// are omitted; limit <= 0 uses the server default (most exchanges cap this
// around 1000).
func (s *MarketDataService) Klines(ctx context.Context, symbol string, interval KlineInterval, start, end time.Time, limit int) ([]Kline, error) {
	var klines []Kline
	call := s.client.Get("/api/v3/klines", &klines).
		Param("symbol", symbol).
		Param("interval", string(interval))
	if !start.IsZero() {
		call.Param("startTime", strconv.FormatInt(timeutil.ToMs(start), 10))
	}
	if !end.IsZero() {
		call.Param("endTime", strconv.FormatInt(timeutil.ToMs(end), 10))
	}
	if limit > 0 {
		call.Param("limit", strconv.Itoa(limit))
	}
	if err := call.Execute(ctx); err != nil {
		return nil, err
	}
	return klines, nil
}

// TickerPrice fetches the latest price for a symbol.
func (s *MarketDataService) TickerPrice(ctx context.Context, symbol string) (*PriceTicker, error) {
	ticker := &PriceTicker{}
	err := s.client.Get("/api/v3/ticker/price", ticker).
		Param("symbol", symbol).
		Execute(ctx)
	if err != nil {
		return nil, err
	}
	return ticker, nil
}

// AggTrades fetches compressed trades for a symbol. limit <= 0 uses the
// server default.
func (s *MarketDataService) AggTrades(ctx context.Context, symbol string, limit int) ([]AggTrade, error) {
	var trades []AggTrade
	call := s.client.Get("/api/v3/aggTrades", &trades).Param("symbol", symbol)
	if limit > 0 {
		call.Param("limit", strconv.Itoa(limit))
	}
	if err := call.Execute(ctx); err != nil {
		return nil, err
	}
	return trades, nil
}
