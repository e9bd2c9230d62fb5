// account.go
// ----------
// Signed account and trading endpoints. These must run over a client built
// with complete credentials: the derived transport adds the timestamp and
// signature this API validates. recvWindow, when set, tells the exchange
// how much request-clock skew to tolerate.
package binance

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	binancebridge "github.com/openexch/binance-bridge"
)

// AccountService exposes the exchange's signed account and trading
// operations over a generated client.
type AccountService struct {
	client     *binancebridge.Client
	recvWindow time.Duration
}

// NewAccountService binds the service to a client. The client must have
// been created with complete credentials.
func NewAccountService(client *binancebridge.Client) *AccountService {
	return &AccountService{client: client}
}

// SetRecvWindow sets the tolerated request age for subsequent calls. Zero
// leaves the server default in effect.
func (s *AccountService) SetRecvWindow(d time.Duration) {
	s.recvWindow = d
}

func (s *AccountService) withRecvWindow(call *binancebridge.Call) *binancebridge.Call {
	if s.recvWindow > 0 {
		call.Param("recvWindow", strconv.FormatInt(s.recvWindow.Milliseconds(), 10))
	}
	return call
}

// Account fetches the account snapshot: commissions, permissions, and
// balances.
func (s *AccountService) Account(ctx context.Context) (*Account, error) {
	account := &Account{}
	if err := s.withRecvWindow(s.client.Get("/api/v3/account", account)).Execute(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

// NewOrderRequest carries the parameters of an order placement.
type NewOrderRequest struct {
	Symbol      string
	Side        OrderSide
	Type        OrderType
	TimeInForce TimeInForce
	Quantity    string
	Price       string

	// ClientOrderID identifies the order to the caller. When empty, a UUID
	// is generated so the acknowledgement can always be correlated.
	ClientOrderID string
}

// NewOrder places an order and returns the exchange's acknowledgement.
func (s *AccountService) NewOrder(ctx context.Context, req NewOrderRequest) (*OrderAck, error) {
	clientOrderID := req.ClientOrderID
	if clientOrderID == "" {
		clientOrderID = uuid.NewString()
	}

	ack := &OrderAck{}
	call := s.client.Post("/api/v3/order", ack).
		Param("symbol", req.Symbol).
		Param("side", string(req.Side)).
		Param("type", string(req.Type)).
		Param("newClientOrderId", clientOrderID)
	if req.TimeInForce != "" {
		call.Param("timeInForce", string(req.TimeInForce))
	}
	if req.Quantity != "" {
		call.Param("quantity", req.Quantity)
	}
	if req.Price != "" {
		call.Param("price", req.Price)
	}
	if err := s.withRecvWindow(call).Execute(ctx); err != nil {
		return nil, err
	}
	return ack, nil
}

// CancelOrder cancels a resting order by exchange order id.
func (s *AccountService) CancelOrder(ctx context.Context, symbol string, orderID int64) (*CancelAck, error) {
	ack := &CancelAck{}
	call := s.client.Delete("/api/v3/order", ack).
		Param("symbol", symbol).
		Param("orderId", strconv.FormatInt(orderID, 10))
	if err := s.withRecvWindow(call).Execute(ctx); err != nil {
		return nil, err
	}
	return ack, nil
}

// OpenOrders lists the account's resting orders. An empty symbol lists all
// symbols, which the exchange weighs much more heavily.
func (s *AccountService) OpenOrders(ctx context.Context, symbol string) ([]Order, error) {
	var orders []Order
	call := s.client.Get("/api/v3/openOrders", &orders)
	if symbol != "" {
		call.Param("symbol", symbol)
	}
	if err := s.withRecvWindow(call).Execute(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}

// MyTrades lists the account's fills for a symbol. limit <= 0 uses the
// server default.
func (s *AccountService) MyTrades(ctx context.Context, symbol string, limit int) ([]Trade, error) {
	var trades []Trade
	call := s.client.Get("/api/v3/myTrades", &trades).Param("symbol", symbol)
	if limit > 0 {
		call.Param("limit", strconv.Itoa(limit))
	}
	if err := s.withRecvWindow(call).Execute(ctx); err != nil {
		return nil, err
	}
	return trades, nil
}
