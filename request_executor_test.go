package binancebridge

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	bridge := NewBridge(ModeProduction, nil)
	bridge.SetBaseURL(srv.URL)
	return bridge.NewClient(Credentials{})
}

func TestDoDecodesSuccessBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":"pong"}`))
	}))

	var out struct {
		Value string `json:"value"`
	}
	if err := client.Get("/api/v3/ping", &out).Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.Value != "pong" {
		t.Errorf("Value = %q, want pong", out.Value)
	}
}

func TestDoPopulatesRateLimitsOnSuccess(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-MBX-USED-WEIGHT-1M", "42")
		w.Header().Set("X-MBX-ORDER-COUNT-10S", "3")
		w.Header().Set("X-MBX-Some-Other", "9")
		w.Write([]byte(`{"value":"ok"}`))
	}))

	body := &limitedBody{}
	if err := client.Get("/api/v3/account", body).Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// The Go transport delivers header names in canonical form; keys keep
	// that casing, and Usage() ignores case for lookups.
	if got, ok := body.Usage("used-weight-1m"); !ok || got != 42 {
		t.Errorf("used-weight-1m = %d,%v; want 42,true", got, ok)
	}
	if got, ok := body.Usage("order-count-10s"); !ok || got != 3 {
		t.Errorf("order-count-10s = %d,%v; want 3,true", got, ok)
	}
	if _, ok := body.Usage("some-other"); ok {
		t.Error("non-allow-listed header was harvested")
	}
}

func TestDoTranslatesErrorResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))

	err := client.Get("/api/v3/ticker/price", nil).Execute(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Code != -1121 || apiErr.Message != "Invalid symbol." {
		t.Errorf("decoded payload = %+v", apiErr)
	}
	if IsTransportError(err) {
		t.Error("a decoded API error must not be a TransportError")
	}
}

func TestDoUndecodableErrorBodyIsTransportError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))

	err := client.Get("/api/v3/ping", nil).Execute(context.Background())
	if !IsTransportError(err) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if IsAPIError(err) {
		t.Error("undecodable error body must not surface as APIError")
	}
}

func TestDoConnectionFailureIsTransportErrorWithoutRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	url := srv.URL
	srv.Close() // refuse all connections

	bridge := NewBridge(ModeProduction, nil)
	bridge.SetBaseURL(url)
	client := bridge.NewClient(Credentials{})

	err := client.Get("/api/v3/ping", nil).Execute(context.Background())
	if !IsTransportError(err) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
	if hits.Load() != 0 {
		t.Errorf("server saw %d requests after shutdown", hits.Load())
	}
}

func TestDoServerErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":-1000,"msg":"internal error"}`))
	}))

	err := client.Get("/api/v3/ping", nil).Execute(context.Background())
	if !IsAPIError(err) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if hits.Load() != 1 {
		t.Errorf("server saw %d requests, want exactly 1 (no retries)", hits.Load())
	}
}

func TestDoUndecodableSuccessBodyIsTransportError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))

	var out map[string]any
	err := client.Get("/api/v3/ping", &out).Execute(context.Background())
	if !IsTransportError(err) {
		t.Fatalf("error = %v, want *TransportError", err)
	}
}

func TestCallIsOneShot(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	call := client.Get("/api/v3/time", nil)
	if err := call.Execute(context.Background()); err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if err := call.Execute(context.Background()); !errors.Is(err, ErrCallConsumed) {
		t.Errorf("second Execute = %v, want ErrCallConsumed", err)
	}
}

func TestMethodShorthands(t *testing.T) {
	var got []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method)
		w.Write([]byte(`{}`))
	}))

	for _, call := range []*Call{
		client.Get("/api/v3/time", nil),
		client.Post("/api/v3/order", nil),
		client.Put("/api/v3/order", nil),
		client.Delete("/api/v3/order", nil),
	} {
		if err := call.Execute(context.Background()); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	want := []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	for i, m := range want {
		if got[i] != m {
			t.Errorf("call %d method = %q, want %q", i, got[i], m)
		}
	}
}

func TestDoSendsBoundParamsAndBody(t *testing.T) {
	var gotQuery, gotContentType string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))

	err := client.NewCall(http.MethodPost, "/api/v3/order").
		Param("symbol", "BTCUSDT").
		Body(map[string]string{"note": "x"}).
		Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if gotQuery != "symbol=BTCUSDT" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}
