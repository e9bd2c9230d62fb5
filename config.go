// config.go
// ----------
// This file holds the static configuration consumed at Bridge construction:
// the transport tuning knobs (pool bounds and timeouts), the Mode flag that
// selects between the production and test-network base addresses, and the
// Credentials pair that decides whether a client signs its requests.
//
// TransportConfig is a value type. Zero fields are replaced by the defaults
// below when the shared transport is first built, and the resulting
// configuration is never mutated afterwards: every client minted by the same
// Bridge observes the same pool bounds and timeouts.
package binancebridge

import (
	"net/http"
	"time"
)

// Base addresses for the two supported deployment targets.
const (
	productionBaseURL = "https://api.binance.com"
	testnetBaseURL    = "https://testnet.binance.vision"
)

// Default transport tuning, matching the exchange connector's dispatcher
// settings: 500 concurrent requests total and per host, 20s keep-alive
// probing, one-minute read and write timeouts.
const (
	DefaultMaxRequests        = 500
	DefaultMaxRequestsPerHost = 500
	DefaultKeepAlive          = 20 * time.Second
	DefaultReadTimeout        = time.Minute
	DefaultWriteTimeout       = time.Minute
)

// Mode selects which remote endpoint root generated clients bind to.
type Mode int

const (
	// ModeProduction targets the live exchange.
	ModeProduction Mode = iota
	// ModeTestnet targets the test network.
	ModeTestnet
)

// BaseURL resolves the endpoint root for a mode. Unknown modes resolve to
// production.
func BaseURL(mode Mode) string {
	if mode == ModeTestnet {
		return testnetBaseURL
	}
	return productionBaseURL
}

// TransportConfig bounds the shared connection pool and fixes its timeouts.
type TransportConfig struct {
	// Base, when non-nil, replaces the pooled connection layer. The
	// concurrency bound and interceptor chain still apply. Intended for
	// tests (see the mock package).
	Base http.RoundTripper

	// MaxRequests caps concurrent requests across all clients sharing the
	// transport, regardless of host.
	MaxRequests int

	// MaxRequestsPerHost caps concurrent requests to a single remote host.
	MaxRequestsPerHost int

	// KeepAlive is the interval between keep-alive probes on idle
	// connections.
	KeepAlive time.Duration

	// ReadTimeout bounds the wait for response headers after a request has
	// been fully written.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the request; together with ReadTimeout it
	// forms the overall per-call deadline.
	WriteTimeout time.Duration
}

// withDefaults returns a copy with zero values replaced by defaults.
func (c *TransportConfig) withDefaults() *TransportConfig {
	cfg := TransportConfig{}
	if c != nil {
		cfg = *c
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = DefaultMaxRequests
	}
	if cfg.MaxRequestsPerHost <= 0 {
		cfg.MaxRequestsPerHost = DefaultMaxRequestsPerHost
	}
	if cfg.KeepAlive <= 0 {
		cfg.KeepAlive = DefaultKeepAlive
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	return &cfg
}

// Credentials is the optional API key / secret pair for a client.
//
// Presence is binary: a pair is complete only when both fields are
// non-empty. A pair with exactly one field set behaves exactly like no
// credentials at all; the resulting client is unauthenticated. Callers who
// want a hard failure on half-configured credentials should validate before
// constructing the client.
type Credentials struct {
	APIKey    string
	SecretKey string
}

// ok reports whether the pair is complete enough to sign requests.
func (c Credentials) ok() bool {
	return c.APIKey != "" && c.SecretKey != ""
}
