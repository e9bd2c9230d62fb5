// sdk.go
// ------
// The sdk.go file contains the Bridge struct, the entry point of the
// package for users.
//
// Key functionalities include:
// - Initializing the factory with NewBridge()
// - Producing generated clients with NewClient()
// - Lazily building the process-shared transport on first use
//
// A Bridge owns exactly one shared transport. Unauthenticated clients reuse
// it directly; clients with complete credentials get a handle derived from
// it that signs every outgoing request while still sharing the pool.
package binancebridge

import (
	"fmt"
	"sync"
)

// Bridge manufactures Clients bound to one deployment target, one shared
// transport, and one codec. It is safe for concurrent use.
type Bridge struct {
	mu          sync.Mutex
	mode        Mode
	baseURL     string
	cfg         *TransportConfig
	codec       *Codec
	decodeError errorDecoderFunc
	signFn      SignFunc
	metrics     *MetricsCollector

	transportOnce sync.Once
	transport     *Transport

	Debug bool // If true, print debug info
}

// NewBridge creates a factory for the given mode. A nil cfg uses the
// package defaults. The shared transport is not built until the first
// client asks for it.
func NewBridge(mode Mode, cfg *TransportConfig) *Bridge {
	codec := NewJSONCodec()
	return &Bridge{
		mode:        mode,
		cfg:         cfg.withDefaults(),
		codec:       codec,
		decodeError: codec.errorDecoder(),
		signFn:      SignRequest,
	}
}

// SetDebug enables or disables debug logging for the factory.
func (b *Bridge) SetDebug(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Debug = enabled
}

// SetSignFunc replaces the signing function used for clients created
// afterwards. Existing clients keep the transform they were built with.
func (b *Bridge) SetSignFunc(fn SignFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if fn != nil {
		b.signFn = fn
	}
}

// SetBaseURL overrides mode-based address resolution for clients created
// afterwards. Useful for gateways and test servers.
func (b *Bridge) SetBaseURL(u string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.baseURL = u
}

// SetMetrics attaches a collector; clients created afterwards record
// request and rate-limit-usage metrics through it.
func (b *Bridge) SetMetrics(m *MetricsCollector) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.metrics = m
}

// SharedTransport returns the process-shared transport, building it on
// first use. Every invocation returns the same handle.
func (b *Bridge) SharedTransport() *Transport {
	b.transportOnce.Do(func() {
		b.transport = NewTransport(b.cfg)
		b.debugf("built shared transport: %+v\n", *b.cfg)
	})
	return b.transport
}

// NewClient produces a generated client bound to the factory's base address
// and codec.
//
// With complete credentials the client sends through a transport derived
// from the shared one, whose interceptor chain signs every request with
// exactly those credentials. With empty or partially empty credentials the
// client is unauthenticated and shares the base transport directly; a pair
// with only one field set degrades silently rather than failing.
//
// NewClient is safe to call concurrently and repeatedly; each client is
// independent, and a signing chain built for one credential pair never
// touches requests issued through another client.
func (b *Bridge) NewClient(creds Credentials) *Client {
	transport := b.SharedTransport()

	b.mu.Lock()
	signFn := b.signFn
	metrics := b.metrics
	baseURL := b.baseURL
	b.mu.Unlock()
	if baseURL == "" {
		baseURL = BaseURL(b.mode)
	}

	if creds.ok() {
		transport = transport.WithInterceptors(signFn(creds.APIKey, creds.SecretKey))
		b.debugf("derived signing transport for key %s...\n", truncateKey(creds.APIKey))
	}

	return &Client{
		baseURL:     baseURL,
		http:        transport.client(),
		transport:   transport,
		codec:       b.codec,
		decodeError: b.decodeError,
		metrics:     metrics,
	}
}

// debugf prints debug messages if Debug mode is enabled.
func (b *Bridge) debugf(format string, args ...interface{}) {
	if b.Debug {
		fmt.Printf("[DEBUG] "+format, args...)
	}
}

func truncateKey(key string) string {
	if len(key) <= 4 {
		return key
	}
	return key[:4]
}
