// transport.go
// ------------
// This file implements the shared Transport: one bounded connection pool
// reused by every client a Bridge produces. The pool itself is a single
// *http.Transport; total concurrency across all derived handles is bounded
// by one weighted semaphore, and per-host concurrency by the pool's
// MaxConnsPerHost.
//
// Signing clients get a handle derived with WithInterceptors: the derived
// value shares the pool and the semaphore but carries its own interceptor
// chain, so a signature configured for one client can never leak onto
// requests issued through another.
package binancebridge

import (
	"net"
	"net/http"

	"golang.org/x/sync/semaphore"
)

// Transport is an http.RoundTripper backed by a shared bounded connection
// pool. It is safe for concurrent use by any number of clients.
type Transport struct {
	cfg          *TransportConfig
	base         http.RoundTripper
	pool         *http.Transport // nil when cfg.Base replaced the pooled layer
	sem          *semaphore.Weighted
	interceptors []Interceptor
}

// NewTransport builds a transport from cfg. Zero fields in cfg take the
// package defaults. The returned transport owns a fresh connection pool;
// callers normally obtain one through Bridge rather than directly.
func NewTransport(cfg *TransportConfig) *Transport {
	c := cfg.withDefaults()

	t := &Transport{
		cfg: c,
		sem: semaphore.NewWeighted(int64(c.MaxRequests)),
	}
	if c.Base != nil {
		t.base = c.Base
		return t
	}

	dialer := &net.Dialer{
		Timeout:   c.WriteTimeout,
		KeepAlive: c.KeepAlive,
	}
	t.pool = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxConnsPerHost:       c.MaxRequestsPerHost,
		MaxIdleConns:          c.MaxRequestsPerHost,
		MaxIdleConnsPerHost:   c.MaxRequestsPerHost,
		ResponseHeaderTimeout: c.ReadTimeout,
		ForceAttemptHTTP2:     true,
	}
	t.base = t.pool
	return t
}

// WithInterceptors derives a new handle sharing this transport's pool,
// semaphore and timeouts. The given interceptors are prepended to the
// receiver's chain; the receiver is not modified.
func (t *Transport) WithInterceptors(interceptors ...Interceptor) *Transport {
	chain := make([]Interceptor, 0, len(interceptors)+len(t.interceptors))
	chain = append(chain, interceptors...)
	chain = append(chain, t.interceptors...)
	return &Transport{
		cfg:          t.cfg,
		base:         t.base,
		pool:         t.pool,
		sem:          t.sem,
		interceptors: chain,
	}
}

// RoundTrip implements http.RoundTripper. It blocks while the pool is at
// capacity; queuing respects the request context.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.sem.Acquire(req.Context(), 1); err != nil {
		return nil, err
	}
	defer t.sem.Release(1)

	out := req
	if len(t.interceptors) > 0 {
		// RoundTrippers must not mutate the caller's request.
		out = req.Clone(req.Context())
		for _, intercept := range t.interceptors {
			if err := intercept(out); err != nil {
				return nil, err
			}
		}
	}

	return t.base.RoundTrip(out)
}

// Config returns the effective configuration the transport was built with.
func (t *Transport) Config() TransportConfig {
	return *t.cfg
}

// client wraps the transport in an *http.Client whose overall deadline
// covers writing the request and reading the response.
func (t *Transport) client() *http.Client {
	return &http.Client{
		Transport: t,
		Timeout:   t.cfg.ReadTimeout + t.cfg.WriteTimeout,
	}
}

// CloseIdleConnections drops idle pooled connections. Intended for process
// shutdown.
func (t *Transport) CloseIdleConnections() {
	if t.pool != nil {
		t.pool.CloseIdleConnections()
	}
}
