// Package binancebridge manufactures typed REST clients for the Binance
// HTTP API.
//
// All clients produced by one Bridge share a single bounded connection pool.
// Clients built with complete credentials send requests through a derived
// transport whose interceptor chain signs every outgoing request; the pool
// and timeouts stay shared with the unauthenticated transport.
//
// Every call is synchronous and one-shot. Failures surface as exactly two
// error kinds: *TransportError when no response was obtained (or an error
// payload could not be decoded), and *APIError for a well-formed error
// response from the exchange. This layer never retries, logs, or suppresses.
//
// On success, rate-limit usage counters reported by the exchange in
// "x-mbx-"-prefixed response headers are written into the decoded body when
// the body type carries a RateLimitSink.
package binancebridge
