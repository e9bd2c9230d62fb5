package binancebridge

import "net/http"

// Interceptor transforms an outgoing request before it is sent. The request
// passed in is already a private clone; interceptors may mutate it freely.
// A non-nil error aborts the call before any bytes reach the wire.
type Interceptor func(req *http.Request) error

// SignFunc produces the request transform that authenticates outgoing
// requests for one credential pair. The default is SignRequest; a Bridge can
// swap in another implementation with SetSignFunc.
type SignFunc func(apiKey, secretKey string) Interceptor

// WithRateLimits is the capability a decoded response body may implement to
// receive observed rate-limit usage counters. Bodies embed RateLimitSink to
// get a conforming implementation.
type WithRateLimits interface {
	// RateLimits returns the mutable mapping from limit key to current
	// usage count. It never returns nil.
	RateLimits() map[string]int
}
