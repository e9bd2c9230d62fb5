// rate_limits.go
// --------------
// Opportunistic harvesting of rate-limit usage counters. The exchange
// reports current usage in response headers prefixed "x-mbx-"; of those,
// only used-weight-* and order-count-* keys are retained. Harvested values
// are written into the decoded body when it exposes the sink capability.
// Extraction never fails a call: malformed numeric values are skipped.
package binancebridge

import (
	"net/http"
	"strconv"
	"strings"
)

// rateLimitHeaderPrefix selects candidate response headers,
// case-insensitively.
const rateLimitHeaderPrefix = "x-mbx-"

// RateLimitSink is an embeddable implementation of WithRateLimits. Response
// body types that should receive observed usage counters embed it:
//
//	type AccountSnapshot struct {
//	    binancebridge.RateLimitSink
//	    Balances []Balance `json:"balances"`
//	}
//
// The mapping is owned by the body instance and scoped to the call that
// produced it.
type RateLimitSink struct {
	rateLimits map[string]int
}

// RateLimits returns the mutable usage mapping, allocating it on first use.
func (s *RateLimitSink) RateLimits() map[string]int {
	if s.rateLimits == nil {
		s.rateLimits = make(map[string]int)
	}
	return s.rateLimits
}

// Usage looks up a counter by key, case-insensitively, so callers need not
// care how the transport cased the header name.
func (s *RateLimitSink) Usage(key string) (int, bool) {
	for k, v := range s.rateLimits {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return 0, false
}

// UsedWeight looks up the request-weight counter for an interval window,
// e.g. UsedWeight("1m").
func (s *RateLimitSink) UsedWeight(window string) (int, bool) {
	return s.Usage("used-weight-" + window)
}

// OrderCount looks up the placed-order counter for an interval window,
// e.g. OrderCount("10s").
func (s *RateLimitSink) OrderCount(window string) (int, bool) {
	return s.Usage("order-count-" + window)
}

// extractRateLimits writes recognized usage counters from headers into the
// decoded body. No-op unless the body implements WithRateLimits. Keys keep
// the casing the transport delivered; duplicate values for one key resolve
// last-write-wins in header order.
func (c *Client) extractRateLimits(body any, headers http.Header) {
	sink, ok := body.(WithRateLimits)
	if !ok {
		c.observeUsage(headers)
		return
	}

	limits := sink.RateLimits()
	for name, values := range headers {
		key, ok := rateLimitKey(name)
		if !ok {
			continue
		}
		for _, raw := range values {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				// Upstream guarantees decimal non-negative values; a
				// violation is skipped rather than failing the call.
				continue
			}
			limits[key] = n
		}
	}
	c.observeUsage(headers)
}

// rateLimitKey strips the header prefix and applies the allow-list,
// returning the usage key with its received casing.
func rateLimitKey(name string) (string, bool) {
	if len(name) < len(rateLimitHeaderPrefix) {
		return "", false
	}
	if !strings.EqualFold(name[:len(rateLimitHeaderPrefix)], rateLimitHeaderPrefix) {
		return "", false
	}
	key := name[len(rateLimitHeaderPrefix):]
	lower := strings.ToLower(key)
	if !strings.HasPrefix(lower, "used-weight") && !strings.HasPrefix(lower, "order-count") {
		return "", false
	}
	return key, true
}

// observeUsage feeds recognized counters to the metrics collector,
// independent of whether the body carries a sink.
func (c *Client) observeUsage(headers http.Header) {
	if c.metrics == nil {
		return
	}
	for name, values := range headers {
		key, ok := rateLimitKey(name)
		if !ok || len(values) == 0 {
			continue
		}
		n, err := strconv.Atoi(values[len(values)-1])
		if err != nil || n < 0 {
			continue
		}
		c.metrics.RecordRateLimitUsage(strings.ToLower(key), n)
	}
}
