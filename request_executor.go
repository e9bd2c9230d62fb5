// request_executor.go
// -------------------
// Synchronous call execution and error translation. A call runs exactly
// once through: send, then either transport failure (TransportError),
// error response (APIError, or TransportError when the error payload is
// itself undecodable), or success (rate-limit extraction, then decode).
// There are no retries at this layer.
package binancebridge

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// Client is a generated remote-procedure client: a base address, a shared
// or signing-derived transport, and the codec, fixed at construction. It is
// stateless beyond those bindings and safe for concurrent use; callers may
// retain one indefinitely or discard it freely.
type Client struct {
	baseURL     string
	http        *http.Client
	transport   *Transport
	codec       *Codec
	decodeError errorDecoderFunc
	metrics     *MetricsCollector
}

// NewCall begins a pending invocation of method against path (rooted at the
// client's base address).
func (c *Client) NewCall(method, path string) *Call {
	return &Call{client: c, method: method, path: path}
}

// Get is shorthand for NewCall("GET", path).Into(out).
func (c *Client) Get(path string, out any) *Call {
	return c.NewCall(http.MethodGet, path).Into(out)
}

// Post is shorthand for NewCall("POST", path).Into(out).
func (c *Client) Post(path string, out any) *Call {
	return c.NewCall(http.MethodPost, path).Into(out)
}

// Put is shorthand for NewCall("PUT", path).Into(out).
func (c *Client) Put(path string, out any) *Call {
	return c.NewCall(http.MethodPut, path).Into(out)
}

// Delete is shorthand for NewCall("DELETE", path).Into(out).
func (c *Client) Delete(path string, out any) *Call {
	return c.NewCall(http.MethodDelete, path).Into(out)
}

// BaseURL returns the endpoint root the client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Transport returns the transport handle the client sends through.
func (c *Client) Transport() *Transport {
	return c.transport
}

// Do executes a pending call and blocks until it completes. On success the
// call's decode target holds the response body, already populated with any
// observed rate-limit counters. The returned error is always nil, a
// *TransportError, or an *APIError, except for ErrCallConsumed on reuse of
// an already-executed call.
func (c *Client) Do(ctx context.Context, call *Call) error {
	if call.consumed.Swap(true) {
		return ErrCallConsumed
	}

	req, err := c.buildRequest(ctx, call)
	if err != nil {
		return &TransportError{Op: "build request", Err: err}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.record(call, 0, time.Since(start))
		return &TransportError{Op: "roundtrip", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.record(call, resp.StatusCode, time.Since(start))
	if err != nil {
		return &TransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if call.out != nil {
			if err := c.codec.Decode(body, call.out); err != nil {
				return &TransportError{Op: "decode response", Err: err}
			}
		}
		c.extractRateLimits(call.out, resp.Header)
		return nil
	}

	apiErr, decErr := c.decodeError(resp.StatusCode, body)
	if decErr != nil {
		return &TransportError{Op: "decode error response", Err: decErr}
	}
	return apiErr
}

func (c *Client) buildRequest(ctx context.Context, call *Call) (*http.Request, error) {
	var reader io.Reader
	if call.body != nil {
		encoded, err := c.codec.Encode(call.body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, call.method, c.baseURL+call.path, reader)
	if err != nil {
		return nil, err
	}
	if len(call.query) > 0 {
		req.URL.RawQuery = call.query.Encode()
	}
	if call.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) record(call *Call, status int, d time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordRequest(call.method, call.path, status, d)
}
