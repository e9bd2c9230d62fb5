// request_response.go
// -------------------
// Call is the pending-call object: one remote invocation with its method,
// path and parameters already bound, not yet executed. A Call is strictly
// one-shot; executing it a second time returns ErrCallConsumed.
package binancebridge

import (
	"context"
	"net/url"
	"sync/atomic"
)

// Call is a bound, not-yet-executed remote invocation produced by a Client.
// It is not safe for concurrent use and must be executed at most once.
type Call struct {
	client *Client

	method string
	path   string
	query  url.Values
	body   any
	out    any

	consumed atomic.Bool
}

// Param binds a query parameter. Repeated keys overwrite earlier values.
func (c *Call) Param(key, value string) *Call {
	if c.query == nil {
		c.query = url.Values{}
	}
	c.query.Set(key, value)
	return c
}

// Body binds a request body, encoded with the client's codec at execution
// time.
func (c *Call) Body(v any) *Call {
	c.body = v
	return c
}

// Into binds the decode target for the success payload. out must be a
// pointer. Calls without a target discard the payload.
func (c *Call) Into(out any) *Call {
	c.out = out
	return c
}

// Execute performs the call synchronously. See Client.Do.
func (c *Call) Execute(ctx context.Context) error {
	return c.client.Do(ctx, c)
}
