// Package mock provides a canned http.RoundTripper for testing code built
// on generated clients without a live endpoint.
package mock

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// Response is one canned reply.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Transport replays canned responses keyed by "METHOD path". Unmatched
// requests receive Fallback, or 404 when Fallback is nil. It records every
// request it sees and is safe for concurrent use.
type Transport struct {
	mu        sync.Mutex
	responses map[string]Response
	requests  []*http.Request

	// Fallback answers unmatched requests. Set it before the transport
	// starts serving; it is read, not written, during RoundTrip.
	Fallback *Response
}

// NewTransport creates an empty mock transport.
func NewTransport() *Transport {
	return &Transport{responses: make(map[string]Response)}
}

// Stub registers the reply for a method and path.
func (t *Transport) Stub(method, path string, resp Response) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses[method+" "+path] = resp
}

// Requests returns the requests seen so far, in order.
func (t *Transport) Requests() []*http.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*http.Request, len(t.requests))
	copy(out, t.requests)
	return out
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.requests = append(t.requests, req)
	canned, ok := t.responses[req.Method+" "+req.URL.Path]
	fallback := t.Fallback
	t.mu.Unlock()

	if !ok {
		if fallback != nil {
			canned = *fallback
		} else {
			canned = Response{StatusCode: http.StatusNotFound, Body: []byte(`{"code":-1000,"msg":"not stubbed"}`)}
		}
	}

	header := make(http.Header, len(canned.Headers))
	for k, v := range canned.Headers {
		header.Set(k, v)
	}
	return &http.Response{
		StatusCode: canned.StatusCode,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(canned.Body)),
		Request:    req,
	}, nil
}
