// codec.go
// --------
// One codec instance encodes request bodies and decodes both success and
// error payloads, so the two paths always share a single format
// configuration. The error decoder is built once per Bridge from the same
// codec that decodes success bodies.
package binancebridge

import "encoding/json"

// Codec encodes and decodes JSON payloads for generated clients.
type Codec struct{}

// NewJSONCodec returns the codec used by default for all clients.
func NewJSONCodec() *Codec {
	return &Codec{}
}

// Encode serializes a request body.
func (c *Codec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode deserializes a response payload into out.
func (c *Codec) Decode(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

// errorDecoderFunc turns a non-2xx payload into a structured *APIError. A
// non-nil error means the payload was not a well-formed error body.
type errorDecoderFunc func(status int, body []byte) (*APIError, error)

// errorDecoder builds the fixed error-body decoder for this codec
// configuration.
func (c *Codec) errorDecoder() errorDecoderFunc {
	return func(status int, body []byte) (*APIError, error) {
		apiErr := &APIError{StatusCode: status}
		if err := c.Decode(body, apiErr); err != nil {
			return nil, err
		}
		return apiErr, nil
	}
}
