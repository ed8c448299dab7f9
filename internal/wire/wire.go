// Package wire defines the JSON-RPC 2.0 envelopes netmcp exchanges with a
// tool server over newline-delimited JSON.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const Version = "2.0"

// Request is a call that expects a response carrying the same ID.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Notification is a fire-and-forget message. It carries no ID and no
// response is ever produced for it.
type Notification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is one decoded reply line. Exactly one of Result or Error is set
// on a well-formed response.
type Response struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      *int64          `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// IsResponse reports whether the document can be correlated to a request:
// it has an id and at least one of result or error.
func (r *Response) IsResponse() bool {
	return r.ID != nil && (len(r.Result) > 0 || len(r.Error) > 0)
}

// NewRequest builds a request envelope, marshaling params if present.
func NewRequest(id int64, method string, params any) (*Request, error) {
	raw, err := marshalParams(params)
	if err != nil {
		return nil, fmt.Errorf("encoding params for %s: %w", method, err)
	}
	return &Request{JSONRPC: Version, ID: id, Method: method, Params: raw}, nil
}

// NewNotification builds a notification envelope.
func NewNotification(method string, params any) (*Notification, error) {
	raw, err := marshalParams(params)
	if err != nil {
		return nil, fmt.Errorf("encoding params for %s: %w", method, err)
	}
	return &Notification{JSONRPC: Version, Method: method, Params: raw}, nil
}

func marshalParams(params any) (json.RawMessage, error) {
	if params == nil {
		return nil, nil
	}
	return json.Marshal(params)
}

// Encode renders v as a single NDJSON line, newline included.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DecodeResponse parses one line from the server. A nil response with a nil
// error means the line was valid JSON but not a correlatable response.
func DecodeResponse(line []byte) (*Response, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, nil
	}
	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, err
	}
	if !resp.IsResponse() {
		return nil, nil
	}
	return &resp, nil
}
