package mcpclient

import (
	"encoding/json"
	"fmt"
	"time"
)

// LaunchError means the server process could not be started. It is fatal to
// the client and never retried.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching %s: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// TimeoutError means no response arrived for a request within its deadline.
// The request may be retried with a fresh id.
type TimeoutError struct {
	ID      int64
	Method  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout after %s waiting for %s (id %d)", e.Timeout, e.Method, e.ID)
}

// ToolError means the server explicitly reported an error for a tool call.
// Payload is the server's error object, byte for byte.
type ToolError struct {
	Tool    string
	Payload json.RawMessage
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s: %s", e.Tool, string(e.Payload))
}
