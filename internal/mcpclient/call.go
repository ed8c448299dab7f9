package mcpclient

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/netmcp/netmcp/internal/response"
)

// ProtocolVersion is the protocol revision declared during initialize.
const ProtocolVersion = "2025-03-26"

// Tool describes one named operation the server exposes.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// Initialize performs the session handshake: the initialize round-trip
// followed by the initialized notification. It returns the server's name.
// Tool calls are rejected until this has succeeded.
func (c *Client) Initialize(clientName, clientVersion string, timeout time.Duration) (string, error) {
	params := map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities":    map[string]any{"tools": map[string]any{}},
		"clientInfo": map[string]any{
			"name":    clientName,
			"version": clientVersion,
		},
	}
	resp, err := c.Request("initialize", params, timeout)
	if err != nil {
		return "", err
	}
	if len(resp.Error) > 0 {
		return "", fmt.Errorf("initialize: server error: %s", resp.Error)
	}

	var result struct {
		ServerInfo struct {
			Name string `json:"name"`
		} `json:"serverInfo"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return "", fmt.Errorf("initialize: decoding result: %w", err)
	}

	if err := c.Notify("notifications/initialized", map[string]any{}); err != nil {
		return "", err
	}
	c.state.CompareAndSwap(stateStarted, stateInitialized)
	return result.ServerInfo.Name, nil
}

// ListTools fetches the server's tool descriptors.
func (c *Client) ListTools(timeout time.Duration) ([]Tool, error) {
	resp, err := c.Request("tools/list", nil, timeout)
	if err != nil {
		return nil, err
	}
	if len(resp.Error) > 0 {
		return nil, fmt.Errorf("tools/list: server error: %s", resp.Error)
	}
	var result struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("tools/list: decoding result: %w", err)
	}
	return result.Tools, nil
}

// CallTool invokes one named tool and returns the merged result mapping
// exactly as the server sent it. A server-reported error surfaces as a
// ToolError carrying the error payload verbatim.
func (c *Client) CallTool(name string, args map[string]any, timeout time.Duration) (map[string]any, error) {
	if c.state.Load() != stateInitialized {
		return nil, fmt.Errorf("calling %s: session not initialized", name)
	}
	if args == nil {
		args = map[string]any{}
	}
	params := map[string]any{"name": name, "arguments": args}
	resp, err := c.Request("tools/call", params, timeout)
	if err != nil {
		return nil, err
	}
	if len(resp.Error) > 0 {
		return nil, &ToolError{Tool: name, Payload: resp.Error}
	}
	return response.Merge(resp.Result), nil
}
