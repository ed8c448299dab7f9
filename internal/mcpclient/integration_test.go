package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const stdioHelperEnv = "GO_WANT_NETMCP_STDIO_HELPER"

func TestClientStdioIntegrationHandshakeListAndCall(t *testing.T) {
	client, err := New(
		os.Args[0],
		[]string{"-test.run=TestNetmcpStdioHelperProcess", "--", "stdio-helper"},
		map[string]string{stdioHelperEnv: "1"},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	name, err := client.Initialize("netmcp-test", "0.0.1", 10*time.Second)
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if name != "netmcpd-stdio-helper" {
		t.Fatalf("server name = %q, want %q", name, "netmcpd-stdio-helper")
	}

	tools, err := client.ListTools(10 * time.Second)
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	if len(tools) != 1 {
		t.Fatalf("len(tools) = %d, want 1", len(tools))
	}
	if tools[0].Name != "get_version" {
		t.Fatalf("tools[0].Name = %q, want %q", tools[0].Name, "get_version")
	}
	if len(tools[0].InputSchema) == 0 {
		t.Fatal("tools[0].InputSchema is empty, want declared schema")
	}

	data, err := client.CallTool("get_version", map[string]any{"device": "R51"}, 10*time.Second)
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if data["device"] != "R51" {
		t.Fatalf("data[device] = %v, want %q", data["device"], "R51")
	}
	parsed, ok := data["parsed"].(map[string]any)
	if !ok {
		t.Fatalf("data[parsed] type = %T, want map[string]any", data["parsed"])
	}
	if parsed["version"] != "17.3.2" {
		t.Fatalf("parsed[version] = %v, want %q", parsed["version"], "17.3.2")
	}
}

func TestClientStdioIntegrationInvalidCommandFails(t *testing.T) {
	if _, err := New("netmcp-this-command-does-not-exist", nil, nil); err == nil {
		t.Fatal("New() error = nil, want LaunchError for invalid command")
	}
}

func TestNetmcpStdioHelperProcess(t *testing.T) {
	if os.Getenv(stdioHelperEnv) != "1" {
		return
	}

	s := server.NewMCPServer("netmcpd-stdio-helper", "1.0.0")
	s.AddTool(mcp.NewTool("get_version",
		mcp.WithDescription("Returns software version details for one device"),
		mcp.WithString("device", mcp.Required()),
	), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		device, err := request.RequireString("device")
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"device": device,
			"raw":    "Cisco IOS XE Software, Version 17.3.2, RELEASE SOFTWARE",
			"parsed": map[string]any{"hostname": device, "version": "17.3.2"},
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(body)), nil
	})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "serve stdio helper: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
