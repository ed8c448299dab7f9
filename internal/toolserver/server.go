// Package toolserver exposes the device-automation tools over MCP. It is
// the server side netmcp spawns: a YAML inventory, an SSH session per tool
// call, and five tools mirroring the operator workflows.
package toolserver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/netmcp/netmcp/internal/device"
	"github.com/netmcp/netmcp/internal/inventory"
)

// DialFunc opens a session to one device. Injected so handlers are testable
// without a router on the bench.
type DialFunc func(device.DialConfig) (device.Session, error)

// Server wires the inventory and dialer into tool handlers.
type Server struct {
	inv  *inventory.Inventory
	dial DialFunc
}

// New builds the MCP server with all device tools registered. A nil dial
// uses the real SSH dialer.
func New(inv *inventory.Inventory, dial DialFunc) *server.MCPServer {
	if dial == nil {
		dial = func(cfg device.DialConfig) (device.Session, error) {
			return device.Dial(cfg)
		}
	}
	s := &Server{inv: inv, dial: dial}

	m := server.NewMCPServer("netmcpd", "1.0.0", server.WithToolCapabilities(false))
	s.register(m)
	return m
}

func (s *Server) register(m *server.MCPServer) {
	m.AddTool(
		mcp.NewTool("list_devices",
			mcp.WithDescription("List available device names from the YAML inventory."),
		),
		s.handleListDevices,
	)

	m.AddTool(
		mcp.NewTool("get_interfaces",
			mcp.WithDescription("Run 'show ip interface brief' and return raw + parsed output for a device."),
			mcp.WithString("device", mcp.Description("Device name; defaults to the first inventory entry.")),
		),
		s.handleGetInterfaces,
	)

	m.AddTool(
		mcp.NewTool("get_version",
			mcp.WithDescription("Run 'show version' and return raw + parsed for a device."),
			mcp.WithString("device", mcp.Description("Device name; defaults to the first inventory entry.")),
		),
		s.handleGetVersion,
	)

	m.AddTool(
		mcp.NewTool("set_interface_ip",
			mcp.WithDescription("Set/replace IP on an interface. Verifies with 'show ip interface brief'."),
			mcp.WithString("interface", mcp.Required(), mcp.Description("Interface name, e.g. Ethernet0/0.")),
			mcp.WithString("ip", mcp.Required(), mcp.Description("Address, CIDR or dotted.")),
			mcp.WithString("mask", mcp.Description("Prefix length or dotted mask; required unless ip is CIDR.")),
			mcp.WithString("device", mcp.Description("Device name; defaults to the first inventory entry.")),
			mcp.WithBoolean("replace", mcp.Description("Remove any existing address first.")),
			mcp.WithBoolean("no_shutdown", mcp.Description("Send 'no shutdown' after addressing.")),
			mcp.WithBoolean("save", mcp.Description("Persist with 'write memory'.")),
			mcp.WithBoolean("dry_run", mcp.Description("Preview the commands without connecting.")),
		),
		s.handleSetInterfaceIP,
	)

	m.AddTool(
		mcp.NewTool("create_loopback",
			mcp.WithDescription("Create a loopback interface with IP. Verifies with 'show ip interface brief'."),
			mcp.WithNumber("loopback_id", mcp.Required(), mcp.Description("Non-negative loopback number.")),
			mcp.WithString("ip", mcp.Required(), mcp.Description("Address, CIDR or dotted.")),
			mcp.WithString("mask", mcp.Description("Prefix length or dotted mask; required unless ip is CIDR.")),
			mcp.WithString("device", mcp.Description("Device name; defaults to the first inventory entry.")),
			mcp.WithString("description", mcp.Description("Interface description, single line.")),
			mcp.WithBoolean("save", mcp.Description("Persist with 'write memory'.")),
			mcp.WithBoolean("dry_run", mcp.Description("Preview the commands without connecting.")),
		),
		s.handleCreateLoopback,
	)
}

// connect resolves a device name (empty means default) and opens a session.
func (s *Server) connect(name string) (string, device.Session, error) {
	resolved, dev, err := s.inv.Get(name)
	if err != nil {
		return "", nil, err
	}
	sess, err := s.dial(device.DialConfig{
		Host:     dev.Host,
		Port:     dev.Port,
		Username: dev.Username,
		Password: dev.Password,
		Secret:   dev.Secret,
		Timeout:  8 * time.Second,
	})
	if err != nil {
		return "", nil, err
	}
	return resolved, sess, nil
}

// payload renders a result mapping as JSON text content. Device-level
// failures travel inside the payload as {"error": ...}, not as protocol
// errors, so batch callers can keep going.
func payload(data map[string]any) *mcp.CallToolResult {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultText(`{"error":"encoding result"}`)
	}
	return mcp.NewToolResultText(string(b))
}

func errPayload(err error) *mcp.CallToolResult {
	return payload(map[string]any{"error": err.Error()})
}

func (s *Server) handleListDevices(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return payload(map[string]any{"devices": s.inv.Names()}), nil
}

func (s *Server) handleGetInterfaces(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, sess, err := s.connect(req.GetString("device", ""))
	if err != nil {
		return errPayload(err), nil
	}
	defer sess.Close()

	raw, err := sess.Run("show ip interface brief")
	if err != nil {
		return errPayload(err), nil
	}
	return payload(map[string]any{
		"device": name,
		"raw":    raw,
		"parsed": device.ParseInterfaceBrief(raw),
	}), nil
}

func (s *Server) handleGetVersion(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, sess, err := s.connect(req.GetString("device", ""))
	if err != nil {
		return errPayload(err), nil
	}
	defer sess.Close()

	raw, err := sess.Run("show version")
	if err != nil {
		return errPayload(err), nil
	}
	return payload(map[string]any{
		"device": name,
		"raw":    raw,
		"parsed": device.ParseShowVersion(raw),
	}), nil
}

func (s *Server) handleSetInterfaceIP(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ifaceArg, err := req.RequireString("interface")
	if err != nil {
		return errPayload(err), nil
	}
	ipArg, err := req.RequireString("ip")
	if err != nil {
		return errPayload(err), nil
	}

	iface, err := device.ValidateInterfaceName(ifaceArg)
	if err != nil {
		return errPayload(err), nil
	}
	addr, netmask, err := device.NormalizeIPMask(ipArg, req.GetString("mask", ""))
	if err != nil {
		return errPayload(err), nil
	}

	cmds := device.InterfaceIPCommands(iface, addr, netmask,
		req.GetBool("replace", true), req.GetBool("no_shutdown", true))

	return s.applyConfig(req, cmds)
}

func (s *Server) handleCreateLoopback(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := device.ValidateLoopbackID(req.GetInt("loopback_id", -1))
	if err != nil {
		return errPayload(err), nil
	}
	ipArg, err := req.RequireString("ip")
	if err != nil {
		return errPayload(err), nil
	}
	addr, netmask, err := device.NormalizeIPMask(ipArg, req.GetString("mask", ""))
	if err != nil {
		return errPayload(err), nil
	}

	cmds := device.LoopbackCommands(id, req.GetString("description", ""), addr, netmask)
	return s.applyConfig(req, cmds)
}

// applyConfig runs a config set with the shared dry-run/save/verify flow.
func (s *Server) applyConfig(req mcp.CallToolRequest, cmds []string) (*mcp.CallToolResult, error) {
	deviceArg := req.GetString("device", "")
	save := req.GetBool("save", false)

	if req.GetBool("dry_run", false) {
		name, _, err := s.inv.Get(deviceArg)
		if err != nil {
			return errPayload(err), nil
		}
		return payload(map[string]any{
			"device":   name,
			"commands": cmds,
			"raw":      nil,
			"parsed":   nil,
			"saved":    false,
			"dry_run":  true,
		}), nil
	}

	name, sess, err := s.connect(deviceArg)
	if err != nil {
		return errPayload(err), nil
	}
	defer sess.Close()

	raw, err := sess.ConfigSet(cmds)
	if err != nil {
		return errPayload(err), nil
	}
	if save {
		out, err := sess.Run("write memory")
		if err != nil {
			return errPayload(err), nil
		}
		raw += "\n" + out
	}
	verify, err := sess.Run("show ip interface brief")
	if err != nil {
		return errPayload(err), nil
	}

	return payload(map[string]any{
		"device":   name,
		"commands": cmds,
		"raw":      raw,
		"parsed":   device.ParseInterfaceBrief(verify),
		"saved":    save,
		"dry_run":  false,
	}), nil
}
