// Package cli implements the netmcp operator console: it spawns the
// configured tool server, performs the session handshake, and drives the
// interactive tool menu.
package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/netmcp/netmcp/internal/config"
	"github.com/netmcp/netmcp/internal/mcpclient"
	"github.com/netmcp/netmcp/internal/response"
)

const clientVersion = "1.0.0"

// Exit codes.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsageErr = 2
)

type console struct {
	client *mcpclient.Client
	prompt *prompter
	out    io.Writer
	tools  []mcpclient.Tool
	scfg   config.ServerConfig
}

func (c *console) callTimeout() time.Duration { return c.scfg.CallDeadline() }
func (c *console) listTimeout() time.Duration { return config.DefaultListTimeout }

// callNorm invokes a tool and normalizes the result for display.
func (c *console) callNorm(name string, args map[string]any) (map[string]any, error) {
	data, err := c.client.CallTool(name, args, c.callTimeout())
	if err != nil {
		return nil, err
	}
	return response.Normalize(name, data), nil
}

// Run is the main CLI entry point. Returns an exit code.
func Run(args []string) int {
	fs := flag.NewFlagSet("netmcp", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "path to netmcp.toml (default: user config dir)")
	serverFlag := fs.String("server", "", "config entry to connect to")
	if err := fs.Parse(args); err != nil {
		return ExitUsageErr
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "netmcp: %v\n", err)
		return ExitInternal
	}
	if verr := config.Validate(cfg); verr != nil {
		fmt.Fprintf(os.Stderr, "netmcp: invalid config: %v\n", verr)
		return ExitUsageErr
	}

	scfg, err := chooseServer(cfg, *serverFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "netmcp: %v\n", err)
		return ExitUsageErr
	}

	return runSession(scfg, os.Stdin, os.Stdout)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// chooseServer resolves which config entry to spawn: the -server flag, the
// default_server key, the sole entry, or (with an empty config) the bundled
// netmcpd against devices.yaml in the working directory.
func chooseServer(cfg *config.Config, name string) (config.ServerConfig, error) {
	if name != "" {
		scfg, ok := cfg.Servers[name]
		if !ok {
			return config.ServerConfig{}, fmt.Errorf("unknown server: %s (available: %s)", name, serverNames(cfg))
		}
		return scfg, nil
	}
	if cfg.DefaultServer != "" {
		return cfg.Servers[cfg.DefaultServer], nil
	}
	switch len(cfg.Servers) {
	case 0:
		return config.ServerConfig{
			Command: "netmcpd",
			Args:    []string{"--inventory", "devices.yaml"},
		}, nil
	case 1:
		for _, scfg := range cfg.Servers {
			return scfg, nil
		}
	}
	return config.ServerConfig{}, fmt.Errorf("multiple servers configured, pick one with -server (available: %s)", serverNames(cfg))
}

func serverNames(cfg *config.Config) string {
	names := make([]string, 0, len(cfg.Servers))
	for name := range cfg.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

func runSession(scfg config.ServerConfig, in io.Reader, out io.Writer) int {
	client, err := mcpclient.New(scfg.Command, scfg.Args, scfg.Env,
		mcpclient.WithDiagnostics(func(line string) {
			fmt.Fprintln(os.Stderr, line)
		}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "netmcp: %v\n", err)
		return ExitInternal
	}
	defer client.Close()

	serverName, err := client.Initialize("netmcp", clientVersion, scfg.InitDeadline())
	if err != nil {
		fmt.Fprintf(os.Stderr, "netmcp: %v\n", err)
		return ExitInternal
	}
	fmt.Fprintf(out, "Connected to MCP server: %s\n", serverName)

	tools, err := client.ListTools(config.DefaultListTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "netmcp: %v\n", err)
		return ExitInternal
	}
	if len(tools) == 0 {
		fmt.Fprintln(os.Stderr, "netmcp: no tools exposed by server")
		return ExitInternal
	}

	names := ""
	for i, t := range tools {
		if i > 0 {
			names += ", "
		}
		names += t.Name
	}
	fmt.Fprintf(out, "Tools available: %s\n", names)

	c := &console{
		client: client,
		prompt: &prompter{in: bufio.NewReader(in), out: out},
		out:    out,
		tools:  tools,
		scfg:   scfg,
	}
	c.loop()
	return ExitOK
}

func (c *console) loop() {
	for {
		name, ok := c.selectTool()
		if !ok {
			fmt.Fprintln(c.out, "Bye.")
			return
		}
		c.dispatch(name)
	}
}

func (c *console) dispatch(name string) {
	switch name {
	case "list_devices":
		c.runListDevices()
	case "get_interfaces", "get_version":
		c.runShowTool(name)
	case "set_interface_ip":
		if args := c.wizardSetInterfaceIP(); args != nil {
			c.runCall(name, args)
		}
	case "create_loopback":
		c.runCreateLoopback()
	default:
		fmt.Fprintln(c.out, "No custom flow for this tool yet.")
	}
}
