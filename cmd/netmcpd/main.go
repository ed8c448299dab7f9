package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/netmcp/netmcp/internal/inventory"
	"github.com/netmcp/netmcp/internal/toolserver"
)

func main() {
	invPath := flag.String("inventory", "devices.yaml", "path to devices YAML")
	flag.Parse()

	inv, err := inventory.Load(*invPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "netmcpd: %v\n", err)
		os.Exit(1)
	}

	s := toolserver.New(inv, nil)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "netmcpd: %v\n", err)
		os.Exit(1)
	}
}
