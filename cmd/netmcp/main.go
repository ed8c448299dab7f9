package main

import (
	"os"

	"github.com/netmcp/netmcp/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
