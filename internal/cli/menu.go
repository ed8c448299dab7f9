package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/netmcp/netmcp/internal/mcpclient"
)

var choiceNumRe = regexp.MustCompile(`^\s*(\d+)\s*\.?\s*$`)

// selectTool shows the tool menu and returns the chosen tool name, or
// ok=false when the operator quits or input ends.
func (c *console) selectTool() (string, bool) {
	for {
		fmt.Fprintln(c.out, "\n===== Select a tool (or 'q' to quit) =====")
		for i, tool := range c.tools {
			line := fmt.Sprintf("%d. %s", i+1, tool.Name)
			if tool.Description != "" {
				line += " - " + tool.Description
			}
			fmt.Fprintln(c.out, line)
		}

		fmt.Fprint(c.out, "\nChoice: ")
		choice, ok := c.prompt.readLine()
		if !ok {
			return "", false
		}
		if isQuit(choice) {
			return "", false
		}

		if m := choiceNumRe.FindStringSubmatch(choice); m != nil {
			idx, _ := strconv.Atoi(m[1])
			if idx >= 1 && idx <= len(c.tools) {
				return c.tools[idx-1].Name, true
			}
			fmt.Fprintln(c.out, "Invalid number.")
			continue
		}

		if name, ok := matchToolName(c.tools, choice); ok {
			return name, true
		}
		fmt.Fprintf(c.out, "Unknown selection %q. Try a number like '1' or a tool name.\n", choice)
	}
}

// matchToolName accepts an exact name, then a case-insensitive one.
func matchToolName(tools []mcpclient.Tool, choice string) (string, bool) {
	for _, t := range tools {
		if t.Name == choice {
			return t.Name, true
		}
	}
	lowered := strings.ToLower(choice)
	for _, t := range tools {
		if strings.ToLower(t.Name) == lowered {
			return t.Name, true
		}
	}
	return "", false
}

func isQuit(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
