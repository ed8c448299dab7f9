package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/netmcp/netmcp/internal/device"
)

// prompter reads operator answers line by line. All prompt helpers loop
// until they get a usable value or fall back to the default.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// readLine returns the next input line, or ok=false on EOF.
func (p *prompter) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// String prompts for a string. Empty input takes the default when present,
// or an empty value when allowEmpty is set.
func (p *prompter) String(msg, def string, allowEmpty bool) (string, bool) {
	suffix := ""
	if def != "" {
		suffix = fmt.Sprintf(" [%s]", def)
	}
	for {
		fmt.Fprintf(p.out, "%s%s: ", msg, suffix)
		val, ok := p.readLine()
		if !ok {
			return "", false
		}
		if val == "" {
			if def != "" {
				return def, true
			}
			if allowEmpty {
				return "", true
			}
			fmt.Fprintln(p.out, "Please enter a value.")
			continue
		}
		return val, true
	}
}

// Bool prompts for a yes/no answer.
func (p *prompter) Bool(msg string, def bool) (bool, bool) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s (%s): ", msg, hint)
		val, ok := p.readLine()
		if !ok {
			return false, false
		}
		switch strings.ToLower(val) {
		case "":
			return def, true
		case "y", "yes", "true", "1":
			return true, true
		case "n", "no", "false", "0":
			return false, true
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// Int prompts for an integer no smaller than min.
func (p *prompter) Int(msg string, def, min int) (int, bool) {
	for {
		fmt.Fprintf(p.out, "%s [%d]: ", msg, def)
		val, ok := p.readLine()
		if !ok {
			return 0, false
		}
		if val == "" {
			return def, true
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a number.")
			continue
		}
		if n < min {
			fmt.Fprintf(p.out, "Must be >= %d\n", min)
			continue
		}
		return n, true
	}
}

// IPWithOptionalMask prompts for an address. CIDR input needs no mask;
// otherwise a mask is prompted for and validated. Both values are returned
// as typed by the operator, since the server re-normalizes them.
func (p *prompter) IPWithOptionalMask(defIP, defMask string) (ip, mask string, ok bool) {
	for {
		ipIn, ok := p.String("IP (CIDR or dotted)", defIP, false)
		if !ok {
			return "", "", false
		}
		if strings.Contains(ipIn, "/") {
			if _, _, err := device.NormalizeIPMask(ipIn, ""); err != nil {
				fmt.Fprintf(p.out, "Invalid CIDR (e.g., 10.0.0.1/24).\n")
				continue
			}
			return ipIn, "", true
		}
		if _, _, err := device.NormalizeIPMask(ipIn, "32"); err != nil {
			fmt.Fprintln(p.out, "Invalid IP address.")
			continue
		}

		maskDef := defMask
		if maskDef == "" {
			maskDef = "24"
		}
		for {
			maskIn, ok := p.String("Mask (CIDR length like 24 or dotted like 255.255.255.0)", maskDef, false)
			if !ok {
				return "", "", false
			}
			if _, _, err := device.NormalizeIPMask(ipIn, maskIn); err != nil {
				fmt.Fprintln(p.out, "Invalid mask.")
				continue
			}
			return ipIn, maskIn, true
		}
	}
}
