// Package mcpclient implements the client side of the netmcp tool protocol:
// it supervises a server subprocess, drains its output on a background
// goroutine, correlates replies to requests by id, and exposes synchronous
// request/notify primitives with per-call timeouts.
package mcpclient

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/netmcp/netmcp/internal/wire"
)

// Client states. Tool calls are permitted only once the session handshake
// has completed.
const (
	stateStarted int32 = iota
	stateInitialized
	stateClosed
)

// maxLine bounds the size of a single response line from the server.
const maxLine = 4 * 1024 * 1024

// Client owns one server subprocess and the single reader goroutine that
// drains its output for the lifetime of the session.
type Client struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	writeMu sync.Mutex

	pending *pendingTable
	lastID  atomic.Int64
	state   atomic.Int32

	diag func(string)
	done chan struct{}
}

// Option configures a Client.
type Option func(*Client)

// WithDiagnostics sets the sink for non-protocol lines the server prints
// that carry WARNING or ERROR markers. The default writes them to stderr.
func WithDiagnostics(fn func(string)) Option {
	return func(c *Client) { c.diag = fn }
}

// New starts the server process with the inherited environment plus env
// overrides, wires its stdin and its combined stdout+stderr to the client,
// and starts the reader. Failure to start is a LaunchError.
func New(command string, args []string, env map[string]string, opts ...Option) (*Client, error) {
	cmd := exec.Command(command, args...)
	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &LaunchError{Command: command, Err: err}
	}

	// The server's stderr is folded into the same stream as stdout so
	// diagnostic lines reach the reader alongside protocol traffic.
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, &LaunchError{Command: command, Err: err}
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, &LaunchError{Command: command, Err: err}
	}
	// Close the parent's copy of the write end so the reader sees EOF when
	// the child exits.
	pw.Close()

	c := newClient(pr, stdin, opts...)
	c.cmd = cmd
	return c, nil
}

// newClient builds a client over pre-existing streams. Used directly by
// tests that simulate the server end.
func newClient(out io.Reader, in io.WriteCloser, opts ...Option) *Client {
	c := &Client{
		stdin:   in,
		pending: newPendingTable(),
		diag:    func(line string) { fmt.Fprintln(os.Stderr, line) },
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.readLoop(out)
	return c
}

// readLoop consumes the server's output one line at a time until the stream
// closes. Well-formed responses land in the pending table; undecodable
// lines with diagnostic markers are forwarded; everything else is dropped.
// Stream closure stops the loop silently; callers observe it as timeouts.
func (c *Client) readLoop(out io.Reader) {
	defer close(c.done)

	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 64*1024), maxLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		resp, err := wire.DecodeResponse([]byte(line))
		if err != nil {
			if isDiagnostic(line) {
				c.diag(line)
			}
			continue
		}
		if resp != nil {
			c.pending.put(*resp.ID, resp)
		}
	}
}

func isDiagnostic(line string) bool {
	upper := strings.ToUpper(line)
	return strings.Contains(upper, "WARNING") || strings.Contains(upper, "ERROR")
}

// NextID returns a fresh request id. Ids are strictly increasing and never
// reused within a client's lifetime.
func (c *Client) NextID() int64 {
	return c.lastID.Add(1)
}

// Send encodes and writes a request, returning the id to wait on. Write
// failures are fatal to the session and surface immediately.
func (c *Client) Send(method string, params any) (int64, error) {
	id := c.NextID()
	req, err := wire.NewRequest(id, method, params)
	if err != nil {
		return 0, err
	}
	if err := c.writeLine(req); err != nil {
		return 0, fmt.Errorf("sending %s: %w", method, err)
	}
	return id, nil
}

// Notify encodes and writes a notification. No reply is ever expected.
func (c *Client) Notify(method string, params any) error {
	n, err := wire.NewNotification(method, params)
	if err != nil {
		return err
	}
	if err := c.writeLine(n); err != nil {
		return fmt.Errorf("notifying %s: %w", method, err)
	}
	return nil
}

// Request sends a request and blocks until its response arrives or timeout
// elapses. On timeout the pending entry is abandoned so a late reply does
// not linger in the table.
func (c *Client) Request(method string, params any, timeout time.Duration) (*wire.Response, error) {
	id, err := c.Send(method, params)
	if err != nil {
		return nil, err
	}
	resp, ok := c.pending.wait(id, timeout)
	if !ok {
		return nil, &TimeoutError{ID: id, Method: method, Timeout: timeout}
	}
	return resp, nil
}

func (c *Client) writeLine(v any) error {
	data, err := wire.Encode(v)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err = c.stdin.Write(data)
	return err
}

// Close terminates the server process. It never fails on an already-exited
// process and is safe to call more than once.
func (c *Client) Close() error {
	if c.state.Swap(stateClosed) == stateClosed {
		return nil
	}
	c.stdin.Close()
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Signal(syscall.SIGTERM)
		go c.cmd.Wait() //nolint:errcheck
	}
	return nil
}

// Done is closed once the reader has stopped (server exited or stream error).
func (c *Client) Done() <-chan struct{} { return c.done }
