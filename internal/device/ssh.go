package device

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// Session is the surface the tool handlers need from a device connection.
// It is an interface so handlers can be tested against a fake.
type Session interface {
	Run(cmd string) (string, error)
	ConfigSet(cmds []string) (string, error)
	Close() error
}

// DialConfig carries everything needed to reach one device.
type DialConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// Secret is the enable password, tried only when the device asks.
	Secret  string
	Timeout time.Duration
}

var (
	promptRe   = regexp.MustCompile(`(?m)[\w.\-/:()]*[>#]\s*$`)
	execRe     = regexp.MustCompile(`(?m)[\w.\-/:()]*#\s*$`)
	passwordRe = regexp.MustCompile(`(?i)password:?\s*$`)
)

// Shell is an interactive exec session over SSH, in the style of a screen
// terminal: commands are written to a pty and output is consumed until the
// device prompt reappears.
type Shell struct {
	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser
	chunks  chan []byte
	buf     bytes.Buffer
	timeout time.Duration
}

// Dial connects, starts a shell, disables paging, and brings the session to
// privileged exec mode.
func Dial(cfg DialConfig) (*Shell, error) {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 8 * time.Second
	}

	sshCfg := &ssh.ClientConfig{
		User: cfg.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(cfg.Password),
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range questions {
					answers[i] = cfg.Password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // lab inventory, no host key store
		Timeout:         cfg.Timeout,
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	client, err := ssh.Dial("tcp", addr, sshCfg)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("opening session on %s: %w", addr, err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := session.RequestPty("vt100", 0, 200, modes); err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("requesting pty on %s: %w", addr, err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, err
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, err
	}
	if err := session.Shell(); err != nil {
		session.Close()
		client.Close()
		return nil, fmt.Errorf("starting shell on %s: %w", addr, err)
	}

	sh := &Shell{
		client:  client,
		session: session,
		stdin:   stdin,
		chunks:  make(chan []byte, 16),
		timeout: cfg.Timeout,
	}
	go sh.pump(stdout)

	if _, err := sh.readUntil(promptRe); err != nil {
		sh.Close()
		return nil, fmt.Errorf("waiting for prompt on %s: %w", addr, err)
	}
	if err := sh.enable(cfg.Secret); err != nil {
		sh.Close()
		return nil, fmt.Errorf("entering privileged mode on %s: %w", addr, err)
	}
	if _, err := sh.exec("terminal length 0"); err != nil {
		sh.Close()
		return nil, err
	}
	return sh, nil
}

func (s *Shell) pump(r io.Reader) {
	tmp := make([]byte, 4096)
	for {
		n, err := r.Read(tmp)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, tmp[:n])
			s.chunks <- chunk
		}
		if err != nil {
			close(s.chunks)
			return
		}
	}
}

// readUntil accumulates output until the pattern matches the buffer tail or
// the session deadline passes. It returns and drains the accumulated text.
func (s *Shell) readUntil(re *regexp.Regexp) (string, error) {
	deadline := time.NewTimer(s.timeout)
	defer deadline.Stop()
	for {
		if re.Match(s.buf.Bytes()) {
			out := s.buf.String()
			s.buf.Reset()
			return out, nil
		}
		select {
		case chunk, ok := <-s.chunks:
			if !ok {
				return s.buf.String(), fmt.Errorf("session closed by device")
			}
			s.buf.Write(chunk)
		case <-deadline.C:
			return s.buf.String(), fmt.Errorf("timed out waiting for device prompt")
		}
	}
}

// enable reaches privileged exec in two explicit steps: plain enable first,
// then the secret only if the device answers with a password prompt.
func (s *Shell) enable(secret string) error {
	if _, err := io.WriteString(s.stdin, "enable\n"); err != nil {
		return err
	}
	out, err := s.readUntil(regexp.MustCompile(`(?m)(#\s*$)|((?i)password:?\s*$)`))
	if err != nil {
		return err
	}
	if execRe.MatchString(out) {
		return nil
	}
	if !passwordRe.MatchString(out) {
		return fmt.Errorf("unexpected enable response: %q", lastLine(out))
	}
	if secret == "" {
		return fmt.Errorf("device requires an enable secret and none is configured")
	}
	if _, err := io.WriteString(s.stdin, secret+"\n"); err != nil {
		return err
	}
	out, err = s.readUntil(promptRe)
	if err != nil {
		return err
	}
	if !execRe.MatchString(out) {
		return fmt.Errorf("enable secret rejected")
	}
	return nil
}

func (s *Shell) exec(cmd string) (string, error) {
	if _, err := io.WriteString(s.stdin, cmd+"\n"); err != nil {
		return "", fmt.Errorf("writing %q: %w", cmd, err)
	}
	out, err := s.readUntil(promptRe)
	if err != nil {
		return out, fmt.Errorf("running %q: %w", cmd, err)
	}
	return stripEcho(out, cmd), nil
}

// Run executes one exec-mode command and returns its output with the echoed
// command and trailing prompt removed.
func (s *Shell) Run(cmd string) (string, error) {
	return s.exec(cmd)
}

// ConfigSet enters configuration mode, applies cmds in order, and exits,
// returning the combined transcript.
func (s *Shell) ConfigSet(cmds []string) (string, error) {
	var transcript strings.Builder
	out, err := s.exec("configure terminal")
	if err != nil {
		return out, err
	}
	transcript.WriteString(out)
	for _, cmd := range cmds {
		out, err := s.exec(cmd)
		if err != nil {
			return transcript.String(), err
		}
		transcript.WriteString(out)
	}
	out, err = s.exec("end")
	transcript.WriteString(out)
	return transcript.String(), err
}

// Close tears the session down. Safe on an already-dead connection.
func (s *Shell) Close() error {
	if s.session != nil {
		s.session.Close()
	}
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func stripEcho(out, cmd string) string {
	lines := strings.Split(out, "\n")
	var kept []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if i == 0 && trimmed == cmd {
			continue
		}
		if i == len(lines)-1 && promptRe.MatchString(line) {
			continue
		}
		kept = append(kept, strings.TrimRight(line, "\r"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
