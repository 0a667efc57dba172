package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/wolfeidau/coursekit/internal/client"
	"github.com/wolfeidau/coursekit/internal/tui"
)

type Globals struct {
	Debug      bool
	Version    string
	APIURL     string
	SessionDir string
	Timeout    time.Duration

	SessionRedisURL string
	SessionName     string

	// Stdout defaults to os.Stdout. Secrets are read from Stdin when set and
	// prompted for on the terminal otherwise.
	Stdout io.Writer
	Stdin  io.Reader
}

func (g *Globals) clients() (*client.Clients, error) {
	config := client.DefaultConfig()
	if g.APIURL != "" {
		config.ServerURL = g.APIURL
	}
	if g.Timeout > 0 {
		config.Timeout = g.Timeout
	}
	config.SessionDir = g.SessionDir
	config.SessionRedisURL = g.SessionRedisURL
	config.SessionName = g.SessionName
	config.Debug = g.Debug

	clients, err := client.NewClients(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clients: %w", err)
	}
	return clients, nil
}

func (g *Globals) out() io.Writer {
	if g.Stdout != nil {
		return g.Stdout
	}
	return os.Stdout
}

// readSecret returns value when set. Otherwise it reads a line from Stdin,
// or prompts on the terminal when Stdin is nil.
func (g *Globals) readSecret(title, value string) (string, error) {
	if value != "" {
		return value, nil
	}

	if g.Stdin == nil {
		return tui.PromptForSecret(title)
	}

	line, err := bufio.NewReader(g.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(title), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
