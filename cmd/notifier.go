package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/wayfarer/internal/services"
)

// cliNotifier renders pipeline and tracker events as terminal output: toasts
// become prefixed lines, the busy indicator becomes a pair of status lines,
// and redirect-to-login becomes a hint to re-authenticate.
type cliNotifier struct {
	mu     sync.Mutex
	output io.Writer
	logger *log.Logger
	quiet  bool
}

func newCLINotifier(output io.Writer, logger *log.Logger) *cliNotifier {
	return &cliNotifier{output: output, logger: logger}
}

// SetQuiet suppresses event rendering. The TUI flips this on so bubbletea
// owns the terminal.
func (n *cliNotifier) SetQuiet(quiet bool) {
	n.mu.Lock()
	n.quiet = quiet
	n.mu.Unlock()
}

func (n *cliNotifier) Notify(level services.Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.quiet {
		n.logger.Debug("notification", "level", level, "message", message)
		return
	}

	switch level {
	case services.LevelSuccess:
		fmt.Fprintf(n.output, "✓ %s\n", message)
	case services.LevelWarning:
		fmt.Fprintf(n.output, "! %s\n", message)
	default:
		fmt.Fprintf(n.output, "✗ %s\n", message)
	}
}

func (n *cliNotifier) BusyChanged(active bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.quiet {
		return
	}
	if active {
		fmt.Fprintln(n.output, "⋯ working...")
	}
}

func (n *cliNotifier) RedirectToLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.logger.Warn("session expired")
	if !n.quiet {
		fmt.Fprintln(n.output, "Session expired. Run 'wayfarer auth login' to sign in again.")
	}
}
