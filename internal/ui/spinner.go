package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/invtop/invtop/internal/ui/styles"
)

// Spinner provides a simple animated spinner for long operations.
// All output goes to stderr so piped stdout stays clean.
type Spinner struct {
	message string
	done    chan struct{}
}

// NewSpinner creates a new spinner with the given message
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		done:    make(chan struct{}),
	}
}

// Start begins the spinner animation in the background
func (s *Spinner) Start() {
	// Accessible mode or non-TTY: just print static message
	if styles.IsAccessible() || !term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintln(os.Stderr, s.message+"...")
		return
	}

	go func() {
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		style := lipgloss.NewStyle().Foreground(styles.Accent)
		i := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				fmt.Fprint(os.Stderr, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(os.Stderr, "\r%s %s", style.Render(frames[i%len(frames)]), s.message)
				i++
			}
		}
	}()
}

// Stop ends the spinner animation and clears the line
func (s *Spinner) Stop() {
	if styles.IsAccessible() || !term.IsTerminal(int(os.Stderr.Fd())) {
		return
	}
	close(s.done)
	// Give the goroutine a moment to clear the line
	time.Sleep(10 * time.Millisecond)
}
