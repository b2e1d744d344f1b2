package styles

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Symbols - Unicode with ASCII fallbacks
const (
	SymbolSuccess  = "✓"
	SymbolError    = "✗"
	SymbolWarning  = "⚠"
	SymbolInfo     = "●"
	SymbolSelected = "●"
	SymbolExpanded = "▼"
	SymbolArrow    = "→"
)

var noColorForced bool

// SetNoColor forces colors off regardless of environment.
func SetNoColor(v bool) {
	noColorForced = v
}

// NoColor checks if colors should be disabled
func NoColor() bool {
	return noColorForced || os.Getenv("NO_COLOR") != "" || os.Getenv("INVTOP_NO_COLOR") != ""
}

// IsAccessible checks if accessibility mode is enabled
// When enabled: no animations, no spinner, simplified output
func IsAccessible() bool {
	return os.Getenv("INVTOP_ACCESSIBLE") == "1" || os.Getenv("INVTOP_ACCESSIBLE") == "true"
}

// Base text styles
var (
	Bold = lipgloss.NewStyle().Bold(true)
	Dim  = lipgloss.NewStyle().Foreground(Muted)
)

// Semantic styles - use these instead of raw colors
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	ReferenceStyle = lipgloss.NewStyle().Foreground(ColorReference)

	// Interactive TUI
	SelectedStyle = lipgloss.NewStyle().
			Background(BgHighlight).
			Foreground(TextPrimary)

	// Help bar
	HelpKey   = lipgloss.NewStyle().Foreground(Accent)
	HelpValue = lipgloss.NewStyle().Foreground(Muted)
)

// render applies a style if colors are enabled
func render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// Reference formats an order or part reference
func Reference(ref string) string {
	return render(ReferenceStyle, ref)
}

// OrderStatus colors an order status label by its meaning
func OrderStatus(status string) string {
	switch strings.ToLower(status) {
	case "pending":
		return render(MutedStyle, status)
	case "placed", "in progress", "shipped":
		return render(InfoStyle, status)
	case "complete":
		return render(SuccessStyle, status)
	case "cancelled", "lost", "returned":
		return render(ErrorStyle, status)
	case "on hold", "overdue":
		return render(WarningStyle, status)
	default:
		return status
	}
}

// StockLevel colors a stock quantity label: depleted red, below the
// minimum amber, otherwise green.
func StockLevel(label string, quantity, minimum float64) string {
	switch {
	case quantity <= 0:
		return render(ErrorStyle, label)
	case minimum > 0 && quantity < minimum:
		return render(WarningStyle, label)
	default:
		return render(SuccessStyle, label)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Message formatters - structured output
// ═══════════════════════════════════════════════════════════════════════════

// SuccessMsg formats a success message with checkmark
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message
func ErrorMsg(title string) string {
	return render(ErrorStyle, "Error: "+title)
}

// WarningMsg formats a warning message
func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", render(WarningStyle, symbol), msg)
}

// InfoMsg formats an info message
func InfoMsg(msg string) string {
	return render(InfoStyle, msg)
}

// MutedMsg formats muted/secondary text
func MutedMsg(msg string) string {
	return render(MutedStyle, msg)
}

// SectionHeader formats a section header
func SectionHeader(title string) string {
	return render(Bold, title)
}

// HelpLine formats a help line (key description)
func HelpLine(key, description string) string {
	return fmt.Sprintf("  %s %s", render(HelpKey, key), render(MutedStyle, description))
}

// Simple string coloring
func Green(s string) string  { return render(SuccessStyle, s) }
func Red(s string) string    { return render(ErrorStyle, s) }
func Yellow(s string) string { return render(WarningStyle, s) }
func Cyan(s string) string   { return render(InfoStyle, s) }
func Mute(s string) string   { return render(MutedStyle, s) }

// Printf-style color functions
func Greenf(format string, a ...any) string { return Green(fmt.Sprintf(format, a...)) }
func Redf(format string, a ...any) string   { return Red(fmt.Sprintf(format, a...)) }
func Mutef(format string, a ...any) string  { return Mute(fmt.Sprintf(format, a...)) }
func Boldf(format string, a ...any) string  { return Bold.Render(fmt.Sprintf(format, a...)) }
