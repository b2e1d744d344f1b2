package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout invtop
var (
	ErrNotConfigured = errors.New("no server configured")
	ErrUnauthorized  = errors.New("server rejected the API token")
	ErrNotFound      = errors.New("record not found")
	ErrOrderNotFound = errors.New("order not found")
)

// InvtopError is a structured error with context and suggestions
type InvtopError struct {
	Title       string   // Short error title
	Message     string   // Detailed message
	Context     string   // What was being attempted
	Causes      []string // Possible causes
	Suggestions []string // Actionable suggestions with commands
	Err         error    // Wrapped error
}

func (e *InvtopError) Error() string {
	return e.Title
}

func (e *InvtopError) Unwrap() error {
	return e.Err
}

// Format returns a nicely formatted error message
func (e *InvtopError) Format() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Title))

	if e.Message != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Message))
	}
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n  %s\n", e.Context))
	}

	if len(e.Causes) > 0 {
		sb.WriteString("\n  Possible causes:\n")
		for _, cause := range e.Causes {
			sb.WriteString(fmt.Sprintf("    • %s\n", cause))
		}
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n  Try:\n")
		for _, sug := range e.Suggestions {
			sb.WriteString(fmt.Sprintf("    $ %s\n", sug))
		}
	}

	return sb.String()
}

// NewError creates a new InvtopError
func NewError(title string) *InvtopError {
	return &InvtopError{Title: title}
}

// WithMessage adds a detailed message
func (e *InvtopError) WithMessage(msg string) *InvtopError {
	e.Message = msg
	return e
}

// WithContext adds context about what was being attempted
func (e *InvtopError) WithContext(ctx string) *InvtopError {
	e.Context = ctx
	return e
}

// WithCauses adds possible causes
func (e *InvtopError) WithCauses(causes ...string) *InvtopError {
	e.Causes = append(e.Causes, causes...)
	return e
}

// WithSuggestion adds an actionable suggestion
func (e *InvtopError) WithSuggestion(sug string) *InvtopError {
	e.Suggestions = append(e.Suggestions, sug)
	return e
}

// WithSuggestions adds multiple suggestions
func (e *InvtopError) WithSuggestions(sugs ...string) *InvtopError {
	e.Suggestions = append(e.Suggestions, sugs...)
	return e
}

// Wrap wraps an underlying error
func (e *InvtopError) Wrap(err error) *InvtopError {
	e.Err = err
	return e
}

// ══════════════════════════════════════════════════════════════════════════
// Pre-built error constructors for common cases
// ══════════════════════════════════════════════════════════════════════════

// NotConfiguredError returns a structured error for a missing server config
func NotConfiguredError() *InvtopError {
	return NewError("No inventory server configured").
		WithMessage("invtop needs a server URL and an API token to talk to").
		WithSuggestions(
			"invtop config server.url https://inventory.example.com",
			"invtop config server.token <token>",
		).
		Wrap(ErrNotConfigured)
}

// ServerConnectionError returns a structured error for unreachable servers
func ServerConnectionError(url string, err error) *InvtopError {
	return NewError("Cannot reach inventory server").
		WithContext(url).
		WithCauses(
			"The server is down or the URL is wrong",
			"Network connectivity issues",
			"A proxy or firewall is blocking the request",
		).
		WithSuggestions(
			"invtop doctor          # Run connectivity diagnostics",
			"invtop config server.url",
		).
		Wrap(err)
}

// UnauthorizedError returns a structured error for rejected credentials
func UnauthorizedError() *InvtopError {
	return NewError("Server rejected the API token").
		WithCauses(
			"The token has expired or been revoked",
			"The token belongs to a different server",
		).
		WithSuggestions(
			"invtop config server.token <token>",
			"invtop doctor          # Check token and role assignment",
		).
		Wrap(ErrUnauthorized)
}

// PermissionError returns a structured error for missing role permissions
func PermissionError(action, rule string) *InvtopError {
	return NewError(fmt.Sprintf("Not permitted to %s %s records", action, rule)).
		WithMessage("Your account is missing the required role permission").
		WithSuggestions(
			"invtop doctor          # Show your role assignments",
		)
}

// OrderNotFoundError returns a structured error for an unknown order reference
func OrderNotFoundError(ref string) *InvtopError {
	return NewError(fmt.Sprintf("Order '%s' not found", ref)).
		WithCauses(
			"The order reference is misspelled",
			"The order exists on a different server",
		).
		WithSuggestions(
			"invtop po list         # List purchase orders",
		).
		Wrap(ErrOrderNotFound)
}
