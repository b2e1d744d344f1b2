package styles

import "github.com/charmbracelet/lipgloss"

// Color palette. Dark mode optimized, semantic colors.
var (
	// Primary semantic colors
	Accent  = lipgloss.Color("#7C3AED") // violet-500 - highlights, interactive
	Success = lipgloss.Color("#10B981") // emerald-500 - success, healthy stock
	Warning = lipgloss.Color("#F59E0B") // amber-500 - warnings, low stock
	Error   = lipgloss.Color("#EF4444") // red-500 - errors, depleted stock
	Info    = lipgloss.Color("#3B82F6") // blue-500 - info, references
	Muted   = lipgloss.Color("#6B7280") // gray-500 - secondary text

	// Text colors
	TextPrimary   = lipgloss.Color("#F9FAFB") // gray-50 - main text
	TextSecondary = lipgloss.Color("#9CA3AF") // gray-400 - descriptions

	// Background colors
	BgHighlight = lipgloss.Color("#1F2937") // gray-800 - selected items
	BgBorder    = lipgloss.Color("#374151") // gray-700 - borders
)

// Semantic color aliases for clarity
var (
	// Order status colors
	ColorPending   = Muted   // Pending orders
	ColorPlaced    = Info    // Placed orders
	ColorComplete  = Success // Completed orders
	ColorCancelled = Error   // Cancelled orders
	ColorOverdue   = Warning // Overdue orders

	// Stock level colors
	ColorInStock  = Success // Healthy stock
	ColorLowStock = Warning // Below minimum level
	ColorNoStock  = Error   // Depleted

	// Record display
	ColorReference = Info   // Order/part references
	ColorKey       = Accent // Primary keys, selected cells
)
