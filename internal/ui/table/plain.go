package table

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/invtop/invtop/internal/tables"
	"github.com/invtop/invtop/internal/tablestate"
)

// PrintJSON outputs records as a JSON array.
func PrintJSON(records []tablestate.Record) error {
	if records == nil {
		records = []tablestate.Record{}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// PrintPlain prints a properly aligned table for non-TTY output.
// Shows full cell content without truncation; hidden-column
// preferences still apply.
func PrintPlain(def tables.Definition, st *tablestate.State) {
	cols := def.VisibleColumns(st.IsColumnHidden)
	if len(cols) == 0 {
		fmt.Println("(no columns)")
		return
	}

	records := st.Records()
	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = c.CellValue(r)
		}
		rows[i] = row
	}

	// Column widths from actual content (no truncation)
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c.Title)
	}
	for _, row := range rows {
		for i, val := range row {
			if w := visibleWidth(val); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for i, c := range cols {
		if i > 0 {
			fmt.Print("  ")
		}
		fmt.Print(padANSI(c.Title, widths[i]))
	}
	fmt.Println()

	for i, w := range widths {
		if i > 0 {
			fmt.Print("  ")
		}
		fmt.Print(strings.Repeat("─", w))
	}
	fmt.Println()

	for _, row := range rows {
		for i, val := range row {
			if i > 0 {
				fmt.Print("  ")
			}
			fmt.Print(padANSI(val, widths[i]))
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Printf("(%d of %d records, page %d)\n", len(records), st.RecordCount(), st.Page())
}

// padANSI pads a string with spaces to the desired visible width,
// ignoring ANSI escape sequences when measuring.
func padANSI(s string, width int) string {
	w := visibleWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// visibleWidth counts the printable characters of a string, skipping
// ANSI escape sequences.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		if r == '\x1b' {
			inEscape = true
			continue
		}
		width++
	}
	return width
}

// Truncate shortens a string to fit width, adding "..." if needed.
func Truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width > 3 {
		return s[:width-3] + "..."
	}
	return s[:width]
}

// PadOrTruncate pads or truncates to exact width (for the TUI table).
func PadOrTruncate(s string, width int) string {
	if len(s) > width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-len(s))
}

// stripANSI removes escape sequences so a line can be restyled as a
// whole (cursor highlight).
func stripANSI(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inEscape := false
	for _, r := range s {
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		if r == '\x1b' {
			inEscape = true
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// applyViewport slices a styled line to [startX, startX+width) visible
// columns, re-applying any SGR styles that were active at the viewport
// start and padding the result to exactly width characters.
func applyViewport(s string, startX, width int) string {
	if width <= 0 {
		return ""
	}
	if startX < 0 {
		startX = 0
	}

	var result strings.Builder
	result.Grow(width + 64)

	visualPos := 0
	outputChars := 0
	stylesApplied := false
	inEscape := false
	escapeSeq := strings.Builder{}

	var activeStyles []string

	runes := []rune(s)
	i := 0

	for i < len(runes) && outputChars < width {
		r := runes[i]

		if r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[' {
			inEscape = true
			escapeSeq.Reset()
			escapeSeq.WriteRune(r)
			i++
			continue
		}

		if inEscape {
			escapeSeq.WriteRune(r)
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
				seq := escapeSeq.String()

				if r == 'm' {
					if seq == "\x1b[0m" || seq == "\x1b[m" {
						activeStyles = nil
					} else {
						activeStyles = append(activeStyles, seq)
					}
				}

				if visualPos >= startX {
					result.WriteString(seq)
				}
			}
			i++
			continue
		}

		if visualPos >= startX {
			if !stylesApplied && len(activeStyles) > 0 {
				for _, style := range activeStyles {
					result.WriteString(style)
				}
				stylesApplied = true
			}
			result.WriteRune(r)
			outputChars++
		}

		visualPos++
		i++
	}

	if len(activeStyles) > 0 && outputChars > 0 {
		result.WriteString("\x1b[0m")
	}

	if outputChars < width {
		result.WriteString(strings.Repeat(" ", width-outputChars))
	}

	return result.String()
}
