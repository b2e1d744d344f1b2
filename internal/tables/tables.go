// Package tables holds the per-entity table configurations: which
// columns a table shows, which filters its list endpoint understands,
// and which row/table actions are offered. Definitions are pure
// configuration around the table state and renderer; capability checks
// and order status decide action visibility.
package tables

import (
	"context"
	"net/url"

	"github.com/invtop/invtop/internal/tablestate"
)

// Column describes one table column.
type Column struct {
	// Name is the record field the column reads, and the identifier
	// the hidden-column preference is keyed on.
	Name  string
	Title string
	// Switchable columns may be hidden by the user.
	Switchable bool
	// Render overrides the default field lookup. Nil means the raw
	// field value.
	Render func(tablestate.Record) string
}

// Filter describes a filter the table's list endpoint understands.
type Filter struct {
	Name        string
	Label       string
	Description string
	// Choices are the values the filter cycles through in the TUI.
	Choices []string
}

// RowAction is an operation on a single record.
type RowAction struct {
	Label string
	// Hidden suppresses the action for records it does not apply to.
	Hidden func(tablestate.Record) bool
	// Do performs the action. A non-nil returned record is upserted
	// into the table's cache in place of a full refetch.
	Do func(context.Context, tablestate.Record) (tablestate.Record, error)
}

// TableAction is a bulk operation over the current selection.
type TableAction struct {
	Label string
	Do    func(context.Context, []tablestate.Record) error
}

// Definition wires one entity's table together.
type Definition struct {
	// Name keys the persisted preferences and the identity token.
	Name     string
	Title    string
	Endpoint string
	// Params are caller-supplied extra query parameters, e.g. the
	// parent order of a line-item table.
	Params     url.Values
	Columns    []Column
	Filters    []Filter
	RowActions []RowAction
	Actions    []TableAction
	// Editable gates whether mutation actions are offered at all.
	Editable bool
	// Detail renders the extra lines shown under an expanded row.
	Detail func(tablestate.Record) []string
}

// CellValue renders one cell.
func (c Column) CellValue(r tablestate.Record) string {
	if c.Render != nil {
		return c.Render(r)
	}
	return r.String(c.Name)
}

// VisibleColumns returns the columns not hidden by the given
// predicate. Non-switchable columns are always visible.
func (d Definition) VisibleColumns(hidden func(string) bool) []Column {
	cols := make([]Column, 0, len(d.Columns))
	for _, c := range d.Columns {
		if c.Switchable && hidden(c.Name) {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

// VisibleRowActions returns the row actions that apply to a record.
func (d Definition) VisibleRowActions(r tablestate.Record) []RowAction {
	actions := make([]RowAction, 0, len(d.RowActions))
	for _, a := range d.RowActions {
		if a.Hidden != nil && a.Hidden(r) {
			continue
		}
		actions = append(actions, a)
	}
	return actions
}
