// Package prefs persists per-table view preferences (active filters,
// hidden columns) across invtop sessions. Preferences are keyed by
// table name and namespaced so they cannot collide with other stored
// keys; a table name that was never written reads back as empty.
package prefs

// Filter is a single named filter applied to a table's list query.
type Filter struct {
	Name  string `toml:"name" json:"name"`
	Value string `toml:"value" json:"value"`
}

// Store is the persistence contract used by the table state. Reads are
// get-or-default; writes persist immediately, no explicit flush.
type Store interface {
	Filters(table string) []Filter
	SetFilters(table string, filters []Filter) error
	HiddenColumns(table string) []string
	SetHiddenColumns(table string, columns []string) error
}

// Storage key namespaces. Keys are strings rather than structured
// scopes, so the namespace prefix is what keeps table preferences
// apart from one another and from anything else in the file.
const (
	filtersNamespace = "invtop-table-filters-"
	hiddenNamespace  = "invtop-hidden-table-columns-"
)

func filtersKey(table string) string { return filtersNamespace + table }
func hiddenKey(table string) string  { return hiddenNamespace + table }
