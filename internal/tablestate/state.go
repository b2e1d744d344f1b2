// Package tablestate owns the interaction state for one table
// instance: identity/refresh token, loading flag, persisted filters
// and column visibility, search term, pagination, row selection, row
// expansion, and the in-memory record cache with a targeted upsert.
//
// The state performs no I/O of its own beyond writing preferences
// through its prefs.Store. Fetching is the consumer's job: it watches
// the identity token, page, page size, search term and active filters,
// issues the list request, and pushes the response back in through
// SetRecords/SetRecordCount/SetLoading. A change of the identity token
// means "everything cached for this table is stale, re-fetch" — a
// fetch that completes under an older token must be discarded by the
// fetcher, not by this package.
package tablestate

import (
	"github.com/invtop/invtop/internal/prefs"
	"github.com/invtop/invtop/internal/util"
)

// DefaultPageSize is the page size a freshly mounted table starts with.
const DefaultPageSize = 25

// State is the single source of truth for one table's interaction
// state. It is not safe for concurrent use; all mutations are expected
// to happen on the UI event loop.
type State struct {
	name     string
	store    prefs.Store
	tableKey string
	loading  bool
	filters  []prefs.Filter
	hidden   []string
	search   string
	count    int
	page     int
	pageSize int
	records  []Record
	selected []Record
	expanded map[int64]struct{}
	editable bool
}

// New creates the state for a table. Filters and hidden columns are
// rehydrated from the store under the table's name; everything else
// starts at its default.
func New(name string, store prefs.Store) *State {
	s := &State{
		name:     name,
		store:    store,
		filters:  store.Filters(name),
		hidden:   store.HiddenColumns(name),
		page:     1,
		pageSize: DefaultPageSize,
		expanded: make(map[int64]struct{}),
	}
	s.Refresh()
	return s
}

// Name returns the table name the state was created with.
func (s *State) Name() string { return s.name }

// TableKey returns the current identity token. Consumers must treat
// any change of this value as "discard cached rendering, re-fetch".
func (s *State) TableKey() string { return s.tableKey }

// Refresh issues a new identity token. It is purely a signal; the
// state itself keeps its records until the fetcher replaces them.
func (s *State) Refresh() {
	for {
		key := s.name + "-" + util.ShortID(util.NewULID())
		if key != s.tableKey {
			s.tableKey = key
			return
		}
	}
}

// Loading reports whether a fetch is outstanding.
func (s *State) Loading() bool { return s.loading }

// SetLoading flags an outstanding fetch.
func (s *State) SetLoading(v bool) { s.loading = v }

// Editable reports whether mutation actions are offered for this table.
func (s *State) Editable() bool { return s.editable }

// SetEditable gates whether mutation actions are offered.
func (s *State) SetEditable(v bool) { s.editable = v }

// ActiveFilters returns the filter sequence currently applied.
func (s *State) ActiveFilters() []prefs.Filter { return s.filters }

// SetActiveFilters replaces the filter sequence and persists it
// immediately under the table name.
func (s *State) SetActiveFilters(filters []prefs.Filter) error {
	s.filters = filters
	return s.store.SetFilters(s.name, filters)
}

// ClearActiveFilters resets the filter sequence to empty and persists
// the empty set.
func (s *State) ClearActiveFilters() error {
	return s.SetActiveFilters(nil)
}

// HiddenColumns returns the set of column names hidden by the user.
func (s *State) HiddenColumns() []string { return s.hidden }

// SetHiddenColumns replaces the hidden-column set and persists it
// immediately under the table name.
func (s *State) SetHiddenColumns(columns []string) error {
	s.hidden = columns
	return s.store.SetHiddenColumns(s.name, columns)
}

// IsColumnHidden reports whether a column name is in the hidden set.
func (s *State) IsColumnHidden(name string) bool {
	for _, c := range s.hidden {
		if c == name {
			return true
		}
	}
	return false
}

// SearchTerm returns the current search term.
func (s *State) SearchTerm() string { return s.search }

// SetSearchTerm sets the search term. Triggering a refetch (and
// resetting the page) is the caller's responsibility.
func (s *State) SetSearchTerm(term string) { s.search = term }

// RecordCount returns the last known total from the backing data
// source. This is the server-side total, not len(Records()).
func (s *State) RecordCount() int { return s.count }

// SetRecordCount stores the total reported by the data source.
func (s *State) SetRecordCount(n int) { s.count = n }

// Page returns the current 1-based page number.
func (s *State) Page() int { return s.page }

// SetPage sets the page number. No cross-validation happens here;
// callers reset the page on filter/search/page-size changes if they
// want that behavior.
func (s *State) SetPage(page int) { s.page = page }

// PageSize returns the current page size.
func (s *State) PageSize() int { return s.pageSize }

// SetPageSize sets the page size. It does not reset the page.
func (s *State) SetPageSize(size int) { s.pageSize = size }

// Records returns the local record cache.
func (s *State) Records() []Record { return s.records }

// SetRecords replaces the local record cache wholesale.
func (s *State) SetRecords(records []Record) { s.records = records }

// UpdateRecord upserts a single record by its primary key: if a cached
// record has the same key it is replaced in place, preserving its
// position; otherwise the record is appended. This supports optimistic
// local updates after a single-record mutation without a full refetch.
// A record without a key is appended unconditionally.
func (s *State) UpdateRecord(record Record) {
	pk, ok := record.PrimaryKey()
	if ok {
		for i, existing := range s.records {
			if existingPK, epok := existing.PrimaryKey(); epok && existingPK == pk {
				s.records[i] = record
				return
			}
		}
	}
	s.records = append(s.records, record)
}

// SelectedRecords returns the selection snapshot, in selection order.
func (s *State) SelectedRecords() []Record { return s.selected }

// SetSelectedRecords replaces the selection. The selection holds full
// record objects, not just keys; consumers relying on key identity
// should use SelectedIDs.
func (s *State) SetSelectedRecords(records []Record) { s.selected = records }

// ClearSelectedRecords empties the selection.
func (s *State) ClearSelectedRecords() { s.selected = nil }

// HasSelectedRecords reports whether the selection is non-empty.
func (s *State) HasSelectedRecords() bool { return len(s.selected) > 0 }

// SelectedIDs returns the primary keys of the selected records, in
// selection order. Records without a key are skipped.
func (s *State) SelectedIDs() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for _, r := range s.selected {
		if pk, ok := r.PrimaryKey(); ok {
			ids = append(ids, pk)
		}
	}
	return ids
}

// IsSelected reports whether a primary key is in the selection.
func (s *State) IsSelected(pk int64) bool {
	for _, r := range s.selected {
		if id, ok := r.PrimaryKey(); ok && id == pk {
			return true
		}
	}
	return false
}

// SetExpandedRecords replaces the set of expanded rows with the keys
// of the given records. Expansion is tracked by primary key, so it is
// independent of both selection and the record cache.
func (s *State) SetExpandedRecords(records []Record) {
	expanded := make(map[int64]struct{}, len(records))
	for _, r := range records {
		if pk, ok := r.PrimaryKey(); ok {
			expanded[pk] = struct{}{}
		}
	}
	s.expanded = expanded
}

// ToggleRowExpanded flips the expansion of a single row.
func (s *State) ToggleRowExpanded(pk int64) {
	if _, ok := s.expanded[pk]; ok {
		delete(s.expanded, pk)
	} else {
		s.expanded[pk] = struct{}{}
	}
}

// IsRowExpanded reports whether the row with the given primary key is
// expanded.
func (s *State) IsRowExpanded(pk int64) bool {
	_, ok := s.expanded[pk]
	return ok
}
