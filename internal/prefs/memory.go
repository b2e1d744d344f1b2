package prefs

// MemoryStore is an in-process Store. It backs tests and one-shot
// (non-interactive) table renders where persisting preferences would
// be noise.
type MemoryStore struct {
	filters map[string][]Filter
	columns map[string][]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		filters: make(map[string][]Filter),
		columns: make(map[string][]string),
	}
}

func (s *MemoryStore) Filters(table string) []Filter {
	return s.filters[filtersKey(table)]
}

func (s *MemoryStore) SetFilters(table string, filters []Filter) error {
	s.filters[filtersKey(table)] = filters
	return nil
}

func (s *MemoryStore) HiddenColumns(table string) []string {
	return s.columns[hiddenKey(table)]
}

func (s *MemoryStore) SetHiddenColumns(table string, columns []string) error {
	s.columns[hiddenKey(table)] = columns
	return nil
}
