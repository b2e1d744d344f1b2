package prefs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileStore keeps table preferences in a single TOML file. The whole
// file is held in memory and rewritten on every set, which is fine at
// the scale of per-table UI preferences.
type FileStore struct {
	path string
	data fileData
}

type fileData struct {
	// Both maps are keyed by the full namespaced key, not the bare
	// table name.
	Filters map[string][]Filter `toml:"filters"`
	Columns map[string][]string `toml:"columns"`
}

// OpenFile loads the preference file at path, creating an empty store
// if the file does not exist yet.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		data: fileData{
			Filters: make(map[string][]Filter),
			Columns: make(map[string][]string),
		},
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &s.data); err != nil {
			return nil, err
		}
		if s.data.Filters == nil {
			s.data.Filters = make(map[string][]Filter)
		}
		if s.data.Columns == nil {
			s.data.Columns = make(map[string][]string)
		}
	}

	return s, nil
}

// Filters returns the persisted filters for a table, or nil if none
// were ever saved.
func (s *FileStore) Filters(table string) []Filter {
	return s.data.Filters[filtersKey(table)]
}

// SetFilters replaces the persisted filters for a table and writes the
// file.
func (s *FileStore) SetFilters(table string, filters []Filter) error {
	s.data.Filters[filtersKey(table)] = filters
	return s.save()
}

// HiddenColumns returns the persisted hidden-column set for a table.
func (s *FileStore) HiddenColumns(table string) []string {
	return s.data.Columns[hiddenKey(table)]
}

// SetHiddenColumns replaces the persisted hidden-column set for a
// table and writes the file.
func (s *FileStore) SetHiddenColumns(table string, columns []string) error {
	s.data.Columns[hiddenKey(table)] = columns
	return s.save()
}

func (s *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(s.data)
}
