package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.toml")

	s, err := OpenFile(path)
	require.NoError(t, err)

	// Unseen table reads back empty.
	assert.Empty(t, s.Filters("parts"))
	assert.Empty(t, s.HiddenColumns("parts"))

	filters := []Filter{{Name: "active", Value: "true"}, {Name: "assembly", Value: "false"}}
	require.NoError(t, s.SetFilters("parts", filters))
	require.NoError(t, s.SetHiddenColumns("parts", []string{"units"}))

	// Reopen and read back.
	s2, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, filters, s2.Filters("parts"))
	assert.Equal(t, []string{"units"}, s2.HiddenColumns("parts"))

	// Other tables are unaffected.
	assert.Empty(t, s2.Filters("stock"))
}

func TestFileStoreKeysAreNamespaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.toml")

	s, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, s.SetFilters("parts", []Filter{{Name: "active", Value: "true"}}))
	require.NoError(t, s.SetHiddenColumns("parts", []string{"units"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "invtop-table-filters-parts")
	assert.Contains(t, string(raw), "invtop-hidden-table-columns-parts")
}

func TestFileStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.toml")

	s, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, s.SetFilters("stock", []Filter{{Name: "in_stock", Value: "true"}}))
	require.NoError(t, s.SetFilters("stock", nil))

	s2, err := OpenFile(path)
	require.NoError(t, err)
	assert.Empty(t, s2.Filters("stock"))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	assert.Empty(t, s.Filters("parts"))
	require.NoError(t, s.SetFilters("parts", []Filter{{Name: "low_stock", Value: "true"}}))
	assert.Equal(t, []Filter{{Name: "low_stock", Value: "true"}}, s.Filters("parts"))

	require.NoError(t, s.SetHiddenColumns("parts", []string{"IPN"}))
	assert.Equal(t, []string{"IPN"}, s.HiddenColumns("parts"))
	assert.Empty(t, s.HiddenColumns("stock"))
}
