package tablestate

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invtop/invtop/internal/prefs"
)

func rec(pk int64, fields ...any) Record {
	r := Record{"pk": float64(pk)}
	for i := 0; i+1 < len(fields); i += 2 {
		r[fields[i].(string)] = fields[i+1]
	}
	return r
}

func TestFreshMount(t *testing.T) {
	s := New("parts", prefs.NewMemoryStore())

	assert.Regexp(t, regexp.MustCompile(`^parts-[0-9a-z]{7}$`), s.TableKey())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 25, s.PageSize())
	assert.Empty(t, s.Records())
	assert.Zero(t, s.RecordCount())
	assert.Empty(t, s.ActiveFilters())
	assert.Empty(t, s.HiddenColumns())
	assert.Empty(t, s.SearchTerm())
	assert.False(t, s.Loading())
	assert.False(t, s.Editable())
}

func TestRefreshAlwaysChangesKey(t *testing.T) {
	s := New("parts", prefs.NewMemoryStore())

	seen := map[string]bool{s.TableKey(): true}
	for i := 0; i < 200; i++ {
		prev := s.TableKey()
		s.Refresh()
		assert.NotEqual(t, prev, s.TableKey())
		assert.False(t, seen[s.TableKey()], "refresh reissued key %s", s.TableKey())
		seen[s.TableKey()] = true
	}
}

func TestUpdateRecordUpsert(t *testing.T) {
	s := New("parts", prefs.NewMemoryStore())
	s.SetRecords([]Record{rec(1, "v", "a"), rec(2, "v", "b")})

	// Existing key: replaced in place, position preserved.
	s.UpdateRecord(rec(1, "v", "c"))
	require.Len(t, s.Records(), 2)
	assert.Equal(t, "c", s.Records()[0].String("v"))
	assert.Equal(t, "b", s.Records()[1].String("v"))

	// New key: appended.
	s.UpdateRecord(rec(3, "v", "d"))
	require.Len(t, s.Records(), 3)
	assert.Equal(t, "d", s.Records()[2].String("v"))

	// One entry per key, no matter how often the same key is written.
	for i := 0; i < 5; i++ {
		s.UpdateRecord(rec(2, "v", "x"))
	}
	require.Len(t, s.Records(), 3)
	assert.Equal(t, "x", s.Records()[1].String("v"))
}

func TestUpdateRecordFallsBackToID(t *testing.T) {
	s := New("stock", prefs.NewMemoryStore())
	s.SetRecords([]Record{{"id": float64(7), "v": "a"}})

	s.UpdateRecord(Record{"id": float64(7), "v": "b"})
	require.Len(t, s.Records(), 1)
	assert.Equal(t, "b", s.Records()[0].String("v"))

	// A record with no key at all is appended.
	s.UpdateRecord(Record{"v": "keyless"})
	assert.Len(t, s.Records(), 2)
}

func TestSelection(t *testing.T) {
	s := New("parts", prefs.NewMemoryStore())

	a, b := rec(1, "name", "bolt"), rec(2, "name", "nut")
	s.SetSelectedRecords([]Record{a, b})
	assert.True(t, s.HasSelectedRecords())
	assert.Equal(t, []int64{1, 2}, s.SelectedIDs())
	assert.True(t, s.IsSelected(1))
	assert.False(t, s.IsSelected(3))

	s.SetSelectedRecords([]Record{})
	assert.False(t, s.HasSelectedRecords())
	assert.Empty(t, s.SelectedIDs())

	s.SetSelectedRecords([]Record{a})
	s.ClearSelectedRecords()
	assert.False(t, s.HasSelectedRecords())
}

func TestExpansionByPrimaryKey(t *testing.T) {
	s := New("parts", prefs.NewMemoryStore())

	s.SetExpandedRecords([]Record{rec(1), rec(3)})
	assert.True(t, s.IsRowExpanded(1))
	assert.False(t, s.IsRowExpanded(2))
	assert.True(t, s.IsRowExpanded(3))

	// Replacement, not accumulation.
	s.SetExpandedRecords([]Record{rec(2)})
	assert.False(t, s.IsRowExpanded(1))
	assert.True(t, s.IsRowExpanded(2))

	s.ToggleRowExpanded(2)
	assert.False(t, s.IsRowExpanded(2))
	s.ToggleRowExpanded(5)
	assert.True(t, s.IsRowExpanded(5))

	// Expansion is independent of selection.
	assert.False(t, s.HasSelectedRecords())
}

func TestClearActiveFilters(t *testing.T) {
	s := New("parts", prefs.NewMemoryStore())

	require.NoError(t, s.SetActiveFilters([]prefs.Filter{
		{Name: "active", Value: "true"},
		{Name: "assembly", Value: "false"},
	}))
	assert.Len(t, s.ActiveFilters(), 2)

	require.NoError(t, s.ClearActiveFilters())
	assert.Empty(t, s.ActiveFilters())
}

func TestFiltersAndColumnsSurviveRemount(t *testing.T) {
	store := prefs.NewMemoryStore()

	s := New("parts", store)
	require.NoError(t, s.SetActiveFilters([]prefs.Filter{{Name: "active", Value: "true"}}))
	require.NoError(t, s.SetHiddenColumns([]string{"units", "notes"}))

	// Same table name: rehydrated.
	s2 := New("parts", store)
	assert.Equal(t, []prefs.Filter{{Name: "active", Value: "true"}}, s2.ActiveFilters())
	assert.Equal(t, []string{"units", "notes"}, s2.HiddenColumns())
	assert.True(t, s2.IsColumnHidden("units"))
	assert.False(t, s2.IsColumnHidden("name"))

	// Ephemeral state does not survive: fresh token, defaults.
	assert.NotEqual(t, s.TableKey(), s2.TableKey())
	assert.Equal(t, 1, s2.Page())
	assert.Empty(t, s2.Records())

	// Unseen table name: defaults.
	s3 := New("stock", store)
	assert.Empty(t, s3.ActiveFilters())
	assert.Empty(t, s3.HiddenColumns())
}

func TestRemountThroughFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.toml")

	store, err := prefs.OpenFile(path)
	require.NoError(t, err)
	s := New("po-lines-12", store)
	require.NoError(t, s.SetActiveFilters([]prefs.Filter{{Name: "received", Value: "false"}}))
	require.NoError(t, s.SetHiddenColumns([]string{"destination"}))

	// Reopen the file as a new process would.
	store2, err := prefs.OpenFile(path)
	require.NoError(t, err)
	s2 := New("po-lines-12", store2)
	assert.Equal(t, []prefs.Filter{{Name: "received", Value: "false"}}, s2.ActiveFilters())
	assert.Equal(t, []string{"destination"}, s2.HiddenColumns())
}

func TestSettersAreIndependent(t *testing.T) {
	s := New("parts", prefs.NewMemoryStore())

	s.SetPage(4)
	s.SetPageSize(100)
	// Changing the page size deliberately does not reset the page.
	assert.Equal(t, 4, s.Page())
	assert.Equal(t, 100, s.PageSize())

	s.SetSearchTerm("m3 bolt")
	assert.Equal(t, "m3 bolt", s.SearchTerm())
	assert.Equal(t, 4, s.Page())

	s.SetRecordCount(1234)
	assert.Equal(t, 1234, s.RecordCount())
	assert.Empty(t, s.Records(), "record count reflects the source total, not the cache")

	s.SetLoading(true)
	assert.True(t, s.Loading())
	s.SetEditable(true)
	assert.True(t, s.Editable())
}
