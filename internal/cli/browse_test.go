package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invtop/invtop/internal/api"
	"github.com/invtop/invtop/internal/prefs"
	"github.com/invtop/invtop/internal/tables"
	"github.com/invtop/invtop/internal/util"
)

func TestParseFilters(t *testing.T) {
	def := tables.Definition{
		Name: "parts",
		Filters: []tables.Filter{
			{Name: "active", Choices: []string{"true", "false"}},
			{Name: "assembly", Choices: []string{"true", "false"}},
		},
	}

	filters, err := parseFilters(def, []string{"active=true", "assembly=false"})
	require.NoError(t, err)
	require.Len(t, filters, 2)
	assert.Equal(t, prefs.Filter{Name: "active", Value: "true"}, filters[0])

	_, err = parseFilters(def, []string{"bogus=1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter")
	assert.Contains(t, err.Error(), "active, assembly")

	_, err = parseFilters(def, []string{"active"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name=value")
}

func TestResolveOrderNumeric(t *testing.T) {
	pk, err := resolveOrder(context.Background(), api.New("http://unused", ""), "17")
	require.NoError(t, err)
	assert.Equal(t, int64(17), pk)
}

func TestResolveOrderByReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/order/po/", r.URL.Path)
		assert.Equal(t, "PO-0042", r.URL.Query().Get("search"))
		json.NewEncoder(w).Encode(map[string]any{
			"count": 2,
			"results": []map[string]any{
				{"pk": 5, "reference": "PO-00421"},
				{"pk": 9, "reference": "PO-0042"},
			},
		})
	}))
	defer srv.Close()

	pk, err := resolveOrder(context.Background(), api.New(srv.URL, "tok"), "PO-0042")
	require.NoError(t, err)
	assert.Equal(t, int64(9), pk)
}

func TestResolveOrderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"count": 0, "results": []map[string]any{}})
	}))
	defer srv.Close()

	_, err := resolveOrder(context.Background(), api.New(srv.URL, "tok"), "PO-9999")
	require.Error(t, err)

	var invErr *util.InvtopError
	require.True(t, errors.As(err, &invErr))
	assert.True(t, errors.Is(err, util.ErrOrderNotFound))
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", maskToken("abc"))
	assert.Equal(t, "********3def", maskToken("3456789p3def"))
	assert.Equal(t, "****--ab", maskToken("xxxx--ab"))
}
