package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invtop/invtop/internal/prefs"
	"github.com/invtop/invtop/internal/util"
)

func TestListEnvelope(t *testing.T) {
	var gotQuery url.Values
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"count": 312,
			"results": []map[string]any{
				{"pk": 1, "name": "M3 bolt"},
				{"pk": 2, "name": "M3 nut"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "sekrit")
	res, err := c.List(context.Background(), EndpointParts, Query{
		Page:     3,
		PageSize: 25,
		Search:   "m3",
		Filters:  []prefs.Filter{{Name: "active", Value: "true"}},
		Params:   url.Values{"category": {"7"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 312, res.Count)
	require.Len(t, res.Results, 2)
	pk, ok := res.Results[0].PrimaryKey()
	assert.True(t, ok)
	assert.Equal(t, int64(1), pk)

	assert.Equal(t, "Token sekrit", gotAuth)
	assert.Equal(t, "3", gotQuery.Get("page"))
	assert.Equal(t, "25", gotQuery.Get("page_size"))
	assert.Equal(t, "m3", gotQuery.Get("search"))
	assert.Equal(t, "true", gotQuery.Get("active"))
	assert.Equal(t, "7", gotQuery.Get("category"))
}

func TestListBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"pk": 10}, {"pk": 11}, {"pk": 12},
		})
	}))
	defer srv.Close()

	res, err := New(srv.URL, "").List(context.Background(), EndpointStock, Query{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Len(t, res.Results, 3)
}

func TestUpdatePatchesDetailURL(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"pk": 42, "quantity": 50})
	}))
	defer srv.Close()

	rec, err := New(srv.URL, "tok").Update(context.Background(), EndpointPOLines, 42,
		map[string]any{"quantity": 50})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/order/po-line/42/", gotPath)
	assert.Equal(t, 50.0, gotBody["quantity"])
	assert.Equal(t, 50.0, rec.Float("quantity"))
}

func TestStatusErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "permission denied"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "bad").List(context.Background(), EndpointParts, Query{})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Equal(t, "permission denied", statusErr.Detail)
	assert.True(t, statusErr.Unauthorized())
	assert.False(t, statusErr.NotFound())
	assert.True(t, errors.Is(err, util.ErrUnauthorized))
}

func TestStatusErrorSentinels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "not found"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "tok").Retrieve(context.Background(), EndpointParts, 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrNotFound))
	assert.False(t, errors.Is(err, util.ErrUnauthorized))
}

func TestRoles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/roles/", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"roles": map[string][]string{
				"part":           {"view", "add", "change"},
				"purchase_order": {"view"},
			},
		})
	}))
	defer srv.Close()

	set, err := New(srv.URL, "tok").Roles(context.Background())
	require.NoError(t, err)
	assert.True(t, set.CanChange("part"))
	assert.False(t, set.CanChange("purchase_order"))
}

func TestDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, "tok").Delete(context.Background(), EndpointStock, 9))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/stock/9/", gotPath)
}
