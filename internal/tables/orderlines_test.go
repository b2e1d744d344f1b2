package tables

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invtop/invtop/internal/api"
	"github.com/invtop/invtop/internal/roles"
	"github.com/invtop/invtop/internal/tablestate"
)

func line(pk int64, quantity, received float64) tablestate.Record {
	return tablestate.Record{
		"pk":                      float64(pk),
		"quantity":                quantity,
		"received":                received,
		"purchase_price":          "1.50",
		"purchase_price_currency": "EUR",
		"part_detail": map[string]any{
			"name": "Hex bolt",
			"SKU":  "FAS-001",
		},
	}
}

func TestOrderLineColumns(t *testing.T) {
	def := PurchaseOrderLines(nil, roles.Set{}, 12)

	assert.Equal(t, "po-lines-12", def.Name)
	assert.Equal(t, "12", def.Params.Get("order"))

	r := line(1, 10, 4)
	byName := map[string]Column{}
	for _, c := range def.Columns {
		byName[c.Name] = c
	}

	assert.Equal(t, "Hex bolt", byName["part"].CellValue(r))
	assert.Equal(t, "FAS-001", byName["SKU"].CellValue(r))
	assert.Equal(t, "4 / 10", byName["received"].CellValue(r))
	assert.Equal(t, "1.50 EUR", byName["purchase_price"].CellValue(r))
	assert.Equal(t, "15.00 EUR", byName["total_price"].CellValue(r))
}

func TestOrderLineActionsGatedByRoles(t *testing.T) {
	// View-only: no mutation actions, table not editable.
	viewOnly := PurchaseOrderLines(nil, roles.Set{roles.RulePurchaseOrder: {roles.PermView}}, 12)
	assert.False(t, viewOnly.Editable)
	assert.Empty(t, viewOnly.RowActions)
	assert.Empty(t, viewOnly.Actions)

	// Change permission: receive offered, delete not.
	change := PurchaseOrderLines(nil, roles.Set{roles.RulePurchaseOrder: {roles.PermView, roles.PermChange}}, 12)
	assert.True(t, change.Editable)
	require.Len(t, change.RowActions, 1)
	assert.Equal(t, "Receive remaining", change.RowActions[0].Label)
	require.Len(t, change.Actions, 1)

	// Receive is hidden for fully received lines.
	visible := change.VisibleRowActions(line(1, 10, 4))
	require.Len(t, visible, 1)
	assert.Empty(t, change.VisibleRowActions(line(2, 10, 10)))

	// Delete requires the delete permission.
	full := PurchaseOrderLines(nil, roles.Set{
		roles.RulePurchaseOrder: {roles.PermView, roles.PermChange, roles.PermDelete},
	}, 12)
	assert.Len(t, full.RowActions, 2)
}

func TestReceiveRemaining(t *testing.T) {
	var receivedPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/order/po/12/receive/":
			json.NewDecoder(r.Body).Decode(&receivedPayload)
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodGet && r.URL.Path == "/api/order/po-line/1/":
			json.NewEncoder(w).Encode(line(1, 10, 10))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := api.New(srv.URL, "tok")
	def := PurchaseOrderLines(client, roles.Set{roles.RulePurchaseOrder: {roles.PermChange}}, 12)

	updated, err := def.RowActions[0].Do(context.Background(), line(1, 10, 4))
	require.NoError(t, err)

	// The outstanding 6 units were booked in.
	items := receivedPayload["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, 1.0, item["line_item"])
	assert.Equal(t, 6.0, item["quantity"])

	// The refreshed line comes back for the optimistic upsert.
	require.NotNil(t, updated)
	assert.Equal(t, 10.0, updated.Float("received"))
}

func TestVisibleColumns(t *testing.T) {
	def := PurchaseOrderLines(nil, roles.Set{}, 12)

	hidden := map[string]bool{"SKU": true, "reference": true, "part": true}
	cols := def.VisibleColumns(func(name string) bool { return hidden[name] })

	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name)
	}
	// part is not switchable, so hiding it has no effect.
	assert.Contains(t, names, "part")
	assert.NotContains(t, names, "SKU")
	assert.NotContains(t, names, "reference")
}
