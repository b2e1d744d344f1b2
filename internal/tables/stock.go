package tables

import (
	"context"
	"fmt"

	"github.com/invtop/invtop/internal/api"
	"github.com/invtop/invtop/internal/roles"
	"github.com/invtop/invtop/internal/tablestate"
	"github.com/invtop/invtop/internal/ui/styles"
)

// StockItems configures the stock table.
func StockItems(client *api.Client, rs roles.Set) Definition {
	def := Definition{
		Name:     "stock",
		Title:    "Stock items",
		Endpoint: api.EndpointStock,
		Editable: rs.CanChange(roles.RuleStock),
		Columns: []Column{
			{Name: "part", Title: "Part", Render: func(r tablestate.Record) string {
				if d := r.Nested("part_detail"); d != nil {
					return d.String("name")
				}
				return r.String("part")
			}},
			{Name: "location", Title: "Location", Render: func(r tablestate.Record) string {
				if d := r.Nested("location_detail"); d != nil {
					return d.String("name")
				}
				return r.String("location")
			}},
			{Name: "quantity", Title: "Quantity", Render: func(r tablestate.Record) string {
				return styles.StockLevel(Quantity(r, "quantity"), r.Float("quantity"), 0)
			}},
			{Name: "serial", Title: "Serial", Switchable: true},
			{Name: "batch", Title: "Batch", Switchable: true},
			{Name: "status_text", Title: "Status", Switchable: true},
			{Name: "expiry_date", Title: "Expiry", Switchable: true},
		},
		Filters: []Filter{
			{Name: "in_stock", Label: "In stock", Description: "Items that are in stock", Choices: []string{"true", "false"}},
			{Name: "serialized", Label: "Serialized", Description: "Items tracked by serial number", Choices: []string{"true", "false"}},
			{Name: "depleted", Label: "Depleted", Description: "Items with zero quantity", Choices: []string{"true", "false"}},
			{Name: "expired", Label: "Expired", Description: "Items past their expiry date", Choices: []string{"true", "false"}},
		},
		Detail: func(r tablestate.Record) []string {
			lines := []string{}
			if notes := r.String("notes"); notes != "" {
				lines = append(lines, "notes: "+notes)
			}
			if sup := r.String("supplier_part"); sup != "" {
				lines = append(lines, "supplier part: "+sup)
			}
			return lines
		},
	}

	if rs.CanChange(roles.RuleStock) {
		def.RowActions = append(def.RowActions, RowAction{
			Label: "Count as empty",
			Hidden: func(r tablestate.Record) bool {
				return r.Float("quantity") == 0
			},
			Do: func(ctx context.Context, r tablestate.Record) (tablestate.Record, error) {
				pk, ok := r.PrimaryKey()
				if !ok {
					return nil, fmt.Errorf("record has no primary key")
				}
				return client.Update(ctx, api.EndpointStock, pk, map[string]any{
					"quantity": 0,
				})
			},
		})
	}
	if rs.CanDelete(roles.RuleStock) {
		def.RowActions = append(def.RowActions, RowAction{
			Label: "Delete item",
			Do: func(ctx context.Context, r tablestate.Record) (tablestate.Record, error) {
				pk, ok := r.PrimaryKey()
				if !ok {
					return nil, fmt.Errorf("record has no primary key")
				}
				return nil, client.Delete(ctx, api.EndpointStock, pk)
			},
		})
	}

	return def
}
