package tables

import (
	"context"
	"fmt"

	"github.com/invtop/invtop/internal/api"
	"github.com/invtop/invtop/internal/roles"
	"github.com/invtop/invtop/internal/tablestate"
	"github.com/invtop/invtop/internal/ui/styles"
)

// Parts configures the part catalogue table.
func Parts(client *api.Client, rs roles.Set) Definition {
	def := Definition{
		Name:     "parts",
		Title:    "Parts",
		Endpoint: api.EndpointParts,
		Editable: rs.CanChange(roles.RulePart),
		Columns: []Column{
			{Name: "name", Title: "Name"},
			{Name: "IPN", Title: "IPN", Switchable: true},
			{Name: "category_name", Title: "Category", Switchable: true, Render: func(r tablestate.Record) string {
				if d := r.Nested("category_detail"); d != nil {
					return d.String("name")
				}
				return r.String("category_name")
			}},
			{Name: "total_in_stock", Title: "Stock", Render: func(r tablestate.Record) string {
				qty := r.Float("total_in_stock")
				return styles.StockLevel(Quantity(r, "total_in_stock"), qty, r.Float("minimum_stock"))
			}},
			{Name: "units", Title: "Units", Switchable: true},
			{Name: "active", Title: "Active", Switchable: true},
		},
		Filters: []Filter{
			{Name: "active", Label: "Active", Description: "Only active / inactive parts", Choices: []string{"true", "false"}},
			{Name: "assembly", Label: "Assembly", Description: "Parts that are assemblies", Choices: []string{"true", "false"}},
			{Name: "purchaseable", Label: "Purchaseable", Description: "Parts that can be bought", Choices: []string{"true", "false"}},
			{Name: "low_stock", Label: "Low stock", Description: "Parts below their minimum stock level", Choices: []string{"true", "false"}},
		},
		Detail: func(r tablestate.Record) []string {
			lines := []string{}
			if desc := r.String("description"); desc != "" {
				lines = append(lines, desc)
			}
			if keywords := r.String("keywords"); keywords != "" {
				lines = append(lines, "keywords: "+keywords)
			}
			return lines
		},
	}

	if rs.CanChange(roles.RulePart) {
		def.RowActions = append(def.RowActions, RowAction{
			Label: "Toggle active",
			Do: func(ctx context.Context, r tablestate.Record) (tablestate.Record, error) {
				pk, ok := r.PrimaryKey()
				if !ok {
					return nil, fmt.Errorf("record has no primary key")
				}
				return client.Update(ctx, api.EndpointParts, pk, map[string]any{
					"active": !r.Bool("active"),
				})
			},
		})
	}

	return def
}
