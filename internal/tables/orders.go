package tables

import (
	"github.com/invtop/invtop/internal/api"
	"github.com/invtop/invtop/internal/roles"
	"github.com/invtop/invtop/internal/tablestate"
	"github.com/invtop/invtop/internal/ui/styles"
)

// PurchaseOrders configures the purchase-order list table. Orders are
// browsed here and drilled into per-line with PurchaseOrderLines.
func PurchaseOrders(client *api.Client, rs roles.Set) Definition {
	return Definition{
		Name:     "purchase-orders",
		Title:    "Purchase orders",
		Endpoint: api.EndpointPO,
		Editable: rs.CanChange(roles.RulePurchaseOrder),
		Columns: []Column{
			{Name: "reference", Title: "Reference", Render: func(r tablestate.Record) string {
				return styles.Reference(r.String("reference"))
			}},
			{Name: "supplier_name", Title: "Supplier", Render: func(r tablestate.Record) string {
				if d := r.Nested("supplier_detail"); d != nil {
					return d.String("name")
				}
				return r.String("supplier_name")
			}},
			{Name: "status_text", Title: "Status", Render: func(r tablestate.Record) string {
				return styles.OrderStatus(r.String("status_text"))
			}},
			{Name: "line_items", Title: "Lines", Switchable: true},
			{Name: "target_date", Title: "Target date", Switchable: true},
			{Name: "total_price", Title: "Total", Switchable: true, Render: func(r tablestate.Record) string {
				return Money(r, "total_price", "total_price_currency")
			}},
		},
		Filters: []Filter{
			{Name: "status", Label: "Status", Description: "Order status code", Choices: []string{"10", "20", "30", "40"}},
			{Name: "outstanding", Label: "Outstanding", Description: "Orders that are not yet complete", Choices: []string{"true", "false"}},
			{Name: "overdue", Label: "Overdue", Description: "Orders past their target date", Choices: []string{"true", "false"}},
		},
		Detail: func(r tablestate.Record) []string {
			lines := []string{}
			if desc := r.String("description"); desc != "" {
				lines = append(lines, desc)
			}
			if issued := r.String("issue_date"); issued != "" {
				lines = append(lines, "issued: "+issued)
			}
			return lines
		},
	}
}
