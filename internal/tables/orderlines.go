package tables

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/invtop/invtop/internal/api"
	"github.com/invtop/invtop/internal/roles"
	"github.com/invtop/invtop/internal/tablestate"
)

// PurchaseOrderLines configures the line-item table of one purchase
// order: what was ordered, how much has been received, and at what
// price. Receive/Edit/Delete actions are offered only when the user's
// roles allow them; receiving is additionally hidden for lines that
// are fully received.
func PurchaseOrderLines(client *api.Client, rs roles.Set, orderPK int64) Definition {
	name := "po-lines-" + strconv.FormatInt(orderPK, 10)

	def := Definition{
		Name:     name,
		Title:    fmt.Sprintf("Purchase order %d — line items", orderPK),
		Endpoint: api.EndpointPOLines,
		Params:   url.Values{"order": {strconv.FormatInt(orderPK, 10)}},
		Editable: rs.CanChange(roles.RulePurchaseOrder),
		Columns: []Column{
			{Name: "part", Title: "Part", Render: func(r tablestate.Record) string {
				if d := r.Nested("part_detail"); d != nil {
					return d.String("name")
				}
				return r.String("part")
			}},
			{Name: "SKU", Title: "SKU", Switchable: true, Render: func(r tablestate.Record) string {
				if d := r.Nested("part_detail"); d != nil {
					return d.String("SKU")
				}
				return ""
			}},
			{Name: "reference", Title: "Reference", Switchable: true},
			{Name: "received", Title: "Received", Render: func(r tablestate.Record) string {
				return fmt.Sprintf("%s / %s", Quantity(r, "received"), Quantity(r, "quantity"))
			}},
			{Name: "purchase_price", Title: "Unit price", Switchable: true, Render: func(r tablestate.Record) string {
				return Money(r, "purchase_price", "purchase_price_currency")
			}},
			{Name: "total_price", Title: "Total", Switchable: true, Render: func(r tablestate.Record) string {
				return LineTotal(r, "quantity", "purchase_price", "purchase_price_currency")
			}},
			{Name: "destination", Title: "Destination", Switchable: true, Render: func(r tablestate.Record) string {
				if d := r.Nested("destination_detail"); d != nil {
					return d.String("name")
				}
				return r.String("destination")
			}},
		},
		Filters: []Filter{
			{Name: "received", Label: "Received", Description: "Show fully received / outstanding lines", Choices: []string{"true", "false"}},
			{Name: "has_pricing", Label: "Has pricing", Description: "Lines with a unit price set", Choices: []string{"true", "false"}},
		},
		Detail: func(r tablestate.Record) []string {
			lines := []string{}
			if notes := r.String("notes"); notes != "" {
				lines = append(lines, "notes: "+notes)
			}
			if link := r.String("link"); link != "" {
				lines = append(lines, "link: "+link)
			}
			if d := r.Nested("part_detail"); d != nil {
				if mpn := d.String("MPN"); mpn != "" {
					lines = append(lines, "MPN: "+mpn)
				}
			}
			return lines
		},
	}

	fullyReceived := func(r tablestate.Record) bool {
		return r.Float("received") >= r.Float("quantity")
	}

	if rs.CanChange(roles.RulePurchaseOrder) {
		def.RowActions = append(def.RowActions, RowAction{
			Label:  "Receive remaining",
			Hidden: fullyReceived,
			Do: func(ctx context.Context, r tablestate.Record) (tablestate.Record, error) {
				return receiveLine(ctx, client, orderPK, r)
			},
		})
		def.Actions = append(def.Actions, TableAction{
			Label: "Receive selected",
			Do: func(ctx context.Context, selected []tablestate.Record) error {
				for _, r := range selected {
					if fullyReceived(r) {
						continue
					}
					if _, err := receiveLine(ctx, client, orderPK, r); err != nil {
						return err
					}
				}
				return nil
			},
		})
	}

	if rs.CanDelete(roles.RulePurchaseOrder) {
		def.RowActions = append(def.RowActions, RowAction{
			Label: "Delete line",
			Do: func(ctx context.Context, r tablestate.Record) (tablestate.Record, error) {
				pk, ok := r.PrimaryKey()
				if !ok {
					return nil, fmt.Errorf("record has no primary key")
				}
				return nil, client.Delete(ctx, api.EndpointPOLines, pk)
			},
		})
	}

	return def
}

// receiveLine books the outstanding quantity of a line item into stock
// and returns the refreshed line, ready for an optimistic cache upsert.
func receiveLine(ctx context.Context, client *api.Client, orderPK int64, r tablestate.Record) (tablestate.Record, error) {
	pk, ok := r.PrimaryKey()
	if !ok {
		return nil, fmt.Errorf("record has no primary key")
	}

	outstanding := r.Float("quantity") - r.Float("received")
	if outstanding <= 0 {
		return r, nil
	}

	endpoint := fmt.Sprintf("/api/order/po/%d/receive/", orderPK)
	err := client.Post(ctx, endpoint, map[string]any{
		"items": []map[string]any{
			{"line_item": pk, "quantity": outstanding},
		},
	})
	if err != nil {
		return nil, err
	}

	return client.Retrieve(ctx, api.EndpointPOLines, pk)
}
