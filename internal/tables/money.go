package tables

import (
	"github.com/shopspring/decimal"

	"github.com/invtop/invtop/internal/tablestate"
)

// Money renders a price field with its currency code, e.g. "12.50 EUR".
// Servers send prices as decimal strings; numbers are accepted too.
// Absent or unparseable prices render as "".
func Money(r tablestate.Record, valueField, currencyField string) string {
	raw := r.String(valueField)
	if raw == "" {
		return ""
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return ""
	}

	out := d.StringFixed(2)
	if cur := r.String(currencyField); cur != "" {
		out += " " + cur
	}
	return out
}

// LineTotal renders quantity × unit price with the unit's currency.
func LineTotal(r tablestate.Record, qtyField, priceField, currencyField string) string {
	raw := r.String(priceField)
	if raw == "" {
		return ""
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return ""
	}
	qty := decimal.NewFromFloat(r.Float(qtyField))

	out := qty.Mul(price).StringFixed(2)
	if cur := r.String(currencyField); cur != "" {
		out += " " + cur
	}
	return out
}

// Quantity renders a numeric quantity without trailing zeros, the way
// counting "2" reads better than "2.00000".
func Quantity(r tablestate.Record, field string) string {
	raw := r.String(field)
	if raw == "" {
		return ""
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return d.String()
}
