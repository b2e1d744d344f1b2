package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invtop/invtop/internal/tablestate"
)

func TestMoney(t *testing.T) {
	r := tablestate.Record{
		"purchase_price":          "1.2",
		"purchase_price_currency": "EUR",
	}
	assert.Equal(t, "1.20 EUR", Money(r, "purchase_price", "purchase_price_currency"))

	// No currency code: bare amount.
	assert.Equal(t, "1.20", Money(tablestate.Record{"purchase_price": "1.2"}, "purchase_price", "purchase_price_currency"))

	// Absent or broken prices render empty.
	assert.Equal(t, "", Money(tablestate.Record{}, "purchase_price", "purchase_price_currency"))
	assert.Equal(t, "", Money(tablestate.Record{"purchase_price": "n/a"}, "purchase_price", "purchase_price_currency"))
}

func TestLineTotal(t *testing.T) {
	r := tablestate.Record{
		"quantity":                float64(4),
		"purchase_price":          "2.25",
		"purchase_price_currency": "USD",
	}
	assert.Equal(t, "9.00 USD", LineTotal(r, "quantity", "purchase_price", "purchase_price_currency"))

	// Decimal arithmetic, not float: 0.1 * 3 is exactly 0.30.
	r = tablestate.Record{"quantity": float64(3), "purchase_price": "0.1"}
	assert.Equal(t, "0.30", LineTotal(r, "quantity", "purchase_price", "purchase_price_currency"))

	assert.Equal(t, "", LineTotal(tablestate.Record{"quantity": float64(3)}, "quantity", "purchase_price", "purchase_price_currency"))
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "2", Quantity(tablestate.Record{"quantity": float64(2)}, "quantity"))
	assert.Equal(t, "2.5", Quantity(tablestate.Record{"quantity": "2.5000"}, "quantity"))
	assert.Equal(t, "", Quantity(tablestate.Record{}, "quantity"))
}
