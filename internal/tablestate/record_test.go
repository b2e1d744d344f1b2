package tablestate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryKey(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		pk   int64
		ok   bool
	}{
		{"pk field", Record{"pk": float64(42)}, 42, true},
		{"id fallback", Record{"id": float64(7)}, 7, true},
		{"pk wins over id", Record{"pk": float64(1), "id": float64(2)}, 1, true},
		{"string key", Record{"pk": "19"}, 19, true},
		{"int key", Record{"pk": 3}, 3, true},
		{"no key", Record{"name": "bolt"}, 0, false},
		{"non-numeric key", Record{"pk": "abc"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pk, ok := tt.rec.PrimaryKey()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.pk, pk)
		})
	}
}

func TestFieldAccessors(t *testing.T) {
	r := Record{
		"name":     "M3 bolt",
		"in_stock": float64(120),
		"price":    "1.25",
		"active":   true,
		"notes":    nil,
		"part_detail": map[string]any{
			"name": "Hex bolt",
			"IPN":  "FAS-001",
		},
	}

	assert.Equal(t, "M3 bolt", r.String("name"))
	assert.Equal(t, "120", r.String("in_stock"))
	assert.Equal(t, "true", r.String("active"))
	assert.Equal(t, "", r.String("notes"))
	assert.Equal(t, "", r.String("missing"))

	assert.Equal(t, 120.0, r.Float("in_stock"))
	assert.Equal(t, 1.25, r.Float("price"))
	assert.Zero(t, r.Float("name"))

	assert.True(t, r.Bool("active"))
	assert.False(t, r.Bool("name"))

	detail := r.Nested("part_detail")
	assert.NotNil(t, detail)
	assert.Equal(t, "Hex bolt", detail.String("name"))
	assert.Nil(t, r.Nested("name"))
}
