package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityChecks(t *testing.T) {
	s := Set{
		RulePart:          {PermView, PermAdd, PermChange},
		RulePurchaseOrder: {PermView},
	}

	assert.True(t, s.CanView(RulePart))
	assert.True(t, s.CanAdd(RulePart))
	assert.True(t, s.CanChange(RulePart))
	assert.False(t, s.CanDelete(RulePart))

	assert.True(t, s.CanView(RulePurchaseOrder))
	assert.False(t, s.CanChange(RulePurchaseOrder))

	// Unknown rule sets grant nothing.
	assert.False(t, s.CanView(RuleBuild))
	assert.False(t, s.Has("bogus", PermView))
}

func TestEmptySet(t *testing.T) {
	var s Set
	for _, rule := range Rules() {
		assert.False(t, s.CanView(rule))
		assert.False(t, s.CanAdd(rule))
	}
}
