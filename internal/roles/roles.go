// Package roles models the server's role/permission assignment for the
// authenticated user. Each rule set (part, stock, purchase_order, ...)
// carries the permissions the user holds on it; the rest of invtop
// consumes these only as boolean capability checks when deciding
// whether to offer an action.
package roles

// Rule-set names used by the inventory server.
const (
	RulePart          = "part"
	RuleStock         = "stock"
	RulePurchaseOrder = "purchase_order"
	RuleSalesOrder    = "sales_order"
	RuleBuild         = "build"
)

// Permission names within a rule set.
const (
	PermView   = "view"
	PermAdd    = "add"
	PermChange = "change"
	PermDelete = "delete"
)

// Set maps rule-set names to the permissions granted on them, as
// returned by the server's roles endpoint.
type Set map[string][]string

// Has reports whether the given permission is granted on a rule set.
func (s Set) Has(rule, perm string) bool {
	for _, p := range s[rule] {
		if p == perm {
			return true
		}
	}
	return false
}

// CanView reports view permission on a rule set.
func (s Set) CanView(rule string) bool { return s.Has(rule, PermView) }

// CanAdd reports add permission on a rule set.
func (s Set) CanAdd(rule string) bool { return s.Has(rule, PermAdd) }

// CanChange reports change permission on a rule set.
func (s Set) CanChange(rule string) bool { return s.Has(rule, PermChange) }

// CanDelete reports delete permission on a rule set.
func (s Set) CanDelete(rule string) bool { return s.Has(rule, PermDelete) }

// Rules returns the known rule-set names in display order.
func Rules() []string {
	return []string{RulePart, RuleStock, RulePurchaseOrder, RuleSalesOrder, RuleBuild}
}
