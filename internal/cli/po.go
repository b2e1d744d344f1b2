package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/invtop/invtop/internal/api"
	"github.com/invtop/invtop/internal/roles"
	"github.com/invtop/invtop/internal/tables"
	"github.com/invtop/invtop/internal/util"
)

func newPOCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "po",
		Short: "Browse purchase orders",
	}
	cmd.AddCommand(newPOListCmd(), newPOLinesCmd())
	return cmd
}

func newPOListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse purchase orders",
		Long: `Browse the server's purchase orders in an interactive table.

Examples:
  invtop po list                     # interactive browser
  invtop po list -f outstanding=true # only open orders
  invtop po list -s ACME             # search references and suppliers`,
		Args: cobra.NoArgs,
		RunE: runPOList,
	}
	addBrowseFlags(cmd)
	return cmd
}

func runPOList(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	if !sess.roles.CanView(roles.RulePurchaseOrder) {
		return util.PermissionError("view", roles.RulePurchaseOrder)
	}
	return browse(cmd, sess, tables.PurchaseOrders(sess.client, sess.roles))
}

func newPOLinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines <order>",
		Short: "Browse the line items of one purchase order",
		Long: `Browse the line items of a purchase order. The order may be given
by reference (e.g. PO-0042) or by its numeric id.

With change permission on purchase orders, outstanding lines can be
received directly from the table.

Examples:
  invtop po lines PO-0042
  invtop po lines 17 -f received=false`,
		Args: cobra.ExactArgs(1),
		RunE: runPOLines,
	}
	addBrowseFlags(cmd)
	return cmd
}

func runPOLines(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	if !sess.roles.CanView(roles.RulePurchaseOrder) {
		return util.PermissionError("view", roles.RulePurchaseOrder)
	}

	orderPK, err := resolveOrder(cmd.Context(), sess.client, args[0])
	if err != nil {
		return err
	}
	return browse(cmd, sess, tables.PurchaseOrderLines(sess.client, sess.roles, orderPK))
}

// resolveOrder turns an order reference or numeric id into the order's
// primary key. References are matched exactly against the server's
// search results.
func resolveOrder(ctx context.Context, client *api.Client, arg string) (int64, error) {
	if pk, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return pk, nil
	}

	res, err := client.List(ctx, api.EndpointPO, api.Query{Search: arg, PageSize: 50})
	if err != nil {
		return 0, err
	}
	for _, rec := range res.Results {
		if rec.String("reference") != arg {
			continue
		}
		if pk, ok := rec.PrimaryKey(); ok {
			return pk, nil
		}
	}
	return 0, util.OrderNotFoundError(arg)
}
