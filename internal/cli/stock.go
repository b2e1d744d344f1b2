package cli

import (
	"github.com/spf13/cobra"

	"github.com/invtop/invtop/internal/roles"
	"github.com/invtop/invtop/internal/tables"
	"github.com/invtop/invtop/internal/util"
)

func newStockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Browse stock items",
		Long: `Browse the server's stock items in an interactive table.

Examples:
  invtop stock                       # interactive browser
  invtop stock -f in_stock=true      # only items currently in stock
  invtop stock -s "batch-42"         # search serials, batches, parts`,
		Args: cobra.NoArgs,
		RunE: runStock,
	}
	addBrowseFlags(cmd)
	return cmd
}

func runStock(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	if !sess.roles.CanView(roles.RuleStock) {
		return util.PermissionError("view", roles.RuleStock)
	}
	return browse(cmd, sess, tables.StockItems(sess.client, sess.roles))
}
