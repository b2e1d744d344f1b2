package cli

import (
	"github.com/spf13/cobra"

	"github.com/invtop/invtop/internal/roles"
	"github.com/invtop/invtop/internal/tables"
	"github.com/invtop/invtop/internal/util"
)

func newPartsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parts",
		Short: "Browse the part catalogue",
		Long: `Browse the server's part catalogue in an interactive table.

Examples:
  invtop parts                       # interactive browser
  invtop parts -s resistor           # start with a search
  invtop parts -f active=true        # set a persisted filter
  invtop parts --json                # dump the current page as JSON`,
		Args: cobra.NoArgs,
		RunE: runParts,
	}
	addBrowseFlags(cmd)
	return cmd
}

func runParts(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	if !sess.roles.CanView(roles.RulePart) {
		return util.PermissionError("view", roles.RulePart)
	}
	return browse(cmd, sess, tables.Parts(sess.client, sess.roles))
}
