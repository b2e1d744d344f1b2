package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invtop/invtop/internal/api"
	"github.com/invtop/invtop/internal/config"
	"github.com/invtop/invtop/internal/prefs"
	"github.com/invtop/invtop/internal/roles"
	"github.com/invtop/invtop/internal/tables"
	"github.com/invtop/invtop/internal/tablestate"
	"github.com/invtop/invtop/internal/ui"
	"github.com/invtop/invtop/internal/ui/table"
	"github.com/invtop/invtop/internal/util"
)

// session bundles everything a browse command needs: an authenticated
// client, the user's role set and the persisted table preferences.
type session struct {
	cfg    *config.Config
	client *api.Client
	roles  roles.Set
	store  prefs.Store
}

func newSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Server.URL == "" {
		return nil, util.NotConfiguredError()
	}

	client := api.New(cfg.Server.URL, cfg.Server.Token)

	sp := ui.NewSpinner("Connecting to " + cfg.Server.URL)
	sp.Start()
	rs, err := client.Roles(ctx)
	sp.Stop()
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) && statusErr.Unauthorized() {
			return nil, util.UnauthorizedError()
		}
		return nil, util.ServerConnectionError(cfg.Server.URL, err)
	}

	store, err := prefs.OpenFile(config.PrefsPath())
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, client: client, roles: rs, store: store}, nil
}

// addBrowseFlags registers the flags shared by all table commands.
func addBrowseFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print the current page as JSON and exit")
	cmd.Flags().Bool("no-pager", false, "Print a static table instead of the interactive view")
	cmd.Flags().StringP("search", "s", "", "Initial search term")
	cmd.Flags().StringArrayP("filter", "f", nil, "Set a filter as name=value (repeatable, persisted)")
	cmd.Flags().Int("page", 0, "Page to load")
	cmd.Flags().Int("page-size", 0, "Records per page")
}

// browse wires a table definition to state and hands off to the viewer.
func browse(cmd *cobra.Command, sess *session, def tables.Definition) error {
	ctx := cmd.Context()

	st := tablestate.New(def.Name, sess.store)

	if sess.cfg.UI.PageSize > 0 {
		st.SetPageSize(sess.cfg.UI.PageSize)
	}
	if size, _ := cmd.Flags().GetInt("page-size"); size > 0 {
		st.SetPageSize(size)
	}
	if page, _ := cmd.Flags().GetInt("page"); page > 0 {
		st.SetPage(page)
	}
	if search, _ := cmd.Flags().GetString("search"); search != "" {
		st.SetSearchTerm(search)
	}

	if raw, _ := cmd.Flags().GetStringArray("filter"); len(raw) > 0 {
		filters, err := parseFilters(def, raw)
		if err != nil {
			return err
		}
		if err := st.SetActiveFilters(filters); err != nil {
			return err
		}
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	noPager, _ := cmd.Flags().GetBool("no-pager")

	return table.Display(ctx, sess.client, def, st, table.Options{
		JSON:    jsonOut,
		NoPager: noPager,
	})
}

// parseFilters turns name=value arguments into the table's new filter
// set. An unknown filter name is an error so typos surface instead of
// silently returning unfiltered results.
func parseFilters(def tables.Definition, raw []string) ([]prefs.Filter, error) {
	known := make(map[string]bool, len(def.Filters))
	for _, f := range def.Filters {
		known[f.Name] = true
	}

	filters := make([]prefs.Filter, 0, len(raw))
	for _, r := range raw {
		name, value, ok := strings.Cut(r, "=")
		if !ok || name == "" || value == "" {
			return nil, fmt.Errorf("invalid filter %q, expected name=value", r)
		}
		if !known[name] {
			names := make([]string, 0, len(def.Filters))
			for _, f := range def.Filters {
				names = append(names, f.Name)
			}
			return nil, fmt.Errorf("unknown filter %q for %s (available: %s)", name, def.Name, strings.Join(names, ", "))
		}
		filters = append(filters, prefs.Filter{Name: name, Value: value})
	}
	return filters, nil
}
