// Package table renders one entity table around its state. It is the
// consumer side of the table state's contract: it watches the identity
// token, page, page size, search term and active filters, issues the
// list request against the server, and pushes results back in through
// the state's setters. On a TTY it runs an interactive viewer (search,
// paging, selection, row expansion, persisted column hiding, row and
// bulk actions); otherwise it prints a plain table or JSON.
package table

import (
	"context"
	"os"

	"golang.org/x/term"

	"github.com/invtop/invtop/internal/api"
	"github.com/invtop/invtop/internal/tables"
	"github.com/invtop/invtop/internal/tablestate"
)

// Options controls how a table is rendered.
type Options struct {
	// JSON outputs the current page as a JSON array of records.
	JSON bool
	// NoPager forces plain table output even on a TTY.
	NoPager bool
}

// Display fetches and renders one table. The state's editable flag is
// set from the definition before anything else happens.
func Display(ctx context.Context, client *api.Client, def tables.Definition, st *tablestate.State, opts Options) error {
	st.SetEditable(def.Editable)

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if opts.JSON || opts.NoPager || !isTTY {
		st.SetLoading(true)
		res, err := client.List(ctx, def.Endpoint, queryFor(def, st))
		st.SetLoading(false)
		if err != nil {
			return err
		}
		st.SetRecords(res.Results)
		st.SetRecordCount(res.Count)

		if opts.JSON {
			return PrintJSON(st.Records())
		}
		PrintPlain(def, st)
		return nil
	}

	return runTUI(ctx, client, def, st)
}

// queryFor snapshots the state's list parameters into a query.
func queryFor(def tables.Definition, st *tablestate.State) api.Query {
	return api.Query{
		Page:     st.Page(),
		PageSize: st.PageSize(),
		Search:   st.SearchTerm(),
		Filters:  st.ActiveFilters(),
		Params:   def.Params,
	}
}
