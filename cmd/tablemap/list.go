package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/mmcdole/tablemap/internal/domain"
	"github.com/mmcdole/tablemap/internal/geo"
	"github.com/mmcdole/tablemap/internal/grouping"
	"github.com/mmcdole/tablemap/internal/loader"
	"github.com/mmcdole/tablemap/internal/search"
	"github.com/mmcdole/tablemap/internal/tui/components"
)

type listOptions struct {
	continent string
	country   string
	query     string
	json      bool
}

// listOutput is the --json document
type listOutput struct {
	Scope     string                                          `json:"scope"`
	Offline   bool                                            `json:"offline"`
	FromCache bool                                            `json:"fromCache"`
	UpdatedAt *time.Time                                      `json:"updatedAt,omitempty"`
	Error     string                                          `json:"error,omitempty"`
	Sections  []grouping.ContinentSection[domain.Restaurant] `json:"sections"`
}

func newListCommand(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print restaurants grouped by continent and country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.continent, "continent", "", "only show this continent")
	cmd.Flags().StringVar(&opts.country, "country", "", "only show this country (catalog id, e.g. UK)")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "fuzzy search restaurant names")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	return cmd
}

// listFilter validates the flags against the catalog
func listFilter(catalog *geo.Catalog, opts *listOptions) (grouping.Filter, error) {
	if opts.country != "" {
		if _, ok := catalog.Lookup(opts.country); !ok {
			return grouping.Filter{}, fmt.Errorf("unknown country: %q", opts.country)
		}
	}
	if opts.continent != "" && len(catalog.CountriesIn(opts.continent)) == 0 {
		return grouping.Filter{}, fmt.Errorf("unknown continent: %q", opts.continent)
	}

	f := grouping.Filter{}.WithContinent(opts.continent)
	if opts.country == "" {
		return f, nil
	}

	f = f.WithCountry(catalog, opts.country)
	if opts.continent != "" && f.Continent != opts.continent {
		return grouping.Filter{}, fmt.Errorf("country %q is not in %s", opts.country, opts.continent)
	}
	return f, nil
}

func runList(cmd *cobra.Command, root *rootOptions, opts *listOptions) error {
	a, cleanup, err := openApp(root)
	if err != nil {
		return err
	}
	defer cleanup()

	filter, err := listFilter(a.Catalog, opts)
	if err != nil {
		return err
	}

	scope := a.LiveScope()
	if filter.Country != "" {
		scope = filter.Country
	}

	ctx := cmd.Context()
	a.Probe(ctx)
	res := a.Load(ctx, scope)

	items := search.Rank(opts.query, res.Items)
	sections := grouping.Sections(a.Catalog, a.LiveScope(), items, filter)

	if res.Offline {
		fmt.Fprintln(cmd.ErrOrStderr(), components.OfflineMessage)
	}

	out := cmd.OutOrStdout()
	if opts.json {
		err = writeListJSON(out, res, sections)
	} else {
		writeListTable(out, a.LiveScope(), res, sections)
	}
	if err != nil {
		return err
	}
	return res.Err
}

func writeListJSON(w io.Writer, res loader.Result, sections []grouping.ContinentSection[domain.Restaurant]) error {
	doc := listOutput{
		Scope:     res.Scope,
		Offline:   res.Offline,
		FromCache: res.FromCache,
		Sections:  sections,
	}
	if !res.UpdatedAt.IsZero() {
		doc.UpdatedAt = &res.UpdatedAt
	}
	if res.Err != nil {
		doc.Error = res.Err.Error()
	}
	if doc.Sections == nil {
		doc.Sections = []grouping.ContinentSection[domain.Restaurant]{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeListTable(w io.Writer, liveScope string, res loader.Result, sections []grouping.ContinentSection[domain.Restaurant]) {
	if len(sections) == 0 {
		fmt.Fprintln(w, "No countries match the current filters.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"Continent", "Country", "Restaurant", "Address"})

	for _, section := range sections {
		for _, group := range section.Data {
			if len(group.Items) == 0 {
				t.AppendRow(table.Row{section.Title, group.CountryLabel, grouping.EmptyMessage(group, liveScope, res.Err), ""})
				continue
			}
			for _, r := range group.Items {
				t.AppendRow(table.Row{section.Title, group.CountryLabel, r.Name, r.Locality()})
			}
		}
		t.AppendSeparator()
	}

	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d restaurants", grouping.Count(sections)), ""})
	t.Render()
}
