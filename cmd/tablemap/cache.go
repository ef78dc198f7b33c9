package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newCacheCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the saved restaurant list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the saved restaurant snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(root)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			entry, ok := a.Snapshot(cmd.Context())
			if !ok {
				fmt.Fprintln(out, "No saved restaurants.")
				return nil
			}

			age := entry.Age(a.Cache.Now()).Truncate(time.Second)

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendRows([]table.Row{
				{"Key", a.Config.Cache.Key},
				{"Driver", a.Config.Cache.Driver},
				{"Saved at", entry.Timestamp.Local().Format(time.RFC3339)},
				{"Age", age},
				{"Stale", a.Cache.IsStale(entry)},
				{"Items", len(entry.Items)},
			})
			t.Render()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the saved restaurant snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(root)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.ClearSnapshot(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared saved restaurants.")
			return nil
		},
	})

	return cmd
}
