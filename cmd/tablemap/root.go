package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/tablemap/internal/app"
	"github.com/mmcdole/tablemap/internal/config"
	"github.com/mmcdole/tablemap/internal/loader"
	"github.com/mmcdole/tablemap/internal/logging"
	"github.com/mmcdole/tablemap/internal/tui"
)

// rootOptions holds flags shared by every command
type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "tablemap",
		Short:         "Browse restaurants by continent and country",
		Long:          "tablemap lists restaurants grouped by continent and country and keeps working offline from the last saved list.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return runList(cmd, opts, &listOptions{})
			}
			return runTUI(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default is ~/.config/tablemap/config.yaml or ./config.yaml)")

	cmd.AddCommand(
		newListCommand(opts),
		newCacheCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// openApp loads configuration, sets up logging and builds the App. The
// returned cleanup must be called when the command is done.
func openApp(opts *rootOptions) (*app.App, func(), error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := logging.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = logging.NullLogger()
		logCloser = nil
	}
	slog.SetDefault(logger)

	a, err := app.New(cfg, logger)
	if err != nil {
		if logCloser != nil {
			logCloser.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		if err := a.Close(); err != nil {
			logger.Error("failed to close app", "error", err)
		}
		if logCloser != nil {
			logCloser.Close()
		}
	}
	return a, cleanup, nil
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	a, cleanup, err := openApp(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	a.Logger.Info("starting tablemap", "version", Version)

	a.Probe(ctx)
	a.Watch(ctx)

	results := make(chan loader.Result, 16)
	l := a.NewLoader(loader.WithObserver(tui.NewChannelObserver(results)))
	defer l.Close()

	model := tui.NewModel(ctx, tui.Options{
		Catalog:   a.Catalog,
		Loader:    l,
		Results:   results,
		LiveScope: a.LiveScope(),
		Country:   a.Config.Data.DefaultCountry,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	a.Logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.Logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.Logger.Info("shutting down")
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tablemap %s\n", Version)
		},
	}
}
