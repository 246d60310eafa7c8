// Package cmd provides Cobra CLI commands for tabwell.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/tabwell/internal/cli"
	"github.com/bnema/tabwell/internal/cli/model"
)

var (
	app       *cli.App
	buildInfo cli.BuildInfo

	rootCmd = &cobra.Command{
		Use:   "tabwell",
		Short: "Workspace tab manager for the admin console",
		Long: `Tabwell - the admin console's workspace tab manager.

Turns navigation events into a stable, deduplicated, persisted set of open
tabs. Navigating to a path either reuses an existing tab or opens a new one;
renames, pins, reorders and closes keep the active-tab pointer consistent,
and the whole workspace survives restarts.

Run without arguments to open the interactive tab browser, or use the
subcommands to drive the workspace from scripts.`,
		RunE: runBrowser,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute(info cli.BuildInfo) {
	buildInfo = info
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

func runBrowser(_ *cobra.Command, _ []string) error {
	m := model.NewTabsModel(app.Ctx(), app.Theme, app.Tabs)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("tabwell %s\n", buildInfo.Version)
		fmt.Printf("commit: %s\n", buildInfo.Commit)
		fmt.Printf("built: %s\n", buildInfo.Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
