package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset the persisted workspace state",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Dump the persisted tab list and active pointer as JSON",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()

		tabs, err := app.StateRepo.LoadTabs(app.Ctx())
		if err != nil {
			return err
		}
		activeID, err := app.StateRepo.LoadActiveTab(app.Ctx())
		if err != nil {
			return err
		}

		out := map[string]any{
			"tabs":        tabs,
			"activeTabId": nil,
		}
		if activeID != "" {
			out["activeTabId"] = string(activeID)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all persisted workspace state",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if err := app.StateRepo.Reset(app.Ctx()); err != nil {
			return err
		}
		fmt.Println("Workspace state cleared.")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(app.Config)
	},
}

func init() {
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)

	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(configShowCmd)
}
