package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	navigateTitle string
	openTitle     string
)

var navigateCmd = &cobra.Command{
	Use:   "navigate <path>",
	Short: "Navigate to a path, reusing an open tab when possible",
	Long: `Send a navigation event for the given path.

The path is resolved to a tab descriptor; if an open tab can represent it
(same path, or same reuse group and never renamed) that tab is updated in
place and made active. Otherwise a new tab is appended. Paths with no tab
representation are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()

		tab, err := app.Tabs.Navigate(app.Ctx(), args[0], navigateTitle)
		if err != nil {
			return err
		}
		if tab == nil {
			fmt.Printf("no tab for %s\n", args[0])
			return nil
		}
		fmt.Printf("%s  %s  [%s]\n", tab.ID, tab.Title, tab.Path)
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Open a path in a new tab, bypassing tab reuse",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()

		tab, err := app.Tabs.OpenNewTabForPath(app.Ctx(), args[0], openTitle)
		if err != nil {
			return err
		}
		if tab == nil {
			fmt.Printf("no tab for %s\n", args[0])
			return nil
		}
		fmt.Printf("%s  %s  [%s]\n", tab.ID, tab.Title, tab.Path)
		return nil
	},
}

var resourceCmd = &cobra.Command{
	Use:   "resource <type> <id>",
	Short: "Open a tab for a resource by type and id",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()

		tab, err := app.Tabs.OpenResourceTab(app.Ctx(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s  [%s]\n", tab.ID, tab.Title, tab.Path)
		return nil
	},
}

func init() {
	navigateCmd.Flags().StringVar(&navigateTitle, "title", "", "override the computed tab title")
	openCmd.Flags().StringVar(&openTitle, "title", "", "override the computed tab title")

	rootCmd.AddCommand(navigateCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(resourceCmd)
}
