package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bnema/tabwell/internal/domain/entity"
)

var tabsJSON bool

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "Manage workspace tabs",
	Long: `List and manipulate the open workspace tabs.

Every mutation is written through to the state database immediately, so the
next invocation (or the running console) sees the same workspace.`,
	RunE: runTabsList,
}

var tabsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open tabs in display order",
	RunE:  runTabsList,
}

func runTabsList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	tabs := app.Tabs.Tabs()
	activeID := app.Tabs.ActiveTabID()

	if tabsJSON {
		out := struct {
			Tabs        []*entity.Tab `json:"tabs"`
			ActiveTabID string        `json:"activeTabId"`
		}{Tabs: tabs, ActiveTabID: string(activeID)}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(tabs) == 0 {
		fmt.Println("No open tabs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  \tID\tTITLE\tPATH\tKIND")
	for _, tab := range tabs {
		marker := " "
		if tab.ID == activeID {
			marker = "●"
		}
		title := tab.Title
		if tab.IsPinned {
			title += " (pinned)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, tab.ID, title, tab.Path, tab.Kind)
	}
	return w.Flush()
}

var tabsCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		return app.Tabs.CloseTab(app.Ctx(), entity.TabID(args[0]))
	},
}

var tabsRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Give a tab a custom title",
	Long: `Set a custom title on a tab.

A renamed tab keeps its title: later navigation may still update the tab's
path but will never overwrite the title, and the tab is no longer eligible
for silent reuse by navigation.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		title := strings.Join(args[1:], " ")
		return app.Tabs.RenameTab(app.Ctx(), entity.TabID(args[0]), title)
	},
}

var tabsPinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Toggle a tab's pinned flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		return app.Tabs.TogglePinTab(app.Ctx(), entity.TabID(args[0]))
	},
}

var tabsReorderCmd = &cobra.Command{
	Use:   "reorder <id>...",
	Short: "Reorder tabs by id",
	Long: `Rebuild the tab display order from the given ids.

The list may be partial: tabs omitted from the arguments keep their prior
relative order after the listed ones. No tab is ever dropped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		ids := make([]entity.TabID, len(args))
		for i, arg := range args {
			ids[i] = entity.TabID(arg)
		}
		return app.Tabs.ReorderTabs(app.Ctx(), ids)
	},
}

var tabsActivateCmd = &cobra.Command{
	Use:   "activate <id|none>",
	Short: "Set or clear the active tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		id := entity.TabID(args[0])
		if args[0] == "none" {
			id = ""
		}
		return app.Tabs.SetActiveTab(app.Ctx(), id)
	},
}

func init() {
	tabsCmd.PersistentFlags().BoolVar(&tabsJSON, "json", false, "output as JSON")

	tabsCmd.AddCommand(tabsListCmd)
	tabsCmd.AddCommand(tabsCloseCmd)
	tabsCmd.AddCommand(tabsRenameCmd)
	tabsCmd.AddCommand(tabsPinCmd)
	tabsCmd.AddCommand(tabsReorderCmd)
	tabsCmd.AddCommand(tabsActivateCmd)

	rootCmd.AddCommand(tabsCmd)
}
