// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/tabwell/internal/application/usecase"
	"github.com/bnema/tabwell/internal/cli/styles"
	"github.com/bnema/tabwell/internal/domain/entity"
)

// TabsModel is the Bubble Tea model for the interactive tab browser. It
// renders the exposed workspace state read-only and dispatches every change
// through the tab operations.
type TabsModel struct {
	help  help.Model
	keys  tabsKeyMap
	input textinput.Model

	tabs        []*entity.Tab
	activeID    entity.TabID
	selectedIdx int
	renaming    bool
	width       int
	statusMsg   string
	errMsg      string

	ctx   context.Context
	uc    *usecase.ManageTabsUseCase
	theme *styles.Theme
}

// tabsKeyMap defines keybindings for the tab browser.
type tabsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Next     key.Binding
	Prev     key.Binding
	Close    key.Binding
	Rename   key.Binding
	Pin      key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k tabsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Activate, k.Close, k.Rename, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k tabsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Activate},
		{k.Close, k.Rename, k.Pin},
		{k.MoveUp, k.MoveDown, k.Next, k.Prev},
		{k.Help, k.Quit},
	}
}

func defaultTabsKeyMap() tabsKeyMap {
	return tabsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "activate"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin/unpin"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewTabsModel creates the interactive tab browser.
func NewTabsModel(ctx context.Context, theme *styles.Theme, uc *usecase.ManageTabsUseCase) TabsModel {
	input := textinput.New()
	input.Placeholder = "tab title"
	input.CharLimit = 80

	m := TabsModel{
		help:  help.New(),
		keys:  defaultTabsKeyMap(),
		input: input,
		ctx:   ctx,
		uc:    uc,
		theme: theme,
	}
	m.refresh()
	return m
}

// refresh re-reads the exposed workspace state.
func (m *TabsModel) refresh() {
	m.tabs = m.uc.Tabs()
	m.activeID = m.uc.ActiveTabID()
	if m.selectedIdx >= len(m.tabs) {
		m.selectedIdx = len(m.tabs) - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

func (m *TabsModel) selected() *entity.Tab {
	if len(m.tabs) == 0 || m.selectedIdx >= len(m.tabs) {
		return nil
	}
	return m.tabs[m.selectedIdx]
}

// Init implements tea.Model.
func (m TabsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m TabsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.renaming {
			return m.updateRenaming(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m TabsModel) updateRenaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		tab := m.selected()
		if tab != nil {
			if err := m.uc.RenameTab(m.ctx, tab.ID, m.input.Value()); err != nil {
				m.errMsg = err.Error()
			} else {
				m.statusMsg = fmt.Sprintf("renamed to %q", m.input.Value())
			}
		}
		m.renaming = false
		m.input.Blur()
		m.refresh()
		return m, nil
	case "esc":
		m.renaming = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TabsModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	m.errMsg = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.selectedIdx > 0 {
			m.selectedIdx--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selectedIdx < len(m.tabs)-1 {
			m.selectedIdx++
		}

	case key.Matches(msg, m.keys.Activate):
		if tab := m.selected(); tab != nil {
			if err := m.uc.SetActiveTab(m.ctx, tab.ID); err != nil {
				m.errMsg = err.Error()
			}
			m.refresh()
		}

	case key.Matches(msg, m.keys.Next):
		if err := m.uc.SwitchNext(m.ctx); err != nil {
			m.errMsg = err.Error()
		}
		m.refresh()

	case key.Matches(msg, m.keys.Prev):
		if err := m.uc.SwitchPrevious(m.ctx); err != nil {
			m.errMsg = err.Error()
		}
		m.refresh()

	case key.Matches(msg, m.keys.Close):
		m = m.closeSelected()

	case key.Matches(msg, m.keys.Rename):
		if tab := m.selected(); tab != nil {
			m.renaming = true
			m.input.SetValue(tab.Title)
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Pin):
		if tab := m.selected(); tab != nil {
			if err := m.uc.TogglePinTab(m.ctx, tab.ID); err != nil {
				m.errMsg = err.Error()
			}
			m.refresh()
		}

	case key.Matches(msg, m.keys.MoveUp):
		m = m.moveSelected(-1)

	case key.Matches(msg, m.keys.MoveDown):
		m = m.moveSelected(1)
	}

	return m, nil
}

// closeSelected closes the selected tab. The store leaves the active
// pointer empty when the active tab closes; the browser elects the left
// neighbor so the strip never goes active-less while tabs remain.
func (m TabsModel) closeSelected() TabsModel {
	tab := m.selected()
	if tab == nil {
		return m
	}
	if !tab.Closeable {
		m.errMsg = fmt.Sprintf("%s cannot be closed", tab.Title)
		return m
	}

	wasActive := tab.ID == m.activeID
	closedIdx := m.selectedIdx

	if err := m.uc.CloseTab(m.ctx, tab.ID); err != nil {
		m.errMsg = err.Error()
		return m
	}
	m.refresh()

	if wasActive && len(m.tabs) > 0 {
		neighbor := closedIdx - 1
		if neighbor < 0 {
			neighbor = 0
		}
		if err := m.uc.SetActiveTab(m.ctx, m.tabs[neighbor].ID); err != nil {
			m.errMsg = err.Error()
		}
		m.refresh()
	}
	m.statusMsg = fmt.Sprintf("closed %s", tab.Title)
	return m
}

// moveSelected swaps the selected tab with its neighbor by submitting the
// full reordered id list.
func (m TabsModel) moveSelected(direction int) TabsModel {
	target := m.selectedIdx + direction
	if target < 0 || target >= len(m.tabs) {
		return m
	}

	ids := make([]entity.TabID, len(m.tabs))
	for i, tab := range m.tabs {
		ids[i] = tab.ID
	}
	ids[m.selectedIdx], ids[target] = ids[target], ids[m.selectedIdx]

	if err := m.uc.ReorderTabs(m.ctx, ids); err != nil {
		m.errMsg = err.Error()
		return m
	}
	m.selectedIdx = target
	m.refresh()
	return m
}

// View implements tea.Model.
func (m TabsModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Workspace Tabs"))
	b.WriteString("\n\n")

	entries := make([]styles.TabStripEntry, len(m.tabs))
	for i, tab := range m.tabs {
		entries[i] = styles.TabStripEntry{
			Label:  tab.Title,
			Active: tab.ID == m.activeID,
			Pinned: tab.IsPinned,
		}
	}
	b.WriteString(m.theme.RenderTabStrip(entries))
	b.WriteString("\n\n")

	if len(m.tabs) == 0 {
		b.WriteString(m.theme.Subtle.Render("No open tabs. Use `tabwell navigate <path>` to open one."))
		b.WriteString("\n")
	}

	for i, tab := range m.tabs {
		line := fmt.Sprintf("%s  %s", tab.Title, m.theme.Subtle.Render(tab.Path))
		if tab.ID == m.activeID {
			line += m.theme.Highlight.Render("  (active)")
		}
		if tab.IsPinned {
			line = m.theme.PinnedBadge.Render("● ") + line
		}
		if i == m.selectedIdx {
			b.WriteString(m.theme.ListItemSelected.Render("▸ " + line))
		} else {
			b.WriteString(m.theme.ListItem.Render(line))
		}
		b.WriteString("\n")
	}

	if m.renaming {
		b.WriteString("\n")
		b.WriteString(m.theme.Normal.Render("New title: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Subtle.Render(m.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}
