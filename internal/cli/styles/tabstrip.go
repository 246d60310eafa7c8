package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TabStripEntry is one rendered slot in the horizontal tab strip.
type TabStripEntry struct {
	Label  string
	Active bool
	Pinned bool
}

// RenderTabStrip draws a horizontal tab bar from the given entries.
func (t *Theme) RenderTabStrip(entries []TabStripEntry) string {
	if len(entries) == 0 {
		return t.Subtle.Render("(no tabs)")
	}

	gap := lipgloss.NewStyle().Foreground(t.Border).Render(" │ ")

	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteString(gap)
		}
		label := entry.Label
		if entry.Pinned {
			label = "● " + label
		}
		style := t.InactiveTab
		if entry.Active {
			style = t.ActiveTab
		}
		b.WriteString(style.Render(label))
	}
	return b.String()
}
