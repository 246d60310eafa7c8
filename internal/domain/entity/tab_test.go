package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTab(id, title, path, groupKey string) *Tab {
	return &Tab{
		ID:        TabID(id),
		Title:     title,
		Path:      path,
		Kind:      TabKindPage,
		Closeable: true,
		GroupKey:  groupKey,
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestTabList_AddAppendsAndActivates(t *testing.T) {
	tl := NewTabList()

	a := tl.Add(newTestTab("a", "A", "/console", "/console"))
	assert.Equal(t, 1, tl.Count())
	assert.Equal(t, TabID("a"), tl.ActiveTabID)
	assert.Same(t, a, tl.Tabs[0])

	tl.Add(newTestTab("b", "B", "/logs", "/logs"))
	assert.Equal(t, 2, tl.Count())
	assert.Equal(t, TabID("b"), tl.ActiveTabID)
}

func TestTabList_AddMergesByID(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "Patient/1", "/resources/Patient/1", "/resources"))

	update := newTestTab("a", "Patient/2", "/resources/Patient/2", "/resources")
	merged := tl.Add(update)

	require.Equal(t, 1, tl.Count(), "merge must not duplicate the id")
	assert.Equal(t, "Patient/2", merged.Title)
	assert.Equal(t, "/resources/Patient/2", merged.Path)
	assert.Equal(t, TabID("a"), tl.ActiveTabID)
}

func TestTabList_AddPreservesCustomTitle(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "Patient/1", "/resources/Patient/1", "/resources"))
	require.True(t, tl.Rename("a", "My Patient"))

	// A synthetic update to the same id must not clobber the rename.
	tl.Add(newTestTab("a", "Patient/1", "/resources/Patient/1", "/resources"))

	tab := tl.Find("a")
	require.NotNil(t, tab)
	assert.Equal(t, "My Patient", tab.Title)
	assert.True(t, tab.CustomTitle)
}

func TestTabList_RemoveClearsActivePointer(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "A", "/console", "/console"))
	tl.Add(newTestTab("b", "B", "/logs", "/logs"))
	require.Equal(t, TabID("b"), tl.ActiveTabID)

	// Closing a non-active tab leaves the pointer alone.
	require.True(t, tl.Remove("a"))
	assert.Equal(t, TabID("b"), tl.ActiveTabID)

	// Closing the active tab clears it; no dangling id, no auto-election.
	require.True(t, tl.Remove("b"))
	assert.Equal(t, TabID(""), tl.ActiveTabID)
	assert.Nil(t, tl.ActiveTab())
}

func TestTabList_RemoveUnknownID(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "A", "/console", "/console"))

	assert.False(t, tl.Remove("missing"))
	assert.Equal(t, 1, tl.Count())
}

func TestTabList_RenameSticks(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "A", "/console", "/console"))

	require.True(t, tl.Rename("a", "My Tab"))
	tab := tl.Find("a")
	assert.Equal(t, "My Tab", tab.Title)
	assert.True(t, tab.CustomTitle)

	assert.False(t, tl.Rename("missing", "X"))
}

func TestTabList_TogglePinDoesNotReorder(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "A", "/console", "/console"))
	tl.Add(newTestTab("b", "B", "/logs", "/logs"))

	require.True(t, tl.TogglePin("a"))
	assert.True(t, tl.Find("a").IsPinned)
	assert.Equal(t, TabID("a"), tl.Tabs[0].ID)
	assert.Equal(t, TabID("b"), tl.Tabs[1].ID)

	require.True(t, tl.TogglePin("a"))
	assert.False(t, tl.Find("a").IsPinned)
}

func TestTabList_ReorderPartialKeepsOmitted(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "A", "/a", ""))
	tl.Add(newTestTab("b", "B", "/b", ""))
	tl.Add(newTestTab("c", "C", "/c", ""))

	tl.Reorder([]TabID{"b", "a"})

	require.Equal(t, 3, tl.Count(), "partial reorder must not drop tabs")
	assert.Equal(t, TabID("b"), tl.Tabs[0].ID)
	assert.Equal(t, TabID("a"), tl.Tabs[1].ID)
	assert.Equal(t, TabID("c"), tl.Tabs[2].ID)
}

func TestTabList_ReorderIgnoresUnknownAndDuplicateIDs(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "A", "/a", ""))
	tl.Add(newTestTab("b", "B", "/b", ""))

	tl.Reorder([]TabID{"b", "ghost", "b", "a"})

	require.Equal(t, 2, tl.Count())
	assert.Equal(t, TabID("b"), tl.Tabs[0].ID)
	assert.Equal(t, TabID("a"), tl.Tabs[1].ID)
}

func TestTabList_SetActive(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "A", "/a", ""))
	tl.Add(newTestTab("b", "B", "/b", ""))

	assert.True(t, tl.SetActive("a"))
	assert.Equal(t, TabID("a"), tl.ActiveTabID)

	assert.False(t, tl.SetActive("missing"))
	assert.Equal(t, TabID("a"), tl.ActiveTabID, "failed SetActive must not move the pointer")

	assert.True(t, tl.SetActive(""))
	assert.Equal(t, TabID(""), tl.ActiveTabID)
}

func TestTabList_FindReusable(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "Patient/1", "/resources/Patient/1", "/resources"))
	tl.Add(newTestTab("b", "Console", "/console", "/console"))

	// Exact path match wins.
	got := tl.FindReusable("/resources/Patient/1", "/resources")
	require.NotNil(t, got)
	assert.Equal(t, TabID("a"), got.ID)

	// Group fallback when the exact path is not open.
	got = tl.FindReusable("/resources/Observation/2", "/resources")
	require.NotNil(t, got)
	assert.Equal(t, TabID("a"), got.ID)

	// No group key, no exact match: nothing.
	assert.Nil(t, tl.FindReusable("/nowhere", ""))
}

func TestTabList_FindReusableSkipsRenamedTabs(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "Patient/1", "/resources/Patient/1", "/resources"))
	require.True(t, tl.Rename("a", "Pinned Patient"))

	// A renamed tab is permanently excluded from reuse, even on exact path.
	assert.Nil(t, tl.FindReusable("/resources/Patient/1", "/resources"))
	assert.Nil(t, tl.FindReusable("/resources/Observation/2", "/resources"))
}

func TestTabList_SnapshotIsIndependent(t *testing.T) {
	tl := NewTabList()
	tl.Add(newTestTab("a", "A", "/a", ""))

	snap := tl.Snapshot()
	require.Len(t, snap, 1)
	snap[0].Title = "mutated"

	assert.Equal(t, "A", tl.Find("a").Title, "snapshot mutation must not reach the store")
}
