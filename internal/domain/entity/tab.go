package entity

import "time"

// TabID uniquely identifies a tab. IDs are opaque, stable for the tab's
// lifetime, and never reused after close. The empty string means "no tab"
// when used as an active pointer.
type TabID string

// TabKind distinguishes resource tabs (keyed by type+id) from generic
// page tabs.
type TabKind string

const (
	TabKindPage     TabKind = "page"
	TabKindResource TabKind = "resource"
)

// Tab represents one open place (route) in the workspace tab strip.
type Tab struct {
	ID        TabID   `json:"id"`
	Title     string  `json:"title"`
	Path      string  `json:"path"`
	Kind      TabKind `json:"kind"`
	Closeable bool    `json:"closeable"`
	IsPinned  bool    `json:"pinned"`

	// GroupKey identifies the reuse scope this tab belongs to. Among tabs
	// sharing a group key, at most one auto-titled tab is kept by the
	// navigation dedup search.
	GroupKey string `json:"groupKey,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	// CustomTitle is set once a user renames the tab. A renamed tab is
	// permanently excluded from being silently repurposed by navigation,
	// and its title survives synthetic updates to the same id.
	CustomTitle bool `json:"customTitle"`
}

// Clone returns a copy of the tab.
func (t *Tab) Clone() *Tab {
	c := *t
	return &c
}

// TabList manages an ordered collection of tabs plus the active-tab pointer.
// All mutations preserve two invariants: tab ids are unique within the list,
// and ActiveTabID, when non-empty, references an id present in the list.
type TabList struct {
	Tabs        []*Tab
	ActiveTabID TabID
}

// NewTabList creates an empty tab list.
func NewTabList() *TabList {
	return &TabList{
		Tabs: make([]*Tab, 0),
	}
}

// Find returns a tab by ID, or nil.
func (tl *TabList) Find(id TabID) *Tab {
	for _, tab := range tl.Tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// Add inserts a tab and makes it active. If a tab with the same id already
// exists the two records are merged in place: path, kind, closeable and
// group key are taken from the incoming tab, but the incoming title only
// overwrites the existing one when the existing tab has not been renamed.
// Otherwise the tab is appended.
func (tl *TabList) Add(tab *Tab) *Tab {
	existing := tl.Find(tab.ID)
	if existing == nil {
		tl.Tabs = append(tl.Tabs, tab)
		tl.ActiveTabID = tab.ID
		return tab
	}

	if !existing.CustomTitle {
		existing.Title = tab.Title
	}
	existing.Path = tab.Path
	existing.Kind = tab.Kind
	existing.Closeable = tab.Closeable
	existing.GroupKey = tab.GroupKey
	tl.ActiveTabID = existing.ID
	return existing
}

// Remove removes a tab by ID. If the removed tab was active the pointer
// becomes empty; electing a replacement is left to the caller.
func (tl *TabList) Remove(id TabID) bool {
	for i, tab := range tl.Tabs {
		if tab.ID == id {
			tl.Tabs = append(tl.Tabs[:i], tl.Tabs[i+1:]...)
			if tl.ActiveTabID == id {
				tl.ActiveTabID = ""
			}
			return true
		}
	}
	return false
}

// Rename sets the tab title and permanently marks it as custom. From then
// on path-based navigation must not overwrite the title.
func (tl *TabList) Rename(id TabID, title string) bool {
	tab := tl.Find(id)
	if tab == nil {
		return false
	}
	tab.Title = title
	tab.CustomTitle = true
	return true
}

// TogglePin flips the pinned flag. Pinning is a display hint only and does
// not reorder the list.
func (tl *TabList) TogglePin(id TabID) bool {
	tab := tl.Find(id)
	if tab == nil {
		return false
	}
	tab.IsPinned = !tab.IsPinned
	return true
}

// SetActive points the active pointer at the given tab. The empty id clears
// the pointer. Returns false when a non-empty id is not in the list.
func (tl *TabList) SetActive(id TabID) bool {
	if id == "" {
		tl.ActiveTabID = ""
		return true
	}
	if tl.Find(id) == nil {
		return false
	}
	tl.ActiveTabID = id
	return true
}

// ActiveTab returns the currently active tab, or nil.
func (tl *TabList) ActiveTab() *Tab {
	if tl.ActiveTabID == "" {
		return nil
	}
	return tl.Find(tl.ActiveTabID)
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.Tabs)
}

// Reorder rebuilds the list following orderedIDs for every id present in
// both the current list and orderedIDs. Tabs omitted from orderedIDs are
// appended afterward in their prior relative order; no tab is ever dropped,
// even by a partial reorder.
func (tl *TabList) Reorder(orderedIDs []TabID) {
	reordered := make([]*Tab, 0, len(tl.Tabs))
	seen := make(map[TabID]bool, len(orderedIDs))

	for _, id := range orderedIDs {
		if seen[id] {
			continue
		}
		if tab := tl.Find(id); tab != nil {
			reordered = append(reordered, tab)
			seen[id] = true
		}
	}
	for _, tab := range tl.Tabs {
		if !seen[tab.ID] {
			reordered = append(reordered, tab)
		}
	}

	tl.Tabs = reordered
}

// FindReusable searches for a tab the navigation pipeline may update in
// place instead of opening a new one. Exact path matches win; otherwise any
// tab in the same reuse group qualifies. Renamed tabs are never reused.
func (tl *TabList) FindReusable(path, groupKey string) *Tab {
	for _, tab := range tl.Tabs {
		if tab.Path == path && !tab.CustomTitle {
			return tab
		}
	}
	if groupKey == "" {
		return nil
	}
	for _, tab := range tl.Tabs {
		if tab.GroupKey == groupKey && !tab.CustomTitle {
			return tab
		}
	}
	return nil
}

// Snapshot returns a deep copy of the tabs in display order. Callers get an
// independent slice safe to hand to renderers.
func (tl *TabList) Snapshot() []*Tab {
	tabs := make([]*Tab, len(tl.Tabs))
	for i, tab := range tl.Tabs {
		tabs[i] = tab.Clone()
	}
	return tabs
}
