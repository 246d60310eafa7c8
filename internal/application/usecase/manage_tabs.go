// Package usecase contains the application services driving the workspace
// tab state.
package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tabwell/internal/domain/entity"
	"github.com/bnema/tabwell/internal/domain/repository"
	"github.com/bnema/tabwell/internal/domain/route"
	"github.com/bnema/tabwell/internal/logging"
)

// ManageTabsUseCase owns the workspace tab list and the active-tab pointer.
// All operations are synchronous reducers applied in call order; every
// mutation is followed by a write-through save of the full state before the
// call returns, so a paired load always sees post-mutation state.
type ManageTabsUseCase struct {
	tabs      *entity.TabList
	resolver  *route.Resolver
	stateRepo repository.WorkspaceStateRepository
}

// NewManageTabsUseCase creates the tab management use case. The state
// repository is injectable so independent instances can exist under test.
func NewManageTabsUseCase(resolver *route.Resolver, stateRepo repository.WorkspaceStateRepository) *ManageTabsUseCase {
	return &ManageTabsUseCase{
		tabs:      entity.NewTabList(),
		resolver:  resolver,
		stateRepo: stateRepo,
	}
}

// Load restores the persisted tab list and active pointer. Corrupted or
// missing state degrades to an empty workspace; a persisted active id that
// no longer matches a tab is cleared rather than left dangling.
func (uc *ManageTabsUseCase) Load(ctx context.Context) error {
	log := logging.FromContext(ctx)

	tabs, err := uc.stateRepo.LoadTabs(ctx)
	if err != nil {
		return fmt.Errorf("load tabs: %w", err)
	}
	activeID, err := uc.stateRepo.LoadActiveTab(ctx)
	if err != nil {
		return fmt.Errorf("load active tab: %w", err)
	}

	list := entity.NewTabList()
	for _, tab := range tabs {
		if tab == nil || tab.ID == "" {
			continue
		}
		// Restores must not resurrect duplicate ids.
		if list.Find(tab.ID) != nil {
			log.Warn().Str("tab_id", string(tab.ID)).Msg("dropping duplicate persisted tab")
			continue
		}
		list.Tabs = append(list.Tabs, tab)
	}
	if activeID != "" && list.Find(activeID) == nil {
		log.Warn().Str("tab_id", string(activeID)).Msg("persisted active tab not found, clearing")
		activeID = ""
	}
	list.ActiveTabID = activeID
	uc.tabs = list

	log.Debug().
		Int("tab_count", list.Count()).
		Str("active_tab", string(activeID)).
		Msg("workspace state restored")
	return nil
}

// Navigate handles a path-based navigation event. The path is resolved to a
// candidate tab; on a reuse hit the existing tab is updated in place (id,
// pin and position preserved) and made active, on a miss the candidate is
// appended and made active. Unmapped paths are a no-op and return nil.
func (uc *ManageTabsUseCase) Navigate(ctx context.Context, pathname, titleOverride string) (*entity.Tab, error) {
	log := logging.FromContext(ctx)

	candidate := uc.resolver.Resolve(pathname, route.Options{TitleOverride: titleOverride})
	if candidate == nil {
		log.Debug().Str("path", pathname).Msg("path has no tab representation")
		return nil, nil
	}

	if existing := uc.tabs.FindReusable(candidate.Path, candidate.GroupKey); existing != nil {
		existing.Title = candidate.Title
		existing.Path = candidate.Path
		existing.Kind = candidate.Kind
		existing.Closeable = candidate.Closeable
		existing.GroupKey = candidate.GroupKey
		uc.tabs.SetActive(existing.ID)

		log.Info().
			Str("tab_id", string(existing.ID)).
			Str("path", existing.Path).
			Msg("navigation reused tab")
		return existing.Clone(), uc.persist(ctx)
	}

	uc.tabs.Add(candidate)
	log.Info().
		Str("tab_id", string(candidate.ID)).
		Str("path", candidate.Path).
		Int("tab_count", uc.tabs.Count()).
		Msg("navigation opened tab")
	return candidate.Clone(), uc.persist(ctx)
}

// OpenNewTabForPath resolves the path and always appends a new tab,
// bypassing the reuse search ("open in new tab"). Unmapped paths are a
// no-op and return nil.
func (uc *ManageTabsUseCase) OpenNewTabForPath(ctx context.Context, pathname, titleOverride string) (*entity.Tab, error) {
	log := logging.FromContext(ctx)

	candidate := uc.resolver.Resolve(pathname, route.Options{TitleOverride: titleOverride})
	if candidate == nil {
		log.Debug().Str("path", pathname).Msg("path has no tab representation")
		return nil, nil
	}

	uc.tabs.Add(candidate)
	log.Info().
		Str("tab_id", string(candidate.ID)).
		Str("path", candidate.Path).
		Msg("opened forced new tab")
	return candidate.Clone(), uc.persist(ctx)
}

// OpenResourceTab opens a tab for a resource identified by type and id,
// bypassing path resolution and the reuse search.
func (uc *ManageTabsUseCase) OpenResourceTab(ctx context.Context, resourceType, resourceID string) (*entity.Tab, error) {
	if resourceType == "" || resourceID == "" {
		return nil, fmt.Errorf("resource type and id are required")
	}

	tab := uc.resolver.NewResourceTab(resourceType, resourceID)
	added := uc.tabs.Add(tab)

	logging.FromContext(ctx).Info().
		Str("tab_id", string(added.ID)).
		Str("path", added.Path).
		Msg("opened resource tab")
	return added.Clone(), uc.persist(ctx)
}

// CloseTab removes a tab. Closing the active tab clears the active pointer;
// electing a replacement is a caller decision.
func (uc *ManageTabsUseCase) CloseTab(ctx context.Context, id entity.TabID) error {
	log := logging.FromContext(ctx)

	if !uc.tabs.Remove(id) {
		log.Debug().Str("tab_id", string(id)).Msg("close: tab not found")
		return nil
	}

	log.Info().
		Str("tab_id", string(id)).
		Int("remaining", uc.tabs.Count()).
		Str("active_tab", string(uc.tabs.ActiveTabID)).
		Msg("tab closed")
	return uc.persist(ctx)
}

// RenameTab sets a custom title. The tab keeps that title through all
// subsequent path-based navigation updates.
func (uc *ManageTabsUseCase) RenameTab(ctx context.Context, id entity.TabID, title string) error {
	if !uc.tabs.Rename(id, title) {
		return fmt.Errorf("tab not found: %s", id)
	}

	logging.FromContext(ctx).Info().
		Str("tab_id", string(id)).
		Str("title", title).
		Msg("tab renamed")
	return uc.persist(ctx)
}

// TogglePinTab flips a tab's pinned flag without reordering the list.
func (uc *ManageTabsUseCase) TogglePinTab(ctx context.Context, id entity.TabID) error {
	if !uc.tabs.TogglePin(id) {
		return fmt.Errorf("tab not found: %s", id)
	}

	tab := uc.tabs.Find(id)
	logging.FromContext(ctx).Info().
		Str("tab_id", string(id)).
		Bool("pinned", tab.IsPinned).
		Msg("tab pin state changed")
	return uc.persist(ctx)
}

// ReorderTabs rebuilds the display order from orderedIDs; tabs omitted from
// the list keep their prior relative order at the end.
func (uc *ManageTabsUseCase) ReorderTabs(ctx context.Context, orderedIDs []entity.TabID) error {
	uc.tabs.Reorder(orderedIDs)

	logging.FromContext(ctx).Debug().
		Int("tab_count", uc.tabs.Count()).
		Msg("tabs reordered")
	return uc.persist(ctx)
}

// SetActiveTab points the active pointer at a tab, or clears it with the
// empty id.
func (uc *ManageTabsUseCase) SetActiveTab(ctx context.Context, id entity.TabID) error {
	if !uc.tabs.SetActive(id) {
		return fmt.Errorf("tab not found: %s", id)
	}

	logging.FromContext(ctx).Debug().
		Str("tab_id", string(id)).
		Msg("active tab changed")
	return uc.persist(ctx)
}

// SwitchNext activates the next tab in display order, wrapping around.
func (uc *ManageTabsUseCase) SwitchNext(ctx context.Context) error {
	return uc.switchBy(ctx, 1)
}

// SwitchPrevious activates the previous tab in display order, wrapping
// around.
func (uc *ManageTabsUseCase) SwitchPrevious(ctx context.Context) error {
	return uc.switchBy(ctx, -1)
}

func (uc *ManageTabsUseCase) switchBy(ctx context.Context, direction int) error {
	count := uc.tabs.Count()
	if count == 0 {
		return nil
	}

	current := 0
	if active := uc.tabs.ActiveTab(); active != nil {
		for i, tab := range uc.tabs.Tabs {
			if tab.ID == active.ID {
				current = i
				break
			}
		}
		current = (current + direction + count) % count
	}
	return uc.SetActiveTab(ctx, uc.tabs.Tabs[current].ID)
}

// Tabs returns a copy of the current tabs in display order. The renderer
// must never mutate workspace state directly; all changes flow through the
// operations above.
func (uc *ManageTabsUseCase) Tabs() []*entity.Tab {
	return uc.tabs.Snapshot()
}

// ActiveTabID returns the active tab pointer; empty means none.
func (uc *ManageTabsUseCase) ActiveTabID() entity.TabID {
	return uc.tabs.ActiveTabID
}

// Find returns a copy of the tab with the given id, or nil.
func (uc *ManageTabsUseCase) Find(id entity.TabID) *entity.Tab {
	tab := uc.tabs.Find(id)
	if tab == nil {
		return nil
	}
	return tab.Clone()
}

// persist mirrors the in-memory state to storage: the tab list and the
// active pointer under their own keys, in the same synchronous step as the
// mutation that preceded it.
func (uc *ManageTabsUseCase) persist(ctx context.Context) error {
	if err := uc.stateRepo.SaveTabs(ctx, uc.tabs.Tabs); err != nil {
		return fmt.Errorf("save tabs: %w", err)
	}
	if err := uc.stateRepo.SaveActiveTab(ctx, uc.tabs.ActiveTabID); err != nil {
		return fmt.Errorf("save active tab: %w", err)
	}
	return nil
}
