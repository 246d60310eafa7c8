package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabwell/internal/application/usecase"
	"github.com/bnema/tabwell/internal/domain/entity"
	"github.com/bnema/tabwell/internal/domain/repository"
	"github.com/bnema/tabwell/internal/domain/route"
	"github.com/bnema/tabwell/internal/infrastructure/persistence/memory"
)

func newTestUseCase(t *testing.T) (*usecase.ManageTabsUseCase, repository.WorkspaceStateRepository) {
	t.Helper()

	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	now := func() time.Time {
		return time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	}

	repo := memory.NewWorkspaceStateRepository()
	resolver := route.NewResolver(nil, newID, now)
	return usecase.NewManageTabsUseCase(resolver, repo), repo
}

func TestNavigate_OpensAndActivates(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	tab, err := uc.Navigate(ctx, "/resources/Patient/123", "")
	require.NoError(t, err)
	require.NotNil(t, tab)

	assert.Equal(t, "Patient/123", tab.Title)
	assert.Equal(t, entity.TabKindResource, tab.Kind)
	assert.Len(t, uc.Tabs(), 1)
	assert.Equal(t, tab.ID, uc.ActiveTabID())
}

func TestNavigate_UnmappedPathIsNoOp(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	tab, err := uc.Navigate(ctx, "/nonexistent/path", "")
	require.NoError(t, err)
	assert.Nil(t, tab)
	assert.Empty(t, uc.Tabs())
	assert.Equal(t, entity.TabID(""), uc.ActiveTabID())
}

func TestNavigate_Idempotent(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	first, err := uc.Navigate(ctx, "/resources/Patient/1", "")
	require.NoError(t, err)
	second, err := uc.Navigate(ctx, "/resources/Patient/1", "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, uc.Tabs(), 1, "navigating the same path twice keeps one tab")
}

func TestNavigate_ReusesGroupScope(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	first, err := uc.Navigate(ctx, "/resources/Patient/1", "")
	require.NoError(t, err)
	second, err := uc.Navigate(ctx, "/resources/Observation/2", "")
	require.NoError(t, err)

	// Same tab id throughout: the /resources scope holds one auto-titled tab.
	assert.Equal(t, first.ID, second.ID)
	tabs := uc.Tabs()
	require.Len(t, tabs, 1)
	assert.Equal(t, "Observation/2", tabs[0].Title)
	assert.Equal(t, "/resources/Observation/2", tabs[0].Path)
	assert.Equal(t, second.ID, uc.ActiveTabID())
}

func TestNavigate_ReusePreservesPinAndPosition(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	first, err := uc.Navigate(ctx, "/resources/Patient/1", "")
	require.NoError(t, err)
	_, err = uc.OpenNewTabForPath(ctx, "/console", "")
	require.NoError(t, err)
	require.NoError(t, uc.TogglePinTab(ctx, first.ID))

	second, err := uc.Navigate(ctx, "/resources/Observation/2", "")
	require.NoError(t, err)

	tabs := uc.Tabs()
	require.Len(t, tabs, 2)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ID, tabs[0].ID, "reuse keeps the tab's position")
	assert.True(t, tabs[0].IsPinned, "reuse keeps the pin flag")
}

func TestNavigate_RenameStickiness(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	tab, err := uc.Navigate(ctx, "/resources/Patient/1", "")
	require.NoError(t, err)
	require.NoError(t, uc.RenameTab(ctx, tab.ID, "My Tab"))

	// The renamed tab may not be silently repurposed: this navigation
	// opens a second tab instead of reusing the first.
	next, err := uc.Navigate(ctx, "/resources/Observation/2", "")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.NotEqual(t, tab.ID, next.ID)

	tabs := uc.Tabs()
	require.Len(t, tabs, 2)
	assert.Equal(t, "My Tab", tabs[0].Title)
}

func TestOpenNewTabForPath_BypassesReuse(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	first, err := uc.Navigate(ctx, "/resources/Patient/1", "")
	require.NoError(t, err)
	second, err := uc.OpenNewTabForPath(ctx, "/resources/Patient/1", "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, uc.Tabs(), 2, "forced open always appends")
	assert.Equal(t, second.ID, uc.ActiveTabID())
}

func TestOpenResourceTab(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	tab, err := uc.OpenResourceTab(ctx, "Patient", "123")
	require.NoError(t, err)
	assert.Equal(t, "Patient/123", tab.Title)
	assert.Equal(t, "/resources/Patient/123", tab.Path)
	assert.Equal(t, entity.TabKindResource, tab.Kind)
	assert.Equal(t, tab.ID, uc.ActiveTabID())

	// Opening the same resource again appends: the action bypasses the
	// reuse search.
	again, err := uc.OpenResourceTab(ctx, "Patient", "123")
	require.NoError(t, err)
	assert.NotEqual(t, tab.ID, again.ID)
	assert.Len(t, uc.Tabs(), 2)

	_, err = uc.OpenResourceTab(ctx, "", "123")
	assert.Error(t, err)
}

func TestCloseTab_ActiveSemantics(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	a, err := uc.Navigate(ctx, "/console", "")
	require.NoError(t, err)
	b, err := uc.OpenNewTabForPath(ctx, "/logs", "")
	require.NoError(t, err)
	require.Equal(t, b.ID, uc.ActiveTabID())

	// Closing a non-active tab leaves the pointer unchanged.
	require.NoError(t, uc.CloseTab(ctx, a.ID))
	assert.Equal(t, b.ID, uc.ActiveTabID())

	// Closing the active tab clears the pointer.
	require.NoError(t, uc.CloseTab(ctx, b.ID))
	assert.Equal(t, entity.TabID(""), uc.ActiveTabID())

	// Closing an unknown id is a no-op.
	require.NoError(t, uc.CloseTab(ctx, "missing"))
}

func TestReorderTabs_PartialList(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	a, _ := uc.OpenNewTabForPath(ctx, "/console", "")
	b, _ := uc.OpenNewTabForPath(ctx, "/logs", "")
	c, _ := uc.OpenNewTabForPath(ctx, "/settings", "")

	require.NoError(t, uc.ReorderTabs(ctx, []entity.TabID{b.ID, a.ID}))

	tabs := uc.Tabs()
	require.Len(t, tabs, 3)
	assert.Equal(t, b.ID, tabs[0].ID)
	assert.Equal(t, a.ID, tabs[1].ID)
	assert.Equal(t, c.ID, tabs[2].ID, "omitted tab is appended in prior order")
}

func TestSwitchNextPrevious_WrapAround(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCase(t)

	a, _ := uc.OpenNewTabForPath(ctx, "/console", "")
	b, _ := uc.OpenNewTabForPath(ctx, "/logs", "")
	c, _ := uc.OpenNewTabForPath(ctx, "/settings", "")
	require.Equal(t, c.ID, uc.ActiveTabID())

	require.NoError(t, uc.SwitchNext(ctx))
	assert.Equal(t, a.ID, uc.ActiveTabID(), "next wraps to the first tab")

	require.NoError(t, uc.SwitchPrevious(ctx))
	assert.Equal(t, c.ID, uc.ActiveTabID(), "previous wraps to the last tab")

	require.NoError(t, uc.SwitchNext(ctx))
	assert.Equal(t, a.ID, uc.ActiveTabID())
	require.NoError(t, uc.SwitchNext(ctx))
	assert.Equal(t, b.ID, uc.ActiveTabID())
}

func TestWriteThroughPersistence(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCase(t)

	tab, err := uc.Navigate(ctx, "/resources/Patient/1", "")
	require.NoError(t, err)

	// Every mutation is mirrored to storage before the call returns.
	saved, err := repo.LoadTabs(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, tab.ID, saved[0].ID)

	active, err := repo.LoadActiveTab(ctx)
	require.NoError(t, err)
	assert.Equal(t, tab.ID, active)

	require.NoError(t, uc.CloseTab(ctx, tab.ID))
	saved, err = repo.LoadTabs(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved)

	active, err = repo.LoadActiveTab(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.TabID(""), active)
}

func TestLoad_RestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCase(t)

	a, _ := uc.OpenNewTabForPath(ctx, "/console", "")
	b, _ := uc.OpenNewTabForPath(ctx, "/logs", "")
	require.NoError(t, uc.SetActiveTab(ctx, a.ID))

	// A second instance over the same storage sees the same workspace.
	resolver := route.NewResolver(nil, nil, nil)
	restored := usecase.NewManageTabsUseCase(resolver, repo)
	require.NoError(t, restored.Load(ctx))

	tabs := restored.Tabs()
	require.Len(t, tabs, 2)
	assert.Equal(t, a.ID, tabs[0].ID)
	assert.Equal(t, b.ID, tabs[1].ID)
	assert.Equal(t, a.ID, restored.ActiveTabID())
}

func TestLoad_ClearsDanglingActivePointer(t *testing.T) {
	ctx := context.Background()
	_, repo := newTestUseCase(t)

	require.NoError(t, repo.SaveTabs(ctx, []*entity.Tab{
		{ID: "a", Title: "A", Path: "/console", Kind: entity.TabKindPage},
	}))
	require.NoError(t, repo.SaveActiveTab(ctx, "ghost"))

	resolver := route.NewResolver(nil, nil, nil)
	uc := usecase.NewManageTabsUseCase(resolver, repo)
	require.NoError(t, uc.Load(ctx))

	assert.Len(t, uc.Tabs(), 1)
	assert.Equal(t, entity.TabID(""), uc.ActiveTabID(), "restored pointer must never dangle")
}

func TestLoad_DropsDuplicatePersistedIDs(t *testing.T) {
	ctx := context.Background()
	_, repo := newTestUseCase(t)

	require.NoError(t, repo.SaveTabs(ctx, []*entity.Tab{
		{ID: "a", Title: "First", Path: "/console", Kind: entity.TabKindPage},
		{ID: "a", Title: "Second", Path: "/logs", Kind: entity.TabKindPage},
	}))

	resolver := route.NewResolver(nil, nil, nil)
	uc := usecase.NewManageTabsUseCase(resolver, repo)
	require.NoError(t, uc.Load(ctx))

	tabs := uc.Tabs()
	require.Len(t, tabs, 1)
	assert.Equal(t, "First", tabs[0].Title)
}
