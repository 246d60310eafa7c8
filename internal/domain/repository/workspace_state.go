package repository

import (
	"context"

	"github.com/bnema/tabwell/internal/domain/entity"
)

// WorkspaceStateRepository mirrors the workspace tab state to durable
// storage. The tab list and the active pointer are persisted under two
// independent keys so either can be rewritten alone.
//
// Loads must degrade rather than fail: malformed, partial, or missing
// persisted data yields an empty tab list / empty active id and a nil
// error. The workspace must never fail to start because of corrupted
// persisted state.
type WorkspaceStateRepository interface {
	// SaveTabs persists the full tab list in display order.
	SaveTabs(ctx context.Context, tabs []*entity.Tab) error

	// LoadTabs restores the persisted tab list. Missing or unreadable
	// state returns an empty list.
	LoadTabs(ctx context.Context) ([]*entity.Tab, error)

	// SaveActiveTab persists the active tab pointer. The empty id records
	// "no active tab".
	SaveActiveTab(ctx context.Context, id entity.TabID) error

	// LoadActiveTab restores the persisted active pointer. Missing or
	// unreadable state returns the empty id.
	LoadActiveTab(ctx context.Context) (entity.TabID, error)

	// Reset removes all persisted workspace state.
	Reset(ctx context.Context) error
}
