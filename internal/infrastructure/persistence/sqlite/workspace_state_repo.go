package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/tabwell/internal/domain/entity"
	"github.com/bnema/tabwell/internal/domain/repository"
	"github.com/bnema/tabwell/internal/logging"
)

// Persisted state lives under two independent keys so the tab list and the
// active pointer can be rewritten separately.
const (
	keyTabs      = "tabs"
	keyActiveTab = "active_tab"
)

type workspaceStateRepo struct {
	db *sql.DB
}

// NewWorkspaceStateRepository creates a SQLite-backed workspace state store.
func NewWorkspaceStateRepository(db *sql.DB) repository.WorkspaceStateRepository {
	return &workspaceStateRepo{db: db}
}

func (r *workspaceStateRepo) SaveTabs(ctx context.Context, tabs []*entity.Tab) error {
	if tabs == nil {
		tabs = []*entity.Tab{}
	}
	value, err := json.Marshal(tabs)
	if err != nil {
		return fmt.Errorf("marshal tabs: %w", err)
	}
	return r.put(ctx, keyTabs, string(value))
}

func (r *workspaceStateRepo) LoadTabs(ctx context.Context) ([]*entity.Tab, error) {
	log := logging.FromContext(ctx)

	value, ok, err := r.get(ctx, keyTabs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*entity.Tab{}, nil
	}

	var tabs []*entity.Tab
	if err := json.Unmarshal([]byte(value), &tabs); err != nil {
		// Corrupted state must not prevent startup; the previous session
		// is simply not restored.
		log.Warn().Err(err).Msg("persisted tab list is malformed, starting empty")
		return []*entity.Tab{}, nil
	}
	if tabs == nil {
		tabs = []*entity.Tab{}
	}
	return tabs, nil
}

func (r *workspaceStateRepo) SaveActiveTab(ctx context.Context, id entity.TabID) error {
	value, err := json.Marshal(activeTabValue(id))
	if err != nil {
		return fmt.Errorf("marshal active tab: %w", err)
	}
	return r.put(ctx, keyActiveTab, string(value))
}

func (r *workspaceStateRepo) LoadActiveTab(ctx context.Context) (entity.TabID, error) {
	log := logging.FromContext(ctx)

	value, ok, err := r.get(ctx, keyActiveTab)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	var id *string
	if err := json.Unmarshal([]byte(value), &id); err != nil {
		log.Warn().Err(err).Msg("persisted active tab is malformed, clearing")
		return "", nil
	}
	if id == nil {
		return "", nil
	}
	return entity.TabID(*id), nil
}

func (r *workspaceStateRepo) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM workspace_state`)
	return err
}

func (r *workspaceStateRepo) put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspace_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (r *workspaceStateRepo) get(ctx context.Context, key string) (value string, found bool, err error) {
	err = r.db.QueryRowContext(ctx, `SELECT value FROM workspace_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// activeTabValue maps the empty id to JSON null, matching the persisted
// "string or null" layout.
func activeTabValue(id entity.TabID) *string {
	if id == "" {
		return nil
	}
	s := string(id)
	return &s
}
