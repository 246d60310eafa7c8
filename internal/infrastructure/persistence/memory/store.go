// Package memory provides an in-memory workspace state store, used by tests
// and ephemeral runs where nothing should touch disk.
package memory

import (
	"context"
	"encoding/json"

	"github.com/bnema/tabwell/internal/domain/entity"
	"github.com/bnema/tabwell/internal/domain/repository"
)

type store struct {
	tabs   []byte
	active []byte
}

// NewWorkspaceStateRepository creates an empty in-memory state store.
func NewWorkspaceStateRepository() repository.WorkspaceStateRepository {
	return &store{}
}

func (s *store) SaveTabs(_ context.Context, tabs []*entity.Tab) error {
	if tabs == nil {
		tabs = []*entity.Tab{}
	}
	value, err := json.Marshal(tabs)
	if err != nil {
		return err
	}
	s.tabs = value
	return nil
}

func (s *store) LoadTabs(_ context.Context) ([]*entity.Tab, error) {
	if s.tabs == nil {
		return []*entity.Tab{}, nil
	}
	var tabs []*entity.Tab
	if err := json.Unmarshal(s.tabs, &tabs); err != nil {
		return []*entity.Tab{}, nil
	}
	if tabs == nil {
		tabs = []*entity.Tab{}
	}
	return tabs, nil
}

func (s *store) SaveActiveTab(_ context.Context, id entity.TabID) error {
	if id == "" {
		s.active = []byte("null")
		return nil
	}
	value, err := json.Marshal(string(id))
	if err != nil {
		return err
	}
	s.active = value
	return nil
}

func (s *store) LoadActiveTab(_ context.Context) (entity.TabID, error) {
	if s.active == nil {
		return "", nil
	}
	var id *string
	if err := json.Unmarshal(s.active, &id); err != nil || id == nil {
		return "", nil
	}
	return entity.TabID(*id), nil
}

func (s *store) Reset(_ context.Context) error {
	s.tabs = nil
	s.active = nil
	return nil
}
