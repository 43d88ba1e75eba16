package store

import (
	"context"
	"encoding/json"
	"fmt"

	"newsdesk/internal/client/models"
	"newsdesk/internal/client/repositories/kv"
)

// Snapshots keeps exactly one "last known good" reconciled snapshot per
// logical list. When every live fetch attempt fails, the caller serves the
// snapshot in degraded mode instead of an error.
type Snapshots interface {
	Save(ctx context.Context, list string, items []models.Item) error

	// Load returns the snapshot for list, or (nil, nil) when none was ever
	// captured.
	Load(ctx context.Context, list string) ([]models.Item, error)
}

type snapshotStore struct {
	repo kv.Repository
}

func NewSnapshots(repo kv.Repository) Snapshots {
	return &snapshotStore{repo: repo}
}

func (s *snapshotStore) Save(ctx context.Context, list string, items []models.Item) error {
	if items == nil {
		items = []models.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding snapshot for %s: %w", list, err)
	}
	if err := s.repo.Set(ctx, cacheKeyPrefix+list, data); err != nil {
		return fmt.Errorf("writing snapshot for %s: %w", list, err)
	}
	return nil
}

func (s *snapshotStore) Load(ctx context.Context, list string) ([]models.Item, error) {
	data, err := s.repo.Get(ctx, cacheKeyPrefix+list)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot for %s: %w", list, err)
	}
	if data == nil {
		return nil, nil
	}

	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding snapshot for %s: %w", list, err)
	}
	return items, nil
}
