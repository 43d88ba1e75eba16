package store

import (
	"context"
	"encoding/json"
	"fmt"

	"newsdesk/internal/client/repositories/kv"
)

// Tombstones is the persisted set of locally-deleted item ids. A tombstoned
// id is excluded from every reconciled output no matter what the server
// returns. There is no remove operation: deletions are permanent from the
// client's perspective.
type Tombstones interface {
	// Add records id as deleted. Duplicates are suppressed; insertion order
	// of distinct ids is preserved.
	Add(ctx context.Context, id string) error

	Contains(ctx context.Context, id string) (bool, error)

	// All returns every tombstoned id in insertion order.
	All(ctx context.Context) ([]string, error)
}

type tombstoneSet struct {
	repo kv.Repository
}

func NewTombstones(repo kv.Repository) Tombstones {
	return &tombstoneSet{repo: repo}
}

func (s *tombstoneSet) load(ctx context.Context) ([]string, error) {
	data, err := s.repo.Get(ctx, tombstonesKey)
	if err != nil {
		return nil, fmt.Errorf("reading tombstones: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decoding tombstones: %w", err)
	}
	return ids, nil
}

func (s *tombstoneSet) Add(ctx context.Context, id string) error {
	ids, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	ids = append(ids, id)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding tombstones: %w", err)
	}
	if err := s.repo.Set(ctx, tombstonesKey, data); err != nil {
		return fmt.Errorf("writing tombstones: %w", err)
	}
	return nil
}

func (s *tombstoneSet) Contains(ctx context.Context, id string) (bool, error) {
	ids, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range ids {
		if existing == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *tombstoneSet) All(ctx context.Context) ([]string, error) {
	return s.load(ctx)
}
