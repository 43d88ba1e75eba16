package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"newsdesk/internal/client/models"
	"newsdesk/internal/client/repositories/kv"
)

// Overrides holds, per item id, the partial set of field values representing
// unconfirmed local edits. Exactly one record exists per id: a write
// replaces the stored partial wholesale. Records never expire and are never
// reconciled away by server snapshots; only an explicit Clear removes one.
type Overrides interface {
	// Write persists/replaces the override for id, stamping writtenAt with
	// the current time. Field values are not validated; callers supply only
	// the fields being changed.
	Write(ctx context.Context, id string, fields models.Partial) error

	// Read returns the override for id, or nil when none exists.
	Read(ctx context.Context, id string) (*models.Override, error)

	// Clear removes the override for id.
	Clear(ctx context.Context, id string) error

	// All returns every stored override keyed by item id.
	All(ctx context.Context) (map[string]models.Override, error)
}

type overrideStore struct {
	repo kv.Repository
	now  func() time.Time
}

func NewOverrides(repo kv.Repository) Overrides {
	return &overrideStore{repo: repo, now: time.Now}
}

func (s *overrideStore) Write(ctx context.Context, id string, fields models.Partial) error {
	fields.ID = id
	record := models.Override{Fields: fields, WrittenAt: s.now().UTC()}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding override for %s: %w", id, err)
	}
	if err := s.repo.Set(ctx, overrideKeyPrefix+id, data); err != nil {
		return fmt.Errorf("writing override for %s: %w", id, err)
	}
	return nil
}

func (s *overrideStore) Read(ctx context.Context, id string) (*models.Override, error) {
	data, err := s.repo.Get(ctx, overrideKeyPrefix+id)
	if err != nil {
		return nil, fmt.Errorf("reading override for %s: %w", id, err)
	}
	if data == nil {
		return nil, nil
	}

	var record models.Override
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding override for %s: %w", id, err)
	}
	return &record, nil
}

func (s *overrideStore) Clear(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, overrideKeyPrefix+id); err != nil {
		return fmt.Errorf("clearing override for %s: %w", id, err)
	}
	return nil
}

func (s *overrideStore) All(ctx context.Context) (map[string]models.Override, error) {
	pairs, err := s.repo.ListPrefix(ctx, overrideKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing overrides: %w", err)
	}

	result := make(map[string]models.Override, len(pairs))
	for key, data := range pairs {
		id := strings.TrimPrefix(key, overrideKeyPrefix)
		var record models.Override
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("decoding override for %s: %w", id, err)
		}
		result[id] = record
	}
	return result, nil
}
