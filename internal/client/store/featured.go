package store

import (
	"context"
	"fmt"

	"newsdesk/internal/client/repositories/kv"
)

// Featured tracks, per item id, whether the feature-on transition has
// already been confirmed by the server. It exists purely to avoid redundant
// network calls; it carries no merge semantics.
type Featured interface {
	// Mark records that the feature-on call for id was confirmed.
	Mark(ctx context.Context, id string) error

	IsMarked(ctx context.Context, id string) (bool, error)

	// Clear drops the confirmation, to be called when the item is
	// un-featured.
	Clear(ctx context.Context, id string) error
}

type featuredTokens struct {
	repo kv.Repository
}

func NewFeatured(repo kv.Repository) Featured {
	return &featuredTokens{repo: repo}
}

func (s *featuredTokens) Mark(ctx context.Context, id string) error {
	if err := s.repo.Set(ctx, featuredKeyPrefix+id, []byte("true")); err != nil {
		return fmt.Errorf("marking featured-confirmed for %s: %w", id, err)
	}
	return nil
}

func (s *featuredTokens) IsMarked(ctx context.Context, id string) (bool, error) {
	data, err := s.repo.Get(ctx, featuredKeyPrefix+id)
	if err != nil {
		return false, fmt.Errorf("reading featured-confirmed for %s: %w", id, err)
	}
	return string(data) == "true", nil
}

func (s *featuredTokens) Clear(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, featuredKeyPrefix+id); err != nil {
		return fmt.Errorf("clearing featured-confirmed for %s: %w", id, err)
	}
	return nil
}
