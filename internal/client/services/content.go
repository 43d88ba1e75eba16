// Package services orchestrates the read and write paths of the content
// layer: resilient fetch, reconciliation against local pending state, cache
// fallback with degraded-mode marking, and optimistic writes.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"newsdesk/internal/client/api"
	"newsdesk/internal/client/models"
	"newsdesk/internal/client/reconcile"
	"newsdesk/internal/client/store"
	"newsdesk/internal/common"
	"newsdesk/internal/logging"
)

// Logical list names, doubling as snapshot cache keys.
const (
	ListApproved = "approved"
	ListPending  = "pending"
)

const itemMemoSize = 128

// ListResult is the outcome of one read-path reconciliation.
type ListResult struct {
	Items []models.Item

	// Degraded is set when every live fetch attempt failed and the items
	// come from the last-known-good snapshot (or placeholders).
	Degraded bool

	// Placeholder is set when no snapshot was ever captured and the items
	// are fixed synthetic samples.
	Placeholder bool
}

// ContentService is the editorial data surface consumed by the UI layer.
type ContentService interface {
	// ListByCategory returns the reconciled public list for one category.
	ListByCategory(ctx context.Context, category string) (*ListResult, error)

	// Approved returns the caller's approved items, newest first.
	Approved(ctx context.Context) (*ListResult, error)

	// Pending returns the caller's pending items in server order.
	Pending(ctx context.Context) (*ListResult, error)

	// Get returns one reconciled item by id.
	Get(ctx context.Context, id string) (*models.Item, error)

	// Edit applies a field-level edit optimistically (persisted override)
	// and then attempts remote persistence. The override survives a failed
	// submission; the composite error is surfaced to the caller.
	Edit(ctx context.Context, id string, fields models.Partial) error

	// SetFeatured toggles the featured flag. A feature-on call whose
	// confirmation token is already set performs zero network calls.
	SetFeatured(ctx context.Context, id string, featured bool) error

	// Delete removes the item remotely and, once the endpoint confirms,
	// tombstones the id so it can never resurface.
	Delete(ctx context.Context, id string) error

	// Create validates and submits a new draft through the submission
	// pipeline. Submission failures are always surfaced; writes never fall
	// back to cached data.
	Create(ctx context.Context, draft models.Draft) error

	// RefreshAll refreshes the approved and pending lists concurrently.
	RefreshAll(ctx context.Context) error
}

type contentService struct {
	remote     api.Remote
	endpoints  api.Endpoints
	overrides  store.Overrides
	tombstones store.Tombstones
	featured   store.Featured
	snapshots  store.Snapshots
	itemMemo   *lru.Cache[string, models.Partial]
	validate   *validator.Validate
	log        logging.Logger
}

func NewContentService(remote api.Remote, endpoints api.Endpoints, stores store.Stores, log logging.Logger) (ContentService, error) {
	memo, err := lru.New[string, models.Partial](itemMemoSize)
	if err != nil {
		return nil, fmt.Errorf("creating item memo: %w", err)
	}
	if log == nil {
		log = logging.NewDiscard()
	}
	return &contentService{
		remote:     remote,
		endpoints:  endpoints,
		overrides:  stores.Overrides,
		tombstones: stores.Tombstones,
		featured:   stores.Featured,
		snapshots:  stores.Snapshots,
		itemMemo:   memo,
		validate:   validator.New(),
		log:        log,
	}, nil
}

// ---------- read path ----------

func (s *contentService) ListByCategory(ctx context.Context, category string) (*ListResult, error) {
	return s.readList(ctx,
		"category-"+category,
		api.Op{Name: "list-by-category"},
		s.endpoints.ListByCategory(category),
		reconcile.ViewApproved,
	)
}

func (s *contentService) Approved(ctx context.Context) (*ListResult, error) {
	return s.readList(ctx,
		ListApproved,
		api.Op{Name: "approved-by-me", Auth: true},
		s.endpoints.ApprovedByMe(),
		reconcile.ViewApproved,
	)
}

func (s *contentService) Pending(ctx context.Context) (*ListResult, error) {
	return s.readList(ctx,
		ListPending,
		api.Op{Name: "pending-by-me", Auth: true},
		s.endpoints.PendingByMe(),
		reconcile.ViewPending,
	)
}

// readList runs one read-path pass: fetch, normalize, reconcile, snapshot.
// Fetch exhaustion degrades to the cached snapshot instead of surfacing an
// error; auth precondition failures and local store failures do surface.
func (s *contentService) readList(ctx context.Context, list string, op api.Op, descs []api.Descriptor, view reconcile.View) (*ListResult, error) {
	fresh, err := s.remote.FetchList(ctx, op, descs)
	if err != nil {
		var exhausted *api.ExhaustedError
		if errors.As(err, &exhausted) {
			return s.serveDegraded(ctx, list, exhausted)
		}
		return nil, err
	}

	prev, err := s.snapshots.Load(ctx, list)
	if err != nil {
		return nil, err
	}
	overrides, err := s.overrides.All(ctx)
	if err != nil {
		return nil, err
	}
	tombstones, err := s.tombstones.All(ctx)
	if err != nil {
		return nil, err
	}

	items := reconcile.Merge(reconcile.Input{
		Fresh:      fresh,
		Overrides:  overrides,
		Tombstones: tombstones,
		Previous:   prev,
	}, view)

	if err := s.snapshots.Save(ctx, list, items); err != nil {
		// The view model is still good; losing one snapshot update only
		// weakens the next degraded-mode fallback.
		s.log.Warn(ctx, "failed to save snapshot", "list", list, "err", err)
	}

	return &ListResult{Items: items}, nil
}

func (s *contentService) serveDegraded(ctx context.Context, list string, cause *api.ExhaustedError) (*ListResult, error) {
	s.log.Error(ctx, "all endpoints exhausted, entering degraded mode", "list", list, "err", cause)

	snap, err := s.snapshots.Load(ctx, list)
	if err != nil {
		s.log.Warn(ctx, "snapshot load failed in degraded mode", "list", list, "err", err)
		snap = nil
	}
	if snap == nil {
		return &ListResult{Items: placeholderItems(), Degraded: true, Placeholder: true}, nil
	}

	// The snapshot predates any deletes and edits made since it was
	// captured, so it still goes through the current local state before
	// being served.
	overrides, err := s.overrides.All(ctx)
	if err != nil {
		return nil, err
	}
	tombstones, err := s.tombstones.All(ctx)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: reconcile.Rebase(snap, overrides, tombstones), Degraded: true}, nil
}

func (s *contentService) Get(ctx context.Context, id string) (*models.Item, error) {
	dead, err := s.tombstones.Contains(ctx, id)
	if err != nil {
		return nil, err
	}
	if dead {
		return nil, fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}

	fresh, memoHit := s.itemMemo.Get(id)
	if !memoHit {
		fetched, err := s.remote.FetchItem(ctx,
			api.Op{Name: "item-by-id"},
			s.endpoints.ItemByID(id),
		)
		if err != nil {
			var exhausted *api.ExhaustedError
			if errors.As(err, &exhausted) {
				if prev := s.findInSnapshots(ctx, id); prev != nil {
					override, oErr := s.overrides.Read(ctx, id)
					if oErr != nil {
						return nil, oErr
					}
					s.log.Warn(ctx, "item fetch exhausted, serving cached copy", "id", id)
					item, _ := reconcile.One(models.Partial{ID: id}, override, false, prev)
					return &item, nil
				}
			}
			return nil, err
		}
		fresh = *fetched
		s.itemMemo.Add(id, fresh)
	}

	override, err := s.overrides.Read(ctx, id)
	if err != nil {
		return nil, err
	}

	item, ok := reconcile.One(fresh, override, false, s.findInSnapshots(ctx, id))
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, common.ErrNotFound)
	}
	return &item, nil
}

// findInSnapshots looks the id up in the known list snapshots, used for
// per-field null fallback and for serving a cached copy when the live fetch
// is exhausted.
func (s *contentService) findInSnapshots(ctx context.Context, id string) *models.Item {
	for _, list := range []string{ListApproved, ListPending} {
		snap, err := s.snapshots.Load(ctx, list)
		if err != nil {
			continue
		}
		for i := range snap {
			if snap[i].ID == id {
				return &snap[i]
			}
		}
	}
	return nil
}

// ---------- write path ----------

func (s *contentService) Edit(ctx context.Context, id string, fields models.Partial) error {
	if err := s.overrides.Write(ctx, id, fields); err != nil {
		return err
	}
	s.itemMemo.Remove(id)

	fields.ID = id
	err := s.remote.Submit(ctx,
		api.Op{Name: "update-item", Auth: true},
		api.NewUpdateSteps(s.endpoints.UpdateItem(id), fields),
	)
	if err != nil {
		return fmt.Errorf("edit kept locally, remote persistence failed: %w", err)
	}
	return nil
}

func (s *contentService) SetFeatured(ctx context.Context, id string, featured bool) error {
	if err := s.overrides.Write(ctx, id, models.Partial{IsFeatured: &featured}); err != nil {
		return err
	}
	s.itemMemo.Remove(id)

	if featured {
		confirmed, err := s.featured.IsMarked(ctx, id)
		if err != nil {
			return err
		}
		if confirmed {
			// The feature-on transition was already confirmed; repeating
			// the call would be a redundant network round trip.
			return nil
		}
	}

	err := s.remote.Send(ctx,
		api.Op{Name: "set-featured", Auth: true},
		s.endpoints.SetFeatured(id),
		map[string]bool{"isFeatured": featured},
	)
	if err != nil {
		return err
	}

	if featured {
		return s.featured.Mark(ctx, id)
	}
	return s.featured.Clear(ctx, id)
}

func (s *contentService) Delete(ctx context.Context, id string) error {
	err := s.remote.Send(ctx,
		api.Op{Name: "delete-item", Auth: true},
		s.endpoints.DeleteItem(id),
		nil,
	)
	if err != nil {
		// Without endpoint confirmation there is no tombstone; the item
		// must not silently vanish locally while it still exists remotely.
		return err
	}

	if err := s.tombstones.Add(ctx, id); err != nil {
		return err
	}
	if err := s.overrides.Clear(ctx, id); err != nil {
		return err
	}
	if err := s.featured.Clear(ctx, id); err != nil {
		return err
	}
	s.itemMemo.Remove(id)
	return nil
}

func (s *contentService) Create(ctx context.Context, draft models.Draft) error {
	if err := s.validate.Struct(draft); err != nil {
		return fmt.Errorf("invalid draft: %w", err)
	}

	return s.remote.Submit(ctx,
		api.Op{Name: "create-item", Auth: true},
		api.NewSubmissionSteps(s.endpoints.CreateItem(), draft),
	)
}

// ---------- maintenance ----------

func (s *contentService) RefreshAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Approved(gctx)
		return err
	})
	g.Go(func() error {
		_, err := s.Pending(gctx)
		return err
	})
	return g.Wait()
}
