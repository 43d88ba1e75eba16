// Package reconcile merges freshly fetched server truth with locally
// pending, unconfirmed client state into one consistent view model. It is a
// pure function of its inputs: no store access, no clock, no mutation of
// arguments, so it is callable from any concurrency model and reconciling
// the same inputs twice yields identical output.
package reconcile

import (
	"sort"
	"time"

	"newsdesk/internal/client/models"
)

// View selects the ordering rule for the merged output.
type View string

const (
	// ViewApproved orders by approval time (falling back to submission
	// time) descending.
	ViewApproved View = "approved"

	// ViewPending preserves the server-provided order.
	ViewPending View = "pending"
)

// Input carries everything one reconciliation reads.
type Input struct {
	// Fresh is the normalized item sequence from the backend. It alone
	// decides membership: items absent from it are not resurrected from
	// Previous.
	Fresh []models.Partial

	// Overrides are the unconfirmed local edits, keyed by item id.
	Overrides map[string]models.Override

	// Tombstones are locally deleted ids; any fresh item with a tombstoned
	// id is dropped regardless of what the server says.
	Tombstones []string

	// Previous is the last reconciled snapshot, used only as a per-field
	// fallback so a null server field never regresses a known-good value.
	Previous []models.Item
}

// Merge produces the reconciled view model. Per field the precedence is:
// override value if present, else server value if non-null, else the
// previous snapshot's value for that id, else the type's empty value.
func Merge(in Input, view View) []models.Item {
	tombstoned := make(map[string]struct{}, len(in.Tombstones))
	for _, id := range in.Tombstones {
		tombstoned[id] = struct{}{}
	}

	prevByID := make(map[string]models.Item, len(in.Previous))
	for _, item := range in.Previous {
		prevByID[item.ID] = item
	}

	out := make([]models.Item, 0, len(in.Fresh))
	for _, fresh := range in.Fresh {
		if _, dead := tombstoned[fresh.ID]; dead {
			continue
		}

		var override *models.Partial
		if ov, ok := in.Overrides[fresh.ID]; ok {
			override = &ov.Fields
		}
		var prev *models.Item
		if p, ok := prevByID[fresh.ID]; ok {
			prev = &p
		}

		out = append(out, mergeItem(fresh, override, prev))
	}

	if view == ViewApproved {
		sortByApproval(out)
	}
	return out
}

// Rebase re-applies the current local state to a previously reconciled
// snapshot, for serving when no fresh fetch is available. Tombstoned ids
// are dropped and overrides are overlaid per field; snapshot order is
// preserved. An id deleted after the snapshot was captured must not
// resurface just because the backend is unreachable.
func Rebase(snapshot []models.Item, overrides map[string]models.Override, tombstones []string) []models.Item {
	tombstoned := make(map[string]struct{}, len(tombstones))
	for _, id := range tombstones {
		tombstoned[id] = struct{}{}
	}

	out := make([]models.Item, 0, len(snapshot))
	for _, item := range snapshot {
		if _, dead := tombstoned[item.ID]; dead {
			continue
		}
		var fields *models.Partial
		if ov, ok := overrides[item.ID]; ok {
			fields = &ov.Fields
		}
		out = append(out, mergeItem(models.Partial{ID: item.ID}, fields, &item))
	}
	return out
}

// One reconciles a single fetched item. ok is false when the id is
// tombstoned and the item must not be shown.
func One(fresh models.Partial, override *models.Override, tombstoned bool, prev *models.Item) (models.Item, bool) {
	if tombstoned {
		return models.Item{}, false
	}
	var fields *models.Partial
	if override != nil {
		fields = &override.Fields
	}
	return mergeItem(fresh, fields, prev), true
}

func mergeItem(fresh models.Partial, override *models.Partial, prev *models.Item) models.Item {
	if override == nil {
		override = &models.Partial{}
	}
	if prev == nil {
		prev = &models.Item{}
	}

	status := models.Status(pickStr((*string)(override.Status), (*string)(fresh.Status), string(prev.Status)))

	return models.Item{
		ID:               fresh.ID,
		Title:            pickStr(override.Title, fresh.Title, prev.Title),
		BodyHTML:         pickStr(override.BodyHTML, fresh.BodyHTML, prev.BodyHTML),
		Category:         pickStr(override.Category, fresh.Category, prev.Category),
		State:            pickStr(override.State, fresh.State, prev.State),
		District:         pickStr(override.District, fresh.District, prev.District),
		FeaturedImageURL: pickStr(override.FeaturedImageURL, fresh.FeaturedImageURL, prev.FeaturedImageURL),
		Status:           status,
		IsFeatured:       pickBool(override.IsFeatured, fresh.IsFeatured, prev.IsFeatured),
		SubmittedAt:      pickTime(override.SubmittedAt, fresh.SubmittedAt, prev.SubmittedAt),
		ApprovedAt:       pickTime(override.ApprovedAt, fresh.ApprovedAt, prev.ApprovedAt),
		SubmittedBy:      pickStr(override.SubmittedBy, fresh.SubmittedBy, prev.SubmittedBy),
		ApprovedBy:       pickStr(override.ApprovedBy, fresh.ApprovedBy, prev.ApprovedBy),
	}
}

func pickStr(override, server *string, prev string) string {
	if override != nil {
		return *override
	}
	if server != nil {
		return *server
	}
	return prev
}

func pickBool(override, server *bool, prev bool) bool {
	if override != nil {
		return *override
	}
	if server != nil {
		return *server
	}
	return prev
}

func pickTime(override, server, prev *time.Time) *time.Time {
	if override != nil {
		t := *override
		return &t
	}
	if server != nil {
		t := *server
		return &t
	}
	if prev != nil {
		t := *prev
		return &t
	}
	return nil
}

// sortByApproval orders newest first by approvedAt, falling back to
// submittedAt. Items with neither timestamp sink to the end; equal keys are
// tie-broken by id so repeated reconciliations stay byte-identical.
func sortByApproval(items []models.Item) {
	key := func(it models.Item) *time.Time {
		if it.ApprovedAt != nil {
			return it.ApprovedAt
		}
		return it.SubmittedAt
	}

	sort.SliceStable(items, func(i, j int) bool {
		ki, kj := key(items[i]), key(items[j])
		switch {
		case ki == nil && kj == nil:
			return items[i].ID < items[j].ID
		case ki == nil:
			return false
		case kj == nil:
			return true
		case ki.Equal(*kj):
			return items[i].ID < items[j].ID
		default:
			return ki.After(*kj)
		}
	})
}
