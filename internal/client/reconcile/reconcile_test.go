package reconcile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/client/models"
)

func strPtr(s string) *string                  { return &s }
func boolPtr(b bool) *bool                     { return &b }
func timePtr(t time.Time) *time.Time           { return &t }
func statusPtr(s models.Status) *models.Status { return &s }

func TestMerge_NullNeverRegressesKnownGoodValue(t *testing.T) {
	// Scenario from the fetch path: server sends isFeatured as null, the
	// prior snapshot knows it was true.
	fresh := []models.Partial{{ID: "1", Title: strPtr("A"), IsFeatured: nil}}
	prev := []models.Item{{ID: "1", Title: "A", IsFeatured: true, BodyHTML: "<p>kept</p>"}}

	out := Merge(Input{Fresh: fresh, Previous: prev}, ViewPending)

	require.Len(t, out, 1)
	assert.True(t, out[0].IsFeatured, "null must not regress a known-good value")
	assert.Equal(t, "<p>kept</p>", out[0].BodyHTML)
	assert.Equal(t, "A", out[0].Title)
}

func TestMerge_OverrideBeatsServerValue(t *testing.T) {
	fresh := []models.Partial{{ID: "1", Title: strPtr("Server title")}}
	overrides := map[string]models.Override{
		"1": {Fields: models.Partial{ID: "1", Title: strPtr("Local edit")}, WrittenAt: time.Now()},
	}

	out := Merge(Input{Fresh: fresh, Overrides: overrides}, ViewPending)

	require.Len(t, out, 1)
	assert.Equal(t, "Local edit", out[0].Title)
}

func TestMerge_OverrideBeatsFutureServerSnapshots(t *testing.T) {
	// An override, once written, wins over any later server snapshot for
	// that field until explicitly cleared.
	overrides := map[string]models.Override{
		"1": {Fields: models.Partial{ID: "1", Title: strPtr("Local edit")}},
	}

	for _, serverTitle := range []string{"v1", "v2", "v3"} {
		fresh := []models.Partial{{ID: "1", Title: strPtr(serverTitle)}}
		out := Merge(Input{Fresh: fresh, Overrides: overrides}, ViewPending)
		require.Len(t, out, 1)
		assert.Equal(t, "Local edit", out[0].Title)
	}
}

func TestMerge_TombstonedItemsExcluded(t *testing.T) {
	fresh := []models.Partial{
		{ID: "1", Title: strPtr("alive")},
		{ID: "2", Title: strPtr("deleted locally")},
	}

	out := Merge(Input{Fresh: fresh, Tombstones: []string{"2"}}, ViewPending)

	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID)
}

func TestMerge_TombstonePermanence(t *testing.T) {
	tombs := []string{"2"}
	for i := 0; i < 5; i++ {
		fresh := []models.Partial{{ID: "2", Title: strPtr("server keeps sending it")}}
		out := Merge(Input{Fresh: fresh, Tombstones: tombs}, ViewPending)
		assert.Empty(t, out, "tombstoned id must stay suppressed on every pass")
	}
}

func TestMerge_MembershipFollowsFreshSequence(t *testing.T) {
	// An item present in the previous snapshot but absent from the fresh
	// fetch is not re-added; the server owns membership.
	fresh := []models.Partial{{ID: "1"}}
	prev := []models.Item{{ID: "1"}, {ID: "stale"}}

	out := Merge(Input{Fresh: fresh, Previous: prev}, ViewPending)

	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID)
}

func TestMerge_ZeroValueDefaults(t *testing.T) {
	out := Merge(Input{Fresh: []models.Partial{{ID: "1"}}}, ViewPending)

	require.Len(t, out, 1)
	assert.Equal(t, "", out[0].Title)
	assert.Equal(t, models.Status(""), out[0].Status)
	assert.False(t, out[0].IsFeatured)
	assert.Nil(t, out[0].ApprovedAt)
}

func TestMerge_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	in := Input{
		Fresh: []models.Partial{
			{ID: "b", Title: strPtr("B"), Status: statusPtr(models.StatusApproved), ApprovedAt: timePtr(now)},
			{ID: "a", Title: strPtr("A"), Status: statusPtr(models.StatusApproved), ApprovedAt: timePtr(now)},
			{ID: "c", Title: strPtr("C"), SubmittedAt: timePtr(now.Add(time.Hour))},
		},
		Overrides:  map[string]models.Override{"a": {Fields: models.Partial{ID: "a", IsFeatured: boolPtr(true)}}},
		Tombstones: []string{"x"},
		Previous:   []models.Item{{ID: "b", District: "Wayanad"}},
	}

	first := Merge(in, ViewApproved)
	second := Merge(in, ViewApproved)

	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, b1, b2, "same inputs must produce byte-identical output")
}

func TestMerge_ApprovedViewSortOrder(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	t3 := t1.Add(48 * time.Hour)

	fresh := []models.Partial{
		{ID: "oldest", ApprovedAt: timePtr(t1)},
		{ID: "no-timestamps"},
		{ID: "submitted-only", SubmittedAt: timePtr(t3)},
		{ID: "newest-approved", ApprovedAt: timePtr(t2)},
	}

	out := Merge(Input{Fresh: fresh}, ViewApproved)

	require.Len(t, out, 4)
	assert.Equal(t, "submitted-only", out[0].ID, "submittedAt is the fallback sort key")
	assert.Equal(t, "newest-approved", out[1].ID)
	assert.Equal(t, "oldest", out[2].ID)
	assert.Equal(t, "no-timestamps", out[3].ID, "undated items sink to the end")
}

func TestMerge_PendingViewPreservesServerOrder(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fresh := []models.Partial{
		{ID: "third", SubmittedAt: timePtr(t1)},
		{ID: "first", SubmittedAt: timePtr(t1.Add(time.Hour))},
		{ID: "second"},
	}

	out := Merge(Input{Fresh: fresh}, ViewPending)

	require.Len(t, out, 3)
	assert.Equal(t, "third", out[0].ID)
	assert.Equal(t, "first", out[1].ID)
	assert.Equal(t, "second", out[2].ID)
}

func TestOne(t *testing.T) {
	fresh := models.Partial{ID: "9", Title: strPtr("Server")}
	override := &models.Override{Fields: models.Partial{ID: "9", Title: strPtr("Mine")}}

	item, ok := One(fresh, override, false, nil)
	require.True(t, ok)
	assert.Equal(t, "Mine", item.Title)

	_, ok = One(fresh, override, true, nil)
	assert.False(t, ok, "tombstoned item must not be shown")
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	fresh := []models.Partial{{ID: "2"}, {ID: "1"}}
	prev := []models.Item{{ID: "1", Title: "keep"}}

	_ = Merge(Input{Fresh: fresh, Previous: prev}, ViewApproved)

	assert.Equal(t, "2", fresh[0].ID, "input order must be untouched")
	assert.Equal(t, "keep", prev[0].Title)
}

func TestRebase_DropsTombstonedIds(t *testing.T) {
	snapshot := []models.Item{
		{ID: "1", Title: "One"},
		{ID: "2", Title: "Two"},
		{ID: "3", Title: "Three"},
	}

	out := Rebase(snapshot, nil, []string{"2"})

	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "3", out[1].ID)
}

func TestRebase_OverlaysOverridesAndKeepsOtherFields(t *testing.T) {
	snapshot := []models.Item{
		{ID: "1", Title: "Old title", Category: "sports", IsFeatured: true},
	}
	overrides := map[string]models.Override{
		"1": {Fields: models.Partial{ID: "1", Title: strPtr("New title")}},
	}

	out := Rebase(snapshot, overrides, nil)

	require.Len(t, out, 1)
	assert.Equal(t, "New title", out[0].Title)
	assert.Equal(t, "sports", out[0].Category)
	assert.True(t, out[0].IsFeatured)
}

func TestRebase_PreservesSnapshotOrderAndInput(t *testing.T) {
	snapshot := []models.Item{
		{ID: "b", Title: "B"},
		{ID: "a", Title: "A"},
	}

	out := Rebase(snapshot, nil, nil)

	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
	assert.Equal(t, "B", snapshot[0].Title, "input must not be mutated")
}
