package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/client/models"
	"newsdesk/internal/client/repositories/kv"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) kv.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE local_state (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)

	return kv.NewSQLiteRepository(db)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// ---------- Overrides ----------

func TestOverrides_WriteReadClear(t *testing.T) {
	repo := setupRepo(t)
	s := NewOverrides(repo)
	ctx := context.Background()

	before := time.Now().UTC()
	require.NoError(t, s.Write(ctx, "7", models.Partial{Title: strPtr("Edited title")}))

	got, err := s.Read(ctx, "7")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "7", got.Fields.ID)
	require.NotNil(t, got.Fields.Title)
	assert.Equal(t, "Edited title", *got.Fields.Title)
	assert.Nil(t, got.Fields.BodyHTML, "untouched fields stay absent")
	assert.False(t, got.WrittenAt.Before(before.Add(-time.Second)))

	require.NoError(t, s.Clear(ctx, "7"))
	got, err = s.Read(ctx, "7")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOverrides_ReadAbsent(t *testing.T) {
	s := NewOverrides(setupRepo(t))

	got, err := s.Read(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOverrides_LastWriteReplacesWholesale(t *testing.T) {
	s := NewOverrides(setupRepo(t))
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "7", models.Partial{Title: strPtr("First edit")}))
	require.NoError(t, s.Write(ctx, "7", models.Partial{IsFeatured: boolPtr(true)}))

	got, err := s.Read(ctx, "7")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Fields.Title, "a new write replaces the stored partial, it does not merge")
	require.NotNil(t, got.Fields.IsFeatured)
	assert.True(t, *got.Fields.IsFeatured)
}

func TestOverrides_All(t *testing.T) {
	s := NewOverrides(setupRepo(t))
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "1", models.Partial{Title: strPtr("a")}))
	require.NoError(t, s.Write(ctx, "2", models.Partial{Title: strPtr("b")}))

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", *all["1"].Fields.Title)
	assert.Equal(t, "b", *all["2"].Fields.Title)
}

// ---------- Tombstones ----------

func TestTombstones_AddContainsAll(t *testing.T) {
	s := NewTombstones(setupRepo(t))
	ctx := context.Background()

	ok, err := s.Contains(ctx, "1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Add(ctx, "1"))
	require.NoError(t, s.Add(ctx, "2"))
	require.NoError(t, s.Add(ctx, "1")) // duplicate suppressed

	ok, err = s.Contains(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ok)

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, all, "insertion order, no duplicates")
}

func TestTombstones_PersistAcrossInstances(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, NewTombstones(repo).Add(ctx, "gone"))

	ok, err := NewTombstones(repo).Contains(ctx, "gone")
	require.NoError(t, err)
	assert.True(t, ok)
}

// ---------- Featured tokens ----------

func TestFeatured_MarkIsMarkedClear(t *testing.T) {
	s := NewFeatured(setupRepo(t))
	ctx := context.Background()

	ok, err := s.IsMarked(ctx, "5")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Mark(ctx, "5"))
	ok, err = s.IsMarked(ctx, "5")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Clear(ctx, "5"))
	ok, err = s.IsMarked(ctx, "5")
	require.NoError(t, err)
	assert.False(t, ok)
}

// ---------- Snapshots ----------

func TestSnapshots_SaveLoad(t *testing.T) {
	s := NewSnapshots(setupRepo(t))
	ctx := context.Background()

	items := []models.Item{
		{ID: "1", Title: "One", Status: models.StatusApproved, IsFeatured: true},
		{ID: "2", Title: "Two", Status: models.StatusApproved},
	}
	require.NoError(t, s.Save(ctx, "approved", items))

	got, err := s.Load(ctx, "approved")
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestSnapshots_LoadNeverCaptured(t *testing.T) {
	s := NewSnapshots(setupRepo(t))

	got, err := s.Load(context.Background(), "pending")
	require.NoError(t, err)
	assert.Nil(t, got, "never-captured list loads as nil")
}

func TestSnapshots_EmptySnapshotIsNotNil(t *testing.T) {
	s := NewSnapshots(setupRepo(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "approved", nil))

	got, err := s.Load(ctx, "approved")
	require.NoError(t, err)
	require.NotNil(t, got, "a captured empty list is distinct from no capture")
	assert.Empty(t, got)
}

func TestSnapshots_SaveReplacesPrevious(t *testing.T) {
	s := NewSnapshots(setupRepo(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "approved", []models.Item{{ID: "old"}}))
	require.NoError(t, s.Save(ctx, "approved", []models.Item{{ID: "new"}}))

	got, err := s.Load(ctx, "approved")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}
