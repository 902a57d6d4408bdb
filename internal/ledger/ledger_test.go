// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestOpenCreatesSchema(t *testing.T) {
	l := testLedger(t)

	var count int
	err := l.db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'exports'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	for i := 0; i < 2; i++ {
		l, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, l.Close())
	}
}

func TestRecordAndList(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := l.Record(ctx, Entry{
		Source: "library.xml", LibraryID: "SiteLibrary", FolderID: "men",
		Subdirectories: true, Folders: 3, Content: 7,
		Output: "1__library_men.xml", CreatedAt: base,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = l.Record(ctx, Entry{
		Source: "library.xml", FolderID: "women",
		Folders: 2, Content: 1, Output: "2__library_women.xml",
		CreatedAt: base.Add(time.Minute),
	})
	require.NoError(t, err)

	all, err := l.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "women", all[0].FolderID, "newest first")
	assert.Equal(t, "", all[0].LibraryID)
	assert.Equal(t, first, all[1])

	men, err := l.List(ctx, ListOptions{FolderID: "men"})
	require.NoError(t, err)
	require.Len(t, men, 1)
	assert.True(t, men[0].Subdirectories)
	assert.Equal(t, 7, men[0].Content)

	limited, err := l.List(ctx, ListOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRecord_FillsDefaults(t *testing.T) {
	l := testLedger(t)
	before := time.Now().Add(-time.Second)

	e, err := l.Record(context.Background(), Entry{Source: "a.xml", FolderID: "x", Output: "o.xml"})
	require.NoError(t, err)
	assert.Len(t, e.ID, 36)
	assert.True(t, e.CreatedAt.After(before))
	assert.Equal(t, time.UTC, e.CreatedAt.Location())
}

func TestRecord_DuplicateID(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	_, err := l.Record(ctx, Entry{ID: "fixed", Source: "a.xml", FolderID: "x", Output: "o.xml"})
	require.NoError(t, err)
	_, err = l.Record(ctx, Entry{ID: "fixed", Source: "a.xml", FolderID: "x", Output: "o.xml"})
	assert.Error(t, err)
}

func TestList_NewestFirstWithinSecond(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, e := range []Entry{
		{FolderID: "earlier", CreatedAt: base},
		{FolderID: "later", CreatedAt: base.Add(500 * time.Millisecond)},
		{FolderID: "latest", CreatedAt: base.Add(time.Second)},
	} {
		e.Source, e.Output = "a.xml", "o.xml"
		_, err := l.Record(ctx, e)
		require.NoError(t, err)
	}

	entries, err := l.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "latest", entries[0].FolderID)
	assert.Equal(t, "later", entries[1].FolderID)
	assert.Equal(t, "earlier", entries[2].FolderID)
	assert.Equal(t, base.Add(500*time.Millisecond), entries[1].CreatedAt)
}
