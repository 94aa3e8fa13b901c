package data_test

import (
	"context"
	"testing"

	"loom_server_go/common"
	"loom_server_go/data"
	"loom_server_go/data/datatest"
	"loom_server_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNote_TagsRoundTrip(t *testing.T) {
	store := datatest.OpenStore(t)
	ctx := context.Background()

	note := &models.Note{Title: "Groceries", Tags: models.TagList{"a", "b", "c"}}
	require.NoError(t, data.CreateNote(ctx, store.DB(), note))
	require.NotZero(t, note.ID)

	got, err := data.GetNoteByID(ctx, store.DB(), note.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TagList{"a", "b", "c"}, got.Tags)
	assert.Nil(t, got.Content)
	assert.True(t, note.CreatedAt.Equal(got.CreatedAt))
}

func TestCreateNote_EmptyTagsStoredAsNull(t *testing.T) {
	store := datatest.OpenStore(t)
	ctx := context.Background()

	note := &models.Note{Title: "No tags"}
	require.NoError(t, data.CreateNote(ctx, store.DB(), note))

	var isNull bool
	require.NoError(t, store.DB().Get(&isNull, "SELECT tags IS NULL FROM notes WHERE id = ?", note.ID))
	assert.True(t, isNull)

	got, err := data.GetNoteByID(ctx, store.DB(), note.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}

func TestListNotes_FiltersAndOrder(t *testing.T) {
	store := datatest.OpenStore(t)
	ctx := context.Background()
	db := store.DB()

	work := "work"
	first := &models.Note{Title: "first", Category: &work}
	pinned := &models.Note{Title: "pinned", IsPinned: true}
	archived := &models.Note{Title: "archived", IsArchived: true}
	last := &models.Note{Title: "Last", Content: datatest.Ptr("contains needle")}
	for _, n := range []*models.Note{first, pinned, archived, last} {
		require.NoError(t, data.CreateNote(ctx, db, n))
	}

	notes, err := data.ListNotes(ctx, db, models.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []int64{pinned.ID, last.ID, first.ID}, []int64{notes[0].ID, notes[1].ID, notes[2].ID})

	notes, err = data.ListNotes(ctx, db, models.NoteFilter{Archived: true})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, archived.ID, notes[0].ID)

	notes, err = data.ListNotes(ctx, db, models.NoteFilter{Category: &work})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, first.ID, notes[0].ID)

	notes, err = data.ListNotes(ctx, db, models.NoteFilter{Search: datatest.Ptr("needle")})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, last.ID, notes[0].ID)

	// Поиск чувствителен к регистру.
	notes, err = data.ListNotes(ctx, db, models.NoteFilter{Search: datatest.Ptr("last")})
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.NotNil(t, notes)
}

func TestNoteOps_NotFound(t *testing.T) {
	store := datatest.OpenStore(t)
	ctx := context.Background()

	_, err := data.GetNoteByID(ctx, store.DB(), 99)
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = data.UpdateNote(ctx, store.DB(), &models.Note{ID: 99, Title: "x"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = data.DeleteNote(ctx, store.DB(), 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
