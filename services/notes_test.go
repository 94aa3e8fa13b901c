package services_test

import (
	"context"
	"testing"

	"loom_server_go/common"
	"loom_server_go/data/datatest"
	"loom_server_go/logging"
	"loom_server_go/models"
	"loom_server_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService_CreateAndUpdateTags(t *testing.T) {
	ctx := context.Background()
	svc := services.NewNoteService(datatest.OpenStore(t), logging.Nop{})

	note, err := svc.Create(ctx, models.CreateNoteRequest{Title: datatest.Ptr("Ideas"), Tags: models.TagList{"a", "b", "c"}})
	require.NoError(t, err)
	assert.Equal(t, models.TagList{"a", "b", "c"}, note.Tags)
	assert.False(t, note.IsPinned)

	note, err = svc.Update(ctx, note.ID, decodeUpdate[models.UpdateNoteRequest](t, `{"is_pinned": true}`))
	require.NoError(t, err)
	assert.True(t, note.IsPinned)
	assert.Equal(t, models.TagList{"a", "b", "c"}, note.Tags)

	note, err = svc.Update(ctx, note.ID, decodeUpdate[models.UpdateNoteRequest](t, `{"tags": null}`))
	require.NoError(t, err)
	assert.Empty(t, note.Tags)

	got, err := svc.Get(ctx, note.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}

func TestNoteService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := services.NewNoteService(datatest.OpenStore(t), logging.Nop{})

	_, err := svc.Create(ctx, models.CreateNoteRequest{Title: datatest.Ptr("  ")})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Create(ctx, models.CreateNoteRequest{Title: datatest.Ptr("x"), Tags: models.TagList{"a,b"}})
	assert.ErrorIs(t, err, common.ErrValidation)

	note, err := svc.Create(ctx, models.CreateNoteRequest{Title: datatest.Ptr("x")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, note.ID, decodeUpdate[models.UpdateNoteRequest](t, `{"title": null}`))
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Update(ctx, note.ID, decodeUpdate[models.UpdateNoteRequest](t, `{"is_archived": null}`))
	assert.ErrorIs(t, err, common.ErrValidation)

	assert.ErrorIs(t, svc.Delete(ctx, 404), common.ErrNotFound)
}
