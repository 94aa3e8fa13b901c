package services

import (
	"context"
	"fmt"

	"loom_server_go/data"
	"loom_server_go/logging"
	"loom_server_go/models"

	"github.com/jmoiron/sqlx"
)

// NoteService управляет заметками.
type NoteService struct {
	base
}

func NewNoteService(store *data.Store, log logging.Logger) *NoteService {
	return &NoteService{base: newBase(store, log, "notes")}
}

func (s *NoteService) List(ctx context.Context, f models.NoteFilter) ([]models.Note, error) {
	return data.ListNotes(ctx, s.store.DB(), f)
}

func (s *NoteService) Get(ctx context.Context, id int64) (*models.Note, error) {
	return data.GetNoteByID(ctx, s.store.DB(), id)
}

func (s *NoteService) Create(ctx context.Context, req models.CreateNoteRequest) (*models.Note, error) {
	title, err := requiredString("title", req.Title)
	if err != nil {
		return nil, err
	}
	if err := validateTags("tags", req.Tags); err != nil {
		return nil, err
	}

	note := &models.Note{
		Title:      title,
		Content:    req.Content,
		Category:   req.Category,
		Tags:       req.Tags,
		IsPinned:   orDefault(req.IsPinned, false),
		IsArchived: orDefault(req.IsArchived, false),
	}
	if note.Tags == nil {
		note.Tags = models.TagList{}
	}
	if err := data.CreateNote(ctx, s.store.DB(), note); err != nil {
		return nil, fmt.Errorf("NoteService.Create: %w", err)
	}
	s.log.Debug(ctx, "заметка создана", "id", note.ID)
	return note, nil
}

// Update применяет к заметке только переданные поля.
func (s *NoteService) Update(ctx context.Context, id int64, req models.UpdateNoteRequest) (*models.Note, error) {
	var note *models.Note
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if note, err = data.GetNoteByID(ctx, tx, id); err != nil {
			return err
		}
		if err := setRequiredString("title", req.Title, &note.Title); err != nil {
			return err
		}
		setNullable(req.Content, &note.Content)
		setNullable(req.Category, &note.Category)
		if req.Tags.Set {
			tags := models.TagList{}
			if req.Tags.HasValue() {
				tags = req.Tags.Value
			}
			if err := validateTags("tags", tags); err != nil {
				return err
			}
			note.Tags = tags
		}
		if err := setRequired("is_pinned", req.IsPinned, &note.IsPinned); err != nil {
			return err
		}
		if err := setRequired("is_archived", req.IsArchived, &note.IsArchived); err != nil {
			return err
		}
		return data.UpdateNote(ctx, tx, note)
	})
	if err != nil {
		return nil, fmt.Errorf("NoteService.Update: %w", err)
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return data.DeleteNote(ctx, s.store.DB(), id)
}
