package data

import (
	"context"
	"fmt"

	"loom_server_go/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const noteColumns = "id, title, content, category, tags, is_pinned, is_archived, created_at, updated_at"

// CreateNote создает новую заметку и заполняет note.ID, CreatedAt, UpdatedAt.
func CreateNote(ctx context.Context, db sqlx.ExtContext, note *models.Note) error {
	now := nowFunc()
	note.CreatedAt = now
	note.UpdatedAt = now

	query := `INSERT INTO notes (title, content, category, tags, is_pinned, is_archived, created_at, updated_at)
	          VALUES (:title, :content, :category, :tags, :is_pinned, :is_archived, :created_at, :updated_at)`

	id, err := insert(ctx, db, query, note)
	if err != nil {
		return fmt.Errorf("CreateNote: ошибка вставки заметки: %w", err)
	}
	note.ID = id
	return nil
}

// GetNoteByID извлекает заметку по ее ID.
func GetNoteByID(ctx context.Context, db sqlx.QueryerContext, id int64) (*models.Note, error) {
	note := &models.Note{}
	if err := getOne(ctx, db, note, "note", id, `SELECT `+noteColumns+` FROM notes WHERE id = ?`); err != nil {
		return nil, fmt.Errorf("GetNoteByID: ошибка получения заметки ID %d: %w", id, err)
	}
	return note, nil
}

// ListNotes возвращает заметки по фильтру: сначала закрепленные, затем недавно измененные.
// Поиск по title/content чувствителен к регистру.
func ListNotes(ctx context.Context, db sqlx.QueryerContext, f models.NoteFilter) ([]models.Note, error) {
	b := squirrel.Select(noteColumns).From("notes").
		Where(squirrel.Eq{"is_archived": f.Archived})
	if f.Category != nil {
		b = b.Where(squirrel.Eq{"category": *f.Category})
	}
	if f.Search != nil {
		b = b.Where("(instr(title, ?) > 0 OR instr(coalesce(content, ''), ?) > 0)", *f.Search, *f.Search)
	}
	if f.Recent {
		b = b.OrderBy("updated_at DESC", "id DESC")
	} else {
		b = b.OrderBy("is_pinned DESC", "updated_at DESC", "id DESC")
	}
	if f.Limit > 0 {
		b = b.Limit(f.Limit)
	}

	notes := []models.Note{}
	if err := selectAll(ctx, db, &notes, b); err != nil {
		return nil, fmt.Errorf("ListNotes: ошибка получения заметок: %w", err)
	}
	return notes, nil
}

// UpdateNote сохраняет все поля заметки и обновляет UpdatedAt.
func UpdateNote(ctx context.Context, db sqlx.ExtContext, note *models.Note) error {
	note.UpdatedAt = nowFunc()

	query := `UPDATE notes SET
	            title = :title, content = :content, category = :category, tags = :tags,
	            is_pinned = :is_pinned, is_archived = :is_archived, updated_at = :updated_at
	          WHERE id = :id`
	if err := updateNamed(ctx, db, query, note, "note", note.ID); err != nil {
		return fmt.Errorf("UpdateNote: ошибка обновления заметки ID %d: %w", note.ID, err)
	}
	return nil
}

// DeleteNote удаляет заметку по ее ID.
func DeleteNote(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "notes", "note", id); err != nil {
		return fmt.Errorf("DeleteNote: ошибка удаления заметки ID %d: %w", id, err)
	}
	return nil
}
