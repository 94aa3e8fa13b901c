package models

import "time"

// Note представляет собой заметку в системе.
type Note struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Content    *string   `json:"content" db:"content"`
	Category   *string   `json:"category" db:"category"`
	Tags       TagList   `json:"tags" db:"tags"`
	IsPinned   bool      `json:"is_pinned" db:"is_pinned"`
	IsArchived bool      `json:"is_archived" db:"is_archived"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// NoteFilter - параметры выборки заметок. Пустые поля не участвуют в фильтрации.
type NoteFilter struct {
	Category *string
	Search   *string
	Archived bool
	// Recent сортирует только по времени изменения, без учета закрепления.
	Recent   bool
	Limit    uint64
}

// CreateNoteRequest - тело запроса на создание заметки.
type CreateNoteRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Category   *string `json:"category"`
	Tags       TagList `json:"tags"`
	IsPinned   *bool   `json:"is_pinned"`
	IsArchived *bool   `json:"is_archived"`
}

// UpdateNoteRequest - тело запроса на частичное обновление заметки.
type UpdateNoteRequest struct {
	Title      Optional[string]  `json:"title"`
	Content    Optional[string]  `json:"content"`
	Category   Optional[string]  `json:"category"`
	Tags       Optional[TagList] `json:"tags"`
	IsPinned   Optional[bool]    `json:"is_pinned"`
	IsArchived Optional[bool]    `json:"is_archived"`
}
