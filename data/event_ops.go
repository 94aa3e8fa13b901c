package data

import (
	"context"
	"fmt"
	"time"

	"loom_server_go/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const eventColumns = `id, title, description, location, start_time, end_time, all_day, category, color,
	recurring, recurrence_rule, reminder_minutes, created_at, updated_at`

// CreateEvent создает событие календаря.
func CreateEvent(ctx context.Context, db sqlx.ExtContext, event *models.Event) error {
	now := nowFunc()
	event.CreatedAt = now
	event.UpdatedAt = now

	query := `INSERT INTO events (title, description, location, start_time, end_time, all_day, category, color,
	                              recurring, recurrence_rule, reminder_minutes, created_at, updated_at)
	          VALUES (:title, :description, :location, :start_time, :end_time, :all_day, :category, :color,
	                  :recurring, :recurrence_rule, :reminder_minutes, :created_at, :updated_at)`

	id, err := insert(ctx, db, query, event)
	if err != nil {
		return fmt.Errorf("CreateEvent: ошибка вставки события: %w", err)
	}
	event.ID = id
	return nil
}

// GetEventByID извлекает событие по его ID.
func GetEventByID(ctx context.Context, db sqlx.QueryerContext, id int64) (*models.Event, error) {
	event := &models.Event{}
	if err := getOne(ctx, db, event, "event", id, `SELECT `+eventColumns+` FROM events WHERE id = ?`); err != nil {
		return nil, fmt.Errorf("GetEventByID: ошибка получения события ID %d: %w", id, err)
	}
	return event, nil
}

// ListEvents возвращает события в хронологическом порядке.
// Границы Start/End применяются к start_time включительно.
func ListEvents(ctx context.Context, db sqlx.QueryerContext, f models.EventFilter) ([]models.Event, error) {
	b := squirrel.Select(eventColumns).From("events")
	if f.Start != nil {
		b = b.Where(squirrel.GtOrEq{"start_time": f.Start.UTC()})
	}
	if f.End != nil {
		b = b.Where(squirrel.LtOrEq{"start_time": f.End.UTC()})
	}
	if f.Category != nil {
		b = b.Where(squirrel.Eq{"category": *f.Category})
	}
	b = b.OrderBy("start_time ASC", "id ASC")
	if f.Limit > 0 {
		b = b.Limit(f.Limit)
	}

	events := []models.Event{}
	if err := selectAll(ctx, db, &events, b); err != nil {
		return nil, fmt.Errorf("ListEvents: ошибка получения событий: %w", err)
	}
	return events, nil
}

// ListUpcomingEvents возвращает события с start_time >= now, ближайшие первыми.
func ListUpcomingEvents(ctx context.Context, db sqlx.QueryerContext, now time.Time, limit uint64) ([]models.Event, error) {
	return ListEvents(ctx, db, models.EventFilter{Start: &now, Limit: limit})
}

// ListPastEvents возвращает события с start_time < now, последние первыми.
func ListPastEvents(ctx context.Context, db sqlx.QueryerContext, now time.Time, limit uint64) ([]models.Event, error) {
	b := squirrel.Select(eventColumns).From("events").
		Where(squirrel.Lt{"start_time": now.UTC()}).
		OrderBy("start_time DESC", "id DESC")
	if limit > 0 {
		b = b.Limit(limit)
	}

	events := []models.Event{}
	if err := selectAll(ctx, db, &events, b); err != nil {
		return nil, fmt.Errorf("ListPastEvents: ошибка получения прошедших событий: %w", err)
	}
	return events, nil
}

// UpdateEvent сохраняет все поля события.
func UpdateEvent(ctx context.Context, db sqlx.ExtContext, event *models.Event) error {
	event.UpdatedAt = nowFunc()

	query := `UPDATE events SET
	            title = :title, description = :description, location = :location,
	            start_time = :start_time, end_time = :end_time, all_day = :all_day,
	            category = :category, color = :color, recurring = :recurring,
	            recurrence_rule = :recurrence_rule, reminder_minutes = :reminder_minutes,
	            updated_at = :updated_at
	          WHERE id = :id`
	if err := updateNamed(ctx, db, query, event, "event", event.ID); err != nil {
		return fmt.Errorf("UpdateEvent: ошибка обновления события ID %d: %w", event.ID, err)
	}
	return nil
}

// DeleteEvent удаляет событие по его ID.
func DeleteEvent(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "events", "event", id); err != nil {
		return fmt.Errorf("DeleteEvent: ошибка удаления события ID %d: %w", id, err)
	}
	return nil
}
