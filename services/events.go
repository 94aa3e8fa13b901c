package services

import (
	"context"
	"fmt"

	"loom_server_go/data"
	"loom_server_go/logging"
	"loom_server_go/models"

	"github.com/jmoiron/sqlx"
)

// EventService управляет событиями календаря.
type EventService struct {
	base
}

func NewEventService(store *data.Store, log logging.Logger) *EventService {
	return &EventService{base: newBase(store, log, "events")}
}

func (s *EventService) List(ctx context.Context, f models.EventFilter) ([]models.Event, error) {
	return data.ListEvents(ctx, s.store.DB(), f)
}

// Upcoming возвращает события, которые начинаются не раньше текущего момента.
func (s *EventService) Upcoming(ctx context.Context, limit uint64) ([]models.Event, error) {
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	return data.ListUpcomingEvents(ctx, s.store.DB(), s.now(), limit)
}

// Past возвращает уже начавшиеся события, последние первыми.
func (s *EventService) Past(ctx context.Context, limit uint64) ([]models.Event, error) {
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	return data.ListPastEvents(ctx, s.store.DB(), s.now(), limit)
}

func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	return data.GetEventByID(ctx, s.store.DB(), id)
}

func (s *EventService) Create(ctx context.Context, req models.CreateEventRequest) (*models.Event, error) {
	title, err := requiredString("title", req.Title)
	if err != nil {
		return nil, err
	}
	start, err := parseRequiredTimestamp("start_time", req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalTimestamp("end_time", req.EndTime)
	if err != nil {
		return nil, err
	}
	if err := nonNegative("reminder_minutes", req.ReminderMinutes); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:           title,
		Description:     req.Description,
		Location:        req.Location,
		StartTime:       start,
		EndTime:         end,
		AllDay:          orDefault(req.AllDay, false),
		Category:        req.Category,
		Color:           orDefault(req.Color, models.DefaultEventColor),
		Recurring:       orDefault(req.Recurring, false),
		RecurrenceRule:  req.RecurrenceRule,
		ReminderMinutes: req.ReminderMinutes,
	}
	if event.Color == "" {
		event.Color = models.DefaultEventColor
	}
	if err := data.CreateEvent(ctx, s.store.DB(), event); err != nil {
		return nil, fmt.Errorf("EventService.Create: %w", err)
	}
	s.log.Debug(ctx, "событие создано", "id", event.ID)
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id int64, req models.UpdateEventRequest) (*models.Event, error) {
	var event *models.Event
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if event, err = data.GetEventByID(ctx, tx, id); err != nil {
			return err
		}
		if err := setRequiredString("title", req.Title, &event.Title); err != nil {
			return err
		}
		setNullable(req.Description, &event.Description)
		setNullable(req.Location, &event.Location)
		if err := setRequiredTimestamp("start_time", req.StartTime, &event.StartTime); err != nil {
			return err
		}
		if err := setNullableTimestamp("end_time", req.EndTime, &event.EndTime); err != nil {
			return err
		}
		if err := setRequired("all_day", req.AllDay, &event.AllDay); err != nil {
			return err
		}
		setNullable(req.Category, &event.Category)
		if err := setRequiredString("color", req.Color, &event.Color); err != nil {
			return err
		}
		if err := setRequired("recurring", req.Recurring, &event.Recurring); err != nil {
			return err
		}
		setNullable(req.RecurrenceRule, &event.RecurrenceRule)
		setNullable(req.ReminderMinutes, &event.ReminderMinutes)
		if err := nonNegative("reminder_minutes", event.ReminderMinutes); err != nil {
			return err
		}
		return data.UpdateEvent(ctx, tx, event)
	})
	if err != nil {
		return nil, fmt.Errorf("EventService.Update: %w", err)
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id int64) error {
	return data.DeleteEvent(ctx, s.store.DB(), id)
}
