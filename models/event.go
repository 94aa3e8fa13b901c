package models

import "time"

// DefaultEventColor - цвет события по умолчанию (hex).
const DefaultEventColor = "#3788d8"

// Event представляет событие календаря.
// EndTime >= StartTime не проверяется.
type Event struct {
	ID              int64      `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Description     *string    `json:"description" db:"description"`
	Location        *string    `json:"location" db:"location"`
	StartTime       time.Time  `json:"start_time" db:"start_time"`
	EndTime         *time.Time `json:"end_time" db:"end_time"`
	AllDay          bool       `json:"all_day" db:"all_day"`
	Category        *string    `json:"category" db:"category"`
	Color           string     `json:"color" db:"color"`
	Recurring       bool       `json:"recurring" db:"recurring"`
	RecurrenceRule  *string    `json:"recurrence_rule" db:"recurrence_rule"`
	ReminderMinutes *int       `json:"reminder_minutes" db:"reminder_minutes"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// EventFilter - параметры выборки событий. Start/End ограничивают start_time включительно.
type EventFilter struct {
	Start    *time.Time
	End      *time.Time
	Category *string
	Limit    uint64
}

// CreateEventRequest - тело запроса на создание события.
// Время передается строкой ISO-8601 и разбирается в сервисе.
type CreateEventRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Location        *string `json:"location"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	AllDay          *bool   `json:"all_day"`
	Category        *string `json:"category"`
	Color           *string `json:"color"`
	Recurring       *bool   `json:"recurring"`
	RecurrenceRule  *string `json:"recurrence_rule"`
	ReminderMinutes *int    `json:"reminder_minutes"`
}

// UpdateEventRequest - тело запроса на частичное обновление события.
type UpdateEventRequest struct {
	Title           Optional[string] `json:"title"`
	Description     Optional[string] `json:"description"`
	Location        Optional[string] `json:"location"`
	StartTime       Optional[string] `json:"start_time"`
	EndTime         Optional[string] `json:"end_time"`
	AllDay          Optional[bool]   `json:"all_day"`
	Category        Optional[string] `json:"category"`
	Color           Optional[string] `json:"color"`
	Recurring       Optional[bool]   `json:"recurring"`
	RecurrenceRule  Optional[string] `json:"recurrence_rule"`
	ReminderMinutes Optional[int]    `json:"reminder_minutes"`
}
