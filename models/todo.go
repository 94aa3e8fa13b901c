package models

import (
	"encoding/json"
	"time"
)

// Приоритеты задач.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Статусы задач.
const (
	TodoStatusPending    = "pending"
	TodoStatusInProgress = "in_progress"
	TodoStatusCompleted  = "completed"
)

// TodoPriorities и TodoStatuses - допустимые значения перечислений.
var (
	TodoPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
	TodoStatuses   = []string{TodoStatusPending, TodoStatusInProgress, TodoStatusCompleted}
)

// Todo представляет задачу. Reminders удаляются вместе с задачей.
type Todo struct {
	ID          int64          `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description *string        `json:"description" db:"description"`
	Priority    string         `json:"priority" db:"priority"`
	Status      string         `json:"status" db:"status"`
	DueDate     *time.Time     `json:"due_date" db:"due_date"`
	CompletedAt *time.Time     `json:"completed_at" db:"completed_at"`
	IsWeekly    bool           `json:"is_weekly" db:"is_weekly"`
	WeekDay     *int           `json:"week_day" db:"week_day"` // 0-6, понедельник-воскресенье
	Category    *string        `json:"category" db:"category"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
	Reminders   []TodoReminder `json:"reminders" db:"-"`
}

// TodoReminder - напоминание по таймеру для задачи.
type TodoReminder struct {
	ID           int64     `json:"id" db:"id"`
	TodoID       int64     `json:"todo_id" db:"todo_id"`
	ReminderTime time.Time `json:"reminder_time" db:"reminder_time"`
	Message      *string   `json:"message" db:"message"`
	IsSent       bool      `json:"is_sent" db:"is_sent"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// TodoFilter - параметры выборки задач.
type TodoFilter struct {
	Status   *string
	Priority *string
	Category *string
	Weekly   bool
	Limit    uint64
}

// CreateTodoReminderRequest - напоминание в составе запроса на создание задачи
// или отдельный запрос POST /todos/api/todos/{id}/reminders.
type CreateTodoReminderRequest struct {
	ReminderTime *string `json:"reminder_time"`
	Message      *string `json:"message"`
}

// CreateTodoRequest - тело запроса на создание задачи.
type CreateTodoRequest struct {
	Title       *string                     `json:"title"`
	Description *string                     `json:"description"`
	Priority    *string                     `json:"priority"`
	Status      *string                     `json:"status"`
	DueDate     *string                     `json:"due_date"`
	IsWeekly    *bool                       `json:"is_weekly"`
	WeekDay     *int                        `json:"week_day"`
	Category    *string                     `json:"category"`
	Reminders   []CreateTodoReminderRequest `json:"reminders"`
}

// UpdateTodoRequest - тело запроса на частичное обновление задачи.
// CompletedAt принимает null (очистить), строку ISO-8601 или true (текущее время),
// поэтому хранится как необработанный JSON.
type UpdateTodoRequest struct {
	Title       Optional[string]          `json:"title"`
	Description Optional[string]          `json:"description"`
	Priority    Optional[string]          `json:"priority"`
	Status      Optional[string]          `json:"status"`
	DueDate     Optional[string]          `json:"due_date"`
	CompletedAt Optional[json.RawMessage] `json:"completed_at"`
	IsWeekly    Optional[bool]            `json:"is_weekly"`
	WeekDay     Optional[int]             `json:"week_day"`
	Category    Optional[string]          `json:"category"`
}
