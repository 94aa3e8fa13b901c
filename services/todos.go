package services

import (
	"context"
	"fmt"

	"loom_server_go/data"
	"loom_server_go/logging"
	"loom_server_go/models"

	"github.com/jmoiron/sqlx"
)

// TodoService управляет задачами и их напоминаниями.
type TodoService struct {
	base
}

func NewTodoService(store *data.Store, log logging.Logger) *TodoService {
	return &TodoService{base: newBase(store, log, "todos")}
}

func (s *TodoService) List(ctx context.Context, f models.TodoFilter) ([]models.Todo, error) {
	if f.Status != nil {
		if err := oneOf("status", *f.Status, models.TodoStatuses); err != nil {
			return nil, err
		}
	}
	if f.Priority != nil {
		if err := oneOf("priority", *f.Priority, models.TodoPriorities); err != nil {
			return nil, err
		}
	}
	return data.ListTodos(ctx, s.store.DB(), f)
}

// Weekly возвращает еженедельные задачи по дням недели.
func (s *TodoService) Weekly(ctx context.Context) ([]models.Todo, error) {
	return data.ListTodos(ctx, s.store.DB(), models.TodoFilter{Weekly: true})
}

func (s *TodoService) Get(ctx context.Context, id int64) (*models.Todo, error) {
	return data.GetTodoByID(ctx, s.store.DB(), id)
}

// Create создает задачу вместе с напоминаниями в одной транзакции.
func (s *TodoService) Create(ctx context.Context, req models.CreateTodoRequest) (*models.Todo, error) {
	title, err := requiredString("title", req.Title)
	if err != nil {
		return nil, err
	}
	priority, err := enumOrDefault("priority", req.Priority, models.PriorityMedium, models.TodoPriorities)
	if err != nil {
		return nil, err
	}
	status, err := enumOrDefault("status", req.Status, models.TodoStatusPending, models.TodoStatuses)
	if err != nil {
		return nil, err
	}
	due, err := parseOptionalTimestamp("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := weekDay(req.WeekDay); err != nil {
		return nil, err
	}
	reminders := make([]models.TodoReminder, 0, len(req.Reminders))
	for _, r := range req.Reminders {
		reminder, err := newTodoReminder(r)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}

	todo := &models.Todo{
		Title:       title,
		Description: req.Description,
		Priority:    priority,
		Status:      status,
		DueDate:     due,
		IsWeekly:    orDefault(req.IsWeekly, false),
		WeekDay:     req.WeekDay,
		Category:    req.Category,
	}
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := data.CreateTodo(ctx, tx, todo); err != nil {
			return err
		}
		for i := range reminders {
			reminders[i].TodoID = todo.ID
			if err := data.CreateTodoReminder(ctx, tx, &reminders[i]); err != nil {
				return err
			}
		}
		todo.Reminders = reminders
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("TodoService.Create: %w", err)
	}
	s.log.Debug(ctx, "задача создана", "id", todo.ID, "reminders", len(reminders))
	return todo, nil
}

// Update применяет переданные поля. Смена статуса не трогает completed_at:
// его меняет только явно переданный ключ completed_at.
func (s *TodoService) Update(ctx context.Context, id int64, req models.UpdateTodoRequest) (*models.Todo, error) {
	var todo *models.Todo
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if todo, err = data.GetTodoByID(ctx, tx, id); err != nil {
			return err
		}
		if err := setRequiredString("title", req.Title, &todo.Title); err != nil {
			return err
		}
		setNullable(req.Description, &todo.Description)
		if err := setRequiredEnum("priority", req.Priority, models.TodoPriorities, &todo.Priority); err != nil {
			return err
		}
		if err := setRequiredEnum("status", req.Status, models.TodoStatuses, &todo.Status); err != nil {
			return err
		}
		if err := setNullableTimestamp("due_date", req.DueDate, &todo.DueDate); err != nil {
			return err
		}
		if req.CompletedAt.Set {
			if req.CompletedAt.Null {
				todo.CompletedAt = nil
			} else if todo.CompletedAt, err = parseCompletedAt(req.CompletedAt.Value, s.now()); err != nil {
				return err
			}
		}
		if err := setRequired("is_weekly", req.IsWeekly, &todo.IsWeekly); err != nil {
			return err
		}
		setNullable(req.WeekDay, &todo.WeekDay)
		if err := weekDay(todo.WeekDay); err != nil {
			return err
		}
		setNullable(req.Category, &todo.Category)
		return data.UpdateTodo(ctx, tx, todo)
	})
	if err != nil {
		return nil, fmt.Errorf("TodoService.Update: %w", err)
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	return data.DeleteTodo(ctx, s.store.DB(), id)
}

// AddReminder добавляет напоминание к существующей задаче.
func (s *TodoService) AddReminder(ctx context.Context, todoID int64, req models.CreateTodoReminderRequest) (*models.TodoReminder, error) {
	reminder, err := newTodoReminder(req)
	if err != nil {
		return nil, err
	}
	reminder.TodoID = todoID
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := data.GetTodoByID(ctx, tx, todoID); err != nil {
			return err
		}
		return data.CreateTodoReminder(ctx, tx, &reminder)
	})
	if err != nil {
		return nil, fmt.Errorf("TodoService.AddReminder: %w", err)
	}
	return &reminder, nil
}

func (s *TodoService) DeleteReminder(ctx context.Context, id int64) error {
	return data.DeleteTodoReminder(ctx, s.store.DB(), id)
}

func newTodoReminder(req models.CreateTodoReminderRequest) (models.TodoReminder, error) {
	at, err := parseRequiredTimestamp("reminder_time", req.ReminderTime)
	if err != nil {
		return models.TodoReminder{}, err
	}
	return models.TodoReminder{ReminderTime: at, Message: req.Message}, nil
}
