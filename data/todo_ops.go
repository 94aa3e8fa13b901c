package data

import (
	"context"
	"fmt"

	"loom_server_go/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const (
	todoColumns = `id, title, description, priority, status, due_date, completed_at, is_weekly, week_day,
	category, created_at, updated_at`
	todoReminderColumns = "id, todo_id, reminder_time, message, is_sent, created_at"

	// priorityRank упорядочивает приоритеты по смыслу, а не по алфавиту.
	priorityRank = "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END"
)

// CreateTodo создает задачу без напоминаний.
func CreateTodo(ctx context.Context, db sqlx.ExtContext, todo *models.Todo) error {
	now := nowFunc()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	query := `INSERT INTO todos (title, description, priority, status, due_date, completed_at, is_weekly, week_day,
	                             category, created_at, updated_at)
	          VALUES (:title, :description, :priority, :status, :due_date, :completed_at, :is_weekly, :week_day,
	                  :category, :created_at, :updated_at)`

	id, err := insert(ctx, db, query, todo)
	if err != nil {
		return fmt.Errorf("CreateTodo: ошибка вставки задачи: %w", err)
	}
	todo.ID = id
	if todo.Reminders == nil {
		todo.Reminders = []models.TodoReminder{}
	}
	return nil
}

// GetTodoByID извлекает задачу вместе с напоминаниями.
func GetTodoByID(ctx context.Context, db sqlx.QueryerContext, id int64) (*models.Todo, error) {
	todo := &models.Todo{}
	if err := getOne(ctx, db, todo, "todo", id, `SELECT `+todoColumns+` FROM todos WHERE id = ?`); err != nil {
		return nil, fmt.Errorf("GetTodoByID: ошибка получения задачи ID %d: %w", id, err)
	}
	todos := []models.Todo{*todo}
	if err := attachTodoReminders(ctx, db, todos); err != nil {
		return nil, fmt.Errorf("GetTodoByID: %w", err)
	}
	return &todos[0], nil
}

// ListTodos возвращает задачи: сначала более приоритетные, затем по сроку.
func ListTodos(ctx context.Context, db sqlx.QueryerContext, f models.TodoFilter) ([]models.Todo, error) {
	b := squirrel.Select(todoColumns).From("todos")
	if f.Status != nil {
		b = b.Where(squirrel.Eq{"status": *f.Status})
	}
	if f.Priority != nil {
		b = b.Where(squirrel.Eq{"priority": *f.Priority})
	}
	if f.Category != nil {
		b = b.Where(squirrel.Eq{"category": *f.Category})
	}
	if f.Weekly {
		b = b.Where(squirrel.Eq{"is_weekly": true}).OrderBy("week_day ASC", "id ASC")
	} else {
		b = b.OrderBy(priorityRank+" DESC", "due_date ASC", "id ASC")
	}
	if f.Limit > 0 {
		b = b.Limit(f.Limit)
	}

	todos := []models.Todo{}
	if err := selectAll(ctx, db, &todos, b); err != nil {
		return nil, fmt.Errorf("ListTodos: ошибка получения задач: %w", err)
	}
	if err := attachTodoReminders(ctx, db, todos); err != nil {
		return nil, fmt.Errorf("ListTodos: %w", err)
	}
	return todos, nil
}

// UpdateTodo сохраняет все поля задачи (без напоминаний).
func UpdateTodo(ctx context.Context, db sqlx.ExtContext, todo *models.Todo) error {
	todo.UpdatedAt = nowFunc()

	query := `UPDATE todos SET
	            title = :title, description = :description, priority = :priority, status = :status,
	            due_date = :due_date, completed_at = :completed_at, is_weekly = :is_weekly,
	            week_day = :week_day, category = :category, updated_at = :updated_at
	          WHERE id = :id`
	if err := updateNamed(ctx, db, query, todo, "todo", todo.ID); err != nil {
		return fmt.Errorf("UpdateTodo: ошибка обновления задачи ID %d: %w", todo.ID, err)
	}
	return nil
}

// DeleteTodo удаляет задачу; напоминания удаляются каскадно.
func DeleteTodo(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "todos", "todo", id); err != nil {
		return fmt.Errorf("DeleteTodo: ошибка удаления задачи ID %d: %w", id, err)
	}
	return nil
}

// CreateTodoReminder добавляет напоминание к задаче reminder.TodoID.
func CreateTodoReminder(ctx context.Context, db sqlx.ExtContext, reminder *models.TodoReminder) error {
	reminder.CreatedAt = nowFunc()

	query := `INSERT INTO todo_reminders (todo_id, reminder_time, message, is_sent, created_at)
	          VALUES (:todo_id, :reminder_time, :message, :is_sent, :created_at)`

	id, err := insert(ctx, db, query, reminder)
	if err != nil {
		return fmt.Errorf("CreateTodoReminder: ошибка вставки напоминания для задачи ID %d: %w", reminder.TodoID, err)
	}
	reminder.ID = id
	return nil
}

// DeleteTodoReminder удаляет напоминание по его ID.
func DeleteTodoReminder(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "todo_reminders", "todo reminder", id); err != nil {
		return fmt.Errorf("DeleteTodoReminder: ошибка удаления напоминания ID %d: %w", id, err)
	}
	return nil
}

// attachTodoReminders загружает напоминания для всех задач одним запросом.
func attachTodoReminders(ctx context.Context, db sqlx.QueryerContext, todos []models.Todo) error {
	if len(todos) == 0 {
		return nil
	}
	ids := make([]int64, len(todos))
	byID := make(map[int64]*models.Todo, len(todos))
	for i := range todos {
		todos[i].Reminders = []models.TodoReminder{}
		ids[i] = todos[i].ID
		byID[todos[i].ID] = &todos[i]
	}

	b := squirrel.Select(todoReminderColumns).From("todo_reminders").
		Where(squirrel.Eq{"todo_id": ids}).
		OrderBy("reminder_time ASC", "id ASC")

	var reminders []models.TodoReminder
	if err := selectAll(ctx, db, &reminders, b); err != nil {
		return fmt.Errorf("ошибка получения напоминаний: %w", err)
	}
	for _, r := range reminders {
		if todo, ok := byID[r.TodoID]; ok {
			todo.Reminders = append(todo.Reminders, r)
		}
	}
	return nil
}
