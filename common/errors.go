// Package common содержит общие для всех слоев ошибки.
// Сравнивать их нужно через errors.Is / errors.As.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound возвращается слоем data, когда запись с указанным ID отсутствует.
	ErrNotFound = errors.New("not found")

	// ErrValidation - базовая ошибка для всех ошибок валидации входных данных.
	ErrValidation = errors.New("validation error")
)

// ValidationError описывает некорректное или отсутствующее поле запроса.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is позволяет сопоставлять любую ValidationError с ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Required возвращает ошибку для отсутствующего обязательного поля.
func Required(field string) error {
	return &ValidationError{Field: field, Message: "field is required"}
}

// Invalid возвращает ошибку для поля с недопустимым значением.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError - запись с указанным ID отсутствует.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, ErrNotFound)
}

// Is позволяет сопоставлять NotFoundError с ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound возвращает ошибку отсутствующей записи с указанием сущности и ID.
func NotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}
