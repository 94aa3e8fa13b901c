// Package logging задает минимальный интерфейс структурированного логирования,
// которым пользуются все слои сервера.
package logging

import "context"

// Logger - структурированный логгер с поддержкой контекста.
//
// Аргументы args интерпретируются как пары ключ-значение:
//
//	log.Info(ctx, "сервер запущен", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With возвращает дочерний логгер, который всегда добавляет указанные пары.
	With(args ...any) Logger
}

// Nop - логгер, который ничего не пишет. Удобен в тестах.
type Nop struct{}

func (Nop) Debug(context.Context, string, ...any) {}
func (Nop) Info(context.Context, string, ...any)  {}
func (Nop) Warn(context.Context, string, ...any)  {}
func (Nop) Error(context.Context, string, ...any) {}
func (n Nop) With(...any) Logger                  { return n }
