// Package datatest содержит помощники для тестов, которым нужна настоящая БД.
package datatest

import (
	"context"
	"testing"

	"loom_server_go/data"
	"loom_server_go/logging"

	"github.com/stretchr/testify/require"
)

// OpenStore открывает SQLite в памяти, применяет миграции и закрывает БД по завершении теста.
func OpenStore(t testing.TB) *data.Store {
	t.Helper()
	ctx := context.Background()

	store, err := data.Open(ctx, ":memory:", logging.Nop{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(ctx))
	return store
}

// Ptr возвращает указатель на v. Удобно для необязательных полей в тестах.
func Ptr[T any](v T) *T {
	return &v
}
