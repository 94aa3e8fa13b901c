package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"loom_server_go/common"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// selectAll выполняет SELECT, собранный squirrel, и сканирует строки в dest.
// dest должен указывать на непустой (не nil) слайс, чтобы пустой результат отдавался как [].
func selectAll(ctx context.Context, db sqlx.QueryerContext, dest any, b squirrel.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("ошибка построения запроса: %w", err)
	}
	return sqlx.SelectContext(ctx, db, dest, query, args...)
}

// getOne выполняет запрос одной записи и переводит sql.ErrNoRows в common.ErrNotFound.
func getOne(ctx context.Context, db sqlx.QueryerContext, dest any, entity string, id int64, query string) error {
	err := sqlx.GetContext(ctx, db, dest, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return common.NotFound(entity, id)
	}
	return err
}

// insert выполняет именованный INSERT и возвращает ID новой строки.
func insert(ctx context.Context, db sqlx.ExtContext, query string, arg any) (int64, error) {
	result, err := sqlx.NamedExecContext(ctx, db, query, arg)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения LastInsertId: %w", err)
	}
	return id, nil
}

// expectAffected возвращает common.ErrNotFound, если запрос не затронул ни одной строки.
func expectAffected(result sql.Result, entity string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения RowsAffected: %w", err)
	}
	if rowsAffected == 0 {
		return common.NotFound(entity, id)
	}
	return nil
}

// deleteByID удаляет строку таблицы table по id. Дочерние строки удаляются каскадно внешними ключами.
func deleteByID(ctx context.Context, db sqlx.ExecerContext, table, entity string, id int64) error {
	result, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectAffected(result, entity, id)
}

// updateNamed выполняет именованный UPDATE одной строки.
func updateNamed(ctx context.Context, db sqlx.ExtContext, query string, arg any, entity string, id int64) error {
	result, err := sqlx.NamedExecContext(ctx, db, query, arg)
	if err != nil {
		return err
	}
	return expectAffected(result, entity, id)
}
