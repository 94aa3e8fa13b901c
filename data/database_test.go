package data_test

import (
	"context"
	"errors"
	"testing"

	"loom_server_go/data"
	"loom_server_go/data/datatest"
	"loom_server_go/logging"
	"loom_server_go/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*data.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return data.NewStore(sqlx.NewDb(db, "sqlite3"), logging.Nop{}), mock
}

func TestMigrate_AppliesSchema(t *testing.T) {
	store := datatest.OpenStore(t)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	var fk int
	require.NoError(t, store.DB().Get(&fk, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, fk)
}

func TestWithTx_ChildFailureRollsBackParent_Mock(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO recipes`).WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(`DELETE FROM recipe_ingredients`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO recipe_ingredients`).WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	recipe := &models.Recipe{Name: "Soup", Servings: 1, Difficulty: models.DifficultyMedium}
	err := store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := data.CreateRecipe(ctx, tx, recipe); err != nil {
			return err
		}
		_, err := data.ReplaceRecipeIngredients(ctx, tx, recipe.ID, []models.RecipeIngredient{{Name: "water"}})
		return err
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "constraint failed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_CommitsOnSuccess_Mock(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM notes WHERE id = \?`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.WithTx(ctx, func(tx *sqlx.Tx) error {
		return data.DeleteNote(ctx, tx, 3)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackAndRethrowsPanic_Mock(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = store.WithTx(context.Background(), func(tx *sqlx.Tx) error {
			panic("boom")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_ChildFailureLeavesNoParentRow(t *testing.T) {
	store := datatest.OpenStore(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(tx *sqlx.Tx) error {
		recipe := &models.Recipe{Name: "Bread", Servings: 1, Difficulty: models.DifficultyEasy}
		if err := data.CreateRecipe(ctx, tx, recipe); err != nil {
			return err
		}
		// Пустое имя нарушает CHECK (length(name) > 0).
		_, err := data.ReplaceRecipeIngredients(ctx, tx, recipe.ID, []models.RecipeIngredient{{Name: "flour"}, {Name: ""}})
		return err
	})
	require.Error(t, err)

	var recipes, ingredients int
	require.NoError(t, store.DB().Get(&recipes, "SELECT COUNT(*) FROM recipes"))
	require.NoError(t, store.DB().Get(&ingredients, "SELECT COUNT(*) FROM recipe_ingredients"))
	assert.Zero(t, recipes)
	assert.Zero(t, ingredients)
}
