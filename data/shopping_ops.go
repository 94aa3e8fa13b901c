package data

import (
	"context"
	"fmt"

	"loom_server_go/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const shoppingItemColumns = "id, name, quantity, unit, category, is_purchased, recipe_id, created_at"

// CreateShoppingItem добавляет позицию в список покупок.
func CreateShoppingItem(ctx context.Context, db sqlx.ExtContext, item *models.ShoppingListItem) error {
	item.CreatedAt = nowFunc()

	query := `INSERT INTO shopping_list_items (name, quantity, unit, category, is_purchased, recipe_id, created_at)
	          VALUES (:name, :quantity, :unit, :category, :is_purchased, :recipe_id, :created_at)`

	id, err := insert(ctx, db, query, item)
	if err != nil {
		return fmt.Errorf("CreateShoppingItem: ошибка вставки позиции %q: %w", item.Name, err)
	}
	item.ID = id
	return nil
}

// GetShoppingItemByID извлекает позицию списка покупок по ID.
func GetShoppingItemByID(ctx context.Context, db sqlx.QueryerContext, id int64) (*models.ShoppingListItem, error) {
	item := &models.ShoppingListItem{}
	query := `SELECT ` + shoppingItemColumns + ` FROM shopping_list_items WHERE id = ?`
	if err := getOne(ctx, db, item, "shopping list item", id, query); err != nil {
		return nil, fmt.Errorf("GetShoppingItemByID: ошибка получения позиции ID %d: %w", id, err)
	}
	return item, nil
}

// ListShoppingItems возвращает список покупок, сгруппированный по категории.
func ListShoppingItems(ctx context.Context, db sqlx.QueryerContext, f models.ShoppingListFilter) ([]models.ShoppingListItem, error) {
	b := squirrel.Select(shoppingItemColumns).From("shopping_list_items")
	if f.Purchased != nil {
		b = b.Where(squirrel.Eq{"is_purchased": *f.Purchased})
	}
	b = b.OrderBy("category ASC", "name ASC", "id ASC")

	items := []models.ShoppingListItem{}
	if err := selectAll(ctx, db, &items, b); err != nil {
		return nil, fmt.Errorf("ListShoppingItems: ошибка получения списка покупок: %w", err)
	}
	return items, nil
}

// UpdateShoppingItem сохраняет все поля позиции.
func UpdateShoppingItem(ctx context.Context, db sqlx.ExtContext, item *models.ShoppingListItem) error {
	query := `UPDATE shopping_list_items SET
	            name = :name, quantity = :quantity, unit = :unit, category = :category,
	            is_purchased = :is_purchased, recipe_id = :recipe_id
	          WHERE id = :id`
	if err := updateNamed(ctx, db, query, item, "shopping list item", item.ID); err != nil {
		return fmt.Errorf("UpdateShoppingItem: ошибка обновления позиции ID %d: %w", item.ID, err)
	}
	return nil
}

// DeleteShoppingItem удаляет позицию списка покупок.
func DeleteShoppingItem(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "shopping_list_items", "shopping list item", id); err != nil {
		return fmt.Errorf("DeleteShoppingItem: ошибка удаления позиции ID %d: %w", id, err)
	}
	return nil
}
