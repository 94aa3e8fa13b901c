package data

import (
	"context"
	"fmt"

	"loom_server_go/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const (
	recipeColumns = `id, name, description, instructions, prep_time, cook_time, servings, category, cuisine,
	difficulty, image_url, created_at, updated_at`
	ingredientColumns = "id, recipe_id, name, quantity, unit, notes"
)

// CreateRecipe создает рецепт без дочерних записей.
// Ингредиенты и теги добавляются в той же транзакции через ReplaceRecipeIngredients / ReplaceRecipeTags.
func CreateRecipe(ctx context.Context, db sqlx.ExtContext, recipe *models.Recipe) error {
	now := nowFunc()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	query := `INSERT INTO recipes (name, description, instructions, prep_time, cook_time, servings, category,
	                               cuisine, difficulty, image_url, created_at, updated_at)
	          VALUES (:name, :description, :instructions, :prep_time, :cook_time, :servings, :category,
	                  :cuisine, :difficulty, :image_url, :created_at, :updated_at)`

	id, err := insert(ctx, db, query, recipe)
	if err != nil {
		return fmt.Errorf("CreateRecipe: ошибка вставки рецепта: %w", err)
	}
	recipe.ID = id
	return nil
}

// GetRecipeByID извлекает рецепт вместе с ингредиентами и тегами.
func GetRecipeByID(ctx context.Context, db sqlx.QueryerContext, id int64) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	if err := getOne(ctx, db, recipe, "recipe", id, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`); err != nil {
		return nil, fmt.Errorf("GetRecipeByID: ошибка получения рецепта ID %d: %w", id, err)
	}
	recipes := []models.Recipe{*recipe}
	if err := attachRecipeChildren(ctx, db, recipes); err != nil {
		return nil, fmt.Errorf("GetRecipeByID: %w", err)
	}
	return &recipes[0], nil
}

// ListRecipes возвращает рецепты по фильтру, упорядоченные по названию.
func ListRecipes(ctx context.Context, db sqlx.QueryerContext, f models.RecipeFilter) ([]models.Recipe, error) {
	b := squirrel.Select(recipeColumns).From("recipes")
	if f.Category != nil {
		b = b.Where(squirrel.Eq{"category": *f.Category})
	}
	if f.Cuisine != nil {
		b = b.Where(squirrel.Eq{"cuisine": *f.Cuisine})
	}
	if f.Search != nil {
		b = b.Where("(instr(name, ?) > 0 OR instr(coalesce(description, ''), ?) > 0)", *f.Search, *f.Search)
	}
	if f.Tag != nil {
		b = b.Where("id IN (SELECT recipe_id FROM recipe_tags WHERE tag_name = ?)", *f.Tag)
	}
	b = b.OrderBy("name ASC", "id ASC")

	recipes := []models.Recipe{}
	if err := selectAll(ctx, db, &recipes, b); err != nil {
		return nil, fmt.Errorf("ListRecipes: ошибка получения рецептов: %w", err)
	}
	if err := attachRecipeChildren(ctx, db, recipes); err != nil {
		return nil, fmt.Errorf("ListRecipes: %w", err)
	}
	return recipes, nil
}

// UpdateRecipe сохраняет все поля рецепта (без дочерних записей).
func UpdateRecipe(ctx context.Context, db sqlx.ExtContext, recipe *models.Recipe) error {
	recipe.UpdatedAt = nowFunc()

	query := `UPDATE recipes SET
	            name = :name, description = :description, instructions = :instructions,
	            prep_time = :prep_time, cook_time = :cook_time, servings = :servings,
	            category = :category, cuisine = :cuisine, difficulty = :difficulty,
	            image_url = :image_url, updated_at = :updated_at
	          WHERE id = :id`
	if err := updateNamed(ctx, db, query, recipe, "recipe", recipe.ID); err != nil {
		return fmt.Errorf("UpdateRecipe: ошибка обновления рецепта ID %d: %w", recipe.ID, err)
	}
	return nil
}

// DeleteRecipe удаляет рецепт. Ингредиенты и теги удаляются каскадно,
// у позиций списка покупок recipe_id становится NULL.
func DeleteRecipe(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "recipes", "recipe", id); err != nil {
		return fmt.Errorf("DeleteRecipe: ошибка удаления рецепта ID %d: %w", id, err)
	}
	return nil
}

// ReplaceRecipeIngredients заменяет набор ингредиентов рецепта. Вызывать в транзакции.
func ReplaceRecipeIngredients(ctx context.Context, db sqlx.ExtContext, recipeID int64, ingredients []models.RecipeIngredient) ([]models.RecipeIngredient, error) {
	if _, err := db.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipeID); err != nil {
		return nil, fmt.Errorf("ReplaceRecipeIngredients: ошибка удаления ингредиентов рецепта ID %d: %w", recipeID, err)
	}

	query := `INSERT INTO recipe_ingredients (recipe_id, name, quantity, unit, notes)
	          VALUES (:recipe_id, :name, :quantity, :unit, :notes)`

	created := make([]models.RecipeIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		ing.RecipeID = recipeID
		id, err := insert(ctx, db, query, &ing)
		if err != nil {
			return nil, fmt.Errorf("ReplaceRecipeIngredients: ошибка вставки ингредиента %q: %w", ing.Name, err)
		}
		ing.ID = id
		created = append(created, ing)
	}
	return created, nil
}

// ReplaceRecipeTags заменяет набор тегов рецепта. Вызывать в транзакции.
func ReplaceRecipeTags(ctx context.Context, db sqlx.ExtContext, recipeID int64, tags []string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, recipeID); err != nil {
		return fmt.Errorf("ReplaceRecipeTags: ошибка удаления тегов рецепта ID %d: %w", recipeID, err)
	}

	query := `INSERT INTO recipe_tags (recipe_id, tag_name) VALUES (:recipe_id, :tag_name)`
	for _, tag := range tags {
		if _, err := insert(ctx, db, query, models.RecipeTag{RecipeID: recipeID, TagName: tag}); err != nil {
			return fmt.Errorf("ReplaceRecipeTags: ошибка вставки тега %q: %w", tag, err)
		}
	}
	return nil
}

// attachRecipeChildren загружает ингредиенты и теги для всех рецептов двумя запросами.
func attachRecipeChildren(ctx context.Context, db sqlx.QueryerContext, recipes []models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	ids := make([]int64, len(recipes))
	byID := make(map[int64]*models.Recipe, len(recipes))
	for i := range recipes {
		recipes[i].Ingredients = []models.RecipeIngredient{}
		recipes[i].Tags = []string{}
		ids[i] = recipes[i].ID
		byID[recipes[i].ID] = &recipes[i]
	}

	var ingredients []models.RecipeIngredient
	b := squirrel.Select(ingredientColumns).From("recipe_ingredients").
		Where(squirrel.Eq{"recipe_id": ids}).OrderBy("id ASC")
	if err := selectAll(ctx, db, &ingredients, b); err != nil {
		return fmt.Errorf("ошибка получения ингредиентов: %w", err)
	}
	for _, ing := range ingredients {
		byID[ing.RecipeID].Ingredients = append(byID[ing.RecipeID].Ingredients, ing)
	}

	var tags []models.RecipeTag
	b = squirrel.Select("id, recipe_id, tag_name").From("recipe_tags").
		Where(squirrel.Eq{"recipe_id": ids}).OrderBy("id ASC")
	if err := selectAll(ctx, db, &tags, b); err != nil {
		return fmt.Errorf("ошибка получения тегов: %w", err)
	}
	for _, tag := range tags {
		byID[tag.RecipeID].Tags = append(byID[tag.RecipeID].Tags, tag.TagName)
	}
	return nil
}
