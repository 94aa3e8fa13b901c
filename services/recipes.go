package services

import (
	"context"
	"fmt"

	"loom_server_go/common"
	"loom_server_go/data"
	"loom_server_go/logging"
	"loom_server_go/models"

	"github.com/jmoiron/sqlx"
)

// DefaultServings - число порций нового рецепта по умолчанию.
const DefaultServings = 1

// RecipeService управляет рецептами и списком покупок.
type RecipeService struct {
	base
}

func NewRecipeService(store *data.Store, log logging.Logger) *RecipeService {
	return &RecipeService{base: newBase(store, log, "recipes")}
}

func (s *RecipeService) List(ctx context.Context, f models.RecipeFilter) ([]models.Recipe, error) {
	return data.ListRecipes(ctx, s.store.DB(), f)
}

func (s *RecipeService) Get(ctx context.Context, id int64) (*models.Recipe, error) {
	return data.GetRecipeByID(ctx, s.store.DB(), id)
}

// Create создает рецепт с ингредиентами и тегами в одной транзакции.
func (s *RecipeService) Create(ctx context.Context, req models.CreateRecipeRequest) (*models.Recipe, error) {
	name, err := requiredString("name", req.Name)
	if err != nil {
		return nil, err
	}
	difficulty, err := enumOrDefault("difficulty", req.Difficulty, models.DifficultyMedium, models.RecipeDifficulties)
	if err != nil {
		return nil, err
	}
	if err := nonNegative("prep_time", req.PrepTime); err != nil {
		return nil, err
	}
	if err := nonNegative("cook_time", req.CookTime); err != nil {
		return nil, err
	}
	servings := orDefault(req.Servings, DefaultServings)
	if err := positive("servings", servings); err != nil {
		return nil, err
	}
	ingredients, err := newIngredients(req.Ingredients)
	if err != nil {
		return nil, err
	}
	tags, err := newRecipeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Name:         name,
		Description:  req.Description,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     servings,
		Category:     req.Category,
		Cuisine:      req.Cuisine,
		Difficulty:   difficulty,
		ImageURL:     req.ImageURL,
	}
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := data.CreateRecipe(ctx, tx, recipe); err != nil {
			return err
		}
		if recipe.Ingredients, err = data.ReplaceRecipeIngredients(ctx, tx, recipe.ID, ingredients); err != nil {
			return err
		}
		recipe.Tags = tags
		return data.ReplaceRecipeTags(ctx, tx, recipe.ID, tags)
	})
	if err != nil {
		return nil, fmt.Errorf("RecipeService.Create: %w", err)
	}
	s.log.Debug(ctx, "рецепт создан", "id", recipe.ID, "ingredients", len(recipe.Ingredients))
	return recipe, nil
}

// Update применяет переданные поля. Переданные ingredients / tags
// полностью заменяют соответствующие наборы в той же транзакции.
func (s *RecipeService) Update(ctx context.Context, id int64, req models.UpdateRecipeRequest) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if recipe, err = data.GetRecipeByID(ctx, tx, id); err != nil {
			return err
		}
		if err := setRequiredString("name", req.Name, &recipe.Name); err != nil {
			return err
		}
		setNullable(req.Description, &recipe.Description)
		setNullable(req.Instructions, &recipe.Instructions)
		setNullable(req.PrepTime, &recipe.PrepTime)
		if err := nonNegative("prep_time", recipe.PrepTime); err != nil {
			return err
		}
		setNullable(req.CookTime, &recipe.CookTime)
		if err := nonNegative("cook_time", recipe.CookTime); err != nil {
			return err
		}
		if err := setRequired("servings", req.Servings, &recipe.Servings); err != nil {
			return err
		}
		if err := positive("servings", recipe.Servings); err != nil {
			return err
		}
		setNullable(req.Category, &recipe.Category)
		setNullable(req.Cuisine, &recipe.Cuisine)
		if err := setRequiredEnum("difficulty", req.Difficulty, models.RecipeDifficulties, &recipe.Difficulty); err != nil {
			return err
		}
		setNullable(req.ImageURL, &recipe.ImageURL)

		if err := data.UpdateRecipe(ctx, tx, recipe); err != nil {
			return err
		}
		if req.Ingredients.Set {
			ingredients, err := newIngredients(req.Ingredients.Value)
			if err != nil {
				return err
			}
			if recipe.Ingredients, err = data.ReplaceRecipeIngredients(ctx, tx, recipe.ID, ingredients); err != nil {
				return err
			}
		}
		if req.Tags.Set {
			tags, err := newRecipeTags(req.Tags.Value)
			if err != nil {
				return err
			}
			recipe.Tags = tags
			return data.ReplaceRecipeTags(ctx, tx, recipe.ID, tags)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("RecipeService.Update: %w", err)
	}
	return recipe, nil
}

// Delete удаляет рецепт; позиции списка покупок остаются без ссылки на него.
func (s *RecipeService) Delete(ctx context.Context, id int64) error {
	return data.DeleteRecipe(ctx, s.store.DB(), id)
}

// --- Список покупок ---

func (s *RecipeService) ShoppingList(ctx context.Context, f models.ShoppingListFilter) ([]models.ShoppingListItem, error) {
	return data.ListShoppingItems(ctx, s.store.DB(), f)
}

// AddShoppingItem добавляет позицию в список покупок вручную.
func (s *RecipeService) AddShoppingItem(ctx context.Context, req models.CreateShoppingItemRequest) (*models.ShoppingListItem, error) {
	name, err := requiredString("name", req.Name)
	if err != nil {
		return nil, err
	}
	item := &models.ShoppingListItem{
		Name:     name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Category: req.Category,
		RecipeID: req.RecipeID,
	}
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if item.RecipeID != nil {
			if _, err := data.GetRecipeByID(ctx, tx, *item.RecipeID); err != nil {
				return err
			}
		}
		return data.CreateShoppingItem(ctx, tx, item)
	})
	if err != nil {
		return nil, fmt.Errorf("RecipeService.AddShoppingItem: %w", err)
	}
	return item, nil
}

// AddRecipeToShoppingList добавляет по позиции на каждый ингредиент рецепта.
// Повторный вызов добавляет позиции еще раз.
func (s *RecipeService) AddRecipeToShoppingList(ctx context.Context, recipeID int64) ([]models.ShoppingListItem, error) {
	items := []models.ShoppingListItem{}
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		recipe, err := data.GetRecipeByID(ctx, tx, recipeID)
		if err != nil {
			return err
		}
		for _, ing := range recipe.Ingredients {
			item := models.ShoppingListItem{
				Name:     ing.Name,
				Quantity: ing.Quantity,
				Unit:     ing.Unit,
				RecipeID: &recipe.ID,
			}
			if err := data.CreateShoppingItem(ctx, tx, &item); err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("RecipeService.AddRecipeToShoppingList: %w", err)
	}
	s.log.Info(ctx, "ингредиенты добавлены в список покупок", "recipe_id", recipeID, "items", len(items))
	return items, nil
}

func (s *RecipeService) UpdateShoppingItem(ctx context.Context, id int64, req models.UpdateShoppingItemRequest) (*models.ShoppingListItem, error) {
	var item *models.ShoppingListItem
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if item, err = data.GetShoppingItemByID(ctx, tx, id); err != nil {
			return err
		}
		if err := setRequiredString("name", req.Name, &item.Name); err != nil {
			return err
		}
		setNullable(req.Quantity, &item.Quantity)
		setNullable(req.Unit, &item.Unit)
		setNullable(req.Category, &item.Category)
		if err := setRequired("is_purchased", req.IsPurchased, &item.IsPurchased); err != nil {
			return err
		}
		return data.UpdateShoppingItem(ctx, tx, item)
	})
	if err != nil {
		return nil, fmt.Errorf("RecipeService.UpdateShoppingItem: %w", err)
	}
	return item, nil
}

func (s *RecipeService) DeleteShoppingItem(ctx context.Context, id int64) error {
	return data.DeleteShoppingItem(ctx, s.store.DB(), id)
}

func newIngredients(reqs []models.IngredientRequest) ([]models.RecipeIngredient, error) {
	ingredients := make([]models.RecipeIngredient, 0, len(reqs))
	for i, r := range reqs {
		name, err := requiredString(fmt.Sprintf("ingredients[%d].name", i), r.Name)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, models.RecipeIngredient{
			Name:     name,
			Quantity: r.Quantity,
			Unit:     r.Unit,
			Notes:    r.Notes,
		})
	}
	return ingredients, nil
}

func newRecipeTags(tags []string) ([]string, error) {
	for i, tag := range tags {
		if tag == "" {
			return nil, common.Required(fmt.Sprintf("tags[%d]", i))
		}
	}
	if tags == nil {
		return []string{}, nil
	}
	return tags, nil
}
