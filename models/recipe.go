package models

import "time"

// Сложность рецепта.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// RecipeDifficulties - допустимые значения сложности.
var RecipeDifficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Recipe представляет рецепт вместе с ингредиентами и тегами.
// Ингредиенты и теги удаляются каскадно вместе с рецептом.
type Recipe struct {
	ID           int64              `json:"id" db:"id"`
	Name         string             `json:"name" db:"name"`
	Description  *string            `json:"description" db:"description"`
	Instructions *string            `json:"instructions" db:"instructions"`
	PrepTime     *int               `json:"prep_time" db:"prep_time"` // минуты
	CookTime     *int               `json:"cook_time" db:"cook_time"` // минуты
	Servings     int                `json:"servings" db:"servings"`
	Category     *string            `json:"category" db:"category"`
	Cuisine      *string            `json:"cuisine" db:"cuisine"`
	Difficulty   string             `json:"difficulty" db:"difficulty"`
	ImageURL     *string            `json:"image_url" db:"image_url"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" db:"updated_at"`
	Ingredients  []RecipeIngredient `json:"ingredients" db:"-"`
	Tags         []string           `json:"tags" db:"-"`
}

// RecipeIngredient - ингредиент рецепта.
type RecipeIngredient struct {
	ID       int64   `json:"id" db:"id"`
	RecipeID int64   `json:"recipe_id" db:"recipe_id"`
	Name     string  `json:"name" db:"name"`
	Quantity *string `json:"quantity" db:"quantity"`
	Unit     *string `json:"unit" db:"unit"`
	Notes    *string `json:"notes" db:"notes"`
}

// RecipeTag - тег рецепта (отдельная таблица).
type RecipeTag struct {
	ID       int64  `db:"id"`
	RecipeID int64  `db:"recipe_id"`
	TagName  string `db:"tag_name"`
}

// ShoppingListItem - позиция списка покупок. Ссылка на рецепт необязательна
// и обнуляется при удалении рецепта.
type ShoppingListItem struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Quantity    *string   `json:"quantity" db:"quantity"`
	Unit        *string   `json:"unit" db:"unit"`
	Category    *string   `json:"category" db:"category"`
	IsPurchased bool      `json:"is_purchased" db:"is_purchased"`
	RecipeID    *int64    `json:"recipe_id" db:"recipe_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// RecipeFilter - параметры выборки рецептов.
type RecipeFilter struct {
	Category *string
	Cuisine  *string
	Search   *string
	Tag      *string
}

// ShoppingListFilter - параметры выборки списка покупок.
type ShoppingListFilter struct {
	Purchased *bool
}

// IngredientRequest - ингредиент в запросе на создание или обновление рецепта.
type IngredientRequest struct {
	Name     *string `json:"name"`
	Quantity *string `json:"quantity"`
	Unit     *string `json:"unit"`
	Notes    *string `json:"notes"`
}

// CreateRecipeRequest - тело запроса на создание рецепта.
type CreateRecipeRequest struct {
	Name         *string             `json:"name"`
	Description  *string             `json:"description"`
	Instructions *string             `json:"instructions"`
	PrepTime     *int                `json:"prep_time"`
	CookTime     *int                `json:"cook_time"`
	Servings     *int                `json:"servings"`
	Category     *string             `json:"category"`
	Cuisine      *string             `json:"cuisine"`
	Difficulty   *string             `json:"difficulty"`
	ImageURL     *string             `json:"image_url"`
	Ingredients  []IngredientRequest `json:"ingredients"`
	Tags         []string            `json:"tags"`
}

// UpdateRecipeRequest - тело запроса на частичное обновление рецепта.
// Переданные ingredients / tags полностью заменяют соответствующие наборы.
type UpdateRecipeRequest struct {
	Name         Optional[string]              `json:"name"`
	Description  Optional[string]              `json:"description"`
	Instructions Optional[string]              `json:"instructions"`
	PrepTime     Optional[int]                 `json:"prep_time"`
	CookTime     Optional[int]                 `json:"cook_time"`
	Servings     Optional[int]                 `json:"servings"`
	Category     Optional[string]              `json:"category"`
	Cuisine      Optional[string]              `json:"cuisine"`
	Difficulty   Optional[string]              `json:"difficulty"`
	ImageURL     Optional[string]              `json:"image_url"`
	Ingredients  Optional[[]IngredientRequest] `json:"ingredients"`
	Tags         Optional[[]string]            `json:"tags"`
}

// CreateShoppingItemRequest - тело запроса на ручное добавление в список покупок.
type CreateShoppingItemRequest struct {
	Name     *string `json:"name"`
	Quantity *string `json:"quantity"`
	Unit     *string `json:"unit"`
	Category *string `json:"category"`
	RecipeID *int64  `json:"recipe_id"`
}

// UpdateShoppingItemRequest - тело запроса на изменение позиции списка покупок.
type UpdateShoppingItemRequest struct {
	Name        Optional[string] `json:"name"`
	Quantity    Optional[string] `json:"quantity"`
	Unit        Optional[string] `json:"unit"`
	Category    Optional[string] `json:"category"`
	IsPurchased Optional[bool]   `json:"is_purchased"`
}
