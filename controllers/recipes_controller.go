package controllers

import (
	"net/http"

	"loom_server_go/logging"
	"loom_server_go/models"
	"loom_server_go/services"
)

// RecipesController обрабатывает запросы рецептов и списка покупок (/recipes/api).
type RecipesController struct {
	errorWriter
	svc *services.RecipeService
}

// NewRecipesController создает контроллер поверх сервиса svc.
func NewRecipesController(svc *services.RecipeService, log logging.Logger) *RecipesController {
	return &RecipesController{errorWriter: errorWriter{log: log}, svc: svc}
}

// GetRecipesHandler возвращает рецепты по фильтрам category, cuisine, search, tag.
// GET /recipes/api/recipes
func (c *RecipesController) GetRecipesHandler(w http.ResponseWriter, r *http.Request) {
	recipes, err := c.svc.List(r.Context(), models.RecipeFilter{
		Category: queryString(r, "category"),
		Cuisine:  queryString(r, "cuisine"),
		Search:   queryString(r, "search"),
		Tag:      queryString(r, "tag"),
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recipes)
}

// CreateRecipeHandler создает рецепт вместе с ингредиентами и тегами.
// POST /recipes/api/recipes
func (c *RecipesController) CreateRecipeHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	recipe, err := c.svc.Create(r.Context(), req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, recipe)
}

// GET /recipes/api/recipes/{id}
func (c *RecipesController) GetRecipeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	recipe, err := c.svc.Get(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

// UpdateRecipeHandler частично обновляет рецепт; ingredients и tags заменяются целиком.
// PUT /recipes/api/recipes/{id}
func (c *RecipesController) UpdateRecipeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.UpdateRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	recipe, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

// DELETE /recipes/api/recipes/{id}
func (c *RecipesController) DeleteRecipeHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.Delete)
}

// GET /recipes/api/shopping-list?purchased=true|false
func (c *RecipesController) GetShoppingListHandler(w http.ResponseWriter, r *http.Request) {
	purchased, err := queryBool(r, "purchased")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	items, err := c.svc.ShoppingList(r.Context(), models.ShoppingListFilter{Purchased: purchased})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// POST /recipes/api/shopping-list
func (c *RecipesController) CreateShoppingItemHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateShoppingItemRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	item, err := c.svc.AddShoppingItem(r.Context(), req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// AddRecipeToShoppingListHandler добавляет ингредиенты рецепта в список покупок
// и возвращает созданные позиции.
// POST /recipes/api/shopping-list/from-recipe/{recipe_id}
func (c *RecipesController) AddRecipeToShoppingListHandler(w http.ResponseWriter, r *http.Request) {
	recipeID, err := pathID(r, "recipe_id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	items, err := c.svc.AddRecipeToShoppingList(r.Context(), recipeID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, items)
}

// PUT /recipes/api/shopping-list/{id}
func (c *RecipesController) UpdateShoppingItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.UpdateShoppingItemRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	item, err := c.svc.UpdateShoppingItem(r.Context(), id, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DELETE /recipes/api/shopping-list/{id}
func (c *RecipesController) DeleteShoppingItemHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.DeleteShoppingItem)
}
