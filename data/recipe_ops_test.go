package data_test

import (
	"context"
	"testing"

	"loom_server_go/data"
	"loom_server_go/data/datatest"
	"loom_server_go/models"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRecipe(t *testing.T, store *data.Store, name string, ingredients []string, tags []string) *models.Recipe {
	t.Helper()
	ctx := context.Background()
	recipe := &models.Recipe{Name: name, Servings: 1, Difficulty: models.DifficultyMedium}

	err := store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := data.CreateRecipe(ctx, tx, recipe); err != nil {
			return err
		}
		ings := make([]models.RecipeIngredient, len(ingredients))
		for i, n := range ingredients {
			ings[i] = models.RecipeIngredient{Name: n}
		}
		if _, err := data.ReplaceRecipeIngredients(ctx, tx, recipe.ID, ings); err != nil {
			return err
		}
		return data.ReplaceRecipeTags(ctx, tx, recipe.ID, tags)
	})
	require.NoError(t, err)
	return recipe
}

func TestDeleteRecipe_CascadesChildrenAndOrphansShoppingItems(t *testing.T) {
	store := datatest.OpenStore(t)
	ctx := context.Background()
	db := store.DB()

	recipe := createRecipe(t, store, "Pancakes", []string{"flour", "milk"}, []string{"breakfast"})

	item := &models.ShoppingListItem{Name: "flour", RecipeID: &recipe.ID}
	require.NoError(t, data.CreateShoppingItem(ctx, db, item))

	require.NoError(t, data.DeleteRecipe(ctx, db, recipe.ID))

	var children int
	require.NoError(t, db.Get(&children, `SELECT (SELECT COUNT(*) FROM recipe_ingredients) + (SELECT COUNT(*) FROM recipe_tags)`))
	assert.Zero(t, children)

	got, err := data.GetShoppingItemByID(ctx, db, item.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RecipeID)
}

func TestListRecipes_FiltersAndChildren(t *testing.T) {
	store := datatest.OpenStore(t)
	ctx := context.Background()

	soup := createRecipe(t, store, "Soup", []string{"water", "salt"}, []string{"dinner", "quick"})
	createRecipe(t, store, "Cake", []string{"sugar"}, []string{"dessert"})

	recipes, err := data.ListRecipes(ctx, store.DB(), models.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Cake", recipes[0].Name)
	assert.Equal(t, "Soup", recipes[1].Name)

	recipes, err = data.ListRecipes(ctx, store.DB(), models.RecipeFilter{Tag: datatest.Ptr("quick")})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, soup.ID, recipes[0].ID)
	assert.Equal(t, []string{"dinner", "quick"}, recipes[0].Tags)
	require.Len(t, recipes[0].Ingredients, 2)
	assert.Equal(t, "water", recipes[0].Ingredients[0].Name)

	recipes, err = data.ListRecipes(ctx, store.DB(), models.RecipeFilter{Search: datatest.Ptr("ak")})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Cake", recipes[0].Name)
}
