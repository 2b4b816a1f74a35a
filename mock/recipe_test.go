package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/kitchensage"
	"github.com/fwojciec/kitchensage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeService_CreateRecipe(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CreateRecipeFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *kitchensage.Recipe
		s := &mock.RecipeService{
			CreateRecipeFn: func(_ context.Context, recipe *kitchensage.Recipe) error {
				calledWith = recipe
				return nil
			},
		}

		recipe := &kitchensage.Recipe{Name: "Pancakes"}

		err := s.CreateRecipe(context.Background(), recipe)

		require.NoError(t, err)
		assert.Equal(t, recipe, calledWith)
	})
}
