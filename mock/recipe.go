package mock

import (
	"context"

	"github.com/fwojciec/kitchensage"
)

var _ kitchensage.RecipeService = (*RecipeService)(nil)

// RecipeService is a mock implementation of kitchensage.RecipeService.
type RecipeService struct {
	CreateRecipeFn   func(ctx context.Context, recipe *kitchensage.Recipe) error
	FindRecipeByIDFn func(ctx context.Context, id string) (*kitchensage.Recipe, error)
	FindRecipesFn    func(ctx context.Context, filter kitchensage.RecipeFilter) ([]*kitchensage.Recipe, error)
	CountRecipesFn   func(ctx context.Context, filter kitchensage.RecipeFilter) (int, error)
	UpdateRecipeFn   func(ctx context.Context, id string, upd kitchensage.RecipeUpdate) (*kitchensage.Recipe, error)
	DeleteRecipeFn   func(ctx context.Context, id string) error
	FindCategoriesFn func(ctx context.Context) ([]string, error)

	FindContentHashesFn func(ctx context.Context) ([]string, error)
}

func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *kitchensage.Recipe) error {
	return s.CreateRecipeFn(ctx, recipe)
}

func (s *RecipeService) FindRecipeByID(ctx context.Context, id string) (*kitchensage.Recipe, error) {
	return s.FindRecipeByIDFn(ctx, id)
}

func (s *RecipeService) FindRecipes(ctx context.Context, filter kitchensage.RecipeFilter) ([]*kitchensage.Recipe, error) {
	return s.FindRecipesFn(ctx, filter)
}

func (s *RecipeService) CountRecipes(ctx context.Context, filter kitchensage.RecipeFilter) (int, error) {
	return s.CountRecipesFn(ctx, filter)
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, upd kitchensage.RecipeUpdate) (*kitchensage.Recipe, error) {
	return s.UpdateRecipeFn(ctx, id, upd)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	return s.DeleteRecipeFn(ctx, id)
}

func (s *RecipeService) FindCategories(ctx context.Context) ([]string, error) {
	return s.FindCategoriesFn(ctx)
}

func (s *RecipeService) FindContentHashes(ctx context.Context) ([]string, error) {
	return s.FindContentHashesFn(ctx)
}
