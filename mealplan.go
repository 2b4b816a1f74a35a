package kitchensage

import (
	"context"
	"time"
)

// MealPlan groups recipes that are cooked together and shopped for at once.
type MealPlan struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RecipeIDs []string  `json:"recipeIds"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Recipes is populated by FindMealPlanByID in RecipeIDs order.
	Recipes []*Recipe `json:"recipes,omitempty"`
}

// Validate returns an error if the meal plan contains invalid fields.
func (p *MealPlan) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "meal plan name required")
	}
	return nil
}

// ShoppingList returns the consolidated ingredients of the plan's recipes.
func (p *MealPlan) ShoppingList() []ConsolidatedIngredient {
	return Consolidate(p.Recipes)
}

// MealPlanService represents a service for managing meal plans.
type MealPlanService interface {
	// CreateMealPlan creates a new meal plan.
	// Returns ENOTFOUND if any recipe ID does not exist.
	CreateMealPlan(ctx context.Context, plan *MealPlan) error

	// FindMealPlanByID retrieves a meal plan with its recipes.
	// Returns ENOTFOUND if meal plan does not exist.
	FindMealPlanByID(ctx context.Context, id string) (*MealPlan, error)

	// FindMealPlans retrieves meal plans matching the filter.
	// Recipes are not populated.
	FindMealPlans(ctx context.Context, filter MealPlanFilter) ([]*MealPlan, error)

	// CountMealPlans returns the number of meal plans matching the filter,
	// ignoring Offset and Limit.
	CountMealPlans(ctx context.Context, filter MealPlanFilter) (int, error)

	// UpdateMealPlan updates an existing meal plan.
	// Returns ENOTFOUND if meal plan or any recipe ID does not exist.
	UpdateMealPlan(ctx context.Context, id string, upd MealPlanUpdate) (*MealPlan, error)

	// DeleteMealPlan permanently removes a meal plan. Its recipes are kept.
	// Returns ENOTFOUND if meal plan does not exist.
	DeleteMealPlan(ctx context.Context, id string) error
}

// MealPlanFilter represents a filter for FindMealPlans.
type MealPlanFilter struct {
	ID     *string `json:"id"`
	Search *string `json:"search"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// MealPlanUpdate represents fields that can be updated on a meal plan.
type MealPlanUpdate struct {
	Name      *string   `json:"name"`
	RecipeIDs *[]string `json:"recipeIds"`
}
