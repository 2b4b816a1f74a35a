package mock

import (
	"context"

	"github.com/fwojciec/kitchensage"
)

var _ kitchensage.MealPlanService = (*MealPlanService)(nil)

// MealPlanService is a mock implementation of kitchensage.MealPlanService.
type MealPlanService struct {
	CreateMealPlanFn   func(ctx context.Context, plan *kitchensage.MealPlan) error
	FindMealPlanByIDFn func(ctx context.Context, id string) (*kitchensage.MealPlan, error)
	FindMealPlansFn    func(ctx context.Context, filter kitchensage.MealPlanFilter) ([]*kitchensage.MealPlan, error)
	CountMealPlansFn   func(ctx context.Context, filter kitchensage.MealPlanFilter) (int, error)
	UpdateMealPlanFn   func(ctx context.Context, id string, upd kitchensage.MealPlanUpdate) (*kitchensage.MealPlan, error)
	DeleteMealPlanFn   func(ctx context.Context, id string) error
}

func (s *MealPlanService) CreateMealPlan(ctx context.Context, plan *kitchensage.MealPlan) error {
	return s.CreateMealPlanFn(ctx, plan)
}

func (s *MealPlanService) FindMealPlanByID(ctx context.Context, id string) (*kitchensage.MealPlan, error) {
	return s.FindMealPlanByIDFn(ctx, id)
}

func (s *MealPlanService) FindMealPlans(ctx context.Context, filter kitchensage.MealPlanFilter) ([]*kitchensage.MealPlan, error) {
	return s.FindMealPlansFn(ctx, filter)
}

func (s *MealPlanService) CountMealPlans(ctx context.Context, filter kitchensage.MealPlanFilter) (int, error) {
	return s.CountMealPlansFn(ctx, filter)
}

func (s *MealPlanService) UpdateMealPlan(ctx context.Context, id string, upd kitchensage.MealPlanUpdate) (*kitchensage.MealPlan, error) {
	return s.UpdateMealPlanFn(ctx, id, upd)
}

func (s *MealPlanService) DeleteMealPlan(ctx context.Context, id string) error {
	return s.DeleteMealPlanFn(ctx, id)
}
