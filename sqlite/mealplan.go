package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/kitchensage"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ kitchensage.MealPlanService = (*MealPlanService)(nil)

// MealPlanService implements kitchensage.MealPlanService using SQLite.
type MealPlanService struct {
	db *DB
}

// NewMealPlanService creates a new MealPlanService.
func NewMealPlanService(db *DB) *MealPlanService {
	return &MealPlanService{db: db}
}

// CreateMealPlan creates a new meal plan referencing existing recipes.
func (s *MealPlanService) CreateMealPlan(ctx context.Context, plan *kitchensage.MealPlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := ensureRecipesExist(ctx, tx, plan.RecipeIDs); err != nil {
		return err
	}

	plan.ID = uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	plan.CreatedAt = now
	plan.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO meal_plans (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, plan.ID, plan.Name, formatTime(plan.CreatedAt), formatTime(plan.UpdatedAt))
	if err != nil {
		return err
	}

	if err := insertPlanRecipes(ctx, tx, plan.ID, plan.RecipeIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// FindMealPlanByID retrieves a meal plan with its recipes loaded.
func (s *MealPlanService) FindMealPlanByID(ctx context.Context, id string) (*kitchensage.MealPlan, error) {
	plans, err := s.FindMealPlans(ctx, kitchensage.MealPlanFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, kitchensage.Errorf(kitchensage.ENOTFOUND, "meal plan not found")
	}

	plan := plans[0]
	plan.Recipes = make([]*kitchensage.Recipe, 0, len(plan.RecipeIDs))
	for _, recipeID := range plan.RecipeIDs {
		recipe, err := findRecipeByID(ctx, s.db, recipeID)
		if err != nil {
			return nil, err
		}
		plan.Recipes = append(plan.Recipes, recipe)
	}
	return plan, nil
}

// FindMealPlans retrieves meal plans matching the filter, newest first.
func (s *MealPlanService) FindMealPlans(ctx context.Context, filter kitchensage.MealPlanFilter) ([]*kitchensage.MealPlan, error) {
	var query strings.Builder
	query.WriteString("SELECT id, name, created_at, updated_at FROM meal_plans WHERE 1=1")
	args := appendMealPlanFilter(&query, filter)
	query.WriteString(" ORDER BY created_at DESC, name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	var plans []*kitchensage.MealPlan
	for rows.Next() {
		var plan kitchensage.MealPlan
		var createdAt, updatedAt string

		if err := rows.Scan(&plan.ID, &plan.Name, &createdAt, &updatedAt); err != nil {
			rows.Close()
			return nil, err
		}

		if plan.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			rows.Close()
			return nil, err
		}
		if plan.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			rows.Close()
			return nil, err
		}

		plans = append(plans, &plan)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, plan := range plans {
		ids, err := queryStrings(ctx, s.db, `
			SELECT recipe_id FROM meal_plan_recipes
			WHERE meal_plan_id = ?
			ORDER BY position ASC
		`, plan.ID)
		if err != nil {
			return nil, err
		}
		plan.RecipeIDs = ids
	}

	return plans, nil
}

// CountMealPlans returns the number of meal plans matching the filter.
func (s *MealPlanService) CountMealPlans(ctx context.Context, filter kitchensage.MealPlanFilter) (int, error) {
	var query strings.Builder
	query.WriteString("SELECT COUNT(*) FROM meal_plans WHERE 1=1")
	args := appendMealPlanFilter(&query, filter)

	var n int
	if err := s.db.QueryRowContext(ctx, query.String(), args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// UpdateMealPlan updates an existing meal plan.
func (s *MealPlanService) UpdateMealPlan(ctx context.Context, id string, upd kitchensage.MealPlanUpdate) (*kitchensage.MealPlan, error) {
	var name string
	err := s.db.QueryRowContext(ctx, "SELECT name FROM meal_plans WHERE id = ?", id).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, kitchensage.Errorf(kitchensage.ENOTFOUND, "meal plan not found")
	}
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name = *upd.Name
	}
	if err := (&kitchensage.MealPlan{Name: name}).Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE meal_plans SET name = ?, updated_at = ? WHERE id = ?
	`, name, formatTime(time.Now().UTC().Truncate(time.Second)), id)
	if err != nil {
		return nil, err
	}

	if upd.RecipeIDs != nil {
		if err := ensureRecipesExist(ctx, tx, *upd.RecipeIDs); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM meal_plan_recipes WHERE meal_plan_id = ?", id); err != nil {
			return nil, err
		}
		if err := insertPlanRecipes(ctx, tx, id, *upd.RecipeIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.FindMealPlanByID(ctx, id)
}

// DeleteMealPlan permanently removes a meal plan. Its recipes are kept.
func (s *MealPlanService) DeleteMealPlan(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM meal_plans WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return kitchensage.Errorf(kitchensage.ENOTFOUND, "meal plan not found")
	}

	return nil
}

func appendMealPlanFilter(query *strings.Builder, filter kitchensage.MealPlanFilter) []any {
	var args []any
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Search != nil {
		query.WriteString(" AND name LIKE ? ESCAPE '\\'")
		args = append(args, likePattern(*filter.Search))
	}
	return args
}

// ensureRecipesExist returns ENOTFOUND naming the first unknown recipe ID.
func ensureRecipesExist(ctx context.Context, q queryer, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	found, err := queryStrings(ctx, q, "SELECT id FROM recipes WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	for _, id := range ids {
		if !known[id] {
			return kitchensage.Errorf(kitchensage.ENOTFOUND, "recipe %s not found", id)
		}
	}
	return nil
}

func insertPlanRecipes(ctx context.Context, q queryer, planID string, recipeIDs []string) error {
	for i, recipeID := range recipeIDs {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO meal_plan_recipes (meal_plan_id, recipe_id, position)
			VALUES (?, ?, ?)
		`, planID, recipeID, i); err != nil {
			return err
		}
	}
	return nil
}
