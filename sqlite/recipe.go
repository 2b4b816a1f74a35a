package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/kitchensage"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ kitchensage.RecipeService = (*RecipeService)(nil)

// RecipeService implements kitchensage.RecipeService using SQLite.
type RecipeService struct {
	db *DB
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(db *DB) *RecipeService {
	return &RecipeService{db: db}
}

const recipeColumns = "r.id, r.name, r.rating, r.source, r.prep_time, r.cook_time, r.servings, r.notes, r.content_hash, r.created_at, r.updated_at"

// CreateRecipe creates a new recipe with its categories, ingredients and directions.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *kitchensage.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}

	recipe.ID = uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (id, name, rating, source, prep_time, cook_time, servings, notes, total_minutes, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, recipe.ID, recipe.Name, recipe.Rating, recipe.Source, recipe.PrepTime, recipe.CookTime,
		recipe.Servings, recipe.Notes, totalMinutes(recipe), recipe.ContentHash,
		formatTime(recipe.CreatedAt), formatTime(recipe.UpdatedAt))
	if err != nil {
		return err
	}

	if err := insertCategories(ctx, tx, recipe.ID, recipe.Categories); err != nil {
		return err
	}
	if err := insertIngredients(ctx, tx, recipe.ID, recipe.Ingredients); err != nil {
		return err
	}
	if err := insertDirections(ctx, tx, recipe.ID, recipe.Directions); err != nil {
		return err
	}

	return tx.Commit()
}

// FindRecipeByID retrieves a recipe by ID.
func (s *RecipeService) FindRecipeByID(ctx context.Context, id string) (*kitchensage.Recipe, error) {
	return findRecipeByID(ctx, s.db, id)
}

// FindRecipes retrieves recipes matching the filter, ordered by name.
func (s *RecipeService) FindRecipes(ctx context.Context, filter kitchensage.RecipeFilter) ([]*kitchensage.Recipe, error) {
	return findRecipes(ctx, s.db, filter)
}

// CountRecipes returns the number of recipes matching the filter.
func (s *RecipeService) CountRecipes(ctx context.Context, filter kitchensage.RecipeFilter) (int, error) {
	var query strings.Builder
	query.WriteString("SELECT COUNT(*) FROM recipes r WHERE 1=1")
	args := appendRecipeFilter(&query, filter)

	var n int
	if err := s.db.QueryRowContext(ctx, query.String(), args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// UpdateRecipe updates an existing recipe.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, upd kitchensage.RecipeUpdate) (*kitchensage.Recipe, error) {
	recipe, err := s.FindRecipeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		recipe.Name = *upd.Name
	}
	if upd.Source != nil {
		recipe.Source = *upd.Source
	}
	if upd.Rating != nil {
		recipe.Rating = *upd.Rating
	}
	if upd.Categories != nil {
		recipe.Categories = *upd.Categories
	}
	recipe.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE recipes
		SET name = ?, source = ?, rating = ?, updated_at = ?
		WHERE id = ?
	`, recipe.Name, recipe.Source, recipe.Rating, formatTime(recipe.UpdatedAt), id)
	if err != nil {
		return nil, err
	}

	if upd.Categories != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM recipe_categories WHERE recipe_id = ?", id); err != nil {
			return nil, err
		}
		if err := insertCategories(ctx, tx, id, recipe.Categories); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return recipe, nil
}

// DeleteRecipe permanently removes a recipe. Its ingredients, directions
// and meal plan entries are removed with it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return kitchensage.Errorf(kitchensage.ENOTFOUND, "recipe not found")
	}

	return nil
}

// FindCategories returns the names of categories used by at least one recipe.
func (s *RecipeService) FindCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT c.name
		FROM categories c
		JOIN recipe_categories rc ON rc.category_id = c.id
		ORDER BY c.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// FindContentHashes returns the distinct non-empty content hashes of all
// stored recipes.
func (s *RecipeService) FindContentHashes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT content_hash
		FROM recipes
		WHERE content_hash != ''
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, err
		}
		hashes = append(hashes, hash)
	}
	return hashes, rows.Err()
}

func findRecipeByID(ctx context.Context, q queryer, id string) (*kitchensage.Recipe, error) {
	recipes, err := findRecipes(ctx, q, kitchensage.RecipeFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, kitchensage.Errorf(kitchensage.ENOTFOUND, "recipe not found")
	}
	return recipes[0], nil
}

func findRecipes(ctx context.Context, q queryer, filter kitchensage.RecipeFilter) ([]*kitchensage.Recipe, error) {
	var query strings.Builder
	query.WriteString("SELECT " + recipeColumns + " FROM recipes r WHERE 1=1")
	args := appendRecipeFilter(&query, filter)
	query.WriteString(" ORDER BY r.name ASC, r.id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := q.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	// The connection pool holds a single connection, so rows must be closed
	// before the child tables are queried.
	var recipes []*kitchensage.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, recipe := range recipes {
		if err := loadRecipeChildren(ctx, q, recipe); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

func appendRecipeFilter(query *strings.Builder, filter kitchensage.RecipeFilter) []any {
	var args []any
	if filter.ID != nil {
		query.WriteString(" AND r.id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND r.content_hash = ?")
		args = append(args, *filter.ContentHash)
	}
	if filter.Search != nil {
		query.WriteString(" AND (r.name LIKE ? ESCAPE '\\' OR r.source LIKE ? ESCAPE '\\')")
		pattern := likePattern(*filter.Search)
		args = append(args, pattern, pattern)
	}
	if filter.Category != nil {
		query.WriteString(` AND EXISTS (
			SELECT 1 FROM recipe_categories rc
			JOIN categories c ON c.id = rc.category_id
			WHERE rc.recipe_id = r.id AND c.name = ?)`)
		args = append(args, *filter.Category)
	}
	if filter.Ingredient != nil {
		query.WriteString(` AND EXISTS (
			SELECT 1 FROM ingredients i
			WHERE i.recipe_id = r.id AND i.is_header = 0 AND i.name LIKE ? ESCAPE '\')`)
		args = append(args, likePattern(*filter.Ingredient))
	}
	if filter.MaxTotalTime != nil {
		query.WriteString(" AND r.total_minutes IS NOT NULL AND r.total_minutes <= ?")
		args = append(args, int(*filter.MaxTotalTime/time.Minute))
	}
	return args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row scanner) (*kitchensage.Recipe, error) {
	var recipe kitchensage.Recipe
	var createdAt, updatedAt string

	if err := row.Scan(&recipe.ID, &recipe.Name, &recipe.Rating, &recipe.Source, &recipe.PrepTime,
		&recipe.CookTime, &recipe.Servings, &recipe.Notes, &recipe.ContentHash,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if recipe.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if recipe.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func loadRecipeChildren(ctx context.Context, q queryer, recipe *kitchensage.Recipe) error {
	categories, err := queryStrings(ctx, q, `
		SELECT c.name
		FROM recipe_categories rc
		JOIN categories c ON c.id = rc.category_id
		WHERE rc.recipe_id = ?
		ORDER BY rc.position ASC
	`, recipe.ID)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	recipe.Categories = categories

	if recipe.Ingredients, err = loadIngredients(ctx, q, recipe.ID); err != nil {
		return fmt.Errorf("load ingredients: %w", err)
	}
	if recipe.Directions, err = loadDirections(ctx, q, recipe.ID); err != nil {
		return fmt.Errorf("load directions: %w", err)
	}
	return nil
}

func loadIngredients(ctx context.Context, q queryer, recipeID string) ([]kitchensage.IngredientLine, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT is_header, quantity, unit, name
		FROM ingredients
		WHERE recipe_id = ?
		ORDER BY position ASC
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []kitchensage.IngredientLine
	for rows.Next() {
		var line kitchensage.IngredientLine
		if err := rows.Scan(&line.IsHeader, &line.Quantity, &line.Unit, &line.Name); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func loadDirections(ctx context.Context, q queryer, recipeID string) ([]kitchensage.Direction, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT step, description
		FROM directions
		WHERE recipe_id = ?
		ORDER BY step ASC
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var directions []kitchensage.Direction
	for rows.Next() {
		var d kitchensage.Direction
		if err := rows.Scan(&d.Step, &d.Description); err != nil {
			return nil, err
		}
		directions = append(directions, d)
	}
	return directions, rows.Err()
}

func queryStrings(ctx context.Context, q queryer, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func insertCategories(ctx context.Context, q queryer, recipeID string, categories []string) error {
	for i, name := range categories {
		if _, err := q.ExecContext(ctx, "INSERT OR IGNORE INTO categories (name) VALUES (?)", name); err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, `
			INSERT INTO recipe_categories (recipe_id, category_id, position)
			SELECT ?, id, ? FROM categories WHERE name = ?
		`, recipeID, i, name); err != nil {
			return err
		}
	}
	return nil
}

func insertIngredients(ctx context.Context, q queryer, recipeID string, lines []kitchensage.IngredientLine) error {
	for i, line := range lines {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO ingredients (recipe_id, position, is_header, quantity, unit, name)
			VALUES (?, ?, ?, ?, ?, ?)
		`, recipeID, i, line.IsHeader, line.Quantity, line.Unit, line.Name); err != nil {
			return err
		}
	}
	return nil
}

func insertDirections(ctx context.Context, q queryer, recipeID string, directions []kitchensage.Direction) error {
	for _, d := range directions {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO directions (recipe_id, step, description)
			VALUES (?, ?, ?)
		`, recipeID, d.Step, d.Description); err != nil {
			return err
		}
	}
	return nil
}

// totalMinutes is stored so recipes can be filtered by total time in SQL.
// It is NULL when neither time parses, so such recipes never match a
// maximum total time.
func totalMinutes(recipe *kitchensage.Recipe) sql.NullInt64 {
	_, prepOK := kitchensage.ParseCookingTime(recipe.PrepTime)
	_, cookOK := kitchensage.ParseCookingTime(recipe.CookTime)
	if !prepOK && !cookOK {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(recipe.TotalTime() / time.Minute), Valid: true}
}
