package kitchensage

import (
	"context"
	"time"
)

// Recipe represents a normalized recipe extracted from an exported document.
// Empty strings stand for absent optional values.
type Recipe struct {
	ID          string           `json:"id,omitempty"`
	Name        string           `json:"name"`
	Rating      int              `json:"rating"`
	Source      string           `json:"source,omitempty"`
	Categories  []string         `json:"categories"`
	Ingredients []IngredientLine `json:"ingredients"`
	Directions  []Direction      `json:"directions"`

	PrepTime string `json:"prepTime,omitempty"`
	CookTime string `json:"cookTime,omitempty"`
	Servings string `json:"servings,omitempty"`
	Notes    string `json:"notes,omitempty"` // Markdown

	// ContentHash identifies the raw document the recipe was parsed from.
	ContentHash string    `json:"contentHash,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Validate returns an error if the recipe contains invalid fields.
func (r *Recipe) Validate() error {
	if r.Rating < 0 {
		return Errorf(EINVALID, "recipe rating must not be negative")
	}
	for i, line := range r.Ingredients {
		if line.Name == "" {
			return Errorf(EINVALID, "ingredient %d has no name", i+1)
		}
	}
	for i, d := range r.Directions {
		if d.Step != i+1 {
			return Errorf(EINVALID, "direction steps must be contiguous from 1, got %d at position %d", d.Step, i+1)
		}
	}
	return nil
}

// TotalTime returns the combined preparation and cooking time.
// Times that cannot be parsed contribute nothing.
func (r *Recipe) TotalTime() time.Duration {
	prep, _ := ParseCookingTime(r.PrepTime)
	cook, _ := ParseCookingTime(r.CookTime)
	return prep + cook
}

// IngredientLine is one entry of a recipe's ingredient list. It is either a
// section header ("For the sauce:") or a purchasable item.
type IngredientLine struct {
	// IsHeader marks a section label. Headers are never merged or counted.
	IsHeader bool `json:"isHeader,omitempty"`

	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`

	// Name is the ingredient name, or the label text of a header.
	Name string `json:"name"`
}

// NewHeader returns a header line with the given label.
func NewHeader(text string) IngredientLine {
	return IngredientLine{IsHeader: true, Name: text}
}

// NewItem returns an ingredient item. Empty quantity or unit means absent.
func NewItem(quantity, unit, name string) IngredientLine {
	return IngredientLine{Quantity: quantity, Unit: unit, Name: name}
}

// String returns the header label, or "quantity unit name" for items with
// absent parts omitted.
func (l IngredientLine) String() string {
	if l.IsHeader {
		return l.Name
	}
	return ConsolidatedIngredient{Name: l.Name, Quantity: l.Quantity, Unit: l.Unit}.String()
}

// Direction is a single numbered instruction step.
type Direction struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
}

// RecipeParser turns a raw exported document into a recipe.
type RecipeParser interface {
	// Parse extracts a recipe from the document.
	// Returns ENORECIPE if the document contains no recipe.
	Parse(doc string) (*Recipe, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// Fetcher retrieves a raw document by location (file path or URL).
type Fetcher interface {
	Fetch(ctx context.Context, location string) (doc string, err error)
}

// DomainLimiter throttles requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}

// RecipeService represents a service for managing recipes.
type RecipeService interface {
	// CreateRecipe stores a new recipe along with its categories,
	// ingredients and directions.
	CreateRecipe(ctx context.Context, recipe *Recipe) error

	// FindRecipeByID retrieves a recipe by ID.
	// Returns ENOTFOUND if recipe does not exist.
	FindRecipeByID(ctx context.Context, id string) (*Recipe, error)

	// FindRecipes retrieves recipes matching the filter, ordered by name.
	FindRecipes(ctx context.Context, filter RecipeFilter) ([]*Recipe, error)

	// CountRecipes returns the number of recipes matching the filter,
	// ignoring Offset and Limit.
	CountRecipes(ctx context.Context, filter RecipeFilter) (int, error)

	// UpdateRecipe updates an existing recipe.
	// Returns ENOTFOUND if recipe does not exist.
	UpdateRecipe(ctx context.Context, id string, upd RecipeUpdate) (*Recipe, error)

	// DeleteRecipe permanently removes a recipe.
	// Returns ENOTFOUND if recipe does not exist.
	DeleteRecipe(ctx context.Context, id string) error

	// FindCategories returns all category names in alphabetical order.
	FindCategories(ctx context.Context) ([]string, error)

	// FindContentHashes returns the distinct content hashes of all stored
	// recipes, in no particular order.
	FindContentHashes(ctx context.Context) ([]string, error)
}

// RecipeFilter represents a filter for FindRecipes and CountRecipes.
type RecipeFilter struct {
	ID          *string `json:"id"`
	ContentHash *string `json:"contentHash"`

	// Search matches a case-insensitive substring of the name or source.
	Search *string `json:"search"`
	// Category matches an exact category name.
	Category *string `json:"category"`
	// Ingredient matches a case-insensitive substring of any ingredient name.
	Ingredient *string `json:"ingredient"`
	// MaxTotalTime keeps recipes whose prep plus cook time does not exceed it.
	MaxTotalTime *time.Duration `json:"maxTotalTime"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RecipeUpdate represents fields that can be updated on a recipe.
type RecipeUpdate struct {
	Name       *string   `json:"name"`
	Source     *string   `json:"source"`
	Rating     *int      `json:"rating"`
	Categories *[]string `json:"categories"`
}
