package kitchensage

import "context"

// Asker answers natural language questions about stored recipes.
type Asker interface {
	// Ask answers a question about the recipes of a meal plan, or about the
	// whole recipe library when planID is empty.
	// Returns ENOTFOUND if the plan does not exist or there are no recipes.
	Ask(ctx context.Context, planID string, question string) (string, error)
}
