package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/kitchensage"
)

// Ensure LoggingParser implements kitchensage.RecipeParser.
var _ kitchensage.RecipeParser = (*LoggingParser)(nil)

// LoggingParser wraps a RecipeParser with debug logging.
type LoggingParser struct {
	next   kitchensage.RecipeParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next kitchensage.RecipeParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs what was extracted.
func (p *LoggingParser) Parse(doc string) (recipe *kitchensage.Recipe, err error) {
	defer func(begin time.Time) {
		var name string
		var ingredients, directions int
		if recipe != nil {
			name = recipe.Name
			ingredients = len(recipe.Ingredients)
			directions = len(recipe.Directions)
		}
		p.logger.Info("parse recipe",
			"name", name,
			"ingredients", ingredients,
			"directions", directions,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(doc)
}
