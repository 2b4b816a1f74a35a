package mock

import "github.com/fwojciec/kitchensage"

var _ kitchensage.RecipeParser = (*RecipeParser)(nil)

// RecipeParser is a mock implementation of kitchensage.RecipeParser.
type RecipeParser struct {
	ParseFn func(doc string) (*kitchensage.Recipe, error)
}

func (p *RecipeParser) Parse(doc string) (*kitchensage.Recipe, error) {
	return p.ParseFn(doc)
}
