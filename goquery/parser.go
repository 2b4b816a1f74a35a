package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kitchensage"
)

// Ensure Parser implements kitchensage.RecipeParser at compile time.
var _ kitchensage.RecipeParser = (*Parser)(nil)

// Locate parses doc and returns the recipe root element.
// Returns ENORECIPE if the document has no recipe container.
func Locate(doc string) (kitchensage.Node, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, kitchensage.Errorf(kitchensage.EINVALID, "failed to parse HTML: %v", err)
	}

	root := d.Find(Selector(kitchensage.RecipeMatch))
	if root.Length() == 0 {
		return nil, kitchensage.Errorf(kitchensage.ENORECIPE, "no recipe found in document")
	}
	return NewNode(root), nil
}

// Parser extracts recipes from Paprika HTML exports.
type Parser struct {
	// Converter renders notes as Markdown. When nil, notes are plain text.
	Converter kitchensage.Converter
}

// NewParser creates a new Parser. conv may be nil.
func NewParser(conv kitchensage.Converter) *Parser {
	return &Parser{Converter: conv}
}

// Parse extracts a recipe from doc.
func (p *Parser) Parse(doc string) (*kitchensage.Recipe, error) {
	root, err := Locate(doc)
	if err != nil {
		return nil, err
	}

	recipe := kitchensage.AssembleRecipe(root)
	if p.Converter == nil {
		return recipe, nil
	}

	// Conversion failures keep the plain-text notes.
	if el, ok := root.Find(kitchensage.NotesMatch); ok {
		if md, err := p.Converter.Convert(el.HTML()); err == nil {
			recipe.Notes = strings.TrimSpace(md)
		}
	}
	return recipe, nil
}
