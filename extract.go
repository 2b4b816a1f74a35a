package kitchensage

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classifier thresholds. They mirror the markup produced by Paprika exports
// and must not change without versioning the classification policy.
const (
	// HeaderMaxLen is the length below which a line without an emphasized
	// quantity is treated as a section header.
	HeaderMaxLen = 30

	// UnitMaxLen is the length below which the first word of an ingredient
	// is treated as its unit.
	UnitMaxLen = 10
)

// StarGlyph is the filled star used to render ratings.
const StarGlyph = "★"

// Structural markers of a Paprika recipe export.
var (
	RecipeMatch = Tag("div").WithClass("recipe")
	NotesMatch  = Match{}.WithAttr("itemprop", "comment")

	nameMatch           = Tag("h1").WithClass("name")
	ratingMatch         = Tag("p").WithClass("rating")
	categoriesMatch     = Tag("p").WithClass("categories")
	sourceMatch         = Tag("span").WithAttr("itemprop", "author")
	ingredientsMatch    = Tag("div").WithClass("ingredients")
	ingredientLineMatch = Tag("p").WithClass("line").WithAttr("itemprop", "recipeIngredient")
	directionsMatch     = Tag("div").WithAttr("itemprop", "recipeInstructions")
	directionLineMatch  = Tag("p").WithClass("line")
	prepTimeMatch       = Match{}.WithAttr("itemprop", "prepTime")
	cookTimeMatch       = Match{}.WithAttr("itemprop", "cookTime")
	servingsMatch       = Match{}.WithAttr("itemprop", "recipeYield")
)

// AssembleRecipe extracts every field of a recipe from its root element.
// Missing elements yield empty values; it never fails.
func AssembleRecipe(root Node) *Recipe {
	return &Recipe{
		Name:        ExtractName(root),
		Rating:      ExtractRating(root),
		Source:      ExtractSource(root),
		Categories:  ExtractCategories(root),
		Ingredients: ExtractIngredients(root),
		Directions:  ExtractDirections(root),
		PrepTime:    findText(root, prepTimeMatch),
		CookTime:    findText(root, cookTimeMatch),
		Servings:    findText(root, servingsMatch),
		Notes:       findText(root, NotesMatch),
	}
}

// ExtractName returns the recipe title, or "" if the recipe has none.
func ExtractName(root Node) string {
	return findText(root, nameMatch)
}

// ExtractRating returns the star rating. A numeric value attribute takes
// precedence over counting star glyphs in the element text.
func ExtractRating(root Node) int {
	el, ok := root.Find(ratingMatch)
	if !ok {
		return 0
	}
	if v, ok := el.Attr("value"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
			return n
		}
	}
	return strings.Count(el.Text(), StarGlyph)
}

// ExtractCategories returns the comma-separated categories in order.
func ExtractCategories(root Node) []string {
	el, ok := root.Find(categoriesMatch)
	if !ok {
		return nil
	}

	var categories []string
	for _, part := range strings.Split(el.Text(), ",") {
		if part = strings.TrimSpace(part); part != "" {
			categories = append(categories, part)
		}
	}
	return categories
}

// ExtractSource returns the attribution, or "" if absent.
func ExtractSource(root Node) string {
	return findText(root, sourceMatch)
}

// ExtractIngredients classifies every ingredient line in document order.
func ExtractIngredients(root Node) []IngredientLine {
	container, ok := root.Find(ingredientsMatch)
	if !ok {
		return nil
	}

	var lines []IngredientLine
	for _, el := range container.FindAll(ingredientLineMatch) {
		if line, ok := ClassifyIngredientLine(el); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// ClassifyIngredientLine decides whether a line is a section header or an
// ingredient item and splits items into quantity, unit and name.
// It returns false for lines that carry no usable text.
//
// A line without an emphasized quantity that is shorter than HeaderMaxLen
// is a header. This misreads short plain ingredients such as "Salt".
func ClassifyIngredientLine(line Node) (IngredientLine, bool) {
	text := strings.TrimSpace(line.Text())
	em, hasEmphasis := emphasis(line)

	if !hasEmphasis && utf8.RuneCountInString(text) < HeaderMaxLen {
		if text == "" {
			return IngredientLine{}, false
		}
		return NewHeader(text), true
	}

	var quantity string
	if hasEmphasis {
		quantity = strings.TrimSpace(em.Text())
		if quantity != "" {
			text = strings.TrimSpace(strings.Replace(text, quantity, "", 1))
		}
	}

	unit, name := splitUnit(text)
	if name == "" {
		return IngredientLine{}, false
	}
	return NewItem(quantity, unit, name), true
}

// ExtractDirections returns the instruction steps numbered from 1,
// ignoring any numbering present in the text.
func ExtractDirections(root Node) []Direction {
	container, ok := root.Find(directionsMatch)
	if !ok {
		return nil
	}

	els := container.FindAll(directionLineMatch)
	directions := make([]Direction, 0, len(els))
	for i, el := range els {
		directions = append(directions, Direction{
			Step:        i + 1,
			Description: strings.TrimSpace(el.Text()),
		})
	}
	return directions
}

// emphasis returns the first strong or b element of an ingredient line in
// document order.
func emphasis(line Node) (Node, bool) {
	for _, el := range line.FindAll(Match{}) {
		switch el.Tag() {
		case "strong", "b":
			return el, true
		}
	}
	return nil, false
}

// splitUnit splits s on its first whitespace run. The first word is the
// unit only when it is shorter than UnitMaxLen.
func splitUnit(s string) (unit, name string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return "", s
	}
	head, tail := s[:i], strings.TrimSpace(s[i:])
	if tail != "" && utf8.RuneCountInString(head) < UnitMaxLen {
		return head, tail
	}
	return "", s
}

func findText(root Node, m Match) string {
	el, ok := root.Find(m)
	if !ok {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
