package kitchensage

import (
	"math/big"
	"strings"
)

// ConsolidatedIngredient is one entry of a shopping list.
type ConsolidatedIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// consolidationKey identifies the same purchasable item across recipes.
type consolidationKey struct {
	name string
	unit string
}

// ShoppingList merges ingredient items from several recipes. Items with
// the same case-insensitive name and the same unit become one entry.
// The zero value is not usable; use NewShoppingList.
type ShoppingList struct {
	index map[consolidationKey]int
	items []ConsolidatedIngredient
}

// NewShoppingList returns an empty shopping list.
func NewShoppingList() *ShoppingList {
	return &ShoppingList{index: make(map[consolidationKey]int)}
}

// Consolidate merges the ingredients of all recipes into a shopping list.
func Consolidate(recipes []*Recipe) []ConsolidatedIngredient {
	l := NewShoppingList()
	for _, r := range recipes {
		l.AddRecipe(r)
	}
	return l.Items()
}

// AddRecipe adds every ingredient item of the recipe. Headers are skipped.
func (l *ShoppingList) AddRecipe(r *Recipe) {
	if r == nil {
		return
	}
	for _, line := range r.Ingredients {
		l.AddLine(line)
	}
}

// AddLine adds a single ingredient line.
//
// The first occurrence of a key fixes the display name. Quantities are summed
// only when both are integer literals; otherwise the existing quantity stays.
func (l *ShoppingList) AddLine(line IngredientLine) {
	if line.IsHeader {
		return
	}

	key := consolidationKey{name: strings.ToLower(line.Name), unit: line.Unit}
	i, ok := l.index[key]
	if !ok {
		l.index[key] = len(l.items)
		l.items = append(l.items, ConsolidatedIngredient{
			Name:     line.Name,
			Quantity: line.Quantity,
			Unit:     line.Unit,
		})
		return
	}

	existing := &l.items[i]
	if IsIntegerLiteral(existing.Quantity) && IsIntegerLiteral(line.Quantity) {
		existing.Quantity = addDecimal(existing.Quantity, line.Quantity)
	}
}

// Items returns the consolidated entries in first-insertion order.
func (l *ShoppingList) Items() []ConsolidatedIngredient {
	items := make([]ConsolidatedIngredient, len(l.items))
	copy(items, l.items)
	return items
}

// Len returns the number of distinct entries.
func (l *ShoppingList) Len() int {
	return len(l.items)
}

// IsIntegerLiteral reports whether s is a non-empty string of ASCII digits.
// Fractions, ranges and amounts with embedded units are not integer literals.
func IsIntegerLiteral(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// addDecimal sums two integer literals without overflow.
func addDecimal(a, b string) string {
	x, _ := new(big.Int).SetString(a, 10)
	y, _ := new(big.Int).SetString(b, 10)
	return x.Add(x, y).String()
}

// FormatShoppingList renders items as a plain-text list, one per line.
func FormatShoppingList(items []ConsolidatedIngredient) string {
	if len(items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item.String())
	}
	return strings.Join(lines, "\n")
}

// String returns the entry as "quantity unit name", omitting absent parts.
func (c ConsolidatedIngredient) String() string {
	parts := make([]string, 0, 3)
	if c.Quantity != "" {
		parts = append(parts, c.Quantity)
	}
	if c.Unit != "" {
		parts = append(parts, c.Unit)
	}
	parts = append(parts, c.Name)
	return strings.Join(parts, " ")
}
