package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/fwojciec/kitchensage"
	"gopkg.in/yaml.v3"
)

// ShoppingListFile is the name of the shopping list within an export.
const ShoppingListFile = "shopping-list.md"

// Exporter writes a meal plan as a directory of Markdown files with atomic
// update semantics. Files are written to baseDir/name.tmp and moved to
// baseDir/name on Commit.
type Exporter struct {
	baseDir string
	name    string
	used    map[string]int
}

// NewExporter creates a new Exporter.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{
		baseDir: baseDir,
		name:    name,
		used:    make(map[string]int),
	}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Dir returns the directory the export is committed to.
func (e *Exporter) Dir() string {
	return e.finalDir()
}

// SaveRecipe writes recipe as a Markdown file named after its slug and
// returns the file name. Recipes with the same slug get numeric suffixes.
func (e *Exporter) SaveRecipe(recipe *kitchensage.Recipe) (string, error) {
	content, err := FormatRecipe(recipe)
	if err != nil {
		return "", err
	}

	slug := Slug(recipe.Name)
	e.used[slug]++
	if n := e.used[slug]; n > 1 {
		slug += "-" + strconv.Itoa(n)
	}
	filename := slug + ".md"

	return filename, e.WriteFile(filename, []byte(content))
}

// SaveShoppingList writes the consolidated ingredients of a plan.
func (e *Exporter) SaveShoppingList(plan string, items []kitchensage.ConsolidatedIngredient) error {
	content, err := FormatShoppingList(plan, items)
	if err != nil {
		return err
	}
	return e.WriteFile(ShoppingListFile, []byte(content))
}

// WriteFile writes an arbitrary file into the export.
func (e *Exporter) WriteFile(name string, data []byte) error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(e.tempDir(), name), data, 0644)
}

// Commit replaces any previous export with the staged files.
func (e *Exporter) Commit() error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}

	if err := os.RemoveAll(e.finalDir()); err != nil {
		return err
	}

	return os.Rename(e.tempDir(), e.finalDir())
}

// Abort discards the staged files.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

// recipeFrontMatter is the YAML header of an exported recipe.
type recipeFrontMatter struct {
	Title      string   `yaml:"title"`
	Source     string   `yaml:"source,omitempty"`
	Rating     int      `yaml:"rating,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
	PrepTime   string   `yaml:"prep_time,omitempty"`
	CookTime   string   `yaml:"cook_time,omitempty"`
	Servings   string   `yaml:"servings,omitempty"`
}

// FormatRecipe formats a recipe as Markdown with YAML front matter.
func FormatRecipe(recipe *kitchensage.Recipe) (string, error) {
	var b strings.Builder
	if err := writeFrontMatter(&b, recipeFrontMatter{
		Title:      recipe.Name,
		Source:     recipe.Source,
		Rating:     recipe.Rating,
		Categories: recipe.Categories,
		PrepTime:   recipe.PrepTime,
		CookTime:   recipe.CookTime,
		Servings:   recipe.Servings,
	}); err != nil {
		return "", err
	}

	if recipe.Name != "" {
		fmt.Fprintf(&b, "# %s\n\n", recipe.Name)
	}

	if len(recipe.Ingredients) > 0 {
		b.WriteString("## Ingredients\n")
		inList := false
		for _, line := range recipe.Ingredients {
			if line.IsHeader {
				fmt.Fprintf(&b, "\n### %s\n\n", line.Name)
				inList = true
				continue
			}
			if !inList {
				b.WriteString("\n")
				inList = true
			}
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	if len(recipe.Directions) > 0 {
		b.WriteString("## Directions\n\n")
		for _, d := range recipe.Directions {
			fmt.Fprintf(&b, "%d. %s\n", d.Step, d.Description)
		}
		b.WriteString("\n")
	}

	if recipe.Notes != "" {
		b.WriteString("## Notes\n\n")
		b.WriteString(recipe.Notes)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// FormatShoppingList formats a plan's shopping list as Markdown with YAML
// front matter.
func FormatShoppingList(plan string, items []kitchensage.ConsolidatedIngredient) (string, error) {
	var b strings.Builder
	if err := writeFrontMatter(&b, struct {
		Plan  string `yaml:"plan"`
		Items int    `yaml:"items"`
	}{plan, len(items)}); err != nil {
		return "", err
	}

	b.WriteString("# Shopping list\n\n")
	if list := kitchensage.FormatShoppingList(items); list != "" {
		b.WriteString(list)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func writeFrontMatter(b *strings.Builder, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal front matter: %w", err)
	}
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	return nil
}

// Slug converts a recipe name to a file name: lower case letters and digits
// separated by single dashes. Names without any become "recipe".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "recipe"
	}
	return b.String()
}
