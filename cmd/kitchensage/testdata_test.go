package main_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// exportHTML returns a minimal Paprika single-recipe export.
func exportHTML(name string, lines ...string) string {
	var ingredients string
	for _, l := range lines {
		ingredients += fmt.Sprintf("    <p class=\"line\" itemprop=\"recipeIngredient\">%s</p>\n", l)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
<div class="recipe">
  <h1 class="name">%s</h1>
  <p class="categories">Dinner, Quick</p>
  <p class="rating" value="3">★★★</p>
  <span itemprop="prepTime">10 mins</span>
  <span itemprop="cookTime">20 mins</span>
  <div class="ingredients">
%s  </div>
  <div itemprop="recipeInstructions">
    <p class="line">Cook everything.</p>
  </div>
</div>
</body>
</html>`, name, ingredients)
}

// writeFile writes content into dir and returns the file path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
