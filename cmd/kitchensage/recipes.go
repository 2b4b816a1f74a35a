package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/kitchensage"
	"github.com/fwojciec/kitchensage/fs"
)

// Run executes the recipes command.
func (c *RecipesCmd) Run(deps *Dependencies) error {
	filter := kitchensage.RecipeFilter{
		Search:     optional(c.Search),
		Category:   optional(c.Category),
		Ingredient: optional(c.Ingredient),
		Offset:     c.Offset,
		Limit:      c.Limit,
	}
	if c.MaxTime > 0 {
		filter.MaxTotalTime = &c.MaxTime
	}

	recipes, err := deps.Recipes.FindRecipes(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, recipes)
	}

	if len(recipes) == 0 {
		fmt.Fprintln(deps.Stdout, "No recipes found. Use 'kitchensage import' to add some.")
		return nil
	}

	for _, r := range recipes {
		fmt.Fprintf(deps.Stdout, "%s  %s%s\n", r.ID, r.Name, ratingSuffix(r.Rating))
	}

	if c.Limit > 0 || c.Offset > 0 {
		n, err := deps.Recipes.CountRecipes(deps.Ctx, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "\nShowing %d of %d recipes\n", len(recipes), n)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	recipe, err := deps.Recipes.FindRecipeByID(deps.Ctx, c.ID)
	if err != nil {
		if kitchensage.ErrorCode(err) == kitchensage.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: recipe %q not found. Use 'kitchensage recipes' to see available recipes.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, recipe)
	}

	content, err := fs.FormatRecipe(recipe)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}
	fmt.Fprint(deps.Stdout, content)
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return kitchensage.Errorf(kitchensage.EINVALID, "use --force to confirm deletion")
	}

	recipe, err := deps.Recipes.FindRecipeByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}

	if err := deps.Recipes.DeleteRecipe(deps.Ctx, recipe.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted recipe %q\n", recipe.Name)
	return nil
}

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	categories, err := deps.Recipes.FindCategories(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}

	if len(categories) == 0 {
		fmt.Fprintln(deps.Stdout, "No categories found.")
		return nil
	}

	for _, name := range categories {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	doc, err := deps.Files.Fetch(deps.Ctx, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}

	recipe, err := deps.Parser.Parse(doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s: %s\n", c.File, failureReason(err))
		return err
	}

	return writeJSON(deps.Stdout, recipe)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func ratingSuffix(rating int) string {
	if rating <= 0 {
		return ""
	}
	return "  " + strings.Repeat(kitchensage.StarGlyph, rating)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
