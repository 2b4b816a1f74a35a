package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/kitchensage"
	"github.com/fwojciec/kitchensage/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *Config
	Recipes   kitchensage.RecipeService
	MealPlans kitchensage.MealPlanService
	Parser    kitchensage.RecipeParser
	Files     kitchensage.Fetcher
	Importer  *batch.Importer
	Asker     kitchensage.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `help:"Database path (overrides KITCHENSAGE_DB and config)" placeholder:"PATH"`
	Config  string `help:"Config file path" placeholder:"PATH"`
	Verbose bool   `short:"v" help:"Log fetches and parses to stderr"`

	Import     ImportCmd     `cmd:"" help:"Import recipe exports from files, directories or URLs"`
	Recipes    RecipesCmd    `cmd:"" help:"List and search stored recipes"`
	Show       ShowCmd       `cmd:"" help:"Show a recipe"`
	Delete     DeleteCmd     `cmd:"" help:"Delete a recipe"`
	Categories CategoriesCmd `cmd:"" help:"List recipe categories"`
	Parse      ParseCmd      `cmd:"" help:"Parse a recipe export without storing it"`
	Plan       PlanCmd       `cmd:"" help:"Manage meal plans"`
	Shopping   ShoppingCmd   `cmd:"" help:"Merge exported XML shopping lists into one"`
	Ask        AskCmd        `cmd:"" help:"Ask a cooking question about your recipes or a meal plan"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Paths       []string      `arg:"" name:"path" help:"Export files, directories or URLs"`
	Concurrency int           `short:"c" help:"Concurrent parse limit (default 10)"`
	Force       bool          `short:"f" help:"Store documents that were imported before"`
	Timeout     time.Duration `help:"Timeout for each URL fetch"`
}

// RecipesCmd is the "recipes" subcommand.
type RecipesCmd struct {
	Search     string        `short:"s" help:"Match name or source"`
	Category   string        `help:"Exact category name"`
	Ingredient string        `short:"i" help:"Match ingredient name"`
	MaxTime    time.Duration `name:"max-time" help:"Maximum prep plus cook time (e.g. 45m)"`
	Offset     int           `help:"Number of recipes to skip"`
	Limit      int           `short:"n" help:"Maximum number of recipes to list"`
	JSON       bool          `help:"Print recipes as JSON"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Recipe ID"`
	JSON bool   `help:"Print the recipe as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Recipe ID"`
	Force bool   `help:"Confirm deletion"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct{}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File string `arg:"" help:"Export file"`
}

// PlanCmd groups the meal plan subcommands.
type PlanCmd struct {
	Create   PlanCreateCmd   `cmd:"" help:"Create a meal plan"`
	List     PlanListCmd     `cmd:"" help:"List meal plans"`
	Show     PlanShowCmd     `cmd:"" help:"Show a meal plan"`
	Update   PlanUpdateCmd   `cmd:"" help:"Rename a meal plan or replace its recipes"`
	Delete   PlanDeleteCmd   `cmd:"" help:"Delete a meal plan"`
	Shopping PlanShoppingCmd `cmd:"" help:"Print the shopping list of a meal plan"`
	Export   PlanExportCmd   `cmd:"" help:"Export a meal plan as Markdown files"`
}

// PlanCreateCmd is the "plan create" subcommand.
type PlanCreateCmd struct {
	Name      string   `arg:"" help:"Meal plan name"`
	RecipeIDs []string `arg:"" optional:"" name:"recipe-id" help:"Recipe IDs in cooking order"`
}

// PlanListCmd is the "plan list" subcommand.
type PlanListCmd struct {
	Search string `short:"s" help:"Match plan name"`
}

// PlanShowCmd is the "plan show" subcommand.
type PlanShowCmd struct {
	ID string `arg:"" help:"Meal plan ID"`
}

// PlanUpdateCmd is the "plan update" subcommand.
type PlanUpdateCmd struct {
	ID        string   `arg:"" help:"Meal plan ID"`
	Name      string   `help:"New name"`
	RecipeIDs []string `name:"recipe" help:"Replacement recipe IDs (repeatable)"`
	Clear     bool     `help:"Remove all recipes"`
}

// PlanDeleteCmd is the "plan delete" subcommand.
type PlanDeleteCmd struct {
	ID    string `arg:"" help:"Meal plan ID"`
	Force bool   `help:"Confirm deletion"`
}

// PlanShoppingCmd is the "plan shopping" subcommand.
type PlanShoppingCmd struct {
	ID     string `arg:"" help:"Meal plan ID"`
	Format string `short:"F" enum:"text,json,xml" default:"text" help:"Output format (text, json, xml)"`
}

// PlanExportCmd is the "plan export" subcommand.
type PlanExportCmd struct {
	ID  string `arg:"" help:"Meal plan ID"`
	Dir string `arg:"" help:"Directory to export into"`
}

// ShoppingCmd is the "shopping" subcommand.
type ShoppingCmd struct {
	Files  []string `arg:"" name:"file" help:"Shopping list XML files written by 'plan export' or 'plan shopping -F xml'"`
	Name   string   `default:"Combined" help:"Name of the merged list"`
	Format string   `short:"F" enum:"text,json,xml" default:"text" help:"Output format (text, json, xml)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question about your recipes"`
	Plan     string `short:"p" help:"Meal plan ID to ask about instead of the whole library"`
}
