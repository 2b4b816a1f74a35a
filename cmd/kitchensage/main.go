package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/kitchensage"
	"github.com/fwojciec/kitchensage/batch"
	"github.com/fwojciec/kitchensage/fs"
	"github.com/fwojciec/kitchensage/gemini"
	"github.com/fwojciec/kitchensage/goquery"
	"github.com/fwojciec/kitchensage/htmltomarkdown"
	kshttp "github.com/fwojciec/kitchensage/http"
	kslog "github.com/fwojciec/kitchensage/slog"
	"github.com/fwojciec/kitchensage/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run() to bypass config resolution.
	DBPath string

	// Config file path. Missing files are ignored.
	ConfigPath string

	// API key for the ask command.
	GeminiAPIKey string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RecipeService   kitchensage.RecipeService
	MealPlanService kitchensage.MealPlanService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:       os.Getenv("KITCHENSAGE_DB"),
		ConfigPath:   defaultConfigPath(),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kitchensage"),
		kong.Description("Import Paprika recipe exports, plan meals and build shopping lists."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'kitchensage --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	// Help on a subcommand parses without error but selects nothing to run.
	if kongCtx.Selected() == nil {
		return nil
	}

	configPath := m.ConfigPath
	if cli.Config != "" {
		configPath = cli.Config
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}
	deps.Config = cfg

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose || cfg.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	deps.Files = kslog.NewLoggingFetcher(fs.NewFetcher(), deps.Logger)
	deps.Parser = kslog.NewLoggingParser(goquery.NewParser(htmltomarkdown.NewConverter()), deps.Logger)

	cmd := strings.Fields(kongCtx.Command())[0]

	// Parsing a single file and merging shopping lists need no storage.
	if cmd != "parse" && cmd != "shopping" {
		dbPath := firstNonEmpty(cli.DB, m.DBPath, cfg.DB, defaultDBPath())
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}

		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set KITCHENSAGE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		m.RecipeService = sqlite.NewRecipeService(m.DB)
		m.MealPlanService = sqlite.NewMealPlanService(m.DB)
		deps.Recipes = m.RecipeService
		deps.MealPlans = m.MealPlanService
	}

	if cmd == "import" {
		timeout := cli.Import.Timeout
		if timeout == 0 {
			timeout = cfg.Timeout
		}
		var opts []kshttp.Option
		if timeout > 0 {
			opts = append(opts, kshttp.WithTimeout(timeout))
		}

		logger := deps.Logger
		deps.Importer = &batch.Importer{
			Parser:      deps.Parser,
			Recipes:     deps.Recipes,
			Files:       deps.Files,
			Web:         kslog.NewLoggingFetcher(kshttp.NewFetcher(opts...), logger),
			RateLimiter: cfg.RateLimiter(),
			Concurrency: cfg.Concurrency,
			OnRetry: func(location string, attempt int, err error) {
				logger.Warn("retry fetch", "location", location, "attempt", attempt, "err", err)
			},
		}
	}

	if cmd == "ask" {
		if m.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  m.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Asker = gemini.NewAsker(client, deps.Recipes, deps.MealPlans, cfg.Model)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "kitchensage.db"
	}
	return filepath.Join(home, ".kitchensage", "kitchensage.db")
}

func defaultConfigPath() string {
	if path := os.Getenv("KITCHENSAGE_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".kitchensage", "config.yaml")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
