package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/kitchensage"
	"github.com/fwojciec/kitchensage/mock"
	kslog "github.com/fwojciec/kitchensage/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := kslog.NewLoggingFetcher(inner, logger)
		doc, err := fetcher.Fetch(context.Background(), "https://example.com/pancakes.html")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", doc)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "location=https://example.com/pancakes.html")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := kslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/pancakes.html")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="network error"`)
	})
}

func TestLoggingParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("logs recipe summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecipeParser{
			ParseFn: func(_ string) (*kitchensage.Recipe, error) {
				return &kitchensage.Recipe{
					Name:        "Pancakes",
					Ingredients: []kitchensage.IngredientLine{kitchensage.NewItem("2", "cups", "flour")},
				}, nil
			},
		}

		parser := kslog.NewLoggingParser(inner, logger)
		recipe, err := parser.Parse("<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "Pancakes", recipe.Name)
		output := buf.String()
		assert.Contains(t, output, `msg="parse recipe"`)
		assert.Contains(t, output, "name=Pancakes")
		assert.Contains(t, output, "ingredients=1")
		assert.Contains(t, output, "directions=0")
	})

	t.Run("logs error when no recipe is found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecipeParser{
			ParseFn: func(_ string) (*kitchensage.Recipe, error) {
				return nil, kitchensage.Errorf(kitchensage.ENORECIPE, "no recipe found in document")
			},
		}

		parser := kslog.NewLoggingParser(inner, logger)
		_, err := parser.Parse("<html></html>")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "code=no_recipe")
	})
}
