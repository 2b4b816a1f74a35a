package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"testing"

	main "github.com/fwojciec/kitchensage/cmd/kitchensage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMain returns a Main using a temporary database and no config file.
func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	return m
}

func run(t *testing.T, m *main.Main, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	err = m.Run(context.Background(), args, out, errOut)
	return out.String(), errOut.String(), err
}

func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	// Story: a cook imports a folder of exports, searches them, builds a
	// meal plan and prints its shopping list.
	m := newTestMain(t)
	exports := t.TempDir()
	writeFile(t, exports, "chili.html", exportHTML("Chili", "<strong>2</strong> cans beans", "<strong>1</strong> large onion"))
	writeFile(t, exports, "stew.html", exportHTML("Stew", "<strong>1</strong> large onion", "<strong>500</strong> g beef"))

	// When importing the folder
	stdout, _, err := run(t, m, "import", exports)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Imported 2 of 2 recipes (0 skipped, 0 failed)")

	// And importing it again
	stdout, _, err = run(t, m, "import", exports)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Imported 0 of 2 recipes (2 skipped, 0 failed)")

	// Then recipes can be found by ingredient
	stdout, _, err = run(t, m, "recipes", "--ingredient", "beef")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stew")
	assert.NotContains(t, stdout, "Chili")

	// And categories are listed
	stdout, _, err = run(t, m, "categories")
	require.NoError(t, err)
	assert.Equal(t, "Dinner\nQuick\n", stdout)

	// When creating a plan from both recipes
	stdout, _, err = run(t, m, "recipes")
	require.NoError(t, err)
	ids := regexp.MustCompile(`(?m)^(\S+)  `).FindAllStringSubmatch(stdout, -1)
	require.Len(t, ids, 2)

	stdout, _, err = run(t, m, "plan", "create", "Week 1", ids[0][1], ids[1][1])
	require.NoError(t, err)
	planID := regexp.MustCompile(`\(([^)]+)\) with`).FindStringSubmatch(stdout)
	require.Len(t, planID, 2)

	// Then the shopping list merges shared ingredients
	stdout, _, err = run(t, m, "plan", "shopping", planID[1])
	require.NoError(t, err)
	assert.Contains(t, stdout, "- 2 large onion")
	assert.Contains(t, stdout, "- 2 cans beans")
	assert.Contains(t, stdout, "- 500 g beef")
}

func TestMain_Run_ParseNeedsNoDatabase(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	m.DBPath = filepath.Join(t.TempDir(), "missing", "dir", "test.db")
	path := writeFile(t, t.TempDir(), "chili.html", exportHTML("Chili"))

	stdout, _, err := run(t, m, "parse", path)

	require.NoError(t, err)
	assert.Contains(t, stdout, `"name": "Chili"`)
	assert.Nil(t, m.DB)
}

func TestMain_Run_MalformedConfig(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	m.ConfigPath = writeFile(t, t.TempDir(), "config.yaml", "db: [oops\n")

	_, stderr, err := run(t, m, "categories")

	require.Error(t, err)
	assert.Contains(t, stderr, "invalid config file")
}

func TestMain_Run_VerboseLogsToStderr(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	path := writeFile(t, t.TempDir(), "chili.html", exportHTML("Chili"))

	_, stderr, err := run(t, m, "--verbose", "parse", path)

	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=fetch")
	assert.Contains(t, stderr, "msg=\"parse recipe\"")
}
