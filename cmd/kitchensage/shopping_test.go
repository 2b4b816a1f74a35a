package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/kitchensage"
	main "github.com/fwojciec/kitchensage/cmd/kitchensage"
	"github.com/fwojciec/kitchensage/etree"
	"github.com/fwojciec/kitchensage/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const week1XML = `<?xml version="1.0" encoding="UTF-8"?>
<shoppingList plan="Week 1">
  <item quantity="2" unit="cups">Flour</item>
  <item quantity="1">egg</item>
</shoppingList>
`

const week2XML = `<?xml version="1.0" encoding="UTF-8"?>
<shoppingList plan="Week 2">
  <item quantity="3" unit="cups">flour</item>
  <item>salt</item>
</shoppingList>
`

func TestShoppingCmd_Run(t *testing.T) {
	t.Parallel()

	newDeps := func() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		return &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Files:  fs.NewFetcher(),
		}, stdout, stderr
	}

	t.Run("merges lists from several plans", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeFile(t, dir, "week1.xml", week1XML)
		b := writeFile(t, dir, "week2.xml", week2XML)
		deps, stdout, _ := newDeps()

		err := (&main.ShoppingCmd{Files: []string{a, b}, Name: "Combined", Format: "text"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Shopping for Week 1, Week 2:\n\n- 5 cups Flour\n- 1 egg\n- salt\n", stdout.String())
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeFile(t, dir, "week1.xml", week1XML)
		b := writeFile(t, dir, "week2.xml", week2XML)
		deps, stdout, _ := newDeps()

		err := (&main.ShoppingCmd{Files: []string{a, b}, Name: "Combined", Format: "json"}).Run(deps)

		require.NoError(t, err)
		var got []kitchensage.ConsolidatedIngredient
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, []kitchensage.ConsolidatedIngredient{
			{Name: "Flour", Quantity: "5", Unit: "cups"},
			{Name: "egg", Quantity: "1"},
			{Name: "salt"},
		}, got)
	})

	t.Run("writes XML under the merged name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeFile(t, dir, "week1.xml", week1XML)
		deps, stdout, _ := newDeps()

		err := (&main.ShoppingCmd{Files: []string{a, a}, Name: "Fortnight", Format: "xml"}).Run(deps)

		require.NoError(t, err)
		name, items, err := etree.ReadShoppingList(stdout)
		require.NoError(t, err)
		assert.Equal(t, "Fortnight", name)
		assert.Equal(t, []kitchensage.ConsolidatedIngredient{
			{Name: "Flour", Quantity: "4", Unit: "cups"},
			{Name: "egg", Quantity: "2"},
		}, items)
	})

	t.Run("reports files that are not shopping lists", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "notes.xml", "<notes/>")
		deps, stdout, stderr := newDeps()

		err := (&main.ShoppingCmd{Files: []string{path}, Name: "Combined", Format: "text"}).Run(deps)

		assert.Equal(t, kitchensage.EINVALID, kitchensage.ErrorCode(err))
		assert.Contains(t, stderr.String(), "notes.xml")
		assert.Empty(t, stdout.String())
	})

	t.Run("reports missing files", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()

		err := (&main.ShoppingCmd{Files: []string{filepath.Join(t.TempDir(), "gone.xml")}, Name: "Combined", Format: "text"}).Run(deps)

		assert.Equal(t, kitchensage.ENOTFOUND, kitchensage.ErrorCode(err))
		assert.Contains(t, stderr.String(), "gone.xml")
	})
}

func TestMain_Run_ShoppingNeedsNoDatabase(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	a := writeFile(t, t.TempDir(), "week1.xml", week1XML)

	stdout, _, err := run(t, m, "shopping", a)

	require.NoError(t, err)
	assert.Contains(t, stdout, "- 2 cups Flour")
	_, statErr := os.Stat(m.DBPath)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}
