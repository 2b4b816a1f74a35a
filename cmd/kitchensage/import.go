package main

import (
	"fmt"

	"github.com/fwojciec/kitchensage"
	"github.com/fwojciec/kitchensage/batch"
	"github.com/fwojciec/kitchensage/fs"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	if deps.Importer == nil {
		fmt.Fprintln(deps.Stderr, "error: importer not configured")
		return kitchensage.Errorf(kitchensage.EINTERNAL, "importer not configured")
	}

	sources := fs.ExpandSources(c.Paths)

	if c.Concurrency > 0 {
		deps.Importer.Concurrency = c.Concurrency
	}
	if c.Force {
		deps.Importer.Force = true
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Importing %d documents\n", event.Total)
		case batch.ProgressItem:
			printItem(deps, event.Item)
		}
	}

	result, err := deps.Importer.Import(deps.Ctx, sources, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error importing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d of %d recipes (%d skipped, %d failed)\n",
		result.Imported, result.Total(), result.Skipped, result.Failed)
	return nil
}

func printItem(deps *Dependencies, item *batch.ItemResult) {
	switch item.Status {
	case batch.StatusImported:
		fmt.Fprintf(deps.Stdout, "  ok    %s: %s (%s)\n", item.Source, item.Recipe.Name, item.Recipe.ID)
	case batch.StatusSkipped:
		fmt.Fprintf(deps.Stdout, "  skip  %s: %s\n", item.Source, kitchensage.ErrorMessage(item.Err))
	case batch.StatusFailed:
		fmt.Fprintf(deps.Stderr, "  fail  %s: %s\n", item.Source, failureReason(item.Err))
	}
}

// failureReason labels per-item failures. A document without a recipe is
// reported by kind rather than by message.
func failureReason(err error) string {
	if kitchensage.ErrorCode(err) == kitchensage.ENORECIPE {
		return "no recipe found"
	}
	return kitchensage.ErrorMessage(err)
}
