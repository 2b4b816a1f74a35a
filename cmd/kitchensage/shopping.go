package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/kitchensage"
	"github.com/fwojciec/kitchensage/etree"
)

// Run executes the shopping command.
func (c *ShoppingCmd) Run(deps *Dependencies) error {
	list := kitchensage.NewShoppingList()
	plans := make([]string, 0, len(c.Files))

	for _, path := range c.Files {
		doc, err := deps.Files.Fetch(deps.Ctx, path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
			return err
		}

		plan, items, err := etree.ReadShoppingList(strings.NewReader(doc))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", path, kitchensage.ErrorMessage(err))
			return err
		}
		for _, item := range items {
			list.AddLine(kitchensage.NewItem(item.Quantity, item.Unit, item.Name))
		}
		if plan != "" {
			plans = append(plans, plan)
		}
	}

	if c.Format == "text" && len(plans) > 0 {
		fmt.Fprintf(deps.Stdout, "Shopping for %s:\n\n", strings.Join(plans, ", "))
	}
	return printShoppingList(deps.Stdout, c.Format, c.Name, list.Items())
}
