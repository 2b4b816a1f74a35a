package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fwojciec/kitchensage"
	"github.com/fwojciec/kitchensage/etree"
	"github.com/fwojciec/kitchensage/fs"
)

// ShoppingListXMLFile is the name of the XML shopping list within an export.
const ShoppingListXMLFile = "shopping-list.xml"

// Run executes the plan create command.
func (c *PlanCreateCmd) Run(deps *Dependencies) error {
	plan := &kitchensage.MealPlan{
		Name:      c.Name,
		RecipeIDs: c.RecipeIDs,
	}

	if err := deps.MealPlans.CreateMealPlan(deps.Ctx, plan); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created meal plan %q (%s) with %d recipes\n", plan.Name, plan.ID, len(plan.RecipeIDs))
	return nil
}

// Run executes the plan list command.
func (c *PlanListCmd) Run(deps *Dependencies) error {
	plans, err := deps.MealPlans.FindMealPlans(deps.Ctx, kitchensage.MealPlanFilter{Search: optional(c.Search)})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}

	if len(plans) == 0 {
		fmt.Fprintln(deps.Stdout, "No meal plans found. Use 'kitchensage plan create' to create one.")
		return nil
	}

	for _, p := range plans {
		fmt.Fprintf(deps.Stdout, "%s  %s  (%d recipes)\n", p.ID, p.Name, len(p.RecipeIDs))
	}
	return nil
}

// Run executes the plan show command.
func (c *PlanShowCmd) Run(deps *Dependencies) error {
	plan, err := findPlan(deps, c.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s (%d recipes):\n\n", plan.Name, len(plan.Recipes))
	for i, r := range plan.Recipes {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", i+1, r.Name, r.ID)
	}
	return nil
}

// Run executes the plan update command.
func (c *PlanUpdateCmd) Run(deps *Dependencies) error {
	var upd kitchensage.MealPlanUpdate
	if c.Name != "" {
		upd.Name = &c.Name
	}
	if c.Clear {
		ids := []string{}
		upd.RecipeIDs = &ids
	} else if len(c.RecipeIDs) > 0 {
		upd.RecipeIDs = &c.RecipeIDs
	}

	if upd.Name == nil && upd.RecipeIDs == nil {
		fmt.Fprintln(deps.Stderr, "error: nothing to update. Use --name, --recipe or --clear.")
		return kitchensage.Errorf(kitchensage.EINVALID, "nothing to update")
	}

	plan, err := deps.MealPlans.UpdateMealPlan(deps.Ctx, c.ID, upd)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Updated meal plan %q (%d recipes)\n", plan.Name, len(plan.RecipeIDs))
	return nil
}

// Run executes the plan delete command.
func (c *PlanDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return kitchensage.Errorf(kitchensage.EINVALID, "use --force to confirm deletion")
	}

	plan, err := findPlan(deps, c.ID)
	if err != nil {
		return err
	}

	if err := deps.MealPlans.DeleteMealPlan(deps.Ctx, plan.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted meal plan %q\n", plan.Name)
	return nil
}

// Run executes the plan shopping command.
func (c *PlanShoppingCmd) Run(deps *Dependencies) error {
	plan, err := findPlan(deps, c.ID)
	if err != nil {
		return err
	}

	return printShoppingList(deps.Stdout, c.Format, plan.Name, plan.ShoppingList())
}

func printShoppingList(w io.Writer, format, name string, items []kitchensage.ConsolidatedIngredient) error {
	switch format {
	case "json":
		if items == nil {
			items = []kitchensage.ConsolidatedIngredient{}
		}
		return writeJSON(w, items)
	case "xml":
		return etree.WriteShoppingList(w, name, items)
	}

	if len(items) == 0 {
		fmt.Fprintf(w, "%q needs no ingredients.\n", name)
		return nil
	}
	fmt.Fprintln(w, kitchensage.FormatShoppingList(items))
	return nil
}

// Run executes the plan export command.
func (c *PlanExportCmd) Run(deps *Dependencies) error {
	plan, err := findPlan(deps, c.ID)
	if err != nil {
		return err
	}

	exporter := fs.NewExporter(c.Dir, fs.Slug(plan.Name))
	if err := exportPlan(exporter, plan); err != nil {
		_ = exporter.Abort()
		fmt.Fprintf(deps.Stderr, "error exporting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d recipes to %s\n", len(plan.Recipes), exporter.Dir())
	return nil
}

func exportPlan(exporter *fs.Exporter, plan *kitchensage.MealPlan) error {
	for _, r := range plan.Recipes {
		if _, err := exporter.SaveRecipe(r); err != nil {
			return fmt.Errorf("save recipe %s: %w", r.ID, err)
		}
	}

	items := plan.ShoppingList()
	if err := exporter.SaveShoppingList(plan.Name, items); err != nil {
		return fmt.Errorf("save shopping list: %w", err)
	}

	var buf bytes.Buffer
	if err := etree.WriteShoppingList(&buf, plan.Name, items); err != nil {
		return fmt.Errorf("write shopping list XML: %w", err)
	}
	if err := exporter.WriteFile(ShoppingListXMLFile, buf.Bytes()); err != nil {
		return fmt.Errorf("save shopping list XML: %w", err)
	}

	return exporter.Commit()
}

func findPlan(deps *Dependencies, id string) (*kitchensage.MealPlan, error) {
	plan, err := deps.MealPlans.FindMealPlanByID(deps.Ctx, id)
	if err != nil {
		if kitchensage.ErrorCode(err) == kitchensage.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: meal plan %q not found. Use 'kitchensage plan list' to see available plans.\n", id)
			return nil, err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return nil, err
	}
	return plan, nil
}
