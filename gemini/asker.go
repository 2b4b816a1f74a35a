// Package gemini answers cooking questions about stored recipes using
// Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/kitchensage"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// MaxLibraryRecipes caps how many recipes are sent when a question covers
// the whole library.
const MaxLibraryRecipes = 200

// Ensure Asker implements kitchensage.Asker at compile time.
var _ kitchensage.Asker = (*Asker)(nil)

// Asker implements kitchensage.Asker using Google Gemini.
type Asker struct {
	client  *genai.Client
	recipes kitchensage.RecipeService
	plans   kitchensage.MealPlanService
	model   string
}

// NewAsker creates a new Asker. An empty model selects DefaultModel.
func NewAsker(client *genai.Client, recipes kitchensage.RecipeService, plans kitchensage.MealPlanService, model string) *Asker {
	if model == "" {
		model = DefaultModel
	}
	return &Asker{client: client, recipes: recipes, plans: plans, model: model}
}

// Ask answers a question about a meal plan, or about the recipe library when
// planID is empty.
func (a *Asker) Ask(ctx context.Context, planID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", kitchensage.Errorf(kitchensage.EINVALID, "question required")
	}

	var plan *kitchensage.MealPlan
	var recipes []*kitchensage.Recipe
	if planID != "" {
		p, err := a.plans.FindMealPlanByID(ctx, planID)
		if err != nil {
			return "", err
		}
		plan, recipes = p, p.Recipes
	} else {
		found, err := a.recipes.FindRecipes(ctx, kitchensage.RecipeFilter{Limit: MaxLibraryRecipes})
		if err != nil {
			return "", err
		}
		recipes = found
	}
	if len(recipes) == 0 {
		if plan != nil {
			return "", kitchensage.Errorf(kitchensage.ENOTFOUND, "meal plan %q has no recipes", plan.Name)
		}
		return "", kitchensage.Errorf(kitchensage.ENOTFOUND, "no recipes found. Import some first")
	}

	prompt := BuildUserPrompt(plan, recipes, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", kitchensage.Errorf(kitchensage.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are KitchenSage, a recipe and meal planning assistant. Help the user plan meals for nutritional health and minimal food waste. Base your answer on the recipes provided and say so when they do not cover the question.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the recipes, the plan's
// shopping list when plan is not nil, and the question.
func BuildUserPrompt(plan *kitchensage.MealPlan, recipes []*kitchensage.Recipe, question string) string {
	var sb strings.Builder
	if plan != nil {
		fmt.Fprintf(&sb, "<plan>%s</plan>\n", plan.Name)
	}

	sb.WriteString("<recipes>\n")
	for i, r := range recipes {
		sb.WriteString("<recipe>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<name>%s</name>\n", r.Name)
		if len(r.Categories) > 0 {
			fmt.Fprintf(&sb, "<categories>%s</categories>\n", strings.Join(r.Categories, ", "))
		}
		if r.Servings != "" {
			fmt.Fprintf(&sb, "<servings>%s</servings>\n", r.Servings)
		}
		if total := r.TotalTime(); total > 0 {
			fmt.Fprintf(&sb, "<totalTime>%s</totalTime>\n", total)
		}
		sb.WriteString("<ingredients>\n")
		for _, line := range r.Ingredients {
			fmt.Fprintf(&sb, "%s\n", line)
		}
		sb.WriteString("</ingredients>\n")
		sb.WriteString("<directions>\n")
		for _, d := range r.Directions {
			fmt.Fprintf(&sb, "%d. %s\n", d.Step, d.Description)
		}
		sb.WriteString("</directions>\n")
		sb.WriteString("</recipe>\n")
	}
	sb.WriteString("</recipes>\n")

	if plan != nil {
		sb.WriteString("<shoppingList>\n")
		for _, item := range kitchensage.Consolidate(recipes) {
			fmt.Fprintf(&sb, "- %s\n", item)
		}
		sb.WriteString("</shoppingList>\n")
	}

	fmt.Fprintf(&sb, "\nQuestion: %s", question)
	return sb.String()
}
