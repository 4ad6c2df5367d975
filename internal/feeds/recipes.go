package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// TheMealDB's free tier serves recipe search without a key. Each meal
// carries twenty numbered ingredient/measure column pairs; the non-empty
// ones are folded into a single ingredient list.

type mealDBMeal map[string]any

// FindRecipes searches recipes by dish or ingredient. A single match is
// returned as a full recipe card; multiple matches as a summary list.
func (c *Client) FindRecipes(ctx context.Context, query string, limit int) json.RawMessage {
	if limit <= 0 || limit > 10 {
		limit = 5
	}

	var resp struct {
		Meals []mealDBMeal `json:"meals"`
	}
	searchURL := fmt.Sprintf("%s/search.php?s=%s", c.mealURL, url.QueryEscape(query))
	if err := c.getJSON(ctx, searchURL, nil, &resp); err != nil {
		return failure("recipe_list", "themealdb", err.Error())
	}

	if len(resp.Meals) == 0 {
		return structured("recipe_list", "themealdb", map[string]any{
			"query":   query,
			"recipes": []any{},
		})
	}

	if len(resp.Meals) == 1 {
		return structured("recipe", "themealdb", map[string]any{
			"recipe": mealToRecipe(resp.Meals[0]),
		})
	}

	if len(resp.Meals) > limit {
		resp.Meals = resp.Meals[:limit]
	}
	recipes := make([]map[string]any, 0, len(resp.Meals))
	for _, meal := range resp.Meals {
		recipes = append(recipes, map[string]any{
			"title":       mealStr(meal, "strMeal"),
			"description": mealStr(meal, "strArea") + " " + mealStr(meal, "strCategory"),
		})
	}
	return structured("recipe_list", "themealdb", map[string]any{
		"query":   query,
		"recipes": recipes,
	})
}

func mealStr(meal mealDBMeal, key string) string {
	s, _ := meal[key].(string)
	return strings.TrimSpace(s)
}

func mealToRecipe(meal mealDBMeal) map[string]any {
	var ingredients []string
	for i := 1; i <= 20; i++ {
		ing := mealStr(meal, fmt.Sprintf("strIngredient%d", i))
		if ing == "" {
			continue
		}
		if measure := mealStr(meal, fmt.Sprintf("strMeasure%d", i)); measure != "" {
			ing = measure + " " + ing
		}
		ingredients = append(ingredients, ing)
	}

	var steps []string
	for _, line := range strings.Split(mealStr(meal, "strInstructions"), "\n") {
		if line = strings.TrimSpace(strings.TrimSuffix(line, "\r")); line != "" {
			steps = append(steps, line)
		}
	}

	return map[string]any{
		"title":       mealStr(meal, "strMeal"),
		"cuisine":     mealStr(meal, "strArea"),
		"ingredients": ingredients,
		"steps":       steps,
	}
}
