package render

import (
	"fmt"
	"strings"
)

func renderRecipe(r Result) Card {
	rec := r.Sub("recipe")
	if rec.Len() == 0 {
		// Some producers flatten the recipe onto the payload root.
		rec = r
	}

	title := "Recipe"
	if t := rec.Str("title"); t != "" {
		title = "Recipe · " + t
	}

	meta := kvLines([][2]string{
		{"Servings", rec.Str("servings")},
		{"Prep", rec.Str("prep_time")},
		{"Cook", rec.Str("cook_time")},
		{"Cuisine", rec.Str("cuisine")},
	})

	var ingredients string
	if list := rec.Strings("ingredients"); len(list) > 0 {
		var b strings.Builder
		b.WriteString(cardLabelStyle.Render("Ingredients"))
		for _, ing := range list {
			b.WriteString("\n  • " + ing)
		}
		ingredients = b.String()
	}

	var steps string
	if list := rec.Strings("steps"); len(list) > 0 {
		var b strings.Builder
		b.WriteString(cardLabelStyle.Render("Steps"))
		for i, step := range list {
			b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
		steps = b.String()
	}

	return Card{
		Kind:  KindRecipe,
		Title: title,
		Body:  joinSections(errorLine(r), meta, ingredients, steps),
	}
}

func renderRecipeList(r Result) Card {
	body := bulletList(r.List("recipes"), func(it Result) (string, string) {
		sub := it.Str("description")
		if t := it.Str("total_time"); t != "" {
			sub = strings.TrimSpace(sub + " · " + t)
		}
		return it.Str("title"), sub
	})

	return Card{
		Kind:  KindRecipeList,
		Title: "Recipes",
		Body:  joinSections(errorLine(r), body),
	}
}
