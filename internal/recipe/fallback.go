package recipe

import (
	"strings"

	"github.com/Veraticus/pantrychef/internal/model"
)

// FallbackRecipes builds a batch from the first three ingredients without
// calling any model. It always satisfies ValidateBatch's structural rules.
func FallbackRecipes(ingredients []string) []model.Recipe {
	available := ingredients[:min(len(ingredients), BatchSize)]
	mainItem := "Ingredient"
	if len(available) > 0 {
		mainItem = available[0]
	}

	simple := "Simple " + mainItem + " Dish"
	surprise := mainItem + " Surprise"
	special := "Chef's Special"

	return []model.Recipe{
		{
			Title:              simple,
			Description:        "A quick and easy dish using " + strings.Join(available, " and "),
			Tags:               []string{"Fast", "Simple", "Fallback"},
			TotalTime:          "15 min",
			IngredientsUsed:    append([]string{}, available...),
			MissingIngredients: []string{},
			Steps: []model.RecipeStep{
				{Instruction: "Prepare " + strings.Join(available, ", "), Duration: "5m"},
				{Instruction: "Cook together in a pan", Duration: "10m"},
				{Instruction: "Season to taste and serve", Duration: "1m"},
			},
			Image: PlaceholderImage(simple),
		},
		{
			Title:              surprise,
			Description:        "A creative way to use your ingredients",
			Tags:               []string{"Creative"},
			TotalTime:          "20 min",
			IngredientsUsed:    []string{mainItem},
			MissingIngredients: []string{"Salt", "Pepper", "Oil"},
			Steps: []model.RecipeStep{
				{Instruction: "Heat oil in a pan", Duration: "2m"},
				{Instruction: "Cook " + mainItem + " until done", Duration: "15m"},
			},
			Image: PlaceholderImage(surprise),
		},
		{
			Title:              special,
			Description:        "Something a bit more fancy",
			Tags:               []string{"Chef"},
			TotalTime:          "30 min",
			IngredientsUsed:    append([]string{}, available...),
			MissingIngredients: []string{"Herbs", "Spices"},
			Steps: []model.RecipeStep{
				{Instruction: "Marinate ingredients", Duration: "10m"},
				{Instruction: "Cook slowly for best flavor", Duration: "20m"},
			},
			Image: PlaceholderImage(special),
		},
	}
}
