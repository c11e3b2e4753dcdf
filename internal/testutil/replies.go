package testutil

import (
	"encoding/json"
	"fmt"
)

// RecipeSpec describes one recipe in a scripted model reply.
type RecipeSpec struct {
	Title   string
	Used    []string
	Missing []string
}

// RecipeReply renders specs as the {"recipes": [...]} document the text model
// is asked to produce.
func RecipeReply(specs ...RecipeSpec) string {
	type step struct {
		Instruction string `json:"instruction"`
		Duration    string `json:"duration"`
	}
	type recipe struct {
		Title              string   `json:"title"`
		Description        string   `json:"description"`
		TotalTime          string   `json:"totalTime"`
		Tags               []string `json:"tags"`
		IngredientsUsed    []string `json:"ingredientsUsed"`
		MissingIngredients []string `json:"missingIngredients"`
		Steps              []step   `json:"steps"`
	}

	doc := struct {
		Recipes []recipe `json:"recipes"`
	}{Recipes: make([]recipe, 0, len(specs))}

	for i, spec := range specs {
		missing := spec.Missing
		if missing == nil {
			missing = []string{}
		}
		doc.Recipes = append(doc.Recipes, recipe{
			Title:              spec.Title,
			Description:        fmt.Sprintf("Recipe number %d", i+1),
			TotalTime:          "15 min",
			Tags:               []string{"Test"},
			IngredientsUsed:    spec.Used,
			MissingIngredients: missing,
			Steps:              []step{{Instruction: "Cook it", Duration: "10m"}},
		})
	}

	out, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return string(out)
}

// ValidReply is a three recipe reply that passes every validation rule.
func ValidReply() string {
	return RecipeReply(
		RecipeSpec{Title: "Garlic Egg Fried Rice", Used: []string{"Eggs", "Rice", "Garlic"}},
		RecipeSpec{Title: "Herbed Omelette", Used: []string{"Eggs"}, Missing: []string{"Chives"}},
		RecipeSpec{Title: "Chicken Congee", Used: []string{"Rice"}, Missing: []string{"Chicken", "Ginger", "Scallions"}},
	)
}

// MissingFirstReply is a reply whose first recipe needs shopping.
func MissingFirstReply() string {
	return RecipeReply(
		RecipeSpec{Title: "Egg Salad", Used: []string{"Eggs"}, Missing: []string{"Mayo"}},
		RecipeSpec{Title: "Herbed Omelette", Used: []string{"Eggs"}, Missing: []string{"Chives"}},
		RecipeSpec{Title: "Shakshuka", Used: []string{"Eggs"}, Missing: []string{"Tomatoes", "Peppers"}},
	)
}

// BadPairingReply is a reply pairing peanut butter with scallops.
func BadPairingReply() string {
	return RecipeReply(
		RecipeSpec{Title: "Plain Rice", Used: []string{"Rice"}},
		RecipeSpec{Title: "PB Scallops", Used: []string{"Peanut Butter"}, Missing: []string{"Scallops"}},
		RecipeSpec{Title: "Fried Rice", Used: []string{"Rice"}, Missing: []string{"Peas", "Soy Sauce"}},
	)
}
