package model

import (
	"fmt"
	"time"
)

// RecipeStep is one instruction in a recipe.
type RecipeStep struct {
	Instruction string `json:"instruction"`
	Duration    string `json:"duration,omitempty"`
}

// Recipe is a generated recipe. Recipes come in batches of three that share a
// generation timestamp.
type Recipe struct {
	GeneratedAt        time.Time    `json:"generatedAt"`
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	TotalTime          string       `json:"totalTime"`
	Image              string       `json:"image"`
	Tags               []string     `json:"tags"`
	IngredientsUsed    []string     `json:"ingredientsUsed"`
	MissingIngredients []string     `json:"missingIngredients"`
	Steps              []RecipeStep `json:"steps"`
}

// RecipeID builds the id of the recipe at index within the batch stamped at batchStamp
// (Unix milliseconds).
func RecipeID(batchStamp int64, index int) string {
	return fmt.Sprintf("%d-%d", batchStamp, index)
}
