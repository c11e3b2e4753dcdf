package recipe

import (
	"encoding/json"
	"strings"

	"github.com/Veraticus/pantrychef/internal/llm"
	"github.com/Veraticus/pantrychef/internal/model"
)

// BatchSize is the number of recipes in a batch.
const BatchSize = 3

// Defaults for fields the model leaves out.
const (
	DefaultTitle       = "Delicious Recipe"
	DefaultDescription = "A tasty meal"
	DefaultTotalTime   = "20 min"
	DefaultTag         = "Tasty"
)

const placeholderImageURL = "https://source.unsplash.com/800x1200/?"

type rawStep struct {
	Instruction string `json:"instruction"`
	Duration    string `json:"duration"`
}

type rawRecipe struct {
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	TotalTime          string    `json:"totalTime"`
	Tags               []string  `json:"tags"`
	IngredientsUsed    []string  `json:"ingredientsUsed"`
	MissingIngredients []string  `json:"missingIngredients"`
	Steps              []rawStep `json:"steps"`
}

// ParseRecipes decodes a model reply into at most BatchSize recipes. The reply
// may be {"recipes": [...]} or a bare array, optionally fenced in markdown.
// Anything that does not decode yields no recipes. Returned recipes carry a
// placeholder image and no id.
func ParseRecipes(content string) []model.Recipe {
	content = llm.CleanMarkdownWrapper(content)

	var raws []rawRecipe
	if err := json.Unmarshal([]byte(content), &raws); err != nil {
		var wrapped struct {
			Recipes []rawRecipe `json:"recipes"`
		}
		if err := json.Unmarshal([]byte(content), &wrapped); err != nil {
			return nil
		}
		raws = wrapped.Recipes
	}

	if len(raws) > BatchSize {
		raws = raws[:BatchSize]
	}

	recipes := make([]model.Recipe, 0, len(raws))
	for _, raw := range raws {
		recipes = append(recipes, raw.toRecipe())
	}
	return recipes
}

func (r rawRecipe) toRecipe() model.Recipe {
	title := orDefault(r.Title, DefaultTitle)

	tags := r.Tags
	if tags == nil {
		tags = []string{DefaultTag}
	}

	steps := make([]model.RecipeStep, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, model.RecipeStep{Instruction: s.Instruction, Duration: s.Duration})
	}

	return model.Recipe{
		Title:              title,
		Description:        orDefault(r.Description, DefaultDescription),
		TotalTime:          orDefault(r.TotalTime, DefaultTotalTime),
		Tags:               tags,
		IngredientsUsed:    nonNil(r.IngredientsUsed),
		MissingIngredients: nonNil(r.MissingIngredients),
		Steps:              steps,
		Image:              PlaceholderImage(title),
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// imageKeywords map title words to a stock photo search term. Earlier entries
// win.
var imageKeywords = []struct {
	words   []string
	keyword string
}{
	{[]string{"chicken"}, "chicken-dish"},
	{[]string{"fish", "salmon", "tuna"}, "fish-dish"},
	{[]string{"pasta", "spaghetti"}, "pasta"},
	{[]string{"rice", "bowl"}, "rice-bowl"},
	{[]string{"salad", "spinach"}, "salad"},
	{[]string{"soup", "stew"}, "soup"},
	{[]string{"burger", "sandwich"}, "burger"},
	{[]string{"pizza"}, "pizza"},
	{[]string{"beef", "steak"}, "beef-steak"},
	{[]string{"pork"}, "pork-dish"},
	{[]string{"shrimp", "seafood"}, "seafood"},
	{[]string{"vegetable", "veggie"}, "vegetables"},
	{[]string{"noodle"}, "noodles"},
}

// ImageKeyword picks the stock photo search term for a recipe title.
func ImageKeyword(title string) string {
	lower := strings.ToLower(title)
	for _, entry := range imageKeywords {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				return entry.keyword
			}
		}
	}
	return "food-dish"
}

// PlaceholderImage returns the stock photo URL used until a generated image
// replaces it.
func PlaceholderImage(title string) string {
	return placeholderImageURL + ImageKeyword(title)
}
