package recipe

import (
	"testing"

	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/Veraticus/pantrychef/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipes_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "wrapped object", content: testutil.ValidReply(), want: 3},
		{name: "bare array", content: `[{"title":"A"},{"title":"B"},{"title":"C"}]`, want: 3},
		{name: "markdown fence", content: "```json\n" + testutil.ValidReply() + "\n```", want: 3},
		{name: "truncates extra recipes", content: `[{},{},{},{},{}]`, want: 3},
		{name: "object without recipes", content: `{"dishes":[]}`, want: 0},
		{name: "not json", content: "here are some recipes", want: 0},
		{name: "wrong field types", content: `{"recipes":[{"title":42}]}`, want: 0},
		{name: "empty object", content: `{}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ParseRecipes(tt.content), tt.want)
		})
	}
}

func TestParseRecipes_AppliesDefaults(t *testing.T) {
	recipes := ParseRecipes(`{"recipes":[{}, {"title":"Beef Tacos","tags":[],"steps":[{"instruction":"Brown beef"}]}]}`)
	require.Len(t, recipes, 2)

	bare := recipes[0]
	assert.Equal(t, DefaultTitle, bare.Title)
	assert.Equal(t, DefaultDescription, bare.Description)
	assert.Equal(t, DefaultTotalTime, bare.TotalTime)
	assert.Equal(t, []string{DefaultTag}, bare.Tags)
	assert.Equal(t, []string{}, bare.IngredientsUsed)
	assert.Equal(t, []string{}, bare.MissingIngredients)
	assert.Equal(t, []model.RecipeStep{}, bare.Steps)
	assert.Equal(t, "https://source.unsplash.com/800x1200/?food-dish", bare.Image)
	assert.Empty(t, bare.ID)

	tacos := recipes[1]
	assert.Equal(t, []string{}, tacos.Tags)
	assert.Equal(t, []model.RecipeStep{{Instruction: "Brown beef"}}, tacos.Steps)
	assert.Equal(t, PlaceholderImage("Beef Tacos"), tacos.Image)
}

func TestImageKeyword(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Lemon Chicken", "chicken-dish"},
		{"Chicken Fried Rice", "chicken-dish"},
		{"Seared Salmon", "fish-dish"},
		{"Spaghetti Carbonara", "pasta"},
		{"Poke Bowl", "rice-bowl"},
		{"Spinach Frittata", "salad"},
		{"Beef Stew", "soup"},
		{"Club Sandwich", "burger"},
		{"Margherita Pizza", "pizza"},
		{"Pepper Steak", "beef-steak"},
		{"Pulled Pork", "pork-dish"},
		{"Garlic Shrimp", "seafood"},
		{"Roasted Veggie Tray", "vegetables"},
		{"Sesame Noodles", "noodles"},
		{"Mystery Casserole", "food-dish"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageKeyword(tt.title))
		})
	}
}

func TestValidateBatch(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		wantErr error
	}{
		{name: "valid", reply: testutil.ValidReply()},
		{name: "first recipe missing items", reply: testutil.MissingFirstReply(), wantErr: ErrReadyRecipeHasMissing},
		{name: "peanut butter and scallops", reply: testutil.BadPairingReply(), wantErr: ErrIncompatiblePairing},
		{name: "two recipes", reply: `[{},{}]`, wantErr: ErrTooFewRecipes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatch(ParseRecipes(tt.reply))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHasIncompatiblePairing(t *testing.T) {
	tests := []struct {
		name    string
		used    []string
		missing []string
		want    bool
	}{
		{name: "peanut butter and shrimp", used: []string{"Peanut Butter", "Shrimp"}, want: true},
		{name: "pb split across lists", used: []string{"Salmon"}, missing: []string{"peanut pb spread"}, want: true},
		{name: "peanuts alone with fish", used: []string{"Peanuts", "Fish sauce"}, want: false},
		{name: "peanut butter without seafood", used: []string{"Peanut Butter", "Banana"}, want: false},
		{name: "butter with lobster", used: []string{"Butter", "Lobster"}, want: false},
		{name: "case insensitive", used: []string{"PEANUT BUTTER"}, missing: []string{"TUNA"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := model.Recipe{IngredientsUsed: tt.used, MissingIngredients: tt.missing}
			assert.Equal(t, tt.want, HasIncompatiblePairing(r))
		})
	}
}

func TestFallbackRecipes(t *testing.T) {
	t.Run("uses first three items", func(t *testing.T) {
		recipes := FallbackRecipes([]string{"Eggs", "Rice", "Garlic", "Kale"})
		require.Len(t, recipes, 3)

		assert.Equal(t, "Simple Eggs Dish", recipes[0].Title)
		assert.Equal(t, "A quick and easy dish using Eggs and Rice and Garlic", recipes[0].Description)
		assert.Equal(t, []string{"Eggs", "Rice", "Garlic"}, recipes[0].IngredientsUsed)
		assert.Equal(t, "Prepare Eggs, Rice, Garlic", recipes[0].Steps[0].Instruction)
		assert.Empty(t, recipes[0].MissingIngredients)

		assert.Equal(t, "Eggs Surprise", recipes[1].Title)
		assert.Equal(t, []string{"Salt", "Pepper", "Oil"}, recipes[1].MissingIngredients)

		assert.Equal(t, "Chef's Special", recipes[2].Title)
		assert.Equal(t, []string{"Herbs", "Spices"}, recipes[2].MissingIngredients)

		assert.NoError(t, ValidateBatch(recipes))
	})

	t.Run("no items", func(t *testing.T) {
		recipes := FallbackRecipes(nil)
		assert.Equal(t, "Simple Ingredient Dish", recipes[0].Title)
		assert.Equal(t, "Ingredient Surprise", recipes[1].Title)
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt([]string{"Tofu", "Rice"}, "Breakfast", nil)
	assert.Contains(t, prompt, "EXACTLY 3 different breakfast recipes")
	assert.Contains(t, prompt, "AVAILABLE: Tofu, Rice\n")
	assert.NotContains(t, prompt, "DIETARY")
	assert.Contains(t, prompt, "Recipe 1 - READY TO COOK")
}
