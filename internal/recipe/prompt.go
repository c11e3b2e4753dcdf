package recipe

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the model as a chef that only answers in JSON.
const SystemPrompt = "You are a professional chef with deep culinary knowledge. " +
	"You only suggest ingredient combinations that are commonly used in real world cuisines and that people actually want to eat. " +
	"You NEVER combine incompatible ingredients like peanut butter with seafood. " +
	"You always respond with valid JSON only, no other text."

// BuildPrompt renders the user prompt for one generation attempt.
func BuildPrompt(ingredients []string, mealType string, dietary []string) string {
	dietaryRules := ""
	if len(dietary) > 0 {
		dietaryRules = "\nDIETARY: " + strings.Join(dietary, ", ")
	}

	return fmt.Sprintf(`You are a creative chef AI. Generate EXACTLY 3 different %s recipes using these ingredients:

AVAILABLE: %s%s

CULINARY RULES - NEVER VIOLATE:

1. Only suggest ingredient combinations that are:
   - Commonly paired in real world cuisines
   - Culinary compatible and logical
   - Something people actually want to eat
   - Used in established recipes or cooking traditions

2. FORBIDDEN combinations (never suggest):
   - Peanut butter with seafood (scallops, fish, shrimp)
   - Sweet ingredients with raw seafood
   - Dessert ingredients in savory mains
   - Dairy with strongly acidic ingredients

3. When suggesting recipes with limited ingredients:
   - You CAN add 2-5 missing ingredients if it makes a GREAT recipe
   - Prioritize common, affordable additions
   - Missing ingredients should be pantry staples or easy to find
   - The recipe should be worth shopping for those items

4. Recipe quality standards:
   - Must be delicious and appetizing
   - Clear flavor profiles (Italian, Asian, American, etc.)
   - Balanced nutrition when possible
   - Appropriate cooking methods for ingredients

RECIPE REQUIREMENTS:

Recipe 1 - READY TO COOK:
- Use ONLY available ingredients (0 missing)
- Must be simple and quick
- NO substitutions, NO additions, NO "or" alternatives
- If exact match is impossible, make a very simple dish with what's available

Recipe 2 - ALMOST THERE:
- Can have 1-2 missing ingredients (common items like herbs, wine, cream)
- Should elevate the meal significantly
- Missing items must be affordable and widely available

Recipe 3 - CHEF'S PICK:
- Can have 2-5 missing ingredients
- Should be impressive and restaurant-quality
- Missing ingredients must be worth buying
- Still doable at home with available equipment

OTHER RULES:
- Total time: 10-30 minutes
- Make them sound delicious
- Use realistic cooking techniques

FORMAT (return ONLY this JSON, no other text):
{
  "recipes": [
    {
      "title": "Recipe Name",
      "description": "One-line description",
      "tags": ["Fast", "Comfort", "Healthy"],
      "totalTime": "15 min",
      "ingredientsUsed": ["exact_name_from_list"],
      "missingIngredients": [], // MUST BE EMPTY FOR RECIPE 1
      "steps": [
        {"instruction": "Step 1", "duration": "5m"}
      ]
    }
  ]
}

Ensure Recipe 1 has missingIngredients: [] (empty array).`,
		strings.ToLower(mealType),
		strings.Join(ingredients, ", "),
		dietaryRules)
}

// ImagePrompt describes the food photo generated for a recipe.
func ImagePrompt(title string) string {
	return fmt.Sprintf("Professional food photography of %s. "+
		"The dish is beautifully plated on a white ceramic plate with natural lighting, "+
		"shallow depth of field, and a rustic wooden table background. "+
		"Magazine quality, appetizing, restaurant-style presentation.", title)
}
