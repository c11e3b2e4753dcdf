// Package food classifies grocery names into pantry categories and maps the
// time of day to a meal.
package food

import (
	"slices"
	"strings"
)

// Category is a grocery category.
type Category string

// Known categories, in display order.
const (
	Protein   Category = "Protein"
	Produce   Category = "Produce"
	Dairy     Category = "Dairy"
	Grain     Category = "Grain"
	Pantry    Category = "Pantry"
	Beverage  Category = "Beverage"
	Condiment Category = "Condiment"
	Frozen    Category = "Frozen"
	Other     Category = "Other"
)

var categories = []Category{Protein, Produce, Dairy, Grain, Pantry, Beverage, Condiment, Frozen, Other}

type keyword struct {
	text     string
	category Category
}

// keywords are matched as substrings of the lower-cased item name.
var keywords = []keyword{
	{"chicken", Protein},
	{"turkey", Protein},
	{"duck", Protein},
	{"beef", Protein},
	{"steak", Protein},
	{"pork", Protein},
	{"lamb", Protein},
	{"veal", Protein},
	{"venison", Protein},
	{"bison", Protein},
	{"bacon", Protein},
	{"sausage", Protein},
	{"ham", Protein},
	{"salami", Protein},
	{"pepperoni", Protein},
	{"hotdog", Protein},
	{"hot dog", Protein},
	{"meatball", Protein},
	{"salmon", Protein},
	{"tuna", Protein},
	{"shrimp", Protein},
	{"crab", Protein},
	{"lobster", Protein},
	{"fish", Protein},
	{"cod", Protein},
	{"tilapia", Protein},
	{"trout", Protein},
	{"sardine", Protein},
	{"anchovy", Protein},
	{"scallop", Protein},
	{"oyster", Protein},
	{"mussel", Protein},
	{"clam", Protein},
	{"egg", Protein},
	{"tofu", Protein},
	{"tempeh", Protein},
	{"seitan", Protein},

	{"apple", Produce},
	{"banana", Produce},
	{"orange", Produce},
	{"lemon", Produce},
	{"lime", Produce},
	{"grape", Produce},
	{"strawberry", Produce},
	{"blueberry", Produce},
	{"raspberry", Produce},
	{"blackberry", Produce},
	{"cherry", Produce},
	{"peach", Produce},
	{"pear", Produce},
	{"plum", Produce},
	{"mango", Produce},
	{"pineapple", Produce},
	{"watermelon", Produce},
	{"melon", Produce},
	{"kiwi", Produce},
	{"avocado", Produce},
	{"coconut", Produce},
	{"papaya", Produce},
	{"pomegranate", Produce},
	{"fig", Produce},
	{"spinach", Produce},
	{"lettuce", Produce},
	{"kale", Produce},
	{"cabbage", Produce},
	{"broccoli", Produce},
	{"cauliflower", Produce},
	{"carrot", Produce},
	{"celery", Produce},
	{"cucumber", Produce},
	{"tomato", Produce},
	{"pepper", Produce},
	{"onion", Produce},
	{"garlic", Produce},
	{"ginger", Produce},
	{"potato", Produce},
	{"sweet potato", Produce},
	{"yam", Produce},
	{"corn", Produce},
	{"pea", Produce},
	{"bean", Produce},
	{"zucchini", Produce},
	{"squash", Produce},
	{"eggplant", Produce},
	{"mushroom", Produce},
	{"asparagus", Produce},
	{"artichoke", Produce},
	{"beet", Produce},
	{"radish", Produce},
	{"turnip", Produce},
	{"parsnip", Produce},
	{"leek", Produce},
	{"scallion", Produce},
	{"shallot", Produce},
	{"bok", Produce},
	{"arugula", Produce},
	{"cilantro", Produce},
	{"parsley", Produce},
	{"basil", Produce},
	{"mint", Produce},
	{"dill", Produce},

	{"milk", Dairy},
	{"cheese", Dairy},
	{"cheddar", Dairy},
	{"mozzarella", Dairy},
	{"parmesan", Dairy},
	{"feta", Dairy},
	{"brie", Dairy},
	{"gouda", Dairy},
	{"swiss", Dairy},
	{"cream", Dairy},
	{"sour cream", Dairy},
	{"yogurt", Dairy},
	{"butter", Dairy},
	{"margarine", Dairy},
	{"cottage cheese", Dairy},
	{"cream cheese", Dairy},
	{"ricotta", Dairy},
	{"whipped", Dairy},
	{"half and half", Dairy},
	{"custard", Dairy},

	{"bread", Grain},
	{"toast", Grain},
	{"bagel", Grain},
	{"croissant", Grain},
	{"muffin", Grain},
	{"biscuit", Grain},
	{"roll", Grain},
	{"bun", Grain},
	{"tortilla", Grain},
	{"pita", Grain},
	{"naan", Grain},
	{"rice", Grain},
	{"pasta", Grain},
	{"noodle", Grain},
	{"spaghetti", Grain},
	{"macaroni", Grain},
	{"oat", Grain},
	{"oatmeal", Grain},
	{"cereal", Grain},
	{"granola", Grain},
	{"quinoa", Grain},
	{"couscous", Grain},
	{"barley", Grain},
	{"wheat", Grain},
	{"flour", Grain},
	{"cracker", Grain},
	{"pretzel", Grain},

	{"chip", Pantry},
	{"chips", Pantry},
	{"peanut", Pantry},
	{"almond", Pantry},
	{"walnut", Pantry},
	{"cashew", Pantry},
	{"pistachio", Pantry},
	{"nut", Pantry},
	{"seed", Pantry},
	{"sugar", Pantry},
	{"honey", Pantry},
	{"syrup", Pantry},
	{"chocolate", Pantry},
	{"candy", Pantry},
	{"cookie", Pantry},
	{"cake", Pantry},
	{"brownie", Pantry},
	{"popcorn", Pantry},
	{"peanut butter", Pantry},
	{"jelly", Pantry},
	{"jam", Pantry},
	{"nutella", Pantry},
	{"raisin", Pantry},
	{"dried", Pantry},
	{"canned", Pantry},
	{"soup", Pantry},
	{"broth", Pantry},
	{"stock", Pantry},
	{"oil", Pantry},
	{"vinegar", Pantry},

	{"juice", Beverage},
	{"soda", Beverage},
	{"cola", Beverage},
	{"coke", Beverage},
	{"pepsi", Beverage},
	{"sprite", Beverage},
	{"water", Beverage},
	{"tea", Beverage},
	{"coffee", Beverage},
	{"latte", Beverage},
	{"espresso", Beverage},
	{"smoothie", Beverage},
	{"shake", Beverage},
	{"beer", Beverage},
	{"wine", Beverage},
	{"whiskey", Beverage},
	{"vodka", Beverage},

	{"ketchup", Condiment},
	{"mustard", Condiment},
	{"mayo", Condiment},
	{"mayonnaise", Condiment},
	{"relish", Condiment},
	{"salsa", Condiment},
	{"guacamole", Condiment},
	{"hummus", Condiment},
	{"dressing", Condiment},
	{"sauce", Condiment},
	{"soy sauce", Condiment},
	{"hot sauce", Condiment},
	{"sriracha", Condiment},
	{"teriyaki", Condiment},
	{"bbq", Condiment},
	{"ranch", Condiment},

	{"ice cream", Frozen},
	{"icecream", Frozen},
	{"gelato", Frozen},
	{"sorbet", Frozen},
	{"popsicle", Frozen},
	{"frozen pizza", Frozen},
	{"frozen vegetable", Frozen},
	{"frozen fruit", Frozen},
	{"frozen dinner", Frozen},
	{"tv dinner", Frozen},
}

// Categorize returns the category of a grocery item name. Matching is
// case-insensitive on substrings; when several keywords match, the longest
// wins and equal lengths resolve to the earlier keyword. Unknown names are
// Other.
func Categorize(name string) Category {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return Other
	}

	best := Other
	bestLen := 0
	for _, kw := range keywords {
		if len(kw.text) > bestLen && strings.Contains(lower, kw.text) {
			best = kw.category
			bestLen = len(kw.text)
		}
	}
	return best
}

// Categories returns every category in display order, Other last.
func Categories() []Category {
	return slices.Clone(categories)
}

// IsCategory reports whether s names a known category (case-insensitive).
func IsCategory(s string) bool {
	_, ok := ParseCategory(s)
	return ok
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}
