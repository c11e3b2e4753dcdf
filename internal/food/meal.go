package food

import "time"

// MealType is the meal a recipe batch is generated for.
type MealType string

// Meal types by time of day.
const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	LateNight MealType = "Late-night"
)

// MealTypeAt returns the meal for the local hour of t: breakfast from 5, lunch
// from 11, dinner from 16 and a late-night snack from 22.
func MealTypeAt(t time.Time) MealType {
	switch h := t.Hour(); {
	case h >= 5 && h < 11:
		return Breakfast
	case h >= 11 && h < 16:
		return Lunch
	case h >= 16 && h < 22:
		return Dinner
	default:
		return LateNight
	}
}
