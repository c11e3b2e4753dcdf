package recipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/pantrychef/internal/common"
	"github.com/Veraticus/pantrychef/internal/model"
)

// Reasons a batch is rejected. They are wrapped as retryable errors.
var (
	ErrTooFewRecipes         = errors.New("fewer than three recipes returned")
	ErrIncompatiblePairing   = errors.New("recipe pairs peanut butter with seafood")
	ErrReadyRecipeHasMissing = errors.New("first recipe needs ingredients that are not on hand")
)

var seafoodTerms = []string{
	"scallop", "shrimp", "prawn", "fish", "salmon", "tuna",
	"crab", "lobster", "clam", "mussel", "oyster", "seafood",
}

func isPeanutButter(ingredient string) bool {
	return strings.Contains(ingredient, "peanut") &&
		(strings.Contains(ingredient, "butter") || strings.Contains(ingredient, "pb"))
}

func isSeafood(ingredient string) bool {
	for _, term := range seafoodTerms {
		if strings.Contains(ingredient, term) {
			return true
		}
	}
	return false
}

// HasIncompatiblePairing reports whether the recipe's ingredients, used or
// missing, include both peanut butter and seafood.
func HasIncompatiblePairing(r model.Recipe) bool {
	var peanutButter, seafood bool
	for _, list := range [][]string{r.IngredientsUsed, r.MissingIngredients} {
		for _, ingredient := range list {
			lower := strings.ToLower(ingredient)
			peanutButter = peanutButter || isPeanutButter(lower)
			seafood = seafood || isSeafood(lower)
		}
	}
	return peanutButter && seafood
}

// ValidateBatch checks a parsed batch. It returns a retryable error naming
// the first rule the batch breaks, or nil when the batch is usable.
func ValidateBatch(recipes []model.Recipe) error {
	if len(recipes) < BatchSize {
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: got %d", ErrTooFewRecipes, len(recipes)),
			Retryable: true,
		}
	}

	for _, r := range recipes {
		if HasIncompatiblePairing(r) {
			return &common.RetryableError{
				Err:       fmt.Errorf("%w: %q", ErrIncompatiblePairing, r.Title),
				Retryable: true,
			}
		}
	}

	if missing := len(recipes[0].MissingIngredients); missing > 0 {
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %q lists %d", ErrReadyRecipeHasMissing, recipes[0].Title, missing),
			Retryable: true,
		}
	}

	return nil
}
