package store

import (
	"context"
	"slices"

	"github.com/Veraticus/pantrychef/internal/model"
)

// Default allowances for a new account.
const (
	DefaultInitialCredits   = 25
	DefaultMonthlyAllowance = 10
)

// AccountPolicy sets the allowances an account starts with and is topped up to.
type AccountPolicy struct {
	InitialCredits   int
	MonthlyAllowance int
}

// DefaultAccountPolicy returns the stock allowances.
func DefaultAccountPolicy() AccountPolicy {
	return AccountPolicy{
		InitialCredits:   DefaultInitialCredits,
		MonthlyAllowance: DefaultMonthlyAllowance,
	}
}

// Account is the local user's credit ledger and usage counters.
//
// Spending takes from paid credits first and from the monthly allowance only
// when credits cannot cover the amount. The allowance is restored once per
// calendar month.
type Account struct {
	store  *Store[model.Account]
	opts   Options
	policy AccountPolicy
}

// OpenAccount hydrates the account store.
func OpenAccount(ctx context.Context, backend Backend, policy AccountPolicy, opts Options) (*Account, error) {
	opts = opts.withDefaults()
	if policy.InitialCredits < 0 {
		policy.InitialCredits = 0
	}
	if policy.MonthlyAllowance < 0 {
		policy.MonthlyAllowance = 0
	}

	a := &Account{opts: opts, policy: policy}

	s, err := Open(ctx, backend, Config[model.Account]{
		Name:     AccountStoreName,
		Default:  a.initial,
		Sanitize: a.sanitize,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	a.store = s

	return a, nil
}

func (a *Account) initial() model.Account {
	return model.Account{
		Credits:            a.policy.InitialCredits,
		MonthlyGenerations: a.policy.MonthlyAllowance,
		LastResetDate:      a.opts.Now(),
		FavoriteRecipeIDs:  []string{},
	}
}

func (a *Account) sanitize(acct model.Account) model.Account {
	acct.Credits = max(acct.Credits, 0)
	acct.MonthlyGenerations = min(max(acct.MonthlyGenerations, 0), a.policy.MonthlyAllowance)
	acct.TotalGenerated = max(acct.TotalGenerated, 0)
	acct.TotalScanned = max(acct.TotalScanned, 0)
	acct.TotalGenerationsAllTime = max(acct.TotalGenerationsAllTime, 0)
	acct.WasteItemsSaved = max(acct.WasteItemsSaved, 0)

	favorites := make([]string, 0, len(acct.FavoriteRecipeIDs))
	for _, id := range acct.FavoriteRecipeIDs {
		if id != "" && !slices.Contains(favorites, id) {
			favorites = append(favorites, id)
		}
	}
	acct.FavoriteRecipeIDs = favorites

	return acct
}

// Snapshot returns a copy of the account record.
func (a *Account) Snapshot() model.Account {
	acct := a.store.State()
	acct.FavoriteRecipeIDs = slices.Clone(acct.FavoriteRecipeIDs)
	return acct
}

// Policy returns the allowances the account was opened with.
func (a *Account) Policy() AccountPolicy {
	return a.policy
}

// Subscribe registers fn for account changes.
func (a *Account) Subscribe(fn func(model.Account)) func() {
	return a.store.Subscribe(fn)
}

// CheckAndResetMonthly restores the monthly allowance when the calendar month
// has changed since the last reset. It reports whether a reset happened.
func (a *Account) CheckAndResetMonthly(ctx context.Context) (bool, error) {
	reset := false
	err := a.store.Update(ctx, func(acct model.Account) (model.Account, bool) {
		next, ok := a.resetIfNewMonth(acct)
		reset = ok
		return next, ok
	})
	if err != nil {
		return false, err
	}
	return reset, nil
}

func (a *Account) resetIfNewMonth(acct model.Account) (model.Account, bool) {
	now := a.opts.Now()
	if model.SameMonth(acct.LastResetDate, now) {
		return acct, false
	}
	acct.MonthlyGenerations = a.policy.MonthlyAllowance
	acct.LastResetDate = now
	return acct, true
}

// DeductCredits spends amount. Paid credits are used when they cover the whole
// amount; otherwise one monthly generation is used. It reports false, leaving
// the balances untouched, when neither pool can pay or amount is not positive.
func (a *Account) DeductCredits(ctx context.Context, amount int) (bool, error) {
	if amount <= 0 {
		return false, nil
	}

	paid := false
	err := a.store.Update(ctx, func(acct model.Account) (model.Account, bool) {
		acct, changed := a.resetIfNewMonth(acct)

		switch {
		case acct.Credits >= amount:
			acct.Credits -= amount
			paid = true
		case acct.MonthlyGenerations > 0:
			acct.MonthlyGenerations--
			acct.TotalGenerationsAllTime++
			paid = true
		}

		return acct, changed || paid
	})
	if err != nil {
		return false, err
	}

	a.store.logger.Debug("credit deduction",
		"amount", amount,
		"paid", paid)

	return paid, nil
}

// AddCredits grants amount paid credits. Non-positive amounts are ignored.
func (a *Account) AddCredits(ctx context.Context, amount int) error {
	if amount <= 0 {
		return nil
	}
	return a.store.Update(ctx, func(acct model.Account) (model.Account, bool) {
		acct.Credits += amount
		return acct, true
	})
}

// CanGenerate reports whether a deduction of amount would currently succeed.
func (a *Account) CanGenerate(ctx context.Context, amount int) (bool, error) {
	if _, err := a.CheckAndResetMonthly(ctx); err != nil {
		return false, err
	}
	acct := a.store.State()
	return amount > 0 && (acct.Credits >= amount || acct.MonthlyGenerations > 0), nil
}

// ToggleFavorite adds the recipe id to the favorites or removes it when already
// present. It reports whether the recipe is a favorite afterwards.
func (a *Account) ToggleFavorite(ctx context.Context, recipeID string) (bool, error) {
	favorite := false
	err := a.store.Update(ctx, func(acct model.Account) (model.Account, bool) {
		if acct.IsFavorite(recipeID) {
			acct.FavoriteRecipeIDs = slices.DeleteFunc(slices.Clone(acct.FavoriteRecipeIDs), func(id string) bool {
				return id == recipeID
			})
		} else {
			acct.FavoriteRecipeIDs = append(slices.Clip(acct.FavoriteRecipeIDs), recipeID)
			favorite = true
		}
		return acct, true
	})
	if err != nil {
		return false, err
	}
	return favorite, nil
}

// IsFavorite reports whether the recipe id is a favorite.
func (a *Account) IsFavorite(recipeID string) bool {
	return a.store.State().IsFavorite(recipeID)
}

// IncrementGenerated counts one successful recipe generation.
func (a *Account) IncrementGenerated(ctx context.Context) error {
	return a.store.Update(ctx, func(acct model.Account) (model.Account, bool) {
		acct.TotalGenerated++
		return acct, true
	})
}

// IncrementScanned counts one successful photo scan.
func (a *Account) IncrementScanned(ctx context.Context) error {
	return a.store.Update(ctx, func(acct model.Account) (model.Account, bool) {
		acct.TotalScanned++
		return acct, true
	})
}

// IncrementWasteSaved counts n items rescued into the pantry.
func (a *Account) IncrementWasteSaved(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	return a.store.Update(ctx, func(acct model.Account) (model.Account, bool) {
		acct.WasteItemsSaved += n
		return acct, true
	})
}

// Reset restores the account to its initial allowances and clears counters
// and favorites.
func (a *Account) Reset(ctx context.Context) error {
	return a.store.Set(ctx, a.initial())
}
