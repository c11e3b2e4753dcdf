// Package kitchen ties the stores to the recipe generator and the vision
// detector. It owns the rules that span them: charging for generation and
// scans, refunding when a provider fails, and keeping usage counters.
package kitchen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/pantrychef/internal/common"
	"github.com/Veraticus/pantrychef/internal/food"
	"github.com/Veraticus/pantrychef/internal/llm"
	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/Veraticus/pantrychef/internal/recipe"
	"github.com/Veraticus/pantrychef/internal/store"
)

// Default prices in credits.
const (
	DefaultScanCost     = 5
	DefaultGenerateCost = 1
)

// Kitchen errors.
var (
	ErrOutOfCredits   = errors.New("not enough credits")
	ErrEmptyPantry    = errors.New("pantry has no fresh items")
	ErrRecipeNotFound = errors.New("recipe not found")
)

// Costs prices the paid operations.
type Costs struct {
	Scan     int
	Generate int
}

// Stores groups the persistent stores a Kitchen works on.
type Stores struct {
	Pantry  *store.Pantry
	List    *store.ShoppingList
	Account *store.Account
	Recipes *store.RecipeBook
}

// Config wires a Kitchen.
type Config struct {
	Stores    Stores
	Generator *recipe.Generator
	Detector  llm.Detector
	Logger    *slog.Logger
	Now       func() time.Time
	Costs     Costs
}

// Kitchen runs the user-facing operations.
type Kitchen struct {
	stores    Stores
	generator *recipe.Generator
	detector  llm.Detector
	logger    *slog.Logger
	now       func() time.Time
	costs     Costs
	genMu     sync.Mutex
}

// New validates cfg and creates a Kitchen.
func New(cfg Config) (*Kitchen, error) {
	switch {
	case cfg.Stores.Pantry == nil, cfg.Stores.List == nil,
		cfg.Stores.Account == nil, cfg.Stores.Recipes == nil:
		return nil, errors.New("kitchen: every store is required")
	case cfg.Generator == nil:
		return nil, errors.New("kitchen: recipe generator is required")
	case cfg.Detector == nil:
		return nil, errors.New("kitchen: detector is required")
	}

	if cfg.Costs.Scan <= 0 {
		cfg.Costs.Scan = DefaultScanCost
	}
	if cfg.Costs.Generate <= 0 {
		cfg.Costs.Generate = DefaultGenerateCost
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Kitchen{
		stores:    cfg.Stores,
		generator: cfg.Generator,
		detector:  cfg.Detector,
		logger:    common.LoggerOrDefault(cfg.Logger),
		now:       cfg.Now,
		costs:     cfg.Costs,
	}, nil
}

// Stores returns the stores the kitchen works on.
func (k *Kitchen) Stores() Stores {
	return k.stores
}

// Costs returns the prices in effect.
func (k *Kitchen) Costs() Costs {
	return k.costs
}

// GenerateRecipes charges one generation and produces a recipe batch from the
// fresh pantry items. A failed generation is refunded. An empty mealType is
// chosen from the time of day.
func (k *Kitchen) GenerateRecipes(ctx context.Context, mealType string, dietary []string) ([]model.Recipe, error) {
	k.genMu.Lock()
	defer k.genMu.Unlock()

	ingredients := k.stores.Pantry.FreshNames()
	if len(ingredients) == 0 {
		return nil, ErrEmptyPantry
	}

	if strings.TrimSpace(mealType) == "" {
		mealType = string(food.MealTypeAt(k.now()))
	}

	if err := k.charge(ctx, k.costs.Generate); err != nil {
		return nil, err
	}

	recipes, err := k.generator.Generate(ctx, recipe.Request{
		PantryItems:        ingredients,
		MealType:           mealType,
		DietaryPreferences: dietary,
	})
	if err != nil {
		k.refund(ctx, k.costs.Generate)
		return nil, err
	}

	if err := k.stores.Recipes.SaveBatch(ctx, recipes); err != nil {
		k.logger.Warn("failed to save recipe batch", "error", err)
	}
	if err := k.stores.Account.IncrementGenerated(ctx); err != nil {
		k.logger.Warn("failed to count generation", "error", err)
	}

	return recipes, nil
}

// Scan charges a scan and detects grocery items in a base64 JPEG. Items the
// detector could not place get a category from food.Categorize. A failed
// detection is refunded.
func (k *Kitchen) Scan(ctx context.Context, imageBase64 string) ([]model.DetectedItem, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return nil, llm.ErrNoImage
	}

	if err := k.charge(ctx, k.costs.Scan); err != nil {
		return nil, err
	}

	items, err := k.detector.DetectItems(ctx, imageBase64)
	if err != nil {
		k.refund(ctx, k.costs.Scan)
		return nil, common.NewUserError(scanMessage(err), fmt.Errorf("scan: %w", err))
	}

	if err := k.stores.Account.IncrementScanned(ctx); err != nil {
		k.logger.Warn("failed to count scan", "error", err)
	}

	for i := range items {
		items[i].Category = resolveCategory(items[i].Name, items[i].Category)
	}

	k.logger.Info("scan complete", "items", len(items))
	return items, nil
}

// AddDetected stores scanned items in the pantry and counts them as rescued
// from waste.
func (k *Kitchen) AddDetected(ctx context.Context, items []model.DetectedItem, location model.Location) ([]model.PantryItem, error) {
	drafts := make([]model.PantryDraft, 0, len(items))
	for _, item := range items {
		drafts = append(drafts, model.PantryDraft{
			Name:     item.Name,
			Category: resolveCategory(item.Name, item.Category),
			Location: location,
		})
	}

	added, err := k.stores.Pantry.AddItems(ctx, drafts)
	if err != nil {
		return nil, err
	}

	if err := k.stores.Account.IncrementWasteSaved(ctx, len(added)); err != nil {
		k.logger.Warn("failed to count saved items", "error", err)
	}
	return added, nil
}

// AddManual categorizes names and adds them to the pantry at location.
func (k *Kitchen) AddManual(ctx context.Context, names []string, location model.Location, quantity *float64) ([]model.PantryItem, error) {
	drafts := make([]model.PantryDraft, 0, len(names))
	for _, name := range names {
		drafts = append(drafts, model.PantryDraft{
			Name:     name,
			Category: string(food.Categorize(name)),
			Location: location,
			Quantity: quantity,
		})
	}
	return k.stores.Pantry.AddItems(ctx, drafts)
}

// AddMissingToList puts a saved recipe's missing ingredients on the shopping
// list and returns how many were new.
func (k *Kitchen) AddMissingToList(ctx context.Context, recipeID string) (int, error) {
	r, ok := k.stores.Recipes.Find(recipeID)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrRecipeNotFound, recipeID)
	}
	return k.stores.List.AddMultiple(ctx, r.MissingIngredients)
}

// Summary is a snapshot of the kitchen's state.
type Summary struct {
	Account       model.Account
	ByStatus      map[model.Status]int
	ByLocation    map[model.Location]int
	PantryItems   int
	ListItems     int
	CheckedItems  int
	RecipeBatches int
	CanGenerate   bool
	CanScan       bool
}

// Status summarizes the pantry, the list and the account.
func (k *Kitchen) Status(ctx context.Context) (Summary, error) {
	if _, err := k.stores.Account.CheckAndResetMonthly(ctx); err != nil {
		return Summary{}, err
	}
	acct := k.stores.Account.Snapshot()

	summary := Summary{
		Account:       acct,
		ByStatus:      make(map[model.Status]int),
		ByLocation:    make(map[model.Location]int),
		RecipeBatches: len(k.stores.Recipes.Batches()),
		CanGenerate:   canAfford(acct, k.costs.Generate),
		CanScan:       canAfford(acct, k.costs.Scan),
	}

	for _, item := range k.stores.Pantry.Items() {
		summary.PantryItems++
		summary.ByStatus[item.Status]++
		summary.ByLocation[item.Location]++
	}
	for _, item := range k.stores.List.Items() {
		summary.ListItems++
		if item.Checked {
			summary.CheckedItems++
		}
	}

	return summary, nil
}

func canAfford(acct model.Account, cost int) bool {
	return acct.Credits >= cost || acct.MonthlyGenerations > 0
}

func (k *Kitchen) charge(ctx context.Context, cost int) error {
	paid, err := k.stores.Account.DeductCredits(ctx, cost)
	if err != nil {
		return fmt.Errorf("failed to charge credits: %w", err)
	}
	if !paid {
		return common.NewUserError("You are out of credits for this month.", ErrOutOfCredits)
	}
	return nil
}

// refund returns cost as paid credits even when the charge came from the
// monthly allowance. It still runs when ctx was canceled.
func (k *Kitchen) refund(ctx context.Context, cost int) {
	if err := k.stores.Account.AddCredits(context.WithoutCancel(ctx), cost); err != nil {
		k.logger.Error("failed to refund credits",
			"amount", cost,
			"error", err)
		return
	}
	k.logger.Info("credits refunded", "amount", cost)
}

func scanMessage(err error) string {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return llm.ScanFailedMessage
}

func resolveCategory(name, category string) string {
	if c, ok := food.ParseCategory(category); ok && c != food.Other {
		return string(c)
	}
	return string(food.Categorize(name))
}
