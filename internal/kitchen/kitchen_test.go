package kitchen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/pantrychef/internal/common"
	"github.com/Veraticus/pantrychef/internal/llm"
	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/Veraticus/pantrychef/internal/recipe"
	"github.com/Veraticus/pantrychef/internal/store"
	"github.com/Veraticus/pantrychef/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	kitchen  *Kitchen
	stores   Stores
	text     *testutil.ScriptedText
	images   *testutil.StubImages
	detector *testutil.StubDetector
}

func clock() time.Time {
	return time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)
}

func newFixture(t *testing.T, backend store.Backend, policy store.AccountPolicy) *fixture {
	t.Helper()
	ctx := context.Background()

	stores, err := OpenStores(ctx, backend, policy, store.Options{Now: clock})
	require.NoError(t, err)

	f := &fixture{
		stores:   stores,
		text:     testutil.NewScriptedText(testutil.ValidReply()),
		images:   &testutil.StubImages{URL: "https://images.example/pick.png"},
		detector: &testutil.StubDetector{},
	}

	gen, err := recipe.NewGenerator(f.text, recipe.Options{Images: f.images, Now: clock})
	require.NoError(t, err)

	f.kitchen, err = New(Config{
		Stores:    stores,
		Generator: gen,
		Detector:  f.detector,
		Now:       clock,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) stock(t *testing.T, names ...string) {
	t.Helper()
	_, err := f.kitchen.AddManual(context.Background(), names, model.LocationFridge, nil)
	require.NoError(t, err)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestGenerateRecipes_Success(t *testing.T) {
	f := newFixture(t, store.NewMemoryBackend(), store.DefaultAccountPolicy())
	ctx := context.Background()
	f.stock(t, "Eggs", "Rice", "Garlic")

	before := f.stores.Account.Snapshot()
	recipes, err := f.kitchen.GenerateRecipes(ctx, "", nil)
	require.NoError(t, err)
	require.Len(t, recipes, 3)

	// Meal type comes from the clock: 08:30 is breakfast.
	assert.Contains(t, f.text.Prompts[0], "3 different breakfast recipes")

	after := f.stores.Account.Snapshot()
	assert.Equal(t, before.Credits-DefaultGenerateCost, after.Credits)
	assert.Equal(t, 1, after.TotalGenerated)

	saved := f.stores.Recipes.Latest()
	assert.Equal(t, recipes, saved)
}

func TestGenerateRecipes_UsesOnlyFreshItems(t *testing.T) {
	f := newFixture(t, store.NewMemoryBackend(), store.DefaultAccountPolicy())
	ctx := context.Background()
	f.stock(t, "Eggs", "Stale Bread")

	items := f.stores.Pantry.Items()
	require.NoError(t, f.stores.Pantry.UpdateStatus(ctx, items[1].ID, model.StatusOut))

	_, err := f.kitchen.GenerateRecipes(ctx, "Dinner", nil)
	require.NoError(t, err)
	assert.Contains(t, f.text.Prompts[0], "AVAILABLE: Eggs\n")
}

func TestGenerateRecipes_EmptyPantryChargesNothing(t *testing.T) {
	f := newFixture(t, store.NewMemoryBackend(), store.DefaultAccountPolicy())
	before := f.stores.Account.Snapshot()

	_, err := f.kitchen.GenerateRecipes(context.Background(), "Dinner", nil)
	require.ErrorIs(t, err, ErrEmptyPantry)

	assert.Equal(t, before, f.stores.Account.Snapshot())
	assert.Zero(t, f.text.Calls())
}

func TestGenerateRecipes_OutOfCredits(t *testing.T) {
	f := newFixture(t, store.NewMemoryBackend(), store.AccountPolicy{})
	f.stock(t, "Eggs")

	_, err := f.kitchen.GenerateRecipes(context.Background(), "Dinner", nil)
	require.ErrorIs(t, err, ErrOutOfCredits)
	assert.Zero(t, f.text.Calls())
	assert.Equal(t, "You are out of credits for this month.", common.UserMessage(err))
}

func TestGenerateRecipes_RefundsOnProviderFailure(t *testing.T) {
	tests := []struct {
		name   string
		policy store.AccountPolicy
	}{
		{name: "paid from credits", policy: store.DefaultAccountPolicy()},
		{name: "paid from monthly allowance", policy: store.AccountPolicy{InitialCredits: 0, MonthlyAllowance: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, store.NewMemoryBackend(), tt.policy)
			f.stock(t, "Eggs")
			f.text.Replies = []testutil.Reply{{Err: &llm.APIError{Provider: "OpenAI", Kind: llm.KindRateLimited, StatusCode: 429}}}

			before := f.stores.Account.Snapshot()
			_, err := f.kitchen.GenerateRecipes(context.Background(), "Dinner", nil)
			require.ErrorIs(t, err, llm.ErrRateLimited)
			assert.Equal(t, "Too many requests. Please try again in a moment.", common.UserMessage(err))

			after := f.stores.Account.Snapshot()
			assert.Zero(t, after.TotalGenerated)
			assert.Nil(t, f.stores.Recipes.Latest())
			// A refund always lands in paid credits.
			assert.Equal(t, before.Credits+before.MonthlyGenerations, after.Credits+after.MonthlyGenerations)
			assert.GreaterOrEqual(t, after.Credits, before.Credits)
		})
	}
}

func TestGenerateRecipes_RefundsWhenCanceled(t *testing.T) {
	f := newFixture(t, store.NewMemoryBackend(), store.DefaultAccountPolicy())
	f.stock(t, "Eggs")
	before := f.stores.Account.Snapshot().Credits

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.kitchen.GenerateRecipes(ctx, "Dinner", nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, f.stores.Account.Snapshot().Credits)
}

func TestGenerateRecipes_FallbackIsCharged(t *testing.T) {
	f := newFixture(t, store.NewMemoryBackend(), store.DefaultAccountPolicy())
	f.stock(t, "Eggs")
	f.text.Replies = []testutil.Reply{{Content: testutil.MissingFirstReply()}}
	f.text.Repeat = true

	before := f.stores.Account.Snapshot().Credits
	recipes, err := f.kitchen.GenerateRecipes(context.Background(), "Dinner", nil)
	require.NoError(t, err)
	assert.Equal(t, "Simple Eggs Dish", recipes[0].Title)
	assert.Equal(t, before-DefaultGenerateCost, f.stores.Account.Snapshot().Credits)
	assert.Zero(t, f.images.Calls())
}

func TestScan(t *testing.T) {
	f := newFixture(t, store.NewMemoryBackend(), store.DefaultAccountPolicy())
	f.detector.Items = []model.DetectedItem{
		{Name: "Greek Yogurt", Category: "Other"},
		{Name: "Bananas", Category: "Produce"},
		{Name: "Tortillas", Category: "Bakery"},
	}
	ctx := context.Background()
	before := f.stores.Account.Snapshot().Credits

	items, err := f.kitchen.Scan(ctx, "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []model.DetectedItem{
		{Name: "Greek Yogurt", Category: "Dairy"},
		{Name: "Bananas", Category: "Produce"},
		{Name: "Tortillas", Category: "Grain"},
	}, items)

	acct := f.stores.Account.Snapshot()
	assert.Equal(t, before-DefaultScanCost, acct.Credits)
	assert.Equal(t, 1, acct.TotalScanned)

	added, err := f.kitchen.AddDetected(ctx, items, model.LocationFridge)
	require.NoError(t, err)
	assert.Len(t, added, 3)
	assert.Equal(t, 3, f.stores.Account.Snapshot().WasteItemsSaved)
	assert.Equal(t, "Dairy", f.stores.Pantry.Items()[0].Category)
}

func TestScan_RefundsOnFailure(t *testing.T) {
	f := newFixture(t, store.NewMemoryBackend(), store.DefaultAccountPolicy())
	f.detector.Err = errors.New("vision down")
	before := f.stores.Account.Snapshot()

	_, err := f.kitchen.Scan(context.Background(), "aGVsbG8=")
	require.Error(t, err)
	assert.Equal(t, llm.ScanFailedMessage, common.UserMessage(err))

	after := f.stores.Account.Snapshot()
	assert.Equal(t, before.Credits, after.Credits)
	assert.Zero(t, after.TotalScanned)
}

func TestScan_RequiresImage(t *testing.T) {
	f := newFixture(t, store.NewMemoryBackend(), store.DefaultAccountPolicy())
	_, err := f.kitchen.Scan(context.Background(), "")
	require.ErrorIs(t, err, llm.ErrNoImage)
	assert.Zero(t, f.detector.Calls())
}

func TestAddManual_Categorizes(t *testing.T) {
	f := newFixture(t, store.NewMemoryBackend(), store.DefaultAccountPolicy())
	qty := 2.0

	items, err := f.kitchen.AddManual(context.Background(), []string{"Peanut Butter", "Sponges"}, model.LocationPantry, &qty)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Pantry", items[0].Category)
	assert.Equal(t, "Other", items[1].Category)
	assert.InDelta(t, 2.0, *items[0].Quantity, 0)
}

func TestAddMissingToList(t *testing.T) {
	f := newFixture(t, store.NewMemoryBackend(), store.DefaultAccountPolicy())
	ctx := context.Background()
	f.stock(t, "Eggs", "Rice")

	recipes, err := f.kitchen.GenerateRecipes(ctx, "Dinner", nil)
	require.NoError(t, err)

	_, err = f.stores.List.AddItem(ctx, "chicken")
	require.NoError(t, err)

	added, err := f.kitchen.AddMissingToList(ctx, recipes[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	var names []string
	for _, item := range f.stores.List.Items() {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"chicken", "Ginger", "Scallions"}, names)

	_, err = f.kitchen.AddMissingToList(ctx, "0-0")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestStatus(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t), store.DefaultAccountPolicy())
	ctx := context.Background()
	f.stock(t, "Eggs", "Milk")
	_, err := f.stores.List.AddMultiple(ctx, []string{"Bread", "Jam"})
	require.NoError(t, err)
	require.NoError(t, f.stores.List.ToggleItem(ctx, f.stores.List.Items()[0].ID))

	summary, err := f.kitchen.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.PantryItems)
	assert.Equal(t, 2, summary.ByStatus[model.StatusFresh])
	assert.Equal(t, 2, summary.ByLocation[model.LocationFridge])
	assert.Equal(t, 2, summary.ListItems)
	assert.Equal(t, 1, summary.CheckedItems)
	assert.True(t, summary.CanGenerate)
	assert.True(t, summary.CanScan)
	assert.Equal(t, store.DefaultInitialCredits, summary.Account.Credits)
}

func TestOpenStores_PersistAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/pantry.db"
	ctx := context.Background()

	first := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{Path: path})
	f := newFixture(t, first, store.DefaultAccountPolicy())
	f.stock(t, "Eggs")
	_, err := f.kitchen.GenerateRecipes(ctx, "Dinner", nil)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{Path: path})
	stores, err := OpenStores(ctx, second, store.DefaultAccountPolicy(), store.Options{Now: clock})
	require.NoError(t, err)

	assert.Len(t, stores.Pantry.Items(), 1)
	assert.Len(t, stores.Recipes.Latest(), 3)
	assert.Equal(t, 1, stores.Account.Snapshot().TotalGenerated)
}
