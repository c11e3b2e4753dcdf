package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/Veraticus/pantrychef/internal/llm"
	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/Veraticus/pantrychef/internal/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliEnv runs commands against a database in a temp dir.
type cliEnv struct {
	t   *testing.T
	dir string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("PANTRY_DATABASE_PATH", filepath.Join(dir, "pantry.db"))
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Cleanup(viper.Reset)
	return &cliEnv{t: t, dir: dir}
}

// withFakes routes the model adapters to scripted fakes for the rest of the test.
func (e *cliEnv) withFakes(clients llm.Clients) {
	e.t.Helper()
	orig := newClients
	newClients = func(llm.Config, *slog.Logger) (llm.Clients, error) {
		return clients, nil
	}
	e.t.Cleanup(func() { newClients = orig })
}

func (e *cliEnv) runWithInput(input string, args ...string) (string, error) {
	e.t.Helper()
	viper.Reset()
	cfgFile = ""

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(input))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runWithInput("", args...)
	require.NoError(e.t, err, "pantry %s", strings.Join(args, " "))
	return out
}

func TestCLI_PantryLifecycle(t *testing.T) {
	env := newCLIEnv(t)

	out := env.run("add", "Eggs", "Jasmine Rice")
	assert.Contains(t, out, "Added Eggs")
	assert.Contains(t, out, "[Protein]")
	assert.Contains(t, out, "[Grain]")

	env.run("add", "--location", "freezer", "--qty", "2", "Peas")

	out = env.run("items")
	assert.Contains(t, out, "Fridge (2)")
	assert.Contains(t, out, "Freezer (1)")
	assert.Contains(t, out, "×2")

	out = env.run("mark", "eggs", "low")
	assert.Contains(t, out, "Eggs is now")
	assert.Contains(t, out, "low")

	out = env.run("cycle", "Eggs")
	assert.Contains(t, out, "out")

	out = env.run("items", "--status", "out")
	assert.Contains(t, out, "Eggs")
	assert.NotContains(t, out, "Peas")

	out = env.run("remove", "peas")
	assert.Contains(t, out, "Removed Peas")

	out, err := env.runWithInput("n\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Clear canceled.")

	out = env.run("clear", "--force")
	assert.Contains(t, out, "Removed 2 items")

	out = env.run("items")
	assert.Contains(t, out, "No pantry items")
}

func TestCLI_UnknownItem(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.runWithInput("", "remove", "truffles")
	assert.Error(t, err)

	_, err = env.runWithInput("", "add", "--location", "garage", "tools")
	assert.Error(t, err)
}

func TestCLI_ShoppingList(t *testing.T) {
	env := newCLIEnv(t)

	out := env.run("list", "add", "Milk", "milk", "Bread")
	assert.Contains(t, out, "Added 2 items")
	assert.Contains(t, out, "1 already on the list")

	out = env.run("list", "toggle", "milk")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Milk")

	out = env.run("list")
	assert.Less(t, strings.Index(out, "Bread"), strings.Index(out, "Milk"), "unchecked items come first")

	out = env.run("list", "clear-checked")
	assert.Contains(t, out, "Removed 1 checked items")

	out = env.run("list", "clear", "-f")
	assert.Contains(t, out, "Shopping list cleared")

	out = env.run("list")
	assert.Contains(t, out, "The shopping list is empty.")
}

var recipeIDPattern = regexp.MustCompile(`id (\d+-2)`)

func TestCLI_GenerateAndShop(t *testing.T) {
	env := newCLIEnv(t)
	text := testutil.NewScriptedText(testutil.ValidReply())
	images := &testutil.StubImages{URL: "https://images.example/congee.png"}
	env.withFakes(llm.Clients{Text: text, Images: images, Vision: &testutil.StubDetector{}})

	env.run("add", "Eggs", "Rice", "Garlic")

	metricsPath := filepath.Join(env.dir, "pantry.prom")
	out := env.run("generate", "--meal", "dinner", "--diet", "vegetarian", "--metrics-textfile", metricsPath)
	assert.Contains(t, out, "Garlic Egg Fried Rice")
	assert.Contains(t, out, "Chicken Congee")
	assert.Contains(t, out, "https://images.example/congee.png")
	assert.Equal(t, 1, text.Calls())
	assert.Contains(t, text.Prompts[0], "vegetarian")

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `pantry_recipes_attempts_total{outcome="success"} 1`)

	match := recipeIDPattern.FindStringSubmatch(out)
	require.Len(t, match, 2, "recipe id in output")
	congeeID := match[1]

	out = env.run("recipes")
	assert.Contains(t, out, "Herbed Omelette")
	assert.Contains(t, out, "3 missing")

	out = env.run("recipes", "shop", congeeID)
	assert.Contains(t, out, "Added 3 items to the shopping list")

	out = env.run("list")
	for _, name := range []string{"Chicken", "Ginger", "Scallions"} {
		assert.Contains(t, out, name)
	}

	out = env.run("recipes", "favorite", congeeID)
	assert.Contains(t, out, "Saved Chicken Congee to favorites")

	out = env.run("recipes", "show", congeeID)
	assert.Contains(t, out, "chef's pick")
	assert.Contains(t, out, "★")

	out = env.run("account")
	assert.Regexp(t, `Credits:\s+24\b`, out)
	assert.Regexp(t, `Favorite recipes:\s+1\b`, out)
}

func TestCLI_GenerateWithoutKeyRefunds(t *testing.T) {
	env := newCLIEnv(t)
	env.run("add", "Eggs")

	_, err := env.runWithInput("", "generate", "--meal", "lunch")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrInvalidKey)

	out := env.run("account")
	assert.Regexp(t, `Credits:\s+25\b`, out)
	assert.Regexp(t, `Recipes generated:\s+0\b`, out)
}

func TestCLI_GenerateEmptyPantry(t *testing.T) {
	env := newCLIEnv(t)
	env.withFakes(llm.Clients{
		Text:   testutil.NewScriptedText(testutil.ValidReply()),
		Images: &testutil.StubImages{},
		Vision: &testutil.StubDetector{},
	})

	_, err := env.runWithInput("", "generate")
	assert.Error(t, err)
}

func TestCLI_Scan(t *testing.T) {
	env := newCLIEnv(t)
	detector := &testutil.StubDetector{Items: []model.DetectedItem{
		{Name: "Milk"},
		{Name: "Spinach", Category: "Produce"},
	}}
	env.withFakes(llm.Clients{
		Text:   testutil.NewScriptedText(),
		Images: &testutil.StubImages{},
		Vision: detector,
	})

	photo := filepath.Join(env.dir, "haul.jpg")
	require.NoError(t, os.WriteFile(photo, []byte{0xff, 0xd8, 0xff, 0xe0}, 0o600))

	out := env.run("scan", "--dry-run", photo)
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "[Dairy]")
	assert.NotContains(t, out, "Added")

	out = env.run("scan", "--yes", "--location", "fridge", photo)
	assert.Contains(t, out, "Added 2 items to the Fridge")
	assert.Equal(t, 2, detector.Calls())

	out = env.run("items")
	assert.Contains(t, out, "Spinach")

	out = env.run("account")
	assert.Regexp(t, `Photos scanned:\s+2\b`, out)
	assert.Regexp(t, `Items saved from waste:\s+2\b`, out)

	_, err := env.runWithInput("", "scan", filepath.Join(env.dir, "missing.jpg"))
	assert.Error(t, err)
}

func TestCLI_AccountGrantAndReset(t *testing.T) {
	env := newCLIEnv(t)

	out := env.run("account", "grant", "10")
	assert.Contains(t, out, "Added 10 credits (balance 35)")

	_, err := env.runWithInput("", "account", "grant", "-3")
	assert.Error(t, err)

	out = env.run("account", "reset", "--force")
	assert.Contains(t, out, "Account reset")

	out = env.run("account")
	assert.Regexp(t, `Credits:\s+25\b`, out)
}

func TestCLI_StatusAndStorage(t *testing.T) {
	env := newCLIEnv(t)
	env.run("add", "Eggs")
	env.run("list", "add", "Milk")

	out := env.run("status")
	assert.Contains(t, out, "Pantry items: 1 (1 in fridge)")
	assert.Contains(t, out, "Shopping list: 1 items, 0 checked")

	out = env.run("storage")
	assert.Contains(t, out, "pantry-storage")
	assert.Contains(t, out, "list-storage")

	out = env.run("storage", "drop", "--force", "list-storage")
	assert.Contains(t, out, "Dropped list-storage")

	out = env.run("list")
	assert.Contains(t, out, "The shopping list is empty.")

	_, err := env.runWithInput("", "storage", "drop", "-f", "bogus")
	assert.Error(t, err)

	backup := filepath.Join(env.dir, "copy.db")
	out = env.run("storage", "backup", backup)
	assert.Contains(t, out, "Backed up to")
	assert.FileExists(t, backup)
}

func TestCLI_CategorizeAndVersion(t *testing.T) {
	env := newCLIEnv(t)

	out := env.run("categorize", "Greek Yogurt", "Mystery Box")
	assert.Contains(t, out, "[Dairy]")
	assert.Contains(t, out, "[Other]")

	out = env.run("categorize", "--list")
	assert.Contains(t, out, "[Condiment]")

	out = env.run("version")
	assert.Contains(t, out, "pantry dev")
}
