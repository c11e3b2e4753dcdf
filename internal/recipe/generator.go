package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/pantrychef/internal/common"
	"github.com/Veraticus/pantrychef/internal/llm"
	"github.com/Veraticus/pantrychef/internal/model"
)

// DefaultMaxAttempts is how many model replies are tried before falling back.
const DefaultMaxAttempts = 3

// DefaultMealType is used when a request names no meal.
const DefaultMealType = "Dinner"

// ErrNoPantryItems is returned when a request has no usable ingredients.
var ErrNoPantryItems = errors.New("no pantry items to cook with")

// Request describes one batch to generate.
type Request struct {
	MealType           string
	PantryItems        []string
	DietaryPreferences []string
}

// Options configures a Generator.
type Options struct {
	// Images renders the chef's pick photo; nil leaves the placeholder.
	Images  llm.ImageGenerator
	Metrics *Metrics
	Logger  *slog.Logger
	Now     func() time.Time
	// MaxAttempts defaults to DefaultMaxAttempts.
	MaxAttempts int
}

// Generator produces recipe batches.
type Generator struct {
	text        llm.TextGenerator
	images      llm.ImageGenerator
	metrics     *Metrics
	logger      *slog.Logger
	now         func() time.Time
	maxAttempts int
	lastStamp   int64
	mu          sync.Mutex
}

// NewGenerator creates a Generator backed by text.
func NewGenerator(text llm.TextGenerator, opts Options) (*Generator, error) {
	if text == nil {
		return nil, errors.New("text generator is required")
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Generator{
		text:        text,
		images:      opts.Images,
		metrics:     opts.Metrics,
		logger:      common.LoggerOrDefault(opts.Logger),
		now:         opts.Now,
		maxAttempts: opts.MaxAttempts,
	}, nil
}

// state is a step of the generation loop.
type state int

const (
	stateAttempting state = iota
	stateValidationFailed
	stateSucceeded
	stateExhausted
	stateFailed
)

// Generate returns exactly three recipes. Replies that fail validation are
// retried up to the attempt limit and then replaced by FallbackRecipes. A
// failure talking to the model stops immediately and is returned as a
// *common.UserError wrapping the provider error; no fallback is produced.
func (g *Generator) Generate(ctx context.Context, req Request) ([]model.Recipe, error) {
	ingredients := cleanIngredients(req.PantryItems)
	if len(ingredients) == 0 {
		return nil, ErrNoPantryItems
	}

	mealType := strings.TrimSpace(req.MealType)
	if mealType == "" {
		mealType = DefaultMealType
	}

	start := g.now()
	defer func() { g.metrics.observe(g.now().Sub(start).Seconds()) }()

	prompt := BuildPrompt(ingredients, mealType, req.DietaryPreferences)

	var (
		recipes []model.Recipe
		failure error
		attempt int
	)

	st := stateAttempting
	for {
		switch st {
		case stateAttempting:
			attempt++
			g.logger.Debug("generating recipes", "attempt", attempt, "meal_type", mealType)

			var invalid error
			recipes, invalid, failure = g.attempt(ctx, prompt)
			switch {
			case failure != nil:
				g.metrics.attempt(OutcomeInfraError)
				st = stateFailed
			case invalid != nil:
				g.metrics.attempt(OutcomeInvalid)
				g.logger.Warn("recipe batch rejected",
					"attempt", attempt,
					"reason", invalid)
				st = stateValidationFailed
			default:
				g.metrics.attempt(OutcomeSuccess)
				st = stateSucceeded
			}

		case stateValidationFailed:
			if attempt >= g.maxAttempts {
				st = stateExhausted
			} else {
				st = stateAttempting
			}

		case stateSucceeded:
			g.attachImage(ctx, recipes)
			g.stamp(recipes)
			g.logger.Info("recipes generated",
				"attempts", attempt,
				"titles", titles(recipes))
			return recipes, nil

		case stateExhausted:
			g.metrics.fallback()
			g.logger.Warn("every generation attempt failed validation, using fallback recipes",
				"attempts", attempt)
			recipes = FallbackRecipes(ingredients)
			g.stamp(recipes)
			return recipes, nil

		case stateFailed:
			g.logger.Error("recipe generation failed",
				"attempt", attempt,
				"error", failure)
			return nil, common.NewUserError(llm.UserMessage(failure), fmt.Errorf("recipe generation: %w", failure))
		}
	}
}

// attempt asks the model once. invalid is set when the reply was unusable;
// failure when the model could not be reached.
func (g *Generator) attempt(ctx context.Context, prompt string) (recipes []model.Recipe, invalid, failure error) {
	content, err := g.text.GenerateJSON(ctx, SystemPrompt, prompt)
	if err != nil {
		return nil, nil, err
	}

	recipes = ParseRecipes(content)
	if err := ValidateBatch(recipes); err != nil {
		return nil, err, nil
	}
	return recipes, nil, nil
}

// attachImage replaces the chef's pick placeholder with a generated photo.
// Image failures only cost the photo.
func (g *Generator) attachImage(ctx context.Context, recipes []model.Recipe) {
	if g.images == nil || len(recipes) < BatchSize {
		return
	}

	pick := &recipes[BatchSize-1]
	url, err := g.images.GenerateImage(ctx, ImagePrompt(pick.Title))
	if err != nil || url == "" {
		g.metrics.image(false)
		g.logger.Warn("recipe image generation failed, keeping placeholder",
			"title", pick.Title,
			"error", err)
		return
	}

	g.metrics.image(true)
	pick.Image = url
}

// stamp assigns the batch timestamp and ids. Stamps strictly increase across
// batches from one Generator so ids never repeat.
func (g *Generator) stamp(recipes []model.Recipe) {
	g.mu.Lock()
	stamp := g.now().UnixMilli()
	if stamp <= g.lastStamp {
		stamp = g.lastStamp + 1
	}
	g.lastStamp = stamp
	g.mu.Unlock()

	generatedAt := time.UnixMilli(stamp)
	for i := range recipes {
		recipes[i].ID = model.RecipeID(stamp, i)
		recipes[i].GeneratedAt = generatedAt
	}
}

func cleanIngredients(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}

func titles(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}
