package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/pantrychef/internal/cli"
	"github.com/Veraticus/pantrychef/internal/food"
	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	var (
		meal            string
		diet            []string
		metricsTextfile string
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"cook"},
		Short:   "Generate three recipes from the fresh pantry items",
		Long: `Generate asks the AI model for three recipes built from the fresh items in
your pantry. The first recipe only uses what you have; the others may need
a few extra ingredients.

The meal type defaults to the time of day. A generation costs credits and is
refunded when the model cannot be reached.`,
		Example: `  pantry generate
  pantry generate --meal lunch --diet vegetarian --diet "no nuts"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mealType, err := resolveMealType(meal, time.Now())
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				out := cmd.OutOrStdout()
				handler := cli.NewInterruptHandler(out)
				ctx := handler.HandleInterrupts(cmd.Context(), "Recipe generation", true)
				defer handler.Stop()

				bar := newSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Cooking up %s ideas...", strings.ToLower(mealType)))
				stop := spin(bar)
				recipes, err := a.kitchen.GenerateRecipes(ctx, mealType, diet)
				stop()

				if metricsTextfile != "" {
					if werr := a.metrics.WriteTextfile(metricsTextfile); werr != nil {
						slog.Warn("failed to write metrics", "error", werr)
					}
				}
				if err != nil {
					return err
				}

				acct := a.kitchen.Stores().Account
				for i, r := range recipes {
					renderRecipe(out, r, i, acct.IsFavorite(r.ID))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&meal, "meal", "m", "", "meal type (breakfast, lunch, dinner, late-night); defaults to the time of day")
	cmd.Flags().StringSliceVarP(&diet, "diet", "d", nil, "dietary preference, repeatable")
	cmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "write generation metrics to this file in Prometheus text format")

	return cmd
}

// resolveMealType maps a flag value to a meal type, falling back to the meal
// for now.
func resolveMealType(meal string, now time.Time) (string, error) {
	meal = strings.TrimSpace(meal)
	if meal == "" {
		return string(food.MealTypeAt(now)), nil
	}
	for _, m := range []food.MealType{food.Breakfast, food.Lunch, food.Dinner, food.LateNight} {
		if strings.EqualFold(meal, string(m)) || strings.EqualFold(strings.ReplaceAll(meal, " ", "-"), string(m)) {
			return string(m), nil
		}
	}
	return "", fmt.Errorf("unknown meal type %q (want breakfast, lunch, dinner or late-night)", meal)
}

func newSpinner(w io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
	)
}

// spin animates bar until the returned stop func is called.
func spin(bar *progressbar.ProgressBar) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := bar.Add(1); err != nil {
					slog.Debug("failed to update spinner", "error", err)
				}
			}
		}
	}()
	return func() {
		close(done)
		<-finished
		if err := bar.Finish(); err != nil {
			slog.Debug("failed to finish spinner", "error", err)
		}
	}
}

// renderRecipe prints one recipe card. Index 0 is the ready-to-cook pick.
func renderRecipe(w io.Writer, r model.Recipe, index int, favorite bool) {
	var b strings.Builder

	title := r.Title
	if favorite {
		title = cli.StarIcon + " " + title
	}
	switch index {
	case 0:
		title += "  " + cli.SuccessStyle.Render("ready to cook")
	case 2:
		title += "  " + cli.InfoStyle.Render("chef's pick")
	}

	fmt.Fprintf(&b, "%s\n", r.Description)
	fmt.Fprintf(&b, "%s  %s\n", cli.SubtleStyle.Render(r.TotalTime), cli.SubtleStyle.Render(strings.Join(r.Tags, " · ")))
	if len(r.IngredientsUsed) > 0 {
		fmt.Fprintf(&b, "\n%s %s\n", cli.BoldStyle.Render("Uses:"), strings.Join(r.IngredientsUsed, ", "))
	}
	if len(r.MissingIngredients) > 0 {
		fmt.Fprintf(&b, "%s %s\n", cli.WarningStyle.Render("Missing:"), strings.Join(r.MissingIngredients, ", "))
	}
	if len(r.Steps) > 0 {
		b.WriteString("\n")
		for i, step := range r.Steps {
			fmt.Fprintf(&b, "%d. %s", i+1, step.Instruction)
			if step.Duration != "" {
				fmt.Fprintf(&b, " %s", cli.SubtleStyle.Render("("+step.Duration+")"))
			}
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "\n%s", cli.SubtleStyle.Render("id "+r.ID))
	if r.Image != "" {
		fmt.Fprintf(&b, "  %s", cli.SubtleStyle.Render(r.Image))
	}

	fmt.Fprintln(w, cli.RenderBox(title, b.String()))
}
