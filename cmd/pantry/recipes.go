package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/pantrychef/internal/cli"
	"github.com/Veraticus/pantrychef/internal/kitchen"
	"github.com/spf13/cobra"
)

func recipesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Browse generated recipes",
		Long:  "Without a subcommand, recipes lists the latest batch (or every kept batch with --all).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				out := cmd.OutOrStdout()
				book := a.kitchen.Stores().Recipes
				acct := a.kitchen.Stores().Account

				batches := book.Batches()
				if len(batches) == 0 {
					fmt.Fprintln(out, cli.FormatInfo("No recipes yet. Try: pantry generate"))
					return nil
				}
				if !all {
					batches = batches[:1]
				}
				for _, batch := range batches {
					if len(batch) > 0 {
						fmt.Fprintln(out, cli.BoldStyle.Render(batch[0].GeneratedAt.Local().Format("Mon Jan 2 15:04")))
					}
					for _, r := range batch {
						star := "  "
						if acct.IsFavorite(r.ID) {
							star = cli.StarIcon + " "
						}
						missing := ""
						if n := len(r.MissingIngredients); n > 0 {
							missing = cli.WarningStyle.Render(fmt.Sprintf("  %d missing", n))
						}
						fmt.Fprintf(out, "  %s%s  %s%s\n", star, r.Title, cli.SubtleStyle.Render(r.ID), missing)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "list every kept batch, newest first")

	cmd.AddCommand(recipeShowCmd())
	cmd.AddCommand(recipeShopCmd())
	cmd.AddCommand(recipeFavoriteCmd())

	return cmd
}

func recipeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a recipe card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				r, ok := a.kitchen.Stores().Recipes.Find(args[0])
				if !ok {
					return fmt.Errorf("%w: %s", kitchen.ErrRecipeNotFound, args[0])
				}
				renderRecipe(cmd.OutOrStdout(), r, recipeIndex(r.ID), a.kitchen.Stores().Account.IsFavorite(r.ID))
				return nil
			})
		},
	}
}

func recipeShopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop ID",
		Short: "Add a recipe's missing ingredients to the shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				added, err := a.kitchen.AddMissingToList(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if added == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing new to buy for this recipe."))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s Added %d items to the shopping list", cli.CartIcon, added)))
				return nil
			})
		},
	}
}

func recipeFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "favorite ID",
		Aliases: []string{"fav"},
		Short:   "Toggle a recipe as favorite",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				r, ok := a.kitchen.Stores().Recipes.Find(args[0])
				if !ok {
					return fmt.Errorf("%w: %s", kitchen.ErrRecipeNotFound, args[0])
				}
				favorite, err := a.kitchen.Stores().Account.ToggleFavorite(cmd.Context(), r.ID)
				if err != nil {
					return err
				}
				if favorite {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(cli.StarIcon+" Saved "+r.Title+" to favorites"))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Removed "+r.Title+" from favorites"))
				}
				return nil
			})
		},
	}
}

// recipeIndex returns the position of a recipe within its batch, read from
// the id suffix.
func recipeIndex(id string) int {
	i := strings.LastIndexByte(id, '-')
	if i < 0 {
		return -1
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return -1
	}
	return n
}
