package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/pantrychef/internal/cli"
	"github.com/Veraticus/pantrychef/internal/food"
	"github.com/Veraticus/pantrychef/internal/kitchen"
	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the pantry, the shopping list and the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				summary, err := a.kitchen.Status(cmd.Context())
				if err != nil {
					return err
				}
				renderSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
}

func renderSummary(w io.Writer, s kitchen.Summary) {
	var b strings.Builder

	fmt.Fprintf(&b, "Pantry items: %d", s.PantryItems)
	if s.PantryItems > 0 {
		var parts []string
		for _, loc := range locationOrder {
			if n := s.ByLocation[loc]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d in %s", n, strings.ToLower(string(loc))))
			}
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	b.WriteString("\n")

	for _, st := range []model.Status{model.StatusFresh, model.StatusLow, model.StatusOut} {
		fmt.Fprintf(&b, "  %s %d\n", cli.FormatStatus(st), s.ByStatus[st])
	}

	fmt.Fprintf(&b, "Shopping list: %d items, %d checked\n", s.ListItems, s.CheckedItems)
	fmt.Fprintf(&b, "Recipe batches kept: %d\n", s.RecipeBatches)
	fmt.Fprintf(&b, "Credits: %d · free generations left: %d\n", s.Account.Credits, s.Account.MonthlyGenerations)

	if !s.CanGenerate {
		b.WriteString(cli.FormatWarning("Out of credits for generating recipes") + "\n")
	}
	if !s.CanScan {
		b.WriteString(cli.FormatWarning("Not enough credits to scan a photo") + "\n")
	}

	fmt.Fprint(w, cli.RenderBox(cli.PantryIcon+" Kitchen", strings.TrimRight(b.String(), "\n"))+"\n")
}

func categorizeCmd() *cobra.Command {
	var listAll bool

	cmd := &cobra.Command{
		Use:   "categorize NAME...",
		Short: "Show the category a grocery name falls into",
		Args: func(cmd *cobra.Command, args []string) error {
			if listAll {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listAll {
				for _, c := range food.Categories() {
					fmt.Fprintln(out, cli.FormatCategory(string(c)))
				}
				return nil
			}
			for _, name := range args {
				fmt.Fprintf(out, "%-24s %s\n", name, cli.FormatCategory(string(food.Categorize(name))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listAll, "list", false, "list every category")

	return cmd
}
