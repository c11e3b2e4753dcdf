package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/Veraticus/pantrychef/internal/cli"
	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var (
		location string
		qty      float64
	)

	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add items to the pantry",
		Long: `Add one or more items to the pantry. Each name is categorized
automatically and starts out fresh.`,
		Example: `  pantry add eggs "jasmine rice" spinach
  pantry add --location freezer --qty 2 "chicken thighs"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := model.ParseLocation(location)
			if err != nil {
				return err
			}
			var quantity *float64
			if cmd.Flags().Changed("qty") {
				quantity = &qty
			}

			return withApp(cmd.Context(), func(a *app) error {
				added, err := a.kitchen.AddManual(cmd.Context(), args, loc, quantity)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, item := range added {
					fmt.Fprintf(out, "%s %s\n", cli.FormatSuccess("Added "+item.Name), cli.FormatCategory(item.Category))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", string(model.LocationFridge), "where the items are kept (fridge, freezer, pantry)")
	cmd.Flags().Float64Var(&qty, "qty", 0, "quantity of each item")

	return cmd
}

func itemsCmd() *cobra.Command {
	var location, status string

	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"ls"},
		Short:   "Show pantry items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := newItemFilter(location, status)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app) error {
				renderPantry(cmd.OutOrStdout(), filter.apply(a.kitchen.Stores().Pantry.Items()))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", "", "only show items kept here")
	cmd.Flags().StringVarP(&status, "status", "s", "", "only show items with this status (fresh, low, out)")

	return cmd
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ITEM",
		Short: "Remove an item from the pantry",
		Long:  "Remove an item by id, id prefix or name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				pantry := a.kitchen.Stores().Pantry
				item, err := resolvePantryItem(pantry.Items(), args[0])
				if err != nil {
					return err
				}
				if err := pantry.RemoveItem(cmd.Context(), item.ID); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Removed "+item.Name))
				return nil
			})
		},
	}
}

func markCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark ITEM STATUS",
		Short: "Set an item's status (fresh, low, out)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app) error {
				pantry := a.kitchen.Stores().Pantry
				item, err := resolvePantryItem(pantry.Items(), args[0])
				if err != nil {
					return err
				}
				if err := pantry.UpdateStatus(cmd.Context(), item.ID, status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", item.Name, cli.FormatStatus(status))
				return nil
			})
		},
	}
}

func cycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cycle ITEM",
		Short: "Advance an item's status: fresh → low → out → fresh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				pantry := a.kitchen.Stores().Pantry
				item, err := resolvePantryItem(pantry.Items(), args[0])
				if err != nil {
					return err
				}
				status, err := pantry.CycleStatus(cmd.Context(), item.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", item.Name, cli.FormatStatus(status))
				return nil
			})
		},
	}
}

func clearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the pantry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				pantry := a.kitchen.Stores().Pantry
				count := len(pantry.Items())
				if count == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "The pantry is already empty.")
					return nil
				}
				ok, err := confirm(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), force,
					fmt.Sprintf("Remove all %d pantry items?", count))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Clear canceled.")
					return nil
				}
				if err := pantry.ClearAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Removed %d items", count)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

type itemFilter struct {
	location model.Location
	status   model.Status
}

func newItemFilter(location, status string) (itemFilter, error) {
	var f itemFilter
	if location != "" {
		loc, err := model.ParseLocation(location)
		if err != nil {
			return f, err
		}
		f.location = loc
	}
	if status != "" {
		st, err := model.ParseStatus(status)
		if err != nil {
			return f, err
		}
		f.status = st
	}
	return f, nil
}

func (f itemFilter) apply(items []model.PantryItem) []model.PantryItem {
	return slices.DeleteFunc(slices.Clone(items), func(item model.PantryItem) bool {
		return (f.location != "" && item.Location != f.location) ||
			(f.status != "" && item.Status != f.status)
	})
}

var locationOrder = []model.Location{model.LocationFridge, model.LocationFreezer, model.LocationPantry}

// renderPantry prints items grouped by location.
func renderPantry(w io.Writer, items []model.PantryItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, cli.FormatInfo("No pantry items. Add some with: pantry add eggs rice"))
		return
	}

	for _, loc := range locationOrder {
		var group []model.PantryItem
		for _, item := range items {
			if item.Location == loc {
				group = append(group, item)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintln(w, cli.BoldStyle.Render(fmt.Sprintf("%s (%d)", loc, len(group))))
		for _, item := range group {
			fmt.Fprintf(w, "  %s  %-24s %s %s%s\n",
				cli.SubtleStyle.Render(shortID(item.ID)),
				item.Name,
				cli.FormatCategory(item.Category),
				cli.FormatStatus(item.Status),
				formatQuantity(item.Quantity))
		}
	}
}

func formatQuantity(q *float64) string {
	if q == nil {
		return ""
	}
	return "  ×" + strconv.FormatFloat(*q, 'f', -1, 64)
}
