package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/pantrychef/internal/cli"
	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage the shopping list",
		Long: `Manage the shopping list. Without a subcommand the list is shown.

Names are unique ignoring case, so adding "Milk" twice keeps one entry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				renderList(cmd.OutOrStdout(), a.kitchen.Stores().List.Items())
				return nil
			})
		},
	}

	cmd.AddCommand(listAddCmd())
	cmd.AddCommand(listToggleCmd())
	cmd.AddCommand(listRemoveCmd())
	cmd.AddCommand(listClearCheckedCmd())
	cmd.AddCommand(listClearCmd())

	return cmd
}

func listAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME...",
		Short: "Add items to the shopping list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				added, err := a.kitchen.Stores().List.AddMultiple(cmd.Context(), args)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if added == 0 {
					fmt.Fprintln(out, cli.FormatInfo("Everything is already on the list."))
					return nil
				}
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added %d items", added)))
				if skipped := len(args) - added; skipped > 0 {
					fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%d already on the list", skipped)))
				}
				return nil
			})
		},
	}
}

func listToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle ITEM",
		Aliases: []string{"check"},
		Short:   "Check or uncheck an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				list := a.kitchen.Stores().List
				item, err := resolveListItem(list.Items(), args[0])
				if err != nil {
					return err
				}
				if err := list.ToggleItem(cmd.Context(), item.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cli.FormatChecked(!item.Checked), item.Name)
				return nil
			})
		},
	}
}

func listRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ITEM",
		Short: "Remove an item from the shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				list := a.kitchen.Stores().List
				item, err := resolveListItem(list.Items(), args[0])
				if err != nil {
					return err
				}
				if err := list.RemoveItem(cmd.Context(), item.ID); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Removed "+item.Name))
				return nil
			})
		},
	}
}

func listClearCheckedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-checked",
		Short: "Remove checked items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				removed, err := a.kitchen.Stores().List.ClearChecked(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Removed %d checked items", removed)))
				return nil
			})
		},
	}
}

func listClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the shopping list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				list := a.kitchen.Stores().List
				ok, err := confirm(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), force,
					fmt.Sprintf("Remove all %d list items?", len(list.Items())))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Clear canceled.")
					return nil
				}
				if err := list.ClearAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Shopping list cleared"))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

// renderList prints unchecked items first, each group in insertion order.
func renderList(w io.Writer, items []model.ListItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, cli.FormatInfo("The shopping list is empty."))
		return
	}

	fmt.Fprintln(w, cli.TitleStyle.Render(cli.CartIcon+" Shopping list"))
	for _, checked := range []bool{false, true} {
		for _, item := range items {
			if item.Checked != checked {
				continue
			}
			fmt.Fprintf(w, "  %s %s  %s\n", cli.FormatChecked(item.Checked), item.Name, cli.SubtleStyle.Render(shortID(item.ID)))
		}
	}
}
