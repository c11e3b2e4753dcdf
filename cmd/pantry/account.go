package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/pantrychef/internal/cli"
	"github.com/Veraticus/pantrychef/internal/kitchen"
	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/spf13/cobra"
)

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show credits and usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				summary, err := a.kitchen.Status(cmd.Context())
				if err != nil {
					return err
				}
				renderAccount(cmd.OutOrStdout(), summary.Account, a.kitchen.Costs())
				return nil
			})
		},
	}

	cmd.AddCommand(accountGrantCmd())
	cmd.AddCommand(accountResetCmd())

	return cmd
}

func accountGrantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant AMOUNT",
		Short: "Add purchased credits to the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil || amount <= 0 {
				return fmt.Errorf("amount must be a positive whole number, got %q", args[0])
			}
			return withApp(cmd.Context(), func(a *app) error {
				acct := a.kitchen.Stores().Account
				if err := acct.AddCredits(cmd.Context(), amount); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
					fmt.Sprintf("Added %d credits (balance %d)", amount, acct.Snapshot().Credits)))
				return nil
			})
		},
	}
}

func accountResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset credits, counters and favorites to a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				ok, err := confirm(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), force,
					"This resets credits, usage counters and favorites. Continue?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Reset canceled.")
					return nil
				}
				if err := a.kitchen.Stores().Account.Reset(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Account reset"))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func renderAccount(w io.Writer, acct model.Account, costs kitchen.Costs) {
	var b strings.Builder
	rows := []struct {
		label string
		value string
	}{
		{"Credits", strconv.Itoa(acct.Credits)},
		{"Free generations", fmt.Sprintf("%d left this month", acct.MonthlyGenerations)},
		{"Recipes generated", strconv.Itoa(acct.TotalGenerated)},
		{"Photos scanned", strconv.Itoa(acct.TotalScanned)},
		{"Items saved from waste", strconv.Itoa(acct.WasteItemsSaved)},
		{"Favorite recipes", strconv.Itoa(len(acct.FavoriteRecipeIDs))},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%-24s %s\n", row.label+":", row.value)
	}
	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("generate costs %d, scan costs %d · month started %s",
		costs.Generate, costs.Scan, acct.LastResetDate.Local().Format("Jan 2"))))
	fmt.Fprintln(w, cli.RenderBox(cli.ChefIcon+" Account", b.String()))
}
