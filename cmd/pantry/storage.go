package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/Veraticus/pantrychef/internal/cli"
	"github.com/Veraticus/pantrychef/internal/config"
	"github.com/Veraticus/pantrychef/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var storeNames = []string{
	store.PantryStoreName,
	store.ListStoreName,
	store.AccountStoreName,
	store.RecipeStoreName,
}

func storageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect the local database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := initStorage(cmd.Context(), config.ExpandPath(viper.GetString("database.path")))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			blobs, err := db.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.SubtleStyle.Render(db.Path()))
			if len(blobs) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("Nothing stored yet."))
				return nil
			}
			for _, blob := range blobs {
				fmt.Fprintf(out, "  %-18s %8d bytes  rev %-4d %s\n",
					blob.Name, blob.Size, blob.Revision, blob.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.AddCommand(storageDropCmd())
	cmd.AddCommand(storageBackupCmd())

	return cmd
}

func storageDropCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:       "drop STORE",
		Short:     "Delete one stored document so it starts over from defaults",
		Args:      cobra.ExactArgs(1),
		ValidArgs: storeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !slices.Contains(storeNames, name) {
				return fmt.Errorf("unknown store %q (want one of %v)", name, storeNames)
			}

			db, err := initStorage(cmd.Context(), config.ExpandPath(viper.GetString("database.path")))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			ok, err := confirm(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), force,
				fmt.Sprintf("Delete everything in %s?", name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Drop canceled.")
				return nil
			}
			if err := db.Delete(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Dropped "+name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func storageBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [PATH]",
		Short: "Write a verified copy of the database",
		Long: `Backup writes a consistent copy of the database. Without PATH the copy goes
next to the database as backups/pantry-<timestamp>.db.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := initStorage(cmd.Context(), config.ExpandPath(viper.GetString("database.path")))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			dest := filepath.Join(filepath.Dir(db.Path()), "backups",
				"pantry-"+time.Now().Format("20060102-150405")+".db")
			if len(args) == 1 {
				dest = config.ExpandPath(args[0])
			}

			if err := db.Backup(cmd.Context(), dest); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Backed up to "+dest))
			return nil
		},
	}
}
