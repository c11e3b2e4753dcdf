package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/Veraticus/pantrychef/internal/cli"
	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/spf13/cobra"
)

// maxImageBytes caps the photo size sent to the vision model.
const maxImageBytes = 20 << 20

func scanCmd() *cobra.Command {
	var (
		location string
		force    bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "scan IMAGE",
		Short: "Detect groceries in a photo and add them to the pantry",
		Long: `Scan sends a photo of your groceries or receipt to the vision model and
adds what it finds to the pantry. A scan costs credits; a failed scan is
refunded.`,
		Example: `  pantry scan haul.jpg
  pantry scan --location freezer --dry-run freezer.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := model.ParseLocation(location)
			if err != nil {
				return err
			}
			encoded, err := readImage(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), func(a *app) error {
				out := cmd.OutOrStdout()
				handler := cli.NewInterruptHandler(out)
				ctx := handler.HandleInterrupts(cmd.Context(), "Scan", true)
				defer handler.Stop()

				fmt.Fprintln(out, cli.InfoStyle.Render(fmt.Sprintf("%s Scanning %s (%d credits)...",
					cli.CameraIcon, args[0], a.kitchen.Costs().Scan)))

				detected, err := a.kitchen.Scan(ctx, encoded)
				if err != nil {
					return err
				}
				if len(detected) == 0 {
					fmt.Fprintln(out, cli.FormatWarning("No groceries found in the photo."))
					return nil
				}

				for _, item := range detected {
					fmt.Fprintf(out, "  %s %s\n", item.Name, cli.FormatCategory(item.Category))
				}
				if dryRun {
					return nil
				}

				ok, err := confirm(ctx, cmd.InOrStdin(), out, force,
					fmt.Sprintf("Add %d items to the %s?", len(detected), loc))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Nothing added.")
					return nil
				}

				added, err := a.kitchen.AddDetected(ctx, detected, loc)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added %d items to the %s", len(added), loc)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", string(model.LocationFridge), "where the scanned items go")
	cmd.Flags().BoolVarP(&force, "yes", "y", false, "add detected items without asking")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only show what was detected")

	return cmd
}

// readImage loads a photo and encodes it for the vision model.
func readImage(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if info.Size() > maxImageBytes {
		return "", fmt.Errorf("image %s is too large (%d bytes, limit %d)", path, info.Size(), maxImageBytes)
	}
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied path is the point
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image %s is empty", path)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
