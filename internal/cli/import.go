package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"inmobiliaria/internal/app"

	importsvc "inmobiliaria/internal/services/import_service"
)

func newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import properties from a CSV or JSON export",
		Long:  "Normalizes a WordPress or native export, stores new properties and prints the import report. Slugs already in the catalog count as duplicates.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := importsvc.FormatFromFilename(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := setupLogger(cfg.Env)

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			application, err := app.New(cmd.Context(), log, cfg)
			if err != nil {
				return err
			}
			defer application.Stop()

			summary, err := application.Import.Import(cmd.Context(), f, format, dryRun)
			if err != nil {
				return err
			}

			printSummary(cmd.ErrOrStderr(), summary)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "normalize and report without writing")

	return cmd
}

func printSummary(w io.Writer, s *importsvc.Summary) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	if s.DryRun {
		bold.Fprintln(w, "Import (dry run)")
	} else {
		bold.Fprintln(w, "Import")
	}

	label := "inserted"
	if s.DryRun {
		label = "would insert"
	}
	green.Fprintf(w, "  %-13s %d\n", label, s.Inserted)
	yellow.Fprintf(w, "  %-13s %d\n", "duplicates", s.Duplicates)
	yellow.Fprintf(w, "  %-13s %d\n", "omitted", s.Omitted)

	errColor := green
	if len(s.Errors) > 0 {
		errColor = red
	}
	errColor.Fprintf(w, "  %-13s %d\n", "errors", len(s.Errors))

	if s.InferredPrices > 0 {
		fmt.Fprintf(w, "  %d prices taken from the description\n", s.InferredPrices)
	}
	if s.DefaultPrices > 0 {
		yellow.Fprintf(w, "  %d properties without a price\n", s.DefaultPrices)
	}
	if s.GuessedCities > 0 {
		fmt.Fprintf(w, "  %d cities inferred or defaulted\n", s.GuessedCities)
	}

	for _, e := range s.Errors {
		red.Fprintf(w, "  ✗ %s: %s\n", e.Item, e.Error)
	}
}
