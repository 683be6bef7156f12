package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eeandrelle/tally/internal/config"
	"github.com/eeandrelle/tally/internal/store"
	"github.com/eeandrelle/tally/internal/taxyear"
)

func newInitCommand(_ *rootOptions) *cobra.Command {
	var name string
	var year string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tally project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if year == "" {
				year = string(taxyear.ForDate(time.Now()))
			}
			return runInit(absDir, name, year)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "taxpayer name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&year, "tax-year", "", "tax year label, e.g. 2025-26 (default: current)")

	return cmd
}

func runInit(dir, name, year string) error {
	if !taxyear.Valid(year) {
		return fmt.Errorf("invalid tax year %q: want YYYY-YY, e.g. 2025-26", year)
	}

	for _, d := range []string{"data", "exports", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, year)
	if err := config.Save(filepath.Join(dir, "tally.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the database up front so the first command finds a migrated schema.
	st, err := store.NewSQLite(filepath.Join(dir, cfg.Paths.Database), zerolog.Nop())
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	gitignore := "data/\nexports/\nlogs/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Printf("Initialized tally project at %s (tax year %s)\n", dir, year)
	return nil
}
