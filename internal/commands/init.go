package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sarmaya-dev/sarmaya/internal/config"
	"github.com/sarmaya-dev/sarmaya/internal/ledger"
)

func newInitCommand() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new loan book",
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

			return runInit(absDir, branch)
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "", "branch name (required)")
	_ = cmd.MarkFlagRequired("branch")

	return cmd
}

func runInit(dir, branch string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default(branch)
	if err := config.Save(filepath.Join(dir, config.DefaultFile), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Opening the store creates the three empty ledger files.
	if _, err := ledger.Open(filepath.Join(dir, cfg.Data.Dir), ledger.Options{}); err != nil {
		return fmt.Errorf("creating ledger files: %w", err)
	}

	fmt.Printf("Initialized loan book for %s at %s\n", branch, dir)
	return nil
}
