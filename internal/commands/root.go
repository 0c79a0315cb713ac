package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sarmaya-dev/sarmaya/internal/buildinfo"
	"github.com/sarmaya-dev/sarmaya/internal/config"
	"github.com/sarmaya-dev/sarmaya/internal/ledger"
)

var configPath string

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "sarmaya",
		Short:   "Microfinance loan book over flat CSV files",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "path to sarmaya.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCustomerCommand())
	rootCmd.AddCommand(newLoanCommand())
	rootCmd.AddCommand(newPaymentCommand())
	rootCmd.AddCommand(newReportCommand())

	return rootCmd
}

// openStore loads configuration and opens the loan book it points at.
func openStore() (*ledger.Store, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	s, err := ledger.Open(cfg.Data.Dir, ledger.Options{Strict: cfg.Data.StrictLoad})
	if err != nil {
		return nil, fmt.Errorf("opening loan book: %w", err)
	}
	return s, nil
}
