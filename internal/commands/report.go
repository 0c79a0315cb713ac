package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarmaya-dev/sarmaya/internal/report"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Portfolio reports",
	}

	cmd.AddCommand(newReportSummaryCommand())
	cmd.AddCommand(newReportOverdueCommand())
	cmd.AddCommand(newReportCustomerCommand())
	cmd.AddCommand(newReportExportCommand())

	return cmd
}

// withOutput runs fn against stdout, or against a freshly created file when
// out is non-empty.
func withOutput(out string, fn func(w io.Writer) error) error {
	if out == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()
	return fn(f)
}

func newReportSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Portfolio totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			fmt.Print(report.LoanSummary(s))
			return nil
		},
	}
}

func newReportOverdueCommand() *cobra.Command {
	var asOfStr, out string
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "Loans past their due date with money still owed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			asOf := time.Now()
			if asOfStr != "" {
				asOf, err = time.Parse("2006-01-02", asOfStr)
				if err != nil {
					return fmt.Errorf("parsing as-of date %q: %w", asOfStr, err)
				}
			}

			if asCSV || out != "" {
				return withOutput(out, func(w io.Writer) error {
					return report.ExportOverdue(w, s, asOf)
				})
			}
			fmt.Print(report.OverdueLoans(s, asOf))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfStr, "as-of", "", "evaluate overdue state as of this date (default today)")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "emit CSV instead of text")
	cmd.Flags().StringVar(&out, "out", "", "write to a file instead of stdout (implies --csv)")

	return cmd
}

func newReportCustomerCommand() *cobra.Command {
	var out string
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "customer <customer-id>",
		Short: "One customer's loans and payment position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			if asCSV || out != "" {
				return withOutput(out, func(w io.Writer) error {
					return report.ExportCustomer(w, s, args[0])
				})
			}
			fmt.Print(report.CustomerReport(s, args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "emit CSV instead of text")
	cmd.Flags().StringVar(&out, "out", "", "write to a file instead of stdout (implies --csv)")

	return cmd
}

func newReportExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the loan book as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			return withOutput(out, func(w io.Writer) error {
				return report.ExportLoans(w, s)
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write to a file instead of stdout")

	return cmd
}
