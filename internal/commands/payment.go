package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sarmaya-dev/sarmaya/internal/id"
	"github.com/sarmaya-dev/sarmaya/internal/model"
)

func newPaymentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Record and inspect payments",
	}

	cmd.AddCommand(newPaymentRecordCommand())
	cmd.AddCommand(newPaymentListCommand())

	return cmd
}

func newPaymentRecordCommand() *cobra.Command {
	var loanID, amountStr, dateStr string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a payment against a loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !id.Valid(loanID) {
				return fmt.Errorf("malformed loan id %q", loanID)
			}

			s, err := openStore()
			if err != nil {
				return err
			}

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amountStr, err)
			}
			if !amount.IsPositive() {
				return fmt.Errorf("amount must be positive")
			}

			paidOn := time.Now()
			if dateStr != "" {
				paidOn, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", dateStr, err)
				}
			}

			p := model.Payment{ID: id.New(), LoanID: loanID, Amount: amount, Date: paidOn}
			s.RecordPayment(p)

			fmt.Printf("Recorded payment %s of %s against %s\n", p.ID, amount.StringFixed(2), loanID)
			if l, ok := s.FindLoan(loanID); ok {
				fmt.Printf("Balance now %s (%s)\n", l.Balance.StringFixed(2), l.Status)
			} else {
				fmt.Printf("warning: loan %s is not on file; payment recorded anyway\n", loanID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&loanID, "loan", "", "loan id (required)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "payment amount (required)")
	cmd.Flags().StringVar(&dateStr, "date", "", "payment date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("loan")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newPaymentListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <loan-id>",
		Short: "List payments recorded against a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			payments := s.PaymentsForLoan(args[0])
			for _, p := range payments {
				fmt.Printf("%s  %s  %10s\n", p.ID, p.Date.Format("2006-01-02"), p.Amount.StringFixed(2))
			}
			fmt.Printf("Total paid: %s over %d payment(s)\n", s.TotalPaidForLoan(args[0]).StringFixed(2), len(payments))
			return nil
		},
	}
}
