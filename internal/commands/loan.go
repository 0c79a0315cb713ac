package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sarmaya-dev/sarmaya/internal/id"
	"github.com/sarmaya-dev/sarmaya/internal/model"
)

func newLoanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Issue and inspect loans",
	}

	cmd.AddCommand(newLoanIssueCommand())
	cmd.AddCommand(newLoanListCommand())
	cmd.AddCommand(newLoanShowCommand())

	return cmd
}

func newLoanIssueCommand() *cobra.Command {
	var customerID, loanType, principalStr, issuedStr string
	var months int
	var installment bool

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a new loan",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			typ := model.LoanType(strings.ToUpper(loanType))
			if !typ.Valid() {
				return fmt.Errorf("unknown loan type %q (want personal, business or education)", loanType)
			}
			if !id.Valid(customerID) {
				// A typo here would write an orphan loan nobody can trace.
				return fmt.Errorf("malformed customer id %q", customerID)
			}

			principal, err := decimal.NewFromString(principalStr)
			if err != nil {
				return fmt.Errorf("parsing principal %q: %w", principalStr, err)
			}
			if principal.IsNegative() {
				return fmt.Errorf("principal must not be negative")
			}
			if months < 1 {
				return fmt.Errorf("term must be at least one month")
			}

			issued := time.Now()
			if issuedStr != "" {
				issued, err = time.Parse("2006-01-02", issuedStr)
				if err != nil {
					return fmt.Errorf("parsing issue date %q: %w", issuedStr, err)
				}
			}

			if _, ok := s.FindCustomer(customerID); !ok {
				// Allowed, but worth telling the operator about.
				fmt.Printf("warning: customer %s is not on file\n", customerID)
			}

			l := model.NewLoan(typ, id.New(), customerID, principal, months, issued, installment)
			s.AddLoan(l)

			fmt.Printf("Issued %s loan %s: payable %s", typ, l.ID, l.Balance.StringFixed(2))
			if installment {
				fmt.Printf(", EMI %s/month", l.EMI.StringFixed(2))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "customer id (required)")
	cmd.Flags().StringVar(&loanType, "type", "", "personal, business or education (required)")
	cmd.Flags().StringVar(&principalStr, "principal", "", "principal amount (required)")
	cmd.Flags().IntVar(&months, "months", 12, "term in months")
	cmd.Flags().StringVar(&issuedStr, "issued", "", "issue date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&installment, "installment", false, "repay by monthly installment")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("principal")

	return cmd
}

func newLoanListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			for _, l := range s.Loans() {
				fmt.Printf("%s  %-9s %-8s P:%10s  Bal:%10s  Due:%s  %s\n",
					l.ID, l.Type, l.CustomerID, l.Principal.StringFixed(2),
					l.Balance.StringFixed(2), l.DueDate.Format("2006-01-02"), l.Status)
			}
			return nil
		},
	}
}

func newLoanShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <loan-id>",
		Short: "Show one loan with its payment history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			l, ok := s.FindLoan(args[0])
			if !ok {
				return fmt.Errorf("unknown loan %s", args[0])
			}

			fmt.Printf("%s %s loan for %s\n", l.ID, l.Type, l.CustomerID)
			fmt.Printf("  Principal:  %s at %s%% over %d months\n", l.Principal.StringFixed(2), l.Rate.String(), l.TermMonths)
			fmt.Printf("  Interest:   %s\n", l.CalculateInterest().StringFixed(2))
			fmt.Printf("  Balance:    %s (%s)\n", l.Balance.StringFixed(2), l.Status)
			if l.Installment {
				fmt.Printf("  EMI:        %s/month\n", l.EMI.StringFixed(2))
			}
			fmt.Printf("  Issued:     %s, due %s\n", l.IssueDate.Format("2006-01-02"), l.DueDate.Format("2006-01-02"))

			payments := s.PaymentsForLoan(l.ID)
			fmt.Printf("  Paid:       %s over %d payment(s)\n", s.TotalPaidForLoan(l.ID).StringFixed(2), len(payments))
			if last, ok := s.LastPaymentDateForLoan(l.ID); ok {
				fmt.Printf("  Last paid:  %s\n", last.Format("2006-01-02"))
			}
			return nil
		},
	}
}
