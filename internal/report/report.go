// Package report renders read-only views over the loan book. Nothing here
// mutates state except the overdue refresh, which goes through the Store.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sarmaya-dev/sarmaya/internal/ledger"
	"github.com/sarmaya-dev/sarmaya/internal/model"
)

// LoanSummary returns the portfolio totals as display text.
func LoanSummary(s *ledger.Store) string {
	loans := s.Loans()

	totalPrincipal := decimal.Zero
	totalOutstanding := decimal.Zero
	totalInterest := decimal.Zero
	for i := range loans {
		totalPrincipal = totalPrincipal.Add(loans[i].Principal)
		totalOutstanding = totalOutstanding.Add(loans[i].Balance)
		totalInterest = totalInterest.Add(loans[i].CalculateInterest())
	}

	var b strings.Builder
	b.WriteString("=========== LOAN SUMMARY REPORT ===========\n\n")
	fmt.Fprintf(&b, "Total Principal Issued:       %s\n", totalPrincipal.StringFixed(2))
	fmt.Fprintf(&b, "Total Outstanding Balance:    %s\n", totalOutstanding.StringFixed(2))
	fmt.Fprintf(&b, "Total Interest Accrued:       %s\n", totalInterest.StringFixed(2))
	fmt.Fprintf(&b, "Number of Loans:              %d\n", len(loans))
	b.WriteString("\n===========================================\n")
	return b.String()
}

// OverdueLoans refreshes overdue state as of the given date, then lists every
// overdue loan.
func OverdueLoans(s *ledger.Store, asOf time.Time) string {
	s.MarkOverdue(asOf)

	var b strings.Builder
	b.WriteString("============== OVERDUE LOANS ==============\n\n")

	count := 0
	for _, l := range s.Loans() {
		if l.Status != model.StatusOverdue {
			continue
		}
		count++
		fmt.Fprintf(&b, "Loan ID: %s\n", l.ID)
		fmt.Fprintf(&b, "Customer: %s\n", l.CustomerID)
		fmt.Fprintf(&b, "Amount: %s\n", l.Principal.StringFixed(2))
		fmt.Fprintf(&b, "Remaining Balance: %s\n", l.Balance.StringFixed(2))
		fmt.Fprintf(&b, "Due Date: %s\n", l.DueDate.Format("2006-01-02"))
		b.WriteString("-------------------------------------------\n")
	}
	if count == 0 {
		b.WriteString("No overdue loans found.\n")
	}
	b.WriteString("\n===========================================\n")
	return b.String()
}

// CustomerReport returns one customer's details and loan positions.
func CustomerReport(s *ledger.Store, customerID string) string {
	c, ok := s.FindCustomer(customerID)
	if !ok {
		return "Customer not found: " + customerID
	}

	var b strings.Builder
	b.WriteString("============== CUSTOMER REPORT ==============\n\n")
	fmt.Fprintf(&b, "%s | %s | %s | %s\n\n", c.ID, c.Name, c.CNIC, c.Phone)

	totalOutstanding := decimal.Zero
	count := 0
	for _, l := range s.Loans() {
		if l.CustomerID != customerID {
			continue
		}
		count++
		totalOutstanding = totalOutstanding.Add(l.Balance)
		fmt.Fprintf(&b, "Loan ID: %s (%s)\n", l.ID, l.Type)
		fmt.Fprintf(&b, "Principal: %s\n", l.Principal.StringFixed(2))
		fmt.Fprintf(&b, "Balance: %s\n", l.Balance.StringFixed(2))
		fmt.Fprintf(&b, "Interest: %s\n", l.CalculateInterest().StringFixed(2))
		fmt.Fprintf(&b, "Total Paid: %s\n", s.TotalPaidForLoan(l.ID).StringFixed(2))
		fmt.Fprintf(&b, "Status: %s\n", l.Status)
		b.WriteString("---------------------------------------------\n")
	}
	if count == 0 {
		b.WriteString("This customer has no loans.\n")
	} else {
		fmt.Fprintf(&b, "\nTotal Outstanding: %s\n", totalOutstanding.StringFixed(2))
	}
	b.WriteString("\n=============================================\n")
	return b.String()
}

// ExportLoans writes the loan book as CSV with a header row, for consumers
// outside the system. The ledger files themselves stay headerless.
func ExportLoans(w io.Writer, s *ledger.Store) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"loan_id", "customer_id", "type", "principal", "balance", "status", "issue_date", "due_date"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, l := range s.Loans() {
		row := []string{
			l.ID,
			l.CustomerID,
			string(l.Type),
			l.Principal.StringFixed(2),
			l.Balance.StringFixed(2),
			string(l.Status),
			l.IssueDate.Format("2006-01-02"),
			l.DueDate.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing loan %s: %w", l.ID, err)
		}
	}
	return cw.Error()
}

// ExportOverdue refreshes overdue state as of the given date, then writes the
// overdue loans as CSV with a header row.
func ExportOverdue(w io.Writer, s *ledger.Store, asOf time.Time) error {
	s.MarkOverdue(asOf)

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"loan_id", "customer_id", "principal", "balance", "interest", "status", "due_date"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, l := range s.Loans() {
		if l.Status != model.StatusOverdue {
			continue
		}
		row := []string{
			l.ID,
			l.CustomerID,
			l.Principal.StringFixed(2),
			l.Balance.StringFixed(2),
			l.CalculateInterest().StringFixed(2),
			string(l.Status),
			l.DueDate.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing loan %s: %w", l.ID, err)
		}
	}
	return cw.Error()
}

// ExportCustomer writes one customer's loans as CSV with a header row. The
// customer must be on file; their loans may be none.
func ExportCustomer(w io.Writer, s *ledger.Store, customerID string) error {
	if _, ok := s.FindCustomer(customerID); !ok {
		return fmt.Errorf("customer not found: %s", customerID)
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"loan_id", "principal", "balance", "interest", "status", "due_date"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, l := range s.Loans() {
		if l.CustomerID != customerID {
			continue
		}
		row := []string{
			l.ID,
			l.Principal.StringFixed(2),
			l.Balance.StringFixed(2),
			l.CalculateInterest().StringFixed(2),
			string(l.Status),
			l.DueDate.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing loan %s: %w", l.ID, err)
		}
	}
	return cw.Error()
}
