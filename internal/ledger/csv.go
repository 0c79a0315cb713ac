package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sarmaya-dev/sarmaya/internal/model"
)

// The three loan-book files are headerless: one record per line, values
// quoted by encoding/csv only when they need to be.

const dateFormat = "2006-01-02"

const (
	customerNumFields = 6
	custColID         = 0
	custColName       = 1
	custColCNIC       = 2
	custColEmail      = 3
	custColAddress    = 4
	custColPhone      = 5
)

const (
	loanNumFields      = 12
	loanColType        = 0
	loanColID          = 1
	loanColCustomerID  = 2
	loanColPrincipal   = 3
	loanColRate        = 4
	loanColTerm        = 5
	loanColBalance     = 6
	loanColIssueDate   = 7
	loanColDueDate     = 8
	loanColStatus      = 9
	loanColInstallment = 10
	loanColEMI         = 11
)

const (
	paymentNumFields = 4
	payColID         = 0
	payColLoanID     = 1
	payColAmount     = 2
	payColDate       = 3
)

// MarshalCustomer converts a Customer to a CSV row.
func MarshalCustomer(c model.Customer) []string {
	row := make([]string, customerNumFields)
	row[custColID] = c.ID
	row[custColName] = c.Name
	row[custColCNIC] = c.CNIC
	row[custColEmail] = c.Email
	row[custColAddress] = c.Address
	row[custColPhone] = c.Phone
	return row
}

// UnmarshalCustomer converts a CSV row to a Customer.
func UnmarshalCustomer(record []string) (model.Customer, error) {
	if len(record) != customerNumFields {
		return model.Customer{}, fmt.Errorf("expected %d fields, got %d", customerNumFields, len(record))
	}
	return model.Customer{
		ID:      record[custColID],
		Name:    record[custColName],
		CNIC:    record[custColCNIC],
		Email:   record[custColEmail],
		Address: record[custColAddress],
		Phone:   record[custColPhone],
	}, nil
}

// MarshalLoan converts a Loan to a CSV row.
func MarshalLoan(l *model.Loan) []string {
	row := make([]string, loanNumFields)
	row[loanColType] = string(l.Type)
	row[loanColID] = l.ID
	row[loanColCustomerID] = l.CustomerID
	row[loanColPrincipal] = l.Principal.StringFixed(2)
	row[loanColRate] = l.Rate.String()
	row[loanColTerm] = strconv.Itoa(l.TermMonths)
	row[loanColBalance] = l.Balance.StringFixed(2)
	row[loanColIssueDate] = l.IssueDate.Format(dateFormat)
	row[loanColDueDate] = l.DueDate.Format(dateFormat)
	row[loanColStatus] = string(l.Status)
	row[loanColInstallment] = strconv.FormatBool(l.Installment)
	row[loanColEMI] = l.EMI.StringFixed(2)
	return row
}

// UnmarshalLoan reconstructs a Loan from a CSV row. The loan type dispatches
// to the type's fixed rate and interest formula; balance and status are then
// restored from the row so a resumed loan keeps its ledger state. The emi
// column is recomputed from principal, rate and term rather than trusted.
func UnmarshalLoan(record []string) (*model.Loan, error) {
	if len(record) != loanNumFields {
		return nil, fmt.Errorf("expected %d fields, got %d", loanNumFields, len(record))
	}

	typ := model.LoanType(record[loanColType])
	if !typ.Valid() {
		return nil, fmt.Errorf("unknown loan type %q", record[loanColType])
	}

	principal, err := decimal.NewFromString(record[loanColPrincipal])
	if err != nil {
		return nil, fmt.Errorf("parsing principal %q: %w", record[loanColPrincipal], err)
	}

	// The rate is fixed by the loan type, but the column still has to be a
	// number for the line to count as well formed.
	if _, err := decimal.NewFromString(record[loanColRate]); err != nil {
		return nil, fmt.Errorf("parsing rate %q: %w", record[loanColRate], err)
	}

	termMonths, err := strconv.Atoi(record[loanColTerm])
	if err != nil {
		return nil, fmt.Errorf("parsing termMonths %q: %w", record[loanColTerm], err)
	}
	if termMonths <= 0 {
		return nil, fmt.Errorf("termMonths %d out of range", termMonths)
	}

	balance, err := decimal.NewFromString(record[loanColBalance])
	if err != nil {
		return nil, fmt.Errorf("parsing balance %q: %w", record[loanColBalance], err)
	}

	issueDate, err := time.Parse(dateFormat, record[loanColIssueDate])
	if err != nil {
		return nil, fmt.Errorf("parsing issueDate %q: %w", record[loanColIssueDate], err)
	}
	if _, err := time.Parse(dateFormat, record[loanColDueDate]); err != nil {
		return nil, fmt.Errorf("parsing dueDate %q: %w", record[loanColDueDate], err)
	}

	installment, err := strconv.ParseBool(record[loanColInstallment])
	if err != nil {
		return nil, fmt.Errorf("parsing installment %q: %w", record[loanColInstallment], err)
	}

	l := model.NewLoan(typ, record[loanColID], record[loanColCustomerID], principal, termMonths, issueDate, installment)
	l.Balance = balance
	l.Status = model.LoanStatus(record[loanColStatus])
	return l, nil
}

// MarshalPayment converts a Payment to a CSV row.
func MarshalPayment(p model.Payment) []string {
	row := make([]string, paymentNumFields)
	row[payColID] = p.ID
	row[payColLoanID] = p.LoanID
	row[payColAmount] = p.Amount.StringFixed(2)
	row[payColDate] = p.Date.Format(dateFormat)
	return row
}

// UnmarshalPayment converts a CSV row to a Payment.
func UnmarshalPayment(record []string) (model.Payment, error) {
	if len(record) != paymentNumFields {
		return model.Payment{}, fmt.Errorf("expected %d fields, got %d", paymentNumFields, len(record))
	}

	amount, err := decimal.NewFromString(record[payColAmount])
	if err != nil {
		return model.Payment{}, fmt.Errorf("parsing amount %q: %w", record[payColAmount], err)
	}

	date, err := time.Parse(dateFormat, record[payColDate])
	if err != nil {
		return model.Payment{}, fmt.Errorf("parsing date %q: %w", record[payColDate], err)
	}

	return model.Payment{
		ID:     record[payColID],
		LoanID: record[payColLoanID],
		Amount: amount,
		Date:   date,
	}, nil
}

// WriteCustomers writes the whole customer collection.
func WriteCustomers(w io.Writer, customers []*model.Customer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, c := range customers {
		if err := cw.Write(MarshalCustomer(*c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return cw.Error()
}

// WriteLoans writes the whole loan collection.
func WriteLoans(w io.Writer, loans []*model.Loan) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, l := range loans {
		if err := cw.Write(MarshalLoan(l)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return cw.Error()
}

// WritePayments writes the whole payment collection.
func WritePayments(w io.Writer, payments []model.Payment) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, p := range payments {
		if err := cw.Write(MarshalPayment(p)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return cw.Error()
}
