// Package ledger owns the loan book: three in-memory collections mirrored to
// three CSV files. Every mutation goes through the Store, which applies it to
// memory first and then persists — an append for new records, a full file
// rewrite when an existing record changed.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/sarmaya-dev/sarmaya/internal/model"
	"github.com/sarmaya-dev/sarmaya/internal/validate"
)

const (
	customersFile = "customers.csv"
	loansFile     = "loans.csv"
	paymentsFile  = "payments.csv"
)

// Options control load behavior.
type Options struct {
	// Strict makes Open fail on the first malformed line instead of
	// dropping it with a warning.
	Strict bool
}

// Store is the sole mutation surface over customers, loans and payments.
// It is not safe for concurrent use.
type Store struct {
	dir    string
	strict bool

	customers []*model.Customer
	loans     []*model.Loan
	payments  []model.Payment

	customersByID map[string]*model.Customer
	loansByID     map[string]*model.Loan
}

// Open loads the loan book from dir, creating the directory and any missing
// files. Blank lines are skipped; malformed lines are dropped with a warning
// unless opts.Strict is set.
func Open(dir string, opts Options) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &Store{
		dir:           dir,
		strict:        opts.Strict,
		customersByID: make(map[string]*model.Customer),
		loansByID:     make(map[string]*model.Loan),
	}

	for _, name := range []string{customersFile, loansFile, paymentsFile} {
		f, err := os.OpenFile(s.path(name), os.O_CREATE|os.O_RDONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("ensuring %s: %w", name, err)
		}
		f.Close()
	}

	if err := s.loadAll(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) loadAll() error {
	if err := s.readFile(customersFile, func(record []string) error {
		c, err := UnmarshalCustomer(record)
		if err != nil {
			return err
		}
		s.customers = append(s.customers, &c)
		s.customersByID[c.ID] = &c
		return nil
	}); err != nil {
		return err
	}

	if err := s.readFile(loansFile, func(record []string) error {
		l, err := UnmarshalLoan(record)
		if err != nil {
			return err
		}
		s.loans = append(s.loans, l)
		s.loansByID[l.ID] = l
		return nil
	}); err != nil {
		return err
	}

	return s.readFile(paymentsFile, func(record []string) error {
		p, err := UnmarshalPayment(record)
		if err != nil {
			return err
		}
		s.payments = append(s.payments, p)
		return nil
	})
}

// readFile streams CSV records from one ledger file through apply. The
// lenient path logs and skips bad records; strict mode surfaces them.
func (s *Store) readFile(name string, apply func(record []string) error) error {
	f, err := os.Open(s.path(name))
	if err != nil {
		if s.strict {
			return fmt.Errorf("opening %s: %w", name, err)
		}
		log.Warn().Err(err).Str("file", name).Msg("cannot open ledger file")
		return nil
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	record := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		record++
		if err == nil {
			err = apply(rec)
		}
		if err != nil {
			if s.strict {
				return fmt.Errorf("%s record %d: %w", name, record, err)
			}
			log.Warn().Err(err).Str("file", name).Int("record", record).Msg("dropping malformed line")
		}
	}
}

// AddCustomer appends a customer after syntax checks. Returns false, without
// mutating anything, when any field fails validation.
func (s *Store) AddCustomer(c model.Customer) bool {
	if c.ID == "" ||
		!validate.IsValidName(c.Name) ||
		!validate.IsValidCNIC(c.CNIC) ||
		!validate.IsValidPhone(c.Phone) ||
		!validate.IsValidEmail(c.Email) {
		return false
	}
	s.customers = append(s.customers, &c)
	s.customersByID[c.ID] = &c
	s.appendRecord(customersFile, MarshalCustomer(c))
	return true
}

// EditCustomer updates a customer in place and rewrites the customer file.
// Returns false when the id is unknown or the new cnic/phone/email fail
// validation.
func (s *Store) EditCustomer(id, name, cnic, email, address, phone string) bool {
	c, ok := s.customersByID[id]
	if !ok {
		return false
	}
	if !validate.IsValidCNIC(cnic) || !validate.IsValidPhone(phone) || !validate.IsValidEmail(email) {
		return false
	}
	c.Name = name
	c.CNIC = cnic
	c.Email = email
	c.Address = address
	c.Phone = phone
	s.rewriteCustomers()
	return true
}

// DeleteCustomer removes a customer and rewrites the customer file. The
// customer's loans and payments are deliberately left in place.
func (s *Store) DeleteCustomer(id string) bool {
	if _, ok := s.customersByID[id]; !ok {
		return false
	}
	delete(s.customersByID, id)
	for i, c := range s.customers {
		if c.ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			break
		}
	}
	s.rewriteCustomers()
	return true
}

// AddLoan appends a loan. The caller constructed it, so no further checks.
func (s *Store) AddLoan(l *model.Loan) {
	s.loans = append(s.loans, l)
	s.loansByID[l.ID] = l
	s.appendRecord(loansFile, MarshalLoan(l))
}

// AddPayment appends a payment without touching any loan.
func (s *Store) AddPayment(p model.Payment) {
	s.payments = append(s.payments, p)
	s.appendRecord(paymentsFile, MarshalPayment(p))
}

// RecordPayment appends the payment and, when the referenced loan exists,
// applies it to the loan, refreshes overdue state, and rewrites both files.
// A payment against an unknown loan is still recorded.
func (s *Store) RecordPayment(p model.Payment) {
	s.AddPayment(p)
	l, ok := s.loansByID[p.LoanID]
	if !ok {
		return
	}
	l.MakePayment(p.Amount)
	l.CheckOverdue(time.Now())
	s.rewriteLoans()
	s.rewritePayments()
}

// MarkOverdue refreshes overdue state across the book as of the given date,
// persisting the loan file when anything changed. Returns how many loans
// transitioned.
func (s *Store) MarkOverdue(asOf time.Time) int {
	changed := 0
	for _, l := range s.loans {
		before := l.Status
		l.CheckOverdue(asOf)
		if l.Status != before {
			changed++
		}
	}
	if changed > 0 {
		s.rewriteLoans()
	}
	return changed
}

// Customers returns a copy of the customer collection.
func (s *Store) Customers() []model.Customer {
	out := make([]model.Customer, len(s.customers))
	for i, c := range s.customers {
		out[i] = *c
	}
	return out
}

// Loans returns a copy of the loan collection.
func (s *Store) Loans() []model.Loan {
	out := make([]model.Loan, len(s.loans))
	for i, l := range s.loans {
		out[i] = *l
	}
	return out
}

// Payments returns a copy of the payment collection.
func (s *Store) Payments() []model.Payment {
	out := make([]model.Payment, len(s.payments))
	copy(out, s.payments)
	return out
}

// FindCustomer returns a customer by id.
func (s *Store) FindCustomer(id string) (model.Customer, bool) {
	c, ok := s.customersByID[id]
	if !ok {
		return model.Customer{}, false
	}
	return *c, true
}

// FindLoan returns a loan by id.
func (s *Store) FindLoan(id string) (model.Loan, bool) {
	l, ok := s.loansByID[id]
	if !ok {
		return model.Loan{}, false
	}
	return *l, true
}

// PaymentsForLoan returns every payment recorded against a loan.
func (s *Store) PaymentsForLoan(loanID string) []model.Payment {
	var out []model.Payment
	for _, p := range s.payments {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	return out
}

// TotalPaidForLoan sums the payments recorded against a loan.
func (s *Store) TotalPaidForLoan(loanID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.payments {
		if p.LoanID == loanID {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// LastPaymentDateForLoan returns the most recent payment date for a loan,
// or false when none has been recorded.
func (s *Store) LastPaymentDateForLoan(loanID string) (time.Time, bool) {
	var last time.Time
	found := false
	for _, p := range s.payments {
		if p.LoanID == loanID && (!found || p.Date.After(last)) {
			last = p.Date
			found = true
		}
	}
	return last, found
}

// IsInstallmentLoan reports whether a loan repays by monthly installment.
func (s *Store) IsInstallmentLoan(loanID string) bool {
	l, ok := s.loansByID[loanID]
	return ok && l.Installment
}

// EMIForLoan returns a loan's monthly installment, or zero for unknown or
// non-installment loans.
func (s *Store) EMIForLoan(loanID string) decimal.Decimal {
	l, ok := s.loansByID[loanID]
	if !ok {
		return decimal.Zero
	}
	return l.EMI
}

func (s *Store) appendRecord(name string, record []string) {
	f, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		log.Warn().Err(err).Str("file", name).Msg("append failed")
		return
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(record); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("append failed")
		return
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("append failed")
	}
}

func (s *Store) rewriteCustomers() {
	s.rewrite(customersFile, func(w io.Writer) error {
		return WriteCustomers(w, s.customers)
	})
}

func (s *Store) rewriteLoans() {
	s.rewrite(loansFile, func(w io.Writer) error {
		return WriteLoans(w, s.loans)
	})
}

func (s *Store) rewritePayments() {
	s.rewrite(paymentsFile, func(w io.Writer) error {
		return WritePayments(w, s.payments)
	})
}

// rewrite replaces a ledger file with the current in-memory collection.
// Write failures are logged, not propagated; memory stays authoritative
// until the next successful rewrite.
func (s *Store) rewrite(name string, write func(io.Writer) error) {
	f, err := os.Create(s.path(name))
	if err != nil {
		log.Warn().Err(err).Str("file", name).Msg("rewrite failed")
		return
	}
	defer f.Close()

	if err := write(f); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("rewrite failed")
	}
}
