package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanType selects the fixed annual rate and the interest formula.
type LoanType string

const (
	LoanTypePersonal  LoanType = "PERSONAL"
	LoanTypeBusiness  LoanType = "BUSINESS"
	LoanTypeEducation LoanType = "EDUCATION"
)

// Valid reports whether t is a known loan type.
func (t LoanType) Valid() bool {
	switch t {
	case LoanTypePersonal, LoanTypeBusiness, LoanTypeEducation:
		return true
	}
	return false
}

// DefaultRate returns the annual rate percent fixed for a loan type.
func (t LoanType) DefaultRate() decimal.Decimal {
	switch t {
	case LoanTypeBusiness:
		return decimal.NewFromInt(8)
	case LoanTypeEducation:
		return decimal.NewFromInt(5)
	default:
		return decimal.NewFromInt(10)
	}
}

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	StatusActive  LoanStatus = "ACTIVE"
	StatusOverdue LoanStatus = "OVERDUE"
	StatusClosed  LoanStatus = "CLOSED"
)

// Loan is one row in loans.csv. Principal, rate and term are fixed at
// issuance; only Balance and Status change afterwards.
type Loan struct {
	Type        LoanType
	ID          string
	CustomerID  string
	Principal   decimal.Decimal
	Rate        decimal.Decimal // annual rate percent
	TermMonths  int
	Balance     decimal.Decimal
	IssueDate   time.Time
	DueDate     time.Time
	Status      LoanStatus
	Installment bool
	EMI         decimal.Decimal
}

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// NewLoan issues a loan of the given type. The rate comes from the type, the
// due date is termMonths after the issue date, and the opening balance is the
// total payable (principal plus interest over the full term).
func NewLoan(typ LoanType, id, customerID string, principal decimal.Decimal, termMonths int, issueDate time.Time, installment bool) *Loan {
	l := &Loan{
		Type:        typ,
		ID:          id,
		CustomerID:  customerID,
		Principal:   principal,
		Rate:        typ.DefaultRate(),
		TermMonths:  termMonths,
		IssueDate:   issueDate,
		DueDate:     addMonths(issueDate, termMonths),
		Status:      StatusActive,
		Installment: installment,
	}
	l.Balance = l.CalculateTotalPayable()
	if installment {
		l.EMI = l.CalculateEMI()
	}
	return l
}

// addMonths advances t by whole months, clamping to the last day of the
// target month. A loan issued on the 31st falls due on the 28th, 29th or
// 30th when the due month is shorter; time.AddDate would roll it into the
// month after.
func addMonths(t time.Time, months int) time.Time {
	y, m, _ := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// CalculateInterest returns the interest accrued over the full term.
// Business loans compound monthly; personal and education loans use simple
// interest.
func (l *Loan) CalculateInterest() decimal.Decimal {
	if l.Type == LoanTypeBusiness {
		factor := one.Add(l.Rate.Div(twelve).Div(hundred)).Pow(decimal.NewFromInt(int64(l.TermMonths)))
		return l.Principal.Mul(factor).Sub(l.Principal).Round(2)
	}
	years := decimal.NewFromInt(int64(l.TermMonths)).Div(twelve)
	return l.Principal.Mul(l.Rate.Div(hundred)).Mul(years).Round(2)
}

// CalculateTotalPayable returns principal plus interest, the opening balance.
func (l *Loan) CalculateTotalPayable() decimal.Decimal {
	return l.Principal.Add(l.CalculateInterest()).Round(2)
}

// CalculateEMI returns the fixed monthly installment amortizing the principal
// over the term, or zero for non-installment loans.
func (l *Loan) CalculateEMI() decimal.Decimal {
	if !l.Installment {
		return decimal.Zero
	}
	r := l.Rate.Div(twelve).Div(hundred)
	factor := one.Add(r).Pow(decimal.NewFromInt(int64(l.TermMonths)))
	return l.Principal.Mul(r).Mul(factor).Div(factor.Sub(one)).Round(2)
}

// MakePayment reduces the balance by amount, clamping at zero and closing the
// loan once nothing is owed. Amounts <= 0 are ignored; overpayment is
// absorbed, not refunded.
func (l *Loan) MakePayment(amount decimal.Decimal) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return
	}
	l.Balance = l.Balance.Sub(amount).Round(2)
	if l.Balance.LessThanOrEqual(decimal.Zero) {
		l.Balance = decimal.Zero
		l.Status = StatusClosed
	}
}

// CheckOverdue marks the loan OVERDUE when asOf is past the due date and money
// is still owed. Idempotent; a CLOSED loan never changes state again.
func (l *Loan) CheckOverdue(asOf time.Time) {
	if l.Status != StatusClosed && asOf.After(l.DueDate) && l.Balance.GreaterThan(decimal.Zero) {
		l.Status = StatusOverdue
	}
}
