package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarmaya-dev/sarmaya/internal/ledger"
	"github.com/sarmaya-dev/sarmaya/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testStore(t *testing.T) *ledger.Store {
	t.Helper()
	s, err := ledger.Open(t.TempDir(), ledger.Options{})
	require.NoError(t, err)
	return s
}

func TestLoanSummary(t *testing.T) {
	s := testStore(t)
	s.AddLoan(model.NewLoan(model.LoanTypePersonal, "LN000001", "C1", dec("1000"), 12, date(2025, time.January, 1), false))
	s.AddLoan(model.NewLoan(model.LoanTypeEducation, "LN000002", "C2", dec("2000"), 12, date(2025, time.January, 1), false))

	out := LoanSummary(s)
	assert.Contains(t, out, "Total Principal Issued:       3000.00")
	// 1100 + 2100 outstanding, nothing paid yet.
	assert.Contains(t, out, "Total Outstanding Balance:    3200.00")
	// 100 personal + 100 education interest.
	assert.Contains(t, out, "Total Interest Accrued:       200.00")
	assert.Contains(t, out, "Number of Loans:              2")
}

func TestLoanSummary_Empty(t *testing.T) {
	out := LoanSummary(testStore(t))
	assert.Contains(t, out, "Number of Loans:              0")
	assert.Contains(t, out, "Total Principal Issued:       0.00")
}

func TestOverdueLoans(t *testing.T) {
	s := testStore(t)
	s.AddLoan(model.NewLoan(model.LoanTypePersonal, "LN000001", "C1", dec("1000"), 12, date(2024, time.January, 1), false))
	s.AddLoan(model.NewLoan(model.LoanTypePersonal, "LN000002", "C1", dec("1000"), 12, date(2025, time.June, 1), false))

	out := OverdueLoans(s, date(2025, time.March, 1))
	assert.Contains(t, out, "Loan ID: LN000001")
	assert.NotContains(t, out, "LN000002")
	assert.Contains(t, out, "Due Date: 2025-01-01")

	// The refresh went through the store.
	l, _ := s.FindLoan("LN000001")
	assert.Equal(t, model.StatusOverdue, l.Status)
}

func TestOverdueLoans_NoneFound(t *testing.T) {
	s := testStore(t)
	s.AddLoan(model.NewLoan(model.LoanTypePersonal, "LN000001", "C1", dec("1000"), 12, date(2025, time.June, 1), false))

	out := OverdueLoans(s, date(2025, time.July, 1))
	assert.Contains(t, out, "No overdue loans found.")
}

func TestCustomerReport(t *testing.T) {
	s := testStore(t)
	require.True(t, s.AddCustomer(model.Customer{
		ID: "CUST0001", Name: "Ayesha Khan", CNIC: "4210112345678",
		Email: "ayesha@example.com", Address: "Karachi", Phone: "03001234567",
	}))
	s.AddLoan(model.NewLoan(model.LoanTypeBusiness, "LN000001", "CUST0001", dec("5000"), 12, time.Now(), false))
	s.RecordPayment(model.Payment{ID: "PY000001", LoanID: "LN000001", Amount: dec("415.00"), Date: time.Now()})

	out := CustomerReport(s, "CUST0001")
	assert.Contains(t, out, "Ayesha Khan")
	assert.Contains(t, out, "Loan ID: LN000001 (BUSINESS)")
	assert.Contains(t, out, "Total Paid: 415.00")
	assert.Contains(t, out, "Total Outstanding:")
}

func TestCustomerReport_NotFound(t *testing.T) {
	out := CustomerReport(testStore(t), "GHOST")
	assert.Equal(t, "Customer not found: GHOST", out)
}

func TestCustomerReport_NoLoans(t *testing.T) {
	s := testStore(t)
	require.True(t, s.AddCustomer(model.Customer{
		ID: "CUST0001", Name: "Ayesha Khan", CNIC: "4210112345678",
		Email: "ayesha@example.com", Address: "Karachi", Phone: "03001234567",
	}))

	out := CustomerReport(s, "CUST0001")
	assert.Contains(t, out, "This customer has no loans.")
}

func TestExportLoans(t *testing.T) {
	s := testStore(t)
	s.AddLoan(model.NewLoan(model.LoanTypePersonal, "LN000001", "C1", dec("1000"), 12, date(2025, time.January, 1), false))

	var buf bytes.Buffer
	require.NoError(t, ExportLoans(&buf, s))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "loan_id,customer_id,type,principal,balance,status,issue_date,due_date", lines[0])
	assert.Equal(t, "LN000001,C1,PERSONAL,1000.00,1100.00,ACTIVE,2025-01-01,2026-01-01", lines[1])
}

func TestExportOverdue(t *testing.T) {
	s := testStore(t)
	s.AddLoan(model.NewLoan(model.LoanTypePersonal, "LN000001", "C1", dec("1000"), 12, date(2024, time.January, 1), false))
	s.AddLoan(model.NewLoan(model.LoanTypePersonal, "LN000002", "C1", dec("1000"), 12, date(2025, time.June, 1), false))

	var buf bytes.Buffer
	require.NoError(t, ExportOverdue(&buf, s, date(2025, time.March, 1)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "loan_id,customer_id,principal,balance,interest,status,due_date", lines[0])
	assert.Equal(t, "LN000001,C1,1000.00,1100.00,100.00,OVERDUE,2025-01-01", lines[1])

	// The refresh went through the store.
	l, _ := s.FindLoan("LN000001")
	assert.Equal(t, model.StatusOverdue, l.Status)
}

func TestExportCustomer(t *testing.T) {
	s := testStore(t)
	require.True(t, s.AddCustomer(model.Customer{
		ID: "CUST0001", Name: "Ayesha Khan", CNIC: "4210112345678",
		Email: "ayesha@example.com", Address: "Karachi", Phone: "03001234567",
	}))
	s.AddLoan(model.NewLoan(model.LoanTypeEducation, "LN000001", "CUST0001", dec("1000"), 12, date(2025, time.January, 1), false))
	s.AddLoan(model.NewLoan(model.LoanTypePersonal, "LN000002", "OTHER", dec("500"), 12, date(2025, time.January, 1), false))

	var buf bytes.Buffer
	require.NoError(t, ExportCustomer(&buf, s, "CUST0001"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "loan_id,principal,balance,interest,status,due_date", lines[0])
	assert.Equal(t, "LN000001,1000.00,1050.00,50.00,ACTIVE,2026-01-01", lines[1])
}

func TestExportCustomer_NotFound(t *testing.T) {
	var buf bytes.Buffer
	err := ExportCustomer(&buf, testStore(t), "GHOST")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Zero(t, buf.Len())
}
