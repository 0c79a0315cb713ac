package ledger

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestCustomerRoundTrip(t *testing.T) {
	c := model.Customer{
		ID:      "CUST0001",
		Name:    "Ayesha Khan",
		CNIC:    "4210112345678",
		Email:   "ayesha@example.com",
		Address: "House 12, Block F, Karachi",
		Phone:   "03001234567",
	}

	got, err := UnmarshalCustomer(MarshalCustomer(c))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestCustomerCSVEscaping(t *testing.T) {
	c := model.Customer{
		ID:      "CUST0002",
		Name:    "Tariq O'Neill",
		CNIC:    "4210112345678",
		Email:   "tariq@example.com",
		Address: `Flat 3, "Seaview", Clifton, Karachi`,
		Phone:   "03001234567",
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCustomers(&buf, []*model.Customer{&c}))
	assert.Contains(t, buf.String(), `"Flat 3, ""Seaview"", Clifton, Karachi"`)

	cr := csv.NewReader(&buf)
	rec, err := cr.Read()
	require.NoError(t, err)

	got, err := UnmarshalCustomer(rec)
	require.NoError(t, err)
	assert.Equal(t, c.Address, got.Address)
	assert.Equal(t, c.Name, got.Name)
}

func TestLoanRoundTrip(t *testing.T) {
	l := model.NewLoan(model.LoanTypeBusiness, "LN4T7Q2X", "CUST0001", dec("5000"), 24, date(2025, time.March, 10), true)
	l.MakePayment(dec("1200"))

	got, err := UnmarshalLoan(MarshalLoan(l))
	require.NoError(t, err)

	assert.Equal(t, l.ID, got.ID)
	assert.Equal(t, l.CustomerID, got.CustomerID)
	assert.Equal(t, l.Type, got.Type)
	assert.True(t, got.Principal.Equal(l.Principal))
	assert.True(t, got.Balance.Equal(l.Balance), "balance restored from file")
	assert.Equal(t, l.Status, got.Status)
	assert.Equal(t, l.DueDate, got.DueDate)
	assert.Equal(t, l.Installment, got.Installment)
}

func TestLoanRoundTrip_EMIRecomputed(t *testing.T) {
	l := model.NewLoan(model.LoanTypePersonal, "LN9A8B7C", "CUST0001", dec("1000"), 12, date(2025, time.January, 1), true)

	row := MarshalLoan(l)
	row[loanColEMI] = "999.99" // hand-edited emi column is not trusted

	got, err := UnmarshalLoan(row)
	require.NoError(t, err)
	assert.True(t, got.EMI.Equal(l.CalculateEMI()), "emi recomputed on load, got %s", got.EMI)
}

func TestUnmarshalLoan_Malformed(t *testing.T) {
	good := MarshalLoan(model.NewLoan(model.LoanTypePersonal, "LN000001", "C1", dec("100"), 6, date(2025, time.January, 1), false))

	mutate := func(col int, v string) []string {
		row := append([]string(nil), good...)
		row[col] = v
		return row
	}

	cases := map[string][]string{
		"short row":       good[:5],
		"unknown type":    mutate(loanColType, "CAR"),
		"bad principal":   mutate(loanColPrincipal, "lots"),
		"bad rate":        mutate(loanColRate, "high"),
		"bad term":        mutate(loanColTerm, "twelve"),
		"zero term":       mutate(loanColTerm, "0"),
		"bad balance":     mutate(loanColBalance, "??"),
		"bad issue date":  mutate(loanColIssueDate, "01/01/2025"),
		"bad due date":    mutate(loanColDueDate, "soon"),
		"bad installment": mutate(loanColInstallment, "maybe"),
	}
	for name, row := range cases {
		_, err := UnmarshalLoan(row)
		assert.Error(t, err, name)
	}
}

func TestPaymentRoundTrip(t *testing.T) {
	p := model.Payment{
		ID:     "PY11AA22",
		LoanID: "LN4T7Q2X",
		Amount: dec("250.50"),
		Date:   date(2025, time.June, 15),
	}

	got, err := UnmarshalPayment(MarshalPayment(p))
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.LoanID, got.LoanID)
	assert.True(t, got.Amount.Equal(p.Amount))
	assert.Equal(t, p.Date, got.Date)
}

func TestUnmarshalPayment_Malformed(t *testing.T) {
	_, err := UnmarshalPayment([]string{"PY1", "LN1", "abc", "2025-06-15"})
	assert.Error(t, err)

	_, err = UnmarshalPayment([]string{"PY1", "LN1", "10.00", "June 15"})
	assert.Error(t, err)

	_, err = UnmarshalPayment([]string{"PY1", "LN1"})
	assert.Error(t, err)
}
