package model

// Customer represents a row in customers.csv. Identity is the ID; every other
// field may be edited.
type Customer struct {
	ID      string
	Name    string
	CNIC    string
	Email   string
	Address string
	Phone   string
}
