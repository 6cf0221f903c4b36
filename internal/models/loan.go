package models

import (
	"encoding/json"
	"time"
)

// LoanStatus tracks a customer loan through its repayment lifecycle.
type LoanStatus string

const (
	LoanStatusPending LoanStatus = "pending"
	LoanStatusPartial LoanStatus = "partial"
	LoanStatusPaid    LoanStatus = "paid"
)

// LoanPayment is one entry in a loan's append-only payment history.
type LoanPayment struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Note   string    `json:"note,omitempty"`
}

// LoanRecord tracks store credit extended to a customer against a sale.
// Invariant: AmountPaid + AmountRemaining == TotalAmount after every
// applied payment, and Status is derived solely from those balances.
type LoanRecord struct {
	ID            string `json:"id"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	TransactionID string `json:"transactionId,omitempty"`
	ReceiptNo     string `json:"receiptNo,omitempty"`

	TotalAmount     float64    `json:"totalAmount"`
	AmountPaid      float64    `json:"amountPaid"`
	AmountRemaining float64    `json:"amountRemaining"`
	Status          LoanStatus `json:"status"`

	PaymentHistory []LoanPayment `json:"paymentHistory"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeriveLoanStatus computes the status a loan must carry for the given
// balances: settled loans are paid, anything with at least one payment
// still outstanding is partial, untouched loans stay pending.
func DeriveLoanStatus(remaining, paid float64) LoanStatus {
	switch {
	case remaining <= 0:
		return LoanStatusPaid
	case paid > 0:
		return LoanStatusPartial
	default:
		return LoanStatusPending
	}
}

// Fields converts the loan into the document store field map shape.
func (l *LoanRecord) Fields() (map[string]any, error) {
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// LoanFromFields converts a stored field map back into a LoanRecord.
func LoanFromFields(fields map[string]any) (*LoanRecord, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var loan LoanRecord
	if err := json.Unmarshal(raw, &loan); err != nil {
		return nil, err
	}
	return &loan, nil
}
