package models

import (
	"encoding/json"
	"time"
)

// SaleItem is one line of a sale, snapshotted from the catalog at sale
// time. Receipts must stay stable even if the catalog item is later
// edited or deleted, so nothing here references live catalog state.
type SaleItem struct {
	ProductID string  `json:"productId"`
	Kind      string  `json:"kind"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Company   string  `json:"company"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// SaleTransaction is an immutable record of one checkout event.
type SaleTransaction struct {
	ID           string     `json:"id"`
	ReceiptNo    string     `json:"receiptNo"`
	Items        []SaleItem `json:"items"`
	TotalAmount  float64    `json:"totalAmount"`
	CustomerName string     `json:"customerName,omitempty"`
	SoldAt       time.Time  `json:"soldAt"`

	// Loan linkage, mirrored from the loan record on each payment.
	IsLoan          bool       `json:"isLoan,omitempty"`
	LoanStatus      LoanStatus `json:"loanStatus,omitempty"`
	AmountPaid      float64    `json:"amountPaid"`
	AmountRemaining float64    `json:"amountRemaining"`

	CreatedAt time.Time `json:"createdAt"`
}

// Fields converts the sale into the document store field map shape.
func (s *SaleTransaction) Fields() (map[string]any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// SaleFromFields converts a stored field map back into a SaleTransaction.
func SaleFromFields(fields map[string]any) (*SaleTransaction, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var sale SaleTransaction
	if err := json.Unmarshal(raw, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}
