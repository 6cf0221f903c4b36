package models

import "testing"

func TestDeriveLoanStatus(t *testing.T) {
	tests := []struct {
		name      string
		remaining float64
		paid      float64
		want      LoanStatus
	}{
		{"untouched loan", 100, 0, LoanStatusPending},
		{"partially repaid", 60, 40, LoanStatusPartial},
		{"fully repaid", 0, 100, LoanStatusPaid},
		{"negative remaining still paid", -0.01, 100.01, LoanStatusPaid},
		{"zero total", 0, 0, LoanStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveLoanStatus(tt.remaining, tt.paid); got != tt.want {
				t.Errorf("DeriveLoanStatus(%v, %v) = %v, want %v", tt.remaining, tt.paid, got, tt.want)
			}
		})
	}
}

func TestLoanFieldsRoundTrip(t *testing.T) {
	loan := &LoanRecord{
		ID:              "l1",
		CustomerName:    "Karim aka",
		TotalAmount:     100,
		AmountPaid:      40,
		AmountRemaining: 60,
		Status:          LoanStatusPartial,
		PaymentHistory:  []LoanPayment{{Amount: 40}},
	}
	fields, err := loan.Fields()
	if err != nil {
		t.Fatalf("Fields() error: %v", err)
	}
	back, err := LoanFromFields(fields)
	if err != nil {
		t.Fatalf("LoanFromFields() error: %v", err)
	}
	if back.Status != LoanStatusPartial || back.AmountPaid+back.AmountRemaining != back.TotalAmount {
		t.Errorf("round trip mismatch: got %+v", back)
	}
	if len(back.PaymentHistory) != 1 {
		t.Errorf("payment history lost: %+v", back.PaymentHistory)
	}
}
