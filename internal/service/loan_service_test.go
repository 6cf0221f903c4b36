package service

import (
	"context"
	"errors"
	"testing"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/docstore"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

func newTestLoanService(t *testing.T) (*LoanService, docstore.Store) {
	t.Helper()
	store := docstore.NewMemoryStore()
	sales := store.Collection("sales")
	return NewLoanService(store.Collection("loans"), sales), sales
}

func TestLoanLifecyclePendingPartialPaid(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLoanService(t)

	loan, err := svc.OpenLoan(ctx, "Karim aka", "+998901234567", "", "CHK-20260901-000001", 100)
	if err != nil {
		t.Fatalf("OpenLoan() error: %v", err)
	}
	if loan.Status != models.LoanStatusPending {
		t.Errorf("new loan status = %q, want pending", loan.Status)
	}
	if loan.AmountPaid != 0 || loan.AmountRemaining != 100 {
		t.Errorf("new loan balances: paid=%v remaining=%v", loan.AmountPaid, loan.AmountRemaining)
	}

	after40, err := svc.AddPayment(ctx, loan.ID, 40, "naqd")
	if err != nil {
		t.Fatalf("AddPayment(40) error: %v", err)
	}
	if after40.Status != models.LoanStatusPartial {
		t.Errorf("status after 40 = %q, want partial", after40.Status)
	}
	if after40.AmountPaid != 40 || after40.AmountRemaining != 60 {
		t.Errorf("balances after 40: paid=%v remaining=%v", after40.AmountPaid, after40.AmountRemaining)
	}
	if after40.AmountPaid+after40.AmountRemaining != after40.TotalAmount {
		t.Error("balance invariant broken after first payment")
	}

	after100, err := svc.AddPayment(ctx, loan.ID, 60, "")
	if err != nil {
		t.Fatalf("AddPayment(60) error: %v", err)
	}
	if after100.Status != models.LoanStatusPaid {
		t.Errorf("status after 100 = %q, want paid", after100.Status)
	}
	if after100.AmountRemaining != 0 {
		t.Errorf("remaining = %v, want 0", after100.AmountRemaining)
	}
	if len(after100.PaymentHistory) != 2 {
		t.Errorf("payment history length = %d, want 2", len(after100.PaymentHistory))
	}

	// Settled loans take no more payments.
	if _, err := svc.AddPayment(ctx, loan.ID, 1, ""); !errors.Is(err, utils.ErrLoanAlreadyPaid) {
		t.Errorf("payment on paid loan: err = %v, want ErrLoanAlreadyPaid", err)
	}

	// The persisted copy matches what the last call returned.
	stored, err := svc.GetLoan(ctx, loan.ID)
	if err != nil {
		t.Fatalf("GetLoan() error: %v", err)
	}
	if stored.Status != models.LoanStatusPaid || stored.AmountPaid != 100 {
		t.Errorf("stored loan: %+v", stored)
	}
}

func TestAddPaymentValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLoanService(t)

	loan, err := svc.OpenLoan(ctx, "Mijoz", "", "", "", 50)
	if err != nil {
		t.Fatalf("OpenLoan() error: %v", err)
	}

	tests := []struct {
		name    string
		amount  float64
		wantErr error
	}{
		{"zero amount", 0, utils.ErrInvalidPayment},
		{"negative amount", -5, utils.ErrInvalidPayment},
		{"exceeds debt", 51, utils.ErrPaymentExceedsDebt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddPayment(ctx, loan.ID, tt.amount, ""); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := svc.AddPayment(ctx, "no-such-loan", 10, ""); !errors.Is(err, utils.ErrLoanNotFound) {
		t.Errorf("err = %v, want ErrLoanNotFound", err)
	}
}

func TestAddPaymentMirrorsBalancesToSale(t *testing.T) {
	ctx := context.Background()
	svc, sales := newTestLoanService(t)

	saleID, err := sales.Insert(ctx, map[string]any{
		"receiptNo":       "CHK-20260901-000002",
		"isLoan":          true,
		"loanStatus":      "pending",
		"amountPaid":      0,
		"amountRemaining": 80,
	})
	if err != nil {
		t.Fatalf("sale insert error: %v", err)
	}

	loan, err := svc.OpenLoan(ctx, "Mijoz", "", saleID, "CHK-20260901-000002", 80)
	if err != nil {
		t.Fatalf("OpenLoan() error: %v", err)
	}
	if _, err := svc.AddPayment(ctx, loan.ID, 30, ""); err != nil {
		t.Fatalf("AddPayment() error: %v", err)
	}

	docs, _ := sales.QueryAll(ctx)
	var saleFields map[string]any
	for _, doc := range docs {
		if doc.DocID == saleID {
			saleFields = doc.Fields
		}
	}
	if saleFields == nil {
		t.Fatal("sale document disappeared")
	}
	if saleFields["loanStatus"] != "partial" {
		t.Errorf("sale loanStatus = %v, want partial", saleFields["loanStatus"])
	}
	if saleFields["amountPaid"] != float64(30) || saleFields["amountRemaining"] != float64(50) {
		t.Errorf("sale balances: paid=%v remaining=%v", saleFields["amountPaid"], saleFields["amountRemaining"])
	}
}

func TestListLoansStatusFilter(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLoanService(t)

	a, _ := svc.OpenLoan(ctx, "A", "", "", "", 10)
	if _, err := svc.OpenLoan(ctx, "B", "", "", "", 20); err != nil {
		t.Fatalf("OpenLoan() error: %v", err)
	}
	if _, err := svc.AddPayment(ctx, a.ID, 10, ""); err != nil {
		t.Fatalf("AddPayment() error: %v", err)
	}

	pending, err := svc.ListLoans(ctx, "pending")
	if err != nil {
		t.Fatalf("ListLoans() error: %v", err)
	}
	if len(pending) != 1 || pending[0].CustomerName != "B" {
		t.Errorf("pending loans = %+v", pending)
	}

	all, err := svc.ListLoans(ctx, "")
	if err != nil {
		t.Fatalf("ListLoans() error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all loans = %d, want 2", len(all))
	}
}
