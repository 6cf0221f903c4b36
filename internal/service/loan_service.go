package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/docstore"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

// LoanService tracks customer credit extended against sales. A loan
// moves pending -> partial -> paid as payments are applied; the linked
// sale document mirrors the loan balances so receipts show repayment
// state.
type LoanService struct {
	loans docstore.Store
	sales docstore.Store
}

// NewLoanService constructs a LoanService.
func NewLoanService(loans, sales docstore.Store) *LoanService {
	return &LoanService{loans: loans, sales: sales}
}

// OpenLoan records a new loan for the full sale amount.
func (s *LoanService) OpenLoan(ctx context.Context, customerName, customerPhone, transactionID, receiptNo string, totalAmount float64) (*models.LoanRecord, error) {
	now := time.Now().UTC()
	loan := &models.LoanRecord{
		CustomerName:    customerName,
		CustomerPhone:   customerPhone,
		TransactionID:   transactionID,
		ReceiptNo:       receiptNo,
		TotalAmount:     totalAmount,
		AmountPaid:      0,
		AmountRemaining: totalAmount,
		Status:          models.LoanStatusPending,
		PaymentHistory:  []models.LoanPayment{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	fields, err := loan.Fields()
	if err != nil {
		return nil, err
	}
	delete(fields, "id")

	docID, err := s.loans.Insert(ctx, fields)
	if err != nil {
		return nil, err
	}
	loan.ID = docID
	return loan, nil
}

// AddPayment applies a payment to a loan: balances are recomputed, the
// status is re-derived, the payment is appended to the history, and the
// linked sale mirrors the new balances.
//
// The loan write and the sale mirror are two separate store writes. If
// the mirror fails after the loan succeeded the error propagates and
// the two records stay inconsistent until the next payment; there is no
// rollback.
func (s *LoanService) AddPayment(ctx context.Context, loanID string, amount float64, note string) (*models.LoanRecord, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status == models.LoanStatusPaid {
		return nil, utils.ErrLoanAlreadyPaid
	}
	if amount <= 0 {
		return nil, utils.ErrInvalidPayment
	}
	if amount > loan.AmountRemaining {
		return nil, utils.ErrPaymentExceedsDebt
	}

	now := time.Now().UTC()
	loan.AmountPaid += amount
	loan.AmountRemaining = loan.TotalAmount - loan.AmountPaid
	if loan.AmountRemaining < 0 {
		loan.AmountRemaining = 0
	}
	loan.Status = models.DeriveLoanStatus(loan.AmountRemaining, loan.AmountPaid)
	loan.PaymentHistory = append(loan.PaymentHistory, models.LoanPayment{
		Amount: amount,
		Date:   now,
		Note:   note,
	})
	loan.UpdatedAt = now

	if err := s.loans.Update(ctx, loan.ID, map[string]any{
		"amountPaid":      loan.AmountPaid,
		"amountRemaining": loan.AmountRemaining,
		"status":          loan.Status,
		"paymentHistory":  loan.PaymentHistory,
		"updatedAt":       now,
	}); err != nil {
		return nil, err
	}

	if loan.TransactionID != "" {
		if err := s.sales.Update(ctx, loan.TransactionID, map[string]any{
			"loanStatus":      loan.Status,
			"amountPaid":      loan.AmountPaid,
			"amountRemaining": loan.AmountRemaining,
		}); err != nil {
			log.Error().Err(err).
				Str("loan_id", loan.ID).
				Str("transaction_id", loan.TransactionID).
				Msg("Loan updated but sale mirror write failed")
			return nil, err
		}
	}

	return loan, nil
}

// ListLoans returns all loans, newest first, optionally filtered by status.
func (s *LoanService) ListLoans(ctx context.Context, status string) ([]models.LoanRecord, error) {
	docs, err := s.loans.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	loans := make([]models.LoanRecord, 0, len(docs))
	for _, doc := range docs {
		loan, err := models.LoanFromFields(doc.Fields)
		if err != nil {
			log.Warn().Err(err).Str("docId", doc.DocID).Msg("Skipping malformed loan document")
			continue
		}
		if loan.ID == "" {
			loan.ID = doc.DocID
		}
		if status != "" && string(loan.Status) != status {
			continue
		}
		loans = append(loans, *loan)
	}
	return loans, nil
}

// GetLoan returns one loan by id.
func (s *LoanService) GetLoan(ctx context.Context, id string) (*models.LoanRecord, error) {
	docs, err := s.loans.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if doc.DocID != id {
			continue
		}
		loan, err := models.LoanFromFields(doc.Fields)
		if err != nil {
			return nil, err
		}
		loan.ID = doc.DocID
		return loan, nil
	}
	return nil, utils.ErrLoanNotFound
}
