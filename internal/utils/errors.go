package utils

import "errors"

// Common application errors used across services.
var (
	ErrItemNotFound       = errors.New("ITEM_NOT_FOUND")
	ErrCatalogNotFound    = errors.New("CATALOG_NOT_FOUND")
	ErrInvalidQuantity    = errors.New("INVALID_QUANTITY")
	ErrInvalidStatus      = errors.New("INVALID_STATUS")
	ErrEmptySale          = errors.New("EMPTY_SALE")
	ErrSaleNotFound       = errors.New("SALE_NOT_FOUND")
	ErrLoanNotFound       = errors.New("LOAN_NOT_FOUND")
	ErrLoanAlreadyPaid    = errors.New("LOAN_ALREADY_PAID")
	ErrInvalidPayment     = errors.New("INVALID_PAYMENT")
	ErrPaymentExceedsDebt = errors.New("PAYMENT_EXCEEDS_DEBT")
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
)
