package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

// respondError maps known service errors to HTTP status and API error
// codes; everything else becomes a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrCatalogNotFound):
		utils.Error(c, http.StatusNotFound, "CATALOG_NOT_FOUND", err.Error())
	case errors.Is(err, utils.ErrItemNotFound):
		utils.Error(c, http.StatusNotFound, "ITEM_NOT_FOUND", err.Error())
	case errors.Is(err, utils.ErrSaleNotFound):
		utils.Error(c, http.StatusNotFound, "SALE_NOT_FOUND", err.Error())
	case errors.Is(err, utils.ErrLoanNotFound):
		utils.Error(c, http.StatusNotFound, "LOAN_NOT_FOUND", err.Error())
	case errors.Is(err, utils.ErrInvalidQuantity):
		utils.Error(c, http.StatusBadRequest, "INVALID_QUANTITY", err.Error())
	case errors.Is(err, utils.ErrInvalidStatus):
		utils.Error(c, http.StatusBadRequest, "INVALID_STATUS", "status must be 'active', 'inactive' or 'discontinued'")
	case errors.Is(err, utils.ErrEmptySale):
		utils.Error(c, http.StatusBadRequest, "EMPTY_SALE", err.Error())
	case errors.Is(err, utils.ErrLoanAlreadyPaid):
		utils.Error(c, http.StatusConflict, "LOAN_ALREADY_PAID", err.Error())
	case errors.Is(err, utils.ErrInvalidPayment):
		utils.Error(c, http.StatusBadRequest, "INVALID_PAYMENT", err.Error())
	case errors.Is(err, utils.ErrPaymentExceedsDebt):
		utils.Error(c, http.StatusBadRequest, "PAYMENT_EXCEEDS_DEBT", err.Error())
	default:
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
