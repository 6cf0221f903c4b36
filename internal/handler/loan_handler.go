package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/service"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

type LoanHandler struct {
	loanService *service.LoanService
}

func NewLoanHandler(loanService *service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// ListLoans returns all loans, optionally filtered by status.
// GET /v1/admin/loans
func (h *LoanHandler) ListLoans(c *gin.Context) {
	loans, err := h.loanService.ListLoans(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Loans retrieved", loans)
}

// GetLoan returns a single loan.
// GET /v1/admin/loans/:id
func (h *LoanHandler) GetLoan(c *gin.Context) {
	loan, err := h.loanService.GetLoan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Loan retrieved", loan)
}

type paymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Note   string  `json:"note"`
}

// AddPayment applies a payment against a loan.
// POST /v1/admin/loans/:id/payments
func (h *LoanHandler) AddPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	loan, err := h.loanService.AddPayment(c.Request.Context(), c.Param("id"), req.Amount, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Payment recorded", loan)
}
