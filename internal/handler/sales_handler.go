package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/service"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

type SalesHandler struct {
	salesService *service.SalesService
}

func NewSalesHandler(salesService *service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// Checkout records a sale transaction.
// POST /v1/admin/sales
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sale, err := h.salesService.Checkout(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Sale recorded", sale)
}

// ListSales returns one page of the sale history.
// GET /v1/admin/sales
func (h *SalesHandler) ListSales(c *gin.Context) {
	filter := &service.ListSalesFilter{
		LoansOnly: c.Query("loansOnly") == "true",
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 50),
	}
	filter.StartDate = queryDate(c, "startDate")
	filter.EndDate = queryDate(c, "endDate")

	result, err := h.salesService.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithPagination(c, http.StatusOK, "Sales retrieved",
		result.Sales, result.Page, result.Limit, result.TotalItems)
}

// GetSale returns a single sale.
// GET /v1/admin/sales/:id
func (h *SalesHandler) GetSale(c *gin.Context) {
	sale, err := h.salesService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Sale retrieved", sale)
}

// GetStats returns aggregate sale statistics.
// GET /v1/admin/sales/stats
func (h *SalesHandler) GetStats(c *gin.Context) {
	stats, err := h.salesService.GetStats(c.Request.Context(), queryDate(c, "startDate"), queryDate(c, "endDate"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Statistics retrieved", stats)
}

// queryDate parses an RFC3339 or YYYY-MM-DD query param, nil when absent
// or malformed.
func queryDate(c *gin.Context, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}
