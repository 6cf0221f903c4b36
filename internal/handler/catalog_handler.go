package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/catalog"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/service"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListItems returns one page of the effective catalog.
// GET /v1/admin/catalogs/:kind/items
func (h *CatalogHandler) ListItems(c *gin.Context) {
	filter := &service.ListItemsFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Company:  c.Query("company"),
		Status:   c.Query("status"),
		LowStock: c.Query("lowStock") == "true",
		SortBy:   c.Query("sortBy"),
		SortDir:  c.DefaultQuery("sortDir", "asc"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 50),
	}

	result, err := h.catalogService.ListItems(c.Request.Context(), c.Param("kind"), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithPagination(c, http.StatusOK, "Items retrieved",
		result.Items, result.Page, result.Limit, result.TotalItems)
}

// GetItem returns a single effective item.
// GET /v1/admin/catalogs/:kind/items/:id
func (h *CatalogHandler) GetItem(c *gin.Context) {
	item, err := h.catalogService.GetItem(c.Request.Context(), c.Param("kind"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Item retrieved", item)
}

// CreateItem adds a new item to a catalog.
// POST /v1/admin/catalogs/:kind/items
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), c.Param("kind"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Item created", item)
}

// UpdateItem applies a partial update to an item.
// PUT /v1/admin/catalogs/:kind/items/:id
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.catalogService.UpdateItem(c.Request.Context(), c.Param("kind"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Item updated", item)
}

// DeleteItem soft-deletes an item.
// DELETE /v1/admin/catalogs/:kind/items/:id
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	if err := h.catalogService.DeleteItem(c.Request.Context(), c.Param("kind"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Item deleted", nil)
}

type quantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// SellItem records units sold against an item.
// POST /v1/admin/catalogs/:kind/items/:id/sell
func (h *CatalogHandler) SellItem(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.catalogService.SellItem(c.Request.Context(), c.Param("kind"), c.Param("id"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Sale recorded", item)
}

// AddStock increases an item's stock.
// POST /v1/admin/catalogs/:kind/items/:id/add-stock
func (h *CatalogHandler) AddStock(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.catalogService.AddStock(c.Request.Context(), c.Param("kind"), c.Param("id"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Stock added", item)
}

// RemoveStock decreases an item's stock, clamping at zero.
// POST /v1/admin/catalogs/:kind/items/:id/remove-stock
func (h *CatalogHandler) RemoveStock(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.catalogService.RemoveStock(c.Request.Context(), c.Param("kind"), c.Param("id"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Stock removed", item)
}

type bulkStockRequest struct {
	Updates []catalog.StockUpdate `json:"updates" binding:"required"`
}

// BulkUpdateStock sets absolute stock levels for many items at once.
// POST /v1/admin/catalogs/:kind/stock/bulk
func (h *CatalogHandler) BulkUpdateStock(c *gin.Context) {
	var req bulkStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	applied, skipped, err := h.catalogService.BulkUpdateStock(c.Request.Context(), c.Param("kind"), req.Updates)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Stock levels updated", gin.H{
		"applied": applied,
		"skipped": skipped,
	})
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
