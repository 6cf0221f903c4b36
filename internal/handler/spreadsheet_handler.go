package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/service"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

const maxImportSize = 10 << 20 // 10 MB

type SpreadsheetHandler struct {
	spreadsheetService *service.SpreadsheetService
}

func NewSpreadsheetHandler(spreadsheetService *service.SpreadsheetService) *SpreadsheetHandler {
	return &SpreadsheetHandler{spreadsheetService: spreadsheetService}
}

// Import creates catalog items from an uploaded xlsx file.
// POST /v1/admin/catalogs/:kind/import
func (h *SpreadsheetHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing 'file' upload")
		return
	}
	if fileHeader.Size > maxImportSize {
		utils.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Upload exceeds the 10 MB limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Could not read uploaded file")
		return
	}
	defer f.Close()

	result, err := h.spreadsheetService.Import(c.Request.Context(), c.Param("kind"), f)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Import completed", result)
}

// Export streams the effective catalog as an xlsx workbook.
// GET /v1/admin/catalogs/:kind/export
func (h *SpreadsheetHandler) Export(c *gin.Context) {
	kind := c.Param("kind")
	f, err := h.spreadsheetService.Export(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", kind, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		// Headers are already out; nothing left to do but abort.
		c.Abort()
	}
}
