package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
)

// SpreadsheetService imports and exports catalogs as xlsx workbooks.
// Import is row-positional: code, name, company, price, then optional
// stock, category, supplier, barcode, description. A row missing any
// required column is skipped and counted, never fatal.
type SpreadsheetService struct {
	catalogSvc *CatalogService
}

// NewSpreadsheetService constructs a SpreadsheetService.
func NewSpreadsheetService(catalogSvc *CatalogService) *SpreadsheetService {
	return &SpreadsheetService{catalogSvc: catalogSvc}
}

// ImportResult reports how an import went.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Import reads an uploaded workbook and creates one catalog item per
// valid row.
func (s *SpreadsheetService) Import(ctx context.Context, kind string, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &ImportResult{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		code := cell(row, 0)
		name := cell(row, 1)
		company := cell(row, 2)
		price := cell(row, 3)
		if code == "" || name == "" || company == "" || price == "" {
			result.Skipped++
			continue
		}

		req := &CreateItemRequest{
			Code:        code,
			DisplayName: name,
			CompanyName: company,
			Price:       price,
			Category:    cell(row, 5),
			Supplier:    cell(row, 6),
			Barcode:     cell(row, 7),
			Description: cell(row, 8),
		}
		if stock := cell(row, 4); stock != "" {
			if n, err := strconv.Atoi(stock); err == nil {
				req.Stock = n
			}
		}

		if _, err := s.catalogSvc.CreateItem(ctx, kind, req); err != nil {
			log.Warn().Err(err).Int("row", i+1).Str("code", code).Msg("Failed to import row")
			result.Skipped++
			continue
		}
		result.Imported++
	}
	return result, nil
}

// exportHeaders is the fixed column superset every export carries.
var exportHeaders = []string{
	"ID", "Code", "Name", "Company", "Price", "Unit Price", "Stock",
	"Min Stock", "Max Stock", "Sold", "Category", "Supplier", "Location",
	"Cost", "Barcode", "Weight", "Dimensions", "Description", "Status",
	"Bundled",
}

// Export builds a workbook with one row per effective catalog item.
// The caller owns the returned file.
func (s *SpreadsheetService) Export(ctx context.Context, kind string) (*excelize.File, error) {
	items, err := s.catalogSvc.effectiveItems(ctx, kind)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, header := range exportHeaders {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cellName, header)
	}

	for i, item := range items {
		row := i + 2
		values := []any{
			item.ID, item.Code, item.DisplayName, item.CompanyName,
			item.Price, item.UnitPrice(), item.Stock,
			item.MinStock, item.MaxStock, item.Sold, item.Category,
			item.Supplier, item.Location, item.Cost, item.Barcode,
			item.Weight, item.Dimensions, item.Description,
			string(item.Status), item.IsStatic,
		}
		for j, v := range values {
			cellName, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cellName, v)
		}
	}
	return f, nil
}

// isHeaderRow recognizes a leading label row so it is not counted as a
// failed record.
func isHeaderRow(row []string) bool {
	if len(row) < 4 {
		return false
	}
	if models.ParsePrice(cell(row, 3)) != 0 {
		return false
	}
	first := strings.ToLower(cell(row, 0))
	return strings.Contains(first, "kod") || strings.Contains(first, "code")
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
