package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/docstore"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

// SalesService handles checkout and sale history. A sale snapshots the
// catalog items it sells, so the receipt survives later catalog edits
// and deletions unchanged.
type SalesService struct {
	sales      docstore.Store
	catalogSvc *CatalogService
	loanSvc    *LoanService
}

// NewSalesService constructs a SalesService.
func NewSalesService(sales docstore.Store, catalogSvc *CatalogService, loanSvc *LoanService) *SalesService {
	return &SalesService{sales: sales, catalogSvc: catalogSvc, loanSvc: loanSvc}
}

// CheckoutLine is one item being sold.
type CheckoutLine struct {
	Kind     string `json:"kind" binding:"required"`
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// CheckoutRequest represents one checkout event.
type CheckoutRequest struct {
	Items         []CheckoutLine `json:"items" binding:"required"`
	CustomerName  string         `json:"customerName"`
	CustomerPhone string         `json:"customerPhone"`
	IsLoan        bool           `json:"isLoan"`
}

// Checkout records a sale: it snapshots each line from the live
// catalog, persists the transaction, routes the stock/sold deltas to
// each item, and opens a loan when the sale is on credit.
//
// The sale insert, the per-line sell writes, and the loan insert are
// separate store writes with no transaction around them; a failure
// partway through leaves the earlier writes in place and surfaces the
// error.
func (s *SalesService) Checkout(ctx context.Context, req *CheckoutRequest) (*models.SaleTransaction, error) {
	if len(req.Items) == 0 {
		return nil, utils.ErrEmptySale
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, utils.ErrInvalidQuantity
		}
	}

	// Snapshot every line first so a missing item aborts the checkout
	// before anything is written.
	lines := make([]models.SaleItem, 0, len(req.Items))
	var total float64
	for _, line := range req.Items {
		item, err := s.catalogSvc.GetItem(ctx, line.Kind, line.ItemID)
		if err != nil {
			return nil, err
		}
		price := item.UnitPrice()
		lines = append(lines, models.SaleItem{
			ProductID: item.ID,
			Kind:      line.Kind,
			Code:      item.Code,
			Name:      item.DisplayName,
			Company:   item.CompanyName,
			Price:     price,
			Quantity:  line.Quantity,
			Total:     price * float64(line.Quantity),
		})
		total += price * float64(line.Quantity)
	}

	now := time.Now().UTC()
	sale := &models.SaleTransaction{
		ReceiptNo:    utils.GenerateReceiptNo(now),
		Items:        lines,
		TotalAmount:  total,
		CustomerName: req.CustomerName,
		SoldAt:       now,
		CreatedAt:    now,
	}
	if req.IsLoan {
		sale.IsLoan = true
		sale.LoanStatus = models.LoanStatusPending
		sale.AmountPaid = 0
		sale.AmountRemaining = total
	} else {
		sale.AmountPaid = total
		sale.AmountRemaining = 0
	}

	fields, err := sale.Fields()
	if err != nil {
		return nil, err
	}
	delete(fields, "id")

	docID, err := s.sales.Insert(ctx, fields)
	if err != nil {
		return nil, err
	}
	sale.ID = docID

	for _, line := range req.Items {
		if _, err := s.catalogSvc.SellItem(ctx, line.Kind, line.ItemID, line.Quantity); err != nil {
			log.Error().Err(err).
				Str("sale_id", sale.ID).
				Str("item_id", line.ItemID).
				Msg("Sale recorded but stock update failed")
			return nil, err
		}
	}

	if req.IsLoan {
		if _, err := s.loanSvc.OpenLoan(ctx, req.CustomerName, req.CustomerPhone, sale.ID, sale.ReceiptNo, total); err != nil {
			log.Error().Err(err).Str("sale_id", sale.ID).Msg("Sale recorded but loan creation failed")
			return nil, err
		}
	}

	return sale, nil
}

// ListSalesFilter holds filters for the sale history.
type ListSalesFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	LoansOnly bool
	Page      int
	Limit     int
}

// ListSalesResult contains a paginated sale listing.
type ListSalesResult struct {
	Sales      []models.SaleTransaction
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// ListSales returns one page of the sale history, newest first.
func (s *SalesService) ListSales(ctx context.Context, filter *ListSalesFilter) (*ListSalesResult, error) {
	all, err := s.loadSales(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.SaleTransaction, 0, len(all))
	for _, sale := range all {
		if filter.StartDate != nil && sale.SoldAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && sale.SoldAt.After(*filter.EndDate) {
			continue
		}
		if filter.LoansOnly && !sale.IsLoan {
			continue
		}
		filtered = append(filtered, sale)
	}

	page, limit := filter.Page, filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	total := len(filtered)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &ListSalesResult{
		Sales:      filtered[start:end],
		TotalItems: total,
		TotalPages: totalPages,
		Page:       page,
		Limit:      limit,
	}, nil
}

// GetSale returns one sale by id.
func (s *SalesService) GetSale(ctx context.Context, id string) (*models.SaleTransaction, error) {
	docs, err := s.sales.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if doc.DocID != id {
			continue
		}
		sale, err := models.SaleFromFields(doc.Fields)
		if err != nil {
			return nil, err
		}
		sale.ID = doc.DocID
		return sale, nil
	}
	return nil, utils.ErrSaleNotFound
}

// TopItem is one row of the best-sellers breakdown.
type TopItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// SalesStats summarizes the sale history for the dashboard.
type SalesStats struct {
	TotalSales      int       `json:"totalSales"`
	TotalRevenue    float64   `json:"totalRevenue"`
	ItemsSold       int       `json:"itemsSold"`
	LoanSales       int       `json:"loanSales"`
	LoanOutstanding float64   `json:"loanOutstanding"`
	TopItems        []TopItem `json:"topItems"`
}

// GetStats computes sale statistics over an optional date range.
func (s *SalesService) GetStats(ctx context.Context, startDate, endDate *time.Time) (*SalesStats, error) {
	all, err := s.loadSales(ctx)
	if err != nil {
		return nil, err
	}

	stats := &SalesStats{}
	byProduct := make(map[string]*TopItem)
	for _, sale := range all {
		if startDate != nil && sale.SoldAt.Before(*startDate) {
			continue
		}
		if endDate != nil && sale.SoldAt.After(*endDate) {
			continue
		}
		stats.TotalSales++
		stats.TotalRevenue += sale.TotalAmount
		if sale.IsLoan {
			stats.LoanSales++
			stats.LoanOutstanding += sale.AmountRemaining
		}
		for _, line := range sale.Items {
			stats.ItemsSold += line.Quantity
			top, ok := byProduct[line.ProductID]
			if !ok {
				top = &TopItem{ProductID: line.ProductID, Name: line.Name}
				byProduct[line.ProductID] = top
			}
			top.Quantity += line.Quantity
			top.Total += line.Total
		}
	}

	tops := make([]TopItem, 0, len(byProduct))
	for _, t := range byProduct {
		tops = append(tops, *t)
	}
	sort.Slice(tops, func(a, b int) bool { return tops[a].Quantity > tops[b].Quantity })
	if len(tops) > 5 {
		tops = tops[:5]
	}
	stats.TopItems = tops

	return stats, nil
}

func (s *SalesService) loadSales(ctx context.Context) ([]models.SaleTransaction, error) {
	docs, err := s.sales.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	sales := make([]models.SaleTransaction, 0, len(docs))
	for _, doc := range docs {
		sale, err := models.SaleFromFields(doc.Fields)
		if err != nil {
			log.Warn().Err(err).Str("docId", doc.DocID).Msg("Skipping malformed sale document")
			continue
		}
		if sale.ID == "" {
			sale.ID = doc.DocID
		}
		sales = append(sales, *sale)
	}
	return sales, nil
}
