package service

import (
	"context"
	"sort"
	"strings"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/cache"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/catalog"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

// CatalogService fronts all catalog kinds. The document store only
// supports reading a whole collection, so filtering, sorting, and
// pagination happen here, over the resolved list.
type CatalogService struct {
	catalogs map[string]*catalog.Catalog
	cache    *cache.CatalogCache
}

// NewCatalogService constructs a CatalogService over the given catalogs.
func NewCatalogService(itemCache *cache.CatalogCache, catalogs ...*catalog.Catalog) *CatalogService {
	byKind := make(map[string]*catalog.Catalog, len(catalogs))
	for _, c := range catalogs {
		byKind[c.Kind()] = c
	}
	return &CatalogService{catalogs: byKind, cache: itemCache}
}

// Catalog returns the catalog for a kind tag.
func (s *CatalogService) Catalog(kind string) (*catalog.Catalog, error) {
	c, ok := s.catalogs[kind]
	if !ok {
		return nil, utils.ErrCatalogNotFound
	}
	return c, nil
}

// Kinds lists the registered catalog kinds.
func (s *CatalogService) Kinds() []string {
	kinds := make([]string, 0, len(s.catalogs))
	for k := range s.catalogs {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// effectiveItems returns the resolved list for a kind, via the cache
// when it has a fresh copy.
func (s *CatalogService) effectiveItems(ctx context.Context, kind string) ([]models.CatalogItem, error) {
	c, err := s.Catalog(kind)
	if err != nil {
		return nil, err
	}
	if items, ok := s.cache.Get(ctx, kind); ok {
		return items, nil
	}
	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, kind, items)
	return items, nil
}

// ListItemsFilter holds filters for catalog listings.
type ListItemsFilter struct {
	Search   string
	Category string
	Company  string
	Status   string
	LowStock bool
	SortBy   string // name, code, price, stock, sold
	SortDir  string // asc or desc
	Page     int
	Limit    int
}

// ListItemsResult contains a paginated catalog listing.
type ListItemsResult struct {
	Items      []models.CatalogItem
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// ListItems returns one page of the effective catalog after filtering
// and sorting.
func (s *CatalogService) ListItems(ctx context.Context, kind string, filter *ListItemsFilter) (*ListItemsResult, error) {
	items, err := s.effectiveItems(ctx, kind)
	if err != nil {
		return nil, err
	}

	filtered := filterItems(items, filter)
	sortItems(filtered, filter.SortBy, filter.SortDir)

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

	return &ListItemsResult{
		Items:      filtered[start:end],
		TotalItems: total,
		TotalPages: totalPages,
		Page:       page,
		Limit:      limit,
	}, nil
}

// GetItem returns the effective item for id.
func (s *CatalogService) GetItem(ctx context.Context, kind, id string) (*models.CatalogItem, error) {
	items, err := s.effectiveItems(ctx, kind)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, utils.ErrItemNotFound
}

// CreateItemRequest represents the request to create a new catalog item.
type CreateItemRequest struct {
	Code        string `json:"code" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
	CompanyName string `json:"companyName" binding:"required"`
	Price       string `json:"price" binding:"required"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"minStock"`
	MaxStock    int    `json:"maxStock"`
	Category    string `json:"category"`
	Supplier    string `json:"supplier"`
	Location    string `json:"location"`
	Cost        string `json:"cost"`
	Barcode     string `json:"barcode"`
	Weight      string `json:"weight"`
	Dimensions  string `json:"dimensions"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateItemRequest represents a partial update. Only non-nil fields are
// written; absent fields never reach the store.
type UpdateItemRequest struct {
	Code        *string `json:"code"`
	DisplayName *string `json:"displayName"`
	CompanyName *string `json:"companyName"`
	Price       *string `json:"price"`
	Stock       *int    `json:"stock"`
	MinStock    *int    `json:"minStock"`
	MaxStock    *int    `json:"maxStock"`
	Category    *string `json:"category"`
	Supplier    *string `json:"supplier"`
	Location    *string `json:"location"`
	Cost        *string `json:"cost"`
	Barcode     *string `json:"barcode"`
	Weight      *string `json:"weight"`
	Dimensions  *string `json:"dimensions"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// CreateItem creates a new item in the given catalog.
func (s *CatalogService) CreateItem(ctx context.Context, kind string, req *CreateItemRequest) (*models.CatalogItem, error) {
	c, err := s.Catalog(kind)
	if err != nil {
		return nil, err
	}
	if req.Status != "" && !validStatus(req.Status) {
		return nil, utils.ErrInvalidStatus
	}

	item := &models.CatalogItem{
		Code:        req.Code,
		DisplayName: req.DisplayName,
		CompanyName: req.CompanyName,
		Price:       req.Price,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		Category:    req.Category,
		Supplier:    req.Supplier,
		Location:    req.Location,
		Cost:        req.Cost,
		Barcode:     req.Barcode,
		Weight:      req.Weight,
		Dimensions:  req.Dimensions,
		Description: req.Description,
		Status:      models.ItemStatus(req.Status),
	}

	created, err := c.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, kind)
	return created, nil
}

// UpdateItem applies a partial update to the effective item for id.
func (s *CatalogService) UpdateItem(ctx context.Context, kind, id string, req *UpdateItemRequest) (*models.CatalogItem, error) {
	c, err := s.Catalog(kind)
	if err != nil {
		return nil, err
	}
	if req.Status != nil && !validStatus(*req.Status) {
		return nil, utils.ErrInvalidStatus
	}

	changes := map[string]any{}
	putString(changes, "code", req.Code)
	putString(changes, "displayName", req.DisplayName)
	putString(changes, "companyName", req.CompanyName)
	putString(changes, "price", req.Price)
	putInt(changes, "stock", req.Stock)
	putInt(changes, "minStock", req.MinStock)
	putInt(changes, "maxStock", req.MaxStock)
	putString(changes, "category", req.Category)
	putString(changes, "supplier", req.Supplier)
	putString(changes, "location", req.Location)
	putString(changes, "cost", req.Cost)
	putString(changes, "barcode", req.Barcode)
	putString(changes, "weight", req.Weight)
	putString(changes, "dimensions", req.Dimensions)
	putString(changes, "description", req.Description)
	putString(changes, "status", req.Status)

	updated, err := c.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, kind)
	return updated, nil
}

// DeleteItem soft-deletes the effective item for id.
func (s *CatalogService) DeleteItem(ctx context.Context, kind, id string) error {
	c, err := s.Catalog(kind)
	if err != nil {
		return err
	}
	if err := c.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, kind)
	return nil
}

// SellItem records qty units sold against the effective item.
func (s *CatalogService) SellItem(ctx context.Context, kind, id string, qty int) (*models.CatalogItem, error) {
	if qty <= 0 {
		return nil, utils.ErrInvalidQuantity
	}
	c, err := s.Catalog(kind)
	if err != nil {
		return nil, err
	}
	item, err := c.Sell(ctx, id, qty)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, kind)
	return item, nil
}

// AddStock increases stock for the effective item.
func (s *CatalogService) AddStock(ctx context.Context, kind, id string, qty int) (*models.CatalogItem, error) {
	if qty <= 0 {
		return nil, utils.ErrInvalidQuantity
	}
	c, err := s.Catalog(kind)
	if err != nil {
		return nil, err
	}
	item, err := c.AddStock(ctx, id, qty)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, kind)
	return item, nil
}

// RemoveStock decreases stock for the effective item, clamping at zero.
func (s *CatalogService) RemoveStock(ctx context.Context, kind, id string, qty int) (*models.CatalogItem, error) {
	if qty <= 0 {
		return nil, utils.ErrInvalidQuantity
	}
	c, err := s.Catalog(kind)
	if err != nil {
		return nil, err
	}
	item, err := c.RemoveStock(ctx, id, qty)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, kind)
	return item, nil
}

// BulkUpdateStock applies absolute stock levels to many items.
func (s *CatalogService) BulkUpdateStock(ctx context.Context, kind string, updates []catalog.StockUpdate) (applied, skipped int, err error) {
	c, err := s.Catalog(kind)
	if err != nil {
		return 0, 0, err
	}
	applied, skipped, err = c.BulkUpdateStock(ctx, updates)
	if err != nil {
		return applied, skipped, err
	}
	s.cache.Invalidate(ctx, kind)
	return applied, skipped, nil
}

func validStatus(s string) bool {
	switch models.ItemStatus(s) {
	case models.ItemStatusActive, models.ItemStatusInactive, models.ItemStatusDiscontinued:
		return true
	}
	return false
}

func putString(changes map[string]any, key string, v *string) {
	if v != nil {
		changes[key] = *v
	}
}

func putInt(changes map[string]any, key string, v *int) {
	if v != nil {
		changes[key] = *v
	}
}

func filterItems(items []models.CatalogItem, filter *ListItemsFilter) []models.CatalogItem {
	if filter == nil {
		return append([]models.CatalogItem(nil), items...)
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.DisplayName), search) &&
			!strings.Contains(strings.ToLower(item.Code), search) &&
			!strings.Contains(strings.ToLower(item.Barcode), search) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(item.Category, filter.Category) {
			continue
		}
		if filter.Company != "" && !strings.EqualFold(item.CompanyName, filter.Company) {
			continue
		}
		if filter.Status != "" && string(item.Status) != filter.Status {
			continue
		}
		if filter.LowStock && item.Stock > item.MinStock {
			continue
		}
		out = append(out, item)
	}
	return out
}

func sortItems(items []models.CatalogItem, by, dir string) {
	if by == "" {
		return
	}
	desc := dir == "desc"
	sort.SliceStable(items, func(a, b int) bool {
		var less bool
		switch by {
		case "name":
			less = strings.ToLower(items[a].DisplayName) < strings.ToLower(items[b].DisplayName)
		case "code":
			less = items[a].Code < items[b].Code
		case "price":
			less = items[a].UnitPrice() < items[b].UnitPrice()
		case "stock":
			less = items[a].Stock < items[b].Stock
		case "sold":
			less = items[a].Sold < items[b].Sold
		default:
			return false
		}
		if desc {
			return !less
		}
		return less
	})
}
