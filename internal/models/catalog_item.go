package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ItemStatus enumerates the supported catalog item statuses.
type ItemStatus string

const (
	ItemStatusActive       ItemStatus = "active"
	ItemStatusInactive     ItemStatus = "inactive"
	ItemStatusDiscontinued ItemStatus = "discontinued"
)

// Default stock bounds applied when a bundled record omits them.
const (
	DefaultMinStock = 10
	DefaultMaxStock = 1000
)

// CatalogItem represents one effective catalog record of either kind
// (spare parts or GM parts). Items either originate from the bundled
// dataset (IsStatic) or were created directly in the document store.
// Prices are kept as the raw string the operator typed; use ParsePrice
// for arithmetic.
type CatalogItem struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	DisplayName string `json:"displayName"`
	CompanyName string `json:"companyName"`
	Price       string `json:"price"`

	Stock    int `json:"stock"`
	MinStock int `json:"minStock"`
	MaxStock int `json:"maxStock"`
	Sold     int `json:"sold"`

	Category    string     `json:"category,omitempty"`
	Supplier    string     `json:"supplier,omitempty"`
	Location    string     `json:"location,omitempty"`
	Cost        string     `json:"cost,omitempty"`
	Barcode     string     `json:"barcode,omitempty"`
	Weight      string     `json:"weight,omitempty"`
	Dimensions  string     `json:"dimensions,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      ItemStatus `json:"status,omitempty"`

	LastSold      *time.Time `json:"lastSold,omitempty"`
	LastRestocked *time.Time `json:"lastRestocked,omitempty"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`

	IsStatic  bool `json:"isStatic"`
	IsDeleted bool `json:"isDeleted"`
}

// UnitPrice returns the numeric value of the price string.
func (i *CatalogItem) UnitPrice() float64 {
	return ParsePrice(i.Price)
}

// Fields converts the item into the string-keyed field map shape the
// document store persists. Zero-valued optional fields are omitted via
// the JSON tags.
func (i *CatalogItem) Fields() (map[string]any, error) {
	raw, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// ItemFromFields converts a stored field map back into a CatalogItem.
// Unknown keys are ignored; missing keys take their zero value.
func ItemFromFields(fields map[string]any) (*CatalogItem, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var item CatalogItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ParsePrice derives a numeric value from a currency-formatted price
// string by stripping every character that is not a digit or a decimal
// point. Unparseable input yields 0. The catalog stores prices exactly
// as entered ("$1,200.50", "12 000 so'm"), so all arithmetic goes
// through this helper.
func ParsePrice(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
