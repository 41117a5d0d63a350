// Package query derives views over asset and stock collections. Nothing here
// mutates its input or caches results.
package query

import (
	"strings"

	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"
)

// All disables a categorical filter.
const All = "all"

type StockLevel string

const (
	LevelAll      StockLevel = "all"
	LevelLow      StockLevel = "low"
	LevelAdequate StockLevel = "adequate"
)

func (l StockLevel) IsValid() bool {
	switch l {
	case "", LevelAll, LevelLow, LevelAdequate:
		return true
	default:
		return false
	}
}

type AssetFilter struct {
	Query  string `form:"q"`
	Type   string `form:"type"`
	Status string `form:"status"`
}

type StockFilter struct {
	Query    string     `form:"q"`
	Category string     `form:"category"`
	Level    StockLevel `form:"level"`
}

func IsLowStock(item models.StockItem) bool {
	return item.Quantity <= item.MinQuantity
}

func containsFold(value, q string) bool {
	return strings.Contains(strings.ToLower(value), q)
}

func matchesAsset(a models.Asset, q string) bool {
	return containsFold(a.Name, q) ||
		containsFold(a.SerialNumber, q) ||
		containsFold(a.Model, q) ||
		containsFold(a.AssignedTo, q)
}

func matchesStockItem(item models.StockItem, q string) bool {
	return containsFold(item.Name, q) ||
		containsFold(item.Category, q) ||
		containsFold(item.Supplier, q)
}

// SearchAssets matches q case-insensitively against name, serial number, model and assignee.
func SearchAssets(assets []models.Asset, q string) []models.Asset {
	return FilterAssets(assets, AssetFilter{Query: q})
}

// SearchStockItems matches q case-insensitively against name, category and supplier.
func SearchStockItems(items []models.StockItem, q string) []models.StockItem {
	return FilterStockItems(items, StockFilter{Query: q})
}

// IsAll reports whether a categorical filter value matches everything.
func IsAll(value string) bool {
	return value == "" || value == All
}

func FilterAssets(assets []models.Asset, f AssetFilter) []models.Asset {
	q := strings.ToLower(f.Query)
	result := make([]models.Asset, 0, len(assets))

	for _, a := range assets {
		if q != "" && !matchesAsset(a, q) {
			continue
		}
		if !IsAll(f.Type) && a.Type != metadata.AssetType(f.Type) {
			continue
		}
		if !IsAll(f.Status) && a.Status != metadata.Status(f.Status) {
			continue
		}
		result = append(result, a)
	}

	return result
}

func FilterStockItems(items []models.StockItem, f StockFilter) []models.StockItem {
	q := strings.ToLower(f.Query)
	result := make([]models.StockItem, 0, len(items))

	for _, item := range items {
		if q != "" && !matchesStockItem(item, q) {
			continue
		}
		if !IsAll(f.Category) && item.Category != f.Category {
			continue
		}
		switch f.Level {
		case LevelLow:
			if !IsLowStock(item) {
				continue
			}
		case LevelAdequate:
			if IsLowStock(item) {
				continue
			}
		}
		result = append(result, item)
	}

	return result
}

// Categories lists the distinct stock categories in first-seen order.
func Categories(items []models.StockItem) []string {
	seen := make(map[string]struct{}, len(items))
	categories := make([]string, 0)

	for _, item := range items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}

	return categories
}
