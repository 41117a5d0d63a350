package query

import (
	"sort"

	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"
)

type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// AssetsByType counts assets per type in a fixed type order, leaving out empty types.
func AssetsByType(assets []models.Asset) []Bucket {
	counts := make(map[metadata.AssetType]int, len(metadata.AssetTypes))
	for _, a := range assets {
		counts[a.Type]++
	}

	buckets := make([]Bucket, 0, len(metadata.AssetTypes))
	for _, t := range metadata.AssetTypes {
		if counts[t] > 0 {
			buckets = append(buckets, Bucket{Name: t.Label(), Value: counts[t]})
		}
	}

	return buckets
}

// StockByCategory sums quantities per category, largest first. Ties keep first-seen order.
func StockByCategory(items []models.StockItem) []Bucket {
	buckets := make([]Bucket, 0)
	index := make(map[string]int)

	for _, item := range items {
		if i, ok := index[item.Category]; ok {
			buckets[i].Value += item.Quantity
			continue
		}
		index[item.Category] = len(buckets)
		buckets = append(buckets, Bucket{Name: item.Category, Value: item.Quantity})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Value > buckets[j].Value
	})

	return buckets
}

func LowStockItems(items []models.StockItem, limit int) []models.StockItem {
	low := FilterStockItems(items, StockFilter{Level: LevelLow})
	if limit > 0 && len(low) > limit {
		low = low[:limit]
	}
	return low
}

// RecentAssets returns up to limit assets, newest first.
func RecentAssets(assets []models.Asset, limit int) []models.Asset {
	recent := make([]models.Asset, len(assets))
	copy(recent, assets)

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
