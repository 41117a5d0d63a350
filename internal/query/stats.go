package query

import (
	"math"

	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"
)

type Stats struct {
	TotalAssets       int `json:"totalAssets"`
	AvailableAssets   int `json:"availableAssets"`
	AssignedAssets    int `json:"assignedAssets"`
	MaintenanceAssets int `json:"maintenanceAssets"`
	RetiredAssets     int `json:"retiredAssets"`
	TotalStockItems   int `json:"totalStockItems"`
	LowStockItems     int `json:"lowStockItems"`
}

type Trend struct {
	Value      int  `json:"value"`
	IsPositive bool `json:"isPositive"`
}

type Trends struct {
	TotalAssets       Trend `json:"totalAssets"`
	AvailableAssets   Trend `json:"availableAssets"`
	AssignedAssets    Trend `json:"assignedAssets"`
	MaintenanceAssets Trend `json:"maintenanceAssets"`
	TotalStockItems   Trend `json:"totalStockItems"`
	LowStockItems     Trend `json:"lowStockItems"`
}

func Compute(assets []models.Asset, items []models.StockItem) Stats {
	stats := Stats{
		TotalAssets:     len(assets),
		TotalStockItems: len(items),
	}

	for _, a := range assets {
		switch a.Status {
		case metadata.StatusAvailable:
			stats.AvailableAssets++
		case metadata.StatusAssigned:
			stats.AssignedAssets++
		case metadata.StatusMaintenance:
			stats.MaintenanceAssets++
		case metadata.StatusRetired:
			stats.RetiredAssets++
		}
	}

	for _, item := range items {
		if IsLowStock(item) {
			stats.LowStockItems++
		}
	}

	return stats
}

// CalculateTrend returns the rounded percentage change from previous to current.
// A zero previous value yields 0% positive.
func CalculateTrend(current, previous int) Trend {
	if previous == 0 {
		return Trend{Value: 0, IsPositive: true}
	}

	change := float64(current-previous) / float64(previous) * 100
	// half-up rounding, so -2.5 becomes -2
	rounded := math.Floor(change + 0.5)

	return Trend{
		Value:      int(math.Abs(rounded)),
		IsPositive: change >= 0,
	}
}

func ComputeTrends(current, previous Stats) Trends {
	return Trends{
		TotalAssets:       CalculateTrend(current.TotalAssets, previous.TotalAssets),
		AvailableAssets:   CalculateTrend(current.AvailableAssets, previous.AvailableAssets),
		AssignedAssets:    CalculateTrend(current.AssignedAssets, previous.AssignedAssets),
		MaintenanceAssets: CalculateTrend(current.MaintenanceAssets, previous.MaintenanceAssets),
		TotalStockItems:   CalculateTrend(current.TotalStockItems, previous.TotalStockItems),
		LowStockItems:     CalculateTrend(current.LowStockItems, previous.LowStockItems),
	}
}
