package dashboard

import (
	"context"
	"net/http"
	"sync"

	"assetdesk/internal/query"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"

	"github.com/gin-gonic/gin"
)

const (
	recentAssetsLimit = 3
	lowStockLimit     = 3
)

type Source interface {
	FetchAssets(ctx context.Context) ([]models.Asset, error)
	FetchStockItems(ctx context.Context) ([]models.StockItem, error)
}

type Overview struct {
	Stats           query.Stats        `json:"stats"`
	Trends          query.Trends       `json:"trends"`
	AssetsByType    []query.Bucket     `json:"assetsByType"`
	StockByCategory []query.Bucket     `json:"stockByCategory"`
	RecentAssets    []models.Asset     `json:"recentAssets"`
	LowStockItems   []models.StockItem `json:"lowStockItems"`
}

// Handler serves the dashboard. Trends compare against the stats of the
// previous response; the first response compares against itself.
type Handler struct {
	source Source

	mu       sync.Mutex
	previous *query.Stats
}

func NewHandler(source Source) *Handler {
	return &Handler{source: source}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetOverview)
}

func (h *Handler) GetOverview(c *gin.Context) {
	ctx := c.Request.Context()

	assets, err := h.source.FetchAssets(ctx)
	if err != nil {
		custom_error.Respond(c, err, "Failed to fetch assets")
		return
	}
	items, err := h.source.FetchStockItems(ctx)
	if err != nil {
		custom_error.Respond(c, err, "Failed to fetch stock items")
		return
	}

	c.JSON(http.StatusOK, h.overview(assets, items))
}

func (h *Handler) overview(assets []models.Asset, items []models.StockItem) Overview {
	stats := query.Compute(assets, items)

	h.mu.Lock()
	previous := stats
	if h.previous != nil {
		previous = *h.previous
	}
	h.previous = &stats
	h.mu.Unlock()

	return Overview{
		Stats:           stats,
		Trends:          query.ComputeTrends(stats, previous),
		AssetsByType:    query.AssetsByType(assets),
		StockByCategory: query.StockByCategory(items),
		RecentAssets:    query.RecentAssets(assets, recentAssetsLimit),
		LowStockItems:   query.LowStockItems(items, lowStockLimit),
	}
}
