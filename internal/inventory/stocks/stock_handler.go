package stocks

import (
	"context"
	"net/http"

	"assetdesk/internal/query"
	"assetdesk/pkg/auditlog"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"
	"assetdesk/pkg/roles"
	"assetdesk/pkg/security"

	"github.com/gin-gonic/gin"
)

type StockStore interface {
	FetchStockItems(ctx context.Context) ([]models.StockItem, error)
	StockItem(ctx context.Context, id string) (models.StockItem, error)
	AddStockItem(ctx context.Context, req models.StockItemRequest) (models.StockItem, error)
	UpdateStockItem(ctx context.Context, id string, patch models.PatchStockItemRequest) (models.StockItem, error)
	UpdateStockQuantity(ctx context.Context, id string, quantity int) (models.StockItem, error)
	DeleteStockItem(ctx context.Context, id string) (models.StockItem, error)
}

// StockItemView adds the derived low-stock flag to a stock item.
type StockItemView struct {
	models.StockItem
	IsLowStock bool `json:"isLowStock"`
}

func newView(item models.StockItem) StockItemView {
	return StockItemView{StockItem: item, IsLowStock: query.IsLowStock(item)}
}

type StockHandler struct {
	store    StockStore
	AuditLog *auditlog.Auditlog
}

func NewStockHandler(store StockStore, a *auditlog.Auditlog) *StockHandler {
	return &StockHandler{
		store:    store,
		AuditLog: a,
	}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stocks", h.GetStockItems)
	router.POST("/stocks", h.CreateStockItem)
	router.GET("/stocks/categories", h.GetCategories)
	router.GET("/stocks/:id", h.GetStockItem)
	router.PATCH("/stocks/:id", h.UpdateStockItem)
	router.PATCH("/stocks/:id/quantity", h.UpdateQuantity)
	router.DELETE("/stocks/:id", security.Authorize(roles.Manager), h.RemoveStockItem)
}

func (h *StockHandler) GetStockItems(c *gin.Context) {
	var filter query.StockFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}
	if !filter.Level.IsValid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid stock level", "details": string(filter.Level)})
		return
	}

	items, err := h.store.FetchStockItems(c.Request.Context())
	if err != nil {
		custom_error.Respond(c, err, "Failed to fetch stock items")
		return
	}

	filtered := query.FilterStockItems(items, filter)
	views := make([]StockItemView, 0, len(filtered))
	for _, item := range filtered {
		views = append(views, newView(item))
	}

	c.JSON(http.StatusOK, views)
}

func (h *StockHandler) GetCategories(c *gin.Context) {
	items, err := h.store.FetchStockItems(c.Request.Context())
	if err != nil {
		custom_error.Respond(c, err, "Failed to fetch stock items")
		return
	}

	c.JSON(http.StatusOK, query.Categories(items))
}

func (h *StockHandler) GetStockItem(c *gin.Context) {
	item, err := h.store.StockItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		custom_error.Respond(c, err, "Stock item not found")
		return
	}

	c.JSON(http.StatusOK, newView(item))
}

func (h *StockHandler) CreateStockItem(c *gin.Context) {
	var req models.StockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.store.AddStockItem(c.Request.Context(), req)
	if err != nil {
		custom_error.Respond(c, err, "Failed to add stock item")
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"category": item.Category,
			"quantity": item.Quantity,
			"user_id":  c.GetString("userID"),
			"msg":      "Stock item created",
		},
		&item,
	)

	c.JSON(http.StatusCreated, newView(item))
}

func (h *StockHandler) UpdateStockItem(c *gin.Context) {
	var patch models.PatchStockItemRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.store.UpdateStockItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		custom_error.Respond(c, err, "Failed to update stock item")
		return
	}

	go h.AuditLog.Log(
		"update",
		map[string]interface{}{
			"quantity": item.Quantity,
			"user_id":  c.GetString("userID"),
			"msg":      "Stock item updated",
		},
		&item,
	)

	c.JSON(http.StatusOK, newView(item))
}

func (h *StockHandler) UpdateQuantity(c *gin.Context) {
	var req models.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.store.UpdateStockQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		custom_error.Respond(c, err, "Failed to update stock quantity")
		return
	}

	go h.AuditLog.Log(
		"quantity",
		map[string]interface{}{
			"quantity": item.Quantity,
			"user_id":  c.GetString("userID"),
			"msg":      "Stock quantity changed",
		},
		&item,
	)

	c.JSON(http.StatusOK, newView(item))
}

func (h *StockHandler) RemoveStockItem(c *gin.Context) {
	item, err := h.store.DeleteStockItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		custom_error.Respond(c, err, "Failed to delete stock item")
		return
	}

	go h.AuditLog.Log(
		"delete",
		map[string]interface{}{
			"user_id": c.GetString("userID"),
			"msg":     "Stock item removed",
		},
		&item,
	)

	c.Status(http.StatusNoContent)
}
