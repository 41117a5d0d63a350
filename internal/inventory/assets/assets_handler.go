package assets

import (
	"context"
	"net/http"

	"assetdesk/internal/query"
	"assetdesk/pkg/auditlog"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"
	"assetdesk/pkg/roles"
	"assetdesk/pkg/security"

	"github.com/gin-gonic/gin"
)

type AssetStore interface {
	FetchAssets(ctx context.Context) ([]models.Asset, error)
	Asset(ctx context.Context, id string) (models.Asset, error)
	AddAsset(ctx context.Context, req models.AssetRequest) (models.Asset, error)
	UpdateAsset(ctx context.Context, id string, patch models.PatchAssetRequest) (models.Asset, error)
	DeleteAsset(ctx context.Context, id string) (models.Asset, error)
}

type AssetHandler struct {
	store    AssetStore
	AuditLog *auditlog.Auditlog
}

func NewAssetHandler(store AssetStore, a *auditlog.Auditlog) *AssetHandler {
	return &AssetHandler{
		store:    store,
		AuditLog: a,
	}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/assets", h.GetAssets)
	router.POST("/assets", h.CreateAsset)
	router.GET("/assets/:id", h.GetAsset)
	router.PATCH("/assets/:id", h.UpdateAsset)
	router.DELETE("/assets/:id", security.Authorize(roles.Manager), h.RemoveAsset)
}

func (h *AssetHandler) GetAssets(c *gin.Context) {
	var filter query.AssetFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	if !query.IsAll(filter.Type) && !metadata.AssetType(filter.Type).IsValid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset type", "details": filter.Type})
		return
	}
	if !query.IsAll(filter.Status) && !metadata.Status(filter.Status).IsValid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid asset status", "details": filter.Status})
		return
	}

	assets, err := h.store.FetchAssets(c.Request.Context())
	if err != nil {
		custom_error.Respond(c, err, "Failed to fetch assets")
		return
	}

	c.JSON(http.StatusOK, query.FilterAssets(assets, filter))
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.store.Asset(c.Request.Context(), c.Param("id"))
	if err != nil {
		custom_error.Respond(c, err, "Asset not found")
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req models.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.store.AddAsset(c.Request.Context(), req)
	if err != nil {
		custom_error.Respond(c, err, "Failed to add asset")
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"serial_number": asset.SerialNumber,
			"type":          asset.Type,
			"status":        asset.Status,
			"user_id":       c.GetString("userID"),
			"msg":           "Asset created successfully",
		},
		&asset,
	)

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var patch models.PatchAssetRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	asset, err := h.store.UpdateAsset(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		custom_error.Respond(c, err, "Failed to update asset")
		return
	}

	go h.AuditLog.Log(
		"update",
		map[string]interface{}{
			"status":  asset.Status,
			"user_id": c.GetString("userID"),
			"msg":     "Asset updated",
		},
		&asset,
	)

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) RemoveAsset(c *gin.Context) {
	asset, err := h.store.DeleteAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		custom_error.Respond(c, err, "Failed to delete asset")
		return
	}

	go h.AuditLog.Log(
		"delete",
		map[string]interface{}{
			"serial_number": asset.SerialNumber,
			"user_id":       c.GetString("userID"),
			"msg":           "Asset removed",
		},
		&asset,
	)

	c.Status(http.StatusNoContent)
}
