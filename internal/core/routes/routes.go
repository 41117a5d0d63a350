package routes

import (
	"os"

	"assetdesk/internal/core/container"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.AuthHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(container.TokenIssuer.JWTMiddleware())

	container.AuthHandler.RegisterProtectedRoutes(protectedRoutes)
	container.AssetHandler.RegisterRoutes(protectedRoutes)
	container.StockHandler.RegisterRoutes(protectedRoutes)
	container.DashboardHandler.RegisterRoutes(protectedRoutes)
	container.UserHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine, container *container.Container) {
	router.GET("/health", container.Health.Handler())
	router.GET("/metrics", container.Metrics.Handler())

	openapiFilePath := "./docs/index.html"
	if _, err := os.Stat(openapiFilePath); err == nil {
		router.GET("/openapi.html", func(c *gin.Context) {
			c.File(openapiFilePath)
		})
		container.Logger.Info("Route /openapi.html registered", zap.String("file", openapiFilePath))
	}
}
