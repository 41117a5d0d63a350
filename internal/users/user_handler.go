package users

import (
	"context"
	"net/http"

	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"
	"assetdesk/pkg/roles"
	"assetdesk/pkg/security"

	"github.com/gin-gonic/gin"
)

type UserStore interface {
	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, id string) (models.User, error)
	UpdateUserRole(ctx context.Context, id string, role roles.Role) (models.User, error)
}

type UsersHandler struct {
	store UserStore
}

func NewHandler(store UserStore) *UsersHandler {
	return &UsersHandler{store: store}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", security.Authorize(roles.Admin), h.GetUserList)
	router.GET("/users/me", h.GetCurrentUser)
	router.PATCH("/users/:id/role", security.Authorize(roles.Admin), h.UpdateUserRole)
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.store.Users(c.Request.Context())
	if err != nil {
		custom_error.Respond(c, err, "Failed to fetch users")
		return
	}

	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}

	c.JSON(http.StatusOK, views)
}

func (h *UsersHandler) GetCurrentUser(c *gin.Context) {
	id, err := security.GetUserIDFromContext(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "details": err.Error()})
		return
	}

	user, err := h.store.User(c.Request.Context(), id)
	if err != nil {
		custom_error.Respond(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user.View())
}

func (h *UsersHandler) UpdateUserRole(c *gin.Context) {
	var req models.RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	user, err := h.store.UpdateUserRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		custom_error.Respond(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user.View())
}
