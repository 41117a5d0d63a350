package security

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"assetdesk/internal/rate_limiter"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const stateCookie = "oauth_state"

type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)
	SocialLogin(ctx context.Context, provider string, external models.ExternalUser) (models.User, error)
	ResetPassword(ctx context.Context, email, origin string) error
	CompletePasswordReset(ctx context.Context, token, email, newPassword string) error
	Logout()
	Session() models.Session
}

type OAuthProvider interface {
	AuthURL(name, state string) (string, error)
	Exchange(ctx context.Context, name, code string) (models.ExternalUser, error)
}

type AuthHandler struct {
	auth        AuthService
	oauth       OAuthProvider
	tokens      *TokenIssuer
	rateLimiter *rate_limiter.RateLimiter
	origin      string
}

// NewAuthHandler builds the auth endpoints. origin is the public app URL used
// in reset links; when empty the request's Origin header is used instead.
func NewAuthHandler(auth AuthService, oauth OAuthProvider, tokens *TokenIssuer, limiter *rate_limiter.RateLimiter, origin string) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		oauth:       oauth,
		tokens:      tokens,
		rateLimiter: limiter,
		origin:      origin,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/auth")
	auth.POST("/login", h.rateLimit(), h.Login)
	auth.POST("/signup", h.Signup)
	auth.GET("/oauth/:provider", h.StartOAuth)
	auth.GET("/oauth/:provider/callback", h.OAuthCallback)
	auth.POST("/reset-password", h.rateLimit(), h.ResetPassword)
	auth.POST("/reset-password/complete", h.CompletePasswordReset)
}

func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/auth/logout", h.Logout)
	router.GET("/auth/session", h.Session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		custom_error.Respond(c, err, "Login failed")
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// Signup registers a staff account. The role is never taken from the caller;
// promotion goes through the admin-only role route.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req.SignupRequest())
	if err != nil {
		custom_error.Respond(c, err, "Signup failed")
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// StartOAuth redirects to the provider's consent page with a fresh state cookie.
func (h *AuthHandler) StartOAuth(c *gin.Context) {
	state := uuid.NewString()

	url, err := h.oauth.AuthURL(c.Param("provider"), state)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown provider", "details": err.Error()})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int((10 * time.Minute).Seconds()), "/auth/oauth", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/auth/oauth", "", c.Request.TLS != nil, true)

	code := c.Query("code")
	if code == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	provider := c.Param("provider")
	external, err := h.oauth.Exchange(c.Request.Context(), provider, code)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "Social login failed", "details": err.Error()})
		return
	}

	user, err := h.auth.SocialLogin(c.Request.Context(), provider, external)
	if err != nil {
		custom_error.Respond(c, err, "Social login failed")
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	origin := h.origin
	if origin == "" {
		origin = c.GetHeader("Origin")
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Email, origin); err != nil {
		custom_error.Respond(c, err, "Failed to send reset link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset link sent"})
}

func (h *AuthHandler) CompletePasswordReset(c *gin.Context) {
	var req models.CompleteResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.auth.CompletePasswordReset(c.Request.Context(), req.Token, req.Email, req.NewPassword); err != nil {
		custom_error.Respond(c, err, "Password reset failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session reports the process-wide session state of the store: the account of
// the most recent successful login on this instance, not the caller. Callers
// identify themselves with GET /users/me.
func (h *AuthHandler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, h.auth.Session())
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user models.User) {
	token, err := h.tokens.GenerateJWT(&user)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(status, gin.H{"token": token, "user": user.View()})
}

func (h *AuthHandler) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := clientKey(c) + ":" + c.FullPath()
		if h.rateLimiter.IsAllowed(key) {
			c.Next()
			return
		}

		resetAt := time.Now().Add(h.rateLimiter.Window()).Format(time.RFC3339)
		c.Header("X-RateLimit-Limit", strconv.Itoa(h.rateLimiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(h.rateLimiter.GetRemainingRequests(key)))
		c.Header("X-RateLimit-Reset", resetAt)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":    "Too many attempts. Please try again later.",
			"reset_at": resetAt,
		})
	}
}

// clientKey identifies the caller for rate limiting. Clients behind a private
// address also get their user agent appended so a shared NAT is not one bucket.
func clientKey(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}
	clientIP = strings.TrimSpace(strings.Split(clientIP, ",")[0])

	if isPrivateIP(clientIP) {
		return clientIP + ":" + c.GetHeader("User-Agent")
	}
	return clientIP
}

func isPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsPrivate() || parsed.IsLoopback() || parsed.IsLinkLocalUnicast()
}
