package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/paulmaker/office-mgmt/internal/application/identity"
	"github.com/paulmaker/office-mgmt/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	sessionTTL  time.Duration
}

// NewAuthHandler creates a new auth handler. sessionTTL bounds how long
// a global logout keeps older tokens invalidated; use the refresh token
// lifetime.
func NewAuthHandler(authService *identityapp.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionTTL:  sessionTTL,
	}
}

// RegisterPublicRoutes registers routes that do not require authentication
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
}

// RegisterRoutes registers routes that require authentication
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/logout", h.Logout)
	auth.POST("/logout-all", h.LogoutAll)
	auth.GET("/me", h.Me)
}

// Login authenticates a user and returns a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pair)
}

// Logout revokes the current access token
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader(middleware.AuthHeaderKey), middleware.BearerPrefix)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// LogoutAll revokes every outstanding token of the current user
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	if err := h.authService.LogoutAll(c.Request.Context(), getPrincipal(c), h.sessionTTL); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Me returns the authenticated principal
func (h *AuthHandler) Me(c *gin.Context) {
	p := getPrincipal(c)
	if p == nil {
		c.AbortWithStatus(401)
		return
	}
	h.Success(c, gin.H{
		"id":         p.ID,
		"entity_id":  p.EntityID,
		"account_id": p.AccountID,
		"username":   p.Username,
		"role":       p.Role.String(),
	})
}
