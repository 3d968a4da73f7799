package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/paulmaker/office-mgmt/internal/application/identity"
)

// EntityHandler handles entity administration endpoints
type EntityHandler struct {
	BaseHandler
	entityService *identityapp.EntityService
}

// NewEntityHandler creates a new EntityHandler
func NewEntityHandler(entityService *identityapp.EntityService) *EntityHandler {
	return &EntityHandler{entityService: entityService}
}

// RegisterRoutes registers entity and account routes
func (h *EntityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/entities", h.Create)
	rg.GET("/entities/:entityID", h.Get)
	rg.POST("/accounts", h.CreateAccount)
	rg.GET("/accounts/:accountID", h.GetAccount)
	rg.GET("/accounts/:accountID/entities", h.ListForAccount)
}

// Create provisions a new entity. Platform administrators only.
func (h *EntityHandler) Create(c *gin.Context) {
	var req identityapp.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.entityService.Create(c.Request.Context(), getPrincipal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single entity
func (h *EntityHandler) Get(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	resp, err := h.entityService.Get(c.Request.Context(), getPrincipal(c), entityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CreateAccount provisions a new account. Platform administrators only.
func (h *EntityHandler) CreateAccount(c *gin.Context) {
	var req identityapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.entityService.CreateAccount(c.Request.Context(), getPrincipal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetAccount returns a single account
func (h *EntityHandler) GetAccount(c *gin.Context) {
	accountID, err := parseUUIDParam(c, "accountID")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	resp, err := h.entityService.GetAccount(c.Request.Context(), getPrincipal(c), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListForAccount returns all entities under an account
func (h *EntityHandler) ListForAccount(c *gin.Context) {
	accountID, err := parseUUIDParam(c, "accountID")
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	resp, err := h.entityService.ListForAccount(c.Request.Context(), getPrincipal(c), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
