package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/paulmaker/office-mgmt/internal/application/billing"
	"github.com/paulmaker/office-mgmt/internal/interfaces/http/dto"
)

// ClientHandler handles client-related API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *billingapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *billingapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// RegisterRoutes registers client routes on the entity-scoped group
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/entities/:entityID/clients")
	clients.POST("", h.Create)
	clients.GET("", h.List)
	clients.GET("/:clientID", h.Get)
	clients.PUT("/:clientID", h.Update)
	clients.DELETE("/:clientID", h.Archive)
}

// Create creates a new client
func (h *ClientHandler) Create(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	var req billingapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.clientService.Create(c.Request.Context(), getPrincipal(c), entityID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single client
func (h *ClientHandler) Get(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}
	clientID, err := parseUUIDParam(c, "clientID")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	resp, err := h.clientService.Get(c.Request.Context(), getPrincipal(c), entityID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a page of clients for the entity
func (h *ClientHandler) List(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.clientService.List(c.Request.Context(), getPrincipal(c), entityID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update modifies an existing client
func (h *ClientHandler) Update(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}
	clientID, err := parseUUIDParam(c, "clientID")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req billingapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.clientService.Update(c.Request.Context(), getPrincipal(c), entityID, clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Archive retires a client without deleting its history
func (h *ClientHandler) Archive(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}
	clientID, err := parseUUIDParam(c, "clientID")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clientService.Archive(c.Request.Context(), getPrincipal(c), entityID, clientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
