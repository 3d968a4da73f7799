package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/paulmaker/office-mgmt/internal/application/billing"
)

// NumberHandler exposes invoice number allocation endpoints
type NumberHandler struct {
	BaseHandler
	numberService *billingapp.NumberService
}

// NewNumberHandler creates a new NumberHandler
func NewNumberHandler(numberService *billingapp.NumberService) *NumberHandler {
	return &NumberHandler{numberService: numberService}
}

// RegisterRoutes registers allocation routes on the entity-scoped group
func (h *NumberHandler) RegisterRoutes(rg *gin.RouterGroup) {
	numbers := rg.Group("/entities/:entityID/clients/:clientID/invoice-numbers")
	numbers.POST("", h.Allocate)
	numbers.GET("/current", h.Peek)
}

// Allocate allocates the next invoice number for a client. Each call
// consumes a sequence value; failed calls do not.
func (h *NumberHandler) Allocate(c *gin.Context) {
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

	resp, err := h.numberService.Allocate(c.Request.Context(), getPrincipal(c), entityID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Peek returns the most recently allocated number without consuming one
func (h *NumberHandler) Peek(c *gin.Context) {
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

	resp, err := h.numberService.Peek(c.Request.Context(), getPrincipal(c), entityID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
