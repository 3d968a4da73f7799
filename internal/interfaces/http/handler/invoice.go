package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/paulmaker/office-mgmt/internal/application/billing"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
	"github.com/paulmaker/office-mgmt/internal/interfaces/http/dto"
)

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers invoice routes on the entity-scoped group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/entities/:entityID/invoices")
	invoices.POST("", h.Create)
	invoices.GET("", h.List)
	invoices.GET("/:invoiceID", h.Get)
	invoices.POST("/:invoiceID/issue", h.Issue)
	invoices.POST("/:invoiceID/pay", h.MarkPaid)
	invoices.POST("/:invoiceID/cancel", h.Cancel)
	invoices.DELETE("/:invoiceID", h.Delete)
}

// Create creates a draft invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.invoiceService.Create(c.Request.Context(), getPrincipal(c), entityID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}
	invoiceID, err := parseUUIDParam(c, "invoiceID")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoiceService.Get(c.Request.Context(), getPrincipal(c), entityID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a page of invoices for the entity
func (h *InvoiceHandler) List(c *gin.Context) {
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

	page, err := h.invoiceService.List(c.Request.Context(), getPrincipal(c), entityID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Issue finalizes a draft invoice, allocating its number
func (h *InvoiceHandler) Issue(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}
	invoiceID, err := parseUUIDParam(c, "invoiceID")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	// The body is optional; issuing with no due date is valid.
	var req billingapp.IssueInvoiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	resp, err := h.invoiceService.Issue(c.Request.Context(), getPrincipal(c), entityID, invoiceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkPaid records payment of an issued invoice
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.invoiceService.MarkPaid)
}

// Cancel cancels an invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transition(c, h.invoiceService.Cancel)
}

// Delete removes an unpaid invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}
	invoiceID, err := parseUUIDParam(c, "invoiceID")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), getPrincipal(c), entityID, invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

type invoiceTransition func(ctx context.Context, p *identity.Principal, entityID, invoiceID uuid.UUID) (*billingapp.InvoiceResponse, error)

func (h *InvoiceHandler) transition(c *gin.Context, fn invoiceTransition) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}
	invoiceID, err := parseUUIDParam(c, "invoiceID")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := fn(c.Request.Context(), getPrincipal(c), entityID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
