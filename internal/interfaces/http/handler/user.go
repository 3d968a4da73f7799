package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/paulmaker/office-mgmt/internal/application/identity"
	"github.com/paulmaker/office-mgmt/internal/interfaces/http/dto"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user routes on the entity-scoped group
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/entities/:entityID/users")
	users.POST("", h.Create)
	users.GET("", h.List)
	users.GET("/:userID", h.Get)
	users.PUT("/:userID/role", h.AssignRole)
	users.DELETE("/:userID", h.Deactivate)
}

// Create creates a user within the entity
func (h *UserHandler) Create(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.Create(c.Request.Context(), getPrincipal(c), entityID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single user
func (h *UserHandler) Get(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}
	userID, err := parseUUIDParam(c, "userID")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	resp, err := h.userService.Get(c.Request.Context(), getPrincipal(c), entityID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns a page of users for the entity
func (h *UserHandler) List(c *gin.Context) {
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

	page, err := h.userService.List(c.Request.Context(), getPrincipal(c), entityID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// AssignRole changes a user's role
func (h *UserHandler) AssignRole(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}
	userID, err := parseUUIDParam(c, "userID")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req identityapp.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.AssignRole(c.Request.Context(), getPrincipal(c), entityID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate disables a user's login
func (h *UserHandler) Deactivate(c *gin.Context) {
	entityID, err := parseUUIDParam(c, "entityID")
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}
	userID, err := parseUUIDParam(c, "userID")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), getPrincipal(c), entityID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
