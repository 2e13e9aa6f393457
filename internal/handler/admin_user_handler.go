package handler

import (
	"net/http"
	"strconv"

	"github.com/Vaishnavcibu/schedule-manager/internal/middleware"
	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/Vaishnavcibu/schedule-manager/internal/response"
	"github.com/Vaishnavcibu/schedule-manager/internal/service"
	"github.com/Vaishnavcibu/schedule-manager/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminUserHandler exposes directory management to administrators.
type AdminUserHandler struct {
	directoryService *service.DirectoryService
	viewService      *service.ViewService
	log              zerolog.Logger
}

// NewAdminUserHandler creates a new AdminUserHandler.
func NewAdminUserHandler(directoryService *service.DirectoryService, viewService *service.ViewService, log zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		directoryService: directoryService,
		viewService:      viewService,
		log:              log.With().Str("component", "admin_user_handler").Logger(),
	}
}

// ListUsers godoc
// GET /api/v1/admin/users
func (h *AdminUserHandler) ListUsers(c *gin.Context) {
	users, err := h.directoryService.ListUsers(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// CreateUser godoc
// POST /api/v1/admin/users
func (h *AdminUserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.directoryService.CreateUser(c.Request.Context(), req.Name, req.Role, req.Password)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// UpdateUser godoc
// PUT /api/v1/admin/users/:id
func (h *AdminUserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.directoryService.UpdateUser(c.Request.Context(), id, req.Name, req.Role)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// SetUserStatus godoc
// PATCH /api/v1/admin/users/:id/status
func (h *AdminUserHandler) SetUserStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SetStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.directoryService.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// DeleteUser godoc
// DELETE /api/v1/admin/users/:id
// Refused while appointments still reference the user.
func (h *AdminUserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.directoryService.DeleteUser(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// GetView godoc
// GET /api/v1/admin/view
// One-shot projection of the full directory plus appointment totals.
func (h *AdminUserHandler) GetView(c *gin.Context) {
	claims := middleware.GetClaims(c)
	vm, err := h.viewService.Load(c.Request.Context(), model.RoleAdmin, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, vm)
}
