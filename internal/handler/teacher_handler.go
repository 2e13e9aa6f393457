package handler

import (
	"errors"
	"net/http"

	"github.com/Vaishnavcibu/schedule-manager/internal/middleware"
	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/Vaishnavcibu/schedule-manager/internal/response"
	"github.com/Vaishnavcibu/schedule-manager/internal/service"
	"github.com/Vaishnavcibu/schedule-manager/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TeacherHandler exposes appointment decisions and self-service status to
// teachers.
type TeacherHandler struct {
	appointmentService *service.AppointmentService
	directoryService   *service.DirectoryService
	viewService        *service.ViewService
	log                zerolog.Logger
}

// NewTeacherHandler creates a new TeacherHandler.
func NewTeacherHandler(appointmentService *service.AppointmentService, directoryService *service.DirectoryService, viewService *service.ViewService, log zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		appointmentService: appointmentService,
		directoryService:   directoryService,
		viewService:        viewService,
		log:                log.With().Str("component", "teacher_handler").Logger(),
	}
}

// ListAppointments godoc
// GET /api/v1/teacher/appointments
// Every appointment addressed to the caller, newest first.
func (h *TeacherHandler) ListAppointments(c *gin.Context) {
	claims := middleware.GetClaims(c)
	appointments, err := h.appointmentService.ListForTeacher(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": appointments})
}

// Decide godoc
// POST /api/v1/teacher/appointments/:id/decision
// Approves or declines a pending appointment addressed to the caller.
func (h *TeacherHandler) Decide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.DecideRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.appointmentService.Decide(c.Request.Context(), id, claims.UserID, req.Decision); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.Fail(c, http.StatusForbidden, response.ErrNotAppointmentOwner)
			return
		}
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "status": req.Decision})
}

// SetOwnStatus godoc
// PATCH /api/v1/teacher/status
// Lets a teacher withdraw from (or return to) the availability index.
func (h *TeacherHandler) SetOwnStatus(c *gin.Context) {
	var req model.SetStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	if err := h.directoryService.SetStatus(c.Request.Context(), claims.UserID, req.Status); err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": claims.UserID, "status": req.Status})
}

// GetView godoc
// GET /api/v1/teacher/view
// One-shot projection of the caller's inbox with permitted actions.
func (h *TeacherHandler) GetView(c *gin.Context) {
	claims := middleware.GetClaims(c)
	vm, err := h.viewService.Load(c.Request.Context(), model.RoleTeacher, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, vm)
}
