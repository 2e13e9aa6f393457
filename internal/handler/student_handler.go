package handler

import (
	"net/http"

	"github.com/Vaishnavcibu/schedule-manager/internal/middleware"
	"github.com/Vaishnavcibu/schedule-manager/internal/model"
	"github.com/Vaishnavcibu/schedule-manager/internal/response"
	"github.com/Vaishnavcibu/schedule-manager/internal/service"
	"github.com/Vaishnavcibu/schedule-manager/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StudentHandler exposes the availability index and booking to students.
type StudentHandler struct {
	appointmentService  *service.AppointmentService
	availabilityService *service.AvailabilityService
	viewService         *service.ViewService
	log                 zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(appointmentService *service.AppointmentService, availabilityService *service.AvailabilityService, viewService *service.ViewService, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		appointmentService:  appointmentService,
		availabilityService: availabilityService,
		viewService:         viewService,
		log:                 log.With().Str("component", "student_handler").Logger(),
	}
}

// ListTeachers godoc
// GET /api/v1/student/teachers
// The availability index: active teachers only, computed fresh per call so a
// deactivation is reflected on the very next read.
func (h *StudentHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.availabilityService.ListBookableTeachers(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teachers": teachers})
}

// RequestAppointment godoc
// POST /api/v1/student/appointments
// Books a pending appointment with an active teacher.
func (h *StudentHandler) RequestAppointment(c *gin.Context) {
	var req model.RequestAppointmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	appointment, err := h.appointmentService.Request(c.Request.Context(), claims.UserID, req.TeacherID, req.RequestedTime)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"appointment": appointment})
}

// ListAppointments godoc
// GET /api/v1/student/appointments
// The caller's own requests with current status, newest first.
func (h *StudentHandler) ListAppointments(c *gin.Context) {
	claims := middleware.GetClaims(c)
	appointments, err := h.appointmentService.ListForStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"appointments": appointments})
}

// GetView godoc
// GET /api/v1/student/view
// One-shot projection of the caller's requests plus the booking index.
func (h *StudentHandler) GetView(c *gin.Context) {
	claims := middleware.GetClaims(c)
	vm, err := h.viewService.Load(c.Request.Context(), model.RoleStudent, claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, vm)
}
