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

// AuthHandler handles login, logout, and profile lookup for all roles.
type AuthHandler struct {
	authService      *service.AuthService
	directoryService *service.DirectoryService
	log              zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, directoryService *service.DirectoryService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		directoryService: directoryService,
		log:              log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login godoc
// POST /api/v1/auth/login
// Authenticates the exact (name, password, role) triple and issues a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.directoryService.Authenticate(c.Request.Context(), req.Name, req.Password, req.Role)
	if err != nil {
		failFromError(c, err)
		return
	}

	token, jti, err := h.authService.GenerateToken(user)
	if err != nil {
		h.log.Error().Err(err).Msg("Token generation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if err := h.authService.StoreSession(c.Request.Context(), user.ID, jti); err != nil {
		h.log.Error().Err(err).Msg("Session store failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.LoginResponse{Token: token, User: *user})
}

// Logout godoc
// POST /api/v1/auth/logout
// Clears the caller's active session, invalidating outstanding tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.ClearSession(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the caller's directory entry.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.directoryService.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
