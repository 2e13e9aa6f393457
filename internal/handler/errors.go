package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vaishnavcibu/schedule-manager/internal/repository"
	"github.com/Vaishnavcibu/schedule-manager/internal/response"
	"github.com/Vaishnavcibu/schedule-manager/internal/service"
	"github.com/gin-gonic/gin"
)

// failFromError translates a service-layer error into the discriminated
// HTTP outcome. Every core error crosses the boundary as a typed code, so
// the presentation layer never needs to inspect error strings.
func failFromError(c *gin.Context, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.Is(err, service.ErrValidation):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrNameTaken):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.As(err, &conflict):
		response.FailWithFields(c, http.StatusConflict, response.ErrDependencyExists,
			map[string]string{"references": strconv.Itoa(conflict.References)})
	case errors.Is(err, service.ErrUnavailableTeacher):
		response.Fail(c, http.StatusConflict, response.ErrTeacherUnavailable)
	case errors.Is(err, service.ErrInvalidTransition):
		response.Fail(c, http.StatusConflict, response.ErrInvalidTransition)
	case errors.Is(err, service.ErrDuplicateRequest):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateRequest)
	case errors.Is(err, repository.ErrStoreUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
