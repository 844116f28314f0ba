package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ehospital/medications/internal/domain/doctor"
	"github.com/ehospital/medications/internal/domain/drug"
	"github.com/ehospital/medications/internal/domain/patient"
	"github.com/ehospital/medications/internal/domain/prescription"
	"github.com/ehospital/medications/internal/service"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func isNotFound(err error) bool {
	return errors.Is(err, drug.ErrDrugNotFound) ||
		errors.Is(err, prescription.ErrPrescriptionNotFound) ||
		errors.Is(err, patient.ErrPatientNotFound) ||
		errors.Is(err, patient.ErrImageNotFound) ||
		errors.Is(err, doctor.ErrDoctorNotFound)
}

func isEmptyResult(err error) bool {
	return errors.Is(err, drug.ErrNoDrugsFound) ||
		errors.Is(err, prescription.ErrNoPrescriptionsFound)
}

// respondLookupError maps read-path failures: missing ids are 404s, empty
// list results are 204s.
func respondLookupError(c *gin.Context, err error) {
	switch {
	case isEmptyResult(err):
		c.Status(http.StatusNoContent)
	case isNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		respondServiceError(c, err)
	}
}

// respondMutationError maps write-path failures: a mutation referencing a
// missing id is a bad request, not a 404.
func respondMutationError(c *gin.Context, err error) {
	if isNotFound(err) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	respondServiceError(c, err)
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, drug.ErrDrugAlreadyExists),
		errors.Is(err, prescription.ErrUnknownPatient),
		errors.Is(err, prescription.ErrUnknownDrug),
		errors.Is(err, prescription.ErrUnknownDoctor):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}

	return true
}

func parseIntParam(c *gin.Context, param string) (int, bool) {
	raw := c.Param(param)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a positive integer"})
		return 0, false
	}
	return id, true
}

// callerFrom rebuilds the audit identity the auth middleware stored on the
// request context.
func callerFrom(c *gin.Context) service.Caller {
	return service.Caller{
		Actor:     c.GetString(ctxKeySubject),
		Role:      c.GetString(ctxKeyRole),
		IP:        c.ClientIP(),
		RequestID: c.GetString(ctxKeyRequestID),
	}
}
