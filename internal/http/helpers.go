package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mediateca/internal/catalog"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// IntegrityDetails tells the client which constraint rejected the write.
type IntegrityDetails struct {
	Constraint string `json:"constraint"`
	Field      string `json:"field,omitempty"`
}

// Machine-readable error codes.
const (
	CodeBadRequest  = "bad_request"
	CodeValidation  = "validation_error"
	CodeIntegrity   = "integrity_error"
	CodeNotFound    = "not_found"
	CodeInternal    = "internal_error"
	CodeUnavailable = "unavailable"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeBadRequest})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: CodeNotFound})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s) [%s]: %v", context, GetRequestID(c), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeInternal})
}

// respondStoreError maps data access errors onto API responses.
func respondStoreError(c *gin.Context, err error, context string) {
	var verr *catalog.ValidationError
	var ierr *catalog.IntegrityError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Code:    CodeValidation,
			Details: verr.Violations,
		})
	case errors.As(err, &ierr):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   ierr.Constraint + " constraint violated",
			Code:    CodeIntegrity,
			Details: IntegrityDetails{Constraint: ierr.Constraint, Field: ierr.Field},
		})
	case errors.Is(err, catalog.ErrNotFound):
		respondNotFound(c, context)
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}
