package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/studyhub-service/internal/services"
	"github.com/SAP-F-2025/studyhub-service/internal/utils"
	"github.com/SAP-F-2025/studyhub-service/internal/validator"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string                     `json:"message"`
	Errors  validator.ValidationErrors `json:"errors,omitempty"`
	Details string                     `json:"details,omitempty"`
}

// BaseHandler carries what every resource handler shares. resource is the
// display name used in messages, e.g. "Student".
type BaseHandler struct {
	logger   utils.Logger
	resource string
}

func NewBaseHandler(logger utils.Logger, resource string) BaseHandler {
	return BaseHandler{
		logger:   logger,
		resource: resource,
	}
}

// parseID reads the :id path parameter, answering 400 when it is not a positive integer
func (h *BaseHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: fmt.Sprintf("Invalid %s ID", strings.ToLower(h.resource)),
		})
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the request body, answering 400 on malformed JSON
func (h *BaseHandler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// handleServiceError maps service errors onto HTTP responses. Store errors
// are logged and answered with a generic message.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	logger := utils.GetLogger(c, h.logger)

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Errors:  verrs,
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: fmt.Sprintf("%s not found", h.resource),
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: fmt.Sprintf("A %s with this email already exists", strings.ToLower(h.resource)),
		})
	default:
		if pf, ok := services.AsPartialFailure(err); ok {
			logger.Warn("Partial write", "operation", pf.Operation, "role", pf.Role, "email", pf.Email, "error", err)
			c.JSON(http.StatusMultiStatus, ErrorResponse{
				Message: fmt.Sprintf("%s saved, but the member directory could not be updated", h.resource),
			})
			return
		}
		logger.Error("Request failed", "resource", h.resource, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}

// logPartial records a primary write whose member sync failed
func (h *BaseHandler) logPartial(c *gin.Context, err error) {
	utils.GetLogger(c, h.logger).Warn("Member sync failed after primary write", "resource", h.resource, "error", err)
}
