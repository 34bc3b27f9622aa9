package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/studyhub-service/internal/services"
	"github.com/SAP-F-2025/studyhub-service/internal/utils"
)

type TutorHandler struct {
	BaseHandler
	service services.TutorService
}

func NewTutorHandler(service services.TutorService, logger utils.Logger) *TutorHandler {
	return &TutorHandler{
		BaseHandler: NewBaseHandler(logger, "Tutor"),
		service:     service,
	}
}

// ListTutors returns every tutor
// @Summary List tutors
// @Tags tutors
// @Produce json
// @Success 200 {array} models.Tutor
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tutor [get]
func (h *TutorHandler) ListTutors(c *gin.Context) {
	tutors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tutors)
}

// GetTutor returns one tutor
// @Summary Get tutor
// @Tags tutors
// @Produce json
// @Param id path int true "Tutor ID"
// @Success 200 {object} models.Tutor
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Tutor not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tutor/{id} [get]
func (h *TutorHandler) GetTutor(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	tutor, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tutor)
}

// CreateTutor creates a tutor and its member
// @Summary Create tutor
// @Tags tutors
// @Accept json
// @Produce json
// @Param tutor body services.CreateTutorRequest true "Tutor"
// @Success 201 {object} models.Tutor
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Email already in use"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tutor [post]
func (h *TutorHandler) CreateTutor(c *gin.Context) {
	var req services.CreateTutorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if _, partial := services.AsPartialFailure(err); partial && result != nil {
			h.logPartial(c, err)
			c.Header(memberSyncHeader, memberSyncFailed)
			c.JSON(http.StatusCreated, result.Tutor)
			return
		}
		h.handleServiceError(c, err)
		return
	}

	c.Header(memberSyncHeader, memberSyncOK)
	c.JSON(http.StatusCreated, result.Tutor)
}

// UpdateTutor applies a partial update; 207 when the member was not updated
// @Summary Update tutor
// @Tags tutors
// @Accept json
// @Produce json
// @Param id path int true "Tutor ID"
// @Param tutor body services.UpdateTutorRequest true "Fields to change"
// @Success 200 {object} services.TutorUpdateResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Tutor not found"
// @Failure 409 {object} ErrorResponse "Email already in use"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tutor/{id} [patch]
func (h *TutorHandler) UpdateTutor(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req services.UpdateTutorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		if _, partial := services.AsPartialFailure(err); partial && result != nil {
			h.logPartial(c, err)
			c.JSON(http.StatusMultiStatus, result)
			return
		}
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteTutor deletes the tutor, its member and its sessions
// @Summary Delete tutor
// @Tags tutors
// @Produce json
// @Param id path int true "Tutor ID"
// @Success 200 {object} services.TutorDeleteResult
// @Failure 404 {object} ErrorResponse "Tutor not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tutor/{id} [delete]
func (h *TutorHandler) DeleteTutor(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		if _, partial := services.AsPartialFailure(err); partial && result != nil {
			h.logPartial(c, err)
			c.JSON(http.StatusOK, result)
			return
		}
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
