package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/studyhub-service/internal/services"
	"github.com/SAP-F-2025/studyhub-service/internal/utils"
)

type SessionHandler struct {
	BaseHandler
	service services.SessionService
}

func NewSessionHandler(service services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger, "Session"),
		service:     service,
	}
}

// ListSessions returns the sessions matching the query string criteria
// @Summary Query sessions
// @Tags sessions
// @Produce json
// @Param student query string false "Student name substring"
// @Param tutor query string false "Tutor name substring"
// @Param subject query string false "Subject substring"
// @Param duration query string false "Duration substring"
// @Param day query string false "Exact day, YYYY-MM-DD"
// @Param time query string false "Exact time, HH:MM"
// @Param minDuration query int false "Minimum duration in minutes"
// @Success 200 {array} models.Session
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /session [get]
func (h *SessionHandler) ListSessions(c *gin.Context) {
	var query services.SessionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}

	sessions, err := h.service.Query(c.Request.Context(), &query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// GetSession returns one session
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} models.Session
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /session/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	session, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// CreateSession books a session
// @Summary Create session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body services.CreateSessionRequest true "Session"
// @Success 201 {object} models.Session
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /session [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req services.CreateSessionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	session, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// UpdateSession applies a partial update
// @Summary Update session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param session body services.UpdateSessionRequest true "Fields to change"
// @Success 200 {object} models.Session
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /session/{id} [patch]
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req services.UpdateSessionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	session, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// DeleteSession deletes one session
// @Summary Delete session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} map[string]int
// @Failure 404 {object} ErrorResponse "Session not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /session/{id} [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionDeleted": 1})
}
