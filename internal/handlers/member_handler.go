package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/studyhub-service/internal/services"
	"github.com/SAP-F-2025/studyhub-service/internal/utils"
)

type MemberHandler struct {
	BaseHandler
	service services.MemberService
}

func NewMemberHandler(service services.MemberService, logger utils.Logger) *MemberHandler {
	return &MemberHandler{
		BaseHandler: NewBaseHandler(logger, "Member"),
		service:     service,
	}
}

// ListMembers returns the member directory, optionally filtered by ?role=
// @Summary List members
// @Tags members
// @Produce json
// @Param role query string false "student or tutor"
// @Success 200 {array} models.Member
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /member [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.service.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// GetMember returns one member
// @Summary Get member
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} models.Member
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Member not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /member/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	member, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// CreateMember adds a directory row directly
// @Summary Create member
// @Tags members
// @Accept json
// @Produce json
// @Param member body services.CreateMemberRequest true "Member"
// @Success 201 {object} models.Member
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Member already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /member [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req services.CreateMemberRequest
	if !h.bindJSON(c, &req) {
		return
	}

	member, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// UpdateMember applies a partial update
// @Summary Update member
// @Tags members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param member body services.UpdateMemberRequest true "Fields to change"
// @Success 200 {object} models.Member
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Member not found"
// @Failure 409 {object} ErrorResponse "Member already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /member/{id} [patch]
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req services.UpdateMemberRequest
	if !h.bindJSON(c, &req) {
		return
	}

	member, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeleteMember deletes one member
// @Summary Delete member
// @Tags members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} map[string]int
// @Failure 404 {object} ErrorResponse "Member not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /member/{id} [delete]
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"memberDeleted": 1})
}

// ListSyncFailures returns the most recent projection failures
// @Summary List sync failures
// @Tags members
// @Produce json
// @Param limit query int false "Maximum rows, default 100"
// @Success 200 {array} models.SyncFailure
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /member/sync-failures [get]
func (h *MemberHandler) ListSyncFailures(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	failures, err := h.service.SyncFailures(c.Request.Context(), limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, failures)
}

// Reconcile rebuilds the member directory from students and tutors
// @Summary Reconcile members
// @Tags members
// @Produce json
// @Success 200 {object} services.ReconcileResult
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /member/reconcile [post]
func (h *MemberHandler) Reconcile(c *gin.Context) {
	result, err := h.service.Reconcile(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
