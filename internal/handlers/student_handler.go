package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/studyhub-service/internal/services"
	"github.com/SAP-F-2025/studyhub-service/internal/utils"
)

const (
	memberSyncHeader = "X-Member-Sync"
	memberSyncOK     = "ok"
	memberSyncFailed = "failed"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger, "Student"),
		service:     service,
	}
}

// ListStudents returns every student
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {array} models.Student
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /student [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// GetStudent returns one student
// @Summary Get student
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} models.Student
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /student/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	student, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// CreateStudent creates a student and its member. The X-Member-Sync header
// tells whether the member was written.
// @Summary Create student
// @Tags students
// @Accept json
// @Produce json
// @Param student body services.CreateStudentRequest true "Student"
// @Success 201 {object} models.Student
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Email already in use"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /student [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req services.CreateStudentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if _, partial := services.AsPartialFailure(err); partial && result != nil {
			h.logPartial(c, err)
			c.Header(memberSyncHeader, memberSyncFailed)
			c.JSON(http.StatusCreated, result.Student)
			return
		}
		h.handleServiceError(c, err)
		return
	}

	c.Header(memberSyncHeader, memberSyncOK)
	c.JSON(http.StatusCreated, result.Student)
}

// UpdateStudent applies a partial update; 207 when the member was not updated
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param student body services.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} services.StudentUpdateResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Failure 409 {object} ErrorResponse "Email already in use"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /student/{id} [patch]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req services.UpdateStudentRequest
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

// DeleteStudent deletes a student and its member
// @Summary Delete student
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} services.StudentDeleteResult
// @Failure 404 {object} ErrorResponse "Student not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /student/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
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
