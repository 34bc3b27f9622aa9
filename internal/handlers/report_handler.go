package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/studyhub-service/internal/services"
	"github.com/SAP-F-2025/studyhub-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	BaseHandler
	service services.ReportService
}

func NewReportHandler(service services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger, "Report"),
		service:     service,
	}
}

// SessionReport returns the filtered session report as JSON
// @Summary Session report
// @Tags reports
// @Produce json
// @Param subject query string false "Subject substring"
// @Param day query string false "Exact day, YYYY-MM-DD"
// @Param minDuration query int false "Minimum duration in minutes"
// @Success 200 {array} models.Session
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /report/sessions [get]
func (h *ReportHandler) SessionReport(c *gin.Context) {
	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	sessions, err := h.service.Sessions(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// ExportSessionReport downloads the filtered report as a spreadsheet
// @Summary Export session report
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param subject query string false "Subject substring"
// @Param day query string false "Exact day, YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /report/sessions.xlsx [get]
func (h *ReportHandler) ExportSessionReport(c *gin.Context) {
	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	data, err := h.service.ExportSessions(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sessions-report.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (h *ReportHandler) bindQuery(c *gin.Context) (*services.SessionQuery, bool) {
	var query services.SessionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid query parameters",
			Details: err.Error(),
		})
		return nil, false
	}
	return &query, true
}
