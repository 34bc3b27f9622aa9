package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/studyhub-service/internal/models"
)

const reportSheet = "Sessions"

var reportHeader = []interface{}{
	"Student", "Student Email", "Tutor", "Tutor Email", "Subject", "Duration (min)", "Date", "Time",
}

type reportService struct {
	sessions SessionService
	logger   *slog.Logger
}

func NewReportService(sessions SessionService, logger *slog.Logger) ReportService {
	return &reportService{
		sessions: sessions,
		logger:   logger,
	}
}

func (s *reportService) Sessions(ctx context.Context, query *SessionQuery) ([]*models.Session, error) {
	return s.sessions.Query(ctx, query)
}

// ExportSessions renders the filtered session report as an XLSX workbook
func (s *reportService) ExportSessions(ctx context.Context, query *SessionQuery) ([]byte, error) {
	sessions, err := s.sessions.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WarnContext(ctx, "Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, fmt.Errorf("failed to name report sheet: %w", err)
	}
	if err := f.SetSheetRow(reportSheet, "A1", &reportHeader); err != nil {
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(reportSheet, "A1", "H1", bold); err != nil {
		return nil, fmt.Errorf("failed to style report header: %w", err)
	}
	if err := f.SetColWidth(reportSheet, "A", "H", 22); err != nil {
		return nil, fmt.Errorf("failed to size report columns: %w", err)
	}

	for i, session := range sessions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := reportRow(session)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	s.logger.InfoContext(ctx, "Session report exported", "rows", len(sessions))
	return buf.Bytes(), nil
}

// reportRow writes numeric durations as numbers so the sheet can sum them
func reportRow(session *models.Session) []interface{} {
	var duration interface{} = session.Duration
	if n, ok := durationMinutes(session.Duration); ok {
		duration = n
	}
	return []interface{}{
		session.Student.Name,
		session.Student.Email,
		session.Tutor.Name,
		session.Tutor.Email,
		session.Subject,
		duration,
		session.Day,
		session.Time,
	}
}
