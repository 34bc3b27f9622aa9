package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReportService_ExportSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createSession(t, "Ann", "t@x.com", "Mathematics", "60")
	env.createSession(t, "Bob", "t@x.com", "Physics", "1 hour")

	report := NewReportService(env.sessions(), env.logger)

	data, err := report.ExportSessions(ctx, &SessionQuery{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Student", "Student Email", "Tutor", "Tutor Email", "Subject", "Duration (min)", "Date", "Time"}, rows[0])
	assert.Equal(t, []string{"Ann", "ann@x.com", "Tutor", "t@x.com", "Mathematics", "60", "2025-03-29", "17:30"}, rows[1])
	assert.Equal(t, "1 hour", rows[2][5])

	filtered, err := report.ExportSessions(ctx, &SessionQuery{Subject: "phys"})
	require.NoError(t, err)
	f2, err := excelize.OpenReader(bytes.NewReader(filtered))
	require.NoError(t, err)
	defer f2.Close()
	rows, err = f2.GetRows(reportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReportService_RejectsBadCriteria(t *testing.T) {
	env := newTestEnv(t)
	report := NewReportService(env.sessions(), env.logger)

	_, err := report.ExportSessions(context.Background(), &SessionQuery{Day: "2025-13-01"})
	assert.Error(t, err)

	sessions, err := report.Sessions(context.Background(), &SessionQuery{})
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestServiceManager_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sm := NewServiceManager(env.repo, env.publisher, env.logger, env.validator)
	assert.Error(t, sm.HealthCheck(ctx))
	assert.Panics(t, func() { sm.Student() })

	require.NoError(t, sm.Initialize(ctx))
	require.NoError(t, sm.HealthCheck(ctx))
	assert.NotNil(t, sm.Student())
	assert.NotNil(t, sm.Tutor())
	assert.NotNil(t, sm.Session())
	assert.NotNil(t, sm.Member())
	assert.NotNil(t, sm.Report())

	require.NoError(t, sm.Shutdown(ctx))
	assert.Error(t, sm.HealthCheck(ctx))
}
