package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/studyhub-service/internal/events"
	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/studyhub-service/internal/services"
	"github.com/SAP-F-2025/studyhub-service/internal/utils"
	"github.com/SAP-F-2025/studyhub-service/internal/validator"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, postgres.AutoMigrate(db))

	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	t.Cleanup(func() { _ = repo.Close() })

	slogLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sm := services.NewServiceManager(repo, events.NewMockEventPublisher(slogLogger), slogLogger, validator.New())
	require.NoError(t, sm.Initialize(context.Background()))

	logger := utils.NewSlogLogger(slogLogger)
	router := gin.New()
	SetupMiddleware(router, logger, "*")
	NewHandlerManager(sm, logger, "studyhub-service").SetupRoutes(router)

	return &testServer{router: router, db: db}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestStudentRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/student", gin.H{"name": "A", "email": "A@x.com", "year": "Fr"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "ok", w.Header().Get("X-Member-Sync"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	student := decode[models.Student](t, w)
	assert.Equal(t, "a@x.com", student.Email)

	w = s.do(t, http.MethodPost, "/student", gin.H{"name": "B", "email": "a@x.com", "year": "So"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/student", gin.H{"name": "", "email": "nope", "year": "So"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decode[ErrorResponse](t, w)
	assert.Len(t, errResp.Errors, 2)

	w = s.do(t, http.MethodPost, "/student", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/student", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Student](t, w), 1)

	path := fmt.Sprintf("/student/%d", student.ID)
	w = s.do(t, http.MethodPatch, path, gin.H{"email": "b@x.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[services.StudentUpdateResult](t, w)
	assert.Equal(t, int64(1), updated.StudentUpdated)
	assert.Equal(t, int64(1), updated.MemberUpdated)
	assert.Equal(t, "b@x.com", updated.Student.Email)

	w = s.do(t, http.MethodGet, "/member?role=student", nil)
	members := decode[[]models.Member](t, w)
	require.Len(t, members, 1)
	assert.Equal(t, "b@x.com", members[0].Email)

	w = s.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"studentDeleted":1,"memberDeleted":1}`, w.Body.String())

	w = s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student not found", decode[ErrorResponse](t, w).Message)

	w = s.do(t, http.MethodGet, "/student/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentUpdateWithoutMemberReturnsMultiStatus(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/student", gin.H{"name": "A", "email": "a@x.com", "year": "Fr"})
	require.Equal(t, http.StatusCreated, w.Code)
	student := decode[models.Student](t, w)
	require.NoError(t, s.db.Where("email = ?", "a@x.com").Delete(&models.Member{}).Error)

	w = s.do(t, http.MethodPatch, fmt.Sprintf("/student/%d", student.ID), gin.H{"name": "Alice"})
	require.Equal(t, http.StatusMultiStatus, w.Code, w.Body.String())
	result := decode[services.StudentUpdateResult](t, w)
	assert.Equal(t, int64(1), result.StudentUpdated)
	assert.Equal(t, int64(0), result.MemberUpdated)
	assert.NotEmpty(t, result.Message)

	w = s.do(t, http.MethodGet, "/member/sync-failures", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.SyncFailure](t, w), 1)

	w = s.do(t, http.MethodPost, "/member/reconcile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"created":1,"updated":0,"removed":0}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/member/sync-failures?limit=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTutorDeleteCascadesSessions(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/tutor", gin.H{"name": "T", "email": "t@x.com", "expertise": "Math"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tutor := decode[models.Tutor](t, w)

	for _, subject := range []string{"Mathematics", "MATH 101"} {
		w = s.do(t, http.MethodPost, "/session", sessionBody(subject, "t@x.com", "45"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/tutor/%d", tutor.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tutorDeleted":1,"memberDeleted":1,"sessionsDeleted":2}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/session", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func sessionBody(subject, tutorEmail, duration string) gin.H {
	return gin.H{
		"student":      "Ann",
		"studentEmail": "ann@x.com",
		"tutor":        "T",
		"tutorEmail":   tutorEmail,
		"subject":      subject,
		"time":         "17:22",
		"day":          "2025-03-29",
		"duration":     duration,
	}
}

func TestSessionRoutes(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []gin.H{
		sessionBody("Mathematics", "t@x.com", "60"),
		sessionBody("MATH 101", "t@x.com", "20"),
		sessionBody("Physics", "u@x.com", "90"),
	} {
		w := s.do(t, http.MethodPost, "/session", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(t, http.MethodGet, "/session?subject=math", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Session](t, w), 2)

	w = s.do(t, http.MethodGet, "/session?subject=math&minDuration=30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessions := decode[[]models.Session](t, w)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Mathematics", sessions[0].Subject)

	for _, query := range []string{"day=2025-13-01", "time=25:00", "minDuration=abc"} {
		w = s.do(t, http.MethodGet, "/session?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}

	w = s.do(t, http.MethodPost, "/session", gin.H{"student": "Ann"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/session/1", gin.H{"duration": "75"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "75", decode[models.Session](t, w).Duration)

	w = s.do(t, http.MethodDelete, "/session/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/session/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/report/sessions?tutor=t", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Session](t, w), 2)

	w = s.do(t, http.MethodGet, "/report/sessions.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sessions-report.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())

	w = s.do(t, http.MethodGet, "/report/sessions.xlsx?day=2025-02-30", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMemberRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/member", gin.H{"name": "M", "email": "m@x.com", "role": "tutor"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	member := decode[models.Member](t, w)

	w = s.do(t, http.MethodPost, "/member", gin.H{"name": "M", "email": "m@x.com", "role": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/member", gin.H{"name": "M", "email": "m@x.com", "role": "tutor"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/member?role=admin", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := fmt.Sprintf("/member/%d", member.ID)
	w = s.do(t, http.MethodPatch, path, gin.H{"name": "Max"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Max", decode[models.Member](t, w).Name)

	w = s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthMetricsAndCORS(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[map[string]interface{}](t, w)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "studyhub-service", health["service"])
	assert.Equal(t, "disabled", health["cache"])

	w = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "studyhub_http_requests_total")

	w = s.do(t, http.MethodOptions, "/student", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.Equal(t, "nosniff", s.do(t, http.MethodGet, "/student", nil).Header().Get("X-Content-Type-Options"))
}
