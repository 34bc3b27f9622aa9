package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/studyhub-service/internal/events"
	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/studyhub-service/internal/validator"
)

type testEnv struct {
	db        *gorm.DB
	repo      repositories.Repository
	publisher *events.MockEventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithCache(t, nil)
}

// newTestEnvWithCache builds the environment with a query cache on redisClient
func newTestEnvWithCache(t *testing.T, redisClient *redis.Client) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, postgres.AutoMigrate(db))

	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db, RedisClient: redisClient})
	t.Cleanup(func() { _ = repo.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testEnv{
		db:        db,
		repo:      repo,
		publisher: events.NewMockEventPublisher(log),
		logger:    log,
		validator: validator.New(),
	}
}

func (e *testEnv) students() StudentService {
	return NewStudentService(e.repo, e.publisher, e.logger, e.validator)
}

func (e *testEnv) tutors() TutorService {
	return NewTutorService(e.repo, e.publisher, e.logger, e.validator)
}

func (e *testEnv) sessions() SessionService {
	return NewSessionService(e.repo, e.publisher, e.logger, e.validator)
}

func (e *testEnv) members() MemberService {
	return NewMemberService(e.repo, e.publisher, e.logger, e.validator)
}

func (e *testEnv) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func (e *testEnv) createSession(t *testing.T, student, tutorEmail, subject, duration string) *models.Session {
	t.Helper()
	session, err := e.sessions().Create(context.Background(), &CreateSessionRequest{
		Student:      student,
		StudentEmail: strings.ToLower(student) + "@x.com",
		Tutor:        "Tutor",
		TutorEmail:   tutorEmail,
		Subject:      subject,
		Time:         "17:30",
		Day:          "2025-03-29",
		Duration:     duration,
	})
	require.NoError(t, err)
	return session
}

// brokenMembers fails selected member writes
type brokenMembers struct {
	repositories.MemberRepository
	createErr error
	updateErr error
	deleteErr error
}

func (m *brokenMembers) Create(ctx context.Context, member *models.Member) error {
	if m.createErr != nil {
		return m.createErr
	}
	return m.MemberRepository.Create(ctx, member)
}

func (m *brokenMembers) Update(ctx context.Context, member *models.Member) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	return m.MemberRepository.Update(ctx, member)
}

func (m *brokenMembers) DeleteByEmail(ctx context.Context, email string, role models.MemberRole) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	return m.MemberRepository.DeleteByEmail(ctx, email, role)
}

type repoWithMembers struct {
	repositories.Repository
	members repositories.MemberRepository
}

func (r *repoWithMembers) Member() repositories.MemberRepository {
	return r.members
}

func (e *testEnv) withBrokenMembers(b *brokenMembers) repositories.Repository {
	b.MemberRepository = e.repo.Member()
	return &repoWithMembers{Repository: e.repo, members: b}
}

var errStoreDown = errors.New("store unavailable")
