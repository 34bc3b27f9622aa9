package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/studyhub-service/internal/events"
	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
	"github.com/SAP-F-2025/studyhub-service/internal/validator"
)

type sessionService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSessionService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) SessionService {
	return &sessionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *sessionService) Create(ctx context.Context, req *CreateSessionRequest) (*models.Session, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	session := &models.Session{
		Student:  models.Participant{Name: req.Student, Email: models.NormalizeEmail(req.StudentEmail)},
		Tutor:    models.Participant{Name: req.Tutor, Email: models.NormalizeEmail(req.TutorEmail)},
		Subject:  req.Subject,
		Time:     req.Time,
		Day:      req.Day,
		Duration: req.Duration,
	}

	if err := s.repo.Session().Create(ctx, session); err != nil {
		return nil, mapRepoError(err, "failed to create session")
	}

	s.logger.InfoContext(ctx, "Session created", "session_id", session.ID, "tutor_email", session.Tutor.Email)
	publish(ctx, s.publisher, s.logger, events.SessionCreated, events.EntityEvent{EntityID: session.ID, Email: session.Tutor.Email, Name: session.Subject})

	return session, nil
}

func (s *sessionService) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	session, err := s.repo.Session().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get session")
	}
	return session, nil
}

// Query returns the sessions matching every given criterion, oldest first.
// A malformed day, time or minDuration is a validation error.
func (s *sessionService) Query(ctx context.Context, query *SessionQuery) ([]*models.Session, error) {
	if query == nil {
		query = &SessionQuery{}
	}
	if err := s.validator.Validate(query); err != nil {
		return nil, err
	}

	sessions, err := s.repo.Session().List(ctx, toSessionFilters(query))
	if err != nil {
		return nil, err
	}

	if query.MinDuration != "" {
		minimum, err := strconv.Atoi(query.MinDuration)
		if err != nil {
			return nil, validator.ValidationErrors{{
				Field:   "minDuration",
				Message: "minDuration must be a whole number",
				Value:   query.MinDuration,
				Rule:    "number",
			}}
		}
		sessions = filterMinDuration(sessions, minimum)
	}

	if sessions == nil {
		sessions = []*models.Session{}
	}
	return sessions, nil
}

func (s *sessionService) Update(ctx context.Context, id uint, req *UpdateSessionRequest) (*models.Session, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	session, err := s.repo.Session().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get session")
	}

	if req.Student != nil {
		session.Student.Name = *req.Student
	}
	if req.StudentEmail != nil {
		session.Student.Email = models.NormalizeEmail(*req.StudentEmail)
	}
	if req.Tutor != nil {
		session.Tutor.Name = *req.Tutor
	}
	if req.TutorEmail != nil {
		session.Tutor.Email = models.NormalizeEmail(*req.TutorEmail)
	}
	if req.Subject != nil {
		session.Subject = *req.Subject
	}
	if req.Time != nil {
		session.Time = *req.Time
	}
	if req.Day != nil {
		session.Day = *req.Day
	}
	if req.Duration != nil {
		session.Duration = *req.Duration
	}

	if err := s.repo.Session().Update(ctx, session); err != nil {
		return nil, mapRepoError(err, "failed to update session")
	}

	s.logger.InfoContext(ctx, "Session updated", "session_id", id)
	publish(ctx, s.publisher, s.logger, events.SessionUpdated, events.EntityEvent{EntityID: id, Email: session.Tutor.Email, Name: session.Subject})

	return session, nil
}

func (s *sessionService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Session().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("session %d: %w", id, ErrNotFound)
	}

	s.logger.InfoContext(ctx, "Session deleted", "session_id", id)
	publish(ctx, s.publisher, s.logger, events.SessionDeleted, events.EntityEvent{EntityID: id})

	return nil
}

func toSessionFilters(query *SessionQuery) repositories.SessionFilters {
	return repositories.SessionFilters{
		Student:  optional(query.Student),
		Tutor:    optional(query.Tutor),
		Subject:  optional(query.Subject),
		Duration: optional(query.Duration),
		Day:      optional(query.Day),
		Time:     optional(query.Time),
	}
}

// optional maps a blank criterion to "not given"
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// durationMinutes reads a duration as a whole number of minutes
func durationMinutes(duration string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(duration))
	if err != nil {
		return 0, false
	}
	return n, true
}

// filterMinDuration keeps sessions with a numeric duration of at least minimum
func filterMinDuration(sessions []*models.Session, minimum int) []*models.Session {
	out := make([]*models.Session, 0, len(sessions))
	for _, session := range sessions {
		if n, ok := durationMinutes(session.Duration); ok && n >= minimum {
			out = append(out, session)
		}
	}
	return out
}
