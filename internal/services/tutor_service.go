package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/studyhub-service/internal/events"
	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
	"github.com/SAP-F-2025/studyhub-service/internal/validator"
)

type tutorService struct {
	repo      repositories.Repository
	sync      *projectionSync
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTutorService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) TutorService {
	return &tutorService{
		repo:      repo,
		sync:      newProjectionSync(repo, publisher, logger),
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *tutorService) Create(ctx context.Context, req *CreateTutorRequest) (*TutorCreateResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tutor := &models.Tutor{
		Name:      req.Name,
		Email:     models.NormalizeEmail(req.Email),
		Expertise: req.Expertise,
	}

	exists, err := s.repo.Tutor().ExistsByEmail(ctx, tutor.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check tutor email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("tutor with email %s: %w", tutor.Email, ErrConflict)
	}

	if err := s.repo.Tutor().Create(ctx, tutor); err != nil {
		return nil, mapRepoError(err, "failed to create tutor")
	}

	s.logger.InfoContext(ctx, "Tutor created", "tutor_id", tutor.ID, "email", tutor.Email)
	publish(ctx, s.publisher, s.logger, events.TutorCreated, events.EntityEvent{EntityID: tutor.ID, Email: tutor.Email, Name: tutor.Name})

	result := &TutorCreateResult{Tutor: tutor}
	result.MemberCreated, err = s.sync.onCreate(ctx, tutor.ID, tutor.AsMember())
	return result, err
}

func (s *tutorService) GetByID(ctx context.Context, id uint) (*models.Tutor, error) {
	tutor, err := s.repo.Tutor().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get tutor")
	}
	return tutor, nil
}

func (s *tutorService) List(ctx context.Context) ([]*models.Tutor, error) {
	tutors, err := s.repo.Tutor().List(ctx)
	if err != nil {
		return nil, err
	}
	if tutors == nil {
		tutors = []*models.Tutor{}
	}
	return tutors, nil
}

func (s *tutorService) Update(ctx context.Context, id uint, req *UpdateTutorRequest) (*TutorUpdateResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tutor, err := s.repo.Tutor().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get tutor")
	}
	oldEmail := tutor.Email

	if req.Name != nil {
		tutor.Name = *req.Name
	}
	if req.Expertise != nil {
		tutor.Expertise = *req.Expertise
	}
	if req.Email != nil {
		tutor.Email = models.NormalizeEmail(*req.Email)
		if tutor.Email != oldEmail {
			exists, err := s.repo.Tutor().ExistsByEmail(ctx, tutor.Email, id)
			if err != nil {
				return nil, fmt.Errorf("failed to check tutor email: %w", err)
			}
			if exists {
				return nil, fmt.Errorf("tutor with email %s: %w", tutor.Email, ErrConflict)
			}
		}
	}

	if err := s.repo.Tutor().Update(ctx, tutor); err != nil {
		return nil, mapRepoError(err, "failed to update tutor")
	}

	s.logger.InfoContext(ctx, "Tutor updated", "tutor_id", id, "old_email", oldEmail, "email", tutor.Email)
	publish(ctx, s.publisher, s.logger, events.TutorUpdated, events.EntityEvent{EntityID: id, Email: tutor.Email, Name: tutor.Name})

	result := &TutorUpdateResult{Tutor: tutor, TutorUpdated: 1}
	result.MemberUpdated, err = s.sync.onUpdate(ctx, id, oldEmail, tutor.AsMember())
	if err != nil {
		result.Message = "Tutor updated, but no corresponding member was found or member update failed"
	}
	return result, err
}

// Delete removes the tutor, its member and every session taught under its email
func (s *tutorService) Delete(ctx context.Context, id uint) (*TutorDeleteResult, error) {
	tutor, err := s.repo.Tutor().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get tutor")
	}

	deleted, err := s.repo.Tutor().Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete tutor: %w", err)
	}
	if deleted == 0 {
		return nil, fmt.Errorf("tutor %d: %w", id, ErrNotFound)
	}

	s.logger.InfoContext(ctx, "Tutor deleted", "tutor_id", id, "email", tutor.Email)
	publish(ctx, s.publisher, s.logger, events.TutorDeleted, events.EntityEvent{EntityID: id, Email: tutor.Email})

	member := tutor.AsMember()
	result := &TutorDeleteResult{TutorDeleted: deleted}

	var memberErr, cascadeErr error
	result.MemberDeleted, memberErr = s.sync.onDelete(ctx, id, member)
	result.SessionsDeleted, cascadeErr = s.sync.onTutorCascade(ctx, id, member)

	return result, errors.Join(memberErr, cascadeErr)
}
