package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/studyhub-service/internal/events"
	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
	"github.com/SAP-F-2025/studyhub-service/internal/validator"
)

const msgMemberNotUpdated = "Student updated, but no corresponding member was found or member update failed"

type studentService struct {
	repo      repositories.Repository
	sync      *projectionSync
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		sync:      newProjectionSync(repo, publisher, logger),
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *studentService) Create(ctx context.Context, req *CreateStudentRequest) (*StudentCreateResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:  req.Name,
		Email: models.NormalizeEmail(req.Email),
		Year:  req.Year,
	}

	exists, err := s.repo.Student().ExistsByEmail(ctx, student.Email, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check student email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("student with email %s: %w", student.Email, ErrConflict)
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		return nil, mapRepoError(err, "failed to create student")
	}

	s.logger.InfoContext(ctx, "Student created", "student_id", student.ID, "email", student.Email)
	publish(ctx, s.publisher, s.logger, events.StudentCreated, events.EntityEvent{EntityID: student.ID, Email: student.Email, Name: student.Name})

	result := &StudentCreateResult{Student: student}
	result.MemberCreated, err = s.sync.onCreate(ctx, student.ID, student.AsMember())
	return result, err
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get student")
	}
	return student, nil
}

func (s *studentService) List(ctx context.Context) ([]*models.Student, error) {
	students, err := s.repo.Student().List(ctx)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []*models.Student{}
	}
	return students, nil
}

// Update writes the student, then moves its member from the previous email to the new values
func (s *studentService) Update(ctx context.Context, id uint, req *UpdateStudentRequest) (*StudentUpdateResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get student")
	}
	oldEmail := student.Email

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Year != nil {
		student.Year = *req.Year
	}
	if req.Email != nil {
		student.Email = models.NormalizeEmail(*req.Email)
		if student.Email != oldEmail {
			exists, err := s.repo.Student().ExistsByEmail(ctx, student.Email, id)
			if err != nil {
				return nil, fmt.Errorf("failed to check student email: %w", err)
			}
			if exists {
				return nil, fmt.Errorf("student with email %s: %w", student.Email, ErrConflict)
			}
		}
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, mapRepoError(err, "failed to update student")
	}

	s.logger.InfoContext(ctx, "Student updated", "student_id", id, "old_email", oldEmail, "email", student.Email)
	publish(ctx, s.publisher, s.logger, events.StudentUpdated, events.EntityEvent{EntityID: id, Email: student.Email, Name: student.Name})

	result := &StudentUpdateResult{Student: student, StudentUpdated: 1}
	result.MemberUpdated, err = s.sync.onUpdate(ctx, id, oldEmail, student.AsMember())
	if err != nil {
		result.Message = msgMemberNotUpdated
	}
	return result, err
}

func (s *studentService) Delete(ctx context.Context, id uint) (*StudentDeleteResult, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get student")
	}

	deleted, err := s.repo.Student().Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete student: %w", err)
	}
	if deleted == 0 {
		return nil, fmt.Errorf("student %d: %w", id, ErrNotFound)
	}

	s.logger.InfoContext(ctx, "Student deleted", "student_id", id, "email", student.Email)
	publish(ctx, s.publisher, s.logger, events.StudentDeleted, events.EntityEvent{EntityID: id, Email: student.Email})

	result := &StudentDeleteResult{StudentDeleted: deleted}
	result.MemberDeleted, err = s.sync.onDelete(ctx, id, student.AsMember())
	return result, err
}
