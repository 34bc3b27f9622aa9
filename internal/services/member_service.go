package services

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/SAP-F-2025/studyhub-service/internal/events"
	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
	"github.com/SAP-F-2025/studyhub-service/internal/validator"
)

const defaultSyncFailureLimit = 100

type memberService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewMemberService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) MemberService {
	return &memberService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *memberService) Create(ctx context.Context, req *CreateMemberRequest) (*models.Member, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	member := &models.Member{
		Name:  req.Name,
		Email: models.NormalizeEmail(req.Email),
		Role:  models.MemberRole(req.Role),
	}

	if err := s.ensureUnique(ctx, member, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Member().Create(ctx, member); err != nil {
		return nil, mapRepoError(err, "failed to create member")
	}

	s.logger.InfoContext(ctx, "Member created", "member_id", member.ID, "role", member.Role)
	return member, nil
}

func (s *memberService) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.repo.Member().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get member")
	}
	return member, nil
}

// List returns all members, or only those of role when it is not empty
func (s *memberService) List(ctx context.Context, role string) ([]*models.Member, error) {
	var filters repositories.MemberFilters
	if role != "" {
		r := models.MemberRole(role)
		if !r.IsValid() {
			return nil, validator.ValidationErrors{{
				Field:   "role",
				Message: "role must be either student or tutor",
				Value:   role,
				Rule:    "member_role",
			}}
		}
		filters.Role = &r
	}

	members, err := s.repo.Member().List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []*models.Member{}
	}
	return members, nil
}

func (s *memberService) Update(ctx context.Context, id uint, req *UpdateMemberRequest) (*models.Member, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	member, err := s.repo.Member().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "failed to get member")
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = models.NormalizeEmail(*req.Email)
	}
	if req.Role != nil {
		member.Role = models.MemberRole(*req.Role)
	}

	if err := s.ensureUnique(ctx, member, id); err != nil {
		return nil, err
	}

	if err := s.repo.Member().Update(ctx, member); err != nil {
		return nil, mapRepoError(err, "failed to update member")
	}

	s.logger.InfoContext(ctx, "Member updated", "member_id", id, "role", member.Role)
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Member().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("member %d: %w", id, ErrNotFound)
	}

	s.logger.InfoContext(ctx, "Member deleted", "member_id", id)
	return nil
}

func (s *memberService) SyncFailures(ctx context.Context, limit int) ([]*models.SyncFailure, error) {
	if limit <= 0 {
		limit = defaultSyncFailureLimit
	}

	failures, err := s.repo.SyncFailure().List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if failures == nil {
		failures = []*models.SyncFailure{}
	}
	return failures, nil
}

// Reconcile rebuilds the member table from students and tutors in one
// transaction: missing members are created, drifted names fixed and members
// without a student or tutor removed.
func (s *memberService) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		expected, err := expectedMembers(ctx, tx)
		if err != nil {
			return err
		}

		members, err := tx.Member().List(ctx, repositories.MemberFilters{})
		if err != nil {
			return err
		}

		for _, member := range members {
			key := memberKey(member.Email, member.Role)
			want, ok := expected[key]
			if !ok {
				deleted, err := tx.Member().Delete(ctx, member.ID)
				if err != nil {
					return fmt.Errorf("failed to remove orphan member %d: %w", member.ID, err)
				}
				if deleted > 0 {
					result.Removed++
				}
				continue
			}
			delete(expected, key)

			if member.Name != want.Name {
				member.Name = want.Name
				if err := tx.Member().Update(ctx, member); err != nil {
					return fmt.Errorf("failed to repair member %d: %w", member.ID, err)
				}
				result.Updated++
			}
		}

		for _, missing := range sortedMembers(expected) {
			if err := tx.Member().Create(ctx, missing); err != nil {
				return fmt.Errorf("failed to create missing member %s: %w", missing.Email, err)
			}
			result.Created++
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile members: %w", err)
	}

	reconcileChanges.WithLabelValues("created").Add(float64(result.Created))
	reconcileChanges.WithLabelValues("updated").Add(float64(result.Updated))
	reconcileChanges.WithLabelValues("removed").Add(float64(result.Removed))

	s.logger.InfoContext(ctx, "Members reconciled", "created", result.Created, "updated", result.Updated, "removed", result.Removed)
	publish(ctx, s.publisher, s.logger, events.MemberReconciled, events.ReconciledEvent{
		Created: result.Created,
		Updated: result.Updated,
		Removed: result.Removed,
	})

	return result, nil
}

func (s *memberService) ensureUnique(ctx context.Context, member *models.Member, excludeID uint) error {
	exists, err := s.repo.Member().ExistsByEmail(ctx, member.Email, member.Role, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check member email: %w", err)
	}
	if exists {
		return fmt.Errorf("%s member with email %s: %w", member.Role, member.Email, ErrConflict)
	}
	return nil
}

func memberKey(email string, role models.MemberRole) string {
	return string(role) + "|" + email
}

// expectedMembers derives the member table the primary collections imply
func expectedMembers(ctx context.Context, repo repositories.Repository) (map[string]*models.Member, error) {
	students, err := repo.Student().List(ctx)
	if err != nil {
		return nil, err
	}
	tutors, err := repo.Tutor().List(ctx)
	if err != nil {
		return nil, err
	}

	expected := make(map[string]*models.Member, len(students)+len(tutors))
	for _, student := range students {
		expected[memberKey(student.Email, models.RoleStudent)] = student.AsMember()
	}
	for _, tutor := range tutors {
		expected[memberKey(tutor.Email, models.RoleTutor)] = tutor.AsMember()
	}
	return expected, nil
}

func sortedMembers(members map[string]*models.Member) []*models.Member {
	out := make([]*models.Member, 0, len(members))
	for _, key := range slices.Sorted(maps.Keys(members)) {
		out = append(out, members[key])
	}
	return out
}
