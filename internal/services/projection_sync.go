package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/studyhub-service/internal/events"
	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
)

var errMemberMissing = errors.New("no member matches the previous email")

// projectionSync performs the second leg of every student/tutor write. The
// primary row is never rolled back: a failed step is logged, journaled,
// published as member.sync_failed and returned as *PartialFailureError.
type projectionSync struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func newProjectionSync(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) *projectionSync {
	return &projectionSync{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// onCreate inserts the member mirroring a freshly created entity
func (p *projectionSync) onCreate(ctx context.Context, entityID uint, member *models.Member) (int64, error) {
	if err := p.repo.Member().Create(ctx, member); err != nil {
		return 0, p.fail(ctx, models.SyncCreate, entityID, member, err)
	}
	memberSyncTotal.WithLabelValues(string(models.SyncCreate), string(member.Role), outcomeOK).Inc()
	return 1, nil
}

// onUpdate rewrites the member found under oldEmail with the entity's new values
func (p *projectionSync) onUpdate(ctx context.Context, entityID uint, oldEmail string, member *models.Member) (int64, error) {
	existing, err := p.repo.Member().GetByEmail(ctx, oldEmail, member.Role)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			err = fmt.Errorf("%w: %s", errMemberMissing, oldEmail)
		}
		return 0, p.fail(ctx, models.SyncUpdate, entityID, member, err)
	}

	existing.Name = member.Name
	existing.Email = member.Email
	existing.Role = member.Role
	if err := p.repo.Member().Update(ctx, existing); err != nil {
		return 0, p.fail(ctx, models.SyncUpdate, entityID, member, err)
	}

	memberSyncTotal.WithLabelValues(string(models.SyncUpdate), string(member.Role), outcomeOK).Inc()
	return 1, nil
}

// onDelete removes the member of a deleted entity. A member that is already
// gone is reported as a zero count, not as a failure.
func (p *projectionSync) onDelete(ctx context.Context, entityID uint, member *models.Member) (int64, error) {
	deleted, err := p.repo.Member().DeleteByEmail(ctx, member.Email, member.Role)
	if err != nil {
		return 0, p.fail(ctx, models.SyncDelete, entityID, member, err)
	}

	outcome := outcomeOK
	if deleted == 0 {
		outcome = outcomeMissed
		p.logger.WarnContext(ctx, "No member to delete", "role", member.Role, "email", member.Email, "entity_id", entityID)
	}
	memberSyncTotal.WithLabelValues(string(models.SyncDelete), string(member.Role), outcome).Inc()
	return deleted, nil
}

// onTutorCascade removes the sessions whose tutor snapshot carries the tutor's email
func (p *projectionSync) onTutorCascade(ctx context.Context, entityID uint, member *models.Member) (int64, error) {
	deleted, err := p.repo.Session().DeleteByTutorEmail(ctx, member.Email)
	if err != nil {
		return 0, p.fail(ctx, models.SyncCascade, entityID, member, err)
	}
	return deleted, nil
}

func (p *projectionSync) fail(ctx context.Context, op models.SyncOperation, entityID uint, member *models.Member, cause error) error {
	outcome := outcomeFailed
	if errors.Is(cause, errMemberMissing) {
		outcome = outcomeMissed
	}
	memberSyncTotal.WithLabelValues(string(op), string(member.Role), outcome).Inc()

	p.logger.ErrorContext(ctx, "Member projection step failed",
		"operation", op,
		"role", member.Role,
		"email", member.Email,
		"entity_id", entityID,
		"error", cause)

	payload, _ := json.Marshal(member)
	failure := &models.SyncFailure{
		Operation: op,
		Role:      member.Role,
		Email:     member.Email,
		EntityID:  entityID,
		Reason:    cause.Error(),
		Payload:   datatypes.JSON(payload),
	}
	if err := p.repo.SyncFailure().Create(ctx, failure); err != nil {
		p.logger.ErrorContext(ctx, "Failed to journal sync failure", "operation", op, "email", member.Email, "error", err)
	}

	publish(ctx, p.publisher, p.logger, events.MemberSyncFailed, events.SyncFailedEvent{
		Operation: string(op),
		Role:      string(member.Role),
		Email:     member.Email,
		EntityID:  entityID,
		Reason:    cause.Error(),
	})

	return &PartialFailureError{
		Operation: op,
		Role:      member.Role,
		Email:     member.Email,
		EntityID:  entityID,
		Err:       cause,
	}
}

// publish sends an event; delivery problems are logged and never fail the caller
func publish(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, eventType string, data interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "event_type", eventType, "error", err)
	}
}
