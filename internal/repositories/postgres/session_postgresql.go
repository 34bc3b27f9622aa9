package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/studyhub-service/internal/cache"
	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
)

type SessionPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewSessionPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.SessionRepository {
	return &SessionPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (r *SessionPostgreSQL) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", translateError(err))
	}
	cache.InvalidateSessionCache(ctx, r.cacheManager)
	return nil
}

func (r *SessionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get session %d: %w", id, translateError(err))
	}
	return &session, nil
}

// List returns the sessions matching filters in insertion order. Results are
// cached per filter set until the next session write.
func (r *SessionPostgreSQL) List(ctx context.Context, filters repositories.SessionFilters) ([]*models.Session, error) {
	var sessions []*models.Session
	key := cacheKey("query:", filters)

	err := r.cacheManager.Session.CacheOrExecute(ctx, key, &sessions, r.cacheManager.SessionTTL, func() (interface{}, error) {
		var rows []*models.Session
		query := ApplySessionFilters(r.db.WithContext(ctx).Model(&models.Session{}), filters)
		if err := query.Order("id ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to query sessions: %w", err)
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *SessionPostgreSQL) Update(ctx context.Context, session *models.Session) error {
	result := r.db.WithContext(ctx).
		Model(&models.Session{ID: session.ID}).
		Select("student_name", "student_email", "tutor_name", "tutor_email", "subject", "time", "day", "duration", "updated_at").
		Updates(session)
	if result.Error != nil {
		return fmt.Errorf("failed to update session %d: %w", session.ID, translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update session %d: %w", session.ID, repositories.ErrNotFound)
	}
	cache.InvalidateSessionCache(ctx, r.cacheManager)
	return nil
}

func (r *SessionPostgreSQL) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Session{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete session %d: %w", id, result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateSessionCache(ctx, r.cacheManager)
	}
	return result.RowsAffected, nil
}

// DeleteByTutorEmail removes every session whose tutor snapshot carries email
func (r *SessionPostgreSQL) DeleteByTutorEmail(ctx context.Context, email string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("tutor_email = ?", email).
		Delete(&models.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete sessions of tutor: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateSessionCache(ctx, r.cacheManager)
	}
	return result.RowsAffected, nil
}
