package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
)

type SyncFailurePostgreSQL struct {
	db *gorm.DB
}

func NewSyncFailurePostgreSQL(db *gorm.DB) repositories.SyncFailureRepository {
	return &SyncFailurePostgreSQL{db: db}
}

func (r *SyncFailurePostgreSQL) Create(ctx context.Context, failure *models.SyncFailure) error {
	if err := r.db.WithContext(ctx).Create(failure).Error; err != nil {
		return fmt.Errorf("failed to record sync failure: %w", err)
	}
	return nil
}

// List returns the most recent failures first
func (r *SyncFailurePostgreSQL) List(ctx context.Context, limit int) ([]*models.SyncFailure, error) {
	var failures []*models.SyncFailure
	query := r.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&failures).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync failures: %w", err)
	}
	return failures, nil
}
