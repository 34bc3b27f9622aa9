package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
)

type TutorPostgreSQL struct {
	db *gorm.DB
}

func NewTutorPostgreSQL(db *gorm.DB) repositories.TutorRepository {
	return &TutorPostgreSQL{db: db}
}

func (r *TutorPostgreSQL) Create(ctx context.Context, tutor *models.Tutor) error {
	if err := r.db.WithContext(ctx).Create(tutor).Error; err != nil {
		return fmt.Errorf("failed to create tutor: %w", translateError(err))
	}
	return nil
}

func (r *TutorPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Tutor, error) {
	var tutor models.Tutor
	if err := r.db.WithContext(ctx).First(&tutor, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get tutor %d: %w", id, translateError(err))
	}
	return &tutor, nil
}

func (r *TutorPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.Tutor, error) {
	var tutor models.Tutor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&tutor).Error; err != nil {
		return nil, fmt.Errorf("failed to get tutor by email: %w", translateError(err))
	}
	return &tutor, nil
}

func (r *TutorPostgreSQL) List(ctx context.Context) ([]*models.Tutor, error) {
	var tutors []*models.Tutor
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&tutors).Error; err != nil {
		return nil, fmt.Errorf("failed to list tutors: %w", err)
	}
	return tutors, nil
}

func (r *TutorPostgreSQL) Update(ctx context.Context, tutor *models.Tutor) error {
	result := r.db.WithContext(ctx).
		Model(&models.Tutor{ID: tutor.ID}).
		Select("name", "email", "expertise", "updated_at").
		Updates(tutor)
	if result.Error != nil {
		return fmt.Errorf("failed to update tutor %d: %w", tutor.ID, translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update tutor %d: %w", tutor.ID, repositories.ErrNotFound)
	}
	return nil
}

func (r *TutorPostgreSQL) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Tutor{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete tutor %d: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *TutorPostgreSQL) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Tutor{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check tutor email: %w", err)
	}
	return count > 0, nil
}
