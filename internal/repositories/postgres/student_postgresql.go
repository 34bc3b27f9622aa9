package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (r *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", translateError(err))
	}
	return nil
}

func (r *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get student %d: %w", id, translateError(err))
	}
	return &student, nil
}

func (r *StudentPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		return nil, fmt.Errorf("failed to get student by email: %w", translateError(err))
	}
	return &student, nil
}

func (r *StudentPostgreSQL) List(ctx context.Context) ([]*models.Student, error) {
	var students []*models.Student
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (r *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	result := r.db.WithContext(ctx).
		Model(&models.Student{ID: student.ID}).
		Select("name", "email", "year", "updated_at").
		Updates(student)
	if result.Error != nil {
		return fmt.Errorf("failed to update student %d: %w", student.ID, translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update student %d: %w", student.ID, repositories.ErrNotFound)
	}
	return nil
}

func (r *StudentPostgreSQL) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete student %d: %w", id, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *StudentPostgreSQL) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Student{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check student email: %w", err)
	}
	return count > 0, nil
}
