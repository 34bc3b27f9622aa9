package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/studyhub-service/internal/cache"
	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
)

type MemberPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewMemberPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.MemberRepository {
	return &MemberPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (r *MemberPostgreSQL) Create(ctx context.Context, member *models.Member) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return fmt.Errorf("failed to create member: %w", translateError(err))
	}
	invalidateMemberLists(ctx, r.cacheManager)
	return nil
}

func (r *MemberPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get member %d: %w", id, translateError(err))
	}
	return &member, nil
}

// GetByEmail looks a member up by its projection key
func (r *MemberPostgreSQL) GetByEmail(ctx context.Context, email string, role models.MemberRole) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).
		Where("email = ? AND role = ?", email, role).
		First(&member).Error; err != nil {
		return nil, fmt.Errorf("failed to get %s member by email: %w", role, translateError(err))
	}
	return &member, nil
}

// memberListKeys are every key List can cache under: all members and one per role
func memberListKeys() []string {
	student, tutor := models.RoleStudent, models.RoleTutor
	return []string{
		cacheKey("list:", repositories.MemberFilters{}),
		cacheKey("list:", repositories.MemberFilters{Role: &student}),
		cacheKey("list:", repositories.MemberFilters{Role: &tutor}),
	}
}

func invalidateMemberLists(ctx context.Context, cm *cache.CacheManager) {
	cache.SafeDelete(ctx, cm.Member, memberListKeys()...)
}

// List returns members in insertion order, cached per role filter
func (r *MemberPostgreSQL) List(ctx context.Context, filters repositories.MemberFilters) ([]*models.Member, error) {
	var members []*models.Member
	key := cacheKey("list:", filters)

	err := r.cacheManager.Member.CacheOrExecute(ctx, key, &members, r.cacheManager.MemberTTL, func() (interface{}, error) {
		var rows []*models.Member
		query := r.db.WithContext(ctx).Model(&models.Member{})
		if filters.Role != nil {
			query = query.Where("role = ?", *filters.Role)
		}
		if err := query.Order("id ASC").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list members: %w", err)
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *MemberPostgreSQL) Update(ctx context.Context, member *models.Member) error {
	result := r.db.WithContext(ctx).
		Model(&models.Member{ID: member.ID}).
		Select("name", "email", "role", "updated_at").
		Updates(member)
	if result.Error != nil {
		return fmt.Errorf("failed to update member %d: %w", member.ID, translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update member %d: %w", member.ID, repositories.ErrNotFound)
	}
	invalidateMemberLists(ctx, r.cacheManager)
	return nil
}

func (r *MemberPostgreSQL) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Member{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete member %d: %w", id, result.Error)
	}
	if result.RowsAffected > 0 {
		invalidateMemberLists(ctx, r.cacheManager)
	}
	return result.RowsAffected, nil
}

func (r *MemberPostgreSQL) DeleteByEmail(ctx context.Context, email string, role models.MemberRole) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("email = ? AND role = ?", email, role).
		Delete(&models.Member{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete %s member by email: %w", role, result.Error)
	}
	if result.RowsAffected > 0 {
		invalidateMemberLists(ctx, r.cacheManager)
	}
	return result.RowsAffected, nil
}

func (r *MemberPostgreSQL) ExistsByEmail(ctx context.Context, email string, role models.MemberRole, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Member{}).Where("email = ? AND role = ?", email, role)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check member email: %w", err)
	}
	return count > 0, nil
}
