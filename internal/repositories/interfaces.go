package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/studyhub-service/internal/models"
)

var (
	// ErrNotFound is returned when the addressed row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write
	ErrDuplicate = errors.New("duplicate record")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// ===== FILTER STRUCTS =====

// SessionFilters holds the store-side criteria of a session query.
// Substring fields are matched case-insensitively; Day and Time exactly.
type SessionFilters struct {
	Student  *string `json:"student,omitempty"`
	Tutor    *string `json:"tutor,omitempty"`
	Subject  *string `json:"subject,omitempty"`
	Duration *string `json:"duration,omitempty"`
	Day      *string `json:"day,omitempty"`
	Time     *string `json:"time,omitempty"`
}

type MemberFilters struct {
	Role *models.MemberRole `json:"role,omitempty"`
}

// ===== REPOSITORIES =====

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) (int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}

type TutorRepository interface {
	Create(ctx context.Context, tutor *models.Tutor) error
	GetByID(ctx context.Context, id uint) (*models.Tutor, error)
	GetByEmail(ctx context.Context, email string) (*models.Tutor, error)
	List(ctx context.Context) ([]*models.Tutor, error)
	Update(ctx context.Context, tutor *models.Tutor) error
	Delete(ctx context.Context, id uint) (int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByEmail(ctx context.Context, email string, role models.MemberRole) (*models.Member, error)
	List(ctx context.Context, filters MemberFilters) ([]*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uint) (int64, error)
	DeleteByEmail(ctx context.Context, email string, role models.MemberRole) (int64, error)
	ExistsByEmail(ctx context.Context, email string, role models.MemberRole, excludeID uint) (bool, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id uint) (*models.Session, error)
	List(ctx context.Context, filters SessionFilters) ([]*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id uint) (int64, error)
	DeleteByTutorEmail(ctx context.Context, email string) (int64, error)
}

type SyncFailureRepository interface {
	Create(ctx context.Context, failure *models.SyncFailure) error
	List(ctx context.Context, limit int) ([]*models.SyncFailure, error)
}
