package services

import (
	"context"

	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type CreateStudentRequest = validator.StudentCreateRequest
type UpdateStudentRequest = validator.StudentUpdateRequest
type CreateTutorRequest = validator.TutorCreateRequest
type UpdateTutorRequest = validator.TutorUpdateRequest
type CreateMemberRequest = validator.MemberCreateRequest
type UpdateMemberRequest = validator.MemberUpdateRequest
type CreateSessionRequest = validator.SessionCreateRequest
type UpdateSessionRequest = validator.SessionUpdateRequest
type SessionQuery = validator.SessionQuery

type StudentCreateResult struct {
	Student       *models.Student `json:"student"`
	MemberCreated int64           `json:"memberCreated"`
}

type StudentUpdateResult struct {
	Student        *models.Student `json:"student"`
	StudentUpdated int64           `json:"studentUpdated"`
	MemberUpdated  int64           `json:"memberUpdated"`
	Message        string          `json:"message,omitempty"`
}

type StudentDeleteResult struct {
	StudentDeleted int64 `json:"studentDeleted"`
	MemberDeleted  int64 `json:"memberDeleted"`
}

type TutorCreateResult struct {
	Tutor         *models.Tutor `json:"tutor"`
	MemberCreated int64         `json:"memberCreated"`
}

type TutorUpdateResult struct {
	Tutor         *models.Tutor `json:"tutor"`
	TutorUpdated  int64         `json:"tutorUpdated"`
	MemberUpdated int64         `json:"memberUpdated"`
	Message       string        `json:"message,omitempty"`
}

type TutorDeleteResult struct {
	TutorDeleted    int64 `json:"tutorDeleted"`
	MemberDeleted   int64 `json:"memberDeleted"`
	SessionsDeleted int64 `json:"sessionsDeleted"`
}

type ReconcileResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
}

// ===== SERVICE INTERFACES =====

// StudentService owns students and keeps their member rows in step.
// Create, Update and Delete return a *PartialFailureError together with a
// non-nil result when the student was written but its member was not.
type StudentService interface {
	Create(ctx context.Context, req *CreateStudentRequest) (*StudentCreateResult, error)
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, id uint, req *UpdateStudentRequest) (*StudentUpdateResult, error)
	Delete(ctx context.Context, id uint) (*StudentDeleteResult, error)
}

// TutorService mirrors StudentService and cascades deletes to sessions
type TutorService interface {
	Create(ctx context.Context, req *CreateTutorRequest) (*TutorCreateResult, error)
	GetByID(ctx context.Context, id uint) (*models.Tutor, error)
	List(ctx context.Context) ([]*models.Tutor, error)
	Update(ctx context.Context, id uint, req *UpdateTutorRequest) (*TutorUpdateResult, error)
	Delete(ctx context.Context, id uint) (*TutorDeleteResult, error)
}

type SessionService interface {
	Create(ctx context.Context, req *CreateSessionRequest) (*models.Session, error)
	GetByID(ctx context.Context, id uint) (*models.Session, error)
	Query(ctx context.Context, query *SessionQuery) ([]*models.Session, error)
	Update(ctx context.Context, id uint, req *UpdateSessionRequest) (*models.Session, error)
	Delete(ctx context.Context, id uint) error
}

type MemberService interface {
	Create(ctx context.Context, req *CreateMemberRequest) (*models.Member, error)
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	List(ctx context.Context, role string) ([]*models.Member, error)
	Update(ctx context.Context, id uint, req *UpdateMemberRequest) (*models.Member, error)
	Delete(ctx context.Context, id uint) error
	SyncFailures(ctx context.Context, limit int) ([]*models.SyncFailure, error)
	Reconcile(ctx context.Context) (*ReconcileResult, error)
}

type ReportService interface {
	Sessions(ctx context.Context, query *SessionQuery) ([]*models.Session, error)
	ExportSessions(ctx context.Context, query *SessionQuery) ([]byte, error)
}

// ServiceManager wires the services and owns their lifecycle
type ServiceManager interface {
	Student() StudentService
	Tutor() TutorService
	Session() SessionService
	Member() MemberService
	Report() ReportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	CacheStatus(ctx context.Context) string
	Shutdown(ctx context.Context) error
}
