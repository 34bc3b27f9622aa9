package repositories

import "context"

// Cache states reported by Repository.CacheStatus
const (
	CacheDisabled = "disabled"
	CacheUp       = "up"
	CacheDown     = "down"
)

// Repository aggregates every repository of the service
type Repository interface {
	// Primary entities
	Student() StudentRepository
	Tutor() TutorRepository
	Session() SessionRepository

	// Member projection and its failure journal
	Member() MemberRepository
	SyncFailure() SyncFailureRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error
	CacheStatus(ctx context.Context) string

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
