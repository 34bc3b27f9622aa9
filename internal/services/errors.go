package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/studyhub-service/internal/models"
	"github.com/SAP-F-2025/studyhub-service/internal/repositories"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

// PartialFailureError reports a primary write that committed while the
// follow-up write (member projection or session cascade) did not.
type PartialFailureError struct {
	Operation models.SyncOperation
	Role      models.MemberRole
	Email     string
	EntityID  uint
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s %d saved, %s sync of %s failed: %v",
		e.Role, e.EntityID, e.Operation, e.Email, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// AsPartialFailure extracts the first PartialFailureError in err's chain
func AsPartialFailure(err error) (*PartialFailureError, bool) {
	var pf *PartialFailureError
	if errors.As(err, &pf) {
		return pf, true
	}
	return nil, false
}

// mapRepoError turns repository sentinels into service sentinels
func mapRepoError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case repositories.IsNotFoundError(err):
		return fmt.Errorf("%s: %w", action, ErrNotFound)
	case repositories.IsDuplicateError(err):
		return fmt.Errorf("%s: %w", action, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
