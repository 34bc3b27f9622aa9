package models

import (
	"time"

	"gorm.io/datatypes"
)

type SyncOperation string

const (
	SyncCreate  SyncOperation = "create"
	SyncUpdate  SyncOperation = "update"
	SyncDelete  SyncOperation = "delete"
	SyncCascade SyncOperation = "cascade"
)

// SyncFailure records a secondary write of the member projection (or a tutor
// session cascade) that failed after the primary write had committed.
type SyncFailure struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Operation SyncOperation  `json:"operation" gorm:"not null;size:20;index"`
	Role      MemberRole     `json:"role" gorm:"not null;size:20"`
	Email     string         `json:"email" gorm:"not null;size:255;index"`
	EntityID  uint           `json:"entityId"`
	Reason    string         `json:"reason" gorm:"type:text"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (SyncFailure) TableName() string {
	return "sync_failures"
}

// All returns every persisted model, in migration order
func All() []interface{} {
	return []interface{}{
		&Student{},
		&Tutor{},
		&Member{},
		&Session{},
		&SyncFailure{},
	}
}
