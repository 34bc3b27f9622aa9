package models

import (
	"strings"
	"time"
)

type MemberRole string

const (
	RoleStudent MemberRole = "student"
	RoleTutor   MemberRole = "tutor"
)

func (r MemberRole) IsValid() bool {
	return r == RoleStudent || r == RoleTutor
}

// Member is the denormalized directory row kept in step with a Student or a Tutor.
// (email, role) is unique so one person can be both a student and a tutor.
type Member struct {
	ID    uint       `json:"id" gorm:"primaryKey"`
	Name  string     `json:"name" gorm:"not null;size:100"`
	Email string     `json:"email" gorm:"not null;size:255;uniqueIndex:idx_members_email_role"`
	Role  MemberRole `json:"role" gorm:"not null;size:20;uniqueIndex:idx_members_email_role;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Member) TableName() string {
	return "members"
}

// NormalizeEmail is the single email policy of the service: trimmed, lower case,
// compared exactly.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
