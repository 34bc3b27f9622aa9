package models

import "time"

type Student struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null;size:100"`
	Email string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Year  string `json:"year" gorm:"not null;size:50"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Student) TableName() string {
	return "students"
}

// AsMember returns the projection row mirroring the student
func (s *Student) AsMember() *Member {
	return &Member{Name: s.Name, Email: s.Email, Role: RoleStudent}
}
