package models

import "time"

type Tutor struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null;size:100"`
	Email     string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Expertise string `json:"expertise" gorm:"not null;size:200"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Tutor) TableName() string {
	return "tutors"
}

// AsMember returns the projection row mirroring the tutor
func (t *Tutor) AsMember() *Member {
	return &Member{Name: t.Name, Email: t.Email, Role: RoleTutor}
}
