package models

import "time"

// Participant is a name+email snapshot taken when the session is written.
// It does not follow later edits of the Student or Tutor record.
type Participant struct {
	Name  string `json:"name" gorm:"not null;size:100"`
	Email string `json:"email" gorm:"not null;size:255;index"`
}

type Session struct {
	ID       uint        `json:"id" gorm:"primaryKey"`
	Student  Participant `json:"student" gorm:"embedded;embeddedPrefix:student_"`
	Tutor    Participant `json:"tutor" gorm:"embedded;embeddedPrefix:tutor_"`
	Subject  string      `json:"subject" gorm:"not null;size:200"`
	Time     string      `json:"time" gorm:"not null;size:5"`
	Day      string      `json:"day" gorm:"not null;size:10;index"`
	Duration string      `json:"duration" gorm:"not null;size:50"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Session) TableName() string {
	return "sessions"
}
