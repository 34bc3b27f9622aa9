package validator

// StudentCreateRequest is the body of POST /student
type StudentCreateRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
	Year  string `json:"year" validate:"required,notblank,max=50"`
}

// StudentUpdateRequest is the body of PATCH /student/:id; absent fields are left unchanged
type StudentUpdateRequest struct {
	Name  *string `json:"name" validate:"omitnil,notblank,max=100"`
	Email *string `json:"email" validate:"omitnil,email,max=255"`
	Year  *string `json:"year" validate:"omitnil,notblank,max=50"`
}

// TutorCreateRequest is the body of POST /tutor
type TutorCreateRequest struct {
	Name      string `json:"name" validate:"required,notblank,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Expertise string `json:"expertise" validate:"required,notblank,max=200"`
}

// TutorUpdateRequest is the body of PATCH /tutor/:id
type TutorUpdateRequest struct {
	Name      *string `json:"name" validate:"omitnil,notblank,max=100"`
	Email     *string `json:"email" validate:"omitnil,email,max=255"`
	Expertise *string `json:"expertise" validate:"omitnil,notblank,max=200"`
}

// MemberCreateRequest is the body of POST /member
type MemberCreateRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role" validate:"required,member_role"`
}

// MemberUpdateRequest is the body of PATCH /member/:id
type MemberUpdateRequest struct {
	Name  *string `json:"name" validate:"omitnil,notblank,max=100"`
	Email *string `json:"email" validate:"omitnil,email,max=255"`
	Role  *string `json:"role" validate:"omitnil,member_role"`
}

// SessionCreateRequest is the flat body of POST /session
type SessionCreateRequest struct {
	Student      string `json:"student" validate:"required,notblank,max=100"`
	StudentEmail string `json:"studentEmail" validate:"required,email,max=255"`
	Tutor        string `json:"tutor" validate:"required,notblank,max=100"`
	TutorEmail   string `json:"tutorEmail" validate:"required,email,max=255"`
	Subject      string `json:"subject" validate:"required,notblank,max=200"`
	Time         string `json:"time" validate:"required,clock"`
	Day          string `json:"day" validate:"required,isodate"`
	Duration     string `json:"duration" validate:"required,notblank,max=50"`
}

// SessionUpdateRequest is the body of PATCH /session/:id
type SessionUpdateRequest struct {
	Student      *string `json:"student" validate:"omitnil,notblank,max=100"`
	StudentEmail *string `json:"studentEmail" validate:"omitnil,email,max=255"`
	Tutor        *string `json:"tutor" validate:"omitnil,notblank,max=100"`
	TutorEmail   *string `json:"tutorEmail" validate:"omitnil,email,max=255"`
	Subject      *string `json:"subject" validate:"omitnil,notblank,max=200"`
	Time         *string `json:"time" validate:"omitnil,clock"`
	Day          *string `json:"day" validate:"omitnil,isodate"`
	Duration     *string `json:"duration" validate:"omitnil,notblank,max=50"`
}

// SessionQuery carries the optional report criteria from the query string
type SessionQuery struct {
	Student     string `form:"student" json:"student,omitempty" validate:"omitempty,max=100"`
	Tutor       string `form:"tutor" json:"tutor,omitempty" validate:"omitempty,max=100"`
	Subject     string `form:"subject" json:"subject,omitempty" validate:"omitempty,max=200"`
	Day         string `form:"day" json:"day,omitempty" validate:"omitempty,isodate"`
	Time        string `form:"time" json:"time,omitempty" validate:"omitempty,clock"`
	Duration    string `form:"duration" json:"duration,omitempty" validate:"omitempty,max=50"`
	MinDuration string `form:"minDuration" json:"minDuration,omitempty" validate:"omitempty,integer"`
}
