package models

import (
	"time"
)

// StudentAssignment is an assignment uploaded by a student for a professor's
// review, based on the 'student_assignments' table.
type StudentAssignment struct {
	ID             int64                   `json:"id" db:"id"`
	StudentEmail   string                  `json:"studentEmail" db:"student_email"`
	Title          string                  `json:"title" db:"title"`
	FileURL        string                  `json:"fileUrl" db:"file_url"`
	ProfessorEmail string                  `json:"professorEmail" db:"professor_email"`
	Status         StudentAssignmentStatus `json:"status" db:"status"`
	Feedback       *string                 `json:"feedback,omitempty" db:"feedback"`
	UploadedAt     time.Time               `json:"uploadedAt" db:"uploaded_at"`
}

// ForwardedAssignment is an assignment record created by a HOD for
// department-level review, based on the 'forwarded_assignments' table.
// The professor's department is NOT stored here; HOD visibility is resolved
// against the users table at read time so it always reflects current
// membership.
type ForwardedAssignment struct {
	ID             int64                     `json:"id" db:"id"`
	StudentEmail   string                    `json:"studentEmail" db:"student_email"`
	Title          string                    `json:"title" db:"title"`
	FileURL        string                    `json:"fileUrl" db:"file_url"`
	ProfessorEmail string                    `json:"professorEmail" db:"professor_email"`
	HodEmail       string                    `json:"hodEmail" db:"hod_email"`
	Department     string                    `json:"department" db:"department"`
	Status         ForwardedAssignmentStatus `json:"status" db:"status"`
	UploadedAt     time.Time                 `json:"uploadedAt" db:"uploaded_at"`
}

// PasswordResetCode is a single-use OTP stored in the
// 'password_reset_codes' table. One active code per email; a new request
// overwrites the previous record.
type PasswordResetCode struct {
	Email     string    `json:"email" db:"email"`
	Code      string    `json:"code" db:"code"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}
