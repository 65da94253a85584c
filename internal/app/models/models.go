package models

// Role identifies what workflow actions an account may invoke.
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
	RoleHod       Role = "hod"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one of the known account roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleHod, RoleAdmin:
		return true
	}
	return false
}

// StudentAssignmentStatus is the review state of a student submission.
type StudentAssignmentStatus string

const (
	StatusSubmitted StudentAssignmentStatus = "Submitted"
	StatusAccepted  StudentAssignmentStatus = "accepted"
	StatusRejected  StudentAssignmentStatus = "rejected"
)

// ForwardedAssignmentStatus is the state of a HOD-forwarded assignment.
type ForwardedAssignmentStatus string

const (
	ForwardedStatusDraft     ForwardedAssignmentStatus = "Draft"
	ForwardedStatusForwarded ForwardedAssignmentStatus = "Forwarded"
	ForwardedStatusApproved  ForwardedAssignmentStatus = "Approved"
	ForwardedStatusRejected  ForwardedAssignmentStatus = "Rejected"
)
