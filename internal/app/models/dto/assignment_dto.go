package dto

import "github.com/eduflow/eduflow/internal/app/models"

// DecisionRequest carries a professor's accept/reject decision.
// Feedback is optional and only stored on rejection.
type DecisionRequest struct {
	Status   string `json:"status" binding:"required"`
	Feedback string `json:"feedback"`
}

// HodDecisionRequest carries a HOD's approval decision on a forwarded
// assignment.
type HodDecisionRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignmentListResponse wraps a list of student assignments. Assignments is
// always an array, empty when there are no matches.
type AssignmentListResponse struct {
	Success     bool                        `json:"success"`
	Assignments []*models.StudentAssignment `json:"assignments"`
}

// ProfessorAssignmentsResponse is the professor inbox: assignments addressed
// to the professor plus the professor's own department.
type ProfessorAssignmentsResponse struct {
	Success     bool                        `json:"success"`
	Assignments []*models.StudentAssignment `json:"assignments"`
	Department  string                      `json:"department"`
}
