package dto

import "github.com/eduflow/eduflow/internal/app/models"

// CreateDepartmentRequest creates a new department
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateUserRequest is an admin-issued account. No password field: a
// temporary password is generated and emailed to the user.
type CreateUserRequest struct {
	FullName   string      `json:"fullName" binding:"required"`
	Email      string      `json:"email" binding:"required,email"`
	Role       models.Role `json:"role" binding:"required"`
	Department string      `json:"department" binding:"required"`
}

// UpdateUserRequest is an admin edit of an existing account
type UpdateUserRequest struct {
	FullName   string      `json:"fullName" binding:"required"`
	Role       models.Role `json:"role" binding:"required"`
	Department string      `json:"department" binding:"required"`
}

// DepartmentCount is a {department, count} aggregate pair
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// DashboardCounts aggregates the admin dashboard numbers. DepartmentCounts is
// always an array, empty when there are no users.
type DashboardCounts struct {
	DepartmentCounts []DepartmentCount `json:"departmentCounts"`
	StudentCount     int64             `json:"studentCount"`
	ProfessorCount   int64             `json:"professorCount"`
	HodCount         int64             `json:"hodCount"`
}
