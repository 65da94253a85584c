package models

import (
	"time"
)

// User defines the account model based on the 'users' table. A single table
// carries every role; the role tag decides which workflow actions the account
// may perform.
type User struct {
	ID         int64     `json:"id" db:"id"`
	FullName   string    `json:"fullName" db:"full_name"`
	Email      string    `json:"email" db:"email"`
	Password   string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Role       Role      `json:"role" db:"role"`
	Department string    `json:"department" db:"department"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Department defines the department model based on the 'departments' table
type Department struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
