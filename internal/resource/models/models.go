// Package models defines resource-service records.
package models

import (
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
)

// User is a provisioned profile. Its ID is the identity id assigned by the
// identity service.
type User struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Role  common.Role `json:"role"`
	Email string      `json:"email"`
	Notes *string     `json:"notes"`
}

// Course is created by an instructor. Titles are not unique.
type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	InstructorID string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Enrollment links a student to a course; (StudentID, CourseID) is unique.
type Enrollment struct {
	ID        string
	StudentID string
	CourseID  string
	CreatedAt time.Time
}

// EnrollmentView is the diagnostic projection of an enrollment.
type EnrollmentView struct {
	User   *string `json:"user"`
	Course *string `json:"course"`
}
