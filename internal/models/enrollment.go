package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusActive  EnrollmentStatus = "ACTIVE"
	EnrollmentStatusDropped EnrollmentStatus = "DROPPED"
)

// Enrollment captures a student's registration to a course within a term,
// carrying everything the pricing resolver needs about the course.
type Enrollment struct {
	ID              string           `db:"id" json:"id"`
	StudentID       string           `db:"student_id" json:"student_id"`
	TermID          string           `db:"term_id" json:"term_id"`
	CourseCode      string           `db:"course_code" json:"course_code"`
	CourseTitle     string           `db:"course_title" json:"course_title"`
	Credits         int              `db:"credits" json:"credits"`
	IsSeniorProject bool             `db:"is_senior_project" json:"is_senior_project"`
	Status          EnrollmentStatus `db:"status" json:"status"`
	JoinedAt        time.Time        `db:"joined_at" json:"joined_at"`
}
