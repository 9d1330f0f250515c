package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// EnrollmentRepository reads the enrollment/catalog tables.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListActiveByStudentAndTerm returns the billable enrollments for a
// student/term pair.
func (r *EnrollmentRepository) ListActiveByStudentAndTerm(ctx context.Context, studentID, termID string) ([]models.Enrollment, error) {
	const query = `SELECT id, student_id, term_id, course_code, course_title, credits, is_senior_project, status, joined_at
        FROM enrollments WHERE student_id = $1 AND term_id = $2 AND status = $3 ORDER BY course_code`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID, termID, models.EnrollmentStatusActive); err != nil {
		return nil, fmt.Errorf("list enrollments for student %s term %s: %w", studentID, termID, err)
	}
	return enrollments, nil
}
