package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

func TestEnrollmentRepositoryListActiveByStudentAndTerm(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEnrollmentRepository(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "student_id", "term_id", "course_code", "course_title", "credits", "is_senior_project", "status", "joined_at"}).
		AddRow("e1", "s1", "term1", "MATH-101", "Calculus I", 3, false, "ACTIVE", now).
		AddRow("e2", "s1", "term1", "RC-201", "Reading Seminar", 2, false, "ACTIVE", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM enrollments WHERE student_id = $1 AND term_id = $2 AND status = $3")).
		WithArgs("s1", "term1", models.EnrollmentStatusActive).
		WillReturnRows(rows)

	enrollments, err := repo.ListActiveByStudentAndTerm(context.Background(), "s1", "term1")
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	require.Equal(t, "MATH-101", enrollments[0].CourseCode)
	require.Equal(t, 2, enrollments[1].Credits)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryEmptyResult(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewEnrollmentRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM enrollments")).
		WithArgs("s2", "term1", models.EnrollmentStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "term_id", "course_code", "course_title", "credits", "is_senior_project", "status", "joined_at"}))

	enrollments, err := repo.ListActiveByStudentAndTerm(context.Background(), "s2", "term1")
	require.NoError(t, err)
	require.Empty(t, enrollments)
	require.NoError(t, mock.ExpectationsWereMet())
}
