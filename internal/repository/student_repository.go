package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// StudentRepository looks up the student directory.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByExternalID returns the student behind a payment record's identifier.
func (r *StudentRepository) FindByExternalID(ctx context.Context, externalID string) (*models.Student, error) {
	const query = `SELECT id, external_id, full_name, category, active, created_at, updated_at
        FROM students WHERE external_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, externalID); err != nil {
		return nil, err
	}
	return &student, nil
}
