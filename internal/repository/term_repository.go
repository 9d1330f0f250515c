package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// TermRepository looks up billing terms.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository constructs the repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// FindByCode returns the term behind a payment record's term code.
func (r *TermRepository) FindByCode(ctx context.Context, code string) (*models.Term, error) {
	const query = `SELECT id, code, name, academic_year, start_date, end_date, is_active, created_at
        FROM terms WHERE code = $1`
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, code); err != nil {
		return nil, err
	}
	return &term, nil
}
