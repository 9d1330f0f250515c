package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// NotePatternRepository reads the clerk-note pattern table.
type NotePatternRepository struct {
	db *sqlx.DB
}

// NewNotePatternRepository constructs the repository.
func NewNotePatternRepository(db *sqlx.DB) *NotePatternRepository {
	return &NotePatternRepository{db: db}
}

// ListActive returns active note patterns. Longer patterns come first so a
// note mentioning "early bird extended" matches the more specific row.
func (r *NotePatternRepository) ListActive(ctx context.Context) ([]models.NotePattern, error) {
	const query = `SELECT id, pattern, rule_code, expected_percentage, active, created_at
        FROM note_patterns WHERE active = TRUE ORDER BY LENGTH(pattern) DESC, pattern`
	var patterns []models.NotePattern
	if err := r.db.SelectContext(ctx, &patterns, query); err != nil {
		return nil, fmt.Errorf("list active note patterns: %w", err)
	}
	return patterns, nil
}
