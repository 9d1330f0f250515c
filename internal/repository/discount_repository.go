package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// DiscountRepository reads configured tuition benefits.
type DiscountRepository struct {
	db *sqlx.DB
}

// NewDiscountRepository constructs the repository.
func NewDiscountRepository(db *sqlx.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

// ListActive returns every active benefit source. Validity windows are
// evaluated per payment date by the resolver, not here, so one snapshot
// serves a whole batch.
func (r *DiscountRepository) ListActive(ctx context.Context) ([]models.DiscountSource, error) {
	const query = `SELECT id, student_id, type, percentage, payment_mode, valid_from, valid_to, active, created_at
        FROM discount_sources WHERE active = TRUE ORDER BY student_id, valid_from DESC`
	var sources []models.DiscountSource
	if err := r.db.SelectContext(ctx, &sources, query); err != nil {
		return nil, fmt.Errorf("list active discount sources: %w", err)
	}
	return sources, nil
}

// List returns benefit sources for review tooling, newest first.
func (r *DiscountRepository) List(ctx context.Context, page, pageSize int) ([]models.DiscountSource, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`SELECT id, student_id, type, percentage, payment_mode, valid_from, valid_to, active, created_at
        FROM discount_sources ORDER BY created_at DESC LIMIT %d OFFSET %d`, pageSize, offset)

	var sources []models.DiscountSource
	if err := r.db.SelectContext(ctx, &sources, query); err != nil {
		return nil, 0, fmt.Errorf("list discount sources: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM discount_sources"); err != nil {
		return nil, 0, fmt.Errorf("count discount sources: %w", err)
	}
	return sources, total, nil
}
