package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// PriceRuleRepository reads the pricing rule table.
type PriceRuleRepository struct {
	db *sqlx.DB
}

// NewPriceRuleRepository constructs the repository.
func NewPriceRuleRepository(db *sqlx.DB) *PriceRuleRepository {
	return &PriceRuleRepository{db: db}
}

// ListActive returns active rules effective on or before asOf, ordered so the
// first rule matching a tier/scope is the one that wins: priority first, then
// effective date, then creation time.
func (r *PriceRuleRepository) ListActive(ctx context.Context, asOf time.Time) ([]models.PriceRule, error) {
	const query = `SELECT id, tier, course_code, category, local_amount, foreign_amount, local_rate, foreign_rate, effective_date, active, priority, created_at
        FROM price_rules
        WHERE active = TRUE AND effective_date <= $1
        ORDER BY priority DESC, effective_date DESC, created_at DESC`
	var rules []models.PriceRule
	if err := r.db.SelectContext(ctx, &rules, query, asOf); err != nil {
		return nil, fmt.Errorf("list active price rules: %w", err)
	}
	return rules, nil
}

// List returns rules for review tooling, newest first.
func (r *PriceRuleRepository) List(ctx context.Context, page, pageSize int) ([]models.PriceRule, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`SELECT id, tier, course_code, category, local_amount, foreign_amount, local_rate, foreign_rate, effective_date, active, priority, created_at
        FROM price_rules ORDER BY created_at DESC LIMIT %d OFFSET %d`, pageSize, offset)

	var rules []models.PriceRule
	if err := r.db.SelectContext(ctx, &rules, query); err != nil {
		return nil, 0, fmt.Errorf("list price rules: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM price_rules"); err != nil {
		return nil, 0, fmt.Errorf("count price rules: %w", err)
	}
	return rules, total, nil
}
