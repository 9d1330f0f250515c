package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// FeeRuleRepository reads the fee rule table.
type FeeRuleRepository struct {
	db *sqlx.DB
}

// NewFeeRuleRepository constructs the repository.
func NewFeeRuleRepository(db *sqlx.DB) *FeeRuleRepository {
	return &FeeRuleRepository{db: db}
}

// ListActive returns all active fee rules.
func (r *FeeRuleRepository) ListActive(ctx context.Context) ([]models.FeeRule, error) {
	const query = `SELECT id, code, category, base_amount, local_amount, foreign_amount, ledger_ref, active, created_at
        FROM fee_rules WHERE active = TRUE ORDER BY code`
	var rules []models.FeeRule
	if err := r.db.SelectContext(ctx, &rules, query); err != nil {
		return nil, fmt.Errorf("list active fee rules: %w", err)
	}
	return rules, nil
}
