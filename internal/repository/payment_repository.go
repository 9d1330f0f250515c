package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// PaymentRepository reads historical payment records loaded by upstream
// ingestion. Reconciliation never writes to this table.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// ListByTerm returns a term's payment records in a stable order so batch
// reports are reproducible across runs.
func (r *PaymentRepository) ListByTerm(ctx context.Context, termCode string) ([]models.PaymentRecord, error) {
	const query = `SELECT id, student_identifier, term_code, amount, net_amount, net_discount, notes, payment_type, payment_date, receipt_number
        FROM payment_records WHERE term_code = $1 ORDER BY payment_date, receipt_number`
	var records []models.PaymentRecord
	if err := r.db.SelectContext(ctx, &records, query, termCode); err != nil {
		return nil, fmt.Errorf("list payment records for term %s: %w", termCode, err)
	}
	return records, nil
}
