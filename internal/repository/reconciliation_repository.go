package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// ReconciliationRepository persists batches and their per-record statuses.
type ReconciliationRepository struct {
	db *sqlx.DB
}

// NewReconciliationRepository constructs the repository.
func NewReconciliationRepository(db *sqlx.DB) *ReconciliationRepository {
	return &ReconciliationRepository{db: db}
}

// CreateBatch inserts a new RUNNING batch row.
func (r *ReconciliationRepository) CreateBatch(ctx context.Context, batch *models.ReconciliationBatch) error {
	const query = `INSERT INTO reconciliation_batches
        (id, term_code, status, total_payments, processed_payments, successful_matches, failed_matches, results_summary, error_log, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(ctx, query,
		batch.ID, batch.TermCode, batch.Status,
		batch.TotalPayments, batch.ProcessedPayments, batch.SuccessfulMatches, batch.FailedMatches,
		batch.ResultsSummary, batch.ErrorLog, batch.CreatedAt,
	); err != nil {
		return fmt.Errorf("create batch %s: %w", batch.ID, err)
	}
	return nil
}

// GetBatch returns a batch by its identifier.
func (r *ReconciliationRepository) GetBatch(ctx context.Context, id string) (*models.ReconciliationBatch, error) {
	const query = `SELECT id, term_code, status, total_payments, processed_payments, successful_matches, failed_matches, results_summary, error_log, created_at, completed_at
        FROM reconciliation_batches WHERE id = $1`
	var batch models.ReconciliationBatch
	if err := r.db.GetContext(ctx, &batch, query, id); err != nil {
		return nil, err
	}
	return &batch, nil
}

// ResetBatch clears statuses and counters so re-running the same batch
// identifier is idempotent.
func (r *ReconciliationRepository) ResetBatch(ctx context.Context, id string, termCode string, total int, startedAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reconciliation_statuses WHERE batch_id = $1`, id); err != nil {
		return fmt.Errorf("reset statuses for batch %s: %w", id, err)
	}
	const query = `UPDATE reconciliation_batches
        SET term_code = $2, status = $3, total_payments = $4, processed_payments = 0,
            successful_matches = 0, failed_matches = 0, results_summary = $5, error_log = $6,
            created_at = $7, completed_at = NULL
        WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, termCode, models.BatchRunning, total,
		models.ResultsSummary{DiscrepanciesByType: map[string]int{}}, models.StringList{}, startedAt); err != nil {
		return fmt.Errorf("reset batch %s: %w", id, err)
	}
	return nil
}

// UpdateProgress folds per-record counters into the batch row.
func (r *ReconciliationRepository) UpdateProgress(ctx context.Context, id string, processed, successful, failed int) error {
	const query = `UPDATE reconciliation_batches
        SET processed_payments = $2, successful_matches = $3, failed_matches = $4
        WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, processed, successful, failed); err != nil {
		return fmt.Errorf("update progress for batch %s: %w", id, err)
	}
	return nil
}

// SealBatch writes the terminal status, summary and error log.
func (r *ReconciliationRepository) SealBatch(ctx context.Context, batch *models.ReconciliationBatch) error {
	const query = `UPDATE reconciliation_batches
        SET status = $2, processed_payments = $3, successful_matches = $4, failed_matches = $5,
            results_summary = $6, error_log = $7, completed_at = $8
        WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		batch.ID, batch.Status,
		batch.ProcessedPayments, batch.SuccessfulMatches, batch.FailedMatches,
		batch.ResultsSummary, batch.ErrorLog, batch.CompletedAt,
	); err != nil {
		return fmt.Errorf("seal batch %s: %w", batch.ID, err)
	}
	return nil
}

// InsertStatus appends one per-record status row.
func (r *ReconciliationRepository) InsertStatus(ctx context.Context, status *models.ReconciliationStatus) error {
	const query = `INSERT INTO reconciliation_statuses
        (id, batch_id, receipt_number, student_identifier, term_code, status, confidence_level, confidence_score, variance_amount, pricing_method, discrepancies, error_category, error_message, processed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	if _, err := r.db.ExecContext(ctx, query,
		status.ID, status.BatchID, status.ReceiptNumber, status.StudentIdentifier, status.TermCode,
		status.Status, status.ConfidenceLevel, status.ConfidenceScore, status.VarianceAmount,
		status.PricingMethod, status.Discrepancies, status.ErrorCategory, status.ErrorMessage, status.ProcessedAt,
	); err != nil {
		return fmt.Errorf("insert status for receipt %s: %w", status.ReceiptNumber, err)
	}
	return nil
}

// ListStatuses returns per-record statuses filtered for review tooling.
func (r *ReconciliationRepository) ListStatuses(ctx context.Context, filter models.StatusFilter) ([]models.ReconciliationStatus, int, error) {
	base := `FROM reconciliation_statuses`
	conditions := []string{"batch_id = $1"}
	args := []interface{}{filter.BatchID}

	if filter.Confidence != "" {
		conditions = append(conditions, fmt.Sprintf("confidence_level = $%d", len(args)+1))
		args = append(args, filter.Confidence)
	}
	if filter.ErrorCategory != "" {
		conditions = append(conditions, fmt.Sprintf("error_category = $%d", len(args)+1))
		args = append(args, filter.ErrorCategory)
	}

	clause := " WHERE " + strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, batch_id, receipt_number, student_identifier, term_code, status, confidence_level, confidence_score, variance_amount, pricing_method, discrepancies, error_category, error_message, processed_at
        %s ORDER BY processed_at, receipt_number LIMIT %d OFFSET %d`, base+clause, size, offset)

	var statuses []models.ReconciliationStatus
	if err := r.db.SelectContext(ctx, &statuses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list statuses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base+clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count statuses: %w", err)
	}
	return statuses, total, nil
}
