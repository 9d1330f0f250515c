package dto

import (
	"time"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// StartBatchRequest kicks off a reconciliation run over a term's payments.
// BatchID is optional; re-using an existing ID re-runs that batch.
type StartBatchRequest struct {
	BatchID  string `json:"batch_id" validate:"omitempty,max=64"`
	TermCode string `json:"term_code" validate:"required,max=32"`
}

// ResultsSummaryResponse mirrors the serialized batch summary.
type ResultsSummaryResponse struct {
	SuccessRate         float64        `json:"success_rate"`
	DiscrepancyCount    int            `json:"discrepancy_count"`
	DiscrepanciesByType map[string]int `json:"discrepancies_by_type"`
}

// BatchResponse is the serializable batch report.
type BatchResponse struct {
	BatchID           string                 `json:"batch_id"`
	TermCode          string                 `json:"term_code"`
	Status            models.BatchStatus     `json:"status"`
	TotalPayments     int                    `json:"total_payments"`
	ProcessedPayments int                    `json:"processed_payments"`
	SuccessfulMatches int                    `json:"successful_matches"`
	FailedMatches     int                    `json:"failed_matches"`
	ResultsSummary    ResultsSummaryResponse `json:"results_summary"`
	ErrorLog          []string               `json:"error_log"`
	CreatedAt         time.Time              `json:"created_at"`
	CompletedAt       *time.Time             `json:"completed_at,omitempty"`
}

// NewBatchResponse maps the persisted batch onto the report contract.
func NewBatchResponse(batch *models.ReconciliationBatch) *BatchResponse {
	resp := &BatchResponse{
		BatchID:           batch.ID,
		TermCode:          batch.TermCode,
		Status:            batch.Status,
		TotalPayments:     batch.TotalPayments,
		ProcessedPayments: batch.ProcessedPayments,
		SuccessfulMatches: batch.SuccessfulMatches,
		FailedMatches:     batch.FailedMatches,
		ResultsSummary: ResultsSummaryResponse{
			SuccessRate:         batch.ResultsSummary.SuccessRate,
			DiscrepancyCount:    batch.ResultsSummary.DiscrepancyCount,
			DiscrepanciesByType: batch.ResultsSummary.DiscrepanciesByType,
		},
		ErrorLog:    batch.ErrorLog,
		CreatedAt:   batch.CreatedAt,
		CompletedAt: batch.CompletedAt,
	}
	if resp.ResultsSummary.DiscrepanciesByType == nil {
		resp.ResultsSummary.DiscrepanciesByType = map[string]int{}
	}
	if resp.ErrorLog == nil {
		resp.ErrorLog = []string{}
	}
	return resp
}

// RecordStatusResponse is one queryable per-record reconciliation outcome.
type RecordStatusResponse struct {
	ID                string                 `json:"id"`
	ReceiptNumber     string                 `json:"receipt_number"`
	StudentIdentifier string                 `json:"student_identifier"`
	TermCode          string                 `json:"term_code"`
	Status            models.MatchStatus     `json:"status"`
	ConfidenceLevel   models.ConfidenceLevel `json:"confidence_level"`
	ConfidenceScore   int                    `json:"confidence_score"`
	VarianceAmount    float64                `json:"variance_amount"`
	PricingMethod     models.PricingMethod   `json:"pricing_method"`
	Discrepancies     []models.Discrepancy   `json:"discrepancies"`
	ErrorCategory     *models.ErrorCategory  `json:"error_category,omitempty"`
	ErrorMessage      *string                `json:"error_message,omitempty"`
	ProcessedAt       time.Time              `json:"processed_at"`
}

// NewRecordStatusResponse maps a persisted status row.
func NewRecordStatusResponse(status models.ReconciliationStatus) RecordStatusResponse {
	resp := RecordStatusResponse{
		ID:                status.ID,
		ReceiptNumber:     status.ReceiptNumber,
		StudentIdentifier: status.StudentIdentifier,
		TermCode:          status.TermCode,
		Status:            status.Status,
		ConfidenceLevel:   status.ConfidenceLevel,
		ConfidenceScore:   status.ConfidenceScore,
		VarianceAmount:    status.VarianceAmount,
		PricingMethod:     status.PricingMethod,
		Discrepancies:     status.Discrepancies,
		ErrorCategory:     status.ErrorCategory,
		ErrorMessage:      status.ErrorMessage,
		ProcessedAt:       status.ProcessedAt,
	}
	if resp.Discrepancies == nil {
		resp.Discrepancies = []models.Discrepancy{}
	}
	return resp
}

// LoginRequest authenticates the reviewer account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
