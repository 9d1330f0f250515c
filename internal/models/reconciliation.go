package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DiscrepancyType enumerates the closed discrepancy taxonomy.
type DiscrepancyType string

const (
	DiscrepancyMissingScholarship    DiscrepancyType = "MISSING_SCHOLARSHIP_RECORD"
	DiscrepancyUnreportedScholarship DiscrepancyType = "UNREPORTED_SCHOLARSHIP"
	DiscrepancyScholarshipPercentage DiscrepancyType = "SCHOLARSHIP_PERCENTAGE_MISMATCH"
	DiscrepancyEarlyBirdPercentage   DiscrepancyType = "EARLY_BIRD_PERCENTAGE_MISMATCH"
	DiscrepancyNetAmount             DiscrepancyType = "NET_AMOUNT_MISMATCH"
)

// Severity grades a discrepancy.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Discrepancy is a classified difference between system-computed and
// clerk-recorded values.
type Discrepancy struct {
	Type        DiscrepancyType `json:"type"`
	Severity    Severity        `json:"severity"`
	Description string          `json:"description"`
	SISValue    string          `json:"sis_value"`
	ClerkValue  string          `json:"clerk_value"`
}

// DiscrepancyList persists discrepancies as JSONB.
type DiscrepancyList []Discrepancy

// Value marshals the list to JSON for persistence.
func (l DiscrepancyList) Value() (driver.Value, error) {
	if l == nil {
		l = DiscrepancyList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal discrepancies: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the list.
func (l *DiscrepancyList) Scan(value interface{}) error {
	return scanJSON(value, l, "DiscrepancyList")
}

// MatchStatus is the per-record reconciliation outcome.
type MatchStatus string

const (
	MatchSuccess         MatchStatus = "SUCCESS"
	MatchDiscrepancy     MatchStatus = "DISCREPANCY"
	MatchProcessingError MatchStatus = "PROCESSING_ERROR"
)

// ConfidenceLevel buckets the confidence score.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
	ConfidenceNone   ConfidenceLevel = "NONE"
)

// ErrorCategory classifies per-record processing failures.
type ErrorCategory string

const (
	ErrorMissingStudentOrTerm ErrorCategory = "MISSING_STUDENT_OR_TERM"
	ErrorNoEnrollments        ErrorCategory = "NO_ENROLLMENTS"
	ErrorProcessing           ErrorCategory = "PROCESSING_ERROR"
)

// ReconciliationStatus is the per-record result persisted for review.
type ReconciliationStatus struct {
	ID                string          `db:"id" json:"id"`
	BatchID           string          `db:"batch_id" json:"batch_id"`
	ReceiptNumber     string          `db:"receipt_number" json:"receipt_number"`
	StudentIdentifier string          `db:"student_identifier" json:"student_identifier"`
	TermCode          string          `db:"term_code" json:"term_code"`
	Status            MatchStatus     `db:"status" json:"status"`
	ConfidenceLevel   ConfidenceLevel `db:"confidence_level" json:"confidence_level"`
	ConfidenceScore   int             `db:"confidence_score" json:"confidence_score"`
	VarianceAmount    float64         `db:"variance_amount" json:"variance_amount"`
	PricingMethod     PricingMethod   `db:"pricing_method" json:"pricing_method"`
	Discrepancies     DiscrepancyList `db:"discrepancies" json:"discrepancies"`
	ErrorCategory     *ErrorCategory  `db:"error_category" json:"error_category,omitempty"`
	ErrorMessage      *string         `db:"error_message" json:"error_message,omitempty"`
	ProcessedAt       time.Time       `db:"processed_at" json:"processed_at"`
}

// BatchStatus captures reconciliation batch lifecycle states.
type BatchStatus string

const (
	BatchRunning   BatchStatus = "RUNNING"
	BatchComplete  BatchStatus = "COMPLETE"
	BatchCancelled BatchStatus = "CANCELLED"
	BatchAborted   BatchStatus = "ABORTED"
)

// ResultsSummary aggregates batch outcomes, persisted as JSONB.
type ResultsSummary struct {
	SuccessRate         float64        `json:"success_rate"`
	DiscrepancyCount    int            `json:"discrepancy_count"`
	DiscrepanciesByType map[string]int `json:"discrepancies_by_type"`
}

// Value marshals the summary to JSON for persistence.
func (s ResultsSummary) Value() (driver.Value, error) {
	if s.DiscrepanciesByType == nil {
		s.DiscrepanciesByType = map[string]int{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal results summary: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the summary.
func (s *ResultsSummary) Scan(value interface{}) error {
	return scanJSON(value, s, "ResultsSummary")
}

// StringList persists the batch error log as JSONB.
type StringList []string

// Value marshals the list to JSON for persistence.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the list.
func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l, "StringList")
}

// ReconciliationBatch is one run over a bounded set of payment records.
// Invariant: TotalPayments == SuccessfulMatches + FailedMatches once sealed,
// and ProcessedPayments never exceeds TotalPayments while running.
type ReconciliationBatch struct {
	ID                string         `db:"id" json:"id"`
	TermCode          string         `db:"term_code" json:"term_code"`
	Status            BatchStatus    `db:"status" json:"status"`
	TotalPayments     int            `db:"total_payments" json:"total_payments"`
	ProcessedPayments int            `db:"processed_payments" json:"processed_payments"`
	SuccessfulMatches int            `db:"successful_matches" json:"successful_matches"`
	FailedMatches     int            `db:"failed_matches" json:"failed_matches"`
	ResultsSummary    ResultsSummary `db:"results_summary" json:"results_summary"`
	ErrorLog          StringList     `db:"error_log" json:"error_log"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	CompletedAt       *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
}

// Sealed reports whether the batch reached a terminal status.
func (b ReconciliationBatch) Sealed() bool {
	return b.Status == BatchComplete || b.Status == BatchCancelled || b.Status == BatchAborted
}

// StatusFilter narrows per-record status listings for review tooling.
type StatusFilter struct {
	BatchID       string
	Confidence    ConfidenceLevel
	ErrorCategory ErrorCategory
	Page          int
	PageSize      int
}

func scanJSON(value interface{}, dest interface{}, name string) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for %s", value, name)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return nil
}
