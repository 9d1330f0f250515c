package models

import "time"

// PaymentRecord is one clerk-entered historical payment row. Records are
// supplied by upstream ingestion and never mutated by reconciliation.
type PaymentRecord struct {
	ID                string    `db:"id" json:"id"`
	StudentIdentifier string    `db:"student_identifier" json:"student_identifier"`
	TermCode          string    `db:"term_code" json:"term_code"`
	Amount            float64   `db:"amount" json:"amount"`
	NetAmount         float64   `db:"net_amount" json:"net_amount"`
	NetDiscount       float64   `db:"net_discount" json:"net_discount"`
	Notes             string    `db:"notes" json:"notes"`
	PaymentType       string    `db:"payment_type" json:"payment_type"`
	PaymentDate       time.Time `db:"payment_date" json:"payment_date"`
	ReceiptNumber     string    `db:"receipt_number" json:"receipt_number"`
}

// ComputedPricing is what the system says the record should have charged.
type ComputedPricing struct {
	BasePrice           float64       `json:"base_price"`
	ScholarshipDiscount float64       `json:"scholarship_discount"`
	OtherDiscount       float64       `json:"other_discount"`
	ExpectedNetAmount   float64       `json:"expected_net_amount"`
	PricingMethod       PricingMethod `json:"pricing_method"`
}

// ParsedClerkEntry is the best-effort structured view of a clerk note.
// Fields stay nil when the note gives no signal.
type ParsedClerkEntry struct {
	DiscountPercentage   *float64 `json:"discount_percentage,omitempty"`
	DiscountAmount       *float64 `json:"discount_amount,omitempty"`
	ScholarshipMentioned bool     `json:"scholarship_mentioned"`
	DiscountType         *string  `json:"discount_type,omitempty"`
	ExpectedPercentage   *float64 `json:"expected_percentage,omitempty"`
}
