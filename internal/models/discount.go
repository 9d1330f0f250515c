package models

import "time"

// DiscountType distinguishes benefit sources.
type DiscountType string

const (
	DiscountSponsored   DiscountType = "SPONSORED"
	DiscountScholarship DiscountType = "INDIVIDUAL_SCHOLARSHIP"
)

// PaymentMode describes how a benefit is settled.
type PaymentMode string

const (
	PaymentModeDirect      PaymentMode = "DIRECT"
	PaymentModeBulkInvoice PaymentMode = "BULK_INVOICE"
)

// DiscountSource is a configured tuition benefit owned by a student.
type DiscountSource struct {
	ID          string       `db:"id" json:"id"`
	StudentID   string       `db:"student_id" json:"student_id"`
	Type        DiscountType `db:"type" json:"type"`
	Percentage  float64      `db:"percentage" json:"percentage"`
	PaymentMode PaymentMode  `db:"payment_mode" json:"payment_mode"`
	ValidFrom   time.Time    `db:"valid_from" json:"valid_from"`
	ValidTo     time.Time    `db:"valid_to" json:"valid_to"`
	Active      bool         `db:"active" json:"active"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}

// ActiveOn reports whether asOf falls inside the benefit's validity window.
// A benefit awarded after the payment date never applies retroactively.
func (d DiscountSource) ActiveOn(asOf time.Time) bool {
	if !d.Active {
		return false
	}
	if asOf.Before(d.ValidFrom) {
		return false
	}
	if !d.ValidTo.IsZero() && asOf.After(d.ValidTo) {
		return false
	}
	return true
}

// DiscountBenefit is the single resolved benefit for a student/date.
type DiscountBenefit struct {
	Percentage  float64      `json:"percentage"`
	PaymentMode PaymentMode  `json:"payment_mode"`
	SourceType  DiscountType `json:"source_type"`
}
