package models

import "time"

// PriceTier identifies which resolution tier a price rule belongs to.
type PriceTier string

const (
	TierSeniorProject PriceTier = "SENIOR_PROJECT"
	TierFixedCourse   PriceTier = "FIXED_COURSE"
	TierReadingClass  PriceTier = "READING_CLASS"
	TierDefaultCredit PriceTier = "DEFAULT_CREDIT"
)

// PricingMethod tags a resolved price with the tier that produced it.
type PricingMethod string

const (
	MethodSeniorProject  PricingMethod = "SENIOR_PROJECT_PRICING"
	MethodFixedCourse    PricingMethod = "FIXED_COURSE_PRICING"
	MethodReadingClass   PricingMethod = "READING_CLASS_PRICING"
	MethodDefaultLocal   PricingMethod = "DEFAULT_LOCAL_PRICING"
	MethodDefaultForeign PricingMethod = "DEFAULT_FOREIGN_PRICING"
	MethodFallback       PricingMethod = "FALLBACK"
	MethodMixed          PricingMethod = "MIXED"
)

// PriceRule is one row of the pricing rule table. Fixed tiers carry
// category-specific amounts; the default tier carries per-credit rates.
// Priority is an explicit tie-break so rule selection never depends on
// insertion order.
type PriceRule struct {
	ID            string          `db:"id" json:"id"`
	Tier          PriceTier       `db:"tier" json:"tier"`
	CourseCode    string          `db:"course_code" json:"course_code"`
	Category      StudentCategory `db:"category" json:"category"`
	LocalAmount   float64         `db:"local_amount" json:"local_amount"`
	ForeignAmount float64         `db:"foreign_amount" json:"foreign_amount"`
	LocalRate     float64         `db:"local_rate" json:"local_rate"`
	ForeignRate   float64         `db:"foreign_rate" json:"foreign_rate"`
	EffectiveDate time.Time       `db:"effective_date" json:"effective_date"`
	Active        bool            `db:"active" json:"active"`
	Priority      int             `db:"priority" json:"priority"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// AppliesTo reports whether the rule covers the given student category.
// An empty rule category means the rule covers both.
func (r PriceRule) AppliesTo(category StudentCategory) bool {
	return r.Category == "" || r.Category == category
}

// AmountFor returns the fixed amount for the given category.
func (r PriceRule) AmountFor(category StudentCategory) float64 {
	if category == CategoryForeign {
		return r.ForeignAmount
	}
	return r.LocalAmount
}

// RateFor returns the per-credit rate for the given category.
func (r PriceRule) RateFor(category StudentCategory) float64 {
	if category == CategoryForeign {
		return r.ForeignRate
	}
	return r.LocalRate
}
