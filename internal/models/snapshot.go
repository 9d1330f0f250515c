package models

import "time"

// RuleSnapshot is the immutable per-run view of the rule tables. It is
// built once before a batch starts and shared read-only across workers,
// so record processing needs no locking.
type RuleSnapshot struct {
	AsOf               time.Time
	PriceRules         []PriceRule
	FeeRules           []FeeRule
	DiscountsByStudent map[string][]DiscountSource
	NotePatterns       []NotePattern
}

// DiscountsFor returns the configured benefit sources for a student.
func (s *RuleSnapshot) DiscountsFor(studentID string) []DiscountSource {
	if s == nil || s.DiscountsByStudent == nil {
		return nil
	}
	return s.DiscountsByStudent[studentID]
}
