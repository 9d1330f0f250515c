package service

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// defaultReadingClassPattern matches reading-class course codes when no
// pattern is configured.
const defaultReadingClassPattern = `^RC[-_]`

// PricingService resolves the tuition price for one enrollment against the
// per-run rule snapshot. Resolution walks a strict tier order and always
// returns exactly one amount and method tag; total rule absence yields the
// configured fallback amount tagged FALLBACK so the gap is visible downstream.
type PricingService struct {
	fallbackAmount float64
	readingClass   *regexp.Regexp
	logger         *zap.Logger
}

// NewPricingService constructs the resolver. An invalid reading-class pattern
// falls back to the default rather than failing startup.
func NewPricingService(fallbackAmount float64, readingClassPattern string, logger *zap.Logger) *PricingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if readingClassPattern == "" {
		readingClassPattern = defaultReadingClassPattern
	}
	re, err := regexp.Compile(readingClassPattern)
	if err != nil {
		logger.Sugar().Warnw("invalid reading class pattern, using default", "pattern", readingClassPattern, "error", err)
		re = regexp.MustCompile(defaultReadingClassPattern)
	}
	return &PricingService{fallbackAmount: fallbackAmount, readingClass: re, logger: logger}
}

// Resolve returns the price and method tag for an enrollment. Tier order:
// senior project, fixed course, reading class, default credit-based, fallback.
// Snapshot rules arrive pre-sorted (priority DESC, effective_date DESC,
// created_at DESC) so the first in-scope rule per tier wins.
func (s *PricingService) Resolve(snap *models.RuleSnapshot, enrollment models.Enrollment, category models.StudentCategory, term models.Term) (float64, models.PricingMethod) {
	if enrollment.IsSeniorProject {
		if rule := s.firstMatch(snap, models.TierSeniorProject, category, term, func(r models.PriceRule) bool {
			return r.CourseCode == enrollment.CourseCode
		}); rule != nil {
			return rule.AmountFor(category), models.MethodSeniorProject
		}
	}

	if rule := s.firstMatch(snap, models.TierFixedCourse, category, term, func(r models.PriceRule) bool {
		return r.CourseCode == enrollment.CourseCode
	}); rule != nil {
		return rule.AmountFor(category), models.MethodFixedCourse
	}

	if s.readingClass.MatchString(enrollment.CourseCode) {
		if rule := s.firstMatch(snap, models.TierReadingClass, category, term, func(r models.PriceRule) bool {
			return r.CourseCode == "" || r.CourseCode == enrollment.CourseCode
		}); rule != nil {
			return rule.AmountFor(category), models.MethodReadingClass
		}
	}

	if rule := s.firstMatch(snap, models.TierDefaultCredit, category, term, func(r models.PriceRule) bool {
		return true
	}); rule != nil {
		amount := rule.RateFor(category) * float64(enrollment.Credits)
		if category == models.CategoryForeign {
			return amount, models.MethodDefaultForeign
		}
		return amount, models.MethodDefaultLocal
	}

	s.logger.Sugar().Warnw("no pricing rule matched, using fallback",
		"course_code", enrollment.CourseCode, "category", category, "term", term.Code)
	return s.fallbackAmount, models.MethodFallback
}

// firstMatch returns the winning rule of a tier, or nil. Rules are eligible
// when active, in scope for the category, and effective on or before the
// term start.
func (s *PricingService) firstMatch(snap *models.RuleSnapshot, tier models.PriceTier, category models.StudentCategory, term models.Term, scope func(models.PriceRule) bool) *models.PriceRule {
	if snap == nil {
		return nil
	}
	for i := range snap.PriceRules {
		rule := snap.PriceRules[i]
		if rule.Tier != tier || !rule.Active {
			continue
		}
		if !rule.AppliesTo(category) {
			continue
		}
		if rule.EffectiveDate.After(term.StartDate) {
			continue
		}
		if !scope(rule) {
			continue
		}
		return &snap.PriceRules[i]
	}
	return nil
}
