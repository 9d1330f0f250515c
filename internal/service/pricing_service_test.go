package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

var termStart = time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

func snapshotWith(rules ...models.PriceRule) *models.RuleSnapshot {
	return &models.RuleSnapshot{AsOf: termStart, PriceRules: rules}
}

func testTerm() models.Term {
	return models.Term{ID: "term1", Code: "2024-FALL", StartDate: termStart}
}

func TestPricingResolveDefaultCreditBased(t *testing.T) {
	svc := NewPricingService(0, "", zap.NewNop())
	snap := snapshotWith(models.PriceRule{
		ID: "r1", Tier: models.TierDefaultCredit, LocalRate: 75, ForeignRate: 120,
		EffectiveDate: termStart.AddDate(-1, 0, 0), Active: true,
	})

	amount, method := svc.Resolve(snap, models.Enrollment{CourseCode: "MATH-101", Credits: 3}, models.CategoryLocal, testTerm())
	assert.Equal(t, 225.0, amount)
	assert.Equal(t, models.MethodDefaultLocal, method)

	amount, method = svc.Resolve(snap, models.Enrollment{CourseCode: "MATH-101", Credits: 3}, models.CategoryForeign, testTerm())
	assert.Equal(t, 360.0, amount)
	assert.Equal(t, models.MethodDefaultForeign, method)
}

func TestPricingResolveSeniorProjectBeforeFixedCourse(t *testing.T) {
	svc := NewPricingService(0, "", zap.NewNop())
	snap := snapshotWith(
		models.PriceRule{
			ID: "senior", Tier: models.TierSeniorProject, CourseCode: "CAP-499",
			LocalAmount: 900, EffectiveDate: termStart.AddDate(-1, 0, 0), Active: true,
		},
		models.PriceRule{
			ID: "fixed", Tier: models.TierFixedCourse, CourseCode: "CAP-499",
			LocalAmount: 500, EffectiveDate: termStart.AddDate(-1, 0, 0), Active: true,
		},
	)

	amount, method := svc.Resolve(snap, models.Enrollment{CourseCode: "CAP-499", Credits: 6, IsSeniorProject: true}, models.CategoryLocal, testTerm())
	assert.Equal(t, 900.0, amount)
	assert.Equal(t, models.MethodSeniorProject, method)

	// Same course without the senior flag resolves through the fixed tier.
	amount, method = svc.Resolve(snap, models.Enrollment{CourseCode: "CAP-499", Credits: 6}, models.CategoryLocal, testTerm())
	assert.Equal(t, 500.0, amount)
	assert.Equal(t, models.MethodFixedCourse, method)
}

func TestPricingResolveReadingClass(t *testing.T) {
	svc := NewPricingService(0, "", zap.NewNop())
	snap := snapshotWith(
		models.PriceRule{
			ID: "reading", Tier: models.TierReadingClass,
			LocalAmount: 300, EffectiveDate: termStart.AddDate(-1, 0, 0), Active: true,
		},
		models.PriceRule{
			ID: "default", Tier: models.TierDefaultCredit, LocalRate: 75,
			EffectiveDate: termStart.AddDate(-1, 0, 0), Active: true,
		},
	)

	amount, method := svc.Resolve(snap, models.Enrollment{CourseCode: "RC-201", Credits: 2}, models.CategoryLocal, testTerm())
	assert.Equal(t, 300.0, amount)
	assert.Equal(t, models.MethodReadingClass, method)

	// Non-reading course codes skip the reading tier entirely.
	amount, method = svc.Resolve(snap, models.Enrollment{CourseCode: "ENG-101", Credits: 2}, models.CategoryLocal, testTerm())
	assert.Equal(t, 150.0, amount)
	assert.Equal(t, models.MethodDefaultLocal, method)
}

func TestPricingResolveHigherPriorityRuleWins(t *testing.T) {
	svc := NewPricingService(0, "", zap.NewNop())
	// Snapshot rules arrive pre-sorted by priority DESC.
	snap := snapshotWith(
		models.PriceRule{
			ID: "override", Tier: models.TierFixedCourse, CourseCode: "BIO-210",
			LocalAmount: 450, Priority: 10, EffectiveDate: termStart.AddDate(0, -1, 0), Active: true,
		},
		models.PriceRule{
			ID: "base", Tier: models.TierFixedCourse, CourseCode: "BIO-210",
			LocalAmount: 400, Priority: 0, EffectiveDate: termStart.AddDate(-1, 0, 0), Active: true,
		},
	)

	amount, _ := svc.Resolve(snap, models.Enrollment{CourseCode: "BIO-210", Credits: 4}, models.CategoryLocal, testTerm())
	assert.Equal(t, 450.0, amount)
}

func TestPricingResolveIgnoresFutureAndInactiveRules(t *testing.T) {
	svc := NewPricingService(0, "", zap.NewNop())
	snap := snapshotWith(
		models.PriceRule{
			ID: "future", Tier: models.TierFixedCourse, CourseCode: "CHEM-110",
			LocalAmount: 999, EffectiveDate: termStart.AddDate(0, 1, 0), Active: true,
		},
		models.PriceRule{
			ID: "inactive", Tier: models.TierFixedCourse, CourseCode: "CHEM-110",
			LocalAmount: 888, EffectiveDate: termStart.AddDate(-1, 0, 0), Active: false,
		},
		models.PriceRule{
			ID: "current", Tier: models.TierFixedCourse, CourseCode: "CHEM-110",
			LocalAmount: 420, EffectiveDate: termStart.AddDate(-1, 0, 0), Active: true,
		},
	)

	amount, _ := svc.Resolve(snap, models.Enrollment{CourseCode: "CHEM-110", Credits: 3}, models.CategoryLocal, testTerm())
	assert.Equal(t, 420.0, amount)
}

func TestPricingResolveCategoryScopedRule(t *testing.T) {
	svc := NewPricingService(0, "", zap.NewNop())
	snap := snapshotWith(
		models.PriceRule{
			ID: "foreign-only", Tier: models.TierDefaultCredit, Category: models.CategoryForeign,
			ForeignRate: 150, EffectiveDate: termStart.AddDate(-1, 0, 0), Active: true,
		},
	)

	amount, method := svc.Resolve(snap, models.Enrollment{CourseCode: "HIS-100", Credits: 2}, models.CategoryForeign, testTerm())
	assert.Equal(t, 300.0, amount)
	assert.Equal(t, models.MethodDefaultForeign, method)

	// Local students fall through to the fallback when only foreign rules exist.
	_, method = svc.Resolve(snap, models.Enrollment{CourseCode: "HIS-100", Credits: 2}, models.CategoryLocal, testTerm())
	assert.Equal(t, models.MethodFallback, method)
}

func TestPricingResolveFallback(t *testing.T) {
	svc := NewPricingService(50, "", zap.NewNop())

	amount, method := svc.Resolve(snapshotWith(), models.Enrollment{CourseCode: "XYZ-1", Credits: 1}, models.CategoryLocal, testTerm())
	assert.Equal(t, 50.0, amount)
	assert.Equal(t, models.MethodFallback, method)
}

func TestPricingInvalidReadingPatternUsesDefault(t *testing.T) {
	svc := NewPricingService(0, "([", zap.NewNop())
	snap := snapshotWith(models.PriceRule{
		ID: "reading", Tier: models.TierReadingClass,
		LocalAmount: 250, EffectiveDate: termStart.AddDate(-1, 0, 0), Active: true,
	})

	amount, method := svc.Resolve(snap, models.Enrollment{CourseCode: "RC_330", Credits: 1}, models.CategoryLocal, testTerm())
	assert.Equal(t, 250.0, amount)
	assert.Equal(t, models.MethodReadingClass, method)
}
