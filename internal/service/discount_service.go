package service

import (
	"time"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// benefitResolver inspects a student's benefit sources and either claims the
// record or passes. Resolvers run in precedence order, so adding a new benefit
// source means appending to the chain, not editing branches.
type benefitResolver func(sources []models.DiscountSource, asOf time.Time) *models.DiscountBenefit

// DiscountService resolves the single best-applicable benefit for a
// student/date. SPONSORED strictly wins over INDIVIDUAL_SCHOLARSHIP even when
// the scholarship's percentage is larger; that ordering is deliberate and
// covered by tests.
type DiscountService struct {
	chain []benefitResolver
}

// NewDiscountService builds the resolver chain.
func NewDiscountService() *DiscountService {
	return &DiscountService{
		chain: []benefitResolver{
			typedResolver(models.DiscountSponsored),
			typedResolver(models.DiscountScholarship),
		},
	}
}

// Resolve returns the active benefit for a student as of a date, or nil when
// nothing applies. The date is the payment date, never "now": a scholarship
// awarded today must not retroactively apply to a months-old payment.
func (s *DiscountService) Resolve(snap *models.RuleSnapshot, studentID string, asOf time.Time) *models.DiscountBenefit {
	sources := snap.DiscountsFor(studentID)
	if len(sources) == 0 {
		return nil
	}
	for _, resolve := range s.chain {
		if benefit := resolve(sources, asOf); benefit != nil {
			return benefit
		}
	}
	return nil
}

// typedResolver claims the newest active source of one benefit type.
func typedResolver(benefitType models.DiscountType) benefitResolver {
	return func(sources []models.DiscountSource, asOf time.Time) *models.DiscountBenefit {
		var best *models.DiscountSource
		for i := range sources {
			source := sources[i]
			if source.Type != benefitType || !source.ActiveOn(asOf) {
				continue
			}
			if best == nil || source.ValidFrom.After(best.ValidFrom) {
				best = &sources[i]
			}
		}
		if best == nil {
			return nil
		}
		return &models.DiscountBenefit{
			Percentage:  best.Percentage,
			PaymentMode: best.PaymentMode,
			SourceType:  best.Type,
		}
	}
}
