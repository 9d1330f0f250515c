package service

import (
	"fmt"
	"math"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

const (
	// netAmountEpsilon is the tolerance for net amount comparison: one cent.
	// Differences at or below this are rounding noise, not discrepancies.
	netAmountEpsilon = 0.01

	// percentageEpsilon is the tolerance for comparing recorded vs configured
	// discount percentages.
	percentageEpsilon = 0.01
)

// DiscrepancyService compares the system-computed pricing against the parsed
// clerk entry and the raw record, producing classified discrepancies and a
// confidence score. Detection never fails; an empty note just limits what can
// be cross-checked.
type DiscrepancyService struct{}

// NewDiscrepancyService constructs the detector.
func NewDiscrepancyService() *DiscrepancyService {
	return &DiscrepancyService{}
}

// Detect returns the discrepancy list plus the confidence bucket for one
// record. The benefit argument is the resolved scholarship/sponsorship, nil
// when the system found none.
func (s *DiscrepancyService) Detect(computed models.ComputedPricing, parsed models.ParsedClerkEntry, record models.PaymentRecord, benefit *models.DiscountBenefit) ([]models.Discrepancy, models.ConfidenceLevel, int) {
	var discrepancies []models.Discrepancy

	if parsed.ScholarshipMentioned && benefit == nil {
		discrepancies = append(discrepancies, models.Discrepancy{
			Type:        models.DiscrepancyMissingScholarship,
			Severity:    models.SeverityHigh,
			Description: "clerk notes mention a scholarship but no active benefit exists for the student",
			SISValue:    "none",
			ClerkValue:  "scholarship mentioned",
		})
	}

	if benefit != nil && !parsed.ScholarshipMentioned {
		discrepancies = append(discrepancies, models.Discrepancy{
			Type:        models.DiscrepancyUnreportedScholarship,
			Severity:    models.SeverityMedium,
			Description: fmt.Sprintf("system resolved a %s benefit the clerk notes do not mention", benefit.SourceType),
			SISValue:    formatPercent(benefit.Percentage),
			ClerkValue:  "not mentioned",
		})
	}

	if benefit != nil && parsed.ScholarshipMentioned && parsed.DiscountPercentage != nil {
		if math.Abs(*parsed.DiscountPercentage-benefit.Percentage) > percentageEpsilon {
			discrepancies = append(discrepancies, models.Discrepancy{
				Type:        models.DiscrepancyScholarshipPercentage,
				Severity:    models.SeverityMedium,
				Description: "recorded scholarship percentage differs from the resolved benefit",
				SISValue:    formatPercent(benefit.Percentage),
				ClerkValue:  formatPercent(*parsed.DiscountPercentage),
			})
		}
	}

	if parsed.DiscountType != nil && parsed.ExpectedPercentage != nil {
		recorded := recordedDiscountPercentage(parsed, record)
		if recorded != nil && math.Abs(*recorded-*parsed.ExpectedPercentage) > percentageEpsilon {
			discrepancies = append(discrepancies, models.Discrepancy{
				Type:     models.DiscrepancyEarlyBirdPercentage,
				Severity: models.SeverityMedium,
				Description: fmt.Sprintf("recorded %s discount differs from the configured percentage",
					*parsed.DiscountType),
				SISValue:   formatPercent(*parsed.ExpectedPercentage),
				ClerkValue: formatPercent(*recorded),
			})
		}
	}

	variance := computed.ExpectedNetAmount - record.NetAmount
	if math.Abs(variance) > netAmountEpsilon {
		discrepancies = append(discrepancies, models.Discrepancy{
			Type:        models.DiscrepancyNetAmount,
			Severity:    models.SeverityHigh,
			Description: "computed net amount does not match the recorded net amount",
			SISValue:    formatAmount(computed.ExpectedNetAmount),
			ClerkValue:  formatAmount(record.NetAmount),
		})
	}

	level, score := Confidence(discrepancies)
	return discrepancies, level, score
}

// Confidence maps a discrepancy severity multiset onto the four score
// buckets. Pure and deterministic: identical discrepancies always yield the
// identical score.
func Confidence(discrepancies []models.Discrepancy) (models.ConfidenceLevel, int) {
	if len(discrepancies) == 0 {
		return models.ConfidenceHigh, 95
	}
	hasMedium := false
	for _, d := range discrepancies {
		switch d.Severity {
		case models.SeverityHigh, models.SeverityCritical:
			return models.ConfidenceNone, 20
		case models.SeverityMedium:
			hasMedium = true
		}
	}
	if hasMedium {
		return models.ConfidenceLow, 60
	}
	return models.ConfidenceMedium, 80
}

// recordedDiscountPercentage prefers the explicit percentage from the note,
// falling back to the percentage implied by the recorded discount amount.
func recordedDiscountPercentage(parsed models.ParsedClerkEntry, record models.PaymentRecord) *float64 {
	if parsed.DiscountPercentage != nil {
		return parsed.DiscountPercentage
	}
	if record.Amount > 0 && record.NetDiscount > 0 {
		implied := record.NetDiscount / record.Amount * 100
		return &implied
	}
	return nil
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
