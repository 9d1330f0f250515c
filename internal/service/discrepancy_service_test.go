package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestDetectCleanRecordScoresHigh(t *testing.T) {
	svc := NewDiscrepancyService()
	computed := models.ComputedPricing{BasePrice: 225, ExpectedNetAmount: 225}
	record := models.PaymentRecord{Amount: 225, NetAmount: 225}

	discrepancies, level, score := svc.Detect(computed, models.ParsedClerkEntry{}, record, nil)
	assert.Empty(t, discrepancies)
	assert.Equal(t, models.ConfidenceHigh, level)
	assert.Equal(t, 95, score)
}

func TestDetectMissingScholarshipRecord(t *testing.T) {
	svc := NewDiscrepancyService()
	computed := models.ComputedPricing{BasePrice: 400, ExpectedNetAmount: 400}
	parsed := models.ParsedClerkEntry{ScholarshipMentioned: true, DiscountPercentage: floatPtr(50)}
	record := models.PaymentRecord{Amount: 400, NetAmount: 200, NetDiscount: 200}

	discrepancies, level, score := svc.Detect(computed, parsed, record, nil)
	require.Len(t, discrepancies, 2)
	assert.Equal(t, models.DiscrepancyMissingScholarship, discrepancies[0].Type)
	assert.Equal(t, models.SeverityHigh, discrepancies[0].Severity)
	assert.Equal(t, models.DiscrepancyNetAmount, discrepancies[1].Type)
	assert.Equal(t, models.ConfidenceNone, level)
	assert.Equal(t, 20, score)
}

func TestDetectUnreportedScholarship(t *testing.T) {
	svc := NewDiscrepancyService()
	benefit := &models.DiscountBenefit{Percentage: 25, SourceType: models.DiscountScholarship}
	computed := models.ComputedPricing{BasePrice: 400, ScholarshipDiscount: 100, ExpectedNetAmount: 300}
	record := models.PaymentRecord{Amount: 400, NetAmount: 300, NetDiscount: 100}

	discrepancies, level, score := svc.Detect(computed, models.ParsedClerkEntry{}, record, benefit)
	require.Len(t, discrepancies, 1)
	assert.Equal(t, models.DiscrepancyUnreportedScholarship, discrepancies[0].Type)
	assert.Equal(t, models.SeverityMedium, discrepancies[0].Severity)
	assert.Equal(t, models.ConfidenceLow, level)
	assert.Equal(t, 60, score)
}

func TestDetectScholarshipPercentageMismatch(t *testing.T) {
	svc := NewDiscrepancyService()
	benefit := &models.DiscountBenefit{Percentage: 50, SourceType: models.DiscountScholarship}
	computed := models.ComputedPricing{BasePrice: 400, ScholarshipDiscount: 200, ExpectedNetAmount: 200}
	parsed := models.ParsedClerkEntry{ScholarshipMentioned: true, DiscountPercentage: floatPtr(25)}
	record := models.PaymentRecord{Amount: 400, NetAmount: 200, NetDiscount: 200}

	discrepancies, _, _ := svc.Detect(computed, parsed, record, benefit)
	require.Len(t, discrepancies, 1)
	assert.Equal(t, models.DiscrepancyScholarshipPercentage, discrepancies[0].Type)
	assert.Equal(t, "50.00%", discrepancies[0].SISValue)
	assert.Equal(t, "25.00%", discrepancies[0].ClerkValue)
}

func TestDetectEarlyBirdPercentageMismatchScoresLow(t *testing.T) {
	svc := NewDiscrepancyService()
	// The recorded discount is folded into the expected net, so only the
	// percentage mismatch fires, not a net amount mismatch.
	computed := models.ComputedPricing{BasePrice: 400, OtherDiscount: 48, ExpectedNetAmount: 352}
	parsed := models.ParsedClerkEntry{
		DiscountType:       strPtr("EARLY_BIRD"),
		ExpectedPercentage: floatPtr(10),
		DiscountPercentage: floatPtr(12),
	}
	record := models.PaymentRecord{Amount: 400, NetAmount: 352, NetDiscount: 48}

	discrepancies, level, score := svc.Detect(computed, parsed, record, nil)
	require.Len(t, discrepancies, 1)
	assert.Equal(t, models.DiscrepancyEarlyBirdPercentage, discrepancies[0].Type)
	assert.Equal(t, models.ConfidenceLow, level)
	assert.Equal(t, 60, score)
}

func TestDetectEarlyBirdImpliedPercentage(t *testing.T) {
	svc := NewDiscrepancyService()
	// No explicit percentage in the note; 60/400 implies 15% against the
	// configured 10%.
	computed := models.ComputedPricing{BasePrice: 400, OtherDiscount: 60, ExpectedNetAmount: 340}
	parsed := models.ParsedClerkEntry{
		DiscountType:       strPtr("EARLY_BIRD"),
		ExpectedPercentage: floatPtr(10),
	}
	record := models.PaymentRecord{Amount: 400, NetAmount: 340, NetDiscount: 60}

	discrepancies, _, _ := svc.Detect(computed, parsed, record, nil)
	require.Len(t, discrepancies, 1)
	assert.Equal(t, models.DiscrepancyEarlyBirdPercentage, discrepancies[0].Type)
	assert.Equal(t, "15.00%", discrepancies[0].ClerkValue)
}

func TestDetectNetAmountMismatch(t *testing.T) {
	svc := NewDiscrepancyService()
	computed := models.ComputedPricing{BasePrice: 225, ExpectedNetAmount: 225}
	record := models.PaymentRecord{Amount: 225, NetAmount: 220}

	discrepancies, level, score := svc.Detect(computed, models.ParsedClerkEntry{}, record, nil)
	require.Len(t, discrepancies, 1)
	assert.Equal(t, models.DiscrepancyNetAmount, discrepancies[0].Type)
	assert.Equal(t, models.SeverityHigh, discrepancies[0].Severity)
	assert.Equal(t, models.ConfidenceNone, level)
	assert.Equal(t, 20, score)
}

func TestDetectNetAmountWithinEpsilon(t *testing.T) {
	svc := NewDiscrepancyService()
	computed := models.ComputedPricing{BasePrice: 225, ExpectedNetAmount: 225.004}
	record := models.PaymentRecord{Amount: 225, NetAmount: 225}

	discrepancies, level, _ := svc.Detect(computed, models.ParsedClerkEntry{}, record, nil)
	assert.Empty(t, discrepancies)
	assert.Equal(t, models.ConfidenceHigh, level)
}

func TestConfidenceBuckets(t *testing.T) {
	level, score := Confidence(nil)
	assert.Equal(t, models.ConfidenceHigh, level)
	assert.Equal(t, 95, score)

	level, score = Confidence([]models.Discrepancy{{Severity: models.SeverityLow}})
	assert.Equal(t, models.ConfidenceMedium, level)
	assert.Equal(t, 80, score)

	level, score = Confidence([]models.Discrepancy{{Severity: models.SeverityLow}, {Severity: models.SeverityMedium}})
	assert.Equal(t, models.ConfidenceLow, level)
	assert.Equal(t, 60, score)

	level, score = Confidence([]models.Discrepancy{{Severity: models.SeverityMedium}, {Severity: models.SeverityCritical}})
	assert.Equal(t, models.ConfidenceNone, level)
	assert.Equal(t, 20, score)
}
