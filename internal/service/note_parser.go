package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

// percentPattern captures "10%", "9.5 %" and similar clerk shorthand.
var percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)

// amountPattern captures explicit discount amounts like "disc 150.00" or
// "discount: 135".
var amountPattern = regexp.MustCompile(`(?i)disc(?:ount)?\s*:?\s*(\d+(?:\.\d{1,2})?)`)

// NoteParser extracts structured hints from free-text clerk notes. Parsing is
// best-effort and never fails: fields the note gives no signal for stay nil.
type NoteParser struct{}

// NewNoteParser constructs the parser.
func NewNoteParser() *NoteParser {
	return &NoteParser{}
}

// Parse scans a note against the configured pattern table. The pattern rows
// come from the snapshot so phrasing changes are data edits, not code edits.
func (p *NoteParser) Parse(notes string, patterns []models.NotePattern) models.ParsedClerkEntry {
	entry := models.ParsedClerkEntry{}
	if strings.TrimSpace(notes) == "" {
		return entry
	}
	lowered := strings.ToLower(notes)

	if match := percentPattern.FindStringSubmatch(notes); match != nil {
		if pct, err := strconv.ParseFloat(match[1], 64); err == nil {
			entry.DiscountPercentage = &pct
		}
	}

	if match := amountPattern.FindStringSubmatch(notes); match != nil {
		if amount, err := strconv.ParseFloat(match[1], 64); err == nil {
			entry.DiscountAmount = &amount
		}
	}

	for _, pattern := range patterns {
		if !pattern.Active || pattern.Pattern == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(pattern.Pattern)) {
			ruleCode := pattern.RuleCode
			expected := pattern.ExpectedPercentage
			entry.DiscountType = &ruleCode
			entry.ExpectedPercentage = &expected
			break
		}
	}

	if strings.Contains(lowered, "scholarship") {
		entry.ScholarshipMentioned = true
	}

	return entry
}
