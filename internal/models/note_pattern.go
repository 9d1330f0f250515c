package models

import "time"

// NotePattern maps a clerk-note substring to a configured discount rule.
// The table is data, not code: new phrasings ("early bird", "earlybird promo")
// are added as rows without touching the parser.
type NotePattern struct {
	ID                 string    `db:"id" json:"id"`
	Pattern            string    `db:"pattern" json:"pattern"`
	RuleCode           string    `db:"rule_code" json:"rule_code"`
	ExpectedPercentage float64   `db:"expected_percentage" json:"expected_percentage"`
	Active             bool      `db:"active" json:"active"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}
