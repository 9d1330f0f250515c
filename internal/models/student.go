package models

import "time"

// StudentCategory determines which side of a price rule applies.
type StudentCategory string

const (
	CategoryLocal   StudentCategory = "LOCAL"
	CategoryForeign StudentCategory = "FOREIGN"
)

// Student represents a billable learner in the directory.
type Student struct {
	ID         string          `db:"id" json:"id"`
	ExternalID string          `db:"external_id" json:"external_id"`
	FullName   string          `db:"full_name" json:"full_name"`
	Category   StudentCategory `db:"category" json:"category"`
	Active     bool            `db:"active" json:"active"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}
