package models

import "time"

// FeeRule is one row of the fee rule table. The ledger reference is opaque
// to reconciliation and only carried through for downstream accounting.
type FeeRule struct {
	ID            string    `db:"id" json:"id"`
	Code          string    `db:"code" json:"code"`
	Category      string    `db:"category" json:"category"`
	BaseAmount    float64   `db:"base_amount" json:"base_amount"`
	LocalAmount   float64   `db:"local_amount" json:"local_amount"`
	ForeignAmount float64   `db:"foreign_amount" json:"foreign_amount"`
	LedgerRef     string    `db:"ledger_ref" json:"ledger_ref"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
