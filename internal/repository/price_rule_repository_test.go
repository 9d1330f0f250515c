package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sba-recon-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func priceRuleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "tier", "course_code", "category", "local_amount", "foreign_amount", "local_rate", "foreign_rate", "effective_date", "active", "priority", "created_at"})
}

func TestPriceRuleRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPriceRuleRepository(db)
	asOf := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	rows := priceRuleRows().
		AddRow("r1", "FIXED_COURSE", "BIO-210", "", 450.0, 600.0, 0.0, 0.0, asOf.AddDate(0, -1, 0), true, 10, asOf.AddDate(0, -2, 0)).
		AddRow("r2", "DEFAULT_CREDIT", "", "", 0.0, 0.0, 75.0, 120.0, asOf.AddDate(-1, 0, 0), true, 0, asOf.AddDate(-1, 0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY priority DESC, effective_date DESC, created_at DESC")).
		WithArgs(asOf).
		WillReturnRows(rows)

	rules, err := repo.ListActive(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	require.Equal(t, models.TierFixedCourse, rules[0].Tier)
	require.Equal(t, 10, rules[0].Priority)
	require.Equal(t, 75.0, rules[1].LocalRate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceRuleRepositoryListPaginates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPriceRuleRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT 20 OFFSET 20")).
		WillReturnRows(priceRuleRows().
			AddRow("r1", "DEFAULT_CREDIT", "", "", 0.0, 0.0, 75.0, 120.0, now, true, 0, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM price_rules")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

	rules, total, err := repo.List(context.Background(), 2, 20)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Equal(t, 21, total)
	require.NoError(t, mock.ExpectationsWereMet())
}
