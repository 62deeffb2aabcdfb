package searchlistings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "rental-investment-workers/internal/common/errors"
	"rental-investment-workers/internal/common/logger"
	"rental-investment-workers/internal/listings"
	"rental-investment-workers/internal/models"
)

// ==========================
// Test Helpers
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 2 * time.Second, PageSize: 2}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var columns = []string{
	"zpid", "address", "city", "state", "zip_code", "price", "bedrooms", "bathrooms",
	"square_footage", "year_built", "property_type", "lot_size", "lot_unit", "latitude",
	"longitude", "zestimate", "rent_zestimate", "custom_rent_estimate", "estimate_source",
	"meets_rent_one_percent_rule", "meets_sqft_one_percent_rule", "meets_combined_rules",
	"rent_to_value_ratio", "sqft_to_value_ratio", "last_updated",
}

func addListing(rows *sqlmock.Rows, zpid string, ratio float64) *sqlmock.Rows {
	return rows.AddRow(
		zpid, "12 Oak St", "Austin", "TX", "78702", 150000.0, 3.0, 2.0,
		1500.0, nil, "SINGLE_FAMILY", nil, "", nil,
		nil, nil, 1800.0, nil, "provider",
		true, true, true,
		ratio, 1.0, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	)
}

type failingSearcher struct{ err error }

func (s failingSearcher) Search(context.Context, models.ListingSearch) (*models.ListingPage, error) {
	return nil, s.err
}

// ==========================
// Execute
// ==========================

func TestExecute_PagesThroughStore(t *testing.T) {
	db, mock := setupMockDB(t)
	h := NewHandler(createTestConfig(), listings.NewPostgresStore(db), logger.NewTestLogger(t))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM listings WHERE meets_rent_one_percent_rule")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	rows := sqlmock.NewRows(columns)
	addListing(rows, "c", 1.2)
	addListing(rows, "d", 1.1)
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(2, 2).
		WillReturnRows(rows)

	out, err := h.Execute(context.Background(), &Input{ListingSearch: models.ListingSearch{
		Investment: models.InvestmentCriteria{RentOnePercentRule: true},
		Page:       2,
	}})
	require.NoError(t, err)

	assert.Equal(t, 5, out.Total)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 3, out.TotalPages)
	assert.Equal(t, 2, out.PageSize)
	require.Len(t, out.Properties, 2)
	assert.Equal(t, "c", out.Properties[0].Zpid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_InvalidFilters(t *testing.T) {
	h := NewHandler(createTestConfig(), failingSearcher{}, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{ListingSearch: models.ListingSearch{
		Filters: models.ListingFilters{Price: models.Range{Min: 500000, Max: 100000}},
	}})

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodeInvalidSearchFilter, stdErr.Code)
	assert.Contains(t, stdErr.Details, "price")
}

func TestExecute_StoreErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode apperrors.ErrorCode
	}{
		{"query failure", errors.New("relation does not exist"), apperrors.ErrCodeQueryExecutionFailed},
		{"deadline", fmt.Errorf("count listings: %w", context.DeadlineExceeded), apperrors.ErrCodeQueryTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(createTestConfig(), failingSearcher{err: tt.err}, logger.NewTestLogger(t))

			_, err := h.Execute(context.Background(), &Input{})
			var stdErr *apperrors.StandardError
			require.True(t, errors.As(err, &stdErr))
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.True(t, stdErr.Retryable)
		})
	}
}
