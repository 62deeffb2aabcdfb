package estimaterent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "rental-investment-workers/internal/common/errors"
	"rental-investment-workers/internal/common/logger"
	"rental-investment-workers/internal/listings"
	"rental-investment-workers/internal/models"
	"rental-investment-workers/internal/rentestimate"
)

// ==========================
// Test Helpers
// ==========================

func createTestConfig() *Config {
	return &Config{
		CacheTTL:          15 * time.Minute,
		Timeout:           2 * time.Second,
		ComparablesSource: "postgres",
	}
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

type fakeLookup struct {
	comps []rentestimate.ComparableListing
	err   error
	calls int
}

func (f *fakeLookup) FindComparables(context.Context, rentestimate.ComparableQuery) ([]rentestimate.ComparableListing, error) {
	f.calls++
	return f.comps, f.err
}

type fakeReader map[string]*models.Listing

func (r fakeReader) GetByZpid(_ context.Context, zpid string) (*models.Listing, error) {
	if l, ok := r[zpid]; ok {
		return l, nil
	}
	return nil, listings.ErrListingNotFound
}

func f(v float64) *float64 { return &v }

func subject() *rentestimate.PropertySnapshot {
	return &rentestimate.PropertySnapshot{
		ID:            "20794780",
		PropertyType:  rentestimate.TypeSingleFamily,
		Price:         250000,
		Bedrooms:      3,
		Bathrooms:     2,
		SquareFootage: 1500,
		Latitude:      f(30.2672),
		Longitude:     f(-97.7431),
	}
}

func nearbyComps() []rentestimate.ComparableListing {
	return []rentestimate.ComparableListing{
		{ID: "c1", Address: "1 Elm St", PropertyType: rentestimate.TypeSingleFamily, Rent: 1800,
			Bedrooms: 3, Bathrooms: 2, SquareFootage: 1450, Latitude: 30.2680, Longitude: -97.7435},
		{ID: "c2", Address: "2 Elm St", PropertyType: rentestimate.TypeSingleFamily, Rent: 1900,
			Bedrooms: 3, Bathrooms: 2, SquareFootage: 1550, Latitude: 30.2690, Longitude: -97.7420},
	}
}

// ==========================
// Execute
// ==========================

func TestExecute_ComparablesAndCache(t *testing.T) {
	mr, client := setupRedis(t)
	lookup := &fakeLookup{comps: nearbyComps()}
	h := NewHandler(createTestConfig(), nil, lookup, client, logger.NewTestLogger(t))
	ctx := context.Background()

	first, err := h.Execute(ctx, &Input{Property: subject()})
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.Equal(t, rentestimate.SourceCustom, first.Source)
	assert.Len(t, first.Comparables, 2)
	assert.GreaterOrEqual(t, first.EstimatedRent, 1800.0)
	assert.LessOrEqual(t, first.EstimatedRent, 1900.0)
	require.NotNil(t, first.CustomRentEstimate)
	assert.Equal(t, first.EstimatedRent, *first.CustomRentEstimate)

	assert.True(t, mr.Exists("rent:estimate:20794780"))
	assert.Equal(t, 15*time.Minute, mr.TTL("rent:estimate:20794780"))

	second, err := h.Execute(ctx, &Input{Property: subject()})
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.EstimatedRent, second.EstimatedRent)
	assert.Equal(t, 1, lookup.calls, "cache hit must not query comparables")
}

func TestExecute_ProviderRent(t *testing.T) {
	lookup := &fakeLookup{comps: nearbyComps()}
	h := NewHandler(createTestConfig(), nil, lookup, nil, logger.NewTestLogger(t))

	p := subject()
	p.ProviderRent = f(2100)

	out, err := h.Execute(context.Background(), &Input{Property: p})
	require.NoError(t, err)
	assert.Equal(t, rentestimate.SourceProvider, out.Source)
	assert.Equal(t, 2100.0, out.EstimatedRent)
	assert.Nil(t, out.CustomRentEstimate)
}

func TestExecute_FallbackWithoutCoordinates(t *testing.T) {
	lookup := &fakeLookup{}
	h := NewHandler(createTestConfig(), nil, lookup, nil, logger.NewTestLogger(t))

	p := subject()
	p.Latitude, p.Longitude = nil, nil

	out, err := h.Execute(context.Background(), &Input{Property: p})
	require.NoError(t, err)
	assert.Equal(t, rentestimate.FallbackRent(*p), out.EstimatedRent)
	assert.Equal(t, rentestimate.FallbackConfidence, out.ConfidenceScore)
	assert.Empty(t, out.Comparables)
	assert.Zero(t, lookup.calls)
}

func TestExecute_LoadsListingByZpid(t *testing.T) {
	reader := fakeReader{"20794780": {
		Zpid:          "20794780",
		Address:       "12 Oak St",
		PropertyType:  rentestimate.TypeSingleFamily,
		Price:         250000,
		Bedrooms:      3,
		Bathrooms:     2,
		SquareFootage: 1500,
		Latitude:      f(30.2672),
		Longitude:     f(-97.7431),
		RentZestimate: f(1950),
	}}
	h := NewHandler(createTestConfig(), reader, &fakeLookup{}, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{ListingID: "20794780"})
	require.NoError(t, err)
	assert.Equal(t, "20794780", out.ListingID)
	assert.Equal(t, 1950.0, out.EstimatedRent)
	assert.Equal(t, rentestimate.SourceProvider, out.Source)
}

func TestExecute_InputErrors(t *testing.T) {
	tests := []struct {
		name     string
		reader   listings.Reader
		input    *Input
		contains string
	}{
		{name: "empty input", input: &Input{}, contains: "either zpid or property"},
		{name: "unknown zpid", reader: fakeReader{}, input: &Input{ListingID: "404"}, contains: "listing not found"},
		{name: "no reader", input: &Input{ListingID: "1"}, contains: "inline"},
		{
			name:     "missing property type",
			input:    &Input{Property: &rentestimate.PropertySnapshot{ID: "1"}},
			contains: "propertyType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(createTestConfig(), tt.reader, &fakeLookup{}, nil, logger.NewTestLogger(t))
			_, err := h.Execute(context.Background(), tt.input)

			var stdErr *apperrors.StandardError
			require.True(t, errors.As(err, &stdErr))
			assert.Equal(t, apperrors.ErrCodeInvalidPropertyInput, stdErr.Code)
			assert.Contains(t, stdErr.Details, tt.contains)
		})
	}
}

func TestExecute_LookupFailure(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("connection refused")}
	h := NewHandler(createTestConfig(), nil, lookup, nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{Property: subject()})
	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodeComparablesLookupFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, "source: postgres")
}

func TestExecute_CacheReadErrorFallsThrough(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	lookup := &fakeLookup{comps: nearbyComps()}
	h := NewHandler(createTestConfig(), nil, lookup, client, logger.NewTestLogger(t))

	p := subject()
	want, err := rentestimate.NewEstimator(lookup).Estimate(context.Background(), *p)
	require.NoError(t, err)
	lookup.calls = 0
	data, err := json.Marshal(want)
	require.NoError(t, err)

	redisMock.ExpectGet("rent:estimate:20794780").SetErr(errors.New("i/o timeout"))
	redisMock.ExpectSet("rent:estimate:20794780", data, 15*time.Minute).SetVal("OK")

	out, err := h.Execute(context.Background(), &Input{Property: p})
	require.NoError(t, err)
	assert.False(t, out.CacheHit)
	assert.Equal(t, want.EstimatedRent, out.EstimatedRent)
	assert.Equal(t, 1, lookup.calls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestExecute_CorruptCacheEntryIsIgnored(t *testing.T) {
	mr, client := setupRedis(t)
	require.NoError(t, mr.Set("rent:estimate:20794780", "{not json"))

	lookup := &fakeLookup{comps: nearbyComps()}
	h := NewHandler(createTestConfig(), nil, lookup, client, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Property: subject()})
	require.NoError(t, err)
	assert.False(t, out.CacheHit)
	assert.Equal(t, 1, lookup.calls)
}
