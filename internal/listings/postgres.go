// internal/listings/postgres.go
package listings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rental-investment-workers/internal/models"
	"rental-investment-workers/internal/rentestimate"
)

const Schema = `
CREATE TABLE IF NOT EXISTS listings (
	zpid                        TEXT PRIMARY KEY,
	address                     TEXT NOT NULL,
	city                        TEXT NOT NULL DEFAULT '',
	state                       TEXT NOT NULL DEFAULT '',
	zip_code                    TEXT NOT NULL DEFAULT '',
	price                       DOUBLE PRECISION NOT NULL,
	bedrooms                    DOUBLE PRECISION NOT NULL DEFAULT 0,
	bathrooms                   DOUBLE PRECISION NOT NULL DEFAULT 0,
	square_footage              DOUBLE PRECISION NOT NULL DEFAULT 0,
	year_built                  INTEGER,
	property_type               TEXT NOT NULL DEFAULT '',
	lot_size                    DOUBLE PRECISION,
	lot_unit                    TEXT NOT NULL DEFAULT '',
	latitude                    DOUBLE PRECISION,
	longitude                   DOUBLE PRECISION,
	zestimate                   DOUBLE PRECISION,
	rent_zestimate              DOUBLE PRECISION,
	custom_rent_estimate        DOUBLE PRECISION,
	estimate_source             TEXT NOT NULL,
	meets_rent_one_percent_rule BOOLEAN NOT NULL,
	meets_sqft_one_percent_rule BOOLEAN NOT NULL,
	meets_combined_rules        BOOLEAN NOT NULL,
	rent_to_value_ratio         DOUBLE PRECISION NOT NULL,
	sqft_to_value_ratio         DOUBLE PRECISION NOT NULL,
	last_updated                TIMESTAMPTZ NOT NULL,
	created_at                  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS listings_city_state_idx ON listings (city, state);
CREATE INDEX IF NOT EXISTS listings_zip_code_idx ON listings (zip_code);
CREATE INDEX IF NOT EXISTS listings_rent_to_value_idx ON listings (rent_to_value_ratio DESC);
CREATE INDEX IF NOT EXISTS listings_geo_idx ON listings (latitude, longitude);
`

var listingColumns = []string{
	"zpid", "address", "city", "state", "zip_code", "price", "bedrooms", "bathrooms",
	"square_footage", "year_built", "property_type", "lot_size", "lot_unit", "latitude",
	"longitude", "zestimate", "rent_zestimate", "custom_rent_estimate", "estimate_source",
	"meets_rent_one_percent_rule", "meets_sqft_one_percent_rule", "meets_combined_rules",
	"rent_to_value_ratio", "sqft_to_value_ratio", "last_updated",
}

var (
	selectColumns = strings.Join(listingColumns, ", ")
	upsertQuery   = buildUpsertQuery()
)

func buildUpsertQuery() string {
	placeholders := make([]string, len(listingColumns))
	updates := make([]string, 0, len(listingColumns)-1)
	for i, col := range listingColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col != "zpid" {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}
	return fmt.Sprintf("INSERT INTO listings (%s) VALUES (%s) ON CONFLICT (zpid) DO UPDATE SET %s",
		selectColumns, strings.Join(placeholders, ", "), strings.Join(updates, ", "))
}

// PostgresStore keeps listings in the listings table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the listings table and its indexes.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create listings schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Upsert(ctx context.Context, l *models.Listing) error {
	var yearBuilt interface{}
	if l.YearBuilt != nil {
		yearBuilt = int64(*l.YearBuilt)
	}

	_, err := s.db.ExecContext(ctx, upsertQuery,
		l.Zpid, l.Address, l.City, l.State, l.ZipCode, l.Price, l.Bedrooms, l.Bathrooms,
		l.SquareFootage, yearBuilt, l.PropertyType, nullable(l.LotSize), l.LotUnit, nullable(l.Latitude),
		nullable(l.Longitude), nullable(l.Zestimate), nullable(l.RentZestimate), nullable(l.CustomRentEstimate),
		l.EstimateSource, l.MeetsRentOnePercentRule, l.MeetsSqftOnePercentRule, l.MeetsCombinedRules,
		l.RentToValueRatio, l.SqftToValueRatio, l.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("upsert listing %s: %w", l.Zpid, err)
	}
	return nil
}

func (s *PostgresStore) GetByZpid(ctx context.Context, zpid string) (*models.Listing, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM listings WHERE zpid = $1", zpid)

	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrListingNotFound, zpid)
	}
	if err != nil {
		return nil, fmt.Errorf("get listing %s: %w", zpid, err)
	}
	return l, nil
}

// FindComparables runs the comparable box query. Rent is the provider rent
// when positive, otherwise the custom estimate.
func (s *PostgresStore) FindComparables(ctx context.Context, q rentestimate.ComparableQuery) ([]rentestimate.ComparableListing, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = rentestimate.MaxComparables
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT zpid, address, property_type,
		       COALESCE(NULLIF(rent_zestimate, 0), custom_rent_estimate, 0) AS rent,
		       bedrooms, bathrooms, square_footage, latitude, longitude
		FROM listings
		WHERE property_type = $1
		  AND latitude BETWEEN $2 AND $3
		  AND longitude BETWEEN $4 AND $5
		  AND bedrooms BETWEEN $6 AND $7
		  AND bathrooms BETWEEN $8 AND $9
		  AND square_footage BETWEEN $10 AND $11
		  AND zpid <> $12
		  AND COALESCE(NULLIF(rent_zestimate, 0), custom_rent_estimate, 0) > 0
		LIMIT $13`,
		q.PropertyType,
		q.MinLatitude, q.MaxLatitude,
		q.MinLongitude, q.MaxLongitude,
		q.MinBedrooms, q.MaxBedrooms,
		q.MinBathrooms, q.MaxBathrooms,
		q.MinSqft, q.MaxSqft,
		q.ExcludeID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query comparables: %w", err)
	}
	defer rows.Close()

	var out []rentestimate.ComparableListing
	for rows.Next() {
		var c rentestimate.ComparableListing
		if err := rows.Scan(&c.ID, &c.Address, &c.PropertyType, &c.Rent,
			&c.Bedrooms, &c.Bathrooms, &c.SquareFootage, &c.Latitude, &c.Longitude); err != nil {
			return nil, fmt.Errorf("scan comparable: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comparables: %w", err)
	}
	return out, nil
}

// Search returns one page of listings ordered by rent-to-value ratio, highest first.
func (s *PostgresStore) Search(ctx context.Context, search models.ListingSearch) (*models.ListingPage, error) {
	where, args := buildSearchWhere(search)

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}

	pageArgs := append(append([]interface{}{}, args...), search.PageSize, search.Offset())
	query := fmt.Sprintf("SELECT %s FROM listings%s ORDER BY rent_to_value_ratio DESC, zpid LIMIT $%d OFFSET $%d",
		selectColumns, where, len(args)+1, len(args)+2)

	rows, err := s.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	defer rows.Close()

	page := &models.ListingPage{
		Properties: []models.Listing{},
		Total:      total,
		Page:       search.Page,
		TotalPages: models.TotalPagesFor(total, search.PageSize),
	}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		page.Properties = append(page.Properties, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return page, nil
}

// buildSearchWhere renders the filters as a WHERE clause with positional args.
func buildSearchWhere(s models.ListingSearch) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if loc := strings.TrimSpace(s.Location); loc != "" {
		p := arg("%" + escapeLike(loc) + "%")
		conds = append(conds, fmt.Sprintf(
			"(city ILIKE %[1]s OR state ILIKE %[1]s OR zip_code ILIKE %[1]s OR address ILIKE %[1]s)", p))
	}

	if len(s.Filters.PropertyTypes) > 0 {
		ph := make([]string, len(s.Filters.PropertyTypes))
		for i, t := range s.Filters.PropertyTypes {
			ph[i] = arg(t)
		}
		conds = append(conds, fmt.Sprintf("property_type IN (%s)", strings.Join(ph, ", ")))
	}

	ranges := []struct {
		col string
		r   models.Range
	}{
		{"bedrooms", s.Filters.Bedrooms},
		{"bathrooms", s.Filters.Bathrooms},
		{"price", s.Filters.Price},
		{"square_footage", s.Filters.SquareFootage},
		{"year_built", s.Filters.YearBuilt},
	}
	for _, rc := range ranges {
		if rc.r.Min > 0 {
			conds = append(conds, fmt.Sprintf("%s >= %s", rc.col, arg(rc.r.Min)))
		}
		if rc.r.Max > 0 {
			conds = append(conds, fmt.Sprintf("%s <= %s", rc.col, arg(rc.r.Max)))
		}
	}

	inv := s.Investment
	switch {
	case inv.CombinedRules:
		conds = append(conds, "(meets_rent_one_percent_rule OR meets_sqft_one_percent_rule)")
	default:
		if inv.RentOnePercentRule {
			conds = append(conds, "meets_rent_one_percent_rule")
		}
		if inv.SqftOnePercentRule {
			conds = append(conds, "meets_sqft_one_percent_rule")
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*models.Listing, error) {
	var (
		l                                 models.Listing
		yearBuilt                         sql.NullInt64
		lotSize, lat, lng, zest, rz, cust sql.NullFloat64
	)
	err := row.Scan(
		&l.Zpid, &l.Address, &l.City, &l.State, &l.ZipCode, &l.Price, &l.Bedrooms, &l.Bathrooms,
		&l.SquareFootage, &yearBuilt, &l.PropertyType, &lotSize, &l.LotUnit, &lat,
		&lng, &zest, &rz, &cust, &l.EstimateSource,
		&l.MeetsRentOnePercentRule, &l.MeetsSqftOnePercentRule, &l.MeetsCombinedRules,
		&l.RentToValueRatio, &l.SqftToValueRatio, &l.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if yearBuilt.Valid {
		y := int(yearBuilt.Int64)
		l.YearBuilt = &y
	}
	l.LotSize = floatPtr(lotSize)
	l.Latitude = floatPtr(lat)
	l.Longitude = floatPtr(lng)
	l.Zestimate = floatPtr(zest)
	l.RentZestimate = floatPtr(rz)
	l.CustomRentEstimate = floatPtr(cust)
	return &l, nil
}

func nullable(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
