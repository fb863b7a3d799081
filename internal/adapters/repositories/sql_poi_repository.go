package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/platform/obs"
)

// SQL-backed implementation of the POISource port.
type SQLPOIRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLPOIRepository(db *sql.DB, dialect Dialect) *SQLPOIRepository {
	return &SQLPOIRepository{DB: db, Dialect: dialect}
}

// Return all points of interest in display order.
func (s *SQLPOIRepository) ListPOIs(ctx context.Context) (_ []domain.PointOfInterest, err error) {
	defer obs.Time(ctx, "pois.ListPOIs")(&err)

	if s.DB == nil {
		return nil, errors.New("sql poi repository: DB is nil")
	}

	query := `
	SELECT
		poi_key,
		label,
		lat,
		lng
	FROM pois
	ORDER BY position, poi_key;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pois: query pois table: %w", err)
	}
	defer rows.Close()

	pois := make([]domain.PointOfInterest, 0, 16)
	for rows.Next() {
		var p domain.PointOfInterest
		if err := rows.Scan(&p.Key, &p.Label, &p.Location.Lat, &p.Location.Lng); err != nil {
			return nil, fmt.Errorf("list pois: scan row: %w", err)
		}
		pois = append(pois, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pois: row iteration: %w", err)
	}

	return pois, nil
}

// Count stored points of interest.
func (s *SQLPOIRepository) CountPOIs(ctx context.Context) (int, error) {
	if s.DB == nil {
		return 0, errors.New("sql poi repository: DB is nil")
	}

	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM pois;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pois: %w", err)
	}
	return n, nil
}
