package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip_planner/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Repo is the destination gazetteer. Names are stored lowercased.
type Repo struct{ db *sql.DB }

var _ domain.DestinationRepository = (*Repo)(nil)

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func normName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (r *Repo) UpsertDestination(ctx context.Context, d domain.Destination) error {
	name := normName(d.Name)
	if name == "" {
		return fmt.Errorf("upsert destination: %w: empty name", domain.ErrInvalidRequest)
	}
	_, err := r.db.ExecContext(ctx, upsertDestinationSQL, name, d.Location.Lat, d.Location.Lng, valStr(d.Country))
	return err
}

func (r *Repo) LookupDestination(ctx context.Context, name string) (domain.Coordinate, error) {
	var c domain.Coordinate
	err := r.db.QueryRowContext(ctx, lookupDestinationSQL, normName(name)).Scan(&c.Lat, &c.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinate{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Coordinate{}, err
	}
	return c, nil
}

func (r *Repo) LogMiss(ctx context.Context, name string, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, normName(name), reason)
	return err
}

// ListDestinations returns up to limit gazetteer rows ordered by name.
func (r *Repo) ListDestinations(ctx context.Context, limit int) ([]domain.Destination, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	rows, err := r.db.QueryContext(ctx, listDestinationsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Destination
	for rows.Next() {
		var d domain.Destination
		var country sql.NullString
		if err := rows.Scan(&d.Name, &d.Location.Lat, &d.Location.Lng, &country); err != nil {
			return nil, err
		}
		if country.Valid {
			cs := country.String
			d.Country = &cs
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
