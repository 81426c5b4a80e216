package repository

import (
	"context"
	"database/sql"

	"github.com/mwrona/restaurant-server/internal/model"
)

// TableRepo reads the table catalog.  Tables are seeded reference data;
// the reservation flow never writes to this table, so the repo exposes
// reads only.  All listing queries order by id; catalog order is the
// tie-break for first-fit assignment and must be stable.
type TableRepo struct{ DB *sql.DB }

// NewTableRepo returns a TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{DB: db} }

// ListAll returns every table in catalog order.
func (r *TableRepo) ListAll(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT id, seats, created_at, updated_at FROM tables ORDER BY id`
	return r.list(ctx, q)
}

// ListWithCapacity returns tables seating at least minSeats, in catalog order.
func (r *TableRepo) ListWithCapacity(ctx context.Context, minSeats int) ([]model.Table, error) {
	const q = `SELECT id, seats, created_at, updated_at FROM tables WHERE seats >= ? ORDER BY id`
	return r.list(ctx, q, minSeats)
}

// MaxSeats returns the capacity of the largest table, or 0 when the
// catalog is empty.  The client uses it to cap the party-size selector.
func (r *TableRepo) MaxSeats(ctx context.Context) (int, error) {
	var max sql.NullInt64
	err := r.DB.QueryRowContext(ctx, `SELECT MAX(seats) FROM tables`).Scan(&max)
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64), nil
}

func (r *TableRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Table, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Table
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.Seats, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
