package repository

import (
	"context"
	"database/sql"

	"github.com/mwrona/restaurant-server/internal/model"
)

// MenuRepo persists menu items.
type MenuRepo struct{ DB *sql.DB }

func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{DB: db} }

// List returns the whole menu in insertion order.
func (r *MenuRepo) List(ctx context.Context) ([]model.MenuItem, error) {
	const q = `SELECT id, name, description, price_cents, created_by, created_at, updated_at
		FROM menu_items ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.PriceCents,
			&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Create inserts a menu item and writes the generated ID back.
func (r *MenuRepo) Create(ctx context.Context, m *model.MenuItem) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO menu_items (name, description, price_cents, created_by) VALUES (?,?,?,?)",
		m.Name, m.Description, m.PriceCents, m.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Update rewrites name, description and price of an item.
func (r *MenuRepo) Update(ctx context.Context, m *model.MenuItem) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE menu_items SET name=?, description=?, price_cents=? WHERE id=?",
		m.Name, m.Description, m.PriceCents, m.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an item.  Returns ErrNotFound when no row matched.
func (r *MenuRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
