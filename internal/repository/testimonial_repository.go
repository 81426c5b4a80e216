package repository

import (
	"context"
	"database/sql"

	"github.com/mwrona/restaurant-server/internal/model"
)

// TestimonialRepo persists landing-page testimonials.
type TestimonialRepo struct{ DB *sql.DB }

func NewTestimonialRepo(db *sql.DB) *TestimonialRepo { return &TestimonialRepo{DB: db} }

// List returns all testimonials, newest first.
func (r *TestimonialRepo) List(ctx context.Context) ([]model.Testimonial, error) {
	const q = `SELECT id, text, author, company, created_by, created_at, updated_at
		FROM testimonials ORDER BY id DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Testimonial
	for rows.Next() {
		var (
			t       model.Testimonial
			company sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Text, &t.Author, &company,
			&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if company.Valid {
			v := company.String
			t.Company = &v
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserts a testimonial and writes the generated ID back.
func (r *TestimonialRepo) Create(ctx context.Context, t *model.Testimonial) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO testimonials (text, author, company, created_by) VALUES (?,?,?,?)",
		t.Text, t.Author, t.Company, t.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// Update rewrites text, author and company.
func (r *TestimonialRepo) Update(ctx context.Context, t *model.Testimonial) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE testimonials SET text=?, author=?, company=? WHERE id=?",
		t.Text, t.Author, t.Company, t.ID)
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

// Delete removes a testimonial.  Returns ErrNotFound when no row matched.
func (r *TestimonialRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM testimonials WHERE id=?", id)
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
