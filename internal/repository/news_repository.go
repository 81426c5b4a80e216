package repository

import (
	"context"
	"database/sql"

	"github.com/mwrona/restaurant-server/internal/model"
)

// NewsRepo persists news articles, their ordered sections and reader
// comments.  An article and its sections are written in one transaction;
// sections and comments are removed together with their article.
type NewsRepo struct{ DB *sql.DB }

func NewNewsRepo(db *sql.DB) *NewsRepo { return &NewsRepo{DB: db} }

const newsCols = `id, category, title, intro_text, image, author_id, created_at, updated_at`

// Create inserts the article and its sections atomically, writing the
// generated ID back to n.
func (r *NewsRepo) Create(ctx context.Context, n *model.News, sections []model.NewsSection) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO news (category, title, intro_text, image, author_id) VALUES (?,?,?,?,?)",
		n.Category, n.Title, n.IntroText, n.Image, n.AuthorID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for i, s := range sections {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO news_sections (news_id, header, body, position) VALUES (?,?,?,?)",
			id, s.Header, s.Body, i); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	n.ID = uint64(id)
	return nil
}

// List returns all articles, newest first.
func (r *NewsRepo) List(ctx context.Context) ([]model.News, error) {
	return r.listNews(ctx, "SELECT "+newsCols+" FROM news ORDER BY id DESC")
}

// Latest returns the most recent n articles.
func (r *NewsRepo) Latest(ctx context.Context, n int) ([]model.News, error) {
	return r.listNews(ctx, "SELECT "+newsCols+" FROM news ORDER BY id DESC LIMIT ?", n)
}

// GetByID fetches one article together with its ordered sections.
// Returns ErrNotFound when absent.
func (r *NewsRepo) GetByID(ctx context.Context, id uint64) (model.News, []model.NewsSection, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+newsCols+" FROM news WHERE id=? LIMIT 1", id)
	n, err := scanNews(row)
	if err == sql.ErrNoRows {
		return model.News{}, nil, ErrNotFound
	}
	if err != nil {
		return model.News{}, nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, news_id, header, body, position FROM news_sections WHERE news_id=? ORDER BY position", id)
	if err != nil {
		return model.News{}, nil, err
	}
	defer rows.Close()
	var sections []model.NewsSection
	for rows.Next() {
		var s model.NewsSection
		if err := rows.Scan(&s.ID, &s.NewsID, &s.Header, &s.Body, &s.Position); err != nil {
			return model.News{}, nil, err
		}
		sections = append(sections, s)
	}
	return n, sections, rows.Err()
}

// Update rewrites the article headline fields.  Sections are replaced
// only when a non-nil slice is given.
func (r *NewsRepo) Update(ctx context.Context, n *model.News, sections []model.NewsSection) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE news SET category=?, title=?, intro_text=? WHERE id=?",
		n.Category, n.Title, n.IntroText, n.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// UPDATE with identical values reports 0 rows; confirm existence.
		var one int
		if err := tx.QueryRowContext(ctx, "SELECT 1 FROM news WHERE id=?", n.ID).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return ErrNotFound
			}
			return err
		}
	}
	if sections != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM news_sections WHERE news_id=?", n.ID); err != nil {
			return err
		}
		for i, s := range sections {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO news_sections (news_id, header, body, position) VALUES (?,?,?,?)",
				n.ID, s.Header, s.Body, i); err != nil {
				return err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete removes an article with its sections and comments.
func (r *NewsRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE news_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM news_sections WHERE news_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM news WHERE id=?", id)
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
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListComments returns the comments of an article, oldest first.
func (r *NewsRepo) ListComments(ctx context.Context, newsID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, news_id, user_id, text, created_at FROM comments WHERE news_id=? ORDER BY id", newsID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.NewsID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateComment inserts a comment and writes the generated ID back.
func (r *NewsRepo) CreateComment(ctx context.Context, c *model.Comment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (news_id, user_id, text) VALUES (?,?,?)",
		c.NewsID, c.UserID, c.Text)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetComment fetches one comment.  Returns ErrNotFound when absent.
func (r *NewsRepo) GetComment(ctx context.Context, id uint64) (model.Comment, error) {
	var c model.Comment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, news_id, user_id, text, created_at FROM comments WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.NewsID, &c.UserID, &c.Text, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Comment{}, ErrNotFound
	}
	return c, err
}

// DeleteComment removes a comment.  Returns ErrNotFound when no row matched.
func (r *NewsRepo) DeleteComment(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
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

func scanNews(row rowScanner) (model.News, error) {
	var (
		n     model.News
		image sql.NullString
	)
	err := row.Scan(&n.ID, &n.Category, &n.Title, &n.IntroText, &image,
		&n.AuthorID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return model.News{}, err
	}
	if image.Valid {
		v := image.String
		n.Image = &v
	}
	return n, nil
}

func (r *NewsRepo) listNews(ctx context.Context, q string, args ...interface{}) ([]model.News, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
