package repository

import (
	"context"
	"database/sql"

	"github.com/mwrona/restaurant-server/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Date and
// time-of-day columns hold fixed-width strings ("2006-01-02", "15:04"),
// so SQL string comparison on them matches chronological order.
type ReservationRepo struct{ DB *sql.DB }

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

const reservationCols = `id, table_id, date, start_time, end_time, seats,
	additional_info, first_name, last_name, email, user_id, created_at`

// Create inserts the reservation inside a transaction that first re-checks
// the slot with a locking read.  The availability pass in the booking
// engine runs outside any transaction, so two concurrent requests can both
// see a table as free; the guarded insert here is what prevents the
// double-booking.  Returns ErrSlotTaken when a conflicting row exists.
// On success the generated ID is written back to res.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
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

	// Lock conflicting rows for the duration of the transaction.  True
	// interval overlap: existing.start < new.end AND existing.end > new.start.
	const check = `SELECT COUNT(*) FROM reservations
		WHERE table_id = ? AND date = ? AND start_time < ? AND end_time > ?
		FOR UPDATE`
	var conflicts int
	if err := tx.QueryRowContext(ctx, check,
		res.TableID, res.Date, res.EndTime, res.StartTime).Scan(&conflicts); err != nil {
		return err
	}
	if conflicts > 0 {
		return ErrSlotTaken
	}

	const ins = `INSERT INTO reservations
		(table_id, date, start_time, end_time, seats, additional_info, first_name, last_name, email, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, ins,
		res.TableID, res.Date, res.StartTime, res.EndTime, res.Seats,
		res.AdditionalInfo, res.FirstName, res.LastName, res.Email, res.UserID)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	res.ID = uint64(id)
	return nil
}

// ListForTableOn returns every reservation of one table on one date.
func (r *ReservationRepo) ListForTableOn(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations
		WHERE table_id = ? AND date = ? ORDER BY start_time`
	return r.list(ctx, q, tableID, date)
}

// GetByID fetches one reservation.  Returns ErrNotFound when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ? LIMIT 1`
	row := r.DB.QueryRowContext(ctx, q, id)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrNotFound
	}
	return res, err
}

// Delete removes a reservation.  Returns ErrNotFound when no row matched.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns the reservations owned by one user, newest date first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations
		WHERE user_id = ? ORDER BY date DESC, start_time DESC`
	return r.list(ctx, q, userID)
}

// ListAll returns every reservation, newest date first.  Admin view.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations
		ORDER BY date DESC, start_time DESC`
	return r.list(ctx, q)
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanReservation(row rowScanner) (model.Reservation, error) {
	var (
		res     model.Reservation
		addInfo sql.NullString
		first   sql.NullString
		last    sql.NullString
		userID  sql.NullInt64
	)
	err := row.Scan(&res.ID, &res.TableID, &res.Date, &res.StartTime, &res.EndTime,
		&res.Seats, &addInfo, &first, &last, &res.Email, &userID, &res.CreatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	if addInfo.Valid {
		v := addInfo.String
		res.AdditionalInfo = &v
	}
	if first.Valid {
		v := first.String
		res.FirstName = &v
	}
	if last.Valid {
		v := last.String
		res.LastName = &v
	}
	if userID.Valid {
		v := uint64(userID.Int64)
		res.UserID = &v
	}
	return res, nil
}

func (r *ReservationRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
