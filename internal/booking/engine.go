package booking

import (
	"context"
	"errors"

	"github.com/mwrona/restaurant-server/internal/model"
)

// ErrNoTableAvailable is returned by AssignTable when every table large
// enough for the party is already booked for the requested slot.  It is
// a user-facing condition, not a server fault.
var ErrNoTableAvailable = errors.New("no table available for the requested slot")

// TableStore is the slice of the table catalog the engine needs.  Both
// listing methods must return tables in catalog (ascending id) order;
// first-fit assignment depends on it.
type TableStore interface {
	ListAll(ctx context.Context) ([]model.Table, error)
	ListWithCapacity(ctx context.Context, minSeats int) ([]model.Table, error)
}

// ReservationReader exposes the booked windows of one table on one date.
// The engine only reads; all mutation goes through the orchestration
// layer so the check itself stays side-effect free.
type ReservationReader interface {
	ListForTableOn(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error)
}

// Engine answers availability questions against the table catalog and
// the reservation store.  Every check re-reads the store; there is no
// in-process caching of availability state.
type Engine struct {
	tables        TableStore
	reservations  ReservationReader
	durationHours int
}

// NewEngine wires the engine to its stores.  A non-positive duration
// falls back to DefaultDurationHours.
func NewEngine(tables TableStore, reservations ReservationReader, durationHours int) *Engine {
	if tables == nil || reservations == nil {
		panic("nil store passed to NewEngine")
	}
	if durationHours <= 0 {
		durationHours = DefaultDurationHours
	}
	return &Engine{tables: tables, reservations: reservations, durationHours: durationHours}
}

// DurationHours returns the configured booking duration.
func (e *Engine) DurationHours() int { return e.durationHours }

// IsAvailable reports whether the table has no booked window overlapping
// the requested slot.
func (e *Engine) IsAvailable(ctx context.Context, tableID uint64, slot Slot) (bool, error) {
	existing, err := e.reservations.ListForTableOn(ctx, tableID, slot.Date)
	if err != nil {
		return false, err
	}
	for _, r := range existing {
		if overlaps(slot.Start, slot.End, r.StartTime, r.EndTime) {
			return false, nil
		}
	}
	return true, nil
}

// AssignTable picks the first table in catalog order that seats the
// party and passes the availability check.  No tightest-fit search: the
// deliberate tie-break is catalog order.  Returns ErrNoTableAvailable
// when every candidate is too small or booked.
func (e *Engine) AssignTable(ctx context.Context, seats int, slot Slot) (model.Table, error) {
	candidates, err := e.tables.ListWithCapacity(ctx, seats)
	if err != nil {
		return model.Table{}, err
	}
	for _, t := range candidates {
		free, err := e.IsAvailable(ctx, t.ID, slot)
		if err != nil {
			return model.Table{}, err
		}
		if free {
			return t, nil
		}
	}
	return model.Table{}, ErrNoTableAvailable
}

// AvailableSeats returns the capacity of every table free for the slot,
// one entry per free table, in catalog order.  Equal capacities are not
// deduplicated: the count of entries per size tells the client how many
// tables of that size remain.
func (e *Engine) AvailableSeats(ctx context.Context, slot Slot) ([]int, error) {
	tables, err := e.tables.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	seats := make([]int, 0, len(tables))
	for _, t := range tables {
		free, err := e.IsAvailable(ctx, t.ID, slot)
		if err != nil {
			return nil, err
		}
		if free {
			seats = append(seats, t.Seats)
		}
	}
	return seats, nil
}
