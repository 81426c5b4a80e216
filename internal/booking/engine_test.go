package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwrona/restaurant-server/internal/model"
)

// memStore is an in-memory stand-in for the table catalog and the
// reservation store, good enough to drive the engine in tests.
type memStore struct {
	tables       []model.Table
	reservations []model.Reservation
}

func (m *memStore) ListAll(_ context.Context) ([]model.Table, error) {
	return m.tables, nil
}

func (m *memStore) ListWithCapacity(_ context.Context, minSeats int) ([]model.Table, error) {
	var out []model.Table
	for _, t := range m.tables {
		if t.Seats >= minSeats {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) ListForTableOn(_ context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range m.reservations {
		if r.TableID == tableID && r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) book(tableID uint64, date, start, end string) {
	m.reservations = append(m.reservations, model.Reservation{
		TableID: tableID, Date: date, StartTime: start, EndTime: end,
	})
}

// defaultCatalog mirrors a typical floor: a mix of small and large
// tables in fixed catalog order.
func defaultCatalog() []model.Table {
	seats := []int{4, 6, 2, 8, 4, 4, 6, 10}
	tables := make([]model.Table, 0, len(seats))
	for i, s := range seats {
		tables = append(tables, model.Table{ID: uint64(i + 1), Seats: s})
	}
	return tables
}

func newTestEngine(store *memStore) *Engine {
	return NewEngine(store, store, 2)
}

func mustSlot(t *testing.T, date, start string) Slot {
	t.Helper()
	slot, err := NewSlot(date, start, 2)
	require.NoError(t, err)
	return slot
}

func TestEngine_IsAvailable_FlipsWhenBooked(t *testing.T) {
	store := &memStore{tables: defaultCatalog()}
	engine := newTestEngine(store)
	slot := mustSlot(t, "2025-06-01", "18:00")

	free, err := engine.IsAvailable(context.Background(), 1, slot)
	require.NoError(t, err)
	assert.True(t, free)

	store.book(1, "2025-06-01", "18:00", "20:00")

	free, err = engine.IsAvailable(context.Background(), 1, slot)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestEngine_IsAvailable_DetectsContainment(t *testing.T) {
	store := &memStore{tables: defaultCatalog()}
	engine := newTestEngine(store)

	// existing long booking fully contains the requested window
	store.book(1, "2025-06-01", "17:00", "22:00")

	free, err := engine.IsAvailable(context.Background(), 1, mustSlot(t, "2025-06-01", "18:00"))
	require.NoError(t, err)
	assert.False(t, free)
}

func TestEngine_IsAvailable_OtherDateDoesNotConflict(t *testing.T) {
	store := &memStore{tables: defaultCatalog()}
	engine := newTestEngine(store)

	store.book(1, "2025-06-01", "18:00", "20:00")

	free, err := engine.IsAvailable(context.Background(), 1, mustSlot(t, "2025-06-02", "18:00"))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestEngine_AssignTable_FirstFitInCatalogOrder(t *testing.T) {
	store := &memStore{tables: defaultCatalog()}
	engine := newTestEngine(store)

	// party of 2 fits table 1 (4 seats) before the exact-size table 3
	table, err := engine.AssignTable(context.Background(), 2, mustSlot(t, "2025-06-01", "18:00"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), table.ID)
}

func TestEngine_AssignTable_SkipsBookedTables(t *testing.T) {
	store := &memStore{tables: defaultCatalog()}
	engine := newTestEngine(store)

	// tables 1 and 2 are taken around the requested window
	store.book(1, "2025-06-01", "18:30", "20:30")
	store.book(2, "2025-06-01", "17:00", "19:00")

	table, err := engine.AssignTable(context.Background(), 2, mustSlot(t, "2025-06-01", "18:00"))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), table.ID)
}

func TestEngine_AssignTable_OverlappingRequestGetsNextTable(t *testing.T) {
	store := &memStore{tables: defaultCatalog()}
	engine := newTestEngine(store)

	first, err := engine.AssignTable(context.Background(), 4, mustSlot(t, "2025-06-01", "18:00"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.ID)
	store.book(first.ID, "2025-06-01", "18:00", "20:00")

	// 18:30 overlaps the first booking, so the next fitting table wins
	second, err := engine.AssignTable(context.Background(), 4, mustSlot(t, "2025-06-01", "18:30"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.ID)
}

func TestEngine_AssignTable_PartyTooLarge(t *testing.T) {
	store := &memStore{tables: defaultCatalog()}
	engine := newTestEngine(store)

	_, err := engine.AssignTable(context.Background(), 11, mustSlot(t, "2025-06-01", "18:00"))
	assert.ErrorIs(t, err, ErrNoTableAvailable)
}

func TestEngine_AssignTable_AllFittingTablesBooked(t *testing.T) {
	store := &memStore{tables: []model.Table{{ID: 1, Seats: 4}, {ID: 2, Seats: 6}}}
	engine := newTestEngine(store)

	store.book(1, "2025-06-01", "18:00", "20:00")
	store.book(2, "2025-06-01", "18:00", "20:00")

	_, err := engine.AssignTable(context.Background(), 4, mustSlot(t, "2025-06-01", "19:00"))
	assert.ErrorIs(t, err, ErrNoTableAvailable)
}

func TestEngine_AssignTable_IsReadOnly(t *testing.T) {
	store := &memStore{tables: defaultCatalog()}
	engine := newTestEngine(store)
	slot := mustSlot(t, "2025-06-01", "18:00")

	// repeated dry-runs keep answering the same table
	for i := 0; i < 3; i++ {
		table, err := engine.AssignTable(context.Background(), 4, slot)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), table.ID)
	}
	assert.Empty(t, store.reservations)
}

func TestEngine_AvailableSeats_OneEntryPerFreeTable(t *testing.T) {
	store := &memStore{tables: defaultCatalog()}
	engine := newTestEngine(store)

	seats, err := engine.AvailableSeats(context.Background(), mustSlot(t, "2025-06-01", "18:00"))
	require.NoError(t, err)
	// every table free: capacities in catalog order, duplicates preserved
	assert.Equal(t, []int{4, 6, 2, 8, 4, 4, 6, 10}, seats)
}

func TestEngine_AvailableSeats_DropsBookedTables(t *testing.T) {
	store := &memStore{tables: defaultCatalog()}
	engine := newTestEngine(store)

	store.book(1, "2025-06-01", "18:00", "20:00")
	store.book(4, "2025-06-01", "19:00", "21:00")

	seats, err := engine.AvailableSeats(context.Background(), mustSlot(t, "2025-06-01", "18:00"))
	require.NoError(t, err)
	assert.Equal(t, []int{6, 2, 4, 4, 6, 10}, seats)
}

func TestEngine_AvailableSeats_EmptyCatalog(t *testing.T) {
	store := &memStore{}
	engine := newTestEngine(store)

	seats, err := engine.AvailableSeats(context.Background(), mustSlot(t, "2025-06-01", "18:00"))
	require.NoError(t, err)
	assert.Empty(t, seats)
}
