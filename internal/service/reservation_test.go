package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwrona/restaurant-server/internal/booking"
	"github.com/mwrona/restaurant-server/internal/model"
	"github.com/mwrona/restaurant-server/internal/queue"
	"github.com/mwrona/restaurant-server/internal/repository"
)

// fakeStore backs both the engine reads and the service writes.  Create
// enforces the overlap guard the MySQL repo enforces, so the slot-taken
// race path can be exercised in-process.
type fakeStore struct {
	nextID       uint64
	reservations []model.Reservation
}

func (f *fakeStore) ListForTableOn(_ context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.TableID == tableID && r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, res *model.Reservation) error {
	for _, r := range f.reservations {
		if r.TableID == res.TableID && r.Date == res.Date &&
			res.StartTime < r.EndTime && res.EndTime > r.StartTime {
			return repository.ErrSlotTaken
		}
	}
	f.nextID++
	res.ID = f.nextID
	f.reservations = append(f.reservations, *res)
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (model.Reservation, error) {
	for _, r := range f.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Reservation{}, repository.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id uint64) error {
	for i, r := range f.reservations {
		if r.ID == id {
			f.reservations = append(f.reservations[:i], f.reservations[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) ListByUser(_ context.Context, userID uint64) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]model.Reservation, error) {
	return f.reservations, nil
}

type fakeTables struct{ tables []model.Table }

func (f *fakeTables) ListAll(_ context.Context) ([]model.Table, error) { return f.tables, nil }

func (f *fakeTables) ListWithCapacity(_ context.Context, minSeats int) ([]model.Table, error) {
	var out []model.Table
	for _, t := range f.tables {
		if t.Seats >= minSeats {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeUsers struct{ users map[uint64]model.User }

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

type fakePublisher struct {
	confirmed []queue.ReservationEvent
	cancelled []queue.ReservationEvent
}

func (f *fakePublisher) PublishConfirmed(_ context.Context, ev queue.ReservationEvent) error {
	f.confirmed = append(f.confirmed, ev)
	return nil
}

func (f *fakePublisher) PublishCancelled(_ context.Context, ev queue.ReservationEvent) error {
	f.cancelled = append(f.cancelled, ev)
	return nil
}

type fixture struct {
	svc       *ReservationService
	store     *fakeStore
	publisher *fakePublisher
}

func newFixture(seats ...int) *fixture {
	if len(seats) == 0 {
		seats = []int{4, 6, 2, 8}
	}
	tables := &fakeTables{}
	for i, s := range seats {
		tables.tables = append(tables.tables, model.Table{ID: uint64(i + 1), Seats: s})
	}
	store := &fakeStore{}
	users := &fakeUsers{users: map[uint64]model.User{
		7: {ID: 7, Email: "alice@example.com", Role: model.RoleUser},
	}}
	publisher := &fakePublisher{}
	engine := booking.NewEngine(tables, store, 2)
	return &fixture{
		svc:       NewReservationService(engine, store, users, publisher),
		store:     store,
		publisher: publisher,
	}
}

func guestRequest() CreateRequest {
	return CreateRequest{
		Date:      "2025-06-01",
		Time:      "18:00",
		Seats:     2,
		FirstName: "Jan",
		LastName:  "Kowalski",
		Email:     "jan@example.com",
	}
}

func TestCreate_GuestBooking(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Create(context.Background(), guestRequest())

	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.TableID)
	assert.Equal(t, "18:00", res.StartTime)
	assert.Equal(t, "20:00", res.EndTime)
	assert.Equal(t, "jan@example.com", res.Email)
	require.NotNil(t, res.FirstName)
	assert.Equal(t, "Jan", *res.FirstName)
	assert.Nil(t, res.UserID)

	require.Len(t, f.publisher.confirmed, 1)
	assert.Equal(t, res.ID, f.publisher.confirmed[0].ReservationID)
}

func TestCreate_AuthenticatedUsesProfileEmail(t *testing.T) {
	f := newFixture()
	req := guestRequest()
	req.Email = ""
	req.FirstName = ""
	req.LastName = ""
	req.User = &Identity{UserID: 7, Role: model.RoleUser}

	res, err := f.svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", res.Email)
	require.NotNil(t, res.UserID)
	assert.Equal(t, uint64(7), *res.UserID)
	// guest name fields stay empty on account bookings
	assert.Nil(t, res.FirstName)
	assert.Nil(t, res.LastName)
}

func TestCreate_GuestWithoutEmail(t *testing.T) {
	f := newFixture()
	req := guestRequest()
	req.Email = "   "

	_, err := f.svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrMissingContact)
	assert.Empty(t, f.store.reservations, "nothing may be written before contact resolution")
	assert.Empty(t, f.publisher.confirmed)
}

func TestCreate_InvalidInput(t *testing.T) {
	f := newFixture()

	req := guestRequest()
	req.Seats = 0
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)

	req = guestRequest()
	req.Time = "25:70"
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_NoTableAvailable(t *testing.T) {
	f := newFixture(2, 2)
	req := guestRequest()
	req.Seats = 6

	_, err := f.svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, booking.ErrNoTableAvailable)
	assert.Empty(t, f.publisher.confirmed)
}

func TestCreate_SecondOverlappingBookingMovesOn(t *testing.T) {
	f := newFixture()

	first, err := f.svc.Create(context.Background(), guestRequest())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.TableID)

	req := guestRequest()
	req.Time = "18:30"
	second, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.TableID)
}

func TestCancel_OwnerFreesSlot(t *testing.T) {
	f := newFixture()
	req := guestRequest()
	req.User = &Identity{UserID: 7, Role: model.RoleUser}
	res, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	err = f.svc.Cancel(context.Background(), res.ID, Identity{UserID: 7, Role: model.RoleUser})

	require.NoError(t, err)
	assert.Empty(t, f.store.reservations)
	require.Len(t, f.publisher.cancelled, 1)
	assert.Equal(t, "alice@example.com", f.publisher.cancelled[0].Email)

	// the freed window is immediately bookable again
	rebook, err := f.svc.Create(context.Background(), guestRequest())
	require.NoError(t, err)
	assert.Equal(t, res.TableID, rebook.TableID)
}

func TestCancel_AdminMayCancelAnyBooking(t *testing.T) {
	f := newFixture()
	res, err := f.svc.Create(context.Background(), guestRequest())
	require.NoError(t, err)

	err = f.svc.Cancel(context.Background(), res.ID, Identity{UserID: 99, Role: model.RoleAdmin})

	require.NoError(t, err)
	assert.Empty(t, f.store.reservations)
}

func TestCancel_StrangerIsRejected(t *testing.T) {
	f := newFixture()
	req := guestRequest()
	req.User = &Identity{UserID: 7, Role: model.RoleUser}
	res, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	err = f.svc.Cancel(context.Background(), res.ID, Identity{UserID: 8, Role: model.RoleUser})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Len(t, f.store.reservations, 1, "rejected cancel must not touch the booking")
	assert.Empty(t, f.publisher.cancelled)
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 42, Identity{UserID: 7, Role: model.RoleAdmin})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCheckAvailability_DryRun(t *testing.T) {
	f := newFixture()

	ok, tableID, err := f.svc.CheckAvailability(context.Background(), 2, "2025-06-01", "18:00")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), tableID)
	assert.Empty(t, f.store.reservations, "probe must not book")

	ok, _, err = f.svc.CheckAvailability(context.Background(), 50, "2025-06-01", "18:00")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAvailableSeats_ShrinksAsTablesFill(t *testing.T) {
	f := newFixture()

	seats, err := f.svc.AvailableSeats(context.Background(), "2025-06-01", "18:00")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 6, 2, 8}, seats)

	_, err = f.svc.Create(context.Background(), guestRequest())
	require.NoError(t, err)

	seats, err = f.svc.AvailableSeats(context.Background(), "2025-06-01", "18:00")
	require.NoError(t, err)
	assert.Equal(t, []int{6, 2, 8}, seats)
}

func TestListByUser_FiltersOwnBookings(t *testing.T) {
	f := newFixture()
	req := guestRequest()
	req.User = &Identity{UserID: 7, Role: model.RoleUser}
	_, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	other := guestRequest()
	other.Time = "12:00"
	_, err = f.svc.Create(context.Background(), other)
	require.NoError(t, err)

	mine, err := f.svc.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
