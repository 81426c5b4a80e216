package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/mwrona/restaurant-server/internal/booking"
	"github.com/mwrona/restaurant-server/internal/model"
	"github.com/mwrona/restaurant-server/internal/queue"
	"github.com/mwrona/restaurant-server/internal/repository"
)

// ReservationStore is the persistence surface the orchestration needs.
// The MySQL ReservationRepo implements it; tests use an in-memory fake.
// Create must perform its own conflict check and return
// repository.ErrSlotTaken when the window was grabbed concurrently.
type ReservationStore interface {
	ListForTableOn(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error)
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	Delete(ctx context.Context, id uint64) error
	ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
}

// UserDirectory resolves the profile of an authenticated requester,
// primarily for its email address.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// EventPublisher hands reservation events to the notification pipeline.
// Failures are logged by the service and never surface to the caller:
// a booking is complete once persisted.
type EventPublisher interface {
	PublishConfirmed(ctx context.Context, ev queue.ReservationEvent) error
	PublishCancelled(ctx context.Context, ev queue.ReservationEvent) error
}

// Identity is a resolved authenticated requester.  Handlers pass nil
// (anonymous) or a value of this type into the orchestration functions
// instead of stashing auth state on the request.
type Identity struct {
	UserID uint64
	Role   string
}

// IsAdmin reports whether the identity holds administrative privilege.
func (i Identity) IsAdmin() bool { return i.Role == model.RoleAdmin }

// CreateRequest carries a booking request into the service.  User is nil
// for guest bookings; then the guest fields identify whom to notify.
type CreateRequest struct {
	Date           string
	Time           string
	Seats          int
	AdditionalInfo string
	FirstName      string
	LastName       string
	Email          string
	User           *Identity
}

// assignAttempts bounds how often Create retries assignment after losing
// a slot race.  Each retry re-runs first-fit against fresh store state,
// so the next candidate table is picked up automatically.
const assignAttempts = 3

// ReservationService orchestrates booking creation and cancellation on
// top of the availability engine.
type ReservationService struct {
	engine    *booking.Engine
	store     ReservationStore
	users     UserDirectory
	publisher EventPublisher
}

// NewReservationService wires the service to its collaborators.
func NewReservationService(engine *booking.Engine, store ReservationStore, users UserDirectory, publisher EventPublisher) *ReservationService {
	if engine == nil || store == nil || users == nil || publisher == nil {
		panic("nil dependency passed to NewReservationService")
	}
	return &ReservationService{engine: engine, store: store, users: users, publisher: publisher}
}

// DurationHours exposes the configured booking duration.
func (s *ReservationService) DurationHours() int { return s.engine.DurationHours() }

// Create books a table for the request: resolve the contact address,
// assign the first fitting table, persist, then publish the confirmation
// event.  Validation and contact failures happen before any write.
func (s *ReservationService) Create(ctx context.Context, req CreateRequest) (model.Reservation, error) {
	if req.Seats <= 0 {
		return model.Reservation{}, ErrValidation
	}
	slot, err := booking.NewSlot(req.Date, req.Time, s.engine.DurationHours())
	if err != nil {
		return model.Reservation{}, ErrValidation
	}

	email, err := s.resolveEmail(ctx, req)
	if err != nil {
		return model.Reservation{}, err
	}

	res := model.Reservation{
		Date:      slot.Date,
		StartTime: slot.Start,
		EndTime:   slot.End,
		Seats:     req.Seats,
		Email:     email,
	}
	if v := strings.TrimSpace(req.AdditionalInfo); v != "" {
		res.AdditionalInfo = &v
	}
	if req.User != nil {
		uid := req.User.UserID
		res.UserID = &uid
	} else {
		if v := strings.TrimSpace(req.FirstName); v != "" {
			res.FirstName = &v
		}
		if v := strings.TrimSpace(req.LastName); v != "" {
			res.LastName = &v
		}
	}

	// The engine's availability pass and the store's guarded insert are
	// separate steps; losing the race between them surfaces as
	// ErrSlotTaken and we simply run assignment again.
	for attempt := 0; attempt < assignAttempts; attempt++ {
		table, err := s.engine.AssignTable(ctx, req.Seats, slot)
		if err != nil {
			return model.Reservation{}, err
		}
		res.TableID = table.ID
		err = s.store.Create(ctx, &res)
		if errors.Is(err, repository.ErrSlotTaken) {
			continue
		}
		if err != nil {
			return model.Reservation{}, err
		}
		s.publishConfirmed(ctx, res)
		return res, nil
	}
	return model.Reservation{}, booking.ErrNoTableAvailable
}

// Cancel deletes a reservation on behalf of its owner or an admin and
// publishes the cancellation event.  The reservation stays untouched
// when authorization fails.
func (s *ReservationService) Cancel(ctx context.Context, id uint64, requester Identity) error {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	owner := res.UserID != nil && *res.UserID == requester.UserID
	if !owner && !requester.IsAdmin() {
		return ErrUnauthorized
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	// Prefer the owner's current profile address; fall back to the
	// address stored on the reservation (guest bookings, deleted users).
	email := res.Email
	if res.UserID != nil {
		if u, err := s.users.GetByID(ctx, *res.UserID); err == nil {
			email = u.Email
		}
	}
	res.Email = email
	s.publishCancelled(ctx, res)
	return nil
}

// CheckAvailability runs first-fit assignment without booking anything
// and returns the table that would be assigned.
func (s *ReservationService) CheckAvailability(ctx context.Context, seats int, date, start string) (bool, uint64, error) {
	if seats <= 0 {
		return false, 0, ErrValidation
	}
	slot, err := booking.NewSlot(date, start, s.engine.DurationHours())
	if err != nil {
		return false, 0, ErrValidation
	}
	table, err := s.engine.AssignTable(ctx, seats, slot)
	if errors.Is(err, booking.ErrNoTableAvailable) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, table.ID, nil
}

// AvailableSeats reports the capacities free for the slot, one entry per
// free table.
func (s *ReservationService) AvailableSeats(ctx context.Context, date, start string) ([]int, error) {
	slot, err := booking.NewSlot(date, start, s.engine.DurationHours())
	if err != nil {
		return nil, ErrValidation
	}
	return s.engine.AvailableSeats(ctx, slot)
}

// ListByUser returns the reservations owned by one user.
func (s *ReservationService) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	return s.store.ListByUser(ctx, userID)
}

// ListAll returns every reservation.  Callers gate this behind the
// admin role.
func (s *ReservationService) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return s.store.ListAll(ctx)
}

// resolveEmail picks the notification address: the authenticated user's
// profile email when available, otherwise the guest-supplied address.
func (s *ReservationService) resolveEmail(ctx context.Context, req CreateRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.User != nil {
		u, err := s.users.GetByID(ctx, req.User.UserID)
		switch {
		case err == nil:
			email = u.Email
		case errors.Is(err, repository.ErrNotFound):
			// stale token for a deleted account; guest fields may still
			// carry an address
		default:
			return "", err
		}
	}
	if email == "" {
		return "", ErrMissingContact
	}
	return email, nil
}

func (s *ReservationService) publishConfirmed(ctx context.Context, res model.Reservation) {
	if err := s.publisher.PublishConfirmed(context.WithoutCancel(ctx), eventFrom(res)); err != nil {
		log.Printf("reservation %d: publish confirmation failed: %v", res.ID, err)
	}
}

func (s *ReservationService) publishCancelled(ctx context.Context, res model.Reservation) {
	if err := s.publisher.PublishCancelled(context.WithoutCancel(ctx), eventFrom(res)); err != nil {
		log.Printf("reservation %d: publish cancellation failed: %v", res.ID, err)
	}
}

func eventFrom(res model.Reservation) queue.ReservationEvent {
	ev := queue.ReservationEvent{
		ReservationID: res.ID,
		TableID:       res.TableID,
		Date:          res.Date,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		Seats:         res.Seats,
		Email:         res.Email,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if res.AdditionalInfo != nil {
		ev.AdditionalInfo = *res.AdditionalInfo
	}
	return ev
}
