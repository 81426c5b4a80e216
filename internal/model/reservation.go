package model

import "time"

// Reservation is a booked time window on one table for one party.  The
// window is stored as a calendar date plus start and end times of day;
// EndTime is computed once at creation (start + configured duration) and
// never recomputed.  Exactly one identification path is used: UserID for
// an authenticated booking, or the guest triple (first name, last name,
// email) supplied on the request.  Email always holds the address the
// confirmation was sent to, whichever path produced it.
//
// Date uses the "2006-01-02" layout and StartTime/EndTime use "15:04".
// Both layouts are fixed width, so string comparison on them orders the
// same way the underlying DATE/TIME columns do.
//
// Fields:
//  ID             – primary key identifier.
//  TableID        – table the party is seated at.
//  Date           – calendar date of the booking ("2006-01-02").
//  StartTime      – start time of day ("15:04").
//  EndTime        – end time of day ("15:04"), start + duration.
//  Seats          – party size (> 0, <= table capacity).
//  AdditionalInfo – optional free-text note from the guest.
//  FirstName      – guest first name (nil for authenticated bookings).
//  LastName       – guest last name (nil for authenticated bookings).
//  Email          – resolved contact address.
//  UserID         – owning user (nil for guest bookings).
//  CreatedAt      – creation timestamp.
type Reservation struct {
	ID             uint64    // reservations.id
	TableID        uint64    // reservations.table_id
	Date           string    // reservations.date (DATE)
	StartTime      string    // reservations.start_time (TIME)
	EndTime        string    // reservations.end_time (TIME)
	Seats          int       // reservations.seats
	AdditionalInfo *string   // reservations.additional_info (nullable)
	FirstName      *string   // reservations.first_name (nullable)
	LastName       *string   // reservations.last_name (nullable)
	Email          string    // reservations.email
	UserID         *uint64   // reservations.user_id (nullable)
	CreatedAt      time.Time // reservations.created_at
}
