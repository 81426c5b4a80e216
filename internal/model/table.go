package model

import "time"

// Table is a physical seating unit in the dining room with a fixed
// capacity.  Tables are reference data: they are seeded once and never
// created or modified by the reservation flow.  Catalog order (ascending
// id) is the tie-break order used by first-fit assignment.
//
// Fields:
//  ID        – primary key identifier.
//  Seats     – number of guests the table can hold (> 0).
//  CreatedAt – timestamp when the table was seeded.
//  UpdatedAt – timestamp of last update.
type Table struct {
	ID        uint64    // tables.id
	Seats     int       // tables.seats
	CreatedAt time.Time // tables.created_at
	UpdatedAt time.Time // tables.updated_at
}
