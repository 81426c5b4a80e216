// Package repository implements the MySQL data access layer.  Sentinel
// errors defined here are shared across repositories so higher layers
// can distinguish failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a registration collides with an
// existing account.  Handlers should translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrSlotTaken is returned by ReservationRepo.Create when the guarded
// insert finds a conflicting reservation for the same table and window.
// The caller treats the table as unavailable and moves on.
var ErrSlotTaken = errors.New("slot already booked")
