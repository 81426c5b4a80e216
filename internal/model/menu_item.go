package model

import "time"

// MenuItem is a dish on the public menu.  Prices are stored in cents
// (grosze) to avoid floating point arithmetic on money.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – dish name shown to guests.
//  Description – short description shown under the name.
//  PriceCents  – price in cents.
//  CreatedBy   – admin user who added the item.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type MenuItem struct {
	ID          uint64    // menu_items.id
	Name        string    // menu_items.name
	Description string    // menu_items.description
	PriceCents  uint32    // menu_items.price_cents
	CreatedBy   uint64    // menu_items.created_by
	CreatedAt   time.Time // menu_items.created_at
	UpdatedAt   time.Time // menu_items.updated_at
}
