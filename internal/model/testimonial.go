package model

import "time"

// Testimonial is a quote displayed on the landing page.
//
// Fields:
//  ID        – primary key identifier.
//  Text      – the quote itself.
//  Author    – person being quoted.
//  Company   – optional affiliation shown under the name.
//  CreatedBy – admin user who added the testimonial.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Testimonial struct {
	ID        uint64    // testimonials.id
	Text      string    // testimonials.text
	Author    string    // testimonials.author
	Company   *string   // testimonials.company (nullable)
	CreatedBy uint64    // testimonials.created_by
	CreatedAt time.Time // testimonials.created_at
	UpdatedAt time.Time // testimonials.updated_at
}
