// Package service holds the reservation orchestration: everything that
// happens between an HTTP request and the stores, from contact
// resolution and table assignment to persistence and the notification
// hand-off.
package service

import "errors"

// ErrValidation reports malformed or missing request fields.  Surfaced
// as HTTP 400; no side effect has occurred.
var ErrValidation = errors.New("invalid reservation request")

// ErrMissingContact reports a guest booking with no resolvable email
// address.  Surfaced as HTTP 400 before anything is persisted.
var ErrMissingContact = errors.New("no email address to send the confirmation to")

// ErrUnauthorized reports a cancellation attempted by someone who is
// neither the owner nor an admin.  Surfaced as HTTP 403.
var ErrUnauthorized = errors.New("not allowed to cancel this reservation")
