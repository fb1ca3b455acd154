// Package repository defines the sentinel errors shared by the data access
// layer.  Handlers compare against them with errors.Is to pick a response:
// a missing coach is a 404, while ErrInsufficientSeats and ErrNoSelection
// are business outcomes reported to the client as a failed booking rather
// than as server faults.
package repository

import "errors"

// ErrCoachNotFound is returned when no coach row exists for the given id.
var ErrCoachNotFound = errors.New("coach not found")

// ErrInsufficientSeats is returned when the coach has fewer free seats than
// requested.  The allocator is not run in that case.
var ErrInsufficientSeats = errors.New("not enough free seats")

// ErrNoSelection is returned when the allocator could not place the request
// even though enough seats appeared to be free.  Nothing is written.
var ErrNoSelection = errors.New("no seat selection found")

// ErrInvalidCoach is returned when a replacement coach violates the layout
// invariants (seat numbers outside [1, totalSeats], duplicates, bad sizes).
var ErrInvalidCoach = errors.New("invalid coach")
