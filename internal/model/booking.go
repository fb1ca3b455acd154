package model

import "time"

// BookingRecord is one successful booking against a coach.  It is written
// in the same transaction that appends Seats to the coach's reservation log.
//
// Fields:
//  ID        – primary key identifier.
//  Reference – public booking reference (UUID).
//  CoachID   – coach the seats belong to.
//  Seats     – seat numbers booked, in allocation order.
//  CreatedAt – creation timestamp.
type BookingRecord struct {
    ID        uint64    `json:"id"`        // coach_bookings.id
    Reference string    `json:"reference"` // coach_bookings.reference
    CoachID   uint64    `json:"coachId"`   // coach_bookings.coach_id
    Seats     []int     `json:"seats"`     // coach_bookings.seats (JSON array)
    CreatedAt time.Time `json:"createdAt"` // coach_bookings.created_at
}
