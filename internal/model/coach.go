package model

import "time"

// Coach is the reservable unit: a fixed layout of numbered seats and the
// log of seat numbers that have been booked so far.  ReservedSeats is the
// only source of truth for occupancy; seat status is always derived from
// it.  Values lie in [1, TotalSeats] and are appended in booking order.
//
// Fields:
//  ID            – primary key identifier.
//  TotalSeats    – number of seats in the coach.
//  RowWidth      – seats per row; the last row may be shorter.
//  ReservedSeats – booked seat numbers in booking order.
//  UpdatedAt     – last write timestamp.
type Coach struct {
    ID            uint64    `json:"id"`             // coaches.id
    TotalSeats    int       `json:"totalSeats"`     // coaches.total_seats
    RowWidth      int       `json:"rowWidth"`       // coaches.row_width
    ReservedSeats []int     `json:"reservedSeats"`  // coaches.reserved_seats (JSON array)
    UpdatedAt     time.Time `json:"updatedAt"`      // coaches.updated_at
}

// AvailableCount returns how many seats are not yet reserved.
func (c Coach) AvailableCount() int {
    return c.TotalSeats - len(c.ReservedSeats)
}
