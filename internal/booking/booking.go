package booking

import "github.com/iliyamo/coach-seat-reservation/internal/model"

// Result is the outcome of BookTickets.  Booked is empty when the request
// could not be satisfied, in which case Coach is the input coach.
type Result struct {
    Coach  model.Coach
    Booked []int
}

// Strategy names which allocator produced a result.
type Strategy string

const (
    StrategyNone     Strategy = ""
    StrategySameRow  Strategy = "same_row"
    StrategyMultiRow Strategy = "multi_row"
)

// BookTickets allocates n seats on the coach.  It tries to seat the whole
// group in one row first and falls back to consecutive rows.  On success the
// returned coach carries a new reservation log: the old entries followed by
// the booked seats in allocation order.  The input coach is never modified.
// A non-positive n, a degenerate coach or a lack of room all yield the
// unchanged coach and no seats.
func BookTickets(n int, c model.Coach) Result {
    r, _ := Allocate(n, c)
    return r
}

// Allocate is BookTickets that also reports which strategy succeeded.
func Allocate(n int, c model.Coach) (Result, Strategy) {
    m := BuildSeatMap(c)
    if sel, ok := TryBookSameRow(n, m); ok && len(sel.Seats) > 0 {
        return commit(c, sel.Seats), StrategySameRow
    }
    if sel, ok := TryBookMultiRow(n, m); ok && len(sel.Seats) == n {
        return commit(c, sel.Seats), StrategyMultiRow
    }
    return Result{Coach: c, Booked: []int{}}, StrategyNone
}

func commit(c model.Coach, seats []int) Result {
    reserved := make([]int, 0, len(c.ReservedSeats)+len(seats))
    reserved = append(reserved, c.ReservedSeats...)
    reserved = append(reserved, seats...)
    next := c
    next.ReservedSeats = reserved
    booked := make([]int, len(seats))
    copy(booked, seats)
    return Result{Coach: next, Booked: booked}
}
