package booking

import (
    "math"
    "math/rand/v2"
    "sort"

    "github.com/iliyamo/coach-seat-reservation/internal/model"
)

// Default layout: 80 seats, 7 to a row, so the last row holds 3.
const (
    DefaultTotalSeats = 80
    DefaultRowWidth   = 7
)

// NewEmptyCoach returns a coach with every seat available.
func NewEmptyCoach(id uint64, totalSeats, rowWidth int) model.Coach {
    return model.Coach{
        ID:            id,
        TotalSeats:    totalSeats,
        RowWidth:      rowWidth,
        ReservedSeats: []int{},
    }
}

// RandomFill returns a copy of c whose reservation log is replaced by a
// random set of round(TotalSeats*ratio) distinct seats in ascending order.
// ratio is clamped to [0, 1].
func RandomFill(c model.Coach, rng *rand.Rand, ratio float64) model.Coach {
    ratio = math.Max(0, math.Min(1, ratio))
    total := max(c.TotalSeats, 0)
    k := int(math.Round(float64(total) * ratio))
    perm := rng.Perm(total)[:k]
    seats := make([]int, k)
    for i, p := range perm {
        seats[i] = p + 1
    }
    sort.Ints(seats)
    next := c
    next.ReservedSeats = seats
    return next
}
