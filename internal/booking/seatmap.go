// Package booking holds the seat allocation core.  It turns a coach snapshot
// into a seat map, picks seats for a request and returns the new reservation
// log.  Nothing here touches the database, the network or any global state,
// so every function is a pure computation over its arguments.
package booking

import "github.com/iliyamo/coach-seat-reservation/internal/model"

// SeatStatus is the derived availability of a seat.
type SeatStatus string

const (
    SeatAvailable SeatStatus = "available"
    SeatReserved  SeatStatus = "reserved"
)

// Seat is a single numbered seat with its derived status.
type Seat struct {
    Number int        `json:"number"`
    Status SeatStatus `json:"status"`
}

// Row is an ordered run of seats, left to right.
type Row []Seat

// SeatMap is the transient row-major view of a coach, front to back.
type SeatMap []Row

// BuildSeatMap lays the coach out row-major: seat 1 is the first seat of row
// 0 and every row holds RowWidth seats except possibly the last one.  A seat
// is reserved exactly when its number appears in ReservedSeats.  A coach
// with no seats or a non-positive row width yields an empty map.
func BuildSeatMap(c model.Coach) SeatMap {
    if c.TotalSeats <= 0 || c.RowWidth <= 0 {
        return SeatMap{}
    }
    reserved := make(map[int]struct{}, len(c.ReservedSeats))
    for _, n := range c.ReservedSeats {
        reserved[n] = struct{}{}
    }
    rows := (c.TotalSeats + c.RowWidth - 1) / c.RowWidth
    m := make(SeatMap, 0, rows)
    for start := 1; start <= c.TotalSeats; start += c.RowWidth {
        end := min(start+c.RowWidth-1, c.TotalSeats)
        row := make(Row, 0, end-start+1)
        for n := start; n <= end; n++ {
            st := SeatAvailable
            if _, ok := reserved[n]; ok {
                st = SeatReserved
            }
            row = append(row, Seat{Number: n, Status: st})
        }
        m = append(m, row)
    }
    return m
}

// Available returns the numbers of the available seats in the row, left to right.
func (r Row) Available() []int {
    out := make([]int, 0, len(r))
    for _, s := range r {
        if s.Status == SeatAvailable {
            out = append(out, s.Number)
        }
    }
    return out
}

// runs splits the row into maximal blocks of contiguous available seats,
// left to right.
func (r Row) runs() [][]int {
    var out [][]int
    var cur []int
    for _, s := range r {
        if s.Status == SeatAvailable {
            cur = append(cur, s.Number)
            continue
        }
        if len(cur) > 0 {
            out = append(out, cur)
            cur = nil
        }
    }
    if len(cur) > 0 {
        out = append(out, cur)
    }
    return out
}

// RowLabel converts a zero-based row index into a spreadsheet style label:
// 0 → "A", 25 → "Z", 26 → "AA".  Negative indices yield "".
func RowLabel(i int) string {
    if i < 0 {
        return ""
    }
    var res []byte
    for {
        res = append(res, byte('A'+i%26))
        i = i/26 - 1
        if i < 0 {
            break
        }
    }
    for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
        res[j], res[k] = res[k], res[j]
    }
    return string(res)
}
