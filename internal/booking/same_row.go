package booking

import "sort"

// Selection is the outcome of one allocation strategy.  Cost is only
// comparable between selections of the same strategy: the number of runs
// touched for a same-row booking, the row spread for a multi-row booking.
type Selection struct {
    Seats []int
    Cost  int
}

// TryBookSameRow looks for a single row that can seat all n passengers.  A
// row qualifies when it has at least n available seats, contiguous or not.
// Within a row the longest runs are used first and each run contributes
// only what is still missing, so the selection never exceeds n seats.  The
// row whose seats come from the fewest runs wins; the front-most row wins a
// tie.  ok is false when n <= 0 or no row qualifies.
func TryBookSameRow(n int, m SeatMap) (sel Selection, ok bool) {
    if n <= 0 {
        return Selection{}, false
    }
    for _, row := range m {
        if len(row.Available()) < n {
            continue
        }
        cand := pickFromRow(n, row)
        if !ok || cand.Cost < sel.Cost {
            sel, ok = cand, true
        }
    }
    return sel, ok
}

// pickFromRow assumes the row holds at least n available seats.
func pickFromRow(n int, row Row) Selection {
    runs := row.runs()
    sort.SliceStable(runs, func(i, j int) bool { return len(runs[i]) > len(runs[j]) })
    seats := make([]int, 0, n)
    cost := 0
    for _, run := range runs {
        remaining := n - len(seats)
        if remaining == 0 {
            break
        }
        seats = append(seats, run[:min(remaining, len(run))]...)
        cost++
    }
    return Selection{Seats: seats, Cost: cost}
}
