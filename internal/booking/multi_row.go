package booking

// TryBookMultiRow spreads n seats over consecutive rows.  For every starting
// row it walks forward, never backward and never wrapping, taking the
// left-most available seats of each row until n are collected.  Only walks
// that collect exactly n seats are eligible; among them the one with the
// smallest spread (the sum of gaps between the rows that contributed) wins,
// and the earliest starting row wins a tie.  ok is false when n <= 0 or no
// walk reaches n.
func TryBookMultiRow(n int, m SeatMap) (sel Selection, ok bool) {
    if n <= 0 {
        return Selection{}, false
    }
    avail := make([][]int, len(m))
    for i, row := range m {
        avail[i] = row.Available()
    }
    for start := range avail {
        seats := make([]int, 0, n)
        used := make([]int, 0, 2)
        for j := start; j < len(avail) && len(seats) < n; j++ {
            take := avail[j][:min(n-len(seats), len(avail[j]))]
            if len(take) == 0 {
                continue
            }
            seats = append(seats, take...)
            used = append(used, j)
        }
        if len(seats) != n {
            continue
        }
        spread := 0
        for k := 1; k < len(used); k++ {
            spread += used[k] - used[k-1]
        }
        if !ok || spread < sel.Cost {
            sel, ok = Selection{Seats: seats, Cost: spread}, true
        }
    }
    return sel, ok
}
