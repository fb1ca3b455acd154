package booking

import (
    "math/rand/v2"
    "reflect"
    "testing"

    "github.com/iliyamo/coach-seat-reservation/internal/model"
)

func coach(total, width int, reserved ...int) model.Coach {
    return model.Coach{ID: 1, TotalSeats: total, RowWidth: width, ReservedSeats: reserved}
}

func TestBuildSeatMap_DefaultLayout(t *testing.T) {
    m := BuildSeatMap(coach(DefaultTotalSeats, DefaultRowWidth, 1, 80))
    if len(m) != 12 {
        t.Fatalf("expected 12 rows, got %d", len(m))
    }
    last := m[len(m)-1]
    if len(last) != 3 || last[0].Number != 78 || last[2].Number != 80 {
        t.Fatalf("unexpected last row: %+v", last)
    }
    if m[0][0].Status != SeatReserved || last[2].Status != SeatReserved {
        t.Fatalf("reserved seats not derived from log")
    }
    if m[0][1].Status != SeatAvailable {
        t.Fatalf("seat 2 should be available")
    }
}

func TestBuildSeatMap_Degenerate(t *testing.T) {
    if m := BuildSeatMap(coach(0, 7)); len(m) != 0 {
        t.Fatalf("expected empty map, got %d rows", len(m))
    }
    if m := BuildSeatMap(coach(10, 0)); len(m) != 0 {
        t.Fatalf("expected empty map, got %d rows", len(m))
    }
}

func TestTryBookSameRow(t *testing.T) {
    tests := []struct {
        name  string
        c     model.Coach
        n     int
        want  []int
        cost  int
        found bool
    }{
        {"first run of length three", coach(6, 6, 4), 2, []int{1, 2}, 1, true},
        {"fewest runs beats front row", coach(8, 4, 2, 4), 2, []int{5, 6}, 1, true},
        {"front row wins a tie", coach(8, 4), 2, []int{1, 2}, 1, true},
        {"longest run first then next", coach(7, 7, 3, 6), 4, []int{1, 2, 4, 5}, 2, true},
        {"stops at the outstanding remainder", coach(6, 6, 4), 4, []int{1, 2, 3, 5}, 2, true},
        {"longer run later in row is used first", coach(7, 7, 2), 3, []int{3, 4, 5}, 1, true},
        {"no row has enough seats", coach(6, 3, 1, 2, 4, 5), 2, nil, 0, false},
        {"zero seats", coach(6, 6), 0, nil, 0, false},
        {"negative seats", coach(6, 6), -1, nil, 0, false},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            sel, ok := TryBookSameRow(tt.n, BuildSeatMap(tt.c))
            if ok != tt.found {
                t.Fatalf("found=%v, want %v", ok, tt.found)
            }
            if !ok {
                return
            }
            if !reflect.DeepEqual(sel.Seats, tt.want) || sel.Cost != tt.cost {
                t.Fatalf("got %v cost=%d, want %v cost=%d", sel.Seats, sel.Cost, tt.want, tt.cost)
            }
        })
    }
}

func TestTryBookMultiRow_SpansRows(t *testing.T) {
    // rows: [1 _] [_ _] [5 _]
    m := BuildSeatMap(coach(6, 2, 2, 3, 4, 6))
    if _, ok := TryBookSameRow(2, m); ok {
        t.Fatal("same-row allocation should fail")
    }
    sel, ok := TryBookMultiRow(2, m)
    if !ok {
        t.Fatal("multi-row allocation should succeed")
    }
    if !reflect.DeepEqual(sel.Seats, []int{1, 5}) || sel.Cost != 2 {
        t.Fatalf("got %v spread=%d", sel.Seats, sel.Cost)
    }
}

func TestTryBookMultiRow_MinimalSpread(t *testing.T) {
    // rows: [1 _] [_ _] [5 _] [7 _]
    m := BuildSeatMap(coach(8, 2, 2, 3, 4, 6, 8))
    sel, ok := TryBookMultiRow(2, m)
    if !ok {
        t.Fatal("expected a selection")
    }
    if !reflect.DeepEqual(sel.Seats, []int{5, 7}) || sel.Cost != 1 {
        t.Fatalf("got %v spread=%d, want [5 7] spread=1", sel.Seats, sel.Cost)
    }
}

func TestTryBookMultiRow_NotEnough(t *testing.T) {
    m := BuildSeatMap(coach(4, 2, 1, 2, 3))
    if _, ok := TryBookMultiRow(2, m); ok {
        t.Fatal("expected no selection")
    }
    if _, ok := TryBookMultiRow(0, m); ok {
        t.Fatal("expected no selection for zero seats")
    }
    if _, ok := TryBookMultiRow(1, SeatMap{}); ok {
        t.Fatal("expected no selection for empty map")
    }
}

func randomCoach(rng *rand.Rand) model.Coach {
    c := NewEmptyCoach(1, 10+rng.IntN(80), 2+rng.IntN(8))
    return RandomFill(c, rng, rng.Float64())
}

func rowOf(c model.Coach, seat int) int { return (seat - 1) / c.RowWidth }

func TestAllocators_Properties(t *testing.T) {
    rng := rand.New(rand.NewPCG(7, 11))
    for i := 0; i < 500; i++ {
        c := randomCoach(rng)
        n := 1 + rng.IntN(8)
        m := BuildSeatMap(c)
        reserved := make(map[int]bool)
        for _, s := range c.ReservedSeats {
            reserved[s] = true
        }

        if sel, ok := TryBookSameRow(n, m); ok {
            if len(sel.Seats) != n {
                t.Fatalf("same-row returned %d seats for n=%d", len(sel.Seats), n)
            }
            row := rowOf(c, sel.Seats[0])
            for _, s := range sel.Seats {
                if reserved[s] {
                    t.Fatalf("same-row picked reserved seat %d", s)
                }
                if rowOf(c, s) != row {
                    t.Fatalf("same-row picked seats from several rows: %v", sel.Seats)
                }
            }
        }

        if sel, ok := TryBookMultiRow(n, m); ok {
            if len(sel.Seats) != n {
                t.Fatalf("multi-row returned %d seats for n=%d", len(sel.Seats), n)
            }
            for k, s := range sel.Seats {
                if reserved[s] {
                    t.Fatalf("multi-row picked reserved seat %d", s)
                }
                if k > 0 && rowOf(c, s) < rowOf(c, sel.Seats[k-1]) {
                    t.Fatalf("multi-row went backward: %v", sel.Seats)
                }
            }
        } else if c.AvailableCount() >= n {
            t.Fatalf("multi-row failed with %d seats free for n=%d", c.AvailableCount(), n)
        }
    }
}

func TestBookTickets_AppendsSelection(t *testing.T) {
    log := make([]int, 1, 16)
    log[0] = 4
    in := coach(6, 6)
    in.ReservedSeats = log

    got := BookTickets(2, in)
    if !reflect.DeepEqual(got.Booked, []int{1, 2}) {
        t.Fatalf("booked %v", got.Booked)
    }
    if !reflect.DeepEqual(got.Coach.ReservedSeats, []int{4, 1, 2}) {
        t.Fatalf("reserved %v", got.Coach.ReservedSeats)
    }
    if !reflect.DeepEqual(in.ReservedSeats, []int{4}) || !reflect.DeepEqual(log[:3], []int{4, 0, 0}) {
        t.Fatalf("input coach was mutated: %v", log[:3])
    }
}

func TestAllocate_FallsBackToMultiRow(t *testing.T) {
    res, strategy := Allocate(2, coach(6, 2, 2, 3, 4, 6))
    if strategy != StrategyMultiRow {
        t.Fatalf("strategy %q", strategy)
    }
    if !reflect.DeepEqual(res.Booked, []int{1, 5}) {
        t.Fatalf("booked %v", res.Booked)
    }
    if !reflect.DeepEqual(res.Coach.ReservedSeats, []int{2, 3, 4, 6, 1, 5}) {
        t.Fatalf("reserved %v", res.Coach.ReservedSeats)
    }
}

func TestBookTickets_Failures(t *testing.T) {
    tests := []struct {
        name string
        c    model.Coach
        n    int
    }{
        {"zero seats", coach(6, 6), 0},
        {"more than free seats", coach(6, 3, 1, 2, 3, 4), 3},
        {"more than total seats", coach(6, 3), 7},
        {"degenerate coach", coach(0, 0), 1},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got := BookTickets(tt.n, tt.c)
            if got.Booked == nil || len(got.Booked) != 0 {
                t.Fatalf("expected empty booked list, got %#v", got.Booked)
            }
            if !reflect.DeepEqual(got.Coach, tt.c) {
                t.Fatalf("coach changed: %+v", got.Coach)
            }
        })
    }
}

func TestBookTickets_Deterministic(t *testing.T) {
    rng := rand.New(rand.NewPCG(3, 5))
    for i := 0; i < 100; i++ {
        c := randomCoach(rng)
        n := 1 + rng.IntN(7)
        a, b := BookTickets(n, c), BookTickets(n, c)
        if !reflect.DeepEqual(a, b) {
            t.Fatalf("non-deterministic result for n=%d: %v vs %v", n, a.Booked, b.Booked)
        }
    }
}

func TestRandomFill(t *testing.T) {
    rng := rand.New(rand.NewPCG(1, 2))
    c := NewEmptyCoach(9, DefaultTotalSeats, DefaultRowWidth)
    filled := RandomFill(c, rng, 0.5)
    if len(filled.ReservedSeats) != 40 {
        t.Fatalf("expected 40 seats, got %d", len(filled.ReservedSeats))
    }
    for i, s := range filled.ReservedSeats {
        if s < 1 || s > DefaultTotalSeats {
            t.Fatalf("seat %d out of range", s)
        }
        if i > 0 && s <= filled.ReservedSeats[i-1] {
            t.Fatalf("seats not strictly ascending: %v", filled.ReservedSeats)
        }
    }
    if len(c.ReservedSeats) != 0 {
        t.Fatal("input coach was mutated")
    }
    if got := RandomFill(c, rng, 3); len(got.ReservedSeats) != DefaultTotalSeats {
        t.Fatalf("ratio above 1 should fill every seat, got %d", len(got.ReservedSeats))
    }
    if got := RandomFill(c, rng, -1); len(got.ReservedSeats) != 0 {
        t.Fatalf("negative ratio should fill nothing, got %d", len(got.ReservedSeats))
    }
}

func TestRowLabel(t *testing.T) {
    for i, want := range map[int]string{-1: "", 0: "A", 11: "L", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA"} {
        if got := RowLabel(i); got != want {
            t.Fatalf("RowLabel(%d) = %q, want %q", i, got, want)
        }
    }
}
