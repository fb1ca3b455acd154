package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "errors"
    "fmt"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/coach-seat-reservation/internal/booking"
    "github.com/iliyamo/coach-seat-reservation/internal/model"
)

// CoachRepo provides data access to the coaches and coach_bookings tables.
// Bookings run the allocator inside a transaction that holds a row lock on
// the coach, so concurrent requests against the same coach are serialized
// and each one sees the log left by the previous commit.
type CoachRepo struct {
    db *sql.DB
}

// NewCoachRepo returns a new CoachRepo bound to the provided database.
func NewCoachRepo(db *sql.DB) *CoachRepo { return &CoachRepo{db: db} }

// DB exposes the underlying handle for callers that manage their own transactions.
func (r *CoachRepo) DB() *sql.DB { return r.db }

// BookingOutcome is the committed result of a successful booking.
type BookingOutcome struct {
    Coach    model.Coach
    Booking  model.BookingRecord
    Strategy booking.Strategy
}

type rowScanner interface {
    Scan(dest ...any) error
}

func scanCoach(row rowScanner) (*model.Coach, error) {
    var (
        c   model.Coach
        raw []byte
    )
    if err := row.Scan(&c.ID, &c.TotalSeats, &c.RowWidth, &raw, &c.UpdatedAt); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCoachNotFound
        }
        return nil, err
    }
    seats, err := decodeSeats(raw)
    if err != nil {
        return nil, fmt.Errorf("decode reserved_seats of coach %d: %w", c.ID, err)
    }
    c.ReservedSeats = seats
    return &c, nil
}

func decodeSeats(raw []byte) ([]int, error) {
    seats := []int{}
    if len(raw) == 0 {
        return seats, nil
    }
    if err := json.Unmarshal(raw, &seats); err != nil {
        return nil, err
    }
    if seats == nil {
        seats = []int{}
    }
    return seats, nil
}

func encodeSeats(seats []int) ([]byte, error) {
    if seats == nil {
        seats = []int{}
    }
    return json.Marshal(seats)
}

const selectCoach = `SELECT id, total_seats, row_width, reserved_seats, updated_at FROM coaches WHERE id = ?`

// Get returns the coach with the given id or ErrCoachNotFound.
func (r *CoachRepo) Get(ctx context.Context, id uint64) (*model.Coach, error) {
    return scanCoach(r.db.QueryRowContext(ctx, selectCoach, id))
}

// EnsureCoach inserts c when no coach with its id exists yet.  An existing
// coach is left untouched.
func (r *CoachRepo) EnsureCoach(ctx context.Context, c model.Coach) error {
    if err := ValidateCoach(c); err != nil {
        return err
    }
    raw, err := encodeSeats(c.ReservedSeats)
    if err != nil {
        return err
    }
    _, err = r.db.ExecContext(ctx,
        `INSERT IGNORE INTO coaches (id, total_seats, row_width, reserved_seats) VALUES (?,?,?,?)`,
        c.ID, c.TotalSeats, c.RowWidth, raw)
    return err
}

// Replace overwrites the coach wholesale (reset and random fill).  The
// booking history is kept.
func (r *CoachRepo) Replace(ctx context.Context, c model.Coach) (*model.Coach, error) {
    if err := ValidateCoach(c); err != nil {
        return nil, err
    }
    raw, err := encodeSeats(c.ReservedSeats)
    if err != nil {
        return nil, err
    }
    _, err = r.db.ExecContext(ctx,
        `INSERT INTO coaches (id, total_seats, row_width, reserved_seats) VALUES (?,?,?,?)
         ON DUPLICATE KEY UPDATE total_seats = VALUES(total_seats), row_width = VALUES(row_width),
                                 reserved_seats = VALUES(reserved_seats), updated_at = CURRENT_TIMESTAMP`,
        c.ID, c.TotalSeats, c.RowWidth, raw)
    if err != nil {
        return nil, fmt.Errorf("replace coach %d: %w", c.ID, err)
    }
    return r.Get(ctx, c.ID)
}

// Book reserves seats on coach id.  The coach row is locked, the free seat
// count is checked, the allocator runs on the locked snapshot and, when it
// picks seats, the new reservation log and a booking record are written
// before the lock is released.  ErrInsufficientSeats and ErrNoSelection
// leave the database untouched.
func (r *CoachRepo) Book(ctx context.Context, id uint64, seats int) (*BookingOutcome, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, fmt.Errorf("begin booking tx: %w", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    current, err := scanCoach(tx.QueryRowContext(ctx, selectCoach+" FOR UPDATE", id))
    if err != nil {
        return nil, err
    }
    if current.AvailableCount() < seats {
        return nil, ErrInsufficientSeats
    }
    res, strategy := booking.Allocate(seats, *current)
    if len(res.Booked) == 0 {
        return nil, ErrNoSelection
    }

    raw, err := encodeSeats(res.Coach.ReservedSeats)
    if err != nil {
        return nil, err
    }
    if _, err := tx.ExecContext(ctx,
        `UPDATE coaches SET reserved_seats = ?, updated_at = ? WHERE id = ?`,
        raw, time.Now().UTC(), id); err != nil {
        return nil, fmt.Errorf("update coach %d: %w", id, err)
    }

    rec := model.BookingRecord{
        Reference: uuid.NewString(),
        CoachID:   id,
        Seats:     res.Booked,
        CreatedAt: time.Now().UTC().Truncate(time.Second),
    }
    bookedRaw, err := encodeSeats(rec.Seats)
    if err != nil {
        return nil, err
    }
    result, err := tx.ExecContext(ctx,
        `INSERT INTO coach_bookings (reference, coach_id, seats, created_at) VALUES (?,?,?,?)`,
        rec.Reference, rec.CoachID, bookedRaw, rec.CreatedAt)
    if err != nil {
        return nil, fmt.Errorf("insert booking: %w", err)
    }
    if lastID, err := result.LastInsertId(); err == nil {
        rec.ID = uint64(lastID)
    }

    if err := tx.Commit(); err != nil {
        return nil, fmt.Errorf("commit booking: %w", err)
    }
    committed = true

    updated := res.Coach
    updated.UpdatedAt = rec.CreatedAt
    return &BookingOutcome{Coach: updated, Booking: rec, Strategy: strategy}, nil
}

// ListBookings returns the most recent bookings for a coach, newest first.
// limit is clamped to [1, 500].
func (r *CoachRepo) ListBookings(ctx context.Context, coachID uint64, limit int) ([]model.BookingRecord, error) {
    if limit <= 0 || limit > 500 {
        limit = 500
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, reference, coach_id, seats, created_at
         FROM coach_bookings WHERE coach_id = ?
         ORDER BY created_at DESC, id DESC LIMIT ?`, coachID, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.BookingRecord, 0)
    for rows.Next() {
        var (
            b   model.BookingRecord
            raw []byte
        )
        if err := rows.Scan(&b.ID, &b.Reference, &b.CoachID, &raw, &b.CreatedAt); err != nil {
            return nil, err
        }
        if b.Seats, err = decodeSeats(raw); err != nil {
            return nil, fmt.Errorf("decode seats of booking %d: %w", b.ID, err)
        }
        out = append(out, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ValidateCoach checks the layout invariants: positive sizes and a
// reservation log of distinct seat numbers within [1, TotalSeats].
func ValidateCoach(c model.Coach) error {
    if c.ID == 0 || c.TotalSeats <= 0 || c.RowWidth <= 0 {
        return fmt.Errorf("%w: id, total seats and row width must be positive", ErrInvalidCoach)
    }
    seen := make(map[int]struct{}, len(c.ReservedSeats))
    for _, s := range c.ReservedSeats {
        if s < 1 || s > c.TotalSeats {
            return fmt.Errorf("%w: seat %d outside 1..%d", ErrInvalidCoach, s, c.TotalSeats)
        }
        if _, dup := seen[s]; dup {
            return fmt.Errorf("%w: seat %d reserved twice", ErrInvalidCoach, s)
        }
        seen[s] = struct{}{}
    }
    return nil
}
