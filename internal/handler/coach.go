package handler

import (
    "context"
    "errors"
    "fmt"
    "math/rand/v2"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/coach-seat-reservation/internal/booking"
    "github.com/iliyamo/coach-seat-reservation/internal/config"
    "github.com/iliyamo/coach-seat-reservation/internal/middleware"
    "github.com/iliyamo/coach-seat-reservation/internal/model"
    "github.com/iliyamo/coach-seat-reservation/internal/queue"
    "github.com/iliyamo/coach-seat-reservation/internal/repository"
)

// CoachStore is the persistence the coach endpoints need.  *repository.CoachRepo
// implements it.
type CoachStore interface {
    Get(ctx context.Context, id uint64) (*model.Coach, error)
    Book(ctx context.Context, id uint64, seats int) (*repository.BookingOutcome, error)
    Replace(ctx context.Context, c model.Coach) (*model.Coach, error)
    ListBookings(ctx context.Context, coachID uint64, limit int) ([]model.BookingRecord, error)
}

// EventPublisher delivers booking events.  Failures never fail a booking.
type EventPublisher interface {
    PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// CoachHandler serves the coach endpoints for the coach configured in Coach.
type CoachHandler struct {
    Store   CoachStore
    Events  EventPublisher // optional
    Coach   config.CoachConfig
    NewRand func() *rand.Rand
}

// NewCoachHandler wires a handler; store must be non-nil.
func NewCoachHandler(store CoachStore, events EventPublisher, coach config.CoachConfig) *CoachHandler {
    if store == nil {
        panic("nil store passed to NewCoachHandler")
    }
    return &CoachHandler{
        Store:  store,
        Events: events,
        Coach:  coach,
        NewRand: func() *rand.Rand {
            return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
        },
    }
}

// seatRow is one row of the seat map as sent to clients.
type seatRow struct {
    Label string      `json:"label"`
    Seats booking.Row `json:"seats"`
}

type bookReq struct {
    Seats int `json:"seats"`
}

const dbTimeout = 5 * time.Second

// GetCoach handles GET /v1/coach.
func (h *CoachHandler) GetCoach(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()
    coach, err := h.Store.Get(ctx, h.Coach.ID)
    if err != nil {
        return h.storeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"status": "success", "coach": coach})
}

// GetSeatMap handles GET /v1/coach/seats.  It returns the derived row view
// the allocator works on, front row first.
func (h *CoachHandler) GetSeatMap(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()
    coach, err := h.Store.Get(ctx, h.Coach.ID)
    if err != nil {
        return h.storeError(c, err)
    }
    m := booking.BuildSeatMap(*coach)
    rows := make([]seatRow, len(m))
    for i, r := range m {
        rows[i] = seatRow{Label: booking.RowLabel(i), Seats: r}
    }
    return c.JSON(http.StatusOK, echo.Map{
        "status":    "success",
        "rows":      rows,
        "available": coach.AvailableCount(),
    })
}

// Book handles POST /v1/book with body {"seats": n}.  A request that cannot
// be placed is a business outcome: 200 with status "failed" and no seats.
func (h *CoachHandler) Book(c echo.Context) error {
    var req bookReq
    if err := c.Bind(&req); err != nil || req.Seats <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"status": "failed", "message": "bad request"})
    }
    if req.Seats > h.Coach.MaxSeatsPerReq {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "status":  "failed",
            "message": fmt.Sprintf("at most %d seats can be booked at a time", h.Coach.MaxSeatsPerReq),
        })
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()
    out, err := h.Store.Book(ctx, h.Coach.ID, req.Seats)
    switch {
    case errors.Is(err, repository.ErrInsufficientSeats):
        return c.JSON(http.StatusOK, echo.Map{
            "status":      "failed",
            "message":     fmt.Sprintf("%d seats are not available", req.Seats),
            "seatNumbers": []int{},
        })
    case errors.Is(err, repository.ErrNoSelection):
        return c.JSON(http.StatusOK, echo.Map{
            "status":      "failed",
            "message":     "unable to allocate seats",
            "seatNumbers": []int{},
        })
    case err != nil:
        return h.storeError(c, err)
    }

    h.publish(c, out)
    return c.JSON(http.StatusOK, echo.Map{
        "status":      "success",
        "reference":   out.Booking.Reference,
        "strategy":    out.Strategy,
        "seatNumbers": out.Booking.Seats,
        "coach":       out.Coach,
    })
}

func (h *CoachHandler) publish(c echo.Context, out *repository.BookingOutcome) {
    if h.Events == nil {
        return
    }
    ev := queue.BookingConfirmedEvent{
        Reference:      out.Booking.Reference,
        CoachID:        out.Booking.CoachID,
        Seats:          out.Booking.Seats,
        Strategy:       string(out.Strategy),
        AvailableAfter: out.Coach.AvailableCount(),
        ConfirmedAt:    out.Booking.CreatedAt.UTC().Format(time.RFC3339),
    }
    // Detached from the request so a client disconnect does not drop the event.
    ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
    defer cancel()
    if err := h.Events.PublishBookingConfirmed(ctx, ev); err != nil {
        c.Logger().Warnf("publish booking %s: %v", ev.Reference, err)
    }
}

// Reset handles POST /v1/reset: every seat becomes available again.
func (h *CoachHandler) Reset(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()
    empty := booking.NewEmptyCoach(h.Coach.ID, h.Coach.TotalSeats, h.Coach.RowWidth)
    coach, err := h.Store.Replace(ctx, empty)
    if err != nil {
        return h.storeError(c, err)
    }
    c.Logger().Infof("coach %d reset by %s", h.Coach.ID, middleware.Operator(c))
    return c.JSON(http.StatusOK, echo.Map{"status": "success", "coach": coach})
}

// RandomFill handles POST /v1/randomfill: the reservation log is replaced by
// a random set of seats.  ?ratio= overrides the configured share.
func (h *CoachHandler) RandomFill(c echo.Context) error {
    ratio := h.Coach.FillRatio
    if s := c.QueryParam("ratio"); s != "" {
        r, err := strconv.ParseFloat(s, 64)
        if err != nil || r < 0 || r > 1 {
            return c.JSON(http.StatusBadRequest, echo.Map{"status": "failed", "message": "ratio must be between 0 and 1"})
        }
        ratio = r
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()
    current, err := h.Store.Get(ctx, h.Coach.ID)
    if err != nil {
        return h.storeError(c, err)
    }
    coach, err := h.Store.Replace(ctx, booking.RandomFill(*current, h.NewRand(), ratio))
    if err != nil {
        return h.storeError(c, err)
    }
    c.Logger().Infof("coach %d filled to %.2f by %s", h.Coach.ID, ratio, middleware.Operator(c))
    return c.JSON(http.StatusOK, echo.Map{"status": "success", "coach": coach})
}

// ListBookings handles GET /v1/bookings?limit=n.
func (h *CoachHandler) ListBookings(c echo.Context) error {
    limit := 50
    if s := c.QueryParam("limit"); s != "" {
        n, err := strconv.Atoi(s)
        if err != nil || n <= 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"status": "failed", "message": "invalid limit"})
        }
        limit = n
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()
    items, err := h.Store.ListBookings(ctx, h.Coach.ID, limit)
    if err != nil {
        return h.storeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"status": "success", "items": items})
}

// storeError maps repository failures onto HTTP responses.
func (h *CoachHandler) storeError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrCoachNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"status": "failed", "message": "Unable to get coach"})
    case errors.Is(err, repository.ErrInvalidCoach):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"status": "failed", "message": err.Error()})
    }
    c.Logger().Errorf("coach %d: %v", h.Coach.ID, err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"status": "failed", "message": "database error"})
}
