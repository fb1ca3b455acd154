package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "strings"
    "testing"
)

func TestHandleMessage_AppendsLine(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "logs")
    c := &Consumer{LogDir: dir}
    ev := BookingConfirmedEvent{
        Reference:      "3f1c",
        CoachID:        1,
        Seats:          []int{8, 9, 10},
        Strategy:       "same_row",
        AvailableAfter: 77,
        ConfirmedAt:    "2026-10-19T10:00:00Z",
    }
    body, _ := json.Marshal(ev)
    for i := 0; i < 2; i++ {
        if err := c.handleMessage(body); err != nil {
            t.Fatalf("handleMessage: %v", err)
        }
    }
    data, err := os.ReadFile(filepath.Join(dir, "booking.log"))
    if err != nil {
        t.Fatalf("read log: %v", err)
    }
    lines := strings.Split(strings.TrimSpace(string(data)), "\n")
    if len(lines) != 2 {
        t.Fatalf("expected 2 lines, got %d: %q", len(lines), data)
    }
    want := "[2026-10-19T10:00:00Z] Booking confirmed | reference=3f1c | coach_id=1 | strategy=same_row | seats=[8,9,10] | available_after=77"
    if lines[0] != want {
        t.Fatalf("got  %q\nwant %q", lines[0], want)
    }
}

func TestHandleMessage_RejectsBadPayload(t *testing.T) {
    c := &Consumer{LogDir: t.TempDir()}
    if err := c.handleMessage([]byte("{")); err == nil {
        t.Fatal("expected unmarshal error")
    }
    if err := c.handleMessage([]byte(`{"reference":"x","seats":[]}`)); err == nil {
        t.Fatal("expected error for event without seats")
    }
}

func TestBrokerURL(t *testing.T) {
    t.Setenv("RABBITMQ_URL", "")
    t.Setenv("AMQP_URL", "amqp://a/")
    if got := BrokerURL(); got != "amqp://a/" {
        t.Fatalf("got %q", got)
    }
    t.Setenv("RABBITMQ_URL", "amqp://r/")
    if got := BrokerURL(); got != "amqp://r/" {
        t.Fatalf("got %q", got)
    }
}
