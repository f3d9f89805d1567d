package queue

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

type recordingHandler struct {
    got []BookingCreatedEvent
    err error
}

func (h *recordingHandler) HandleBookingCreated(_ context.Context, ev BookingCreatedEvent) error {
    h.got = append(h.got, ev)
    return h.err
}

func TestHandleMessageWritesAuditAndCallsHandler(t *testing.T) {
    var buf bytes.Buffer
    h := &recordingHandler{}
    c := NewConsumer("", "booking.created", h, &buf)

    ev := BookingCreatedEvent{
        BookingID:      "b-1",
        PhysicalUnitID: "p-1",
        UnitName:       "Enclosed Parking 12x30",
        CustomerName:   "Jane Doe",
        CustomerEmail:  "jane@example.com",
        PricingPeriod:  "monthly",
        TotalPrice:     200,
        CreatedAt:      "2025-01-01T00:00:00Z",
    }
    body, err := json.Marshal(ev)
    require.NoError(t, err)

    require.NoError(t, c.handleMessage(context.Background(), body))
    require.Len(t, h.got, 1)
    assert.Equal(t, ev, h.got[0])
    assert.Contains(t, buf.String(), "booking_id=b-1")
    assert.Contains(t, buf.String(), `unit="Enclosed Parking 12x30"`)
    assert.Contains(t, buf.String(), "total=200.00")
}

func TestHandleMessageHandlerErrorStillAcks(t *testing.T) {
    h := &recordingHandler{err: errors.New("sms down")}
    c := NewConsumer("", "q", h, nil)
    err := c.handleMessage(context.Background(), []byte(`{"booking_id":"b-2"}`))
    assert.NoError(t, err)
    assert.Len(t, h.got, 1)
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
    c := NewConsumer("", "q", &recordingHandler{}, nil)
    assert.Error(t, c.handleMessage(context.Background(), []byte("not json")))
    assert.Error(t, c.handleMessage(context.Background(), []byte(`{}`)))
}

func TestNewPublisherWithoutURL(t *testing.T) {
    assert.Nil(t, NewPublisher("", "q"))
}

func TestSleepStopsOnCancel(t *testing.T) {
    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    assert.False(t, sleep(ctx, time.Minute))
}
