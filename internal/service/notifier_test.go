package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storage-booking/internal/queue"
)

func TestNotifierSendsBothChannels(t *testing.T) {
	sms, mail := &fakeSMS{}, &fakeEmail{}
	n := NewNotifier(&fakeProviders{sms: sms, email: mail})
	ev := queue.BookingCreatedEvent{
		BookingID: "b-1", UnitName: "Covered Parking 10x25", CustomerName: "Jo",
		CustomerEmail: "jo@example.com", CustomerPhone: "+15550100",
		PricingPeriod: "monthly", StartDate: "2025-03-01T00:00:00Z", TotalPrice: 150,
	}
	require.NoError(t, n.HandleBookingCreated(context.Background(), ev))

	require.Len(t, sms.sent, 1)
	assert.Contains(t, sms.sent[0], "+15550100|Hi Jo")
	assert.Contains(t, sms.sent[0], "2025-03-01")
	assert.Contains(t, sms.sent[0], "$150.00")
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "jo@example.com|Your storage booking is confirmed", mail.sent[0])
}

func TestNotifierSkipsUnconfiguredProviders(t *testing.T) {
	n := NewNotifier(&fakeProviders{})
	err := n.HandleBookingCreated(context.Background(), queue.BookingCreatedEvent{
		BookingID: "b-1", CustomerEmail: "jo@example.com", CustomerPhone: "+15550100",
	})
	assert.NoError(t, err)
}
