package service

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/iliyamo/storage-booking/internal/integration"
	"github.com/iliyamo/storage-booking/internal/queue"
	"github.com/iliyamo/storage-booking/internal/utils"
)

// Notifier sends booking confirmations by SMS and e-mail.  A provider
// without credentials is skipped; it is not an error.
type Notifier struct {
	providers integration.Providers
}

func NewNotifier(providers integration.Providers) *Notifier {
	return &Notifier{providers: providers}
}

var _ queue.BookingHandler = (*Notifier)(nil)

// HandleBookingCreated sends both messages and returns the joined
// delivery errors.
func (n *Notifier) HandleBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error {
	var errs []error
	if err := n.sms(ctx, ev); err != nil {
		errs = append(errs, err)
	}
	if err := n.email(ctx, ev); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (n *Notifier) sms(ctx context.Context, ev queue.BookingCreatedEvent) error {
	if ev.CustomerPhone == "" {
		return nil
	}
	sender, err := n.providers.SMS()
	if err != nil {
		utils.Logger.WithField("booking_id", ev.BookingID).Infof("sms skipped: %v", err)
		return nil
	}
	return sender.SendSMS(ctx, ev.CustomerPhone, smsBody(ev))
}

func (n *Notifier) email(ctx context.Context, ev queue.BookingCreatedEvent) error {
	if ev.CustomerEmail == "" {
		return nil
	}
	sender, err := n.providers.Email()
	if err != nil {
		utils.Logger.WithField("booking_id", ev.BookingID).Infof("email skipped: %v", err)
		return nil
	}
	subject := "Your storage booking is confirmed"
	return sender.SendEmail(ctx, ev.CustomerEmail, subject, emailText(ev), emailHTML(ev))
}

func smsBody(ev queue.BookingCreatedEvent) string {
	return fmt.Sprintf("Hi %s, your booking for %s is confirmed. Start date %s, total $%.2f (%s). Ref %s",
		ev.CustomerName, ev.UnitName, dateOnly(ev.StartDate), ev.TotalPrice, ev.PricingPeriod, ev.BookingID)
}

func emailText(ev queue.BookingCreatedEvent) string {
	return fmt.Sprintf("Hi %s,\n\nThank you for booking %s.\n\nStart date: %s\nPricing: %s\nTotal: $%.2f\nBooking reference: %s\n",
		ev.CustomerName, ev.UnitName, dateOnly(ev.StartDate), ev.PricingPeriod, ev.TotalPrice, ev.BookingID)
}

func emailHTML(ev queue.BookingCreatedEvent) string {
	return fmt.Sprintf(`<p>Hi %s,</p><p>Thank you for booking <strong>%s</strong>.</p>
<ul><li>Start date: %s</li><li>Pricing: %s</li><li>Total: $%.2f</li><li>Booking reference: %s</li></ul>`,
		html.EscapeString(ev.CustomerName), html.EscapeString(ev.UnitName), dateOnly(ev.StartDate),
		ev.PricingPeriod, ev.TotalPrice, ev.BookingID)
}

func dateOnly(rfc3339 string) string {
	if len(rfc3339) >= 10 {
		return rfc3339[:10]
	}
	return rfc3339
}
