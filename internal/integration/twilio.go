package integration

import (
	"context"

	"github.com/sony/gobreaker"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers text messages.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	cb     *gobreaker.CircuitBreaker
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	c := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: c, from: from, cb: newBreaker("twilio")}
}

// SendSMS ignores ctx; the Twilio client has no context-aware call.
func (s *TwilioSender) SendSMS(_ context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)
	_, err := guarded(s.cb, func() (*twilioApi.ApiV2010Message, error) {
		return s.client.Api.CreateMessage(params)
	})
	return err
}
