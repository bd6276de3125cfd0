package notify

import (
	"context"
	"strings"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender delivers WhatsApp messages through Twilio's messaging API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender returns nil when credentials are absent, which the
// dispatcher reports as a skipped send. Running without Twilio is the normal
// local/dev setup.
func NewTwilioSender(accountSID, authToken, fromNumber string) *TwilioSender {
	if accountSID == "" || authToken == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, from: strings.TrimPrefix(fromNumber, "whatsapp:")}
}

// Send pushes one message. Twilio's client carries its own HTTP timeout; a
// timed-out call surfaces here as an error. The twilio-go API does not take
// a context, so ctx is unused beyond an early-cancel check.
func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &twilioapi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + s.from)
	params.SetTo("whatsapp:" + to)
	params.SetBody(body)
	_, err := s.client.Api.CreateMessage(params)
	return err
}
