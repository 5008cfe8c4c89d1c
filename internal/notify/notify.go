// Package notify tells the studio that a visitor handed off a booking.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/weddingmoments/studio-backend/config"
	"github.com/weddingmoments/studio-backend/internal/logging"
)

// SendTimeout bounds a single Twilio API call. CreateMessage takes no
// context, so the limit lives on the HTTP client.
const SendTimeout = 10 * time.Second

type Notifier interface {
	NotifyBooking(ctx context.Context, message string) error
}

// NopNotifier is used when no messaging provider is configured.
type NopNotifier struct{}

func (NopNotifier) NotifyBooking(context.Context, string) error { return nil }

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier sends the booking text to the studio's WhatsApp number.
type TwilioNotifier struct {
	api  messageCreator
	from string
	to   string
}

func NewTwilioNotifier(cfg config.TwilioConfig, studioNumber string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	client.SetTimeout(SendTimeout)
	return &TwilioNotifier{
		api:  client.Api,
		from: cfg.WhatsAppNumber,
		to:   studioNumber,
	}
}

// New picks the Twilio notifier when credentials are present.
func New(cfg config.TwilioConfig, studioNumber string) Notifier {
	if !cfg.Enabled() {
		return NopNotifier{}
	}
	return NewTwilioNotifier(cfg, studioNumber)
}

func (n *TwilioNotifier) NotifyBooking(ctx context.Context, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsAppAddress(n.to))
	params.SetFrom(whatsAppAddress(n.from))
	params.SetBody(message)

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send whatsapp notification: %w", err)
	}

	logger := logging.NewLogger(ctx)
	if resp != nil && resp.Sid != nil {
		logger.Infof("notify_booking", "message sent sid=%s", *resp.Sid)
	} else {
		logger.Info("notify_booking", "message sent, but no SID returned")
	}
	return nil
}

// whatsAppAddress accepts bare digits or +E.164 and returns Twilio's
// whatsapp:+<number> form.
func whatsAppAddress(number string) string {
	number = strings.TrimPrefix(strings.TrimSpace(number), "whatsapp:")
	if !strings.HasPrefix(number, "+") {
		number = "+" + number
	}
	return "whatsapp:" + number
}
