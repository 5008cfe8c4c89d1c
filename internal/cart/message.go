package cart

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/weddingmoments/studio-backend/internal/pricing"
)

const callToAction = "Please confirm availability and provide further details.\n\nThank you!"

// Contact is where booking requests are sent.
type Contact struct {
	StudioName     string
	Email          string
	WhatsAppNumber string
	CurrencySymbol string
	// CurrencyCode follows the grand total, e.g. "INR". Empty omits it.
	CurrencyCode   string
}

// Handoff is everything needed to pass a booking request to the studio.
type Handoff struct {
	Message      string  `json:"message"`
	EmailSubject string  `json:"emailSubject"`
	EmailBody    string  `json:"emailBody"`
	WhatsAppURL  string  `json:"whatsappUrl"`
	MailtoURL    string  `json:"mailtoUrl"`
	Total        float64 `json:"total"`
}

// ComposeBookingMessage renders the booking request text. Bold markers are
// '*' so chat clients render them; EmailBody strips them.
func ComposeBookingMessage(items []Item, studioName, currency, currencyCode string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 *Booking Request - %s*\n\n", studioName)

	for i, item := range items {
		fmt.Fprintf(&b, "📸 *Service %d: %s*\n", i+1, item.ServiceName)
		for _, sub := range item.SubServices {
			fmt.Fprintf(&b, "   • %s\n", sub.Name)
			fmt.Fprintf(&b, "     Quantity: %d %s | Price: %s%s%s | Subtotal: %s%s\n",
				sub.Days, sub.Noun(),
				currency, pricing.FormatAmount(sub.PricePerDay), priceSuffix(sub),
				currency, pricing.FormatAmount(sub.Subtotal()),
			)
		}
		fmt.Fprintf(&b, "   Service Total: %s%s\n\n", currency, pricing.FormatAmount(item.TotalPrice))
	}

	grand := currency + pricing.FormatAmount(total(items))
	if currencyCode != "" {
		grand += " " + currencyCode
	}
	fmt.Fprintf(&b, "💰 *Grand Total: %s*\n\n", grand)
	b.WriteString(callToAction)
	return b.String()
}

// priceSuffix makes sure a free-text manual unit still reads as "per unit".
func priceSuffix(sub SelectedSubService) string {
	suffix := sub.Suffix()
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	return suffix
}

// EmailBody is the booking message without bold markers.
func EmailBody(message string) string {
	return strings.ReplaceAll(message, "*", "")
}

func EmailSubject(studioName string) string {
	return "Booking Request - " + studioName
}

// WhatsAppLink builds the wa.me deep link for number, which must hold digits
// only, country code first.
func WhatsAppLink(number, message string) string {
	return "https://wa.me/" + number + "?text=" + encodeComponent(message)
}

func MailtoLink(email, subject, body string) string {
	return "mailto:" + email + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}

// encodeComponent percent-encodes s for a query value, spaces as %20 so mail
// clients do not show '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Handoff renders the cart for both channels. Both receive the same text
// except that the email body has bold markers removed.
func (c *Cart) Handoff(contact Contact) Handoff {
	items := c.Items()
	msg := ComposeBookingMessage(items, contact.StudioName, contact.CurrencySymbol, contact.CurrencyCode)
	subject := EmailSubject(contact.StudioName)
	body := EmailBody(msg)

	return Handoff{
		Message:      msg,
		EmailSubject: subject,
		EmailBody:    body,
		WhatsAppURL:  WhatsAppLink(contact.WhatsAppNumber, msg),
		MailtoURL:    MailtoLink(contact.Email, subject, body),
		Total:        total(items),
	}
}
