package pricing

import (
	"strconv"
	"strings"
)

// Type is the quantity denomination a sub-service is billed in.
type Type string

const (
	PerDay   Type = "per-day"
	PerPiece Type = "per-piece"
	PerHour  Type = "per-hour"
	PerEvent Type = "per-event"
	Manual   Type = "manual"
)

// Fallbacks for a manual type saved without a custom unit.
const (
	defaultManualNoun   = "units"
	defaultManualSuffix = "/unit"
)

// Option is one entry of the admin pricing-type selector.
type Option struct {
	Value Type   `json:"value"`
	Label string `json:"label"`
	Unit  string `json:"unit"`
}

// Types returns the selectable pricing types in display order.
func Types() []Option {
	types := []Type{PerDay, PerPiece, PerHour, PerEvent, Manual}
	out := make([]Option, 0, len(types))
	for _, t := range types {
		out = append(out, Option{Value: t, Label: Label(t), Unit: Suffix(t, "")})
	}
	return out
}

// Normalize maps absent or unknown values to PerDay.
func Normalize(t Type) Type {
	switch t {
	case PerDay, PerPiece, PerHour, PerEvent, Manual:
		return t
	default:
		return PerDay
	}
}

// Suffix is the short tag shown after a price, e.g. "₹500/day".
func Suffix(t Type, customUnit string) string {
	switch Normalize(t) {
	case PerPiece:
		return "/piece"
	case PerHour:
		return "/hour"
	case PerEvent:
		return "/event"
	case Manual:
		if u := strings.TrimSpace(customUnit); u != "" {
			return u
		}
		return defaultManualSuffix
	default:
		return "/day"
	}
}

// Noun is the plural quantity label used in booking messages.
func Noun(t Type, customUnit string) string {
	switch Normalize(t) {
	case PerPiece:
		return "pcs"
	case PerHour:
		return "hours"
	case PerEvent:
		return "events"
	case Manual:
		if u := strings.TrimSpace(customUnit); u != "" {
			return u
		}
		return defaultManualNoun
	default:
		return "days"
	}
}

func Label(t Type) string {
	switch Normalize(t) {
	case PerPiece:
		return "Per Piece"
	case PerHour:
		return "Per Hour"
	case PerEvent:
		return "Per Event"
	case Manual:
		return "Manual"
	default:
		return "Per Day"
	}
}

// FormatAmount renders a price the way the storefront prints numbers:
// integers without a decimal point, fractions without trailing zeros.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
