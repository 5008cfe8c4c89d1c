package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuffixAndNoun(t *testing.T) {
	cases := []struct {
		name       string
		typ        Type
		customUnit string
		suffix     string
		noun       string
	}{
		{"absent defaults to per day", "", "", "/day", "days"},
		{"unknown defaults to per day", "per-week", "", "/day", "days"},
		{"per day", PerDay, "", "/day", "days"},
		{"per piece", PerPiece, "", "/piece", "pcs"},
		{"per hour", PerHour, "", "/hour", "hours"},
		{"per event", PerEvent, "", "/event", "events"},
		{"manual uses custom unit", Manual, "album", "album", "album"},
		{"manual without unit", Manual, "  ", "/unit", "units"},
		{"custom unit ignored outside manual", PerHour, "album", "/hour", "hours"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.suffix, Suffix(tc.typ, tc.customUnit))
			assert.Equal(t, tc.noun, Noun(tc.typ, tc.customUnit))
		})
	}
}

func TestTypes(t *testing.T) {
	opts := Types()
	assert.Len(t, opts, 5)
	assert.Equal(t, Option{Value: PerDay, Label: "Per Day", Unit: "/day"}, opts[0])
	assert.Equal(t, "Manual", opts[4].Label)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1500", FormatAmount(1500))
	assert.Equal(t, "99.5", FormatAmount(99.5))
	assert.Equal(t, "0", FormatAmount(0))
}
