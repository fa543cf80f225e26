package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jamshidbekman/rivojbot/internal/reply"
)

func TestKeywordMatch(t *testing.T) {
	table := DefaultKeywords()
	cases := []struct {
		text string
		rule string
		kb   reply.Keyboard
	}{
		{"Narxi qancha?", "prices", reply.KeyboardPrices},
		{"PRICE list", "prices", reply.KeyboardPrices},
		{"taklif bormi", "offer", reply.KeyboardMainMenu},
		{"yordam kerak", "help", reply.KeyboardMainMenu},
		{"ishlaringiz", "portfolio", reply.KeyboardMainMenu},
		{"chegirma bormi", "promo", reply.KeyboardMainMenu},
		{"telefon raqam", "contact", reply.KeyboardContactRequest},
		{"salom", "fallback", reply.KeyboardMainMenu},
		{"", "fallback", reply.KeyboardMainMenu},
	}
	for _, tc := range cases {
		t.Run(tc.rule+"/"+tc.text, func(t *testing.T) {
			name, intents := table.Match(tc.text)
			assert.Equal(t, tc.rule, name)
			if assert.Len(t, intents, 1) {
				assert.Equal(t, tc.kb, intents[0].Keyboard)
			}
		})
	}
}

func TestKeywordOrderFirstWins(t *testing.T) {
	// "narx" and "taklif" both match; prices is listed first.
	name, _ := DefaultKeywords().Match("taklif narxi")
	assert.Equal(t, "prices", name)
}
