package conversation

import (
	"strings"

	"github.com/jamshidbekman/rivojbot/internal/reply"
)

// KeywordRule answers free text containing any of Keywords.
type KeywordRule struct {
	Name     string
	Keywords []string
	Replies  []reply.Intent
}

func (r KeywordRule) matches(lower string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// KeywordTable is an ordered rule list; the first match wins.
type KeywordTable struct {
	Rules    []KeywordRule
	Fallback []reply.Intent
}

// DefaultKeywords mirrors the canned answers of the bot menu.
func DefaultKeywords() KeywordTable {
	return KeywordTable{
		Rules: []KeywordRule{
			{Name: "prices", Keywords: []string{"narx", "price", "pul"},
				Replies: []reply.Intent{reply.Text(keywordPricesText, reply.KeyboardPrices)}},
			{Name: "offer", Keywords: []string{"taklif", "offer"},
				Replies: []reply.Intent{reply.Text(keywordOfferText, reply.KeyboardMainMenu)}},
			{Name: "help", Keywords: []string{"yordam", "help"},
				Replies: []reply.Intent{reply.Text(keywordHelpText, reply.KeyboardMainMenu)}},
			{Name: "portfolio", Keywords: []string{"portfolio", "ish"},
				Replies: []reply.Intent{reply.Text(keywordPortfolio, reply.KeyboardMainMenu)}},
			{Name: "promo", Keywords: []string{"aksiya", "chegirma", "bonus"},
				Replies: []reply.Intent{reply.Text(keywordPromoText, reply.KeyboardMainMenu)}},
			{Name: "contact", Keywords: []string{"kontakt", "telefon", "raqam"},
				Replies: []reply.Intent{reply.Text(keywordContactText, reply.KeyboardContactRequest)}},
		},
		Fallback: []reply.Intent{reply.Text(notUnderstoodText, reply.KeyboardMainMenu)},
	}
}

// Match returns the name of the winning rule ("fallback" when none) and
// its replies. Matching is case-insensitive substring search.
func (t KeywordTable) Match(text string) (string, []reply.Intent) {
	lower := strings.ToLower(text)
	for _, r := range t.Rules {
		if r.matches(lower) {
			return r.Name, r.Replies
		}
	}
	return "fallback", t.Fallback
}
