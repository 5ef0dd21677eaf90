package verify

import (
	"regexp"
	"strings"
	"time"
)

// numberWordReplacements maps spoken number words to digit strings. Order
// matters for the single-pass replacer: teens and tens come before the units
// they contain ("seventeen" before "seven", "seventy" before "seven"), so
// the effective word set is disjoint and replacement order cannot collide.
var numberWordReplacements = []string{
	"eleven", "11",
	"twelve", "12",
	"thirteen", "13",
	"fourteen", "14",
	"fifteen", "15",
	"sixteen", "16",
	"seventeen", "17",
	"eighteen", "18",
	"nineteen", "19",
	"twenty", "20",
	"thirty", "30",
	"forty", "40",
	"fifty", "50",
	"sixty", "60",
	"seventy", "70",
	"eighty", "80",
	"ninety", "90",
	"ten", "10",
	"zero", "0",
	"one", "1",
	"two", "2",
	"three", "3",
	"four", "4",
	"five", "5",
	"six", "6",
	"seven", "7",
	"eight", "8",
	"nine", "9",
}

var numberWordReplacer = strings.NewReplacer(numberWordReplacements...)

// Spoken or written ordinals: "22nd" -> "22".
var ordinalSuffixPattern = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)\b`)

// dateLayouts is tried in order; the first layout that parses wins. The
// fixed order is the documented tie-break for ambiguous two-digit day/month
// pairs <= 12 (day-first slash/dash layouts are tried before month-first).
var dateLayouts = []string{
	"2006-1-2",
	"2006 1 2",
	"2/1/2006",
	"1/2/2006",
	"2-1-2006",
	"1-2-2006",
	"January 2 2006",
	"2 January 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"2 January, 2006",
	"Jan 2, 2006",
	"2 Jan, 2006",
	"2 1 2006",
	"2006/1/2",
}

// NormalizeDate parses free-form spoken or written dates into canonical
// YYYY-MM-DD. Input may mix spoken number words with digits and separators
// ("nineteen seventy five eleven twenty two", "22nd November 1975",
// "22/11/1975"). If no layout matches, the lowercased, trimmed,
// word-substituted input is returned unchanged as an explicit fallback, not a
// failure. Idempotent once the output is canonical.
func NormalizeDate(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = numberWordReplacer.Replace(s)
	s = ordinalSuffixPattern.ReplaceAllString(s, "$1")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}
