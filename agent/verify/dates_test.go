package verify

import "testing"

func TestNormalizeDateCanonicalPassthrough(t *testing.T) {
	t.Parallel()

	got := NormalizeDate("1975-11-22")
	if got != "1975-11-22" {
		t.Fatalf("NormalizeDate() = %q, want %q", got, "1975-11-22")
	}
}

func TestNormalizeDateFormats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"iso", "1975-11-22", "1975-11-22"},
		{"iso slash", "1975/11/22", "1975-11-22"},
		{"space separated", "1975 11 22", "1975-11-22"},
		{"day first slash", "22/11/1975", "1975-11-22"},
		{"day first dash", "22-11-1975", "1975-11-22"},
		{"ordinal month name", "22nd November 1975", "1975-11-22"},
		{"month name first", "November 22 1975", "1975-11-22"},
		{"month name comma", "November 22, 1975", "1975-11-22"},
		{"short month name", "22 Nov 1975", "1975-11-22"},
		{"mixed case with padding", "  22 NOVEMBER 1975  ", "1975-11-22"},
		{"first ordinal", "1st March 1980", "1980-03-01"},
		{"third ordinal", "3rd April 2001", "2001-04-03"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeDate(tc.input); got != tc.want {
				t.Fatalf("NormalizeDate(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

// Two-digit day/month pairs <= 12 are inherently ambiguous; the fixed layout
// order resolves them day-first.
func TestNormalizeDateDayFirstTieBreak(t *testing.T) {
	t.Parallel()

	if got := NormalizeDate("01/02/1975"); got != "1975-02-01" {
		t.Fatalf("NormalizeDate() = %q, want %q", got, "1975-02-01")
	}
}

func TestNormalizeDateSpokenWords(t *testing.T) {
	t.Parallel()

	// Word substitution alone does not yield a parseable template here; the
	// substituted text comes back unchanged as the documented fallback.
	got := NormalizeDate("nineteen seventy five eleven twenty two")
	if got != "19 70 5 11 20 2" {
		t.Fatalf("NormalizeDate() = %q, want substituted fallback %q", got, "19 70 5 11 20 2")
	}
}

func TestNormalizeDateTeenWordsWinOverUnits(t *testing.T) {
	t.Parallel()

	if got := NormalizeDate("seventeen"); got != "17" {
		t.Fatalf("NormalizeDate(seventeen) = %q, want 17", got)
	}
	if got := NormalizeDate("seventy"); got != "70" {
		t.Fatalf("NormalizeDate(seventy) = %q, want 70", got)
	}
}

func TestNormalizeDateUnparseableFallback(t *testing.T) {
	t.Parallel()

	got := NormalizeDate("  Sometime Last Year ")
	if got != "sometime last year" {
		t.Fatalf("NormalizeDate() = %q, want lowercased trimmed input", got)
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"22nd November 1975", "22/11/1975", "1975-11-22", "not a date"}
	for _, in := range inputs {
		once := NormalizeDate(in)
		twice := NormalizeDate(once)
		if once != twice {
			t.Fatalf("NormalizeDate not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
