package invoice

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CurrencyWordsSuffix ends every amount-in-words line.
const CurrencyWordsSuffix = "Rupees Only."

var (
	smallNumbers = [...]string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tensNames = [...]string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	// Short scale, ordered from largest to smallest.
	scales = []struct {
		value uint64
		name  string
	}{
		{1_000_000_000_000_000_000, "quintillion"},
		{1_000_000_000_000_000, "quadrillion"},
		{1_000_000_000_000, "trillion"},
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
	}
)

// TotalToWords spells the integer part of total in title-cased English words
// followed by the currency phrase, e.g. 1500 -> "One Thousand Five Hundred
// Rupees Only.". Negative and NaN inputs render as zero; fractions are dropped.
func TotalToWords(total float64) string {
	n := wholeUnits(total)
	return titleCase(cardinal(n)) + " " + CurrencyWordsSuffix
}

func wholeUnits(total float64) uint64 {
	if math.IsNaN(total) || total <= 0 {
		return 0
	}
	f := math.Floor(total)
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return uint64(f)
}

func cardinal(n uint64) string {
	if n == 0 {
		return smallNumbers[0]
	}

	var parts []string
	for _, s := range scales {
		if n >= s.value {
			parts = append(parts, belowThousand(n/s.value), s.name)
			n %= s.value
		}
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

// belowThousand spells 1..999.
func belowThousand(n uint64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, smallNumbers[n/100], "hundred")
		n %= 100
	}
	switch {
	case n == 0:
	case n < 20:
		parts = append(parts, smallNumbers[n])
	case n%10 == 0:
		parts = append(parts, tensNames[n/10])
	default:
		parts = append(parts, tensNames[n/10]+"-"+smallNumbers[n%10])
	}
	return strings.Join(parts, " ")
}

// titleCase upper-cases the first letter of each space separated word and
// leaves the rest untouched, so "twenty-one" becomes "Twenty-one".
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
