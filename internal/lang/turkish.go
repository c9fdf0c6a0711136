// Package lang provides Turkish-aware text normalization and autocomplete
// query expansion.
package lang

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Plain strings.ToLower maps both I and İ to the wrong letters for Turkish
// (I should lower to ı, İ to i). The x/text caser applies the
// locale-specific mapping.
var turkishLower = cases.Lower(language.Turkish)

var wsRe = regexp.MustCompile(`\s+`)

var asciiFolds = strings.NewReplacer(
	"ş", "s", "Ş", "S",
	"ç", "c", "Ç", "C",
	"ö", "o", "Ö", "O",
	"ü", "u", "Ü", "U",
	"ğ", "g", "Ğ", "G",
	"ı", "i",
)

const turkishLetters = "şçöüğı"

// Normalize lowercases text with Turkish casing rules, collapses runs of
// whitespace to single spaces and trims the result. Normalized text is the
// deduplication key throughout the system; the raw surface form is what
// gets stored.
func Normalize(text string) string {
	text = turkishLower.String(text)
	return strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
}

// ASCIIFold replaces Turkish-specific letters with their ASCII equivalents
// (ş→s, ç→c, ö→o, ü→u, ğ→g, ı→i).
func ASCIIFold(text string) string {
	return asciiFolds.Replace(text)
}

// QueryVariants expands a seed keyword into the autocomplete query set:
// the normalized keyword, its ASCII transliteration when different,
// "keyword x" for a–z when expandAZ is set, and "keyword x" for each
// Turkish-specific letter when expandTurkish is set. The result is
// deduplicated preserving first-occurrence order.
func QueryVariants(keyword string, expandAZ, expandTurkish bool) []string {
	base := Normalize(keyword)
	variants := []string{base}

	if ascii := ASCIIFold(base); ascii != base {
		variants = append(variants, ascii)
	}

	if expandAZ {
		for ch := 'a'; ch <= 'z'; ch++ {
			variants = append(variants, base+" "+string(ch))
		}
	}

	if expandTurkish {
		for _, ch := range turkishLetters {
			variants = append(variants, base+" "+string(ch))
		}
	}

	return Dedupe(variants)
}

// Dedupe removes duplicate strings preserving first-occurrence order.
func Dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}

// DetectLanguage returns "tr" when text contains a Turkish-specific letter,
// otherwise "unknown".
func DetectLanguage(text string) string {
	if strings.ContainsAny(text, turkishLetters+"ŞÇÖÜĞİ") {
		return "tr"
	}
	return "unknown"
}
