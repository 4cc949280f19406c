package series

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes (NFKD) and strips combining marks, so "Füllstand"
// folds to "Fullstand" before the ASCII filter below.
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// NormalizeColumn reduces a source header to a stable matching key:
// diacritics stripped, non-ASCII dropped, lowercased, "%" spelled out as
// "pct", runs of whitespace collapsed to single underscores.
func NormalizeColumn(name string) string {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		}
	}

	key := strings.ToLower(b.String())
	key = strings.ReplaceAll(key, "%", "pct")
	return strings.Join(strings.Fields(key), "_")
}

// Column matchers are evaluated per column, top to bottom; the first column
// whose normalized key satisfies any matcher in the list wins. The upstream
// report has renamed its headers more than once, so the lists cover every
// variant seen so far.
var fillLevelMatchers = []func(key string) bool{
	func(key string) bool { return strings.HasPrefix(key, "fullstand") },
	func(key string) bool { return strings.HasPrefix(key, "fuellstand") },
	func(key string) bool { return strings.Contains(key, "fill") },
}

var dailyChangeMatchers = []func(key string) bool{
	func(key string) bool {
		return strings.Contains(key, "vortag") &&
			(strings.Contains(key, "veranderung") || strings.Contains(key, "anderung"))
	},
	func(key string) bool {
		return strings.Contains(key, "previous") && strings.Contains(key, "change")
	},
}

// findColumn returns the index of the first header (in input order) whose
// normalized key satisfies one of the matchers, or -1.
func findColumn(headers []string, matchers []func(string) bool) int {
	for i, h := range headers {
		key := NormalizeColumn(h)
		for _, match := range matchers {
			if match(key) {
				return i
			}
		}
	}
	return -1
}
