package publication

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	keywordSep    = regexp.MustCompile(`[,;]+`)
)

// FirstNonEmpty returns the first non-empty value, or "".
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CollapseSpace replaces every whitespace run with a single space.
func CollapseSpace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// NormalizeTitle lowercases a title and collapses its whitespace.
func NormalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(CollapseSpace(s)))
}

// NormalizeType canonicalizes an item type. Blank types become "misc";
// unrecognized types are kept as-is (lowercased).
func NormalizeType(t string) string {
	t = strings.ToLower(strings.TrimSpace(CollapseSpace(t)))
	if t == "" {
		return "misc"
	}
	return t
}

// SplitKeywords splits a keyword field on commas and semicolons.
func SplitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range keywordSep.Split(s, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// typeLabels maps canonical item types to their display labels.
var typeLabels = map[string]string{
	"inproceedings": "Conference Pub",
	"article":       "Journal Article",
	"mastersthesis": "M.Eng. Thesis",
	"phdthesis":     "PhD Thesis",
	"sciencethesis": "SM Thesis",
	"techreport":    "Tech Report",
	"book":          "Book",
	"incollection":  "Book Chapter",
	"misc":          "Other",
}

// TypeLabel returns the human-readable label for an item type. Unknown
// types are shown with their first letter capitalized.
func TypeLabel(t string) string {
	t = NormalizeType(t)
	if label, ok := typeLabels[t]; ok {
		return label
	}
	r, size := utf8.DecodeRuneInString(t)
	return string(unicode.ToUpper(r)) + t[size:]
}

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// MonthNumber maps a month name (by its first three letters) to 1-12.
// Unrecognized or empty months map to 0.
func MonthNumber(s string) int {
	if len(s) < 3 {
		return 0
	}
	return monthNumbers[strings.ToLower(s[:3])]
}
