package publication

import (
	"regexp"
	"strings"
)

var (
	andWord      = regexp.MustCompile(`(?i)\band\b`)
	andSeparator = regexp.MustCompile(`(?i)\s+and\s+`)
	commaSep     = regexp.MustCompile(`\s*,\s*`)
)

// ParseAuthors turns a raw author field into "First Last" display names.
//
// Supported formats:
//   - "Jane Smith and Bob Lee"     (BibTeX style, split on "and")
//   - "Smith, Jane and Lee, Bob"   (each side is flipped)
//   - "Smith, Jane, Lee, Bob"      (comma pairs re-joined as "Last, First")
//
// With the comma form an odd token count leaves the last token unpaired; it
// is passed through as-is.
func ParseAuthors(raw string) []string {
	var out []string
	for _, tok := range tokenizeAuthors(raw) {
		if name := NormalizeAuthorName(tok); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func tokenizeAuthors(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if andWord.MatchString(s) {
		var out []string
		for _, p := range andSeparator.Split(s, -1) {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}

	parts := commaSep.Split(s, -1)
	out := make([]string, 0, (len(parts)+1)/2)
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			out = append(out, parts[i]+", "+parts[i+1])
		} else {
			out = append(out, parts[i])
		}
	}
	return out
}

// NormalizeAuthorName flips "Last, First" into "First Last" at the first
// comma. Names without a comma are returned trimmed.
func NormalizeAuthorName(name string) string {
	t := strings.TrimSpace(name)
	if t == "" {
		return ""
	}
	idx := strings.Index(t, ",")
	if idx < 0 {
		return t
	}
	last := strings.TrimSpace(t[:idx])
	first := strings.TrimSpace(t[idx+1:])
	if first == "" {
		return last
	}
	return first + " " + last
}
