package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var footnoteRegex = regexp.MustCompile(`\[[^\]]*\]`)

// StripFootnotes removes every bracketed footnote marker (e.g. "[a]",
// "[12]", "[note 3]") from the string.
func StripFootnotes(s string) string {
	return footnoteRegex.ReplaceAllString(s, "")
}

// CoerceFloat turns a raw table cell into a numeric value. Footnote
// markers and thousands separators are stripped before parsing, the
// remaining text is parsed as a locale-free decimal. The second return
// is false when the cell does not hold a number.
func CoerceFloat(s string) (float64, bool) {
	s = StripFootnotes(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
