package textproc

import (
	"regexp"
	"strings"
)

var (
	nonASCII = regexp.MustCompile(`[^\x20-\x7E]+`)
	spaceRun = regexp.MustCompile(`[ \t]+`)
)

// Normalize strips non-printable and non-ASCII OCR artifacts and collapses
// whitespace runs to single spaces. Line breaks are preserved so field
// extraction can scan line by line; blank lines are dropped. An empty
// input yields an empty string, never an error.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = nonASCII.ReplaceAllString(line, " ")
		line = spaceRun.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}
