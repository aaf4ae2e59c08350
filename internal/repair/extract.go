package repair

import (
	"regexp"
	"strings"
)

var (
	fenceRe        = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	leadingFenceRe = regexp.MustCompile("(?m)^```(?:json)?\\s*")
	trailingFence  = regexp.MustCompile("(?m)\\s*```$")
)

// Extract isolates the JSON document inside a raw completion. A fenced
// code block wins; otherwise the first balanced object (or array) span
// is taken, on the heuristic that models wrap valid JSON in commentary.
func Extract(raw string, wantArray bool) string {
	s := strings.TrimSpace(raw)

	if m := fenceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}

	// Stray fence markers without a full block.
	s = leadingFenceRe.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	opener, closer := "{", "}"
	if wantArray {
		opener, closer = "[", "]"
	}
	if strings.HasPrefix(s, opener) && strings.HasSuffix(s, closer) {
		return s
	}

	start := strings.Index(s, opener)
	end := strings.LastIndex(s, closer)
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
