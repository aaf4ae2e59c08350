package repair

import (
	"regexp"
	"strings"
)

// Fields whose string values are the usual casualties of truncated
// generations.
var targetedFieldRes = []*regexp.Regexp{
	regexp.MustCompile(`("question"\s*:\s*"[^"]*)(,|\}|\])`),
	regexp.MustCompile(`("text"\s*:\s*"[^"]*)(,|\}|\])`),
	regexp.MustCompile(`("explanation"\s*:\s*"[^"]*)(,|\}|\])`),
}

// TargetedRepair closes unterminated string values of known field names
// by inserting the missing quote before the next delimiter.
func TargetedRepair(s string) string {
	for _, re := range targetedFieldRes {
		s = re.ReplaceAllString(s, `${1}"${2}`)
	}
	return s
}

// GenericRepair walks the document tracking string and nesting state and
// closes whatever truncation left open: an unterminated string is closed
// at a raw newline or at end of input, a dangling comma or colon is
// patched, and unbalanced braces and brackets are closed in order.
func GenericRepair(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
				b.WriteByte(c)
				continue
			}
			switch c {
			case '\\':
				escaped = true
				b.WriteByte(c)
			case '"':
				inString = false
				b.WriteByte(c)
			case '\n':
				// Raw newline inside a string: the string was never
				// closed. Close it before the newline.
				inString = false
				b.WriteByte('"')
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
		b.WriteByte(c)
	}

	out := b.String()
	if escaped {
		out = out[:len(out)-1]
	}
	if inString {
		out += `"`
	}

	trimmed := strings.TrimRight(out, " \t\r\n")
	if strings.HasSuffix(trimmed, ",") {
		out = strings.TrimSuffix(trimmed, ",")
	} else if strings.HasSuffix(trimmed, ":") {
		out = trimmed + " null"
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			out += "}"
		} else {
			out += "]"
		}
	}
	return out
}
