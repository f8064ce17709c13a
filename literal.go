package cnext

import "strings"

// tryParseNumericLiteral parses a decimal, 0x/0X hex, or 0b/0B binary
// integer literal, tolerating surrounding whitespace and an optional
// leading minus sign. It returns (value, true) on success, or (0,
// false) when the text isn't a valid integer literal — e.g. it has a
// decimal point, or invalid digits for its base (§8 boundary
// behaviors).
//
// Grounded on the teacher's manual rune-class scanning style (see
// grammar_charset_handler.go) rather than strconv.ParseInt, since the
// spec calls out both "0x"/"0X" and "0b"/"0B" prefixes explicitly and
// wants them rejected outright rather than silently base-guessed.
func tryParseNumericLiteral(text string) (int64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	} else if s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}

	var (
		value int64
		base  int64 = 10
		digits      = s
	)

	switch {
	case len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X"):
		base = 16
		digits = s[2:]
	case len(s) > 2 && (s[:2] == "0b" || s[:2] == "0B"):
		base = 2
		digits = s[2:]
	}

	if digits == "" {
		return 0, false
	}

	for _, r := range digits {
		d, ok := digitValue(r)
		if !ok || int64(d) >= base {
			return 0, false
		}
		value = value*base + int64(d)
	}

	if neg {
		value = -value
	}
	return value, true
}

func digitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}
