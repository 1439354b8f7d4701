package vyper

import "strings"

// Low-level text scanning shared by the extractors. These replace the ad
// hoc patterns of a regex-based recognizer with explicit rules that track
// bracket and parenthesis depth, so nested type syntax never mis-splits.

// isIdentByte reports whether c can appear in an identifier.
func isIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// isIdentifier reports whether s is a well-formed identifier.
func isIdentifier(s string) bool {
	if s == "" || ('0' <= s[0] && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

// identSuffix returns the trailing identifier run of s, or "".
func identSuffix(s string) string {
	i := len(s)
	for i > 0 && isIdentByte(s[i-1]) {
		i--
	}
	return s[i:]
}

// wordIndex returns the offset of the first stand-alone occurrence of word
// in text at or after start, or -1. Stand-alone means the occurrence is
// not embedded in a longer identifier.
func wordIndex(text, word string, start int) int {
	for start <= len(text) {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return -1
		}
		i += start
		end := i + len(word)
		if (i == 0 || !isIdentByte(text[i-1])) && (end >= len(text) || !isIdentByte(text[end])) {
			return i
		}
		start = end
	}
	return -1
}

// skipSpaces returns the offset of the first byte at or after pos that is
// not a space, tab, carriage return or newline.
func skipSpaces(text string, pos int) int {
	for pos < len(text) {
		switch text[pos] {
		case ' ', '\t', '\r', '\n':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// scanIdent reads an identifier after skipping whitespace at pos. It
// returns the identifier (empty when the next token is not one) and the
// offset just past it.
func scanIdent(text string, pos int) (string, int) {
	pos = skipSpaces(text, pos)
	start := pos
	for pos < len(text) && isIdentByte(text[pos]) {
		pos++
	}
	return text[start:pos], pos
}

// findMatching returns the offset of the delimiter closing the opening
// delimiter at openIdx, or -1 when the text ends first. Nesting of the
// same delimiter pair is respected.
func findMatching(text string, openIdx int) int {
	open := text[openIdx]
	var close byte
	switch open {
	case '(':
		close = ')'
	case '[':
		close = ']'
	case '{':
		close = '}'
	default:
		return -1
	}
	depth := 0
	for i := openIdx; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// balanced reports whether every bracket and parenthesis in s closes in
// order. Unbalanced type expressions are the one hard extraction failure.
func balanced(s string) bool {
	brackets, parens := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			brackets++
		case ']':
			brackets--
		case '(':
			parens++
		case ')':
			parens--
		}
		if brackets < 0 || parens < 0 {
			return false
		}
	}
	return brackets == 0 && parens == 0
}

// splitTopLevel splits s on commas that are not nested inside brackets or
// parentheses. A naive comma split would cut DynArray[uint256, 3] in half.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

// splitNameType splits a "name: type" declaration on its first colon.
func splitNameType(s string) (name, typeExpr string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
}

// stripWrapper unwraps marker(inner) and reports whether the wrapper was
// present.
func stripWrapper(s, marker string) (string, bool) {
	if strings.HasPrefix(s, marker+"(") && strings.HasSuffix(s, ")") {
		return strings.TrimSpace(s[len(marker)+1 : len(s)-1]), true
	}
	return s, false
}
