package vyper

import "strings"

const tripleQuote = `"""`

// ExtractDocstring returns the contract-level docstring: the body of the
// first triple-quoted block that opens at the start of a line. Indented
// openers belong to function bodies and are skipped. Returns "" when the
// source has no such block.
func ExtractDocstring(source string) string {
	pos := 0
	for {
		i := strings.Index(source[pos:], tripleQuote)
		if i < 0 {
			return ""
		}
		i += pos
		if i == 0 || source[i-1] == '\n' {
			body := source[i+len(tripleQuote):]
			end := strings.Index(body, tripleQuote)
			if end < 0 {
				return ""
			}
			return strings.TrimSpace(body[:end])
		}
		pos = i + len(tripleQuote)
	}
}
