package vyper

import "strings"

// ExtractEnums returns every enum declared in the source, in order. An
// enum body is brace-delimited with one value per non-blank line.
func ExtractEnums(source string) []Enum {
	var enums []Enum
	pos := 0
	for {
		kw := wordIndex(source, "enum", pos)
		if kw < 0 {
			return enums
		}
		pos = kw + len("enum")

		name, next := scanIdent(source, pos)
		if name == "" {
			continue
		}
		open := skipSpaces(source, next)
		if open >= len(source) || source[open] != '{' {
			continue
		}
		// The body runs to the first closing brace; enum bodies do not
		// nest.
		closeIdx := strings.IndexByte(source[open:], '}')
		if closeIdx < 0 {
			return enums
		}
		closeIdx += open

		enums = append(enums, Enum{
			Name:   name,
			Values: parseEnumValues(source[open+1 : closeIdx]),
		})
		pos = closeIdx + 1
	}
}

func parseEnumValues(body string) []string {
	var values []string
	for _, line := range strings.Split(body, "\n") {
		if v := strings.TrimSpace(line); v != "" {
			values = append(values, v)
		}
	}
	return values
}
