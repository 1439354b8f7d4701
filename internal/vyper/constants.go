package vyper

import "strings"

const constantMarker = "constant("

// ExtractConstants returns every module-level constant declaration, one
// per line, of the form NAME: constant(TYPE) = value. The value is kept
// as raw text and never evaluated.
func ExtractConstants(source string, res *Resolver) []Constant {
	var constants []Constant
	for _, line := range strings.Split(source, "\n") {
		if c, ok := parseConstantLine(line, res); ok {
			constants = append(constants, c)
		}
	}
	return constants
}

func parseConstantLine(line string, res *Resolver) (Constant, bool) {
	marker := strings.Index(line, constantMarker)
	if marker < 0 {
		return Constant{}, false
	}

	// Before the marker: an identifier directly followed by a colon.
	head := strings.TrimRight(line[:marker], " \t")
	if !strings.HasSuffix(head, ":") {
		return Constant{}, false
	}
	name := identSuffix(head[:len(head)-1])
	if name == "" {
		return Constant{}, false
	}

	// After the marker: a single-word type, the closing parenthesis, then
	// = value to the end of the line.
	rest := line[marker+len(constantMarker):]
	typeName, p := scanIdent(rest, 0)
	if typeName == "" || p >= len(rest) || rest[p] != ')' {
		return Constant{}, false
	}
	rest = strings.TrimSpace(rest[p+1:])
	if !strings.HasPrefix(rest, "=") {
		return Constant{}, false
	}
	value := strings.TrimSpace(rest[1:])

	typ, issues := res.ResolveScalar(typeName)
	return Constant{
		Name:   name,
		Type:   typ,
		Value:  value,
		Issues: tagIssues(issues, name, ""),
	}, true
}
