package vyper

import "strings"

// ExtractVariables returns the module-level state variable declarations,
// in order. Only lines outside function bodies are considered (see
// scopeState); a declaration wrapped in public(...) is recorded as public,
// everything else as private.
func ExtractVariables(source string, res *Resolver) []Variable {
	var vars []Variable
	for _, line := range moduleLines(source) {
		if v, ok := parseVariableLine(line, res); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

func parseVariableLine(line string, res *Resolver) (Variable, bool) {
	// State declarations sit at column zero; indented name: type lines
	// belong to struct or event bodies.
	if line == "" || !isIdentByte(line[0]) {
		return Variable{}, false
	}
	name, typeText, ok := splitNameType(line)
	if !ok || typeText == "" || !isIdentifier(name) {
		return Variable{}, false
	}
	// Constants carry their own marker and assignments are not
	// declarations; both are someone else's line.
	if strings.Contains(typeText, constantMarker) || strings.Contains(typeText, "=") {
		return Variable{}, false
	}

	visibility := VisibilityPrivate
	if inner, wrapped := stripWrapper(typeText, VisibilityPublic); wrapped {
		visibility = VisibilityPublic
		typeText = inner
	}

	typ, issues := res.ResolveScalar(typeText)
	return Variable{
		Name:       name,
		Type:       typ,
		Visibility: visibility,
		Issues:     tagIssues(issues, name, ""),
	}, true
}
