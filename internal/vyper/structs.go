package vyper

import "strings"

// ExtractStructs returns every struct declared in the source, in order. A
// struct body is brace-delimited with one name: type field per line.
// Fields whose type expression fails to parse are dropped and recorded as
// error issues; sibling fields survive.
func ExtractStructs(source string, res *Resolver) []Struct {
	var structs []Struct
	pos := 0
	for {
		kw := wordIndex(source, "struct", pos)
		if kw < 0 {
			return structs
		}
		pos = kw + len("struct")

		name, next := scanIdent(source, pos)
		if name == "" {
			continue
		}
		open := skipSpaces(source, next)
		if open >= len(source) || source[open] != '{' {
			continue
		}
		closeIdx := strings.IndexByte(source[open:], '}')
		if closeIdx < 0 {
			return structs
		}
		closeIdx += open

		fields, issues := parseFieldLines(source[open+1:closeIdx], name, res)
		structs = append(structs, Struct{Name: name, Fields: fields, Issues: issues})
		pos = closeIdx + 1
	}
}

// parseFieldLines parses a newline-separated body of name: type
// declarations, resolving each type in full.
func parseFieldLines(body, entity string, res *Resolver) ([]Param, []Issue) {
	var fields []Param
	var issues []Issue
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(strings.TrimSpace(line), ",")
		if line == "" {
			continue
		}
		name, typeExpr, ok := splitNameType(line)
		if !ok || name == "" || typeExpr == "" {
			continue
		}

		typ, typeIssues, err := res.Resolve(typeExpr)
		if err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Entity:   entity,
				Field:    name,
				Message:  err.Error(),
			})
			continue
		}
		issues = append(issues, tagIssues(typeIssues, entity, name)...)
		fields = append(fields, Param{Name: name, Type: typ})
	}
	return fields, issues
}
