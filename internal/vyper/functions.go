package vyper

import "strings"

const (
	defKeyword        = "def"
	arrowToken        = "->"
	decoratorExternal = "@" + VisibilityExternal
	decoratorInternal = "@" + VisibilityInternal
)

// ExtractFunctions returns the contract's functions partitioned by
// visibility: every external function first, then every internal one,
// each group in source order. This ordering is part of the package's
// contract and is relied on by the renderer.
//
// A function is recognized by an @external or @internal decorator,
// optionally followed by further decorator lines, then a def signature
// with an optional -> return annotation and an optional docstring as the
// first token of the body.
func ExtractFunctions(source string, res *Resolver) []Function {
	var external, internal []Function
	pos := 0
	for {
		fn, next, ok := scanFunction(source, pos, res)
		if !ok {
			break
		}
		pos = next
		if fn.Visibility == VisibilityExternal {
			external = append(external, fn)
		} else {
			internal = append(internal, fn)
		}
	}
	return append(external, internal...)
}

// scanFunction finds the next function at or after pos. It returns the
// function, the offset to resume scanning at, and whether one was found.
func scanFunction(source string, pos int, res *Resolver) (Function, int, bool) {
	for {
		marker, visibility := nextVisibilityMarker(source, pos)
		if marker < 0 {
			return Function{}, 0, false
		}
		pos = marker + len("@") + len(visibility)

		fn, next, ok := scanSignature(source, pos, visibility, res)
		if !ok {
			// Not a function definition after all; resume after the
			// marker so overlapping candidates are never re-scanned.
			continue
		}
		return fn, next, true
	}
}

// nextVisibilityMarker returns the offset of the next @external or
// @internal decorator at or after pos and its visibility name.
func nextVisibilityMarker(source string, pos int) (int, string) {
	for pos < len(source) {
		at := strings.IndexByte(source[pos:], '@')
		if at < 0 {
			return -1, ""
		}
		at += pos
		word, _ := scanIdent(source, at+1)
		switch word {
		case VisibilityExternal, VisibilityInternal:
			return at, word
		}
		pos = at + 1
	}
	return -1, ""
}

func scanSignature(source string, pos int, visibility string, res *Resolver) (Function, int, bool) {
	// Skip any further decorator lines between the visibility marker and
	// the def keyword.
	for {
		pos = skipSpaces(source, pos)
		if pos >= len(source) || source[pos] != '@' {
			break
		}
		nl := strings.IndexByte(source[pos:], '\n')
		if nl < 0 {
			return Function{}, 0, false
		}
		pos += nl
	}

	if wordIndex(source[pos:], defKeyword, 0) != 0 {
		return Function{}, 0, false
	}
	pos += len(defKeyword)

	// Name runs to the opening parenthesis.
	open := strings.IndexByte(source[pos:], '(')
	if open < 0 {
		return Function{}, 0, false
	}
	open += pos
	name := strings.TrimSpace(source[pos:open])
	if name == "" {
		return Function{}, 0, false
	}

	closeIdx := findMatching(source, open)
	if closeIdx < 0 {
		return Function{}, 0, false
	}
	params, issues := parseParams(source[open+1:closeIdx], name, res)

	// After the parameter list: an optional -> return annotation, then
	// the colon that opens the body.
	pos = skipSpaces(source, closeIdx+1)
	var returnType Type
	if strings.HasPrefix(source[pos:], arrowToken) {
		colon := strings.IndexByte(source[pos:], ':')
		if colon < 0 {
			return Function{}, 0, false
		}
		colon += pos
		retExpr := strings.TrimSpace(source[pos+len(arrowToken) : colon])
		typ, retIssues, err := res.Resolve(retExpr)
		if err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Entity:   name,
				Field:    "return",
				Message:  err.Error(),
			})
		} else {
			returnType = typ
			issues = append(issues, tagIssues(retIssues, name, "return")...)
		}
		pos = colon
	}
	if pos >= len(source) || source[pos] != ':' {
		return Function{}, 0, false
	}
	pos++

	docstring, pos := scanDocstring(source, pos)

	return Function{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Docstring:  docstring,
		Visibility: visibility,
		Issues:     issues,
	}, pos, true
}

// scanDocstring captures a docstring when a triple-quoted block is the
// first token after the signature colon. Body code before the quotes
// means the function has no docstring.
func scanDocstring(source string, pos int) (string, int) {
	start := skipSpaces(source, pos)
	if !strings.HasPrefix(source[start:], tripleQuote) {
		return "", pos
	}
	bodyStart := start + len(tripleQuote)
	end := strings.Index(source[bodyStart:], tripleQuote)
	if end < 0 {
		return "", pos
	}
	end += bodyStart
	return strings.TrimSpace(source[bodyStart:end]), end + len(tripleQuote)
}

// parseParams parses a comma-separated parameter list, splitting only on
// top-level commas so bracketed types keep their commas. A default value
// after the type is not part of the documented signature and is dropped.
func parseParams(paramsText, entity string, res *Resolver) ([]Param, []Issue) {
	if strings.TrimSpace(paramsText) == "" {
		return nil, nil
	}

	var params []Param
	var issues []Issue
	for _, part := range splitTopLevel(paramsText) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, typeExpr, ok := splitNameType(part)
		if !ok || name == "" || typeExpr == "" {
			continue
		}
		typeExpr = trimDefault(typeExpr)

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
		params = append(params, Param{Name: name, Type: typ})
	}
	return params, issues
}

// trimDefault cuts a = default suffix at bracket depth zero.
func trimDefault(typeExpr string) string {
	depth := 0
	for i := 0; i < len(typeExpr); i++ {
		switch typeExpr[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case '=':
			if depth == 0 {
				return strings.TrimSpace(typeExpr[:i])
			}
		}
	}
	return typeExpr
}
