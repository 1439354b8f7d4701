package vyper

import "strings"

// ExtractEvents returns every event declared in the source, in order. The
// field list is delimited by the parenthesis matching the one that opens
// it, so an indexed(...) wrapper inside the body never ends the list
// early. Fields are one name: type per line; the indexed wrapper is
// stripped and recorded as a boolean.
func ExtractEvents(source string, res *Resolver) []Event {
	var events []Event
	pos := 0
	for {
		kw := wordIndex(source, "event", pos)
		if kw < 0 {
			return events
		}
		pos = kw + len("event")

		name, next := scanIdent(source, pos)
		if name == "" {
			continue
		}
		open := skipSpaces(source, next)
		if open >= len(source) || source[open] != '(' {
			continue
		}
		closeIdx := findMatching(source, open)
		if closeIdx < 0 {
			return events
		}

		fields, issues := parseEventFields(source[open+1:closeIdx], name, res)
		events = append(events, Event{Name: name, Fields: fields, Issues: issues})
		pos = closeIdx + 1
	}
}

func parseEventFields(body, entity string, res *Resolver) ([]EventField, []Issue) {
	var fields []EventField
	var issues []Issue
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(strings.TrimSpace(line), ",")
		if line == "" {
			continue
		}
		name, typeText, ok := splitNameType(line)
		if !ok || name == "" || typeText == "" {
			continue
		}

		inner, indexed := stripWrapper(typeText, "indexed")
		typ, typeIssues := res.ResolveScalar(inner)
		issues = append(issues, tagIssues(typeIssues, entity, name)...)
		fields = append(fields, EventField{Name: name, Type: typ, Indexed: indexed})
	}
	return fields, issues
}
