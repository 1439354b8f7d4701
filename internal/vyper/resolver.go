package vyper

import (
	"fmt"
	"strconv"
	"strings"
)

// dynArrayPrefix marks a dynamic-array type expression.
const dynArrayPrefix = "DynArray["

// Resolver parses type expressions into Types, validating scalar names
// against its vocabulary.
type Resolver struct {
	vocab Vocabulary
}

// NewResolver creates a resolver for the given scalar vocabulary.
func NewResolver(vocab Vocabulary) *Resolver {
	return &Resolver{vocab: vocab}
}

// Resolve parses a type expression.
//
// Recognized shapes:
//   - a vocabulary member resolves to a Scalar with no issues;
//   - DynArray[T, N] resolves to a DynArray whose bound is an integer
//     literal when N parses as one, else a reference to the constant
//     named N (matched later during assembly);
//   - a parenthesized, comma-separated list resolves to a Tuple, split on
//     top-level commas only;
//   - anything else resolves to a Scalar carrying a warning issue when the
//     name is outside the vocabulary. Unknown names are never rejected so
//     the extractor stays forward-compatible with newer type grammar.
//
// The one hard error is unbalanced bracket syntax: such an expression
// cannot be rendered at all, so the field that contains it fails.
func (r *Resolver) Resolve(expr string) (Type, []Issue, error) {
	expr = strings.TrimSpace(expr)
	if !balanced(expr) {
		return nil, nil, fmt.Errorf("unbalanced brackets in type expression %q", expr)
	}
	if r.vocab.Contains(expr) {
		return Scalar{Name: expr}, nil, nil
	}
	if strings.HasPrefix(expr, dynArrayPrefix) {
		return r.resolveDynArray(expr)
	}
	if strings.HasPrefix(expr, "(") && findMatching(expr, 0) == len(expr)-1 {
		return r.resolveTuple(expr)
	}
	return r.scalarWithCheck(expr)
}

// ResolveScalar wraps name as a Scalar, flagging names outside the
// vocabulary. Declarations that only ever carry scalar types in source
// form (constants, event fields, state variables) use this instead of
// full resolution.
func (r *Resolver) ResolveScalar(name string) (Scalar, []Issue) {
	if r.vocab.Contains(name) {
		return Scalar{Name: name}, nil
	}
	return Scalar{Name: name}, []Issue{warnUnknownType(name)}
}

func (r *Resolver) scalarWithCheck(name string) (Type, []Issue, error) {
	s, issues := r.ResolveScalar(name)
	return s, issues, nil
}

func (r *Resolver) resolveDynArray(expr string) (Type, []Issue, error) {
	if findMatching(expr, len(dynArrayPrefix)-1) != len(expr)-1 {
		return nil, nil, fmt.Errorf("malformed dynamic array %q", expr)
	}
	parts := splitTopLevel(expr[len(dynArrayPrefix) : len(expr)-1])
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("malformed dynamic array %q: want element type and bound", expr)
	}

	elemName := strings.TrimSpace(parts[0])
	var issues []Issue
	if !r.vocab.Contains(elemName) {
		issues = append(issues, warnUnknownType(elemName))
	}
	elem := Scalar{Name: elemName}

	boundText := strings.TrimSpace(parts[1])
	if n, err := strconv.Atoi(boundText); err == nil {
		return DynArray{Elem: elem, Bound: Bound{Literal: n}}, issues, nil
	}
	// The bound names a module-level constant. Only the name is needed
	// here; the assembler matches it against the extracted constants.
	return DynArray{Elem: elem, Bound: Bound{Ref: boundText}}, issues, nil
}

func (r *Resolver) resolveTuple(expr string) (Type, []Issue, error) {
	inner := strings.TrimSpace(expr[1 : len(expr)-1])
	if inner == "" {
		return Tuple{}, nil, nil
	}

	parts := splitTopLevel(inner)
	elems := make([]Type, 0, len(parts))
	var issues []Issue
	for _, part := range parts {
		elem, elemIssues, err := r.Resolve(part)
		if err != nil {
			return nil, nil, err
		}
		elems = append(elems, elem)
		issues = append(issues, elemIssues...)
	}
	return Tuple{Elems: elems}, issues, nil
}

func warnUnknownType(name string) Issue {
	return Issue{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("%s is not a valid Vyper type", name),
	}
}
