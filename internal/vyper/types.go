package vyper

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the resolved form of a Vyper type expression. The three variants
// are Scalar, Tuple and DynArray.
type Type interface {
	// String renders the type in source form. Resolving the rendered text
	// again yields an equal Type.
	String() string
	typeNode()
}

// Scalar is an atomic type with no substructure (integer widths, address,
// bool, Bytes, String).
type Scalar struct {
	Name string
}

func (s Scalar) String() string { return s.Name }
func (Scalar) typeNode()        {}

// Tuple is a fixed-arity, ordered grouping of types.
type Tuple struct {
	Elems []Type
}

func (t Tuple) String() string {
	names := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		names[i] = e.String()
	}
	return "(" + strings.Join(names, ", ") + ")"
}
func (Tuple) typeNode() {}

// DynArray is a variable-length array carrying a static upper bound.
type DynArray struct {
	Elem  Scalar
	Bound Bound
}

func (d DynArray) String() string {
	return fmt.Sprintf("DynArray[%s, %s]", d.Elem.Name, d.Bound)
}
func (DynArray) typeNode() {}

// Bound is a DynArray's maximum length: either an integer literal or a
// reference to a module-level constant by name. Assemble fills Const when
// the referenced name matches an extracted constant; unmatched references
// keep the name only, which is permitted for forward or external constants.
type Bound struct {
	Literal int
	Ref     string
	Const   *Constant
}

// IsLiteral reports whether the bound is an integer literal.
func (b Bound) IsLiteral() bool { return b.Ref == "" }

func (b Bound) String() string {
	if b.IsLiteral() {
		return strconv.Itoa(b.Literal)
	}
	return b.Ref
}

// Severity classifies an Issue.
type Severity string

const (
	// SeverityWarning marks a non-conforming type name; the declaration is
	// kept as written.
	SeverityWarning Severity = "warning"
	// SeverityError marks a field whose type expression could not be
	// parsed at all; the field is dropped, its siblings survive.
	SeverityError Severity = "error"
)

// Issue records a problem found while resolving a declaration's type
// expressions. Issues stay attached to the entity that produced them and
// never abort extraction of the rest of the file.
type Issue struct {
	Severity Severity
	Entity   string
	Field    string
	Message  string
}

func (i Issue) String() string {
	where := i.Entity
	if i.Field != "" {
		where = i.Entity + "." + i.Field
	}
	if where == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, where, i.Message)
}

// Param is a named, typed function parameter or struct field.
type Param struct {
	Name string
	Type Type
}

// EventField is a single event field; indexed fields are log-searchable.
type EventField struct {
	Name    string
	Type    Scalar
	Indexed bool
}

// SourceType renders the field's type as written in source, with the
// indexed wrapper restored.
func (f EventField) SourceType() string {
	if f.Indexed {
		return "indexed(" + f.Type.Name + ")"
	}
	return f.Type.Name
}

// Enum is a named set of identifiers, in declaration order.
type Enum struct {
	Name   string
	Values []string
}

// Constant is a module-level constant declaration. Value keeps the raw
// right-hand-side text; it is never evaluated.
type Constant struct {
	Name   string
	Type   Scalar
	Value  string
	Issues []Issue
}

// Variable visibility markers.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Variable is a module-level state variable. Visibility derives from the
// presence of a public(...) wrapper around the declared type.
type Variable struct {
	Name       string
	Type       Scalar
	Visibility string
	Issues     []Issue
}

// Struct is a named, ordered field list.
type Struct struct {
	Name   string
	Fields []Param
	Issues []Issue
}

// Event is a named, ordered event field list.
type Event struct {
	Name   string
	Fields []EventField
	Issues []Issue
}

// Function visibility markers.
const (
	VisibilityExternal = "external"
	VisibilityInternal = "internal"
)

// Function is a single contract function.
type Function struct {
	Name       string
	Params     []Param
	ReturnType Type   // nil when the function returns nothing
	Docstring  string // empty when absent
	Visibility string // external or internal
	Issues     []Issue
}

// Signature renders the function as name(param: type, ...) -> return.
func (f Function) Signature() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + ": " + p.Type.String()
	}
	sig := f.Name + "(" + strings.Join(params, ", ") + ")"
	if f.ReturnType != nil {
		sig += " -> " + f.ReturnType.String()
	}
	return sig
}

// Contract is the extracted model of one source file. It is immutable once
// assembled; re-running extraction on the same content rebuilds an
// identical value.
type Contract struct {
	Name      string
	Path      string // relative to the contracts root
	Docstring string
	Enums     []Enum
	Structs   []Struct
	Events    []Event
	Constants []Constant
	Variables []Variable
	Functions []Function // external functions first, then internal
}

// ExternalFunctions returns the externally callable functions in source
// order.
func (c *Contract) ExternalFunctions() []Function {
	return c.functionsByVisibility(VisibilityExternal)
}

// InternalFunctions returns the internal functions in source order.
func (c *Contract) InternalFunctions() []Function {
	return c.functionsByVisibility(VisibilityInternal)
}

func (c *Contract) functionsByVisibility(visibility string) []Function {
	var fns []Function
	for _, f := range c.Functions {
		if f.Visibility == visibility {
			fns = append(fns, f)
		}
	}
	return fns
}

// Issues returns every issue recorded across the contract's entities, in
// category order.
func (c *Contract) Issues() []Issue {
	var issues []Issue
	for _, s := range c.Structs {
		issues = append(issues, s.Issues...)
	}
	for _, e := range c.Events {
		issues = append(issues, e.Issues...)
	}
	for _, k := range c.Constants {
		issues = append(issues, k.Issues...)
	}
	for _, v := range c.Variables {
		issues = append(issues, v.Issues...)
	}
	for _, f := range c.Functions {
		issues = append(issues, f.Issues...)
	}
	return issues
}

// tagIssues stamps entity and field context onto issues returned by the
// resolver, which only knows the offending expression.
func tagIssues(issues []Issue, entity, field string) []Issue {
	for i := range issues {
		issues[i].Entity = entity
		issues[i].Field = field
	}
	return issues
}
