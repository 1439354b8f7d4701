package vyper

import (
	"path/filepath"
	"strings"
)

// SourceExtension is the file extension of Vyper contract sources.
const SourceExtension = ".vy"

// Assembler turns one source file's text into a Contract.
type Assembler interface {
	Assemble(source, relPath string) *Contract
}

type assembler struct {
	res *Resolver
}

// NewAssembler creates an Assembler whose resolver validates scalar names
// against vocab.
func NewAssembler(vocab Vocabulary) Assembler {
	return &assembler{res: NewResolver(vocab)}
}

// Assemble runs every extractor over the source and packages the results.
// The contract is named after the file basename minus the .vy extension
// and keeps relPath for the renderer. Extraction is a pure function of
// the source text: an empty file yields a valid empty contract, and
// malformed declarations surface as issues on their entities, never as a
// failure of the whole file.
func (a *assembler) Assemble(source, relPath string) *Contract {
	c := &Contract{
		Name:      strings.TrimSuffix(filepath.Base(relPath), SourceExtension),
		Path:      relPath,
		Docstring: ExtractDocstring(source),
		Enums:     ExtractEnums(source),
		Structs:   ExtractStructs(source, a.res),
		Events:    ExtractEvents(source, a.res),
		Constants: ExtractConstants(source, a.res),
		Variables: ExtractVariables(source, a.res),
		Functions: ExtractFunctions(source, a.res),
	}
	resolveBounds(c)
	return c
}

// resolveBounds matches DynArray constant-reference bounds against the
// contract's extracted constants. References that match no constant are
// left as names; forward or externally defined constants are permitted.
func resolveBounds(c *Contract) {
	if len(c.Constants) == 0 {
		return
	}
	byName := make(map[string]*Constant, len(c.Constants))
	for i := range c.Constants {
		byName[c.Constants[i].Name] = &c.Constants[i]
	}

	for i := range c.Structs {
		fields := c.Structs[i].Fields
		for j := range fields {
			fields[j].Type = resolveTypeBounds(fields[j].Type, byName)
		}
	}
	for i := range c.Functions {
		fn := &c.Functions[i]
		for j := range fn.Params {
			fn.Params[j].Type = resolveTypeBounds(fn.Params[j].Type, byName)
		}
		if fn.ReturnType != nil {
			fn.ReturnType = resolveTypeBounds(fn.ReturnType, byName)
		}
	}
}

func resolveTypeBounds(t Type, constants map[string]*Constant) Type {
	switch tt := t.(type) {
	case DynArray:
		if !tt.Bound.IsLiteral() {
			if k, ok := constants[tt.Bound.Ref]; ok {
				tt.Bound.Const = k
			}
		}
		return tt
	case Tuple:
		for i, elem := range tt.Elems {
			tt.Elems[i] = resolveTypeBounds(elem, constants)
		}
		return tt
	default:
		return t
	}
}
