package vyper

import "fmt"

// Vocabulary is the set of scalar type names the resolver accepts without
// warning.
type Vocabulary map[string]struct{}

// Contains reports whether name is a known scalar type.
func (v Vocabulary) Contains(name string) bool {
	_, ok := v[name]
	return ok
}

// DefaultVocabulary returns the standard Vyper scalar set: int8 through
// int256 and uint8 through uint256 at every 8-bit width, plus address,
// bool, Bytes and String.
func DefaultVocabulary() Vocabulary {
	v := make(Vocabulary, 68)
	for width := 8; width <= 256; width += 8 {
		v[fmt.Sprintf("int%d", width)] = struct{}{}
		v[fmt.Sprintf("uint%d", width)] = struct{}{}
	}
	for _, name := range []string{"address", "bool", "Bytes", "String"} {
		v[name] = struct{}{}
	}
	return v
}
