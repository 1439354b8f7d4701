package vyper

import "strings"

// scopeState is the two-state machine behind module-level variable
// extraction: it tracks whether a line-oriented scan is currently inside a
// function body.
type scopeState int

const (
	outsideFunction scopeState = iota
	insideFunction
)

// next returns the state after observing one source line. A decorator or
// def line enters a function; a blank line leaves it, modelling the
// blank-line block-termination convention of the source layout.
//
// Known limitation: a blank line in the middle of a function body flips
// the state back to outsideFunction, so locals declared after it can leak
// into module scope.
func (s scopeState) next(line string) scopeState {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return outsideFunction
	case strings.HasPrefix(trimmed, "@"), strings.HasPrefix(trimmed, defKeyword+" "):
		return insideFunction
	default:
		return s
	}
}

// moduleLines returns the non-blank lines that sit outside any function
// body, in order.
func moduleLines(source string) []string {
	var lines []string
	state := outsideFunction
	for _, line := range strings.Split(source, "\n") {
		state = state.next(line)
		if state == outsideFunction && strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
