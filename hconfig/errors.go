package hconfig

import "fmt"

// ParseError reports a line LoadFromString/LoadFromFile could not place in
// the tree, e.g. an indented line with no ancestor at a smaller indent to
// attach to.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hconfig: parse error at line %d: %s", e.Line, e.Msg)
}

// MutationDuringIterationError is raised by a live NodeIter when the tree's
// structure changed underneath it.
type MutationDuringIterationError struct{}

func (e *MutationDuringIterationError) Error() string {
	return "hconfig: tree mutated during iteration"
}

// NotImplementedError marks an OS or scenario a fixup doesn't (yet) cover.
type NotImplementedError struct {
	What string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("hconfig: not implemented: %s", e.What)
}
