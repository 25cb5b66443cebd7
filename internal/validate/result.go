package validate

import "fmt"

// ErrorKind classifies validation failures.
type ErrorKind uint8

const (
	MissingRequired ErrorKind = iota
	TypeMismatch
	UnknownField
	ArityMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case MissingRequired:
		return "missing-required"
	case TypeMismatch:
		return "type-mismatch"
	case UnknownField:
		return "unknown-field"
	case ArityMismatch:
		return "arity-mismatch"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error locates a single mismatch. Path is dotted/indexed and always
// resolved relative to the root mint being validated, so locations stay
// stable as structures evolve. The core never renders user-facing text
// beyond kind and path; presentation belongs to the caller.
type Error struct {
	Kind ErrorKind
	Path string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "validate: " + e.Kind.String()
	}
	return fmt.Sprintf("validate: %s at %s", e.Kind, e.Path)
}

// Warning is a non-fatal observation, currently only unknown fields in
// non-strict mode.
type Warning struct {
	Kind ErrorKind
	Path string
}

// Result aggregates a validation pass. In fail-fast mode Errors holds at
// most one entry; in collect-all mode it holds every independent mismatch.
type Result struct {
	OK       bool
	Errors   []Error
	Warnings []Warning
}

// First returns the first error, if any.
func (r *Result) First() (Error, bool) {
	if len(r.Errors) == 0 {
		return Error{}, false
	}
	return r.Errors[0], true
}

func joinPath(base, elem string) string {
	if base == "" {
		return elem
	}
	return base + "." + elem
}

func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}
