package paging

import "fmt"

// ErrorKind classifies the errors reported by this package.
type ErrorKind int

const (
	// KindUnknown is the zero value.
	KindUnknown ErrorKind = iota

	// KindInvalidConfiguration reports a manager that cannot be built, for
	// example with a non-positive frame count.
	KindInvalidConfiguration

	// KindInvalidPage reports a negative page number passed to Read or
	// Write.
	KindInvalidPage

	// KindInternalInconsistency reports a broken invariant between the page
	// table, the frame table, the free frames, and the policy bookkeeping.
	KindInternalInconsistency
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidConfiguration:
		return "invalid configuration"
	case KindInvalidPage:
		return "invalid page"
	case KindInternalInconsistency:
		return "internal inconsistency"
	default:
		return "unknown"
	}
}

// Error is the error type returned, or panicked with, by this package.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidConfiguration  = &Error{Kind: KindInvalidConfiguration}
	ErrInvalidPage           = &Error{Kind: KindInvalidPage}
	ErrInternalInconsistency = &Error{Kind: KindInternalInconsistency}
)

func newError(kind ErrorKind, op string, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

func inconsistent(op string, format string, args ...any) *Error {
	return newError(KindInternalInconsistency, op, format, args...)
}
