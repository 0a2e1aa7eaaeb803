package interpreter

import "fmt"

// RuntimeError is the third error category spec.md §7 describes:
// assignment to an immutable, a type mismatch discovered at a value
// site, division by zero, an undefined name, or a missing main. Offset
// is carried when the offending node has one; it is zero for failures
// that have no single source location (e.g. missing main).
type RuntimeError struct {
	Offset  int
	Message string
}

func newError(offset int, format string, args ...any) RuntimeError {
	return RuntimeError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("⚡ PLC runtime error at offset %d: %s", e.Offset, e.Message)
}
