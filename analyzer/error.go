package analyzer

import "fmt"

// AnalysisError is the single error category spec.md §4.2 and §7
// specify for the analyzer: every typing, scoping, or structural
// violation surfaces as one of these, offset optional (zero when the
// violation has no single offending token, e.g. a missing main).
type AnalysisError struct {
	Offset  int
	Message string
}

func newError(offset int, format string, args ...any) AnalysisError {
	return AnalysisError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func (e AnalysisError) Error() string {
	return fmt.Sprintf("🔍 PLC analysis error at offset %d: %s", e.Offset, e.Message)
}
