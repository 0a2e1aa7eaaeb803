package parser

import "fmt"

// ParseError is raised when the token stream does not match the
// grammar (spec.md §4.1). Offset is the byte offset of the offending
// token; when the stream is exhausted that is the EOF token, whose
// offset is the end of the input.
type ParseError struct {
	Offset  int
	Message string
}

func CreateParseError(offset int, message string) ParseError {
	return ParseError{Offset: offset, Message: message}
}

func (e ParseError) Error() string {
	return fmt.Sprintf("💥 PLC syntax error at offset %d: %s", e.Offset, e.Message)
}
