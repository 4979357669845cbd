package manifest

import "fmt"

// ParseError reports a malformed manifest document. Line and Column are
// one-based; both are zero when the position is unknown.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("manifest: parse error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("manifest: parse error: %s", e.Message)
}
