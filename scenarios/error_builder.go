package scenarios

import (
	"strings"
)

// ErrorBuilder accumulates error lines during a scenario. A scenario passes if nothing was
// appended.
type ErrorBuilder struct {
	builder strings.Builder
}

// AppendLine formats a line and appends it with a trailing newline.
func (e *ErrorBuilder) AppendLine(format string, args ...interface{}) {
	e.builder.WriteString(formatLogMessage(format, args))
	e.builder.WriteByte('\n')
}

// Len is the number of bytes appended so far.
func (e *ErrorBuilder) Len() int {
	return e.builder.Len()
}

func (e *ErrorBuilder) String() string {
	return e.builder.String()
}
