package scenarios

import (
	"fmt"
	"io"
	"os"
)

// consoleOutput is where scenario log lines go when console logging is compiled in.
var consoleOutput io.Writer = os.Stdout

// Log writes a message with a category prefix, such as "Warning: ...".
func Log(category, message string) {
	if logToConsole {
		fmt.Fprintf(consoleOutput, "%s: %s\n", category, message)
	}
}

// LogInformation writes an informational message. If args are given, message is a format
// string.
func LogInformation(message string, args ...interface{}) {
	if logToConsole {
		fmt.Fprintln(consoleOutput, formatLogMessage(message, args))
	}
}

// LogWarning writes a message in the "Warning" category.
func LogWarning(message string, args ...interface{}) {
	Log("Warning", formatLogMessage(message, args))
}

// LogError writes a message in the "Error" category.
func LogError(message string, args ...interface{}) {
	Log("Error", formatLogMessage(message, args))
}

func formatLogMessage(message string, args []interface{}) string {
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}
