//go:build logconsole
// +build logconsole

package scenarios

// Built with -tags logconsole: scenario log lines are printed.
const logToConsole = true
