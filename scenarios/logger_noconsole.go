//go:build !logconsole
// +build !logconsole

package scenarios

const logToConsole = false
