package scenarios

import (
	"fmt"

	"github.com/ceidion/wcf/framework"
	"github.com/ceidion/wcf/servicedef"
	"github.com/ceidion/wcf/soap"
)

// T represents a test or subtest in the SOAP test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, and with some extra features such as debug logging that are
// provided by the lower-level framework package. To make test assertions, use the assert and
// require packages, passing the *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	harness *framework.TestHarness
	status  servicedef.ServiceStatus
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, harness: t.harness, status: t.status})
	})
}

// ID returns the full name of the test.
func (t *T) ID() framework.TestID {
	return t.context.ID()
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// DebugLogger returns the test's debug logger, for passing to channel factories.
func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

// Defer schedules cleanup work for the end of the test.
func (t *T) Defer(cleanup func()) {
	t.context.Defer(cleanup)
}

// RequireCapability skips this test if the test service did not declare that it supports the
// specified capability.
func (t *T) RequireCapability(capability string) {
	if !t.harness.TestServiceHasCapability(capability) {
		t.context.SkipWithReason(fmt.Sprintf("test service does not have capability %q", capability))
	}
}

// EndpointAddress returns the absolute address of a test service endpoint.
func (t *T) EndpointAddress(path string) string {
	return t.harness.EndpointURL(path)
}

// ServiceStatus returns what the test service reported about itself.
func (t *T) ServiceStatus() servicedef.ServiceStatus {
	return t.status
}

// withDebugLogger is a channel factory setting that sends the factory's log output to the
// test's debug log.
func (t *T) withDebugLogger(factory *soap.ChannelFactory) {
	factory.Logger = framework.LoggerWithPrefix(t.DebugLogger(), "channel: ")
}
