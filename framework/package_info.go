// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to SOAP.
//
// The general model is:
//
// 1. The test harness talks to a test service, which exposes a root resource for querying
// its status (GET) and for telling it to exit (DELETE), plus whatever service endpoints the
// tests call.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results.
//
// The domain-specific code that knows what is being tested is responsible for building
// requests to the service endpoints and for providing a domain-specific test API on top of
// the test context.
package framework
