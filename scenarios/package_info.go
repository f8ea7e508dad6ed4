// Package scenarios contains the SOAP contract tests themselves and their supporting API.
//
// Test harness infrastructure that is not specific to SOAP, such as the ability to query the
// test service and to collect results, is in the lower-level framework package. The SOAP
// client the tests drive is in the soap and wcfservice packages.
package scenarios
