// Package servicedef contains the definitions shared by the test harness and the test service:
// endpoint paths, capability names and the status resource.
package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	// BasicHTTPPath is the SOAP 1.1 endpoint, relative to the service base URL.
	BasicHTTPPath = "/BasicHttp.svc/Basic"
	// Soap12Path is the SOAP 1.2 with WS-Addressing 1.0 endpoint.
	Soap12Path = "/HttpSoap12.svc/HttpSoap12"
)

const (
	CapabilityBasicHTTP       = "basic-http"
	CapabilitySoap12          = "soap12"
	CapabilityComplexEcho     = "complex-echo"
	CapabilityMessageContract = "message-contract"
)

// AllCapabilities lists every capability a test service may declare.
var AllCapabilities = []string{
	CapabilityBasicHTTP,
	CapabilitySoap12,
	CapabilityComplexEcho,
	CapabilityMessageContract,
}

// ServiceStatus is the JSON document the test service returns from a GET on its base URL.
type ServiceStatus struct {
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`

	// MaxRequestSize is the largest request body the service accepts, if it has a limit.
	MaxRequestSize ldvalue.OptionalInt `json:"maxRequestSize,omitempty"`
}
