package framework

import (
	"io"
	"net/http"
	"strings"
	"time"
)

// TestHarness holds what the tests know about the test service: where it is and what it
// says it can do.
type TestHarness struct {
	testServiceBaseURL string
	testServiceInfo    TestServiceInfo
	httpClient         *http.Client
	logger             Logger
}

// NewTestHarness creates a TestHarness instance, and verifies that the test service is
// responding by querying its status resource until it answers or statusQueryTimeout elapses.
// Progress is written to startupOutput.
func NewTestHarness(
	testServiceBaseURL string,
	statusQueryTimeout time.Duration,
	debugLogger Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}

	h := &TestHarness{
		testServiceBaseURL: strings.TrimSuffix(testServiceBaseURL, "/"),
		httpClient:         http.DefaultClient,
		logger:             debugLogger,
	}

	testServiceInfo, err := h.queryTestServiceInfo(statusQueryTimeout, startupOutput)
	if err != nil {
		return nil, err
	}
	h.testServiceInfo = testServiceInfo
	return h, nil
}

func (h *TestHarness) TestServiceInfo() TestServiceInfo {
	return h.testServiceInfo
}

func (h *TestHarness) TestServiceHasCapability(desired string) bool {
	for _, capability := range h.testServiceInfo.Capabilities {
		if capability == desired {
			return true
		}
	}
	return false
}

// MissingCapabilities returns the capabilities in the list that the test service did not
// declare.
func (h *TestHarness) MissingCapabilities(all []string) []string {
	var ret []string
	for _, c := range all {
		if !h.TestServiceHasCapability(c) {
			ret = append(ret, c)
		}
	}
	return ret
}

// EndpointURL returns the absolute URL of a path on the test service.
func (h *TestHarness) EndpointURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return h.testServiceBaseURL + path
}
