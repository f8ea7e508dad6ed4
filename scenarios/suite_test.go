package scenarios

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceidion/wcf/framework"
	"github.com/ceidion/wcf/servicedef"
	"github.com/ceidion/wcf/soap"
	"github.com/ceidion/wcf/wcfservice"
)

func runSuiteAgainst(t *testing.T, handler http.Handler, filter framework.Filter) framework.Results {
	var results framework.Results
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		harness, err := framework.NewTestHarness(server.URL, time.Second, nil, &bytes.Buffer{})
		require.NoError(t, err)
		results = RunTestSuite(harness, filter, nil)
	})
	return results
}

func describeFailures(results framework.Results) string {
	var lines []string
	for _, f := range results.Failures {
		for _, err := range f.Errors {
			lines = append(lines, f.TestID.String()+": "+err.Error())
		}
	}
	return strings.Join(lines, "\n")
}

func TestSuitePassesAgainstReferenceService(t *testing.T) {
	results := runSuiteAgainst(t, wcfservice.NewHandler(wcfservice.HandlerOptions{}), nil)
	require.True(t, results.OK(), describeFailures(results))
	assert.Len(t, results.Skipped, 0)

	for _, path := range [][]string{
		{"message contract", "IsWrapped true"},
		{"message contract", "IsWrapped false"},
		{"message contract", "body elements ordered"},
		{"message contract", "customer element value matches"},
		{"echo", "basic http", "basic echo"},
		{"echo", "soap12", "complex echo"},
		{"echo", "soap12", "reply larger than default quota"},
		{"faults", "basic http", "unknown action"},
		{"faults", "soap12", "unknown action"},
	} {
		_, ok := results.Find(path...)
		assert.True(t, ok, "did not run %s", strings.Join(path, "/"))
	}
}

func TestSuiteSkipsLargeRequestsForSmallService(t *testing.T) {
	results := runSuiteAgainst(t, wcfservice.NewHandler(wcfservice.HandlerOptions{MaxRequestSize: 100000}), nil)
	require.True(t, results.OK(), describeFailures(results))

	var skipped []string
	for _, r := range results.Skipped {
		skipped = append(skipped, r.TestID.String())
	}
	assert.ElementsMatch(t, []string{
		"echo/basic http/long string",
		"echo/basic http/reply larger than default quota",
		"echo/soap12/long string",
		"echo/soap12/reply larger than default quota",
	}, skipped)
}

func TestSuiteSkipsMissingCapabilities(t *testing.T) {
	service := wcfservice.NewHandler(wcfservice.HandlerOptions{})
	router := mux.NewRouter()
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(servicedef.ServiceStatus{
			Capabilities: []string{servicedef.CapabilityBasicHTTP},
		})
	}).Methods(http.MethodGet)
	router.NotFoundHandler = service

	results := runSuiteAgainst(t, router, nil)
	require.True(t, results.OK(), describeFailures(results))

	r, ok := results.Find("message contract")
	require.True(t, ok)
	assert.True(t, r.Skipped)
	r, ok = results.Find("echo", "soap12")
	require.True(t, ok)
	assert.True(t, r.Skipped)
	r, ok = results.Find("echo", "basic http", "complex echo")
	require.True(t, ok)
	assert.True(t, r.Skipped)
	_, ok = results.Find("echo", "basic http", "basic echo")
	assert.True(t, ok)
}

func TestSuiteReportsBrokenService(t *testing.T) {
	service := wcfservice.NewHandler(wcfservice.HandlerOptions{Service: reversingService{}})
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^echo$/^basic http$/^basic echo$"))

	results := runSuiteAgainst(t, service, filters.AsFilter)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "echo/basic http/basic echo", results.Failures[0].TestID.String())
	assert.Contains(t, describeFailures(results), "Error: expected response from service: 'Hello' Actual was: 'olleH'")
}

type reversingService struct{ wcfservice.EchoService }

func (reversingService) Echo(_ context.Context, message string) (string, error) {
	runes := []rune(message)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes), nil
}

func TestSetupMessageContractTestsReturnsBodyReader(t *testing.T) {
	httphelpers.WithServer(wcfservice.NewHandler(wcfservice.HandlerOptions{}), func(server *httptest.Server) {
		reader, err := SetupMessageContractTests(server.URL+servicedef.BasicHTTPPath, false)
		require.NoError(t, err)
		assert.True(t, reader.IsStartElementNamed(dateElementName, wcfservice.DateElementNamespace))

		_, err = SetupMessageContractTests("not a url", true)
		assert.Error(t, err)
	})
}

func TestRunBasicEchoTestReportsUnreachableService(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	address := server.URL + servicedef.BasicHTTPPath
	server.Close()

	var errorBuilder ErrorBuilder
	success := RunBasicEchoTest(soap.NewBasicHTTPBinding(), address, "unreachable", &errorBuilder)
	assert.False(t, success)
	assert.Contains(t, errorBuilder.String(),
		"    Error: Unexpected exception was caught while doing the basic echo test for variation...\n'unreachable'\nException: ")
}

func TestRunComplexEchoTestAppliesFactorySettings(t *testing.T) {
	httphelpers.WithServer(wcfservice.NewHandler(wcfservice.HandlerOptions{}), func(server *httptest.Server) {
		var errorBuilder ErrorBuilder
		settingsApplied := false
		success := RunComplexEchoTest(soap.NewWSHTTPBinding(), server.URL+servicedef.Soap12Path, "soap12", &errorBuilder,
			func(f *soap.ChannelFactory) {
				settingsApplied = true
				f.HTTPClient = server.Client()
			})
		assert.True(t, success, errorBuilder.String())
		assert.True(t, settingsApplied)
		assert.Equal(t, 0, errorBuilder.Len())
	})
}
