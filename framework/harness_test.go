package framework

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarnessReadsServiceStatus(t *testing.T) {
	status := []byte(`{"description":"test","capabilities":["a","b"],"extra":7}`)
	handler := httphelpers.HandlerWithResponse(http.StatusOK, http.Header{"Content-Type": {"application/json"}}, status)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var out bytes.Buffer
		h, err := NewTestHarness(server.URL+"/", time.Second, nil, &out)
		require.NoError(t, err)

		assert.Equal(t, "test", h.TestServiceInfo().Description)
		assert.True(t, h.TestServiceHasCapability("a"))
		assert.False(t, h.TestServiceHasCapability("c"))
		assert.Equal(t, []string{"c"}, h.MissingCapabilities([]string{"a", "c"}))
		assert.Equal(t, server.URL+"/x.svc", h.EndpointURL("/x.svc"))

		var extra struct {
			Extra int `json:"extra"`
		}
		require.NoError(t, h.TestServiceInfo().Decode(&extra))
		assert.Equal(t, 7, extra.Extra)
		assert.Contains(t, out.String(), "Status query returned metadata")
	})
}

func TestHarnessFailsOnErrorStatus(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(http.StatusNotFound), func(server *httptest.Server) {
		_, err := NewTestHarness(server.URL, time.Second, nil, &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestHarnessTimesOutWhenServiceIsDown(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewTestHarness(url, 200*time.Millisecond, nil, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestStopService(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.SequentialHandler(
		httphelpers.HandlerWithStatus(http.StatusOK),
		httphelpers.HandlerWithStatus(http.StatusNoContent),
	))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		h, err := NewTestHarness(server.URL, time.Second, nil, &bytes.Buffer{})
		require.NoError(t, err)
		require.NoError(t, h.StopService())

		statusQuery := <-requestsCh
		assert.Equal(t, http.MethodGet, statusQuery.Request.Method)
		r := <-requestsCh
		assert.Equal(t, http.MethodDelete, r.Request.Method)
		assert.Equal(t, "/", r.Request.URL.Path)
	})
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, Results{Tests: make([]TestResult, 2)})
	assert.Contains(t, buf.String(), "All tests passed")

	buf.Reset()
	failure := TestResult{TestID: TestID{Path: []string{"echo", "basic"}}, Errors: []error{assert.AnError}}
	PrintResults(&buf, Results{Tests: []TestResult{failure}, Failures: []TestResult{failure}})
	assert.Contains(t, buf.String(), "* echo/basic")
	assert.Contains(t, buf.String(), assert.AnError.Error())
}
