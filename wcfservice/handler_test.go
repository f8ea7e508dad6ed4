package wcfservice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceidion/wcf/servicedef"
	"github.com/ceidion/wcf/soap"
)

type endpointCase struct {
	path    string
	binding func() *soap.Binding
}

var endpointCases = []endpointCase{
	{servicedef.BasicHTTPPath, soap.NewBasicHTTPBinding},
	{servicedef.Soap12Path, soap.NewWSHTTPBinding},
}

func withClient(t *testing.T, server *httptest.Server, c endpointCase, action func(*Client)) {
	address, err := soap.NewEndpointAddress(server.URL + c.path)
	require.NoError(t, err)
	factory := soap.NewChannelFactory(c.binding(), address)
	defer func() { _ = factory.Close() }()
	client, err := NewClient(factory)
	require.NoError(t, err)
	action(client)
}

func TestEcho(t *testing.T) {
	httphelpers.WithServer(NewHandler(HandlerOptions{}), func(server *httptest.Server) {
		for _, c := range endpointCases {
			withClient(t, server, c, func(client *Client) {
				result, err := client.Echo(context.Background(), "Hello")
				require.NoError(t, err)
				assert.Equal(t, "Hello", result)
			})
		}
	})
}

func TestEchoComplex(t *testing.T) {
	httphelpers.WithServer(NewHandler(HandlerOptions{}), func(server *httptest.Server) {
		for _, c := range endpointCases {
			withClient(t, server, c, func(client *Client) {
				sent := makeComposite()
				result, err := client.EchoComplex(context.Background(), sent)
				require.NoError(t, err)
				assert.True(t, sent.Equal(result), "sent %s, received %s", sent, result)
			})
		}
	})
}

func TestMessageContractRequestReply(t *testing.T) {
	request := RequestBankingData{
		TransactionDate: time.Date(2015, 12, 1, 0, 0, 0, 0, time.UTC),
		Amount:          500,
		CustomerName:    "Michael Jordan",
	}
	httphelpers.WithServer(NewHandler(HandlerOptions{}), func(server *httptest.Server) {
		withClient(t, server, endpointCases[0], func(client *Client) {
			for _, wrapped := range []bool{true, false} {
				var reply *ReplyBankingData
				var err error
				if wrapped {
					reply, err = client.MessageContractRequestReply(context.Background(), request)
				} else {
					reply, err = client.MessageContractRequestReplyNotWrapped(context.Background(), request)
				}
				require.NoError(t, err)
				assert.True(t, request.TransactionDate.Equal(reply.TransactionDate))
				assert.Equal(t, request.Amount, reply.Amount)
				assert.Equal(t, request.CustomerName, reply.CustomerName)
			}
		})
	})
}

type failingService struct{ EchoService }

func (failingService) Echo(context.Context, string) (string, error) {
	return "", soap.NewReceiverFault("echo is broken")
}

func TestServiceErrorReachesClientAsFault(t *testing.T) {
	httphelpers.WithServer(NewHandler(HandlerOptions{Service: failingService{}}), func(server *httptest.Server) {
		withClient(t, server, endpointCases[1], func(client *Client) {
			_, err := client.Echo(context.Background(), "Hello")
			var faultErr *soap.FaultError
			require.True(t, errors.As(err, &faultErr), "expected fault, got %v", err)
			assert.Equal(t, soap.FaultCodeReceiver, faultErr.Fault.Code)
			assert.Equal(t, "echo is broken", faultErr.Fault.Reason)
		})
	})
}

func TestStatusResource(t *testing.T) {
	handler := NewHandler(HandlerOptions{MaxRequestSize: 1000})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status servicedef.ServiceStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, servicedef.AllCapabilities, status.Capabilities)
	assert.Equal(t, 1000, status.MaxRequestSize.IntValue())
}

func TestStopResource(t *testing.T) {
	stopped := make(chan struct{})
	handler := NewHandler(HandlerOptions{OnStop: func() { close(stopped) }})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		assert.Fail(t, "timed out waiting for stop callback")
	}
}

func TestEndpointsOnlyAcceptPost(t *testing.T) {
	handler := NewHandler(HandlerOptions{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, servicedef.BasicHTTPPath, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
