package scenarios

import (
	"context"
	"errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceidion/wcf/servicedef"
	"github.com/ceidion/wcf/soap"
	"github.com/ceidion/wcf/wcfservice"
)

const longStringLength = 256 * 1024

type echoEndpoint struct {
	name       string
	capability string
	path       string
	binding    func() *soap.Binding
}

var echoEndpoints = []echoEndpoint{
	{"basic http", servicedef.CapabilityBasicHTTP, servicedef.BasicHTTPPath, soap.NewBasicHTTPBinding},
	{"soap12", servicedef.CapabilitySoap12, servicedef.Soap12Path, soap.NewWSHTTPBinding},
}

// DoEchoTests runs the string and composite echo round trips against each endpoint.
func DoEchoTests(t *T) {
	for _, e := range echoEndpoints {
		endpoint := e
		t.Run(endpoint.name, func(t *T) {
			t.RequireCapability(endpoint.capability)
			address := t.EndpointAddress(endpoint.path)

			t.Run("basic echo", func(t *T) {
				var errorBuilder ErrorBuilder
				success := RunBasicEchoTest(endpoint.binding(), address, endpoint.binding().String(), &errorBuilder, t.withDebugLogger)
				assert.True(t, success && errorBuilder.Len() == 0, errorBuilder.String())
			})

			t.Run("basic echo with factory settings", func(t *T) {
				var errorBuilder ErrorBuilder
				success := RunBasicEchoTest(endpoint.binding(), address, "send timeout set by factory settings", &errorBuilder,
					t.withDebugLogger,
					func(factory *soap.ChannelFactory) {
						factory.Binding.SendTimeout = TestTimeout
					})
				assert.True(t, success && errorBuilder.Len() == 0, errorBuilder.String())
			})

			t.Run("complex echo", func(t *T) {
				t.RequireCapability(servicedef.CapabilityComplexEcho)
				var errorBuilder ErrorBuilder
				success := RunComplexEchoTest(endpoint.binding(), address, endpoint.binding().String(), &errorBuilder, t.withDebugLogger)
				assert.True(t, success && errorBuilder.Len() == 0, errorBuilder.String())
			})

			t.Run("long string", func(t *T) {
				requireRequestSize(t, longStringLength)
				binding := endpoint.binding()
				binding.MaxReceivedMessageSize = 2 * longStringLength
				message := GenerateStringValue(longStringLength)

				client, ctx := newEchoClient(t, binding, address)
				result, err := client.Echo(ctx, message)
				require.NoError(t, err)
				assert.True(t, result == message, "echoed string did not match (length %d, expected %d)", len(result), len(message))
			})

			t.Run("reply larger than default quota", func(t *T) {
				requireRequestSize(t, longStringLength)
				client, ctx := newEchoClient(t, endpoint.binding(), address)
				_, err := client.Echo(ctx, GenerateStringValue(longStringLength))
				require.Error(t, err)
				assert.True(t, errors.Is(err, soap.ErrQuotaExceeded), "expected quota error, got: %s", err)
			})
		})
	}
}

// requireRequestSize skips the test if the service will not accept a request carrying a
// string of the given length.
func requireRequestSize(t *T, length int) {
	maxSize := t.ServiceStatus().MaxRequestSize
	if maxSize.IsDefined() && maxSize.IntValue() < 2*length {
		t.context.SkipWithReason("test service does not accept requests that large")
	}
}

func newEchoClient(t *T, binding *soap.Binding, address string) (*wcfservice.Client, context.Context) {
	endpoint, err := soap.NewEndpointAddress(address)
	require.NoError(t, err)
	factory := soap.NewChannelFactory(binding, endpoint, soap.WithLogger(t.DebugLogger()))
	t.Defer(func() { _ = factory.Close() })

	client, err := wcfservice.NewClient(factory)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	t.Defer(cancel)
	return client, ctx
}
