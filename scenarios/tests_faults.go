package scenarios

import (
	"context"
	"errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceidion/wcf/soap"
	"github.com/ceidion/wcf/wcfservice"
)

var unknownOperation = soap.Operation{
	ContractNamespace: soap.DefaultContractNamespace,
	ContractName:      wcfservice.ContractName,
	Name:              "NotImplemented",
}

// DoFaultTests checks that requests the service cannot dispatch come back as SOAP faults.
func DoFaultTests(t *T) {
	for _, e := range echoEndpoints {
		endpoint := e
		t.Run(endpoint.name, func(t *T) {
			t.RequireCapability(endpoint.capability)

			t.Run("unknown action", func(t *T) {
				address, err := soap.NewEndpointAddress(t.EndpointAddress(endpoint.path))
				require.NoError(t, err)
				binding := endpoint.binding()
				factory := soap.NewChannelFactory(binding, address, soap.WithLogger(t.DebugLogger()))
				t.Defer(func() { _ = factory.Close() })

				channel, err := factory.CreateChannel()
				require.NoError(t, err)
				request, err := unknownOperation.NewRequest(binding.MessageVersion, soap.Param{Name: "message", Value: testString})
				require.NoError(t, err)

				ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
				defer cancel()
				_, err = channel.Request(ctx, request)
				require.Error(t, err)

				var faultErr *soap.FaultError
				require.True(t, errors.As(err, &faultErr), "expected a SOAP fault, got: %s", err)
				t.Debug("Fault reason: %s", faultErr.Fault.Reason)
				assert.Equal(t, soap.FaultCodeSender, faultErr.Fault.Code)
				assert.Equal(t, soap.FaultSubcodeActionNotSupported, faultErr.Fault.Subcode)
			})
		})
	}
}
