package scenarios

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceidion/wcf/servicedef"
	"github.com/ceidion/wcf/soap"
)

// DoMessageContractTests checks how message contract replies are laid out on the wire.
func DoMessageContractTests(t *T) {
	t.RequireCapability(servicedef.CapabilityBasicHTTP)
	t.RequireCapability(servicedef.CapabilityMessageContract)

	t.Run("IsWrapped true", func(t *T) {
		reader := setupMessageContract(t, true)

		assert.True(t, reader.LocalName() == wrapperName,
			"reader.LocalName - Expected: %s, Actual: %s", wrapperName, reader.LocalName())
		assert.True(t, reader.NamespaceURI() == wrapperNamespace,
			"reader.NamespaceURI - Expected: %s, Actual: %s", wrapperNamespace, reader.NamespaceURI())
	})

	t.Run("IsWrapped false", func(t *T) {
		var errorBuilder ErrorBuilder
		reader := setupMessageContract(t, false)

		if reader.LocalName() == wrapperName {
			errorBuilder.AppendLine("When IsWrapped set to false, the message body should not be wrapped with an extra element.")
		}

		assert.True(t, errorBuilder.Len() == 0, errorBuilder.String())
	})

	t.Run("body elements ordered", func(t *T) {
		reader := setupMessageContract(t, true)

		require.True(t, reader.LocalName() == wrapperName,
			"Unexpected element order (1/5). Expected %s, Actual: %s", wrapperName, reader.LocalName())

		reader.Read()

		require.True(t, reader.LocalName() == dateElementName,
			"Unexpected element order (2/5). Expected %s, Actual: %s", dateElementName, reader.LocalName())

		skipSimpleElement(t, reader)

		require.True(t, reader.LocalName() == transactionElementName,
			"Unexpected element order (3/5). Expected: %s, Actual: %s", transactionElementName, reader.LocalName())

		skipSimpleElement(t, reader)

		require.True(t, reader.LocalName() == customerElementName,
			"Unexpected element order (4/5). Expected: %s, Actual: %s", customerElementName, reader.LocalName())

		skipSimpleElement(t, reader)

		assert.True(t, !reader.IsStartElement() && reader.LocalName() == wrapperName,
			"Unexpected element order (5/5). Expected: %s, Actual: %s", wrapperName, reader.LocalName())
	})

	t.Run("customer element value matches", func(t *T) {
		var errorBuilder ErrorBuilder
		if err := findCustomerValue(t, &errorBuilder); err != nil {
			errorBuilder.AppendLine("Unexpected exception was caught: %+v", err)
		}
		assert.True(t, errorBuilder.Len() == 0, errorBuilder.String())
	})
}

func setupMessageContract(t *T, isWrapped bool) *soap.Reader {
	reader, err := SetupMessageContractTests(t.EndpointAddress(servicedef.BasicHTTPPath), isWrapped, t.withDebugLogger)
	require.NoError(t, err)
	t.Debug("First node of reply body: %s %q (namespace %q)", reader.NodeType(), reader.LocalName(), reader.NamespaceURI())
	return reader
}

// skipSimpleElement moves from the start of a text-only element to the node after its end
// tag.
func skipSimpleElement(t *T, reader *soap.Reader) {
	reader.Read() // value
	reader.Read() // end tag
	require.NoError(t, reader.ReadEndElement())
}

func findCustomerValue(t *T, errorBuilder *ErrorBuilder) error {
	reader, err := SetupMessageContractTests(t.EndpointAddress(servicedef.BasicHTTPPath), true, t.withDebugLogger)
	if err != nil {
		return err
	}
	elementFound := false
	for reader.Read() {
		if !reader.IsStartElementNamed(customerElementName, customerElementNamespace) {
			continue
		}
		elementFound = true
		if err := reader.ReadStartElement(); err != nil {
			return err
		}
		if reader.Value() == customerElementValue {
			break
		}
		errorBuilder.AppendLine("Comparison Failed. Expected: %s, Actual: %s", customerElementValue, reader.Value())
	}
	if !elementFound {
		errorBuilder.AppendLine("Expected element not found. Looking For: %s && %s", customerElementName, customerElementNamespace)
	}
	return nil
}
