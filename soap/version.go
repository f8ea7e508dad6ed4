package soap

import (
	"mime"
	"strings"
)

const (
	Soap11EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	Soap12EnvelopeNamespace = "http://www.w3.org/2003/05/soap-envelope"
	WSAddressing10Namespace = "http://www.w3.org/2005/08/addressing"

	// AnonymousAddress is the WS-Addressing reply address meaning "the back channel".
	AnonymousAddress = WSAddressing10Namespace + "/anonymous"

	envelopePrefix   = "s"
	addressingPrefix = "a"
)

// EnvelopeVersion identifies the SOAP envelope namespace and its HTTP conventions.
type EnvelopeVersion int

const (
	Soap11 EnvelopeVersion = iota
	Soap12
)

func (v EnvelopeVersion) Namespace() string {
	if v == Soap12 {
		return Soap12EnvelopeNamespace
	}
	return Soap11EnvelopeNamespace
}

func (v EnvelopeVersion) String() string {
	if v == Soap12 {
		return "Soap12"
	}
	return "Soap11"
}

// MediaType is the HTTP media type of envelopes of this version.
func (v EnvelopeVersion) MediaType() string {
	if v == Soap12 {
		return "application/soap+xml"
	}
	return "text/xml"
}

// AddressingVersion selects whether WS-Addressing headers are written and read.
type AddressingVersion int

const (
	AddressingNone AddressingVersion = iota
	Addressing10
)

func (a AddressingVersion) String() string {
	if a == Addressing10 {
		return "WSAddressing10"
	}
	return "AddressingNone"
}

// MessageVersion is the combination of envelope and addressing versions that a binding uses.
type MessageVersion struct {
	Envelope   EnvelopeVersion
	Addressing AddressingVersion
}

var (
	// MessageVersionSoap11 is used by basic HTTP bindings.
	MessageVersionSoap11 = MessageVersion{Envelope: Soap11, Addressing: AddressingNone}
	// MessageVersionSoap12WSAddressing10 is used by WS HTTP bindings.
	MessageVersionSoap12WSAddressing10 = MessageVersion{Envelope: Soap12, Addressing: Addressing10}
)

func (v MessageVersion) String() string {
	return v.Envelope.String() + " " + v.Addressing.String()
}

// ContentType returns the HTTP Content-Type for a message with the given action. SOAP 1.2
// carries the action as a media type parameter; SOAP 1.1 uses the SOAPAction header instead.
func (v MessageVersion) ContentType(action string) string {
	params := map[string]string{"charset": "utf-8"}
	if v.Envelope == Soap12 && action != "" {
		params["action"] = action
	}
	return mime.FormatMediaType(v.Envelope.MediaType(), params)
}

// parseContentType returns the media type and the action parameter, if any.
func parseContentType(contentType string) (string, string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", "", err
	}
	return strings.ToLower(mediaType), params["action"], nil
}

func unquoteSOAPAction(value string) string {
	return strings.Trim(strings.TrimSpace(value), `"`)
}
