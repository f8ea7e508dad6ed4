package soap

import (
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultSendTimeout            = time.Minute
	DefaultMaxReceivedMessageSize = 65536
)

// Binding describes how a channel talks to an endpoint over HTTP: which message version it
// writes, how long a request may take and how large a reply it accepts.
type Binding struct {
	Name                   string
	MessageVersion         MessageVersion
	SendTimeout            time.Duration
	MaxReceivedMessageSize int64
}

// NewBasicHTTPBinding returns a SOAP 1.1 binding without addressing headers.
func NewBasicHTTPBinding() *Binding {
	return &Binding{
		Name:                   "BasicHttpBinding",
		MessageVersion:         MessageVersionSoap11,
		SendTimeout:            DefaultSendTimeout,
		MaxReceivedMessageSize: DefaultMaxReceivedMessageSize,
	}
}

// NewWSHTTPBinding returns a SOAP 1.2 binding with WS-Addressing 1.0 headers.
func NewWSHTTPBinding() *Binding {
	return &Binding{
		Name:                   "WSHttpBinding",
		MessageVersion:         MessageVersionSoap12WSAddressing10,
		SendTimeout:            DefaultSendTimeout,
		MaxReceivedMessageSize: DefaultMaxReceivedMessageSize,
	}
}

func (b *Binding) String() string {
	return fmt.Sprintf("%s (%s)", b.Name, b.MessageVersion)
}

func (b *Binding) validate() error {
	if b.SendTimeout <= 0 {
		return fmt.Errorf("binding %s: send timeout must be positive", b.Name)
	}
	if b.MaxReceivedMessageSize <= 0 {
		return fmt.Errorf("binding %s: max received message size must be positive", b.Name)
	}
	return nil
}

// EndpointAddress is the absolute HTTP or HTTPS address of a service endpoint.
type EndpointAddress struct {
	uri string
}

// NewEndpointAddress validates and wraps an endpoint URI.
func NewEndpointAddress(uri string) (EndpointAddress, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return EndpointAddress{}, fmt.Errorf("invalid endpoint address %q: %w", uri, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return EndpointAddress{}, fmt.Errorf("endpoint address %q must be an absolute http or https URI", uri)
	}
	return EndpointAddress{uri: uri}, nil
}

func (a EndpointAddress) String() string { return a.uri }

// IsZero reports whether the address was never set.
func (a EndpointAddress) IsZero() bool { return a.uri == "" }
