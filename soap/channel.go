package soap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"
)

// ErrQuotaExceeded is returned when a reply is larger than the binding allows.
var ErrQuotaExceeded = errors.New("maximum message size quota for incoming messages has been exceeded")

// ErrUnrelatedReply is returned when a WS-Addressing reply does not relate to the request.
var ErrUnrelatedReply = errors.New("reply does not relate to the request")

// CommunicationState is the lifecycle state of a channel factory.
type CommunicationState int

const (
	StateCreated CommunicationState = iota
	StateOpening
	StateOpened
	StateClosing
	StateClosed
	StateFaulted
)

func (s CommunicationState) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateOpening:
		return "Opening"
	case StateOpened:
		return "Opened"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	case StateFaulted:
		return "Faulted"
	default:
		return fmt.Sprintf("CommunicationState(%d)", int(s))
	}
}

// InvalidStateError is returned when a factory or channel is used in a state that does not
// allow the operation.
type InvalidStateError struct {
	Operation string
	State     CommunicationState
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: channel factory is in the %s state", e.Operation, e.State)
}

// ProtocolError is returned when the service replied with something other than a SOAP
// reply or fault.
type ProtocolError struct {
	StatusCode  int
	ContentType string
	Body        string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("unexpected HTTP response %d (content type %q): %s", e.StatusCode, e.ContentType, e.Body)
}

// MessageInspector observes and may modify messages going through a channel.
type MessageInspector interface {
	BeforeSendRequest(request *Message) error
	AfterReceiveReply(reply *Message) error
}

// ChannelFactory creates request channels to one endpoint using one binding.
//
// Its exported fields are settings: they may be changed until the factory is opened, either
// directly or with a settings callback, and are fixed from then on. CreateChannel opens the
// factory if it was not opened explicitly.
type ChannelFactory struct {
	Binding    *Binding
	Endpoint   EndpointAddress
	Inspectors []MessageInspector
	HTTPClient *http.Client
	Logger     Logger

	state CommunicationState
	// binding is the copy of Binding taken when the factory opened.
	binding Binding
	lock    sync.Mutex
}

// FactoryOption configures a ChannelFactory when it is created.
type FactoryOption func(*ChannelFactory)

func WithLogger(logger Logger) FactoryOption {
	return func(f *ChannelFactory) { f.Logger = logger }
}

func WithHTTPClient(client *http.Client) FactoryOption {
	return func(f *ChannelFactory) { f.HTTPClient = client }
}

func WithInspector(inspector MessageInspector) FactoryOption {
	return func(f *ChannelFactory) { f.Inspectors = append(f.Inspectors, inspector) }
}

// NewChannelFactory creates a factory in the Created state.
func NewChannelFactory(binding *Binding, address EndpointAddress, opts ...FactoryOption) *ChannelFactory {
	f := &ChannelFactory{
		Binding:  binding,
		Endpoint: address,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current lifecycle state.
func (f *ChannelFactory) State() CommunicationState {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.state
}

// Open validates the settings and moves the factory to the Opened state. Opening a factory
// that is already open does nothing.
func (f *ChannelFactory) Open() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.openLocked()
}

func (f *ChannelFactory) openLocked() error {
	switch f.state {
	case StateOpened:
		return nil
	case StateCreated:
	default:
		return &InvalidStateError{Operation: "open", State: f.state}
	}
	f.state = StateOpening
	if err := f.validate(); err != nil {
		f.state = StateFaulted
		return err
	}
	f.binding = *f.Binding
	if f.HTTPClient == nil {
		f.HTTPClient = http.DefaultClient
	}
	if f.Logger == nil {
		f.Logger = nullLogger{}
	}
	f.state = StateOpened
	return nil
}

func (f *ChannelFactory) validate() error {
	if f.Binding == nil {
		return errors.New("channel factory has no binding")
	}
	if f.Endpoint.IsZero() {
		return errors.New("channel factory has no endpoint address")
	}
	return f.Binding.validate()
}

// CreateChannel returns a channel to the factory's endpoint, opening the factory first if
// necessary.
func (f *ChannelFactory) CreateChannel() (*RequestChannel, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.state == StateCreated {
		if err := f.openLocked(); err != nil {
			return nil, err
		}
	}
	if f.state != StateOpened {
		return nil, &InvalidStateError{Operation: "create a channel", State: f.state}
	}
	return &RequestChannel{factory: f}, nil
}

// Close moves the factory to the Closed state. Channels created by it can no longer send.
func (f *ChannelFactory) Close() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.state = StateClosed
	return nil
}

// RequestChannel sends request messages and waits for their replies.
type RequestChannel struct {
	factory *ChannelFactory
}

// Binding returns the binding settings in effect for this channel.
func (c *RequestChannel) Binding() Binding {
	return c.factory.binding
}

// Request sends a request message and returns the reply. A fault reply is returned as a
// *FaultError; any other reply without HTTP 200 is a *ProtocolError. With WS-Addressing the
// reply must relate to the request's MessageID.
func (c *RequestChannel) Request(ctx context.Context, request *Message) (*Message, error) {
	f := c.factory
	if state := f.State(); state != StateOpened {
		return nil, &InvalidStateError{Operation: "send a request", State: state}
	}
	binding := f.binding
	version := binding.MessageVersion
	if request.Version != version {
		return nil, fmt.Errorf("message version %s does not match binding %s", request.Version, binding.String())
	}

	if version.Addressing == Addressing10 {
		if request.Headers.MessageID == "" {
			request.Headers.MessageID = NewMessageID()
		}
		if request.Headers.ReplyTo == "" {
			request.Headers.ReplyTo = AnonymousAddress
		}
		if request.Headers.To == "" {
			request.Headers.To = f.Endpoint.String()
		}
	}
	for _, inspector := range f.Inspectors {
		if err := inspector.BeforeSendRequest(request); err != nil {
			return nil, err
		}
	}

	data, err := request.Bytes()
	if err != nil {
		return nil, fmt.Errorf("could not serialize request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, binding.SendTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint.String(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", version.ContentType(request.Headers.Action))
	if version.Envelope == Soap11 {
		req.Header.Set("SOAPAction", `"`+request.Headers.Action+`"`)
	}

	f.Logger.Printf("Sending %s request to %s (action %s)", version, f.Endpoint, request.Headers.Action)
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", f.Endpoint, err)
	}
	defer resp.Body.Close()

	replyData, err := io.ReadAll(io.LimitReader(resp.Body, readLimit(binding.MaxReceivedMessageSize)))
	if err != nil {
		return nil, fmt.Errorf("could not read reply from %s: %w", f.Endpoint, err)
	}
	if int64(len(replyData)) > binding.MaxReceivedMessageSize {
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrQuotaExceeded, binding.MaxReceivedMessageSize)
	}
	f.Logger.Printf("Received HTTP %d reply of %d bytes", resp.StatusCode, len(replyData))

	contentType := resp.Header.Get("Content-Type")
	if !isSOAPReply(resp.StatusCode, contentType, version) {
		return nil, &ProtocolError{StatusCode: resp.StatusCode, ContentType: contentType, Body: string(replyData)}
	}
	reply, err := ParseMessage(replyData, version)
	if err != nil {
		return nil, err
	}

	for _, inspector := range f.Inspectors {
		if err := inspector.AfterReceiveReply(reply); err != nil {
			return nil, err
		}
	}

	if reply.IsFault() {
		fault, _ := reply.Fault()
		return nil, &FaultError{Fault: *fault, Action: reply.Headers.Action}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{StatusCode: resp.StatusCode, ContentType: contentType, Body: string(replyData)}
	}
	if version.Addressing == Addressing10 && reply.Headers.RelatesTo != request.Headers.MessageID {
		if reply.Headers.RelatesTo == "" {
			return nil, fmt.Errorf("%w: reply to message %q has no RelatesTo header",
				ErrUnrelatedReply, request.Headers.MessageID)
		}
		return nil, fmt.Errorf("%w: reply relates to message %q but the request was %q",
			ErrUnrelatedReply, reply.Headers.RelatesTo, request.Headers.MessageID)
	}
	return reply, nil
}

// readLimit is how many bytes to read to tell whether a body is larger than quota.
func readLimit(quota int64) int64 {
	if quota < math.MaxInt64 {
		return quota + 1
	}
	return quota
}

func isSOAPReply(status int, contentType string, version MessageVersion) bool {
	if status != http.StatusOK && status != http.StatusInternalServerError {
		return false
	}
	mediaType, _, err := parseContentType(contentType)
	return err == nil && strings.EqualFold(mediaType, version.Envelope.MediaType())
}
