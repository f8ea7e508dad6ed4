package soap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/beevik/etree"
)

// DefaultMaxRequestSize bounds how much of a request body a dispatcher will read.
const DefaultMaxRequestSize = 4 * 1024 * 1024

// OperationFunc handles one request and returns the elements of the reply body. Returning a
// *FaultError sends that fault; any other error is sent as a receiver fault.
type OperationFunc func(ctx context.Context, request *Message) ([]*etree.Element, error)

type dispatchOperation struct {
	replyAction string
	handler     OperationFunc
}

// Dispatcher is an http.Handler that routes SOAP requests of one message version to
// operation handlers by action.
type Dispatcher struct {
	// MaxRequestSize is the largest request body accepted; larger requests get a sender fault.
	MaxRequestSize int64

	version    MessageVersion
	operations map[string]dispatchOperation
	logger     Logger
	lock       sync.RWMutex
}

// NewDispatcher creates a dispatcher for the given message version.
func NewDispatcher(version MessageVersion, logger Logger) *Dispatcher {
	if logger == nil {
		logger = nullLogger{}
	}
	return &Dispatcher{
		MaxRequestSize: DefaultMaxRequestSize,
		version:        version,
		operations:     make(map[string]dispatchOperation),
		logger:         logger,
	}
}

// Handle registers the handler for requests with the given action.
func (d *Dispatcher) Handle(action, replyAction string, handler OperationFunc) {
	d.lock.Lock()
	d.operations[action] = dispatchOperation{replyAction: replyAction, handler: handler}
	d.lock.Unlock()
}

// HandleOperation registers the handler for an operation's request action.
func (d *Dispatcher) HandleOperation(op Operation, handler OperationFunc) {
	d.Handle(op.Action(), op.ReplyAction(), handler)
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	mediaType, contentTypeAction, err := parseContentType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != d.version.Envelope.MediaType() {
		d.logger.Printf("Rejected request with content type %q, expected %s",
			r.Header.Get("Content-Type"), d.version.Envelope.MediaType())
		w.WriteHeader(http.StatusUnsupportedMediaType)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, readLimit(d.MaxRequestSize)))
	if err != nil {
		d.logger.Printf("Unexpected error trying to read request body: %s", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if int64(len(data)) > d.MaxRequestSize {
		d.writeFault(w, nil, NewSenderFault("%s (limit %d bytes)", ErrQuotaExceeded, d.MaxRequestSize))
		return
	}
	request, err := ParseMessage(data, d.version)
	if err != nil {
		d.writeFault(w, nil, NewSenderFault("%s", err))
		return
	}

	action := request.Headers.Action
	if action == "" {
		action = contentTypeAction
	}
	if action == "" {
		action = unquoteSOAPAction(r.Header.Get("SOAPAction"))
	}
	request.Headers.Action = action

	d.lock.RLock()
	op, ok := d.operations[action]
	d.lock.RUnlock()
	if !ok {
		fault := NewSenderFault("The message with Action '%s' cannot be processed at the receiver.", action)
		fault.Fault.Subcode = FaultSubcodeActionNotSupported
		d.writeFault(w, request, fault)
		return
	}

	d.logger.Printf("Dispatching %s", action)
	body, err := op.handler(r.Context(), request)
	if err != nil {
		d.writeFault(w, request, err)
		return
	}
	reply := NewMessage(d.version, op.replyAction, body...)
	reply.Headers.RelatesTo = request.Headers.MessageID
	d.writeMessage(w, http.StatusOK, reply)
}

func (d *Dispatcher) writeFault(w http.ResponseWriter, request *Message, err error) {
	var faultErr *FaultError
	if !errors.As(err, &faultErr) {
		faultErr = NewReceiverFault("%s", err)
	}
	d.logger.Printf("Replying with fault: %s", faultErr)
	action := faultErr.Action
	if action == "" && d.version.Addressing == Addressing10 {
		action = WSAddressing10Namespace + "/fault"
	}
	reply := NewMessage(d.version, action, faultErr.Fault.Element(d.version.Envelope))
	if request != nil {
		reply.Headers.RelatesTo = request.Headers.MessageID
	}
	d.writeMessage(w, http.StatusInternalServerError, reply)
}

func (d *Dispatcher) writeMessage(w http.ResponseWriter, status int, m *Message) {
	data, err := m.Bytes()
	if err != nil {
		d.logger.Printf("Could not serialize reply: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", d.version.ContentType(m.Headers.Action))
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// String describes the registered actions, for diagnostics.
func (d *Dispatcher) String() string {
	d.lock.RLock()
	defer d.lock.RUnlock()
	actions := make([]string, 0, len(d.operations))
	for a := range d.operations {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	return fmt.Sprintf("Dispatcher(%s: %s)", d.version, strings.Join(actions, ", "))
}
