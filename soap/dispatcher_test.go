package soap

import (
	"bytes"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postMessage(t *testing.T, d *Dispatcher, m *Message, contentType, soapAction string) (*httptest.ResponseRecorder, *Message) {
	data, err := m.Bytes()
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/service", bytes.NewReader(data))
	req.Header.Set("Content-Type", contentType)
	if soapAction != "" {
		req.Header.Set("SOAPAction", soapAction)
	}
	w := httptest.NewRecorder()
	d.ServeHTTP(w, req)

	var reply *Message
	if w.Code == http.StatusOK || w.Code == http.StatusInternalServerError {
		reply, err = ParseMessage(w.Body.Bytes(), d.version)
		require.NoError(t, err)
	}
	return w, reply
}

func newEchoRequest(t *testing.T, version MessageVersion, message string) *Message {
	m, err := testEchoOperation.NewRequest(version, Param{Name: "message", Value: message})
	require.NoError(t, err)
	return m
}

func TestDispatcherRejectsOtherMethods(t *testing.T) {
	d := newEchoDispatcher(MessageVersionSoap11)
	w := httptest.NewRecorder()
	d.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/service", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func TestDispatcherRejectsWrongContentType(t *testing.T) {
	d := newEchoDispatcher(MessageVersionSoap11)
	m := newEchoRequest(t, MessageVersionSoap11, "Hello")
	w, _ := postMessage(t, d, m, "application/soap+xml; charset=utf-8", "")
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestDispatcherTakesActionFromSOAPActionHeader(t *testing.T) {
	d := newEchoDispatcher(MessageVersionSoap11)
	m := newEchoRequest(t, MessageVersionSoap11, "Hello")
	w, reply := postMessage(t, d, m, MessageVersionSoap11.ContentType(""), `"`+testEchoOperation.Action()+`"`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/xml; charset=utf-8", w.Header().Get("Content-Type"))

	var result string
	require.NoError(t, testEchoOperation.ReadReply(reply, &result))
	assert.Equal(t, "Hello", result)
}

func TestDispatcherTakesActionFromContentType(t *testing.T) {
	d := newEchoDispatcher(MessageVersionSoap12WSAddressing10)
	m := newEchoRequest(t, MessageVersionSoap12WSAddressing10, "Hello")
	action := m.Headers.Action
	m.Headers.Action = ""
	m.Headers.MessageID = "urn:uuid:42"

	w, reply := postMessage(t, d, m, MessageVersionSoap12WSAddressing10.ContentType(action), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testEchoOperation.ReplyAction(), reply.Headers.Action)
	assert.Equal(t, "urn:uuid:42", reply.Headers.RelatesTo)
}

func TestDispatcherUnknownAction(t *testing.T) {
	d := newEchoDispatcher(MessageVersionSoap12WSAddressing10)
	m := NewMessage(MessageVersionSoap12WSAddressing10, "urn:nothing")
	w, reply := postMessage(t, d, m, MessageVersionSoap12WSAddressing10.ContentType(""), "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	fault, err := reply.Fault()
	require.NoError(t, err)
	assert.Equal(t, FaultCodeSender, fault.Code)
	assert.Equal(t, FaultSubcodeActionNotSupported, fault.Subcode)
	assert.Equal(t, WSAddressing10Namespace+"/fault", reply.Headers.Action)
}

func TestDispatcherHandlerErrorBecomesReceiverFault(t *testing.T) {
	d := NewDispatcher(MessageVersionSoap11, nil)
	d.HandleOperation(testEchoOperation, func(context.Context, *Message) ([]*etree.Element, error) {
		return nil, errors.New("database is on fire")
	})
	m := newEchoRequest(t, MessageVersionSoap11, "Hello")
	w, reply := postMessage(t, d, m, MessageVersionSoap11.ContentType(""), testEchoOperation.Action())
	require.Equal(t, http.StatusInternalServerError, w.Code)

	fault, err := reply.Fault()
	require.NoError(t, err)
	assert.Equal(t, FaultCodeReceiver, fault.Code)
	assert.Equal(t, "database is on fire", fault.Reason)
}

func TestDispatcherMalformedRequestBody(t *testing.T) {
	d := newEchoDispatcher(MessageVersionSoap11)
	m := NewMessage(MessageVersionSoap11, "")
	w, reply := postMessage(t, d, m, MessageVersionSoap11.ContentType(""), testEchoOperation.Action())
	require.Equal(t, http.StatusInternalServerError, w.Code)

	fault, err := reply.Fault()
	require.NoError(t, err)
	assert.Equal(t, FaultCodeSender, fault.Code)
	assert.Contains(t, fault.Reason, "wrapper element")
}

func TestDispatcherRequestOverQuota(t *testing.T) {
	d := newEchoDispatcher(MessageVersionSoap11)
	d.MaxRequestSize = 512
	m := newEchoRequest(t, MessageVersionSoap11, strings.Repeat("x", 1024))
	w, reply := postMessage(t, d, m, MessageVersionSoap11.ContentType(""), testEchoOperation.Action())
	require.Equal(t, http.StatusInternalServerError, w.Code)

	fault, err := reply.Fault()
	require.NoError(t, err)
	assert.Contains(t, fault.Reason, ErrQuotaExceeded.Error())
}

func TestDispatcherUnlimitedRequestSize(t *testing.T) {
	d := newEchoDispatcher(MessageVersionSoap11)
	d.MaxRequestSize = math.MaxInt64
	m := newEchoRequest(t, MessageVersionSoap11, "Hello")
	w, reply := postMessage(t, d, m, MessageVersionSoap11.ContentType(""), testEchoOperation.Action())
	require.Equal(t, http.StatusOK, w.Code)

	var result string
	require.NoError(t, testEchoOperation.ReadReply(reply, &result))
	assert.Equal(t, "Hello", result)
}

func TestDispatcherString(t *testing.T) {
	d := newEchoDispatcher(MessageVersionSoap11)
	assert.Equal(t, "Dispatcher(Soap11 AddressingNone: http://tempuri.org/ITestService/Echo)", d.String())
}
