package soap

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Fault codes, using the SOAP 1.2 names. SOAP 1.1 envelopes use Client and Server instead.
const (
	FaultCodeSender   = "Sender"
	FaultCodeReceiver = "Receiver"

	// FaultSubcodeActionNotSupported is reported when a dispatcher has no operation for the
	// requested action.
	FaultSubcodeActionNotSupported = "ActionNotSupported"
)

// Fault is the content of a SOAP fault.
type Fault struct {
	Code    string
	Subcode string
	Reason  string
	Detail  string
}

// FaultError is returned by a channel when the service replied with a fault, and can be
// returned by operation handlers to send a specific fault.
type FaultError struct {
	Fault Fault
	// Action is the action of the reply that carried the fault, if known.
	Action string
}

func (e *FaultError) Error() string {
	code := e.Fault.Code
	if e.Fault.Subcode != "" {
		code += "/" + e.Fault.Subcode
	}
	return fmt.Sprintf("SOAP fault (%s): %s", code, e.Fault.Reason)
}

// NewSenderFault creates a fault blaming the message sender.
func NewSenderFault(format string, args ...interface{}) *FaultError {
	return &FaultError{Fault: Fault{Code: FaultCodeSender, Reason: fmt.Sprintf(format, args...)}}
}

// NewReceiverFault creates a fault blaming the service.
func NewReceiverFault(format string, args ...interface{}) *FaultError {
	return &FaultError{Fault: Fault{Code: FaultCodeReceiver, Reason: fmt.Sprintf(format, args...)}}
}

// Element writes the fault in the syntax of the given envelope version.
func (f Fault) Element(version EnvelopeVersion) *etree.Element {
	if version == Soap12 {
		return f.soap12Element()
	}
	return f.soap11Element()
}

func (f Fault) soap11Element() *etree.Element {
	fault := etree.NewElement(envelopePrefix + ":Fault")
	fault.CreateAttr("xmlns:"+envelopePrefix, Soap11EnvelopeNamespace)
	code := "Server"
	if f.Code == FaultCodeSender {
		code = "Client"
	}
	if f.Subcode != "" {
		code += "." + f.Subcode
	}
	fault.CreateElement("faultcode").SetText(envelopePrefix + ":" + code)
	reason := fault.CreateElement("faultstring")
	reason.CreateAttr("xml:lang", "en-US")
	reason.SetText(f.Reason)
	if f.Detail != "" {
		fault.CreateElement("detail").SetText(f.Detail)
	}
	return fault
}

func (f Fault) soap12Element() *etree.Element {
	fault := etree.NewElement(envelopePrefix + ":Fault")
	fault.CreateAttr("xmlns:"+envelopePrefix, Soap12EnvelopeNamespace)
	code := fault.CreateElement(envelopePrefix + ":Code")
	code.CreateElement(envelopePrefix + ":Value").SetText(envelopePrefix + ":" + f.Code)
	if f.Subcode != "" {
		subcode := code.CreateElement(envelopePrefix + ":Subcode")
		value := subcode.CreateElement(envelopePrefix + ":Value")
		value.CreateAttr("xmlns:"+addressingPrefix, WSAddressing10Namespace)
		value.SetText(addressingPrefix + ":" + f.Subcode)
	}
	reason := fault.CreateElement(envelopePrefix + ":Reason")
	text := reason.CreateElement(envelopePrefix + ":Text")
	text.CreateAttr("xml:lang", "en-US")
	text.SetText(f.Reason)
	if f.Detail != "" {
		fault.CreateElement(envelopePrefix + ":Detail").SetText(f.Detail)
	}
	return fault
}

func parseFault(e *etree.Element, version EnvelopeVersion) *Fault {
	if version == Soap12 {
		f := &Fault{}
		if code := e.SelectElement("Code"); code != nil {
			if value := code.SelectElement("Value"); value != nil {
				f.Code = localPart(value.Text())
			}
			if subcode := code.SelectElement("Subcode"); subcode != nil {
				if value := subcode.SelectElement("Value"); value != nil {
					f.Subcode = localPart(value.Text())
				}
			}
		}
		if reason := e.SelectElement("Reason"); reason != nil {
			if text := reason.SelectElement("Text"); text != nil {
				f.Reason = text.Text()
			}
		}
		if detail := e.SelectElement("Detail"); detail != nil {
			f.Detail = detail.Text()
		}
		return f
	}

	f := &Fault{Code: FaultCodeReceiver}
	if code := e.SelectElement("faultcode"); code != nil {
		name := localPart(code.Text())
		if dot := strings.IndexByte(name, '.'); dot >= 0 {
			name, f.Subcode = name[:dot], name[dot+1:]
		}
		if name == "Client" {
			f.Code = FaultCodeSender
		}
	}
	if reason := e.SelectElement("faultstring"); reason != nil {
		f.Reason = reason.Text()
	}
	if detail := e.SelectElement("detail"); detail != nil {
		f.Detail = detail.Text()
	}
	return f
}

func localPart(qname string) string {
	qname = strings.TrimSpace(qname)
	if colon := strings.IndexByte(qname, ':'); colon >= 0 {
		return qname[colon+1:]
	}
	return qname
}
