package soap

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/google/uuid"
)

// Headers holds the addressing properties of a message. For SOAP 1.1 without addressing
// only Action is meaningful, and it travels in the SOAPAction HTTP header rather than in
// the envelope.
type Headers struct {
	Action    string
	MessageID string
	RelatesTo string
	To        string
	ReplyTo   string

	// Extra contains any header blocks that are not addressing headers.
	Extra []*etree.Element
}

// Message is a SOAP message: a version, its headers and the elements of its body.
type Message struct {
	Version MessageVersion
	Headers Headers
	Body    []*etree.Element
}

// NewMessage creates a message with the given action and body elements.
func NewMessage(version MessageVersion, action string, body ...*etree.Element) *Message {
	return &Message{
		Version: version,
		Headers: Headers{Action: action},
		Body:    body,
	}
}

// NewMessageID returns a unique WS-Addressing message identifier.
func NewMessageID() string {
	return "urn:uuid:" + uuid.New().String()
}

// Document builds the SOAP envelope for the message. Body and header elements are copied,
// so the message can be serialized more than once.
func (m *Message) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	env := doc.CreateElement(envelopePrefix + ":Envelope")
	env.CreateAttr("xmlns:"+envelopePrefix, m.Version.Envelope.Namespace())

	if m.Version.Addressing == Addressing10 || len(m.Headers.Extra) > 0 {
		header := env.CreateElement(envelopePrefix + ":Header")
		if m.Version.Addressing == Addressing10 {
			env.CreateAttr("xmlns:"+addressingPrefix, WSAddressing10Namespace)
			m.writeAddressingHeaders(header)
		}
		for _, h := range m.Headers.Extra {
			header.AddChild(detachedCopy(h))
		}
	}

	body := env.CreateElement(envelopePrefix + ":Body")
	for _, e := range m.Body {
		body.AddChild(detachedCopy(e))
	}
	return doc
}

func (m *Message) writeAddressingHeaders(header *etree.Element) {
	mustUnderstand := envelopePrefix + ":mustUnderstand"
	if m.Headers.Action != "" {
		action := header.CreateElement(addressingPrefix + ":Action")
		action.CreateAttr(mustUnderstand, "1")
		action.SetText(m.Headers.Action)
	}
	if m.Headers.MessageID != "" {
		header.CreateElement(addressingPrefix + ":MessageID").SetText(m.Headers.MessageID)
	}
	if m.Headers.RelatesTo != "" {
		header.CreateElement(addressingPrefix + ":RelatesTo").SetText(m.Headers.RelatesTo)
	}
	if m.Headers.ReplyTo != "" {
		replyTo := header.CreateElement(addressingPrefix + ":ReplyTo")
		replyTo.CreateElement(addressingPrefix + ":Address").SetText(m.Headers.ReplyTo)
	}
	if m.Headers.To != "" {
		to := header.CreateElement(addressingPrefix + ":To")
		to.CreateAttr(mustUnderstand, "1")
		to.SetText(m.Headers.To)
	}
}

// Bytes serializes the message envelope.
func (m *Message) Bytes() ([]byte, error) {
	return m.Document().WriteToBytes()
}

// ParseMessage parses a SOAP envelope of the expected version.
func ParseMessage(data []byte, version MessageVersion) (*Message, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("malformed SOAP envelope: %w", err)
	}
	env := doc.Root()
	if env == nil || env.Tag != "Envelope" {
		return nil, fmt.Errorf("document is not a SOAP envelope")
	}
	if ns := env.NamespaceURI(); ns != version.Envelope.Namespace() {
		return nil, fmt.Errorf("envelope namespace %q does not match message version %s", ns, version)
	}

	m := &Message{Version: version}
	for _, child := range env.ChildElements() {
		if child.NamespaceURI() != version.Envelope.Namespace() {
			continue
		}
		switch child.Tag {
		case "Header":
			m.readHeaders(child)
		case "Body":
			m.Body = child.ChildElements()
		}
	}
	return m, nil
}

func (m *Message) readHeaders(header *etree.Element) {
	for _, h := range header.ChildElements() {
		if m.Version.Addressing != Addressing10 || h.NamespaceURI() != WSAddressing10Namespace {
			m.Headers.Extra = append(m.Headers.Extra, h)
			continue
		}
		switch h.Tag {
		case "Action":
			m.Headers.Action = h.Text()
		case "MessageID":
			m.Headers.MessageID = h.Text()
		case "RelatesTo":
			m.Headers.RelatesTo = h.Text()
		case "To":
			m.Headers.To = h.Text()
		case "ReplyTo":
			if address := h.SelectElement("Address"); address != nil {
				m.Headers.ReplyTo = address.Text()
			}
		default:
			m.Headers.Extra = append(m.Headers.Extra, h)
		}
	}
}

// ReaderAtBodyContents returns a Reader positioned on the first node inside the body.
func (m *Message) ReaderAtBodyContents() *Reader {
	return NewReader(m.Body...)
}

// IsFault reports whether the body contains a SOAP fault.
func (m *Message) IsFault() bool {
	return len(m.Body) > 0 && m.Body[0].Tag == "Fault" &&
		m.Body[0].NamespaceURI() == m.Version.Envelope.Namespace()
}

// Fault decodes the fault in the body. It returns an error if the message is not a fault.
func (m *Message) Fault() (*Fault, error) {
	if !m.IsFault() {
		return nil, fmt.Errorf("message is not a fault")
	}
	return parseFault(m.Body[0], m.Version.Envelope), nil
}

// BodyElement returns the first body element with the given local name and namespace.
func (m *Message) BodyElement(localName, namespace string) *etree.Element {
	for _, e := range m.Body {
		if e.Tag == localName && e.NamespaceURI() == namespace {
			return e
		}
	}
	return nil
}

// detachedCopy copies an element and declares any namespace that the copy can no longer
// resolve from its original ancestors.
func detachedCopy(e *etree.Element) *etree.Element {
	c := e.Copy()
	declareNamespaces(e, c)
	return c
}

func declareNamespaces(orig, c *etree.Element) {
	if ns := orig.NamespaceURI(); ns != "" && c.NamespaceURI() != ns {
		if orig.Space == "" {
			c.CreateAttr("xmlns", ns)
		} else {
			c.CreateAttr("xmlns:"+orig.Space, ns)
		}
	}
	origChildren, copyChildren := orig.ChildElements(), c.ChildElements()
	for i := range origChildren {
		declareNamespaces(origChildren[i], copyChildren[i])
	}
}
