package soap

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// NodeType is the kind of node a Reader is positioned on.
type NodeType int

const (
	NodeNone NodeType = iota
	NodeElement
	NodeText
	NodeEndElement
)

func (t NodeType) String() string {
	switch t {
	case NodeElement:
		return "Element"
	case NodeText:
		return "Text"
	case NodeEndElement:
		return "EndElement"
	default:
		return "None"
	}
}

type readerNode struct {
	nodeType  NodeType
	localName string
	namespace string
	value     string
	depth     int
}

// Reader is a forward-only cursor over a sequence of XML elements, in the style of a pull
// parser: every element produces a start node, its non-whitespace text produces text nodes,
// and every element (including empty ones) produces an end node.
//
// A new Reader is positioned on its first node. Read advances to the next node and reports
// false once the end of the content is reached.
type Reader struct {
	nodes []readerNode
	pos   int
}

// NewReader creates a Reader over the given sibling elements and their descendants.
func NewReader(elements ...*etree.Element) *Reader {
	r := &Reader{}
	for _, e := range elements {
		r.flatten(e, 0)
	}
	return r
}

// NewReaderFromBytes parses an XML document and creates a Reader over its root element.
func NewReaderFromBytes(data []byte) (*Reader, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("malformed XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("XML document has no root element")
	}
	return NewReader(doc.Root()), nil
}

func (r *Reader) flatten(e *etree.Element, depth int) {
	ns := e.NamespaceURI()
	r.nodes = append(r.nodes, readerNode{nodeType: NodeElement, localName: e.Tag, namespace: ns, depth: depth})
	for _, token := range e.Child {
		switch t := token.(type) {
		case *etree.Element:
			r.flatten(t, depth+1)
		case *etree.CharData:
			if strings.TrimSpace(t.Data) == "" {
				continue
			}
			r.nodes = append(r.nodes, readerNode{nodeType: NodeText, value: t.Data, depth: depth + 1})
		}
	}
	r.nodes = append(r.nodes, readerNode{nodeType: NodeEndElement, localName: e.Tag, namespace: ns, depth: depth})
}

func (r *Reader) current() readerNode {
	if r.pos < len(r.nodes) {
		return r.nodes[r.pos]
	}
	return readerNode{}
}

// Read moves to the next node. It returns false if there are no more nodes.
func (r *Reader) Read() bool {
	if r.pos < len(r.nodes) {
		r.pos++
	}
	return r.pos < len(r.nodes)
}

// EOF reports whether the reader has moved past the last node.
func (r *Reader) EOF() bool {
	return r.pos >= len(r.nodes)
}

func (r *Reader) NodeType() NodeType { return r.current().nodeType }

// LocalName is the unprefixed name of the current element or end element, or "" for text.
func (r *Reader) LocalName() string { return r.current().localName }

// NamespaceURI is the resolved namespace of the current element or end element.
func (r *Reader) NamespaceURI() string { return r.current().namespace }

// Value is the content of the current text node, or "" for other node types.
func (r *Reader) Value() string { return r.current().value }

// Depth is the nesting level of the current node, where the first element is at depth 0.
func (r *Reader) Depth() int { return r.current().depth }

// MoveToContent returns the type of the current node. Every node this reader produces is a
// content node, so it never moves; it exists so callers can follow the usual pull-parser
// protocol.
func (r *Reader) MoveToContent() NodeType {
	return r.NodeType()
}

// IsStartElement reports whether the current node is a start element.
func (r *Reader) IsStartElement() bool {
	return r.MoveToContent() == NodeElement
}

// IsStartElementNamed reports whether the current node is a start element with the given
// local name and namespace.
func (r *Reader) IsStartElementNamed(localName, namespace string) bool {
	return r.IsStartElement() && r.LocalName() == localName && r.NamespaceURI() == namespace
}

// ReadStartElement checks that the current node is a start element and advances past it.
func (r *Reader) ReadStartElement() error {
	if !r.IsStartElement() {
		return r.unexpectedNode(NodeElement)
	}
	r.Read()
	return nil
}

// ReadEndElement checks that the current node is an end element and advances past it.
func (r *Reader) ReadEndElement() error {
	if r.MoveToContent() != NodeEndElement {
		return r.unexpectedNode(NodeEndElement)
	}
	r.Read()
	return nil
}

// ReadElementContentAsString reads a simple element: it must be positioned on a start
// element whose only content is text. The reader is left after the element's end node.
func (r *Reader) ReadElementContentAsString() (string, error) {
	if err := r.ReadStartElement(); err != nil {
		return "", err
	}
	var value string
	for r.NodeType() == NodeText {
		value += r.Value()
		r.Read()
	}
	if err := r.ReadEndElement(); err != nil {
		return "", err
	}
	return value, nil
}

func (r *Reader) unexpectedNode(expected NodeType) error {
	if r.EOF() {
		return fmt.Errorf("expected %s node but reached the end of the content", expected)
	}
	n := r.current()
	return fmt.Errorf("expected %s node but found %s node %q (namespace %q)",
		expected, n.nodeType, n.localName, n.namespace)
}
