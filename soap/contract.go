package soap

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"
)

// BodyMember is one element of a message contract body.
//
// When writing, Value holds the value to serialize (a primitive supported by FormatValue,
// a pointer to one, or an ElementMarshaler). When reading, Value must be a pointer that
// ParseValue understands, or an ElementUnmarshaler.
type BodyMember struct {
	Name      string
	Namespace string
	Order     int
	Value     interface{}
}

// MessageContract describes the layout of a message body. Members are written sorted by
// Order, and members with the same Order are sorted by Name. If IsWrapped is set the members
// are enclosed in a wrapper element.
type MessageContract struct {
	WrapperName      string
	WrapperNamespace string
	IsWrapped        bool
	Members          []BodyMember
}

// ElementMarshaler is implemented by values that write themselves as an XML element.
type ElementMarshaler interface {
	MarshalElement(name, namespace string) (*etree.Element, error)
}

// ElementUnmarshaler is implemented by values that read themselves from an XML element.
type ElementUnmarshaler interface {
	UnmarshalElement(e *etree.Element) error
}

// OrderedMembers returns the members in serialization order.
func (c MessageContract) OrderedMembers() []BodyMember {
	members := append([]BodyMember(nil), c.Members...)
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Order != members[j].Order {
			return members[i].Order < members[j].Order
		}
		return members[i].Name < members[j].Name
	})
	return members
}

// BodyElements serializes the contract into the top-level elements of a message body.
func (c MessageContract) BodyElements() ([]*etree.Element, error) {
	if c.IsWrapped && c.WrapperName == "" {
		return nil, fmt.Errorf("wrapped message contract has no wrapper name")
	}
	var elements []*etree.Element
	for _, m := range c.OrderedMembers() {
		e, err := NewValueElement(m.Name, m.Namespace, m.Value)
		if err != nil {
			return nil, fmt.Errorf("body member %q: %w", m.Name, err)
		}
		if c.IsWrapped && m.Namespace == "" && c.WrapperNamespace != "" {
			e.CreateAttr("xmlns", "")
		}
		elements = append(elements, e)
	}
	if !c.IsWrapped {
		return elements, nil
	}
	wrapper := NewElement(c.WrapperName, c.WrapperNamespace)
	for _, e := range elements {
		wrapper.AddChild(e)
	}
	return []*etree.Element{wrapper}, nil
}

// Message creates a message whose body is this contract.
func (c MessageContract) Message(version MessageVersion, action string) (*Message, error) {
	body, err := c.BodyElements()
	if err != nil {
		return nil, err
	}
	return NewMessage(version, action, body...), nil
}

// ReadFrom fills the member values from the body of a message. It fails if the wrapper is
// missing or misnamed, or if any member is absent.
func (c MessageContract) ReadFrom(m *Message) error {
	elements := m.Body
	if c.IsWrapped {
		wrapper := m.BodyElement(c.WrapperName, c.WrapperNamespace)
		if wrapper == nil {
			return fmt.Errorf("message body does not contain wrapper element %q (namespace %q)",
				c.WrapperName, c.WrapperNamespace)
		}
		elements = wrapper.ChildElements()
	}
	for _, member := range c.Members {
		e := findElement(elements, member.Name, member.Namespace)
		if e == nil {
			return fmt.Errorf("message body does not contain member %q (namespace %q)", member.Name, member.Namespace)
		}
		if err := ReadValueElement(e, member.Value); err != nil {
			return fmt.Errorf("body member %q: %w", member.Name, err)
		}
	}
	return nil
}

// NewElement creates an element in the given namespace, declared as the default namespace.
func NewElement(name, namespace string) *etree.Element {
	e := etree.NewElement(name)
	if namespace != "" {
		e.CreateAttr("xmlns", namespace)
	}
	return e
}

// NewValueElement creates an element holding a primitive value or an ElementMarshaler.
func NewValueElement(name, namespace string, value interface{}) (*etree.Element, error) {
	if m, ok := value.(ElementMarshaler); ok {
		return m.MarshalElement(name, namespace)
	}
	text, err := FormatValue(value)
	if err != nil {
		return nil, err
	}
	e := NewElement(name, namespace)
	e.SetText(text)
	return e, nil
}

// ReadValueElement reads an element into dest, which is either an ElementUnmarshaler or a
// pointer supported by ParseValue.
func ReadValueElement(e *etree.Element, dest interface{}) error {
	if u, ok := dest.(ElementUnmarshaler); ok {
		return u.UnmarshalElement(e)
	}
	return ParseValue(e.Text(), dest)
}

func findElement(elements []*etree.Element, localName, namespace string) *etree.Element {
	for _, e := range elements {
		if e.Tag == localName && e.NamespaceURI() == namespace {
			return e
		}
	}
	return nil
}
