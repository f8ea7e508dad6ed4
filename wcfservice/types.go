package wcfservice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/ceidion/wcf/soap"
)

const (
	// DataContractNamespace is the namespace of the service's data contract types.
	DataContractNamespace = "http://schemas.datacontract.org/2004/07/WcfService"
	// ArraysNamespace is the namespace of serialized array items.
	ArraysNamespace = "http://schemas.microsoft.com/2003/10/Serialization/Arrays"
)

// ComplexCompositeType is a value object with one field of each primitive kind. It is used as
// an echo payload to check that every kind survives a round trip.
type ComplexCompositeType struct {
	BoolValue         bool
	ByteArrayValue    []byte
	CharArrayValue    []soap.Char
	CharValue         soap.Char
	DateTimeValue     time.Time
	DayOfWeekValue    time.Weekday
	DoubleValue       float64
	FloatValue        float32
	GuidValue         uuid.UUID
	IntValue          int32
	LongerStringValue string
	LongValue         int64
	SbyteValue        int8
	ShortValue        int16
	StringValue       string
	TimeSpanValue     time.Duration
	UintValue         uint32
	UlongValue        uint64
	UshortValue       uint16
}

type dataMember struct {
	name  string
	value interface{}
}

// scalarMembers lists the simple members in data contract order (ordinal by name). The char
// array is handled separately because it is a nested element.
func (c *ComplexCompositeType) scalarMembers() []dataMember {
	return []dataMember{
		{"BoolValue", &c.BoolValue},
		{"ByteArrayValue", &c.ByteArrayValue},
		{"CharValue", &c.CharValue},
		{"DateTimeValue", &c.DateTimeValue},
		{"DayOfWeekValue", &c.DayOfWeekValue},
		{"DoubleValue", &c.DoubleValue},
		{"FloatValue", &c.FloatValue},
		{"GuidValue", &c.GuidValue},
		{"IntValue", &c.IntValue},
		{"LongValue", &c.LongValue},
		{"LongerStringValue", &c.LongerStringValue},
		{"SbyteValue", &c.SbyteValue},
		{"ShortValue", &c.ShortValue},
		{"StringValue", &c.StringValue},
		{"TimeSpanValue", &c.TimeSpanValue},
		{"UintValue", &c.UintValue},
		{"UlongValue", &c.UlongValue},
		{"UshortValue", &c.UshortValue},
	}
}

const charArrayMember = "CharArrayValue"

// MarshalElement writes the value as a data contract element.
func (c *ComplexCompositeType) MarshalElement(name, namespace string) (*etree.Element, error) {
	e := soap.NewElement(name, namespace)
	e.CreateAttr("xmlns:b", DataContractNamespace)
	for _, m := range c.scalarMembers() {
		if m.name == "CharValue" {
			// CharArrayValue sorts between ByteArrayValue and CharValue.
			e.AddChild(c.charArrayElement())
		}
		text, err := soap.FormatValue(m.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		e.CreateElement("b:" + m.name).SetText(text)
	}
	return e, nil
}

func (c *ComplexCompositeType) charArrayElement() *etree.Element {
	e := etree.NewElement("b:" + charArrayMember)
	e.CreateAttr("xmlns:c", ArraysNamespace)
	for _, ch := range c.CharArrayValue {
		text, _ := soap.FormatValue(ch)
		e.CreateElement("c:char").SetText(text)
	}
	return e
}

// UnmarshalElement reads a data contract element written by MarshalElement.
func (c *ComplexCompositeType) UnmarshalElement(e *etree.Element) error {
	members := make(map[string]*etree.Element)
	for _, child := range e.ChildElements() {
		if child.NamespaceURI() == DataContractNamespace {
			members[child.Tag] = child
		}
	}
	for _, m := range c.scalarMembers() {
		child := members[m.name]
		if child == nil {
			return fmt.Errorf("ComplexCompositeType: missing member %s", m.name)
		}
		if err := soap.ParseValue(child.Text(), m.value); err != nil {
			return fmt.Errorf("ComplexCompositeType.%s: %w", m.name, err)
		}
	}
	c.CharArrayValue = nil
	if array := members[charArrayMember]; array != nil {
		for _, item := range array.ChildElements() {
			var ch soap.Char
			if err := soap.ParseValue(item.Text(), &ch); err != nil {
				return fmt.Errorf("ComplexCompositeType.%s: %w", charArrayMember, err)
			}
			c.CharArrayValue = append(c.CharArrayValue, ch)
		}
	}
	return nil
}

// Equal reports whether every field of c equals the same field of other.
func (c *ComplexCompositeType) Equal(other *ComplexCompositeType) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.CharArrayValue) != len(other.CharArrayValue) {
		return false
	}
	for i := range c.CharArrayValue {
		if c.CharArrayValue[i] != other.CharArrayValue[i] {
			return false
		}
	}
	return c.BoolValue == other.BoolValue &&
		bytes.Equal(c.ByteArrayValue, other.ByteArrayValue) &&
		c.CharValue == other.CharValue &&
		c.DateTimeValue.Equal(other.DateTimeValue) &&
		c.DayOfWeekValue == other.DayOfWeekValue &&
		c.DoubleValue == other.DoubleValue &&
		c.FloatValue == other.FloatValue &&
		c.GuidValue == other.GuidValue &&
		c.IntValue == other.IntValue &&
		c.LongerStringValue == other.LongerStringValue &&
		c.LongValue == other.LongValue &&
		c.SbyteValue == other.SbyteValue &&
		c.ShortValue == other.ShortValue &&
		c.StringValue == other.StringValue &&
		c.TimeSpanValue == other.TimeSpanValue &&
		c.UintValue == other.UintValue &&
		c.UlongValue == other.UlongValue &&
		c.UshortValue == other.UshortValue
}

func (c *ComplexCompositeType) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("ComplexCompositeType{Bool: %t, Char: %d, DateTime: %s, DayOfWeek: %s, Double: %v, "+
		"Float: %v, Guid: %s, Int: %d, Long: %d, String: %q, TimeSpan: %s, LongerString: %d chars}",
		c.BoolValue, c.CharValue, c.DateTimeValue.Format(time.RFC3339), c.DayOfWeekValue, c.DoubleValue,
		c.FloatValue, c.GuidValue, c.IntValue, c.LongValue, c.StringValue, c.TimeSpanValue, len(c.LongerStringValue))
}

// RequestBankingData is the request message contract of MessageContractRequestReply.
type RequestBankingData struct {
	TransactionDate time.Time
	Amount          int32
	CustomerName    string
}

// ReplyBankingData is the reply message contract of MessageContractRequestReply.
type ReplyBankingData struct {
	TransactionDate time.Time
	Amount          int32
	CustomerName    string
}
