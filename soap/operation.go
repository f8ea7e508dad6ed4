package soap

import (
	"fmt"

	"github.com/beevik/etree"
)

// DefaultContractNamespace is the namespace used when a contract does not declare one.
const DefaultContractNamespace = "http://tempuri.org/"

// Operation describes a request/reply operation of a service contract in the wrapped
// document/literal style: the request body is an element named after the operation, the
// reply body is an element named <Operation>Response containing <Operation>Result.
type Operation struct {
	ContractNamespace string
	ContractName      string
	Name              string
}

// Param is a named operation parameter. See BodyMember for what Value may hold.
type Param struct {
	Name  string
	Value interface{}
}

func (o Operation) namespace() string {
	if o.ContractNamespace == "" {
		return DefaultContractNamespace
	}
	return o.ContractNamespace
}

// Action is the request action, e.g. http://tempuri.org/IWcfService/Echo.
func (o Operation) Action() string {
	return o.namespace() + o.ContractName + "/" + o.Name
}

// ReplyAction is the action of the reply message.
func (o Operation) ReplyAction() string {
	return o.Action() + "Response"
}

func (o Operation) responseName() string { return o.Name + "Response" }

func (o Operation) resultName() string { return o.Name + "Result" }

func (o Operation) requestContract(params []Param) MessageContract {
	c := MessageContract{WrapperName: o.Name, WrapperNamespace: o.namespace(), IsWrapped: true}
	for i, p := range params {
		c.Members = append(c.Members, BodyMember{Name: p.Name, Namespace: o.namespace(), Order: i, Value: p.Value})
	}
	return c
}

// NewRequest creates a request message carrying the parameters in declaration order.
func (o Operation) NewRequest(version MessageVersion, params ...Param) (*Message, error) {
	body, err := o.requestContract(params).BodyElements()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.Name, err)
	}
	return NewMessage(version, o.Action(), body...), nil
}

// ReadRequest reads the parameters of a request message into the pointers held by params.
func (o Operation) ReadRequest(m *Message, params ...Param) error {
	if err := o.requestContract(params).ReadFrom(m); err != nil {
		return fmt.Errorf("%s: %w", o.Name, err)
	}
	return nil
}

// ReplyBody creates the body elements of a reply carrying result.
func (o Operation) ReplyBody(result interface{}) ([]*etree.Element, error) {
	c := MessageContract{
		WrapperName:      o.responseName(),
		WrapperNamespace: o.namespace(),
		IsWrapped:        true,
		Members:          []BodyMember{{Name: o.resultName(), Namespace: o.namespace(), Value: result}},
	}
	return c.BodyElements()
}

// ReadReply reads the result of a reply message into dest.
func (o Operation) ReadReply(m *Message, dest interface{}) error {
	c := MessageContract{
		WrapperName:      o.responseName(),
		WrapperNamespace: o.namespace(),
		IsWrapped:        true,
		Members:          []BodyMember{{Name: o.resultName(), Namespace: o.namespace(), Value: dest}},
	}
	if err := c.ReadFrom(m); err != nil {
		return fmt.Errorf("%s: %w", o.Name, err)
	}
	return nil
}
