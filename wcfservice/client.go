package wcfservice

import (
	"context"

	"github.com/ceidion/wcf/soap"
)

// Client is a typed proxy for the IWcfService contract.
type Client struct {
	channel *soap.RequestChannel
	version soap.MessageVersion
}

// NewClient creates a channel from the factory and wraps it in a proxy. The factory is
// opened if it was not already.
func NewClient(factory *soap.ChannelFactory) (*Client, error) {
	channel, err := factory.CreateChannel()
	if err != nil {
		return nil, err
	}
	return &Client{channel: channel, version: channel.Binding().MessageVersion}, nil
}

// Echo sends a string and returns the string the service sent back.
func (c *Client) Echo(ctx context.Context, message string) (string, error) {
	var result string
	err := c.invoke(ctx, EchoOperation, &result, soap.Param{Name: "message", Value: message})
	return result, err
}

// EchoComplex sends a composite value and returns the value the service sent back.
func (c *Client) EchoComplex(ctx context.Context, message *ComplexCompositeType) (*ComplexCompositeType, error) {
	result := &ComplexCompositeType{}
	if err := c.invoke(ctx, EchoComplexOperation, result, soap.Param{Name: "message", Value: message}); err != nil {
		return nil, err
	}
	return result, nil
}

// MessageContractRequestReply sends banking data and reads the wrapped reply.
func (c *Client) MessageContractRequestReply(ctx context.Context, request RequestBankingData) (*ReplyBankingData, error) {
	return c.bankingRequest(ctx, MessageContractRequestReplyOperation, request, true)
}

// MessageContractRequestReplyNotWrapped sends banking data and reads the unwrapped reply.
func (c *Client) MessageContractRequestReplyNotWrapped(ctx context.Context, request RequestBankingData) (*ReplyBankingData, error) {
	return c.bankingRequest(ctx, MessageContractRequestReplyNotWrappedOperation, request, false)
}

func (c *Client) bankingRequest(
	ctx context.Context,
	op soap.Operation,
	request RequestBankingData,
	wrapped bool,
) (*ReplyBankingData, error) {
	msg, err := request.Contract(false).Message(c.version, op.Action())
	if err != nil {
		return nil, err
	}
	reply, err := c.channel.Request(ctx, msg)
	if err != nil {
		return nil, err
	}
	result := &ReplyBankingData{}
	if err := result.Contract(wrapped, true).ReadFrom(reply); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) invoke(ctx context.Context, op soap.Operation, result interface{}, params ...soap.Param) error {
	msg, err := op.NewRequest(c.version, params...)
	if err != nil {
		return err
	}
	reply, err := c.channel.Request(ctx, msg)
	if err != nil {
		return err
	}
	return op.ReadReply(reply, result)
}
