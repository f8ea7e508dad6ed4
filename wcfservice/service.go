package wcfservice

import (
	"context"

	"github.com/beevik/etree"

	"github.com/ceidion/wcf/soap"
)

// Service is the server side of the IWcfService contract.
type Service interface {
	Echo(ctx context.Context, message string) (string, error)
	EchoComplex(ctx context.Context, message *ComplexCompositeType) (*ComplexCompositeType, error)
	MessageContractRequestReply(ctx context.Context, request RequestBankingData) (ReplyBankingData, error)
}

// EchoService returns every request back to the caller.
type EchoService struct{}

func (EchoService) Echo(_ context.Context, message string) (string, error) {
	return message, nil
}

func (EchoService) EchoComplex(_ context.Context, message *ComplexCompositeType) (*ComplexCompositeType, error) {
	return message, nil
}

func (EchoService) MessageContractRequestReply(_ context.Context, request RequestBankingData) (ReplyBankingData, error) {
	return ReplyBankingData{
		TransactionDate: request.TransactionDate,
		Amount:          request.Amount,
		CustomerName:    request.CustomerName,
	}, nil
}

// Register adds the contract's operations to a dispatcher.
func Register(d *soap.Dispatcher, service Service) {
	d.HandleOperation(EchoOperation, func(ctx context.Context, req *soap.Message) ([]*etree.Element, error) {
		var message string
		if err := EchoOperation.ReadRequest(req, soap.Param{Name: "message", Value: &message}); err != nil {
			return nil, soap.NewSenderFault("%s", err)
		}
		result, err := service.Echo(ctx, message)
		if err != nil {
			return nil, err
		}
		return EchoOperation.ReplyBody(result)
	})

	d.HandleOperation(EchoComplexOperation, func(ctx context.Context, req *soap.Message) ([]*etree.Element, error) {
		message := &ComplexCompositeType{}
		if err := EchoComplexOperation.ReadRequest(req, soap.Param{Name: "message", Value: message}); err != nil {
			return nil, soap.NewSenderFault("%s", err)
		}
		result, err := service.EchoComplex(ctx, message)
		if err != nil {
			return nil, err
		}
		return EchoComplexOperation.ReplyBody(result)
	})

	d.HandleOperation(MessageContractRequestReplyOperation, bankingHandler(service, true))
	d.HandleOperation(MessageContractRequestReplyNotWrappedOperation, bankingHandler(service, false))
}

func bankingHandler(service Service, wrapped bool) soap.OperationFunc {
	return func(ctx context.Context, req *soap.Message) ([]*etree.Element, error) {
		var request RequestBankingData
		if err := request.Contract(true).ReadFrom(req); err != nil {
			return nil, soap.NewSenderFault("%s", err)
		}
		reply, err := service.MessageContractRequestReply(ctx, request)
		if err != nil {
			return nil, err
		}
		return reply.Contract(wrapped, false).BodyElements()
	}
}
