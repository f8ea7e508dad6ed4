package wcfservice

import (
	"github.com/ceidion/wcf/soap"
)

// ContractName is the name of the service contract all operations belong to.
const ContractName = "IWcfService"

const (
	// ReplyWrapperName and ReplyWrapperNamespace name the element that encloses the body of
	// a wrapped ReplyBankingData message.
	ReplyWrapperName      = "CustomWrapperName"
	ReplyWrapperNamespace = "http://www.contoso.com"

	DateElementName             = "Date_of_Request"
	DateElementNamespace        = "http://www.contoso.com"
	TransactionElementName      = "Transaction_Amount"
	TransactionElementNamespace = "http://www.contoso.com"
	CustomerElementName         = "Customer_Name"
	CustomerElementNamespace    = "http://www.contoso.com"

	requestWrapperName = "RequestBankingData"
)

var (
	EchoOperation        = operation("Echo")
	EchoComplexOperation = operation("EchoComplex")

	MessageContractRequestReplyOperation           = operation("MessageContractRequestReply")
	MessageContractRequestReplyNotWrappedOperation = operation("MessageContractRequestReplyNotWrapped")
)

func operation(name string) soap.Operation {
	return soap.Operation{
		ContractNamespace: soap.DefaultContractNamespace,
		ContractName:      ContractName,
		Name:              name,
	}
}

// Contract returns the message contract of the request. When writing, pass a value; when
// reading, pass the pointer that will be filled in.
func (r *RequestBankingData) Contract(reading bool) soap.MessageContract {
	var date, amount, customer interface{} = r.TransactionDate, r.Amount, r.CustomerName
	if reading {
		date, amount, customer = &r.TransactionDate, &r.Amount, &r.CustomerName
	}
	return soap.MessageContract{
		WrapperName:      requestWrapperName,
		WrapperNamespace: soap.DefaultContractNamespace,
		IsWrapped:        true,
		Members: []soap.BodyMember{
			{Name: CustomerElementName, Namespace: CustomerElementNamespace, Order: 3, Value: customer},
			{Name: DateElementName, Namespace: DateElementNamespace, Order: 1, Value: date},
			{Name: TransactionElementName, Namespace: TransactionElementNamespace, Order: 2, Value: amount},
		},
	}
}

// Contract returns the message contract of the reply, wrapped or not.
func (r *ReplyBankingData) Contract(wrapped, reading bool) soap.MessageContract {
	var date, amount, customer interface{} = r.TransactionDate, r.Amount, r.CustomerName
	if reading {
		date, amount, customer = &r.TransactionDate, &r.Amount, &r.CustomerName
	}
	// Serialization order comes from Order, not from declaration order.
	return soap.MessageContract{
		WrapperName:      ReplyWrapperName,
		WrapperNamespace: ReplyWrapperNamespace,
		IsWrapped:        wrapped,
		Members: []soap.BodyMember{
			{Name: CustomerElementName, Namespace: CustomerElementNamespace, Order: 3, Value: customer},
			{Name: TransactionElementName, Namespace: TransactionElementNamespace, Order: 2, Value: amount},
			{Name: DateElementName, Namespace: DateElementNamespace, Order: 1, Value: date},
		},
	}
}
