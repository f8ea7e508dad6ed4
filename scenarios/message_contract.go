package scenarios

import (
	"context"
	"time"

	"github.com/ceidion/wcf/soap"
	"github.com/ceidion/wcf/wcfservice"
)

const (
	wrapperName               = wcfservice.ReplyWrapperName
	wrapperNamespace          = wcfservice.ReplyWrapperNamespace
	dateElementName           = wcfservice.DateElementName
	transactionElementName    = wcfservice.TransactionElementName
	customerElementName       = wcfservice.CustomerElementName
	customerElementNamespace  = wcfservice.CustomerElementNamespace
	customerElementValue      = "Michael Jordan"
	transactionElementValue   = int32(500)
	messageContractRequestDay = 1
)

// replyRecorder keeps the last reply that passed through the channel, before the proxy
// deserializes it.
type replyRecorder struct {
	reply *soap.Message
}

func (r *replyRecorder) BeforeSendRequest(*soap.Message) error { return nil }

func (r *replyRecorder) AfterReceiveReply(reply *soap.Message) error {
	r.reply = reply
	return nil
}

// SetupMessageContractTests sends a banking request to the basic HTTP endpoint at address
// and returns a reader over the body of the raw reply. isWrapped selects which reply shape
// the service is asked for.
func SetupMessageContractTests(
	address string,
	isWrapped bool,
	factorySettings ...func(*soap.ChannelFactory),
) (*soap.Reader, error) {
	endpoint, err := soap.NewEndpointAddress(address)
	if err != nil {
		return nil, err
	}
	recorder := &replyRecorder{}
	factory := soap.NewChannelFactory(soap.NewBasicHTTPBinding(), endpoint, soap.WithInspector(recorder))
	for _, settings := range factorySettings {
		settings(factory)
	}
	defer func() { _ = factory.Close() }()

	client, err := wcfservice.NewClient(factory)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	request := wcfservice.RequestBankingData{
		TransactionDate: time.Date(2015, time.December, messageContractRequestDay, 0, 0, 0, 0, time.UTC),
		Amount:          transactionElementValue,
		CustomerName:    customerElementValue,
	}
	if isWrapped {
		_, err = client.MessageContractRequestReply(ctx, request)
	} else {
		_, err = client.MessageContractRequestReplyNotWrapped(ctx, request)
	}
	if err != nil {
		return nil, err
	}
	return recorder.reply.ReaderAtBodyContents(), nil
}
