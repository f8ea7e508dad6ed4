package scenarios

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ceidion/wcf/soap"
	"github.com/ceidion/wcf/wcfservice"
)

// TestTimeout is the deadline for a single service call made by a scenario.
const TestTimeout = 20 * time.Second

const testString = "Hello"

// GenerateStringValue returns a string of the given length cycling through the letters
// starting at 'A'.
func GenerateStringValue(length int) string {
	const firstCharacter = 'A'
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		builder.WriteByte(byte(firstCharacter + i%25))
	}
	return builder.String()
}

// RunBasicEchoTest echoes a short string through a new channel to the address. Failures are
// appended to errorBuilder; the return value reports whether the echo matched.
func RunBasicEchoTest(
	binding *soap.Binding,
	address string,
	variation string,
	errorBuilder *ErrorBuilder,
	factorySettings ...func(*soap.ChannelFactory),
) bool {
	LogInformation("Starting basic echo test.\nTest variation:...\n%s\nUsing address: '%s'", variation, address)

	success := false
	err := withClient(binding, address, factorySettings, func(ctx context.Context, client *wcfservice.Client) error {
		result, err := client.Echo(ctx, testString)
		if err != nil {
			return err
		}
		success = result == testString
		if !success {
			errorBuilder.AppendLine("    Error: expected response from service: '%s' Actual was: '%s'", testString, result)
		}
		return nil
	})
	if err != nil {
		reportException(errorBuilder, variation, err)
	}

	LogInformation("  Result: %s ", passOrFail(success))
	return success
}

// RunComplexEchoTest echoes the composite fixture through a new channel to the address and
// compares every field of the reply.
func RunComplexEchoTest(
	binding *soap.Binding,
	address string,
	variation string,
	errorBuilder *ErrorBuilder,
	factorySettings ...func(*soap.ChannelFactory),
) bool {
	success := false
	err := withClient(binding, address, factorySettings, func(ctx context.Context, client *wcfservice.Client) error {
		compositeObject := NewComplexCompositeFixture()
		result, err := client.EchoComplex(ctx, compositeObject)
		if err != nil {
			return err
		}
		success = compositeObject.Equal(result)
		if !success {
			errorBuilder.AppendLine("    Error: expected response from service: '%s' Actual was: '%s'", compositeObject, result)
		}
		return nil
	})
	if err != nil {
		reportException(errorBuilder, variation, err)
	}
	return success
}

// NewComplexCompositeFixture returns the value used by the complex echo scenarios. It puts
// the extreme value of each numeric kind on the wire.
func NewComplexCompositeFixture() *wcfservice.ComplexCompositeType {
	return &wcfservice.ComplexCompositeType{
		BoolValue:         true,
		ByteArrayValue:    []byte{0x60, 0x61, 0x62},
		CharArrayValue:    []soap.Char{'a', 'b', 'c'},
		CharValue:         'a',
		DateTimeValue:     time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		DayOfWeekValue:    time.Sunday,
		DoubleValue:       3.14159265,
		FloatValue:        2.71828183,
		GuidValue:         uuid.MustParse("EFEA21A0-F59A-4F43-B5D3-B2C667CA6FB6"),
		IntValue:          math.MinInt32,
		LongerStringValue: GenerateStringValue(2048),
		LongValue:         math.MaxInt64,
		SbyteValue:        int8('a'),
		ShortValue:        math.MaxInt16,
		StringValue:       "the quick brown fox jumps over the lazy dog",
		TimeSpanValue:     time.Duration(math.MinInt64),
		UintValue:         math.MaxUint32,
		UlongValue:        math.MaxUint64,
		UshortValue:       math.MaxUint16,
	}
}

func withClient(
	binding *soap.Binding,
	address string,
	factorySettings []func(*soap.ChannelFactory),
	action func(context.Context, *wcfservice.Client) error,
) error {
	endpoint, err := soap.NewEndpointAddress(address)
	if err != nil {
		return err
	}
	factory := soap.NewChannelFactory(binding, endpoint)
	for _, settings := range factorySettings {
		if settings != nil {
			settings(factory)
		}
	}
	defer func() { _ = factory.Close() }()

	client, err := wcfservice.NewClient(factory)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	return action(ctx, client)
}

func reportException(errorBuilder *ErrorBuilder, variation string, err error) {
	LogInformation("    %s", err)
	errorBuilder.AppendLine("    Error: Unexpected exception was caught while doing the basic echo test for variation...\n'%s'\nException: %+v",
		variation, err)
}

func passOrFail(success bool) string {
	if success {
		return "PASS"
	}
	return "FAIL"
}
