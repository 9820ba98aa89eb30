package ingest

import (
	"io"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/timestreamwrite"
	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	logrus.SetOutput(io.Discard)

	os.Exit(m.Run())
}

// fakeParameterGetter serves canned vault parameters and records every name
// requested.
type fakeParameterGetter struct {
	parameters map[string]string
	err        error
	requested  []string
}

func (f *fakeParameterGetter) GetParameterWithContext(ctx aws.Context, input *ssm.GetParameterInput, opts ...request.Option) (*ssm.GetParameterOutput, error) {
	name := aws.StringValue(input.Name)
	f.requested = append(f.requested, name)

	if f.err != nil {
		return nil, f.err
	}

	value, ok := f.parameters[name]
	if !ok {
		return nil, awserr.New(ssm.ErrCodeParameterNotFound, "parameter not found", nil)
	}

	return &ssm.GetParameterOutput{
		Parameter: &ssm.Parameter{
			Name:  aws.String(name),
			Value: aws.String(value),
		},
	}, nil
}

// fakeRecordWriter captures the write input and returns a canned error.
type fakeRecordWriter struct {
	err    error
	inputs []*timestreamwrite.WriteRecordsInput
}

func (f *fakeRecordWriter) WriteRecordsWithContext(ctx aws.Context, input *timestreamwrite.WriteRecordsInput, opts ...request.Option) (*timestreamwrite.WriteRecordsOutput, error) {
	f.inputs = append(f.inputs, input)

	if f.err != nil {
		return nil, f.err
	}
	return &timestreamwrite.WriteRecordsOutput{}, nil
}

func floatPtr(value float64) *float64 { return &value }

func stringPtr(value string) *string { return &value }

func boolPtr(value bool) *bool { return &value }
