package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/timestreamwrite"
)

// RecordWriter is the slice of the Timestream write API the sink needs.
// *timestreamwrite.TimestreamWrite satisfies it.
type RecordWriter interface {
	WriteRecordsWithContext(aws.Context, *timestreamwrite.WriteRecordsInput, ...request.Option) (*timestreamwrite.WriteRecordsOutput, error)
}

// Sink appends rows to the destination Timestream table.
type Sink struct {
	client   RecordWriter
	database string
	table    string
}

// NewSink returns a sink writing to the configured table.
func NewSink(client RecordWriter, cfg *Config) *Sink {
	return &Sink{
		client:   client,
		database: cfg.TimestreamDatabase,
		table:    cfg.TimestreamTable,
	}
}

// Write appends exactly one row with a single insert call. There is no local
// retry; the scheduler's redelivery provides at-least-once delivery, and a
// redelivered invocation may therefore append a duplicate
// (vehicle_id, capture_timestamp) row. That duplicate is accepted behavior,
// not a bug.
func (s *Sink) Write(ctx context.Context, row *Row) error {
	measures := measureValues(row)
	if len(measures) == 0 {
		return fmt.Errorf("%w: row carries no measure values", ErrSinkRejected)
	}

	record := &timestreamwrite.Record{
		Dimensions: []*timestreamwrite.Dimension{
			{Name: aws.String("vehicle_id"), Value: aws.String(row.VehicleID)},
		},
		MeasureName:      aws.String("vehicle_status"),
		MeasureValueType: aws.String(timestreamwrite.MeasureValueTypeMulti),
		MeasureValues:    measures,
		Time:             aws.String(strconv.FormatInt(row.CapturedAt.UnixMilli(), 10)),
		TimeUnit:         aws.String(timestreamwrite.TimeUnitMilliseconds),
	}

	_, err := s.client.WriteRecordsWithContext(ctx, &timestreamwrite.WriteRecordsInput{
		DatabaseName: aws.String(s.database),
		TableName:    aws.String(s.table),
		Records:      []*timestreamwrite.Record{record},
	})
	if err != nil {
		return classifySinkError(err)
	}

	return nil
}

// measureValues builds one measure per non-nil column. A nil column is
// omitted entirely, which is how a multi-measure record expresses null.
func measureValues(row *Row) []*timestreamwrite.MeasureValue {
	values := []*timestreamwrite.MeasureValue{}

	appendDouble := func(name string, value *float64) {
		if value == nil {
			return
		}
		values = append(values, &timestreamwrite.MeasureValue{
			Name:  aws.String(name),
			Value: aws.String(strconv.FormatFloat(*value, 'f', -1, 64)),
			Type:  aws.String(timestreamwrite.MeasureValueTypeDouble),
		})
	}
	appendBool := func(name string, value *bool) {
		if value == nil {
			return
		}
		values = append(values, &timestreamwrite.MeasureValue{
			Name:  aws.String(name),
			Value: aws.String(strconv.FormatBool(*value)),
			Type:  aws.String(timestreamwrite.MeasureValueTypeBoolean),
		})
	}

	appendDouble("odometer_km", row.OdometerKm)
	appendDouble("state_of_charge_pct", row.StateOfChargePct)
	if row.ChargingState != nil {
		values = append(values, &timestreamwrite.MeasureValue{
			Name:  aws.String("charging_state"),
			Value: aws.String(*row.ChargingState),
			Type:  aws.String(timestreamwrite.MeasureValueTypeVarchar),
		})
	}
	appendDouble("charging_power_kw", row.ChargingPowerKW)
	appendBool("is_locked", row.IsLocked)
	appendBool("is_online", row.IsOnline)
	appendDouble("outside_temp_c", row.OutsideTempC)
	appendDouble("latitude", row.Latitude)
	appendDouble("longitude", row.Longitude)

	return values
}

func classifySinkError(err error) error {
	var rejected *timestreamwrite.RejectedRecordsException
	if errors.As(err, &rejected) {
		reasons := []string{}
		for _, record := range rejected.RejectedRecords {
			reasons = append(reasons, aws.StringValue(record.Reason))
		}
		if len(reasons) == 0 {
			reasons = append(reasons, rejected.Message())
		}
		return fmt.Errorf("%w: %s", ErrSinkRejected, strings.Join(reasons, "; "))
	}

	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case timestreamwrite.ErrCodeValidationException,
			timestreamwrite.ErrCodeAccessDeniedException,
			timestreamwrite.ErrCodeResourceNotFoundException:
			return fmt.Errorf("%w: %s: %s", ErrSinkRejected, aerr.Code(), aerr.Message())
		}
	}

	return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
}
