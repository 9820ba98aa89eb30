package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/timestreamwrite"
	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"

	"github.com/voltlog/vehicle-status-ingest/ingest"
)

// handleScheduledEvent runs one ingestion cycle. The event payload is opaque;
// only the fact of the invocation matters. All clients are built inside the
// invocation, so nothing is shared with an overlapping invocation. Returning a
// non-nil error is the failure signal the scheduler acts on; its redelivery
// may run this again and append a duplicate row, which the sink documents as
// accepted behavior.
func handleScheduledEvent(ctx context.Context, event events.CloudWatchEvent) error {
	log := logrus.WithField("invocation_id", ksuid.New().String())

	cfg, err := ingest.LoadConfig()
	if err != nil {
		log.WithError(err).Error("configuration incomplete")
		return err
	}

	sess, err := session.NewSession()
	if err != nil {
		log.WithError(err).Error("AWS session setup failed")
		return err
	}

	return runIngestion(ctx, log, cfg, ssm.New(sess), timestreamwrite.New(sess))
}

// runIngestion sequences one cycle: credentials, session, status, row, write.
// The first failure short-circuits the rest; no partial row is ever written.
func runIngestion(ctx context.Context, log *logrus.Entry, cfg *ingest.Config, params ingest.ParameterGetter, writer ingest.RecordWriter) error {
	credentials, err := ingest.ResolveCredentials(ctx, params, cfg)
	if err != nil {
		log.WithError(err).Error("credential resolution failed")
		return err
	}
	log.Info("credentials resolved")

	client, err := ingest.NewStatusClient(cfg)
	if err != nil {
		log.WithError(err).Error("vehicle backend selection failed")
		return err
	}

	vehicleSession, err := client.Authenticate(ctx, credentials.Identifier, credentials.Secret)
	if err != nil {
		log.WithError(err).Error("vehicle backend authentication failed")
		return err
	}
	log.Info("session established")

	snapshot, err := client.FetchStatus(ctx, vehicleSession)
	if err != nil {
		log.WithError(err).Error("status fetch failed")
		return err
	}
	log.WithField("vin", snapshot.VIN).Info("status fetched")

	row, err := ingest.MapRow(snapshot)
	if err != nil {
		log.WithError(err).Error("row mapping failed")
		return err
	}

	if err := ingest.NewSink(writer, cfg).Write(ctx, row); err != nil {
		log.WithError(err).Error("row write failed")
		return err
	}
	log.WithFields(logrus.Fields{
		"vehicle_id":        row.VehicleID,
		"capture_timestamp": row.CapturedAt,
	}).Info("row written")

	return nil
}
