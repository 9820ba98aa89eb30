package ingest

import (
	"fmt"
	"time"
)

// Charging state vocabulary for the destination table. Backend vocabularies
// drift; anything unrecognized maps to ChargingStateUnknown so a new backend
// term never halts ingestion.
const (
	ChargingStateCharging    = "charging"
	ChargingStateNotCharging = "not_charging"
	ChargingStateComplete    = "complete"
	ChargingStateUnknown     = "unknown"
)

var chargingStateVocabulary = map[string]string{
	"charging":             ChargingStateCharging,
	"fastCharging":         ChargingStateCharging,
	"conservationCharging": ChargingStateCharging,
	"off":                  ChargingStateNotCharging,
	"none":                 ChargingStateNotCharging,
	"notCharging":          ChargingStateNotCharging,
	"readyForCharging":     ChargingStateNotCharging,
	"notReadyForCharging":  ChargingStateNotCharging,
	"chargePurposeReached": ChargingStateComplete,
	"chargingComplete":     ChargingStateComplete,
}

// Row is one record in the destination table. Pointer fields are nullable
// columns; nil survives all the way to the sink as an explicit null.
type Row struct {
	VehicleID  string
	CapturedAt time.Time

	OdometerKm       *float64
	StateOfChargePct *float64
	ChargingState    *string
	ChargingPowerKW  *float64
	IsLocked         *bool
	IsOnline         *bool
	OutsideTempC     *float64
	Latitude         *float64
	Longitude        *float64
}

// MapRow projects a snapshot into the destination schema. It is pure: the
// same snapshot always yields the same row, and the row shares no pointers
// with the snapshot.
func MapRow(snapshot *Snapshot) (*Row, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: no snapshot", ErrMapping)
	}
	if snapshot.VIN == "" {
		return nil, fmt.Errorf("%w: snapshot has no vehicle identifier", ErrMapping)
	}
	if snapshot.CapturedAt.IsZero() {
		return nil, fmt.Errorf("%w: snapshot has no capture timestamp", ErrMapping)
	}

	row := &Row{
		VehicleID:        snapshot.VIN,
		CapturedAt:       snapshot.CapturedAt.UTC(),
		OdometerKm:       copyFloat(snapshot.OdometerKm),
		StateOfChargePct: copyFloat(snapshot.StateOfChargePct),
		ChargingPowerKW:  copyFloat(snapshot.ChargingPowerKW),
		IsLocked:         copyBool(snapshot.IsLocked),
		IsOnline:         copyBool(snapshot.IsOnline),
		OutsideTempC:     copyFloat(snapshot.OutsideTempC),
	}

	if snapshot.ChargingState != nil {
		mapped := mapChargingState(*snapshot.ChargingState)
		row.ChargingState = &mapped
	}

	// Coordinates are only meaningful as a pair. A lone latitude or
	// longitude leaves both columns null.
	if snapshot.Latitude != nil && snapshot.Longitude != nil {
		row.Latitude = copyFloat(snapshot.Latitude)
		row.Longitude = copyFloat(snapshot.Longitude)
	}

	return row, nil
}

func mapChargingState(raw string) string {
	if mapped, ok := chargingStateVocabulary[raw]; ok {
		return mapped
	}
	return ChargingStateUnknown
}

func copyFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func copyBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
