package ingest

import "time"

// Snapshot is one point-in-time read of vehicle status, normalized across
// vehicle brands. VIN and CapturedAt are the row identity; everything else is
// best-effort. A field the backend did not report is nil, never a zero value,
// so an absent odometer can not be confused with a vehicle at 0 km.
type Snapshot struct {
	VIN        string
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
