package ingest

import (
	"fmt"
	"os"
	"strings"
)

// Config carries everything one invocation needs to reach its collaborators.
// It is resolved from the environment at the start of every invocation; there
// is no process-wide cached instance, so overlapping invocations never share
// mutable state.
type Config struct {
	IdentifierParameterName string
	SecretParameterName     string

	VehicleBackend    string
	VehicleAPIBaseURL string

	TimestreamDatabase string
	TimestreamTable    string
}

// LoadConfig reads the invocation configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		IdentifierParameterName: envOr("SECRETS_API_IDENTIFIER_PARAMETER_NAME", "CAR_API_USERNAME"),
		SecretParameterName:     envOr("SECRETS_API_SECRET_PARAMETER_NAME", "CAR_API_PASSWORD"),
		VehicleBackend:          envOr("VEHICLE_BACKEND", "connect"),
		VehicleAPIBaseURL:       os.Getenv("VEHICLE_API_BASE_URL"),
		TimestreamDatabase:      os.Getenv("TIMESTREAM_DATABASE_NAME"),
		TimestreamTable:         os.Getenv("TIMESTREAM_TABLE_NAME"),
	}

	missing := []string{}
	if cfg.VehicleAPIBaseURL == "" {
		missing = append(missing, "VEHICLE_API_BASE_URL")
	}
	if cfg.TimestreamDatabase == "" {
		missing = append(missing, "TIMESTREAM_DATABASE_NAME")
	}
	if cfg.TimestreamTable == "" {
		missing = append(missing, "TIMESTREAM_TABLE_NAME")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
