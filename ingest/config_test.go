package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	setRequired := func(t *testing.T) {
		t.Setenv("VEHICLE_API_BASE_URL", "https://vehicle.example.test")
		t.Setenv("TIMESTREAM_DATABASE_NAME", "car_data")
		t.Setenv("TIMESTREAM_TABLE_NAME", "vehicle_status")
	}

	t.Run("defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "CAR_API_USERNAME", cfg.IdentifierParameterName)
		assert.Equal(t, "CAR_API_PASSWORD", cfg.SecretParameterName)
		assert.Equal(t, "connect", cfg.VehicleBackend)
	})

	t.Run("overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("SECRETS_API_IDENTIFIER_PARAMETER_NAME", "/prod/car/user")
		t.Setenv("SECRETS_API_SECRET_PARAMETER_NAME", "/prod/car/pass")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "/prod/car/user", cfg.IdentifierParameterName)
		assert.Equal(t, "/prod/car/pass", cfg.SecretParameterName)
	})

	t.Run("missing required environment", func(t *testing.T) {
		t.Setenv("VEHICLE_API_BASE_URL", "https://vehicle.example.test")
		t.Setenv("TIMESTREAM_DATABASE_NAME", "")
		t.Setenv("TIMESTREAM_TABLE_NAME", "")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "TIMESTREAM_DATABASE_NAME")
	})
}

func TestNewStatusClient(t *testing.T) {
	t.Run("connect backend", func(t *testing.T) {
		client, err := NewStatusClient(&Config{
			VehicleBackend:    "connect",
			VehicleAPIBaseURL: "https://vehicle.example.test",
		})

		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewStatusClient(&Config{VehicleBackend: "teleporter"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "teleporter")
	})
}
