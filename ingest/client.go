package ingest

import (
	"context"
	"fmt"
)

// Session is an authenticated session with the vehicle backend. The token is
// opaque; it lives for one invocation and is never stored.
type Session struct {
	AccessToken string
	TokenType   string
}

// StatusClient is the capability a vehicle backend must provide. Each vehicle
// brand gets its own implementation behind this interface; the rest of the
// pipeline never branches on brand.
type StatusClient interface {
	Authenticate(ctx context.Context, identifier, secret string) (*Session, error)
	FetchStatus(ctx context.Context, session *Session) (*Snapshot, error)
}

// NewStatusClient returns the client for the configured vehicle backend.
func NewStatusClient(cfg *Config) (StatusClient, error) {
	switch cfg.VehicleBackend {
	case "connect":
		return newConnectClient(cfg.VehicleAPIBaseURL)
	default:
		return nil, fmt.Errorf("unknown vehicle backend %q", cfg.VehicleBackend)
	}
}
