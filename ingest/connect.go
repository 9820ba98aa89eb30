package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const kelvinOffset = 273.15

// connectClient talks to the "connect" brand backend: password-grant token
// auth followed by a single status read for the account's vehicle.
type connectClient struct {
	baseURL *url.URL
	stack   *httpStack
}

func newConnectClient(base string) (*connectClient, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle API base URL %q: %v", base, err)
	}

	return &connectClient{
		baseURL: parsed,
		stack:   newHTTPStack(),
	}, nil
}

func (c *connectClient) endpoint(path string) string {
	u := *c.baseURL
	u.Path = path
	return u.String()
}

type connectTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate exchanges the account credentials for a bearer token.
func (c *connectClient) Authenticate(ctx context.Context, identifier, secret string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{
		"grant_type": "password",
		"username":   identifier,
		"password":   secret,
	})
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, "POST", c.endpoint("/auth/token"), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.stack.send(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusBadRequest,
		response.StatusCode == http.StatusUnauthorized,
		response.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrAuthentication, response.Status)
	case response.StatusCode < 200 || response.StatusCode >= 300:
		return nil, fmt.Errorf("%w: %s", ErrBackendUnreachable, response.Status)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}

	token := connectTokenResponse{}
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("%w: token response: %v", ErrBackendRejected, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response has no access token", ErrBackendRejected)
	}

	tokenType := token.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &Session{AccessToken: token.AccessToken, TokenType: tokenType}, nil
}

type connectStatusResponse struct {
	VIN           string     `json:"vin"`
	CapturedAt    *time.Time `json:"captured_at"`
	OdometerKm    *float64   `json:"odometer_km"`
	StateOfCharge *string    `json:"state_of_charge"`
	Charging      *struct {
		State   *string  `json:"state"`
		PowerKW *float64 `json:"power_kw"`
	} `json:"charging"`
	DoorsLocked         *bool    `json:"doors_locked"`
	ConnectionState     *string  `json:"connection_state"`
	OutsideTemperatureK *float64 `json:"outside_temperature_k"`
	Position            *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"position"`
}

// FetchStatus retrieves the latest reported status for the account's vehicle.
func (c *connectClient) FetchStatus(ctx context.Context, session *Session) (*Snapshot, error) {
	request, err := http.NewRequestWithContext(ctx, "GET", c.endpoint("/v1/vehicle/status"), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", fmt.Sprintf("%s %s", session.TokenType, session.AccessToken))

	response, err := c.stack.send(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusTooManyRequests || response.StatusCode >= 500:
		return nil, fmt.Errorf("%w: %s", ErrBackendUnreachable, response.Status)
	case response.StatusCode < 200 || response.StatusCode >= 300:
		return nil, fmt.Errorf("%w: %s", ErrBackendRejected, response.Status)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}

	status := connectStatusResponse{}
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("%w: status response: %v", ErrBackendRejected, err)
	}

	return snapshotFromConnectStatus(&status), nil
}

// snapshotFromConnectStatus normalizes the brand's quirks: percent values
// reported as "80%" strings, outside temperature in Kelvin, and a
// connection-state word instead of a boolean.
func snapshotFromConnectStatus(status *connectStatusResponse) *Snapshot {
	snapshot := &Snapshot{
		VIN:        status.VIN,
		OdometerKm: status.OdometerKm,
	}

	if status.CapturedAt != nil {
		snapshot.CapturedAt = *status.CapturedAt
	}
	if status.StateOfCharge != nil {
		snapshot.StateOfChargePct = parsePercent(*status.StateOfCharge)
	}
	if status.Charging != nil {
		snapshot.ChargingState = status.Charging.State
		snapshot.ChargingPowerKW = status.Charging.PowerKW
	}
	snapshot.IsLocked = status.DoorsLocked
	if status.ConnectionState != nil {
		online := strings.EqualFold(*status.ConnectionState, "online")
		snapshot.IsOnline = &online
	}
	if status.OutsideTemperatureK != nil {
		celsius := *status.OutsideTemperatureK - kelvinOffset
		snapshot.OutsideTempC = &celsius
	}
	if status.Position != nil {
		snapshot.Latitude = status.Position.Latitude
		snapshot.Longitude = status.Position.Longitude
	}

	return snapshot
}

// parsePercent accepts "80%", "80", or "80.5" and returns nil for anything
// else. An unparsable value stays absent rather than becoming zero.
func parsePercent(raw string) *float64 {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), "%")
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &value
}
