package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"elektron/internal/model"

	"go.uber.org/zap"
)

// Defaults for the hvakosterstrommen.no price API.
const (
	DefaultBaseURL = "https://www.hvakosterstrommen.no"
	DefaultZone    = "NO2"
)

// Clock supplies the current local time used to derive the day-file path.
type Clock func() time.Time

// SpotPriceClient fetches hourly spot prices from hvakosterstrommen.no.
// The upstream publishes one JSON file per zone and civil day under
// /api/v1/prices/{YYYY}/{MM}-{DD}_{zone}.json.
type SpotPriceClient struct {
	BaseURL string
	Zone    string
	Now     Clock
	Client  *http.Client

	logger *zap.Logger
}

// NewSpotPriceClient creates a client for the hvakosterstrommen.no API.
// An empty baseURL or zone falls back to DefaultBaseURL or DefaultZone;
// a nil clock falls back to the system clock.
func NewSpotPriceClient(baseURL, zone string, clock Clock) *SpotPriceClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if zone == "" {
		zone = DefaultZone
	}
	if clock == nil {
		clock = time.Now
	}
	return &SpotPriceClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Zone:    zone,
		Now:     clock,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: zap.L(),
	}
}

// ErrorKind classifies spot price fetch failures.
type ErrorKind string

const (
	KindTransport ErrorKind = "TRANSPORT"
	KindStatus    ErrorKind = "STATUS"
	KindDecode    ErrorKind = "DECODE"
)

// SpotPriceError represents a failed price fetch.
type SpotPriceError struct {
	Kind       ErrorKind
	StatusCode int // set when Kind is KindStatus
	Message    string
}

func (e *SpotPriceError) Error() string {
	return e.Message
}

// FetchToday fetches the hourly prices for the current civil date, as seen
// by the client's clock, in its zone. The whole call is bounded by the HTTP
// client timeout; there are no retries. The response body must be a single
// JSON array of records; anything else fails with KindDecode.
func (c *SpotPriceClient) FetchToday(ctx context.Context) ([]model.PriceRecord, error) {
	now := c.Now()
	url := fmt.Sprintf("%s/api/v1/prices/%d/%02d-%02d_%s.json",
		c.BaseURL, now.Year(), int(now.Month()), now.Day(), c.Zone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &SpotPriceError{
			Kind:    KindTransport,
			Message: fmt.Sprintf("failed to create request: %v", err),
		}
	}

	c.logger.Debug("spot price request",
		zap.String("url", url),
		zap.String("zone", c.Zone))

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error("spot price request failed",
			zap.Error(err),
			zap.Duration("duration", duration))
		return nil, &SpotPriceError{
			Kind:    KindTransport,
			Message: err.Error(),
		}
	}
	defer resp.Body.Close()

	c.logger.Debug("spot price response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SpotPriceError{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("upstream returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("reading spot price response failed", zap.Error(err))
		return nil, &SpotPriceError{
			Kind:    KindTransport,
			Message: fmt.Sprintf("failed to read response: %v", err),
		}
	}

	var records []model.PriceRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		c.logger.Error("decoding spot price response failed", zap.Error(err))
		return nil, &SpotPriceError{
			Kind:    KindDecode,
			Message: fmt.Sprintf("failed to decode response: %v", err),
		}
	}
	// json.Unmarshal leaves the slice nil for a JSON null without reporting
	// an error; the day file is always an array.
	if records == nil {
		c.logger.Error("spot price response is not a JSON array")
		return nil, &SpotPriceError{
			Kind:    KindDecode,
			Message: "failed to decode response: expected a JSON array of price records",
		}
	}

	c.logger.Info("spot prices fetched",
		zap.Int("records", len(records)),
		zap.String("zone", c.Zone),
		zap.Duration("duration", duration))

	return records, nil
}
