package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"

	"courtnotify/internal/types"
)

// DataClient talks to the data-management service for context the
// notification core cannot derive from the request itself: location names
// and flat-file publication payloads. Failures surface as upstream errors
// (bad gateway); the bounded retry lives in BaseClient, not in callers.
type DataClient struct {
	base    *BaseClient
	baseURL string
	logger  *slog.Logger
}

// DataClientConfig holds the configuration for creating a DataClient.
type DataClientConfig struct {
	BaseURL string
	Logger  *slog.Logger
}

// NewDataClient creates a DataClient with a fresh BaseClient.
func NewDataClient(httpClient *http.Client, cfg DataClientConfig) *DataClient {
	base := NewBaseClient(
		httpClient,
		"data-management",
		DefaultRetryPolicy(),
		"CourtNotify/1.0",
	)
	return NewDataClientWithBase(base, cfg)
}

// NewDataClientWithBase creates a DataClient around a pre-configured
// BaseClient.
func NewDataClientWithBase(base *BaseClient, cfg DataClientConfig) *DataClient {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DataClient{
		base:    base,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:  logger,
	}
}

// GetLocation resolves the venue metadata for a location id.
func (c *DataClient) GetLocation(ctx context.Context, locationID string) (*types.Location, error) {
	url := fmt.Sprintf("%s/locations/%s", c.baseURL, locationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "building location request", err)
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamData,
			fmt.Sprintf("data-management returned %d for location %s", resp.StatusCode, locationID),
			nil,
		)
	}

	var loc types.Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamData, "decoding location response", err)
	}
	return &loc, nil
}

// GetArtefactPayload fetches the raw publication bytes for an artefact.
// Payloads may arrive gzip-encoded; they are transparently decompressed so
// callers always receive the plain bytes. The result is attached to
// flat-file subscription emails as-is.
func (c *DataClient) GetArtefactPayload(ctx context.Context, artefactID string) ([]byte, error) {
	url := fmt.Sprintf("%s/publication/%s/payload", c.baseURL, artefactID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "building payload request", err)
	}
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, types.NewAppError(
			types.ErrCodeUpstreamData,
			fmt.Sprintf("data-management returned %d for artefact %s payload", resp.StatusCode, artefactID),
			nil,
		)
	}

	var reader io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, types.NewAppError(types.ErrCodeUpstreamData, "opening gzip payload", err)
		}
		defer gz.Close()
		reader = gz
	}

	payload, err := io.ReadAll(reader)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamData, "reading artefact payload", err)
	}
	return types.NormalizeAttachment(payload), nil
}
