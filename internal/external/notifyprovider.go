package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"courtnotify/internal/notify"
	"courtnotify/internal/types"
)

// notifyAPIBase is the default delivery provider base URL.
// Overridable in tests via NotifyProviderConfig.BaseURL.
const notifyAPIBase = "https://api.notifications.service.gov.uk"

// sendEmailPath is the provider's email send endpoint.
const sendEmailPath = "/v2/notifications/email"

// NotifyProviderConfig holds the configuration for creating a NotifyProvider.
type NotifyProviderConfig struct {
	APIKey  string
	BaseURL string // Override for testing; defaults to notifyAPIBase
	Logger  *slog.Logger
}

// NotifyProvider implements notify.EmailClient by calling the delivery
// provider's REST API through BaseClient, so sends inherit the platform's
// circuit breaker, bounded 429/5xx retries, and error mapping. Provider-side
// validation failures (bad template, rejected recipient) are returned with
// the provider's message intact; the dispatcher folds them into its own
// taxonomy.
type NotifyProvider struct {
	base    *BaseClient
	apiKey  string
	baseURL string
	logger  *slog.Logger
}

// NewNotifyProvider creates a NotifyProvider with a fresh BaseClient. The
// httpClient's timeout bounds how long a single send may block; a timeout is
// treated like any other provider failure.
func NewNotifyProvider(httpClient *http.Client, cfg NotifyProviderConfig) *NotifyProvider {
	base := NewBaseClient(
		httpClient,
		"notify-provider",
		RetryPolicy{
			MaxRetries: 2,
			MinWait:    500 * time.Millisecond,
			MaxWait:    5 * time.Second,
		},
		"CourtNotify/1.0",
	)
	return NewNotifyProviderWithBase(base, cfg)
}

// NewNotifyProviderWithBase creates a NotifyProvider around a pre-configured
// BaseClient. Useful in tests to disable retries or inject a sleep function.
func NewNotifyProviderWithBase(base *BaseClient, cfg NotifyProviderConfig) *NotifyProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = notifyAPIBase
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &NotifyProvider{
		base:    base,
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// sendEmailRequest is the provider's wire shape. Personalisation values that
// are serialized upload objects are re-inflated so the provider sees a JSON
// object, not a string.
type sendEmailRequest struct {
	TemplateID      string         `json:"template_id"`
	EmailAddress    string         `json:"email_address"`
	Personalisation map[string]any `json:"personalisation,omitempty"`
	Reference       string         `json:"reference"`
}

// sendEmailResponse mirrors the provider's accepted-send body.
type sendEmailResponse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	URI       string `json:"uri"`
}

// providerError mirrors the provider's error body.
type providerError struct {
	StatusCode int `json:"status_code"`
	Errors     []struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	} `json:"errors"`
}

// SendEmail posts one email send to the provider.
//
// Error mapping:
//   - 400/403 -> returned with the provider's message preserved verbatim
//     (caller-correctable; the dispatcher wraps it as a send failure)
//   - 429 -> retried by BaseClient, then upstream_rate_limited
//   - 5xx -> retried by BaseClient, then upstream_unavailable
func (p *NotifyProvider) SendEmail(ctx context.Context, input notify.SendEmailInput) (*notify.SendEmailResponse, error) {
	payload := sendEmailRequest{
		TemplateID:      input.TemplateID,
		EmailAddress:    input.Address,
		Personalisation: inflatePersonalisation(input.Personalisation),
		Reference:       input.Reference,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "serializing send request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+sendEmailPath, bytes.NewReader(body))
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "building send request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		var accepted sendEmailResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&accepted); decodeErr != nil {
			return nil, types.NewAppError(types.ErrCodeUpstreamNotify, "decoding provider response", decodeErr)
		}
		return &notify.SendEmailResponse{
			ID:        accepted.ID,
			Reference: accepted.Reference,
			URI:       accepted.URI,
		}, nil
	}

	// Non-retryable provider rejection: preserve the provider's own words.
	return nil, fmt.Errorf("provider rejected send (%d): %s", resp.StatusCode, readProviderError(resp.Body))
}

// inflatePersonalisation converts the dispatcher's flat string map into the
// provider's mixed-value form, re-inflating serialized upload objects so
// attachments arrive as JSON objects.
func inflatePersonalisation(p notify.Personalisation) map[string]any {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]any, len(p))
	for k, v := range p {
		if strings.HasPrefix(v, "{") {
			var obj map[string]any
			if err := json.Unmarshal([]byte(v), &obj); err == nil {
				if _, isUpload := obj["file"]; isUpload {
					out[k] = obj
					continue
				}
			}
		}
		out[k] = v
	}
	return out
}

// readProviderError extracts the human-readable message from a provider
// error body, falling back to the raw body when the shape is unfamiliar.
func readProviderError(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no error body"
	}

	var pe providerError
	if err := json.Unmarshal(raw, &pe); err == nil && len(pe.Errors) > 0 {
		msgs := make([]string, 0, len(pe.Errors))
		for _, e := range pe.Errors {
			msgs = append(msgs, e.Message)
		}
		return strings.Join(msgs, "; ")
	}
	return string(raw)
}

// Compile-time assertion that NotifyProvider implements notify.EmailClient.
var _ notify.EmailClient = (*NotifyProvider)(nil)
