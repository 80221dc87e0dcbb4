package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/soundcheck/internal/shared"
)

// ProviderConfig configures a single provider client.
type ProviderConfig struct {
	Key        string       // API key or application id; AudioDB falls back to its public test key
	BaseURL    string       // Optional: overrides the provider endpoint (used for testing)
	HTTPClient *http.Client // Optional: defaults to [http.DefaultClient]
	Logger     *log.Logger  // Optional: defaults to a stderr logger
}

func (c ProviderConfig) client() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c ProviderConfig) logger(provider string) *log.Logger {
	l := c.Logger
	if l == nil {
		l = shared.NewLogger(nil)
	}
	return shared.WithLogger(l, "provider", provider)
}

func (c ProviderConfig) baseURL(fallback string) string {
	if c.BaseURL == "" {
		return fallback
	}
	return c.BaseURL
}

// httpDoer is the subset of [http.Client] used by the provider clients.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx response from a provider.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: status %d", e.Provider, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return shared.ErrAPIRequest }

// ProviderError is an error payload returned by a provider with a successful HTTP status.
type ProviderError struct {
	Provider string
	Code     int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s API error %d: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return shared.ErrAPIRequest }

// doRequest performs a GET request and returns the response body.
//
// Transport failures wrap [shared.ErrServiceUnavailable], non-2xx statuses are reported as
// [*StatusError] and blank bodies as [shared.ErrEmptyResponse].
func doRequest(ctx context.Context, client httpDoer, provider, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Provider: provider, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrServiceUnavailable, err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w from %s", shared.ErrEmptyResponse, provider)
	}
	return body, nil
}

// decodeJSON unmarshals body into result, wrapping failures in [shared.ErrMalformedResponse].
func decodeJSON(body []byte, result any) error {
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", shared.ErrMalformedResponse, err)
	}
	return nil
}

// FailureCategory classifies a provider failure for logging.
func FailureCategory(err error) string {
	var statusErr *StatusError
	var providerErr *ProviderError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, shared.ErrMissingCredentials):
		return "configuration"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &providerErr):
		return "provider"
	case errors.Is(err, shared.ErrEmptyResponse):
		return "empty"
	case errors.Is(err, shared.ErrMalformedResponse):
		return "malformed"
	default:
		return "transport"
	}
}

// logFailure records a failed provider call. The caller then returns the empty result.
func logFailure(logger *log.Logger, op string, err error) {
	category := FailureCategory(err)
	switch category {
	case "configuration":
		logger.Error("provider not configured", "op", op, "error", err)
	case "canceled":
		logger.Debug("request canceled", "op", op)
	default:
		logger.Warn("provider call failed", "op", op, "category", category, "error", err)
	}
}
