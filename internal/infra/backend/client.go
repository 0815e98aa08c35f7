// Package backend implements the gateway interfaces over the remote
// EcoMart REST API. It owns the single HTTP client, bearer-token
// attachment and the one place where the backend's response envelopes
// are normalized into typed results.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Benmwania/ecomart/config"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/domain/gateway"

	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Client is the single HTTP client for the remote EcoMart API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds the backend client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg.Backend == nil || cfg.Backend.BaseURL == "" {
		return nil, errors.New("backend.baseUrl is required")
	}

	timeout := cfg.Backend.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.Backend.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// do performs one JSON request against the backend. A bearer token
// present in ctx is attached as the Authorization header. Non-2xx
// responses are mapped to domain BackendErrors carrying the backend's
// own error message when one is present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrap(err, "build backend request")
	}
	req.Header.Set("Accept", "application/json")

	if token := gateway.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(domainerrors.ErrBackendUnavailable, err.Error())
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read backend response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", resp.StatusCode),
		)

		return errors.WithStack(domainerrors.NewBackendError(resp.StatusCode, backendMessage(payload), string(payload)))
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrap(err, "decode backend response")
	}

	return nil
}

// backendMessage pulls the human-readable message out of a backend
// error body, trying the envelope keys the API actually uses.
func backendMessage(payload []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return ""
	}

	for _, msg := range []string{envelope.Error, envelope.Detail, envelope.Message} {
		if msg != "" {
			return msg
		}
	}

	return ""
}

// page is the backend's paginated list envelope.
type page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// decodeList accepts either a bare JSON array or the paginated
// envelope and always yields a slice. This is the single place where
// the backend's inconsistent list shapes are normalized; callers never
// see the envelope. extraKeys lists additional wrapper keys some
// endpoints use (e.g. "recommended_products").
func decodeList[T any](payload json.RawMessage, extraKeys ...string) ([]T, int, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, 0, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, 0, errors.Wrap(err, "decode list")
		}

		return items, len(items), nil
	}

	var envelope page[T]
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, 0, errors.Wrap(err, "decode list envelope")
	}
	if envelope.Results != nil {
		return envelope.Results, envelope.Count, nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return nil, 0, errors.Wrap(err, "decode list wrapper")
	}
	for _, key := range extraKeys {
		raw, ok := keyed[key]
		if !ok {
			continue
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, 0, errors.Wrapf(err, "decode %s", key)
		}

		return items, len(items), nil
	}

	return nil, 0, nil
}

// getList fetches a list endpoint and normalizes its shape.
func getList[T any](ctx context.Context, c *Client, path string, query url.Values, extraKeys ...string) ([]T, int, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, 0, err
	}

	return decodeList[T](raw, extraKeys...)
}
