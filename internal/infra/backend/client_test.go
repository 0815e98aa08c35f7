package backend

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Benmwania/ecomart/config"
	domainerrors "github.com/Benmwania/ecomart/internal/domain/errors"
	"github.com/Benmwania/ecomart/internal/domain/gateway"
	"github.com/Benmwania/ecomart/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.Config{
		Backend: &config.BackendConfig{
			BaseURL: server.URL,
			Timeout: 5 * time.Second,
		},
	}, newDiscardLogger())
	require.NoError(t, err)

	return client, server
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestClientAttachesBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))

	ctx := gateway.WithToken(context.Background(), "access-token")
	err := client.do(ctx, http.MethodGet, "/auth/profile/", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-token", gotAuth)
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))

	err := client.do(context.Background(), http.MethodGet, "/products/", nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientMapsBackendErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "error key",
			status:      http.StatusConflict,
			body:        `{"error": "Insufficient stock"}`,
			wantMessage: "Insufficient stock",
		},
		{
			name:        "detail key",
			status:      http.StatusUnauthorized,
			body:        `{"detail": "Authentication credentials were not provided."}`,
			wantMessage: "Authentication credentials were not provided.",
		},
		{
			name:        "message key",
			status:      http.StatusBadRequest,
			body:        `{"message": "Invalid phone number"}`,
			wantMessage: "Invalid phone number",
		},
		{
			name:        "non-json body",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			err := client.do(context.Background(), http.MethodGet, "/orders/cart/", nil, nil, nil)
			require.Error(t, err)

			var backendErr *domainerrors.BackendError
			require.True(t, errors.As(err, &backendErr))
			assert.Equal(t, tt.status, backendErr.HTTPCode())
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, backendErr.Message())
			}
		})
	}
}

func TestDecodeListNormalizesShapes(t *testing.T) {
	t.Parallel()

	type item struct {
		ID int64 `json:"id"`
	}

	tests := []struct {
		name      string
		payload   string
		extraKeys []string
		wantIDs   []int64
		wantCount int
	}{
		{
			name:      "bare array",
			payload:   `[{"id": 1}, {"id": 2}]`,
			wantIDs:   []int64{1, 2},
			wantCount: 2,
		},
		{
			name:      "paginated envelope",
			payload:   `{"count": 42, "next": null, "previous": null, "results": [{"id": 3}]}`,
			wantIDs:   []int64{3},
			wantCount: 42,
		},
		{
			name:      "keyed wrapper",
			payload:   `{"recommended_products": [{"id": 7}, {"id": 8}]}`,
			extraKeys: []string{"recommended_products"},
			wantIDs:   []int64{7, 8},
			wantCount: 2,
		},
		{
			name:      "empty payload",
			payload:   ``,
			wantIDs:   nil,
			wantCount: 0,
		},
		{
			name:      "unknown wrapper yields empty",
			payload:   `{"something_else": [{"id": 9}]}`,
			extraKeys: []string{"recommended_products"},
			wantIDs:   nil,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items, count, err := decodeList[item]([]byte(tt.payload), tt.extraKeys...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)

			var ids []int64
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestClientUnreachableBackend(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	err := client.do(context.Background(), http.MethodGet, "/products/", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrBackendUnavailable))
}
