package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-quiz/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		cache      *MockCache
		wantStatus int
		want       dto.HealthResponse
	}{
		{
			name:       "no cache configured",
			wantStatus: fiber.StatusOK,
			want:       dto.HealthResponse{Status: "ok"},
		},
		{
			name:       "cache reachable",
			cache:      &MockCache{PingFunc: func(ctx context.Context) error { return nil }},
			wantStatus: fiber.StatusOK,
			want:       dto.HealthResponse{Status: "ok", Cache: "ok"},
		},
		{
			name:       "cache unreachable",
			cache:      &MockCache{PingFunc: func(ctx context.Context) error { return errors.New("connection refused") }},
			wantStatus: fiber.StatusServiceUnavailable,
			want:       dto.HealthResponse{Status: "degraded", Cache: "unreachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupApp(&MockQuizService{}, nil)
			if tt.cache != nil {
				app = setupApp(&MockQuizService{}, tt.cache)
			}

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body dto.HealthResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.want, body)
		})
	}
}
