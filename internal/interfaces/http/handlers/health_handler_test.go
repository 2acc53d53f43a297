package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler("0.1.0")
	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp LivenessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "0.1.0", resp.Version)
}

func TestHealthHandler_ReadinessNoCheckers(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler("v").Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready"`)
}

func TestHealthHandler_ReadinessFailingChecker(t *testing.T) {
	h := NewHealthHandler("v",
		NewChecker("renderer", func(context.Context) error { return nil }),
		NewChecker("storage", func(context.Context) error { return assert.AnError }),
	)
	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "healthy", resp.Components["renderer"].Status)
	assert.Equal(t, "unhealthy", resp.Components["storage"].Status)
	assert.Equal(t, assert.AnError.Error(), resp.Components["storage"].Error)
}

func TestHealthHandler_Detailed(t *testing.T) {
	h := NewHealthHandler("v", NewChecker("storage", func(context.Context) error { return nil }))
	rec := httptest.NewRecorder()
	h.Detailed(rec, httptest.NewRequest(http.MethodGet, "/healthz/detail", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)
	assert.Contains(t, rec.Body.String(), `"storage"`)
}

//Personal.AI order the ending
