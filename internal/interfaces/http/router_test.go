package http

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/qsphere/internal/application/visualization"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/qsphere/internal/infrastructure/render/plotly"
	"github.com/turtacn/qsphere/internal/interfaces/http/handlers"
	"github.com/turtacn/qsphere/internal/interfaces/http/middleware"
)

func newTestRouter(t *testing.T) (http.Handler, prometheus.MetricsCollector) {
	t.Helper()
	c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "qs"}, nil)
	require.NoError(t, err)
	m := prometheus.NewAppMetrics(c)

	svc := visualization.NewService(plotly.NewRenderer(plotly.Options{}), nil, nil, m, nil,
		visualization.Config{WorkDir: t.TempDir()})
	return NewRouter(RouterConfig{
		QSphereHandler:   handlers.NewQSphereHandler(svc, plotly.ContentType, m, nil, 0),
		HealthHandler:    handlers.NewHealthHandler("test"),
		Logger:           logging.NewNopLogger(),
		MetricsCollector: c,
		Metrics:          m,
	}), c
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestNewRouter_Routes(t *testing.T) {
	router, _ := newTestRouter(t)
	bell := `[[0.7071067811865476,0],[0,0],[0,0],[0.7071067811865476,0]]`

	tests := []struct {
		method string
		target string
		body   string
		status int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/readyz", "", http.StatusOK},
		{http.MethodGet, "/healthz/detail", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/api/v1/qsphere", bell, http.StatusOK},
		{http.MethodPost, "/api/v1/qsphere/scene", bell, http.StatusOK},
		{http.MethodGet, "/api/v1/qsphere/presets", "", http.StatusOK},
		{http.MethodGet, "/api/v1/qsphere/presets/bell", "", http.StatusOK},
		{http.MethodGet, "/api/v1/qsphere/presets/bell/scene", "", http.StatusOK},
		{http.MethodGet, "/api/v1/qsphere", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := serve(router, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestNewRouter_RecordsMetrics(t *testing.T) {
	router, c := newTestRouter(t)
	serve(router, http.MethodGet, "/api/v1/qsphere/presets/ghz3", "")
	serve(router, http.MethodPost, "/api/v1/qsphere", "[1, 0, 0]")

	out := serve(c.Handler(), http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(t, out, `qs_renders_total{source="http",status="success"} 1`)
	assert.Contains(t, out, `qs_renders_total{source="http",status="failure"} 1`)
	assert.Contains(t, out, `status="422"`)
}

func TestNewRouter_NilHandlers(t *testing.T) {
	router := NewRouter(RouterConfig{})
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/api/v1/qsphere", "[]").Code)
}

func TestNewRouter_CORSAndRateLimit(t *testing.T) {
	svc := visualization.NewService(plotly.NewRenderer(plotly.Options{}), nil, nil, nil, nil,
		visualization.Config{WorkDir: t.TempDir()})
	limiter := middleware.NewTokenBucketLimiter(0.001, 1, 0)
	router := NewRouter(RouterConfig{
		QSphereHandler: handlers.NewQSphereHandler(svc, plotly.ContentType, nil, nil, 0),
		HealthHandler:  handlers.NewHealthHandler("test"),
		CORS:           middleware.CORSConfig{AllowedOrigins: []string{"http://notebook.local"}},
		RateLimiter:    limiter,
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/qsphere", nil)
	req.Header.Set("Origin", "http://notebook.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "http://notebook.local", rec.Header().Get("Access-Control-Allow-Origin"))

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/qsphere/presets/bell", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "/api/v1/qsphere/presets/bell", "").Code)
	// Health checks are never throttled.
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/healthz", "").Code)
}

func TestServer_RunAndShutdown(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := NewServer(ServerConfig{}, router, nil)
	assert.Equal(t, router, srv.Handler())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	assert.NoError(t, <-done)
}

func TestServer_StartBadAddress(t *testing.T) {
	srv := NewServer(ServerConfig{Addr: "256.0.0.1:bad"}, http.NotFoundHandler(), nil)
	assert.Error(t, srv.Start())
}

//Personal.AI order the ending
