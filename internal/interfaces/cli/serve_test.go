package cli

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/qsphere/internal/config"
	"github.com/turtacn/qsphere/internal/infrastructure/browser"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/prometheus"
)

func TestRunServer(t *testing.T) {
	c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "qsphere"}, nil)
	require.NoError(t, err)
	rec := &browser.Recorder{}
	cliCtx := &CLIContext{
		Config:    config.Default(),
		Logger:    logging.NewNopLogger(),
		Collector: c,
		Metrics:   prometheus.NewAppMetrics(c),
		deps:      CommandDependencies{Launcher: rec},
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, cliCtx, ln) }()

	resp, err := http.Post(base+"/api/v1/qsphere", "application/json", strings.NewReader(bellDoc))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Q-Sphere - 2 Qubits")

	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Contains(t, string(body), `qsphere_renders_total{source="http",status="success"} 1`)

	assert.Empty(t, rec.Paths())

	cancel()
	assert.NoError(t, <-done)
}

//Personal.AI order the ending
