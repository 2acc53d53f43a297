package prometheus

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppMetrics(t *testing.T) (*AppMetrics, MetricsCollector) {
	c := newTestCollector(t)
	return NewAppMetrics(c), c
}

func TestNewAppMetrics_AllMetricsRegistered(t *testing.T) {
	m, _ := newTestAppMetrics(t)
	require.NotNil(t, m)
	assert.NotNil(t, m.RendersTotal)
	assert.NotNil(t, m.RenderDuration)
	assert.NotNil(t, m.RenderedStates)
	assert.NotNil(t, m.BrowserLaunchFailures)
	assert.NotNil(t, m.PublishTotal)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
}

func TestRecordRender(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordRender(m, "cli", nil, 30*time.Millisecond)
	RecordRender(m, "http", errors.New("boom"), time.Millisecond)

	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_renders_total{source="cli",status="success"} 1`)
	assert.Contains(t, out, `test_unit_renders_total{source="http",status="failure"} 1`)
	assert.Contains(t, out, `test_unit_render_duration_seconds_count{source="cli"} 1`)
}

func TestRecordStates(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordStates(m, 4, 2, 2)
	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_rendered_states{kind="total"} 4`)
	assert.Contains(t, out, `test_unit_rendered_states{kind="arrows"} 2`)
}

func TestRecordBrowserFailureAndPublish(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordBrowserFailure(m)
	RecordPublish(m, nil)
	RecordOutput(m, "html", 1024)
	out := scrapeMetrics(t, c)
	assert.Contains(t, out, "test_unit_browser_launch_failures_total 1")
	assert.Contains(t, out, `test_unit_publish_total{status="success"} 1`)
	assert.Contains(t, out, `test_unit_output_bytes_count{format="html"} 1`)
}

func TestRecordHTTPRequest(t *testing.T) {
	m, c := newTestAppMetrics(t)
	RecordHTTPRequest(m, http.MethodPost, "/api/v1/qsphere", http.StatusOK, 10*time.Millisecond)
	out := scrapeMetrics(t, c)
	assert.Contains(t, out, `test_unit_http_requests_total{method="POST",path="/api/v1/qsphere",status="200"} 1`)
}

func TestRecord_NilMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordRender(nil, "cli", nil, 0)
		RecordStates(nil, 1, 1, 1)
		RecordOutput(nil, "html", 1)
		RecordBrowserFailure(nil)
		RecordPublish(nil, nil)
		RecordHTTPRequest(nil, "GET", "/", 200, 0)
	})
}

//Personal.AI order the ending
