package prometheus

import (
	"strconv"
	"time"
)

// Label values for renders_total.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// AppMetrics holds the metrics of a render process.
type AppMetrics struct {
	// Render layer
	RendersTotal          CounterVec
	RenderDuration        HistogramVec
	RenderedStates        GaugeVec
	BrowserLaunchFailures CounterVec
	PublishTotal          CounterVec
	OutputBytes           HistogramVec

	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec
}

// NewAppMetrics registers every metric on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		RendersTotal: collector.RegisterCounter("renders_total",
			"Q-Sphere renders by input source and outcome", "source", "status"),
		RenderDuration: collector.RegisterHistogram("render_duration_seconds",
			"Time spent turning a state vector into an output document", nil, "source"),
		RenderedStates: collector.RegisterGauge("rendered_states",
			"Basis states of the last render by kind (total, arrows, labels)", "kind"),
		BrowserLaunchFailures: collector.RegisterCounter("browser_launch_failures_total",
			"Failed attempts to open the rendered document in a browser"),
		PublishTotal: collector.RegisterCounter("publish_total",
			"Uploads of rendered documents to object storage", "status"),
		OutputBytes: collector.RegisterHistogram("output_bytes",
			"Size of rendered documents",
			[]float64{64 << 10, 128 << 10, 256 << 10, 512 << 10, 1 << 20, 4 << 20}, "format"),

		HTTPRequestsTotal: collector.RegisterCounter("http_requests_total",
			"HTTP requests by method, route and status", "method", "path", "status"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds",
			"HTTP request latency", nil, "method", "path"),
		HTTPActiveRequests: collector.RegisterGauge("http_active_requests",
			"In-flight HTTP requests"),
	}
}

// RecordRender updates the render counters for one attempt.
func RecordRender(m *AppMetrics, source string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	m.RendersTotal.WithLabelValues(source, status).Inc()
	m.RenderDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordStates publishes the shape of the last rendered scene.
func RecordStates(m *AppMetrics, total, arrows, labels int) {
	if m == nil {
		return
	}
	m.RenderedStates.WithLabelValues("total").Set(float64(total))
	m.RenderedStates.WithLabelValues("arrows").Set(float64(arrows))
	m.RenderedStates.WithLabelValues("labels").Set(float64(labels))
}

// RecordOutput observes the size of a written document.
func RecordOutput(m *AppMetrics, format string, size int) {
	if m == nil {
		return
	}
	m.OutputBytes.WithLabelValues(format).Observe(float64(size))
}

// RecordBrowserFailure counts a failed browser launch.
func RecordBrowserFailure(m *AppMetrics) {
	if m == nil {
		return
	}
	m.BrowserLaunchFailures.WithLabelValues().Inc()
}

// RecordPublish counts an upload attempt.
func RecordPublish(m *AppMetrics, err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	m.PublishTotal.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records a served request.
func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

//Personal.AI order the ending
