package handlers

import (
	"bytes"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/qsphere/internal/application/visualization"
	"github.com/turtacn/qsphere/internal/domain/scene"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/qsphere/internal/infrastructure/render/sceneio"
	"github.com/turtacn/qsphere/pkg/errors"
	"github.com/turtacn/qsphere/pkg/types/quantum"
)

// DefaultMaxBodySize caps state documents when the handler is built with a
// non-positive limit.
const DefaultMaxBodySize int64 = 8 << 20

// QSphereHandler renders posted or preset state vectors.
type QSphereHandler struct {
	svc         visualization.Service
	contentType string
	metrics     *prometheus.AppMetrics
	logger      logging.Logger
	maxBodySize int64
}

// NewQSphereHandler creates a QSphereHandler.  contentType is sent with
// rendered documents.
func NewQSphereHandler(
	svc visualization.Service,
	contentType string,
	metrics *prometheus.AppMetrics,
	logger logging.Logger,
	maxBodySize int64,
) *QSphereHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	return &QSphereHandler{
		svc:         svc,
		contentType: contentType,
		metrics:     metrics,
		logger:      logger.Named("qsphere_handler"),
		maxBodySize: maxBodySize,
	}
}

// PresetList is the response for GET /presets.
type PresetList struct {
	Presets []string `json:"presets"`
}

// Render handles POST /api/v1/qsphere.
func (h *QSphereHandler) Render(w http.ResponseWriter, r *http.Request) {
	sv, err := h.readState(w, r)
	if err != nil {
		h.fail(w, err, time.Now())
		return
	}
	h.document(w, r, sv)
}

// Scene handles POST /api/v1/qsphere/scene.  The format query parameter
// selects json (default) or msgpack.
func (h *QSphereHandler) Scene(w http.ResponseWriter, r *http.Request) {
	sv, err := h.readState(w, r)
	if err != nil {
		h.fail(w, err, time.Now())
		return
	}
	h.scene(w, r, sv)
}

// ListPresets handles GET /api/v1/qsphere/presets.
func (h *QSphereHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PresetList{Presets: quantum.PresetNames()})
}

// RenderPreset handles GET /api/v1/qsphere/presets/{name}.
func (h *QSphereHandler) RenderPreset(w http.ResponseWriter, r *http.Request) {
	sv, err := preset(chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, err, time.Now())
		return
	}
	h.document(w, r, sv)
}

// PresetScene handles GET /api/v1/qsphere/presets/{name}/scene.
func (h *QSphereHandler) PresetScene(w http.ResponseWriter, r *http.Request) {
	sv, err := preset(chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, err, time.Now())
		return
	}
	h.scene(w, r, sv)
}

func (h *QSphereHandler) document(w http.ResponseWriter, r *http.Request, sv quantum.StateSource) {
	start := time.Now()
	sc, err := h.svc.BuildScene(r.Context(), sv, r.URL.Query().Get("id"))
	if err != nil {
		h.fail(w, err, start)
		return
	}
	var buf bytes.Buffer
	if err := h.svc.WriteDocument(&buf, sc); err != nil {
		h.fail(w, err, start)
		return
	}
	h.succeed(w, h.contentType, sc, &buf, start)
}

func (h *QSphereHandler) scene(w http.ResponseWriter, r *http.Request, sv quantum.StateSource) {
	start := time.Now()
	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(sceneio.FormatJSON)
	}
	enc, err := sceneio.NewEncoder(format)
	if err != nil {
		h.fail(w, err, start)
		return
	}
	sc, err := h.svc.BuildScene(r.Context(), sv, r.URL.Query().Get("id"))
	if err != nil {
		h.fail(w, err, start)
		return
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, sc); err != nil {
		h.fail(w, err, start)
		return
	}
	h.succeed(w, enc.ContentType(), sc, &buf, start)
}

func (h *QSphereHandler) succeed(w http.ResponseWriter, contentType string, sc *scene.Scene, buf *bytes.Buffer, start time.Time) {
	prometheus.RecordRender(h.metrics, visualization.SourceHTTP, nil, time.Since(start))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Scene-ID", sc.ID)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("response write failed", logging.Err(err), logging.String(logging.FieldSceneID, sc.ID))
	}
}

func (h *QSphereHandler) fail(w http.ResponseWriter, err error, start time.Time) {
	prometheus.RecordRender(h.metrics, visualization.SourceHTTP, err, time.Since(start))
	h.logger.Debug("render request rejected", logging.Err(err))
	writeAppError(w, err)
}

func (h *QSphereHandler) readState(w http.ResponseWriter, r *http.Request) (*quantum.Statevector, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.Newf(errors.ErrCodeBadRequest, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New(errors.ErrCodeStateEmpty, "request body is empty")
	}
	sv, err := quantum.Parse(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStateParseFailed, "invalid state document")
	}
	return sv, nil
}

func preset(name string) (*quantum.Statevector, error) {
	sv, err := quantum.Preset(name)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStatePresetUnknown, "unknown preset").WithDetail("name=" + name)
	}
	return sv, nil
}

//Personal.AI order the ending
