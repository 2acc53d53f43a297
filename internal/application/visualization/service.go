// Package visualization orchestrates a Q-Sphere render: encode the state,
// build the neutral scene, hand it to a document renderer, write the output
// and optionally export, publish and open it.
package visualization

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/turtacn/qsphere/internal/domain/encoding"
	"github.com/turtacn/qsphere/internal/domain/scene"
	"github.com/turtacn/qsphere/internal/infrastructure/browser"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/qsphere/internal/infrastructure/render/sceneio"
	"github.com/turtacn/qsphere/internal/infrastructure/storage/minio"
	"github.com/turtacn/qsphere/pkg/errors"
	"github.com/turtacn/qsphere/pkg/types/quantum"
)

// DefaultOutputPath is used when RenderOptions.OutputPath is empty.
const DefaultOutputPath = "qsphere_interativa.html"

// Metric label values for the render source.
const (
	SourceAPI   = "api"
	SourceCLI   = "cli"
	SourceHTTP  = "http"
	SourceWatch = "watch"
)

// DocumentRenderer turns a scene into a viewable document.
type DocumentRenderer interface {
	Render(w io.Writer, s *scene.Scene) error
	ContentType() string
	Extension() string
}

// ArtifactPublisher uploads rendered documents.
type ArtifactPublisher interface {
	Publish(ctx context.Context, a *minio.Artifact) (*minio.PublishResult, error)
}

// RenderOptions control a single render.
type RenderOptions struct {
	// AutoOpen launches the default browser on the written file.
	AutoOpen bool
	// OutputPath is overwritten.  Relative paths resolve against the working
	// directory.
	OutputPath string
	// SceneOut additionally writes the neutral scene to this path.
	SceneOut string
	// SceneFormat selects the SceneOut encoding; empty means "guess from the
	// extension, else json".
	SceneFormat string
	// Publish uploads the document through the configured publisher.
	Publish bool
	// SceneID overrides the generated scene ID.
	SceneID string
	// Source labels metrics and logs.
	Source string
}

// DefaultRenderOptions mirror the library entry point: open the browser and
// write qsphere_interativa.html.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{AutoOpen: true, OutputPath: DefaultOutputPath, Source: SourceAPI}
}

// RenderResult describes a completed render.
type RenderResult struct {
	Scene      *scene.Scene         `json:"-"`
	Summary    scene.Summary        `json:"summary"`
	OutputPath string               `json:"output_path"`
	Bytes      int                  `json:"bytes"`
	ScenePath  string               `json:"scene_path,omitempty"`
	Published  *minio.PublishResult `json:"published,omitempty"`
	Opened     bool                 `json:"opened"`
	Warnings   []string             `json:"warnings,omitempty"`
	Duration   time.Duration        `json:"duration"`
}

// Service is the render use case.
type Service interface {
	// Render runs the whole pipeline and writes OutputPath.
	Render(ctx context.Context, source quantum.StateSource, opts RenderOptions) (*RenderResult, error)
	// BuildScene validates and encodes the state without writing anything.
	BuildScene(ctx context.Context, source quantum.StateSource, id string) (*scene.Scene, error)
	// WriteDocument renders s with the configured document renderer.
	WriteDocument(w io.Writer, s *scene.Scene) error
	// WriteScene encodes s in the named scene format.
	WriteScene(w io.Writer, s *scene.Scene, format string) error
}

// Config holds service tunables.
type Config struct {
	Width  int
	Height int
	// NormTolerance is the allowed |sum(p) - 1| before a warning.  Zero
	// disables the check.
	NormTolerance float64
	// WorkDir resolves relative output paths; empty means the process
	// working directory.
	WorkDir string
}

type serviceImpl struct {
	renderer  DocumentRenderer
	launcher  browser.Launcher
	publisher ArtifactPublisher
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
	cfg       Config
}

// NewService wires a render service.  publisher and metrics may be nil; a
// nil launcher never opens anything.
func NewService(
	renderer DocumentRenderer,
	launcher browser.Launcher,
	publisher ArtifactPublisher,
	metrics *prometheus.AppMetrics,
	logger logging.Logger,
	cfg Config,
) Service {
	if launcher == nil {
		launcher = browser.Noop{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		renderer:  renderer,
		launcher:  launcher,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.Named("visualization"),
		cfg:       cfg,
	}
}

func (s *serviceImpl) BuildScene(ctx context.Context, source quantum.StateSource, id string) (*scene.Scene, error) {
	sc, _, err := s.build(ctx, source, id)
	return sc, err
}

func (s *serviceImpl) build(ctx context.Context, source quantum.StateSource, id string) (*scene.Scene, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeTimeout, "render cancelled")
	}
	if source == nil {
		return nil, nil, errors.New(errors.ErrCodeStateEmpty, "no state vector given")
	}
	enc, err := encoding.Encode(source.Data())
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if tol := s.cfg.NormTolerance; tol > 0 && !enc.IsNormalized(tol) {
		total := enc.TotalProbability()
		s.logger.Warn("state vector is not normalized", logging.Float64("total_probability", total))
		warnings = append(warnings, fmt.Sprintf("state is not normalized: total probability %.6f", total))
	}

	sc := scene.Build(enc, scene.Options{ID: id, Width: s.cfg.Width, Height: s.cfg.Height})
	return sc, warnings, nil
}

func (s *serviceImpl) WriteDocument(w io.Writer, sc *scene.Scene) error {
	return s.renderer.Render(w, sc)
}

func (s *serviceImpl) WriteScene(w io.Writer, sc *scene.Scene, format string) error {
	enc, err := sceneio.NewEncoder(format)
	if err != nil {
		return err
	}
	return enc.Encode(w, sc)
}

func (s *serviceImpl) Render(ctx context.Context, source quantum.StateSource, opts RenderOptions) (result *RenderResult, err error) {
	start := time.Now()
	if opts.Source == "" {
		opts.Source = SourceAPI
	}
	defer func() {
		prometheus.RecordRender(s.metrics, opts.Source, err, time.Since(start))
		if err != nil {
			s.logger.WithError(err).Error("render failed", logging.String("source", opts.Source))
		}
	}()

	sc, warnings, err := s.build(ctx, source, opts.SceneID)
	if err != nil {
		return nil, err
	}

	path, err := s.resolve(opts.OutputPath)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, sc); err != nil {
		return nil, err
	}
	if err := writeFile(path, buf.Bytes()); err != nil {
		return nil, err
	}

	sum := sc.Summarize()
	prometheus.RecordOutput(s.metrics, strings.TrimPrefix(s.renderer.Extension(), "."), buf.Len())
	prometheus.RecordStates(s.metrics, sum.States, sum.Arrows, sum.Labels)

	result = &RenderResult{
		Scene:      sc,
		Summary:    sum,
		OutputPath: path,
		Bytes:      buf.Len(),
		Warnings:   warnings,
	}

	if opts.SceneOut != "" {
		if result.ScenePath, err = s.exportScene(sc, opts); err != nil {
			return nil, err
		}
	}

	if opts.Publish {
		if result.Published, err = s.publish(ctx, sc, path, buf.Bytes()); err != nil {
			return nil, err
		}
	}

	if opts.AutoOpen {
		if openErr := s.launcher.Open(ctx, path); openErr != nil {
			prometheus.RecordBrowserFailure(s.metrics)
			s.logger.WithError(openErr).Warn("could not open browser", logging.String(logging.FieldOutputPath, path))
			result.Warnings = append(result.Warnings, "browser launch failed: "+openErr.Error())
		} else {
			result.Opened = true
		}
	}

	result.Duration = time.Since(start)
	s.logger.Info("qsphere rendered",
		logging.String(logging.FieldSceneID, sc.ID),
		logging.String(logging.FieldOutputPath, path),
		logging.Int(logging.FieldQubits, sum.Qubits),
		logging.Int("arrows", sum.Arrows),
		logging.Int("labels", sum.Labels),
		logging.Duration("duration", result.Duration))
	return result, nil
}

func (s *serviceImpl) resolve(output string) (string, error) {
	if output == "" {
		output = DefaultOutputPath
	}
	if filepath.IsAbs(output) {
		return filepath.Clean(output), nil
	}
	if s.cfg.WorkDir != "" {
		return filepath.Join(s.cfg.WorkDir, output), nil
	}
	abs, err := filepath.Abs(output)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeOutputWriteFailed, "failed to resolve output path").
			WithDetail("path=" + output)
	}
	return abs, nil
}

// writeFile replaces path with data.  The parent directory must exist.
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrCodeOutputWriteFailed, "failed to write output").WithDetail("path=" + path)
	}
	return nil
}

func (s *serviceImpl) exportScene(sc *scene.Scene, opts RenderOptions) (string, error) {
	format := opts.SceneFormat
	if format == "" {
		format = string(sceneio.FormatJSON)
		if f, ok := sceneio.FormatFromPath(opts.SceneOut); ok {
			format = string(f)
		}
	}
	enc, err := sceneio.NewEncoder(format)
	if err != nil {
		return "", err
	}
	path, err := s.resolve(opts.SceneOut)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, sc); err != nil {
		return "", err
	}
	if err := writeFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	prometheus.RecordOutput(s.metrics, string(enc.Format()), buf.Len())
	s.logger.Debug("scene exported", logging.String(logging.FieldOutputPath, path), logging.String("format", format))
	return path, nil
}

func (s *serviceImpl) publish(ctx context.Context, sc *scene.Scene, path string, data []byte) (*minio.PublishResult, error) {
	if s.publisher == nil {
		return nil, errors.New(errors.ErrCodeFeatureDisabled, "publishing is not configured")
	}
	res, err := s.publisher.Publish(ctx, &minio.Artifact{
		SceneID:     sc.ID,
		Name:        filepath.Base(path),
		Data:        data,
		ContentType: s.renderer.ContentType(),
		Metadata:    map[string]string{"qubits": fmt.Sprint(sc.Qubits)},
	})
	prometheus.RecordPublish(s.metrics, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

//Personal.AI order the ending
