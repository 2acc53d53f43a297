package plotly

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/qsphere/internal/domain/encoding"
	"github.com/turtacn/qsphere/internal/domain/scene"
	apperrors "github.com/turtacn/qsphere/pkg/errors"
)

func bellScene(t *testing.T) *scene.Scene {
	t.Helper()
	h := complex(1/math.Sqrt2, 0)
	enc, err := encoding.Encode([]complex128{h, 0, 0, h})
	require.NoError(t, err)
	return scene.Build(enc, scene.Options{ID: "bell"})
}

func tracesOf(f *Figure, typ, mode string) []Trace {
	var out []Trace
	for _, tr := range f.Data {
		if tr.Type == typ && (mode == "" || tr.Mode == mode) {
			out = append(out, tr)
		}
	}
	return out
}

func TestNewFigure_TracePerPrimitive(t *testing.T) {
	s := bellScene(t)
	f := NewFigure(s)
	require.Len(t, f.Data, len(s.Primitives))

	assert.Len(t, tracesOf(f, "cone", ""), 2)
	assert.Len(t, tracesOf(f, "scatter3d", "markers+text"), 1)
	// 30 wireframe + 3 axes + 2 arrows
	assert.Len(t, tracesOf(f, "scatter3d", "lines"), 35)
}

func TestNewFigure_Cone(t *testing.T) {
	s := bellScene(t)
	cone := tracesOf(NewFigure(s), "cone", "")[0]
	pos := s.States[0].Position

	assert.Equal(t, []float64{pos.X}, cone.X)
	assert.InDelta(t, pos.Z*0.12, cone.W[0], 1e-12)
	assert.Equal(t, "absolute", cone.SizeMode)
	assert.InDelta(t, 0.2*math.Sqrt(0.5), cone.SizeRef, 1e-12)
	assert.Equal(t, encoding.ColorPositive, cone.Colorscale[0][1])
	require.NotNil(t, cone.ShowScale)
	assert.False(t, *cone.ShowScale)
}

func TestNewFigure_StateMarkers(t *testing.T) {
	s := bellScene(t)
	markers := tracesOf(NewFigure(s), "scatter3d", "markers+text")[0]
	require.Len(t, markers.Text, 4)
	assert.Empty(t, markers.HoverText)
	assert.Equal(t, encoding.MarkerColorPositive, markers.Marker.Color[0])
	assert.Equal(t, encoding.EmptyMarkerSize, markers.Marker.Size[1])
}

func TestNewFigure_Layout(t *testing.T) {
	f := NewFigure(bellScene(t))
	l := f.Layout
	assert.Equal(t, [2]float64{-1.6, 1.6}, l.Scene.XAxis.Range)
	assert.Equal(t, "cube", l.Scene.AspectMode)
	assert.Equal(t, Vec{X: 0.85, Y: 0.85, Z: 0.7}, l.Scene.Camera.Eye)
	assert.Equal(t, 1400, l.Width)
	assert.Equal(t, 1100, l.Height)
	assert.True(t, strings.HasPrefix(l.Title.Text, "Q-Sphere - 2 Qubits<br><sub>"))
	require.Len(t, l.Scene.Annotations, 8)
	assert.Equal(t, "|00⟩", l.Scene.Annotations[0].Text)
	assert.Equal(t, "bold", l.Scene.Annotations[0].Font.Weight)
	assert.False(t, l.Scene.Annotations[0].ShowArrow)
}

func TestNewFigure_JSONShape(t *testing.T) {
	raw, err := json.Marshal(NewFigure(bellScene(t)))
	require.NoError(t, err)

	var doc struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, tr := range doc.Data {
		assert.Equal(t, false, tr["showlegend"])
		_, hasScale := tr["showscale"]
		assert.Equal(t, tr["type"] == "cone", hasScale)
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(Options{Version: "test"})
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, bellScene(t)))

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<script src="`+DefaultPlotlyURL+`"`)
	assert.Contains(t, html, `<div id="qsphere-bell"`)
	assert.Contains(t, html, "<title>Q-Sphere - 2 Qubits</title>")
	assert.Contains(t, html, "Plotly.newPlot(")
	assert.Contains(t, html, `"scatter3d"`)
	assert.Contains(t, html, `"cone"`)
	assert.Contains(t, html, "width: 1400px")
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestRenderer_CustomCDN(t *testing.T) {
	r := NewRenderer(Options{PlotlyURL: "https://example.org/plotly.js"})
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, bellScene(t)))
	assert.Contains(t, buf.String(), `src="https://example.org/plotly.js"`)
	assert.Equal(t, ContentType, r.ContentType())
	assert.Equal(t, ".html", r.Extension())
}

func TestRenderer_NilScene(t *testing.T) {
	err := NewRenderer(Options{}).Render(&bytes.Buffer{}, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSceneEncodeFailed))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderer_WriteFailure(t *testing.T) {
	err := NewRenderer(Options{}).Render(failingWriter{}, bellScene(t))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeOutputWriteFailed))
}

//Personal.AI order the ending
