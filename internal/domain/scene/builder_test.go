package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/qsphere/internal/domain/encoding"
)

func encode(t *testing.T, amps ...complex128) *encoding.Encoding {
	t.Helper()
	enc, err := encoding.Encode(amps)
	require.NoError(t, err)
	return enc
}

func bell(t *testing.T) *Scene {
	h := complex(1/math.Sqrt2, 0)
	return Build(encode(t, h, 0, 0, h), Options{ID: "bell"})
}

func TestBuild_Defaults(t *testing.T) {
	s := Build(encode(t, 1, 0), Options{})
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, DefaultWidth, s.Layout.Width)
	assert.Equal(t, DefaultHeight, s.Layout.Height)
	assert.Equal(t, AxisRange, s.Layout.AxisRange)
	assert.Equal(t, r3.Vec{X: 0.85, Y: 0.85, Z: 0.7}, s.Layout.Camera.Eye)

	other := Build(encode(t, 1, 0), Options{})
	assert.NotEqual(t, s.ID, other.ID)
}

func TestBuild_Wireframe(t *testing.T) {
	s := bell(t)
	wires := s.ByRole(RoleWireframe)
	require.Len(t, wires, Longitudes+LatitudeSamples-2)
	for _, w := range wires {
		require.Equal(t, KindLine, w.Kind)
		for _, p := range w.Line.Points {
			assert.InDelta(t, 1.0, r3.Norm(p), 1e-12)
		}
	}
	// Meridians run pole to pole.
	first := wires[0].Line.Points
	assert.InDelta(t, 1.0, first[0].Z, 1e-12)
	assert.InDelta(t, -1.0, first[len(first)-1].Z, 1e-12)
}

func TestBuild_AxesAreStateIndependent(t *testing.T) {
	a := bell(t)
	b := Build(encode(t, 1, 0), Options{ID: "zero"})

	assert.Equal(t, a.ByRole(RoleAxis), b.ByRole(RoleAxis))
	assert.Equal(t, a.ByRole(RoleAxisEnd), b.ByRole(RoleAxisEnd))
	assert.Equal(t, a.AnnotationsByRole(RoleAxisLabel), b.AnnotationsByRole(RoleAxisLabel))

	axesLines := a.ByRole(RoleAxis)
	require.Len(t, axesLines, 3)
	assert.InDelta(t, AxisLength, axesLines[0].Line.Points[1].X, 1e-12)
	assert.InDelta(t, -AxisLength, axesLines[2].Line.Points[0].Z, 1e-12)

	labels := a.AnnotationsByRole(RoleAxisLabel)
	require.Len(t, labels, 6)
	texts := make([]string, len(labels))
	for i, l := range labels {
		texts[i] = l.Text
		assert.InDelta(t, AxisLabelRadius, r3.Norm(l.Position), 1e-12)
	}
	assert.Equal(t, []string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}, texts)
}

func TestBuild_BellArrowsAndLabels(t *testing.T) {
	s := bell(t)

	arrowLines := s.ByRole(RoleArrow)
	cones := s.ByRole(RoleArrowhead)
	require.Len(t, arrowLines, 2)
	require.Len(t, cones, 2)

	assert.Equal(t, s.States[0].Position, arrowLines[0].Line.Points[1])
	assert.Equal(t, s.States[3].Position, arrowLines[1].Line.Points[1])
	assert.Equal(t, r3.Vec{}, arrowLines[0].Line.Points[0])
	assert.Equal(t, encoding.ColorPositive, arrowLines[0].Line.Color)

	assert.InDelta(t, 0.2*math.Sqrt(0.5), cones[0].Cone.SizeRef, 1e-12)
	assert.Equal(t, r3.Scale(encoding.ArrowheadLength, s.States[0].Position), cones[0].Cone.Direction)

	labels := s.AnnotationsByRole(RoleStateLabel)
	require.Len(t, labels, 2)
	assert.Equal(t, "|00⟩", labels[0].Text)
	assert.Equal(t, "|11⟩", labels[1].Text)
	assert.InDelta(t, encoding.LabelRadius, r3.Norm(labels[0].Position), 1e-12)
}

func TestBuild_SingleQubit(t *testing.T) {
	s := Build(encode(t, 1, 0), Options{})
	assert.Equal(t, 1, s.Qubits)
	assert.Equal(t, "Q-Sphere - 1 Qubit", s.Layout.Title)
	assert.Len(t, s.ByRole(RoleArrow), 1)
	labels := s.AnnotationsByRole(RoleStateLabel)
	require.Len(t, labels, 1)
	assert.Equal(t, "|0⟩", labels[0].Text)
}

func TestBuild_NegativePhaseColour(t *testing.T) {
	s := Build(encode(t, complex(0, -1), 0), Options{})
	arrow := s.ByRole(RoleArrow)[0]
	assert.Equal(t, encoding.ColorNegative, arrow.Line.Color)
	assert.Equal(t, encoding.ColorNegative, s.ByRole(RoleArrowhead)[0].Cone.Color)
}

func TestBuild_MarkersCoverEveryState(t *testing.T) {
	s := bell(t)
	markers := s.ByRole(RoleStates)
	require.Len(t, markers, 1)
	m := markers[0].Points
	require.Len(t, m.Positions, 4)
	assert.Equal(t, encoding.EmptyMarkerSize, m.Sizes[1])
	assert.Equal(t, encoding.MarkerColorEmpty, m.Colors[2])
	assert.Contains(t, m.HoverText[3], "|11⟩")
	assert.True(t, m.ShowText)

	orig := s.ByRole(RoleOrigin)
	require.Len(t, orig, 1)
	assert.Equal(t, "diamond", orig[0].Points.Symbol)
}

func TestBuild_DrawOrder(t *testing.T) {
	s := bell(t)
	last := s.Primitives[len(s.Primitives)-1]
	assert.Equal(t, RoleOrigin, last.Role)
	assert.Equal(t, RoleStates, s.Primitives[len(s.Primitives)-2].Role)
	assert.Equal(t, RoleWireframe, s.Primitives[0].Role)
}

func TestSummarize(t *testing.T) {
	sum := bell(t).Summarize()
	assert.Equal(t, "bell", sum.ID)
	assert.Equal(t, 2, sum.Qubits)
	assert.Equal(t, 4, sum.States)
	assert.Equal(t, 2, sum.Arrows)
	assert.Equal(t, 2, sum.Labels)
	assert.Equal(t, 8, sum.Annotations)
	assert.InDelta(t, 1.0, sum.TotalProb, 1e-12)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Q-Sphere - 0 Qubits", Title(0))
	assert.Equal(t, "Q-Sphere - 3 Qubits", Title(3))
}

//Personal.AI order the ending
