package scene

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/qsphere/internal/domain/encoding"
	"github.com/turtacn/qsphere/internal/domain/placement"
)

// Fixed geometry of the reference frame.
const (
	Longitudes      = 20
	LatitudeSamples = 12
	AxisLength      = 1.3
	AxisLabelRadius = 1.45
	AxisRange       = 1.6

	DefaultWidth  = 1400
	DefaultHeight = 1100
)

const (
	wireframeColor = "rgba(100, 100, 120, 0.6)"
	labelFont      = "Courier New, monospace"
	axisFont       = "Arial Black"
)

// Options tune a build.  The zero value is usable.
type Options struct {
	// ID overrides the generated scene ID.
	ID     string
	Width  int
	Height int
}

type axis struct {
	name     string
	unit     r3.Vec
	line     string
	posColor string
	negColor string
}

var axes = []axis{
	{"X", r3.Vec{X: 1}, "rgba(200, 50, 50, 0.7)", "rgb(200, 50, 50)", "rgb(150, 30, 30)"},
	{"Y", r3.Vec{Y: 1}, "rgba(50, 200, 50, 0.7)", "rgb(50, 200, 50)", "rgb(30, 150, 30)"},
	{"Z", r3.Vec{Z: 1}, "rgba(50, 50, 200, 0.7)", "rgb(50, 50, 200)", "rgb(30, 30, 150)"},
}

// Build assembles the scene for an encoded state.  Draw order is: sphere
// wireframe, axes, arrows with arrowheads, the state markers, the origin.
func Build(enc *encoding.Encoding, opts Options) *Scene {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	s := &Scene{
		ID:     opts.ID,
		Qubits: enc.Qubits,
		States: enc.States,
	}
	s.Primitives = append(s.Primitives, wireframe()...)
	s.Primitives = append(s.Primitives, axisPrimitives()...)
	s.Primitives = append(s.Primitives, arrows(enc.States)...)
	s.Primitives = append(s.Primitives, stateMarkers(enc.States), origin())

	s.Annotations = append(stateLabels(enc.States), axisLabels()...)
	s.Layout = layout(enc.Qubits, opts)
	return s
}

func span(n int, lo, hi float64) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

func onSphere(polar, azimuth float64) r3.Vec {
	return r3.Vec{
		X: math.Sin(polar) * math.Cos(azimuth),
		Y: math.Sin(polar) * math.Sin(azimuth),
		Z: math.Cos(polar),
	}
}

// wireframe draws Longitudes meridians and LatitudeSamples-2 parallels; the
// two pole samples are skipped for parallels since they collapse to points.
func wireframe() []Primitive {
	u := span(Longitudes, 0, 2*math.Pi)
	v := span(LatitudeSamples, 0, math.Pi)

	out := make([]Primitive, 0, len(u)+len(v)-2)
	for _, az := range u {
		pts := make([]r3.Vec, len(v))
		for i, pol := range v {
			pts[i] = onSphere(pol, az)
		}
		out = append(out, wireLine(pts))
	}
	for _, pol := range v[1 : len(v)-1] {
		pts := make([]r3.Vec, len(u))
		for i, az := range u {
			pts[i] = onSphere(pol, az)
		}
		out = append(out, wireLine(pts))
	}
	return out
}

func wireLine(pts []r3.Vec) Primitive {
	return Primitive{
		Kind: KindLine,
		Role: RoleWireframe,
		Line: &Line{Points: pts, Color: wireframeColor, Width: 2, Opacity: 0.8},
	}
}

func axisPrimitives() []Primitive {
	out := make([]Primitive, 0, 2*len(axes))
	for _, a := range axes {
		tip := r3.Scale(AxisLength, a.unit)
		out = append(out,
			Primitive{
				Kind: KindLine,
				Role: RoleAxis,
				Line: &Line{Points: []r3.Vec{r3.Scale(-1, tip), tip}, Color: a.line, Width: 4, Opacity: 1},
			},
			Primitive{
				Kind: KindPoints,
				Role: RoleAxisEnd,
				Points: &Points{
					Positions:   []r3.Vec{tip, r3.Scale(-1, tip)},
					Sizes:       []float64{8, 8},
					Colors:      []string{a.posColor, a.negColor},
					HoverText:   []string{"Axis +" + a.name, "Axis -" + a.name},
					Symbol:      "circle",
					Opacity:     1,
					BorderColor: "white",
					BorderWidth: 1,
				},
			})
	}
	return out
}

func arrows(states []encoding.BasisState) []Primitive {
	var out []Primitive
	for _, st := range states {
		if !st.ShowArrow {
			continue
		}
		color := st.Sign.Color()
		out = append(out,
			Primitive{
				Kind: KindLine,
				Role: RoleArrow,
				Line: &Line{Points: []r3.Vec{{}, st.Position}, Color: color, Width: 6, Opacity: 0.7},
			},
			Primitive{
				Kind: KindCone,
				Role: RoleArrowhead,
				Cone: &Cone{
					Anchor:    st.Position,
					Direction: r3.Scale(encoding.ArrowheadLength, st.Position),
					Color:     color,
					SizeRef:   encoding.ArrowheadSize(st.Probability),
				},
			})
	}
	return out
}

// stateMarkers is one marker set covering every basis state, including the
// ones below the arrow threshold (drawn small and nearly transparent).
func stateMarkers(states []encoding.BasisState) Primitive {
	p := &Points{
		Positions:   make([]r3.Vec, len(states)),
		Sizes:       make([]float64, len(states)),
		Colors:      make([]string, len(states)),
		HoverText:   make([]string, len(states)),
		Symbol:      "circle",
		Opacity:     0.95,
		BorderColor: "white",
		BorderWidth: 2,
		ShowText:    true,
	}
	for i, st := range states {
		p.Positions[i] = st.Position
		p.Sizes[i] = st.MarkerSize
		p.Colors[i] = st.MarkerColor
		p.HoverText[i] = st.HoverText()
	}
	return Primitive{Kind: KindPoints, Role: RoleStates, Points: p}
}

func origin() Primitive {
	return Primitive{
		Kind: KindPoints,
		Role: RoleOrigin,
		Points: &Points{
			Positions:   []r3.Vec{{}},
			Sizes:       []float64{10},
			Colors:      []string{"black"},
			HoverText:   []string{"<b>Origin (0,0,0)</b>"},
			Symbol:      "diamond",
			Opacity:     1,
			BorderColor: "white",
			BorderWidth: 2,
		},
	}
}

func stateLabels(states []encoding.BasisState) []Text {
	var out []Text
	for _, st := range states {
		if !st.ShowLabel {
			continue
		}
		out = append(out, Text{
			Role:        RoleStateLabel,
			Position:    placement.Radial(st.Position, encoding.LabelRadius),
			Text:        st.Ket(),
			FontSize:    14,
			FontColor:   "black",
			FontFamily:  labelFont,
			Bold:        true,
			Background:  "rgba(255,255,255,0.85)",
			BorderColor: st.MarkerColor,
			BorderWidth: 2,
			BorderPad:   4,
		})
	}
	return out
}

func axisLabels() []Text {
	out := make([]Text, 0, 2*len(axes))
	for _, a := range axes {
		out = append(out,
			Text{
				Role:        RoleAxisLabel,
				Position:    r3.Scale(AxisLabelRadius, a.unit),
				Text:        "+" + a.name,
				FontSize:    18,
				FontColor:   a.posColor,
				FontFamily:  axisFont,
				Bold:        true,
				Background:  "rgba(255,255,255,0.9)",
				BorderColor: a.posColor,
				BorderWidth: 2,
				BorderPad:   3,
			},
			Text{
				Role:        RoleAxisLabel,
				Position:    r3.Scale(-AxisLabelRadius, a.unit),
				Text:        "-" + a.name,
				FontSize:    16,
				FontColor:   a.negColor,
				FontFamily:  axisFont,
				Bold:        true,
				Background:  "rgba(255,255,255,0.85)",
				BorderColor: a.negColor,
				BorderWidth: 2,
				BorderPad:   3,
			})
	}
	return out
}

// Title returns the heading for a system of the given size.
func Title(qubits int) string {
	suffix := "s"
	if qubits == 1 {
		suffix = ""
	}
	return fmt.Sprintf("Q-Sphere - %d Qubit%s", qubits, suffix)
}

func layout(qubits int, opts Options) Layout {
	return Layout{
		Title: Title(qubits),
		Subtitle: "Drag to rotate | Scroll to zoom | Hover for details | " +
			"Magenta = phase (+) | Cyan = phase (-)",
		Width:     opts.Width,
		Height:    opts.Height,
		AxisRange: AxisRange,
		Camera: Camera{
			Eye:    r3.Vec{X: 0.85, Y: 0.85, Z: 0.7},
			Center: r3.Vec{},
		},
		Background: "white",
	}
}

//Personal.AI order the ending
