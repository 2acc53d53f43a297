// Package plotly renders a scene.Scene as a Plotly figure embedded in a
// standalone HTML page.
package plotly

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/qsphere/internal/domain/scene"
)

// Figure is the JSON document handed to Plotly.newPlot.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Config Config  `json:"config"`
}

// Trace covers the scatter3d and cone attributes used by the Q-Sphere.
type Trace struct {
	Type       string     `json:"type"`
	Name       string     `json:"name,omitempty"`
	Mode       string     `json:"mode,omitempty"`
	X          []float64  `json:"x"`
	Y          []float64  `json:"y"`
	Z          []float64  `json:"z"`
	U          []float64  `json:"u,omitempty"`
	V          []float64  `json:"v,omitempty"`
	W          []float64  `json:"w,omitempty"`
	Line       *LineStyle `json:"line,omitempty"`
	Marker     *Marker    `json:"marker,omitempty"`
	Opacity    float64    `json:"opacity,omitempty"`
	Text       []string   `json:"text,omitempty"`
	HoverText  []string   `json:"hovertext,omitempty"`
	HoverInfo  string     `json:"hoverinfo,omitempty"`
	ShowLegend bool       `json:"showlegend"`
	Colorscale [][2]any   `json:"colorscale,omitempty"`
	ShowScale  *bool      `json:"showscale,omitempty"`
	SizeMode   string     `json:"sizemode,omitempty"`
	SizeRef    float64    `json:"sizeref,omitempty"`
}

type LineStyle struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type Marker struct {
	Size    []float64  `json:"size"`
	Color   []string   `json:"color"`
	Symbol  string     `json:"symbol,omitempty"`
	Opacity float64    `json:"opacity,omitempty"`
	Line    *LineStyle `json:"line,omitempty"`
}

type Font struct {
	Size   int    `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
	Family string `json:"family,omitempty"`
	Weight string `json:"weight,omitempty"`
}

type Title struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Font Font    `json:"font"`
}

type Axis struct {
	ShowBackground bool       `json:"showbackground"`
	ShowTickLabels bool       `json:"showticklabels"`
	ShowGrid       bool       `json:"showgrid"`
	ZeroLine       bool       `json:"zeroline"`
	Title          string     `json:"title"`
	Range          [2]float64 `json:"range"`
}

type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Camera struct {
	Eye    Vec `json:"eye"`
	Center Vec `json:"center"`
}

type Annotation struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	Text        string  `json:"text"`
	ShowArrow   bool    `json:"showarrow"`
	Font        Font    `json:"font"`
	BgColor     string  `json:"bgcolor,omitempty"`
	BorderColor string  `json:"bordercolor,omitempty"`
	BorderWidth float64 `json:"borderwidth,omitempty"`
	BorderPad   float64 `json:"borderpad,omitempty"`
}

type Scene struct {
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	ZAxis       Axis         `json:"zaxis"`
	AspectMode  string       `json:"aspectmode"`
	Camera      Camera       `json:"camera"`
	Annotations []Annotation `json:"annotations"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Layout struct {
	Title        Title  `json:"title"`
	Scene        Scene  `json:"scene"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	ShowLegend   bool   `json:"showlegend"`
	HoverMode    string `json:"hovermode"`
	PlotBGColor  string `json:"plot_bgcolor"`
	PaperBGColor string `json:"paper_bgcolor"`
	Margin       Margin `json:"margin"`
}

type Config struct {
	Responsive  bool `json:"responsive"`
	DisplayLogo bool `json:"displaylogo"`
}

// NewFigure converts s into a Plotly figure.  Primitives keep their order, so
// later traces draw over earlier ones.
func NewFigure(s *scene.Scene) *Figure {
	f := &Figure{
		Data:   make([]Trace, 0, len(s.Primitives)),
		Layout: newLayout(s),
		Config: Config{Responsive: true},
	}
	for _, p := range s.Primitives {
		switch p.Kind {
		case scene.KindLine:
			f.Data = append(f.Data, lineTrace(p))
		case scene.KindPoints:
			f.Data = append(f.Data, pointsTrace(p))
		case scene.KindCone:
			f.Data = append(f.Data, coneTrace(p))
		}
	}
	return f
}

func split(pts []r3.Vec) (x, y, z []float64) {
	x = make([]float64, len(pts))
	y = make([]float64, len(pts))
	z = make([]float64, len(pts))
	for i, p := range pts {
		x[i], y[i], z[i] = p.X, p.Y, p.Z
	}
	return x, y, z
}

func lineTrace(p scene.Primitive) Trace {
	x, y, z := split(p.Line.Points)
	return Trace{
		Type:      "scatter3d",
		Name:      string(p.Role),
		Mode:      "lines",
		X:         x,
		Y:         y,
		Z:         z,
		Line:      &LineStyle{Color: p.Line.Color, Width: p.Line.Width},
		Opacity:   p.Line.Opacity,
		HoverInfo: "skip",
	}
}

func pointsTrace(p scene.Primitive) Trace {
	pts := p.Points
	x, y, z := split(pts.Positions)
	t := Trace{
		Type: "scatter3d",
		Name: string(p.Role),
		Mode: "markers",
		X:    x,
		Y:    y,
		Z:    z,
		Marker: &Marker{
			Size:    pts.Sizes,
			Color:   pts.Colors,
			Symbol:  pts.Symbol,
			Opacity: pts.Opacity,
			Line:    &LineStyle{Color: pts.BorderColor, Width: pts.BorderWidth},
		},
	}
	if pts.ShowText {
		t.Mode = "markers+text"
		t.Text = pts.HoverText
	} else {
		t.HoverText = pts.HoverText
		t.HoverInfo = "text"
	}
	return t
}

func coneTrace(p scene.Primitive) Trace {
	c := p.Cone
	noScale := false
	return Trace{
		Type:       "cone",
		Name:       string(p.Role),
		X:          []float64{c.Anchor.X},
		Y:          []float64{c.Anchor.Y},
		Z:          []float64{c.Anchor.Z},
		U:          []float64{c.Direction.X},
		V:          []float64{c.Direction.Y},
		W:          []float64{c.Direction.Z},
		Colorscale: [][2]any{{0, c.Color}, {1, c.Color}},
		ShowScale:  &noScale,
		SizeMode:   "absolute",
		SizeRef:    c.SizeRef,
		HoverInfo:  "skip",
	}
}

func vec(v r3.Vec) Vec { return Vec{X: v.X, Y: v.Y, Z: v.Z} }

func annotation(t scene.Text) Annotation {
	a := Annotation{
		X:           t.Position.X,
		Y:           t.Position.Y,
		Z:           t.Position.Z,
		Text:        t.Text,
		Font:        Font{Size: t.FontSize, Color: t.FontColor, Family: t.FontFamily},
		BgColor:     t.Background,
		BorderColor: t.BorderColor,
		BorderWidth: t.BorderWidth,
		BorderPad:   t.BorderPad,
	}
	if t.Bold {
		a.Font.Weight = "bold"
	}
	return a
}

func newLayout(s *scene.Scene) Layout {
	l := s.Layout
	axis := Axis{Range: [2]float64{-l.AxisRange, l.AxisRange}}

	annotations := make([]Annotation, len(s.Annotations))
	for i, t := range s.Annotations {
		annotations[i] = annotation(t)
	}

	title := l.Title
	if l.Subtitle != "" {
		title += "<br><sub>" + l.Subtitle + "</sub>"
	}
	return Layout{
		Title: Title{Text: title, X: 0.5, Font: Font{Size: 16}},
		Scene: Scene{
			XAxis:       axis,
			YAxis:       axis,
			ZAxis:       axis,
			AspectMode:  "cube",
			Camera:      Camera{Eye: vec(l.Camera.Eye), Center: vec(l.Camera.Center)},
			Annotations: annotations,
		},
		Width:        l.Width,
		Height:       l.Height,
		HoverMode:    "closest",
		PlotBGColor:  l.Background,
		PaperBGColor: l.Background,
		Margin:       Margin{T: 80},
	}
}

//Personal.AI order the ending
