// Package scene describes a Q-Sphere as a list of library-neutral draw
// primitives (polylines, marker sets, cones, text).  Adapters under
// internal/infrastructure/render translate a Scene into a concrete output
// format; nothing in this package knows about Plotly or HTML.
package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/qsphere/internal/domain/encoding"
)

// Kind identifies a primitive.
type Kind string

const (
	KindLine   Kind = "line"
	KindPoints Kind = "points"
	KindCone   Kind = "cone"
)

// Role tags what a primitive depicts so adapters and tests can find it
// without relying on draw order.
type Role string

const (
	RoleWireframe  Role = "wireframe"
	RoleAxis       Role = "axis"
	RoleAxisEnd    Role = "axis_end"
	RoleArrow      Role = "arrow"
	RoleArrowhead  Role = "arrowhead"
	RoleStates     Role = "states"
	RoleOrigin     Role = "origin"
	RoleStateLabel Role = "state_label"
	RoleAxisLabel  Role = "axis_label"
)

// Line is an open polyline.
type Line struct {
	Points  []r3.Vec `json:"points" msgpack:"points"`
	Color   string   `json:"color" msgpack:"color"`
	Width   float64  `json:"width" msgpack:"width"`
	Opacity float64  `json:"opacity" msgpack:"opacity"`
}

// Points is a set of markers with per-point size, colour and hover text.
type Points struct {
	Positions   []r3.Vec  `json:"positions" msgpack:"positions"`
	Sizes       []float64 `json:"sizes" msgpack:"sizes"`
	Colors      []string  `json:"colors" msgpack:"colors"`
	HoverText   []string  `json:"hover_text,omitempty" msgpack:"hover_text,omitempty"`
	Symbol      string    `json:"symbol" msgpack:"symbol"`
	Opacity     float64   `json:"opacity" msgpack:"opacity"`
	BorderColor string    `json:"border_color" msgpack:"border_color"`
	BorderWidth float64   `json:"border_width" msgpack:"border_width"`
	// ShowText renders HoverText next to the markers as well.
	ShowText bool `json:"show_text" msgpack:"show_text"`
}

// Cone is an arrowhead anchored at its tip position pointing along Direction.
type Cone struct {
	Anchor    r3.Vec  `json:"anchor" msgpack:"anchor"`
	Direction r3.Vec  `json:"direction" msgpack:"direction"`
	Color     string  `json:"color" msgpack:"color"`
	SizeRef   float64 `json:"size_ref" msgpack:"size_ref"`
}

// Primitive is one draw call.  Exactly one of Line, Points, Cone is set,
// matching Kind.
type Primitive struct {
	Kind   Kind    `json:"kind" msgpack:"kind"`
	Role   Role    `json:"role" msgpack:"role"`
	Line   *Line   `json:"line,omitempty" msgpack:"line,omitempty"`
	Points *Points `json:"points,omitempty" msgpack:"points,omitempty"`
	Cone   *Cone   `json:"cone,omitempty" msgpack:"cone,omitempty"`
}

// Text is a 3D annotation.
type Text struct {
	Role        Role    `json:"role" msgpack:"role"`
	Position    r3.Vec  `json:"position" msgpack:"position"`
	Text        string  `json:"text" msgpack:"text"`
	FontSize    int     `json:"font_size" msgpack:"font_size"`
	FontColor   string  `json:"font_color" msgpack:"font_color"`
	FontFamily  string  `json:"font_family" msgpack:"font_family"`
	Bold        bool    `json:"bold" msgpack:"bold"`
	Background  string  `json:"background" msgpack:"background"`
	BorderColor string  `json:"border_color" msgpack:"border_color"`
	BorderWidth float64 `json:"border_width" msgpack:"border_width"`
	BorderPad   float64 `json:"border_pad" msgpack:"border_pad"`
}

// Camera is the initial viewpoint.
type Camera struct {
	Eye    r3.Vec `json:"eye" msgpack:"eye"`
	Center r3.Vec `json:"center" msgpack:"center"`
}

// Layout holds the view-level options.
type Layout struct {
	Title      string  `json:"title" msgpack:"title"`
	Subtitle   string  `json:"subtitle" msgpack:"subtitle"`
	Width      int     `json:"width" msgpack:"width"`
	Height     int     `json:"height" msgpack:"height"`
	AxisRange  float64 `json:"axis_range" msgpack:"axis_range"`
	Camera     Camera  `json:"camera" msgpack:"camera"`
	Background string  `json:"background" msgpack:"background"`
}

// Scene is the complete, immutable description of one Q-Sphere.
type Scene struct {
	ID          string                `json:"id" msgpack:"id"`
	Qubits      int                   `json:"qubits" msgpack:"qubits"`
	Primitives  []Primitive           `json:"primitives" msgpack:"primitives"`
	Annotations []Text                `json:"annotations" msgpack:"annotations"`
	Layout      Layout                `json:"layout" msgpack:"layout"`
	States      []encoding.BasisState `json:"states" msgpack:"states"`
}

// ByRole returns the primitives tagged with role, in draw order.
func (s *Scene) ByRole(role Role) []Primitive {
	var out []Primitive
	for _, p := range s.Primitives {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// AnnotationsByRole returns the annotations tagged with role.
func (s *Scene) AnnotationsByRole(role Role) []Text {
	var out []Text
	for _, a := range s.Annotations {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out
}

// Summary is a compact description used by the CLI and logs.
type Summary struct {
	ID          string  `json:"id"`
	Qubits      int     `json:"qubits"`
	States      int     `json:"states"`
	Arrows      int     `json:"arrows"`
	Labels      int     `json:"labels"`
	Primitives  int     `json:"primitives"`
	Annotations int     `json:"annotations"`
	TotalProb   float64 `json:"total_probability"`
}

// Summarize computes a Summary.
func (s *Scene) Summarize() Summary {
	sum := Summary{
		ID:          s.ID,
		Qubits:      s.Qubits,
		States:      len(s.States),
		Arrows:      len(s.ByRole(RoleArrow)),
		Labels:      len(s.AnnotationsByRole(RoleStateLabel)),
		Primitives:  len(s.Primitives),
		Annotations: len(s.Annotations),
	}
	for _, st := range s.States {
		sum.TotalProb += st.Probability
	}
	return sum
}

//Personal.AI order the ending
