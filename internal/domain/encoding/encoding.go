// Package encoding maps complex amplitudes to the visual channels of the
// Q-Sphere: probability drives marker size, the sign of the phase picks the
// colour, and two probability thresholds gate arrows and labels.
package encoding

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/qsphere/internal/domain/placement"
	"github.com/turtacn/qsphere/pkg/errors"
)

const (
	// ArrowThreshold: an arrow is drawn only when probability is strictly
	// greater.  Below it the marker is also reduced to EmptyMarkerSize.
	ArrowThreshold = 0.001

	// LabelThreshold: a text label is drawn only when probability is strictly
	// greater.
	LabelThreshold = 0.15

	// MarkerScale and MinMarkerSize give size = max(p·MarkerScale, MinMarkerSize).
	MarkerScale     = 60.0
	MinMarkerSize   = 3.0
	EmptyMarkerSize = 2.0

	// ArrowheadScale multiplies sqrt(p) to size the cone at the arrow tip.
	ArrowheadScale = 0.2
	// ArrowheadLength is the cone direction vector as a fraction of the position.
	ArrowheadLength = 0.12
	// LabelRadius places state labels outside the unit sphere.
	LabelRadius = 1.25
)

// PhaseSign is the binary colour class of an amplitude.
type PhaseSign int

const (
	PhasePositive PhaseSign = iota
	PhaseNegative
)

func (s PhaseSign) String() string {
	if s == PhaseNegative {
		return "negative"
	}
	return "positive"
}

// Colours of the two phase classes and of suppressed states.
const (
	ColorPositive       = "magenta"
	ColorNegative       = "cyan"
	MarkerColorPositive = "rgb(255, 0, 255)"
	MarkerColorNegative = "rgb(0, 200, 255)"
	MarkerColorEmpty    = "rgba(150, 150, 150, 0.2)"
)

// Probability returns |a|².
func Probability(a complex128) float64 {
	return real(a)*real(a) + imag(a)*imag(a)
}

// Phase returns atan2(Im a, Re a) in radians, in (-π, π].
func Phase(a complex128) float64 {
	return math.Atan2(imag(a), real(a))
}

// SignOf classifies a phase.  Zero is positive.
func SignOf(phase float64) PhaseSign {
	if phase >= 0 {
		return PhasePositive
	}
	return PhaseNegative
}

// Color returns the arrow colour for a phase class.
func (s PhaseSign) Color() string {
	if s == PhaseNegative {
		return ColorNegative
	}
	return ColorPositive
}

// MarkerColor returns the marker colour for a phase class.
func (s PhaseSign) MarkerColor() string {
	if s == PhaseNegative {
		return MarkerColorNegative
	}
	return MarkerColorPositive
}

// ShowArrow reports whether a state with probability p gets an arrow.
func ShowArrow(p float64) bool { return p > ArrowThreshold }

// ShowLabel reports whether a state with probability p gets a text label.
func ShowLabel(p float64) bool { return p > LabelThreshold }

// MarkerSize is monotonic in p and never smaller than MinMarkerSize for
// visible states.
func MarkerSize(p float64) float64 {
	if !ShowArrow(p) {
		return EmptyMarkerSize
	}
	return math.Max(p*MarkerScale, MinMarkerSize)
}

// ArrowheadSize is the absolute cone size reference for probability p.
func ArrowheadSize(p float64) float64 {
	return ArrowheadScale * math.Sqrt(p)
}

// QubitCount returns log2(n).  n must be a positive power of two.
func QubitCount(n int) (int, error) {
	if n <= 0 {
		return 0, errors.New(errors.ErrCodeStateEmpty, "state vector has no amplitudes")
	}
	if n&(n-1) != 0 {
		return 0, errors.Newf(errors.ErrCodeStateNotPowerOfTwo, "state vector length %d is not a power of two", n)
	}
	return bits.TrailingZeros(uint(n)), nil
}

// BasisLabel formats i in binary, zero padded to qubits digits.  A zero-qubit
// system (one amplitude) is labelled "0".
func BasisLabel(i, qubits int) string {
	s := strconv.FormatInt(int64(i), 2)
	if len(s) < qubits {
		s = strings.Repeat("0", qubits-len(s)) + s
	}
	return s
}

// Ket wraps a basis label in Dirac notation.
func Ket(label string) string {
	return "|" + label + "⟩"
}

// BasisState is the fully derived view of one amplitude.  It exists only for
// the duration of a render.
type BasisState struct {
	Index       int        `json:"index" msgpack:"index"`
	Label       string     `json:"label" msgpack:"label"`
	Amplitude   complex128 `json:"-" msgpack:"-"`
	Real        float64    `json:"re" msgpack:"re"`
	Imag        float64    `json:"im" msgpack:"im"`
	Probability float64    `json:"probability" msgpack:"probability"`
	Phase       float64    `json:"phase" msgpack:"phase"`
	Position    r3.Vec     `json:"position" msgpack:"position"`
	Sign        PhaseSign  `json:"sign" msgpack:"sign"`
	MarkerSize  float64    `json:"marker_size" msgpack:"marker_size"`
	MarkerColor string     `json:"marker_color" msgpack:"marker_color"`
	ShowArrow   bool       `json:"show_arrow" msgpack:"show_arrow"`
	ShowLabel   bool       `json:"show_label" msgpack:"show_label"`
}

// Ket returns the Dirac label of the state.
func (b BasisState) Ket() string { return Ket(b.Label) }

// HoverText is the detailed description shown when pointing at a marker.
func (b BasisState) HoverText() string {
	return fmt.Sprintf("<b>%s</b><br>Amplitude: %s<br>Prob: %.2f%%<br>Phase: %.3f rad (%.1f°)",
		b.Ket(), FormatAmplitude(b.Amplitude), b.Probability*100, b.Phase, b.Phase*180/math.Pi)
}

// FormatAmplitude renders a complex number as "0.7071+0.0000j".
func FormatAmplitude(a complex128) string {
	return fmt.Sprintf("%.4f%+.4fj", real(a), imag(a))
}

// Encoding is the encoded state vector.
type Encoding struct {
	Qubits int          `json:"qubits" msgpack:"qubits"`
	States []BasisState `json:"states" msgpack:"states"`
}

// Encode validates amplitudes and derives every BasisState.  Amplitudes are
// not required to be normalized.
func Encode(amplitudes []complex128) (*Encoding, error) {
	qubits, err := QubitCount(len(amplitudes))
	if err != nil {
		return nil, err
	}
	for i, a := range amplitudes {
		if cmplx.IsNaN(a) || cmplx.IsInf(a) {
			return nil, errors.Newf(errors.ErrCodeAmplitudeInvalid, "amplitude %d is %v", i, a)
		}
	}
	positions, err := placement.Distribute(len(amplitudes))
	if err != nil {
		return nil, err
	}

	states := make([]BasisState, len(amplitudes))
	for i, a := range amplitudes {
		p := Probability(a)
		phase := Phase(a)
		sign := SignOf(phase)
		color := MarkerColorEmpty
		if ShowArrow(p) {
			color = sign.MarkerColor()
		}
		states[i] = BasisState{
			Index:       i,
			Label:       BasisLabel(i, qubits),
			Amplitude:   a,
			Real:        real(a),
			Imag:        imag(a),
			Probability: p,
			Phase:       phase,
			Position:    positions[i],
			Sign:        sign,
			MarkerSize:  MarkerSize(p),
			MarkerColor: color,
			ShowArrow:   ShowArrow(p),
			ShowLabel:   ShowLabel(p),
		}
	}
	return &Encoding{Qubits: qubits, States: states}, nil
}

// Probabilities returns the per-state probabilities in index order.
func (e *Encoding) Probabilities() []float64 {
	out := make([]float64, len(e.States))
	for i, s := range e.States {
		out[i] = s.Probability
	}
	return out
}

// TotalProbability sums the probabilities; 1 for a normalized input.
func (e *Encoding) TotalProbability() float64 {
	return floats.Sum(e.Probabilities())
}

// IsNormalized reports whether TotalProbability is within tol of 1.
func (e *Encoding) IsNormalized(tol float64) bool {
	return math.Abs(e.TotalProbability()-1) <= tol
}

// Counts reports how many states receive arrows and labels.
func (e *Encoding) Counts() (arrows, labels int) {
	for _, s := range e.States {
		if s.ShowArrow {
			arrows++
		}
		if s.ShowLabel {
			labels++
		}
	}
	return arrows, labels
}

//Personal.AI order the ending
