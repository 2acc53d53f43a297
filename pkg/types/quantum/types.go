// Package quantum holds the state-vector types exchanged between the CLI, the
// preview server and the rendering service.
package quantum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// StateSource is the read-only view the renderer consumes: an ordered
// sequence of complex amplitudes of length 2^n.
type StateSource interface {
	Data() []complex128
}

// Amplitude is a complex amplitude with a lenient JSON form.  It decodes from
// a bare number (real part only), a two-element array [re, im] or an object
// {"re": .., "im": ..}, and always encodes as {"re": .., "im": ..}.
type Amplitude complex128

// Complex returns the amplitude as a complex128.
func (a Amplitude) Complex() complex128 { return complex128(a) }

type amplitudeObject struct {
	Re float64 `json:"re" msgpack:"re"`
	Im float64 `json:"im" msgpack:"im"`
}

// MarshalJSON implements json.Marshaler.
func (a Amplitude) MarshalJSON() ([]byte, error) {
	return json.Marshal(amplitudeObject{Re: real(a), Im: imag(a)})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amplitude) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("quantum: empty amplitude")
	}
	switch data[0] {
	case '[':
		var pair []float64
		if err := json.Unmarshal(data, &pair); err != nil {
			return fmt.Errorf("quantum: amplitude pair: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("quantum: amplitude pair must have 2 elements, got %d", len(pair))
		}
		*a = Amplitude(complex(pair[0], pair[1]))
	case '{':
		var obj amplitudeObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("quantum: amplitude object: %w", err)
		}
		*a = Amplitude(complex(obj.Re, obj.Im))
	default:
		var re float64
		if err := json.Unmarshal(data, &re); err != nil {
			return fmt.Errorf("quantum: amplitude number: %w", err)
		}
		*a = Amplitude(complex(re, 0))
	}
	return nil
}

// Statevector is an ordered list of amplitudes.  It is the input collaborator
// of the renderer and is never mutated by it.
type Statevector struct {
	amplitudes []complex128
}

// NewStatevector copies amps into a new Statevector.
func NewStatevector(amps ...complex128) *Statevector {
	data := make([]complex128, len(amps))
	copy(data, amps)
	return &Statevector{amplitudes: data}
}

// FromReal builds a Statevector from real amplitudes.
func FromReal(amps ...float64) *Statevector {
	data := make([]complex128, len(amps))
	for i, v := range amps {
		data[i] = complex(v, 0)
	}
	return &Statevector{amplitudes: data}
}

// Data returns a copy of the amplitudes.
func (s *Statevector) Data() []complex128 {
	if s == nil {
		return nil
	}
	out := make([]complex128, len(s.amplitudes))
	copy(out, s.amplitudes)
	return out
}

// Len returns the number of amplitudes.
func (s *Statevector) Len() int {
	if s == nil {
		return 0
	}
	return len(s.amplitudes)
}

// Norm returns the Euclidean norm of the vector.
func (s *Statevector) Norm() float64 {
	var sum float64
	for _, a := range s.amplitudes {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return math.Sqrt(sum)
}

// Normalized returns a copy scaled to unit norm.  A zero vector is returned
// unchanged.
func (s *Statevector) Normalized() *Statevector {
	n := s.Norm()
	if n == 0 {
		return NewStatevector(s.amplitudes...)
	}
	out := make([]complex128, len(s.amplitudes))
	for i, a := range s.amplitudes {
		out[i] = a / complex(n, 0)
	}
	return &Statevector{amplitudes: out}
}

type statevectorDocument struct {
	Amplitudes []Amplitude `json:"amplitudes"`
}

// MarshalJSON encodes the vector as {"amplitudes": [{"re":..,"im":..}, ...]}.
func (s *Statevector) MarshalJSON() ([]byte, error) {
	doc := statevectorDocument{Amplitudes: make([]Amplitude, len(s.amplitudes))}
	for i, a := range s.amplitudes {
		doc.Amplitudes[i] = Amplitude(a)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON accepts either a bare array of amplitudes or an object with an
// "amplitudes" array.
func (s *Statevector) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var amps []Amplitude
	if len(data) > 0 && data[0] == '{' {
		var doc statevectorDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		amps = doc.Amplitudes
	} else if err := json.Unmarshal(data, &amps); err != nil {
		return err
	}
	s.amplitudes = make([]complex128, len(amps))
	for i, a := range amps {
		s.amplitudes[i] = a.Complex()
	}
	return nil
}

// Parse decodes a JSON state document.
func Parse(data []byte) (*Statevector, error) {
	sv := &Statevector{}
	if err := json.Unmarshal(data, sv); err != nil {
		return nil, fmt.Errorf("quantum: parse state: %w", err)
	}
	return sv, nil
}

//Personal.AI order the ending
