package quantum

import (
	"fmt"
	"math"
	"sort"
)

var presets = map[string]func() *Statevector{
	"zero":     func() *Statevector { return FromReal(1, 0) },
	"one":      func() *Statevector { return FromReal(0, 1) },
	"plus":     func() *Statevector { return FromReal(math.Sqrt2/2, math.Sqrt2/2) },
	"minus":    func() *Statevector { return FromReal(math.Sqrt2/2, -math.Sqrt2/2) },
	"bell":     func() *Statevector { return FromReal(math.Sqrt2/2, 0, 0, math.Sqrt2/2) },
	"ghz3":     func() *Statevector { return GHZ(3) },
	"w3":       func() *Statevector { return W(3) },
	"uniform3": func() *Statevector { return Uniform(3) },
}

// Preset returns a named textbook state.
func Preset(name string) (*Statevector, error) {
	f, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("quantum: unknown preset %q (known: %v)", name, PresetNames())
	}
	return f(), nil
}

// PresetNames lists the registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GHZ returns (|0…0⟩ + |1…1⟩)/√2 on n qubits.
func GHZ(n int) *Statevector {
	data := make([]complex128, 1<<n)
	data[0] = complex(math.Sqrt2/2, 0)
	data[len(data)-1] = complex(math.Sqrt2/2, 0)
	return &Statevector{amplitudes: data}
}

// W returns the n-qubit W state: equal superposition of the one-hot basis
// states.
func W(n int) *Statevector {
	data := make([]complex128, 1<<n)
	amp := complex(1/math.Sqrt(float64(n)), 0)
	for q := 0; q < n; q++ {
		data[1<<q] = amp
	}
	return &Statevector{amplitudes: data}
}

// Uniform returns the equal superposition over all 2^n basis states with
// alternating phase signs, so both colour classes appear.
func Uniform(n int) *Statevector {
	size := 1 << n
	data := make([]complex128, size)
	amp := 1 / math.Sqrt(float64(size))
	for i := range data {
		if i%2 == 1 {
			data[i] = complex(0, -amp)
		} else {
			data[i] = complex(amp, 0)
		}
	}
	return &Statevector{amplitudes: data}
}

//Personal.AI order the ending
