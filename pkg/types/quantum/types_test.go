package quantum

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PairArray(t *testing.T) {
	sv, err := Parse([]byte(`[[0.70710678, 0], [0, 0], [0, 0], [0, 0.70710678]]`))
	require.NoError(t, err)
	require.Equal(t, 4, sv.Len())
	assert.Equal(t, complex(0, 0.70710678), sv.Data()[3])
}

func TestParse_RealNumbers(t *testing.T) {
	sv, err := Parse([]byte(`[1, 0]`))
	require.NoError(t, err)
	assert.Equal(t, []complex128{1, 0}, sv.Data())
}

func TestParse_ObjectDocument(t *testing.T) {
	sv, err := Parse([]byte(`{"amplitudes": [{"re": 0.6, "im": 0}, {"re": 0, "im": -0.8}]}`))
	require.NoError(t, err)
	assert.Equal(t, []complex128{complex(0.6, 0), complex(0, -0.8)}, sv.Data())
}

func TestParse_Invalid(t *testing.T) {
	for _, doc := range []string{`[[1, 2, 3]]`, `["x"]`, `{"amplitudes": 3}`, `nope`} {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestStatevector_JSONRoundTripForm(t *testing.T) {
	sv := NewStatevector(complex(0.6, 0), complex(0, 0.8))
	out, err := json.Marshal(sv)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amplitudes":[{"re":0.6,"im":0},{"re":0,"im":0.8}]}`, string(out))
}

func TestStatevector_DataIsCopy(t *testing.T) {
	sv := FromReal(1, 0)
	d := sv.Data()
	d[0] = 0
	assert.Equal(t, complex(1, 0), sv.Data()[0])
}

func TestStatevector_NilSafe(t *testing.T) {
	var sv *Statevector
	assert.Nil(t, sv.Data())
	assert.Equal(t, 0, sv.Len())
}

func TestStatevector_Normalized(t *testing.T) {
	sv := FromReal(3, 4).Normalized()
	assert.InDelta(t, 1.0, sv.Norm(), 1e-12)
	assert.InDelta(t, 0.6, real(sv.Data()[0]), 1e-12)

	zero := FromReal(0, 0).Normalized()
	assert.Equal(t, []complex128{0, 0}, zero.Data())
}

func TestPresets_AreNormalized(t *testing.T) {
	for _, name := range PresetNames() {
		sv, err := Preset(name)
		require.NoError(t, err, name)
		assert.InDelta(t, 1.0, sv.Norm(), 1e-9, name)
		n := sv.Len()
		assert.Equal(t, 0, n&(n-1), "%s length %d is not a power of two", name, n)
	}
}

func TestPreset_Unknown(t *testing.T) {
	_, err := Preset("cat")
	assert.Error(t, err)
}

func TestGHZ_W(t *testing.T) {
	g := GHZ(3).Data()
	assert.Len(t, g, 8)
	assert.InDelta(t, math.Sqrt2/2, real(g[0]), 1e-12)
	assert.InDelta(t, math.Sqrt2/2, real(g[7]), 1e-12)

	w := W(3).Data()
	for _, idx := range []int{1, 2, 4} {
		assert.InDelta(t, 1/math.Sqrt(3), real(w[idx]), 1e-12)
	}
	assert.Zero(t, w[3])
}

//Personal.AI order the ending
