package placement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/qsphere/pkg/errors"
)

func TestDistribute_UnitVectors(t *testing.T) {
	for q := 0; q <= 10; q++ {
		n := 1 << q
		pts, err := Distribute(n)
		require.NoError(t, err)
		require.Len(t, pts, n)
		for i, p := range pts {
			assert.InDelta(t, 1.0, r3.Norm(p), 1e-12, "n=%d i=%d", n, i)
		}
	}
}

func TestPosition_Deterministic(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 64} {
		for i := 0; i < n; i++ {
			assert.Equal(t, Position(i, n), Position(i, n))
		}
	}
}

func TestPosition_KnownValues(t *testing.T) {
	// N=2: phi_0 = acos(0.5) = π/3, theta_0 = 0.
	p := Position(0, 2)
	assert.InDelta(t, math.Sin(math.Pi/3), p.X, 1e-12)
	assert.InDelta(t, 0.0, p.Y, 1e-12)
	assert.InDelta(t, 0.5, p.Z, 1e-12)

	// N=2, i=1: phi = acos(-0.5) = 2π/3.
	q := Position(1, 2)
	theta := 2 * math.Pi / GoldenRatio
	assert.InDelta(t, math.Sin(2*math.Pi/3)*math.Cos(theta), q.X, 1e-12)
	assert.InDelta(t, math.Sin(2*math.Pi/3)*math.Sin(theta), q.Y, 1e-12)
	assert.InDelta(t, -0.5, q.Z, 1e-12)

	// A single point sits on the equator.
	s := Position(0, 1)
	assert.InDelta(t, 0.0, s.Z, 1e-12)
	assert.InDelta(t, 1.0, s.X, 1e-12)
}

func TestPosition_ZDescendsWithIndex(t *testing.T) {
	pts, err := Distribute(16)
	require.NoError(t, err)
	for i := 1; i < len(pts); i++ {
		assert.Less(t, pts[i].Z, pts[i-1].Z)
	}
}

func TestDistribute_InvalidCount(t *testing.T) {
	for _, n := range []int{0, -4} {
		_, err := Distribute(n)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeStateEmpty))
	}
}

func TestGoldenRatio(t *testing.T) {
	assert.InDelta(t, 1.6180339887, GoldenRatio, 1e-9)
}

func TestRadial(t *testing.T) {
	p := Position(3, 8)
	r := Radial(p, 1.25)
	assert.InDelta(t, 1.25, r3.Norm(r), 1e-12)
	assert.InDelta(t, p.X*1.25, r.X, 1e-12)

	zero := Radial(r3.Vec{}, 2)
	assert.Equal(t, r3.Vec{}, zero)
}

//Personal.AI order the ending
