// Package placement distributes basis states on the unit sphere.
//
// Points follow the Fibonacci sphere construction: the azimuth of point i
// advances by 2π/φ (φ the golden ratio) and the polar angle is chosen so that
// every point covers an equal band of surface area.  The result is a
// deterministic, near-uniform layout that depends only on (i, N).
package placement

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/turtacn/qsphere/pkg/errors"
)

// GoldenRatio is (1 + √5) / 2.
var GoldenRatio = (1 + math.Sqrt(5)) / 2

// Position returns the unit vector for index i out of n points.
//
//	theta = 2π·i / φ
//	phi   = acos(1 − 2·(i + 0.5)/n)
//
// n must be positive and 0 <= i < n; callers use Distribute for validated input.
func Position(i, n int) r3.Vec {
	theta := 2 * math.Pi * float64(i) / GoldenRatio
	phi := math.Acos(1 - 2*(float64(i)+0.5)/float64(n))

	sinPhi := math.Sin(phi)
	return r3.Vec{
		X: sinPhi * math.Cos(theta),
		Y: sinPhi * math.Sin(theta),
		Z: math.Cos(phi),
	}
}

// Distribute returns the n index-ordered positions.
func Distribute(n int) ([]r3.Vec, error) {
	if n <= 0 {
		return nil, errors.Newf(errors.ErrCodeStateEmpty, "cannot place %d points", n)
	}
	out := make([]r3.Vec, n)
	for i := range out {
		out[i] = Position(i, n)
	}
	return out, nil
}

// Radial returns p pushed (or pulled) along its own direction to radius r.
// Labels and arrowheads are offset this way so they never sit on the marker.
func Radial(p r3.Vec, r float64) r3.Vec {
	norm := r3.Norm(p)
	if norm == 0 {
		return p
	}
	return r3.Scale(r/norm, p)
}

//Personal.AI order the ending
