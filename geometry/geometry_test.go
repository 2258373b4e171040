package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	points := [][2]float64{{0, 0}, {3.5, -2}, {10, 10}, {1e6, 1e-6}}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p[0], p[1], p[0], p[1]))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	cases := [][4]float64{
		{0, 0, 3, 4},
		{2, 3, 7, 7},
		{-1.5, 8, 9.25, -3},
	}
	for _, c := range cases {
		assert.Equal(t, Distance(c[0], c[1], c[2], c[3]), Distance(c[2], c[3], c[0], c[1]))
	}
}

func TestDistance_MatchesFormula(t *testing.T) {
	assert.Equal(t, 5.0, Distance(0, 0, 3, 4))

	ax, ay, bx, by := 2.0, 3.0, 5.0, 2.0
	want := math.Sqrt((ax-bx)*(ax-bx) + (ay-by)*(ay-by))
	assert.Equal(t, want, Distance(ax, ay, bx, by))
}
