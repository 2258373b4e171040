// Package geometry provides the planar distance shared by the coverage model
// and the renderers.
package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Distance returns the Euclidean distance between (ax, ay) and (bx, by)
func Distance(ax, ay, bx, by float64) float64 {
	return planar.Distance(orb.Point{ax, ay}, orb.Point{bx, by})
}
