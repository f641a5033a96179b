// Package section computes the polyline where a cutting plane crosses a
// triangle mesh. The result is a thin wireframe for display, recomputed from
// scratch every refresh; degenerate crossings collapse to harmless
// zero-length or duplicated segments rather than special cases.
package section

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/amphora/pkg/mesh"
)

// DefaultTolerance is the on-plane band for vertex classification.
const DefaultTolerance = 1e-4

// Plane is a cutting plane in Hessian form: points p with Dot(Normal,p) = D.
type Plane struct {
	Normal r3.Vec
	D      float64
}

// PlaneX is the vertical plane x = offset used by the section control.
func PlaneX(offset float64) Plane {
	return Plane{Normal: r3.Vec{X: 1}, D: offset}
}

// Distance is the signed distance from p to the plane; positive on the side
// the normal points toward.
func (pl Plane) Distance(p r3.Vec) float64 {
	return r3.Dot(pl.Normal, p) - pl.D
}

// Polyline is a flat list of points on the cutting plane; consecutive pairs
// form the section's line segments.
type Polyline []r3.Vec

// SegmentCount returns the number of complete segments.
func (p Polyline) SegmentCount() int {
	return len(p) / 2
}

// Flatten packs the polyline into xyz triples for frontend transport.
func (p Polyline) Flatten() []float32 {
	if len(p) == 0 {
		return nil
	}
	out := make([]float32, 0, len(p)*3)
	for _, pt := range p {
		out = append(out, float32(pt.X), float32(pt.Y), float32(pt.Z))
	}
	return out
}

// Intersect computes the section polyline of a mesh against a plane. Each
// triangle is classified by its corners' signed distances: fully coplanar
// triangles contribute all three edges; otherwise every edge crossing the
// tolerance band contributes its intersection points, paired consecutively
// into segments. A mesh that never meets the plane yields an empty polyline,
// as does a nil or unbuilt mesh. Non-positive tol selects DefaultTolerance.
func Intersect(m *mesh.Mesh, pl Plane, tol float64) Polyline {
	if m == nil || m.IsEmpty() {
		return nil
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}

	var out Polyline
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		da, db, dc := pl.Distance(a), pl.Distance(b), pl.Distance(c)

		if math.Abs(da) < tol && math.Abs(db) < tol && math.Abs(dc) < tol {
			// Coplanar: the whole outline lies on the plane.
			out = append(out, a, b, b, c, c, a)
			continue
		}

		var pts []r3.Vec
		pts = crossing(pts, a, b, da, db, tol)
		pts = crossing(pts, b, c, db, dc, tol)
		pts = crossing(pts, c, a, dc, da, tol)
		for i := 0; i+1 < len(pts); i += 2 {
			out = append(out, pts[i], pts[i+1])
		}
	}
	return out
}

// crossing appends the intersection points of one edge with the plane, given
// both endpoints' signed distances. Endpoints inside the tolerance band count
// as on-plane; otherwise a strict sign change interpolates the crossing at
// t = d1/(d1-d2), kept only when it lands inside the edge.
func crossing(pts []r3.Vec, p1, p2 r3.Vec, d1, d2, tol float64) []r3.Vec {
	on1 := math.Abs(d1) <= tol
	on2 := math.Abs(d2) <= tol

	switch {
	case on1 && on2:
		return append(pts, p1, p2)
	case on1:
		return append(pts, p1)
	case on2:
		return append(pts, p2)
	}

	if (d1 > tol && d2 < -tol) || (d1 < -tol && d2 > tol) {
		t := d1 / (d1 - d2)
		if t >= 0 && t <= 1 {
			return append(pts, r3.Add(p1, r3.Scale(t, r3.Sub(p2, p1))))
		}
	}
	return pts
}
