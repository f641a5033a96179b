package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds bundles the axis-aligned box and bounding sphere of a mesh, used for
// camera framing and the dimension readout.
type Bounds struct {
	Box    r3.Box
	Center r3.Vec
	Radius float64
}

// Size returns the box extent per axis (width, height, depth).
func (b Bounds) Size() r3.Vec {
	return r3.Sub(b.Box.Max, b.Box.Min)
}

// ComputeBounds rebuilds the bounds from scratch: componentwise min/max over
// all vertices for the box, then the sphere around the box center with radius
// the farthest vertex distance. An empty mesh gets zero bounds.
func (m *Mesh) ComputeBounds() {
	if m.IsEmpty() {
		m.Bounds = Bounds{}
		return
	}

	box := r3.Box{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for i := 0; i < m.VertexCount(); i++ {
		box = includePoint(box, m.Vertex(i))
	}

	center := r3.Add(box.Min, r3.Scale(0.5, r3.Sub(box.Max, box.Min)))
	radius := 0.0
	for i := 0; i < m.VertexCount(); i++ {
		if d := r3.Norm(r3.Sub(m.Vertex(i), center)); d > radius {
			radius = d
		}
	}

	m.Bounds = Bounds{Box: box, Center: center, Radius: radius}
}

func includePoint(b r3.Box, v r3.Vec) r3.Box {
	return r3.Box{
		Min: r3.Vec{X: math.Min(b.Min.X, v.X), Y: math.Min(b.Min.Y, v.Y), Z: math.Min(b.Min.Z, v.Z)},
		Max: r3.Vec{X: math.Max(b.Max.X, v.X), Y: math.Max(b.Max.Y, v.Y), Z: math.Max(b.Max.Z, v.Z)},
	}
}
