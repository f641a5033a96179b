// Package measure derives scalar metrics from a built vessel: mesh material
// volume, parametric cavity volume, and the bounding dimensions shown in the
// readout. Estimates are raw numbers in millimeters; formatting is the
// frontend's concern.
package measure

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/amphora/pkg/mesh"
	"github.com/chazu/amphora/pkg/vessel"
)

// MeshVolume integrates the enclosed volume of a closed, consistently wound
// triangle mesh: the signed triple product of each triangle's corners sums
// the tetrahedra spanned against the origin, and the divergence theorem makes
// the total origin-independent. The inverted cavity wall therefore subtracts
// its enclosed space, leaving material volume. Exact for polyhedra, faceted
// approximation for revolution surfaces. An empty mesh measures zero.
func MeshVolume(m *mesh.Mesh) float64 {
	if m == nil || m.IsEmpty() {
		return 0
	}
	sum := 0.0
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		sum += r3.Dot(a, r3.Cross(b, c))
	}
	return math.Abs(sum / 6)
}

// CavityVolume is the closed-form interior volume of a straight-walled
// vessel: a cylinder of the inner radius above the floor. Curved vessels
// have no closed form and measure zero here.
func CavityVolume(p vessel.Parameters) float64 {
	if p.Mode() != vessel.ModeStraight {
		return 0
	}
	r := p.InnerRadius()
	if r <= 0 {
		return 0
	}
	return math.Pi * r * r * p.InnerHeight()
}

// CM3 converts cubic millimeters to cubic centimeters.
func CM3(mm3 float64) float64 { return mm3 / 1000 }

// Liters converts cubic millimeters to liters.
func Liters(mm3 float64) float64 { return mm3 / 1e6 }

// Metrics bundles the readout values for one built vessel.
type Metrics struct {
	MaterialMM3 float64 `json:"materialMm3"`
	CavityMM3   float64 `json:"cavityMm3"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Depth       float64 `json:"depth"`
}

// Measure computes the full metrics record for a built mesh and its
// parameters. A nil or empty mesh yields zero dimensions, never an error;
// the mesh simply has not been built yet.
func Measure(m *mesh.Mesh, p vessel.Parameters) Metrics {
	met := Metrics{
		MaterialMM3: MeshVolume(m),
		CavityMM3:   CavityVolume(p),
	}
	if m != nil && !m.IsEmpty() {
		size := m.Bounds.Size()
		met.Width = size.X
		met.Height = size.Y
		met.Depth = size.Z
	}
	return met
}
