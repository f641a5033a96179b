// Package solid models the vessel as a signed-distance solid using the
// github.com/deadsy/sdfx CAD library and tessellates it with marching
// cubes. Unlike the display shell, the result is a watertight facet soup
// fit for slicing. Solids are built print-oriented: the revolution axis is
// Z and the base sits on z=0, whereas the display mesh is Y-up.
package solid

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/amphora/pkg/mesh"
	"github.com/chazu/amphora/pkg/vessel"
)

// DefaultCells controls marching cubes tessellation resolution.
const DefaultCells = 200

// cavityOvershoot extends the subtracted cavity past the lip so the
// difference leaves a clean open mouth instead of a zero-thickness skin.
const cavityOvershoot = 1.0

// From builds the solid for a clamped parameter record, dispatching on the
// silhouette mode.
func From(p vessel.Parameters) (sdf.SDF3, error) {
	if p.Mode() == vessel.ModeCurved {
		return Curved(p)
	}
	return Straight(p)
}

// Straight models the cylindrical vessel as an outer cylinder minus a
// cavity cylinder seated on the solid floor.
func Straight(p vessel.Parameters) (sdf.SDF3, error) {
	outer, err := sdf.Cylinder3D(p.Height, p.BaseRadius, 0)
	if err != nil {
		return nil, fmt.Errorf("solid: outer wall: %w", err)
	}
	outer = sdf.Transform3D(outer, sdf.Translate3d(v3.Vec{Z: p.Height / 2}))

	cavityH := p.InnerHeight() + cavityOvershoot
	cavity, err := sdf.Cylinder3D(cavityH, p.InnerRadius(), 0)
	if err != nil {
		return nil, fmt.Errorf("solid: cavity: %w", err)
	}
	cavity = sdf.Transform3D(cavity, sdf.Translate3d(v3.Vec{Z: p.BottomThickness() + cavityH/2}))

	return sdf.Difference3D(outer, cavity), nil
}

// Curved revolves the closed material silhouette of the profiled vessel.
func Curved(p vessel.Parameters) (sdf.SDF3, error) {
	poly, err := sdf.Polygon2D(silhouette(p))
	if err != nil {
		return nil, fmt.Errorf("solid: silhouette: %w", err)
	}
	s, err := sdf.Revolve3D(poly)
	if err != nil {
		return nil, fmt.Errorf("solid: revolve: %w", err)
	}
	return s, nil
}

// silhouette walks the material outline counterclockwise in the (radius,
// height) half-plane: out along the base, up the outer curve, across the
// lip, down the inner curve to the floor, and back to the axis. The floor
// gives the solid the bottom the display shell only implies.
func silhouette(p vessel.Parameters) []v2.Vec {
	outer := p.Profile(false)
	inner := p.Profile(true)
	bt := p.BottomThickness()

	pts := make([]v2.Vec, 0, len(outer)+len(inner)+3)
	pts = append(pts, v2.Vec{X: 0, Y: 0})
	for _, pp := range outer {
		pts = append(pts, v2.Vec{X: pp.Radius, Y: pp.Y})
	}

	i := len(inner) - 1
	for i >= 0 && inner[i].Y > bt {
		pts = append(pts, v2.Vec{X: inner[i].Radius, Y: inner[i].Y})
		i--
	}
	// Exact junction where the inner curve meets the floor; t is 0 when a
	// sample landed on the floor height itself.
	lo, hi := inner[i], inner[i+1]
	t := (bt - lo.Y) / (hi.Y - lo.Y)
	pts = append(pts, v2.Vec{X: lo.Radius + (hi.Radius-lo.Radius)*t, Y: bt})

	pts = append(pts, v2.Vec{X: 0, Y: bt})
	return pts
}

// ToMesh tessellates a solid into a per-face-normal triangle soup using
// marching cubes. Non-positive cell counts fall back to DefaultCells.
func ToMesh(s sdf.SDF3, cells int) *mesh.Mesh {
	if cells <= 0 {
		cells = DefaultCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	m := &mesh.Mesh{
		Name:     "vessel-solid",
		Vertices: make([]float32, 0, len(triangles)*9),
		Normals:  make([]float32, 0, len(triangles)*9),
		Indices:  make([]uint32, 0, len(triangles)*3),
	}
	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)
		for j := 0; j < 3; j++ {
			v := tri[j]
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, nx, ny, nz)
			m.Indices = append(m.Indices, uint32(i*3+j))
		}
	}
	m.ComputeBounds()
	return m
}
