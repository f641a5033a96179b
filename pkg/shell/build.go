package shell

import (
	"errors"

	"github.com/chazu/amphora/pkg/mesh"
	"github.com/chazu/amphora/pkg/vessel"
)

// ErrEmptyShell reports a merge that produced no triangles. Clamped
// parameters cannot cause this; seeing it means the clamping contract was
// bypassed somewhere upstream.
var ErrEmptyShell = errors.New("shell: merge produced an empty mesh")

// Build synthesizes the full vessel surface for a clamped parameter record:
// walls, floor, and rims merged into one mesh with fresh per-vertex normals
// and bounds. The inner wall is inverted so its normals face the cavity.
func Build(p vessel.Parameters) (*mesh.Mesh, error) {
	var parts []*mesh.Mesh
	if p.Mode() == vessel.ModeCurved {
		parts = curvedParts(p)
	} else {
		parts = straightParts(p)
	}

	m := mesh.Merge("vessel", parts...)
	if m.IsEmpty() || m.TriangleCount() == 0 {
		return nil, ErrEmptyShell
	}
	m.RecomputeNormals()
	m.ComputeBounds()
	return m, nil
}

// curvedParts revolves the sampled outer and inner silhouettes and closes the
// two gaps between them: a base ring at y=0 facing down and a lip ring at the
// top facing up.
func curvedParts(p vessel.Parameters) []*mesh.Mesh {
	outer := p.Profile(false)
	inner := p.Profile(true)
	last := len(outer) - 1

	return []*mesh.Mesh{
		Revolve(outer, p.RadialSegments, false),
		Revolve(inner, p.RadialSegments, true),
		Ring(inner[0].Radius, outer[0].Radius, 0, p.RadialSegments, false),
		Ring(inner[last].Radius, outer[last].Radius, p.Height, p.RadialSegments, true),
	}
}

// straightParts builds the cylinder-mode vessel from revolved primitives: two
// open walls, a solid bottom, the cavity floor above it, and the flat lip.
// The inner wall starts at the floor height so the bottom stays solid.
func straightParts(p vessel.Parameters) []*mesh.Mesh {
	outerR := p.BaseRadius
	innerR := p.InnerRadius()
	floorY := p.BottomThickness()

	return []*mesh.Mesh{
		Revolve(p.Profile(false), p.RadialSegments, false),
		Revolve(p.Profile(true), p.RadialSegments, true),
		Disk(outerR, 0, p.RadialSegments, false),
		Disk(innerR, floorY, p.RadialSegments, true),
		Ring(innerR, outerR, p.Height, p.RadialSegments, true),
	}
}
