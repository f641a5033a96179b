// Package shell synthesizes the vessel surface: profiles are revolved around
// the Y axis, caps and rings close the openings, and the pieces merge into a
// single non-welded triangle mesh with recomputed normals and bounds.
package shell

import (
	"math"

	"github.com/chazu/amphora/pkg/mesh"
	"github.com/chazu/amphora/pkg/vessel"
)

// Revolve sweeps a silhouette around the Y axis at radialSegments angular
// steps. The grid has one row per profile point and a duplicated seam column;
// each quad splits into two triangles wound so normals face away from the
// axis. inward mirrors the X axis, flipping winding and normals toward the
// axis, which is how the cavity-facing wall is built.
func Revolve(prof vessel.Profile, radialSegments int, inward bool) *mesh.Mesh {
	m := &mesh.Mesh{}
	if len(prof) < 2 || radialSegments < 3 {
		return m
	}

	sign := 1.0
	if inward {
		sign = -1.0
	}

	rows := len(prof)
	for _, pt := range prof {
		for j := 0; j <= radialSegments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(radialSegments)
			m.AppendVertex(sign*pt.Radius*math.Cos(theta), pt.Y, pt.Radius*math.Sin(theta))
		}
	}

	cols := radialSegments + 1
	for i := 0; i < rows-1; i++ {
		for j := 0; j < radialSegments; j++ {
			v1 := uint32(i*cols + j)
			v2 := uint32((i+1)*cols + j)
			v3 := uint32((i+1)*cols + j + 1)
			v4 := uint32(i*cols + j + 1)
			m.AppendTriangle(v1, v2, v4)
			m.AppendTriangle(v2, v3, v4)
		}
	}
	return m
}

// Disk builds a triangle fan at height y. up selects which side the fan
// faces: the cavity floor faces up, the exterior bottom faces down.
func Disk(radius, y float64, radialSegments int, up bool) *mesh.Mesh {
	m := &mesh.Mesh{}
	if radius <= 0 || radialSegments < 3 {
		return m
	}

	center := m.AppendVertex(0, y, 0)
	for j := 0; j <= radialSegments; j++ {
		theta := 2 * math.Pi * float64(j) / float64(radialSegments)
		m.AppendVertex(radius*math.Cos(theta), y, radius*math.Sin(theta))
	}

	for j := 0; j < radialSegments; j++ {
		rim := center + 1 + uint32(j)
		if up {
			m.AppendTriangle(center, rim+1, rim)
		} else {
			m.AppendTriangle(center, rim, rim+1)
		}
	}
	return m
}

// Ring builds a flat annulus at height y spanning innerRadius to outerRadius.
// Row order decides the facing: the lip ring faces up, the curved-mode base
// ring faces down.
func Ring(innerRadius, outerRadius, y float64, radialSegments int, up bool) *mesh.Mesh {
	m := &mesh.Mesh{}
	if outerRadius <= innerRadius || radialSegments < 3 {
		return m
	}

	r0, r1 := innerRadius, outerRadius
	if up {
		r0, r1 = outerRadius, innerRadius
	}
	for _, r := range []float64{r0, r1} {
		for j := 0; j <= radialSegments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(radialSegments)
			m.AppendVertex(r*math.Cos(theta), y, r*math.Sin(theta))
		}
	}

	cols := uint32(radialSegments + 1)
	for j := uint32(0); j < uint32(radialSegments); j++ {
		m.AppendTriangle(j, cols+j, j+1)
		m.AppendTriangle(cols+j, cols+j+1, j+1)
	}
	return m
}
