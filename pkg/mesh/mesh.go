// Package mesh defines the indexed triangle mesh the studio builds and the
// renderer consumes. Arrays are flat: vertices and normals carry 3 floats per
// vertex, indices 3 entries per triangle. Positions are stored as float32 for
// transport; geometry math reads them back as float64 vectors.
package mesh

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a triangle mesh suitable for rendering and export.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`

	Bounds Bounds `json:"-"` // filled by ComputeBounds after a rebuild
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns vertex i as a float64 vector.
func (m *Mesh) Vertex(i int) r3.Vec {
	return r3.Vec{
		X: float64(m.Vertices[3*i]),
		Y: float64(m.Vertices[3*i+1]),
		Z: float64(m.Vertices[3*i+2]),
	}
}

// Triangle returns the three corner positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c r3.Vec) {
	return m.Vertex(int(m.Indices[3*i])),
		m.Vertex(int(m.Indices[3*i+1])),
		m.Vertex(int(m.Indices[3*i+2]))
}

// AppendVertex adds a position and returns its index.
func (m *Mesh) AppendVertex(x, y, z float64) uint32 {
	i := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, float32(x), float32(y), float32(z))
	return i
}

// AppendTriangle adds one triangle by vertex indices.
func (m *Mesh) AppendTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Translate moves every vertex by the given offset and refreshes the bounds.
func (m *Mesh) Translate(v r3.Vec) {
	for i := 0; i < len(m.Vertices); i += 3 {
		m.Vertices[i] += float32(v.X)
		m.Vertices[i+1] += float32(v.Y)
		m.Vertices[i+2] += float32(v.Z)
	}
	m.ComputeBounds()
}

// Merge concatenates parts into one mesh, offsetting indices so each part's
// triangles keep referencing its own vertices. Seam vertices are not welded;
// coincident positions from different parts stay duplicated. Normals are not
// carried over — callers recompute them on the merged result.
func Merge(name string, parts ...*Mesh) *Mesh {
	out := &Mesh{Name: name}
	for _, p := range parts {
		if p == nil || p.IsEmpty() {
			continue
		}
		base := uint32(out.VertexCount())
		out.Vertices = append(out.Vertices, p.Vertices...)
		for _, idx := range p.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	return out
}

// RecomputeNormals derives per-vertex normals from the triangle set: every
// face normal (area-weighted, from the cross product of two edges) is
// accumulated onto its three corners, then each vertex normal is normalized.
// Vertices shared by triangles across a crease get the blended normal;
// duplicated seam vertices keep their piece's own shading.
func (m *Mesh) RecomputeNormals() {
	m.Normals = make([]float32, len(m.Vertices))
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		for k := 0; k < 3; k++ {
			i := m.Indices[3*t+k]
			m.Normals[3*i] += float32(n.X)
			m.Normals[3*i+1] += float32(n.Y)
			m.Normals[3*i+2] += float32(n.Z)
		}
	}
	for i := 0; i < len(m.Normals); i += 3 {
		nx, ny, nz := m.Normals[i], m.Normals[i+1], m.Normals[i+2]
		length := math32.Sqrt(nx*nx + ny*ny + nz*nz)
		if length > 0 {
			m.Normals[i] = nx / length
			m.Normals[i+1] = ny / length
			m.Normals[i+2] = nz / length
		}
	}
}
