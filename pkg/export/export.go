// Package export encodes a built mesh for downstream tools: binary and
// ASCII STL facet soups for slicers, and indexed OBJ for modeling suites.
// Every encoder is a synchronous, read-only snapshot of the mesh it is
// handed.
package export

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chazu/amphora/pkg/mesh"
)

// ErrNoMesh reports an export attempted before any mesh was built.
var ErrNoMesh = errors.New("export: no mesh to export")

// headerSize and facetSize are fixed by the binary STL layout: an 80-byte
// comment header, a uint32 facet count, then 50 bytes per facet.
const (
	headerSize = 84
	facetSize  = 50
)

type stlFacet struct {
	Normal [3]float32
	V1     [3]float32
	V2     [3]float32
	V3     [3]float32
	Attr   uint16
}

// WriteSTL encodes the mesh as little-endian binary STL. Facet normals are
// recomputed from the triangle windings rather than taken from the smoothed
// per-vertex set. The output is exactly 84 + 50*triangles bytes.
func WriteSTL(m *mesh.Mesh, w io.Writer) error {
	if m == nil || m.IsEmpty() {
		return ErrNoMesh
	}
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "amphora binary stl: "+meshName(m))
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("export: stl header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return fmt.Errorf("export: stl facet count: %w", err)
	}

	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		n := facetNormal(a, b, c)
		facet := stlFacet{
			Normal: vec32(n),
			V1:     vec32(a),
			V2:     vec32(b),
			V3:     vec32(c),
		}
		if err := binary.Write(bw, binary.LittleEndian, facet); err != nil {
			return fmt.Errorf("export: stl facet %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteSTLASCII encodes the mesh in the keyword-framed text STL dialect.
func WriteSTLASCII(m *mesh.Mesh, w io.Writer) error {
	if m == nil || m.IsEmpty() {
		return ErrNoMesh
	}
	bw := bufio.NewWriter(w)
	name := meshName(m)

	fmt.Fprintf(bw, "solid %s\n", name)
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		n := facetNormal(a, b, c)
		fmt.Fprintf(bw, "facet normal %e %e %e\n", n.X, n.Y, n.Z)
		fmt.Fprintf(bw, " outer loop\n")
		for _, v := range []r3.Vec{a, b, c} {
			fmt.Fprintf(bw, "  vertex %e %e %e\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, " endloop\n")
		fmt.Fprintf(bw, "endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

// WriteOBJ encodes the mesh as Wavefront OBJ with 1-based face indices.
// When per-vertex normals are present they are written as vn records and
// referenced v//vn; a mesh without normals gets plain v faces.
func WriteOBJ(m *mesh.Mesh, w io.Writer) error {
	if m == nil || m.IsEmpty() {
		return ErrNoMesh
	}
	bw := bufio.NewWriter(w)
	withNormals := len(m.Normals) == len(m.Vertices)

	fmt.Fprintf(bw, "o %s\n", meshName(m))
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	if withNormals {
		for i := 0; i < m.VertexCount(); i++ {
			fmt.Fprintf(bw, "vn %g %g %g\n", m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2])
		}
	}
	for i := 0; i < m.TriangleCount(); i++ {
		a := m.Indices[3*i] + 1
		b := m.Indices[3*i+1] + 1
		c := m.Indices[3*i+2] + 1
		if withNormals {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
	}
	return bw.Flush()
}

func meshName(m *mesh.Mesh) string {
	if m.Name != "" {
		return m.Name
	}
	return "mesh"
}

// facetNormal is the unit normal of one winding; zero for degenerate
// triangles, which STL readers tolerate.
func facetNormal(a, b, c r3.Vec) r3.Vec {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	l := r3.Norm(n)
	if l == 0 || math.IsNaN(l) {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}

func vec32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
