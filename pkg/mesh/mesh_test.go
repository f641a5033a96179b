package mesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name          string
		vertices      []float32
		indices       []uint32
		wantVertices  int
		wantTriangles int
		wantEmpty     bool
	}{
		{"empty", nil, nil, 0, 0, true},
		{"one vertex", []float32{1, 2, 3}, nil, 1, 0, false},
		{"one triangle", []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, []uint32{0, 1, 2}, 3, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices, Indices: tt.indices}
			if got := m.VertexCount(); got != tt.wantVertices {
				t.Errorf("VertexCount() = %d, want %d", got, tt.wantVertices)
			}
			if got := m.TriangleCount(); got != tt.wantTriangles {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.wantTriangles)
			}
			if got := m.IsEmpty(); got != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.wantEmpty)
			}
		})
	}
}

func TestAppendAndAccess(t *testing.T) {
	m := &Mesh{}
	i0 := m.AppendVertex(1, 2, 3)
	i1 := m.AppendVertex(4, 5, 6)
	i2 := m.AppendVertex(7, 8, 9)
	m.AppendTriangle(i0, i1, i2)

	if i0 != 0 || i1 != 1 || i2 != 2 {
		t.Fatalf("AppendVertex indices = %d,%d,%d, want 0,1,2", i0, i1, i2)
	}
	if got := m.Vertex(1); got != (r3.Vec{X: 4, Y: 5, Z: 6}) {
		t.Errorf("Vertex(1) = %v, want {4 5 6}", got)
	}
	a, b, c := m.Triangle(0)
	if a.X != 1 || b.Y != 5 || c.Z != 9 {
		t.Errorf("Triangle(0) = %v %v %v", a, b, c)
	}
}

func TestMergeOffsetsIndices(t *testing.T) {
	tri := func(x float64) *Mesh {
		m := &Mesh{}
		m.AppendVertex(x, 0, 0)
		m.AppendVertex(x+1, 0, 0)
		m.AppendVertex(x, 1, 0)
		m.AppendTriangle(0, 1, 2)
		return m
	}

	merged := Merge("pair", tri(0), tri(10))
	if merged.VertexCount() != 6 {
		t.Fatalf("VertexCount() = %d, want 6", merged.VertexCount())
	}
	if merged.TriangleCount() != 2 {
		t.Fatalf("TriangleCount() = %d, want 2", merged.TriangleCount())
	}
	want := []uint32{0, 1, 2, 3, 4, 5}
	for i, idx := range merged.Indices {
		if idx != want[i] {
			t.Errorf("Indices[%d] = %d, want %d", i, idx, want[i])
		}
	}
	if merged.Name != "pair" {
		t.Errorf("Name = %q, want %q", merged.Name, "pair")
	}
}

func TestMergeSkipsEmptyParts(t *testing.T) {
	solo := &Mesh{}
	solo.AppendVertex(0, 0, 0)
	solo.AppendVertex(1, 0, 0)
	solo.AppendVertex(0, 1, 0)
	solo.AppendTriangle(0, 1, 2)

	merged := Merge("solo", nil, &Mesh{}, solo)
	if merged.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d, want 1", merged.TriangleCount())
	}
}

func TestRecomputeNormalsFlatTriangle(t *testing.T) {
	// Counterclockwise in the XY plane: every vertex normal points +Z.
	m := &Mesh{}
	m.AppendVertex(0, 0, 0)
	m.AppendVertex(1, 0, 0)
	m.AppendVertex(0, 1, 0)
	m.AppendTriangle(0, 1, 2)
	m.RecomputeNormals()

	if len(m.Normals) != len(m.Vertices) {
		t.Fatalf("len(Normals) = %d, want %d", len(m.Normals), len(m.Vertices))
	}
	for i := 0; i < 3; i++ {
		nx, ny, nz := m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2]
		if math.Abs(float64(nx)) > 1e-6 || math.Abs(float64(ny)) > 1e-6 || math.Abs(float64(nz)-1) > 1e-6 {
			t.Errorf("normal %d = (%v,%v,%v), want (0,0,1)", i, nx, ny, nz)
		}
	}
}

func TestRecomputeNormalsUnitLength(t *testing.T) {
	// A bent strip: shared vertices blend their two face normals but stay unit.
	m := &Mesh{}
	m.AppendVertex(0, 0, 0)
	m.AppendVertex(1, 0, 0)
	m.AppendVertex(1, 1, 0)
	m.AppendVertex(0, 1, 1)
	m.AppendTriangle(0, 1, 2)
	m.AppendTriangle(0, 2, 3)
	m.RecomputeNormals()

	for i := 0; i < m.VertexCount(); i++ {
		nx := float64(m.Normals[3*i])
		ny := float64(m.Normals[3*i+1])
		nz := float64(m.Normals[3*i+2])
		length := math.Sqrt(nx*nx + ny*ny + nz*nz)
		if math.Abs(length-1) > 1e-5 {
			t.Errorf("normal %d length = %v, want 1", i, length)
		}
	}
}

func TestComputeBounds(t *testing.T) {
	m := &Mesh{}
	m.AppendVertex(-1, -2, -3)
	m.AppendVertex(5, 2, 1)
	m.AppendVertex(1, 6, -1)
	m.ComputeBounds()

	b := m.Bounds
	if b.Box.Min != (r3.Vec{X: -1, Y: -2, Z: -3}) {
		t.Errorf("Box.Min = %v, want {-1 -2 -3}", b.Box.Min)
	}
	if b.Box.Max != (r3.Vec{X: 5, Y: 6, Z: 1}) {
		t.Errorf("Box.Max = %v, want {5 6 1}", b.Box.Max)
	}
	if b.Center != (r3.Vec{X: 2, Y: 2, Z: -1}) {
		t.Errorf("Center = %v, want {2 2 -1}", b.Center)
	}

	// Radius reaches the farthest vertex from the box center.
	want := 0.0
	for i := 0; i < m.VertexCount(); i++ {
		if d := r3.Norm(r3.Sub(m.Vertex(i), b.Center)); d > want {
			want = d
		}
	}
	if math.Abs(b.Radius-want) > 1e-12 {
		t.Errorf("Radius = %v, want %v", b.Radius, want)
	}

	if got := b.Size(); got != (r3.Vec{X: 6, Y: 8, Z: 4}) {
		t.Errorf("Size() = %v, want {6 8 4}", got)
	}
}

func TestComputeBoundsEmpty(t *testing.T) {
	m := &Mesh{}
	m.ComputeBounds()
	if m.Bounds != (Bounds{}) {
		t.Errorf("empty mesh bounds = %+v, want zero", m.Bounds)
	}
}

func TestTranslate(t *testing.T) {
	m := &Mesh{}
	m.AppendVertex(0, 0, 0)
	m.AppendVertex(1, 1, 1)
	m.Translate(r3.Vec{X: 10, Y: -5, Z: 2})

	if got := m.Vertex(0); got != (r3.Vec{X: 10, Y: -5, Z: 2}) {
		t.Errorf("Vertex(0) = %v, want {10 -5 2}", got)
	}
	if m.Bounds.Box.Max != (r3.Vec{X: 11, Y: -4, Z: 3}) {
		t.Errorf("Bounds.Box.Max = %v, want {11 -4 3}", m.Bounds.Box.Max)
	}
}
