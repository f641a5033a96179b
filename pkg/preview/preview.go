// Package preview rasterizes a vessel mesh to a PNG snapshot with a fixed
// studio camera. It backs the frontend's "save image" action and gives
// headless callers a way to eyeball a build without a GPU.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"

	"github.com/chazu/amphora/pkg/mesh"
)

// ErrNoMesh reports a snapshot request before the first successful build.
var ErrNoMesh = errors.New("preview: no mesh to render")

// Default snapshot size when the caller passes zero.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

const (
	scale = 2  // supersampling factor for antialiasing
	fovy  = 30 // vertical field of view in degrees
	near  = 1
	far   = 10
)

// Fixed three-quarter studio view. The mesh is normalized into a bi-unit
// cube first, so these never depend on vessel size.
var (
	eye    = fauxgl.V(2.2, 2, 4)
	center = fauxgl.V(0, 0, 0)
	up     = fauxgl.V(0, 1, 0)
	light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
)

const (
	vesselColor     = "#B5764A" // fired clay
	backgroundColor = "#FFF8E3"
)

// Render draws m with the fixed studio camera and returns the encoded PNG.
// Zero or negative dimensions fall back to the defaults.
func Render(m *mesh.Mesh, width, height int) ([]byte, error) {
	if m == nil || m.IsEmpty() {
		return nil, ErrNoMesh
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	fm := toFauxgl(m)
	// Fit the mesh in a bi-unit cube centered at the origin.
	fm.BiUnitCube()

	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor(backgroundColor))

	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(vesselColor)
	context.Shader = shader
	context.DrawMesh(fm)

	// Downsample for antialiasing.
	img := resize.Resize(uint(width), uint(height), context.Image(), resize.Bilinear)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("preview: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// toFauxgl expands the indexed mesh into fauxgl triangles. Face normals are
// recomputed by the rasterizer, so only positions carry over.
func toFauxgl(m *mesh.Mesh) *fauxgl.Mesh {
	triangles := make([]*fauxgl.Triangle, 0, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		triangles = append(triangles, fauxgl.NewTriangleForPoints(
			fauxgl.V(a.X, a.Y, a.Z),
			fauxgl.V(b.X, b.Y, b.Z),
			fauxgl.V(c.X, c.Y, c.Z),
		))
	}
	return fauxgl.NewTriangleMesh(triangles)
}
