package solid

import (
	"math"
	"testing"

	"github.com/chazu/amphora/pkg/measure"
	"github.com/chazu/amphora/pkg/vessel"
)

func straightParams() vessel.Parameters {
	p := vessel.Parameters{Height: 40, BaseRadius: 20, WallThickness: 5}
	p.Clamp()
	return p
}

// curvedParams is deliberately squat and thick so coarse marching cubes
// grids still resolve the wall.
func curvedParams() vessel.Parameters {
	p := vessel.Parameters{
		Height:          60,
		BaseRadius:      25,
		WallThickness:   10,
		BellyRadius:     32,
		NeckRadius:      12,
		LipRadius:       14,
		NeckHeightRatio: 0.3,
		ProfileBias:     1,
		HeightSegments:  8,
	}
	p.Clamp()
	return p
}

func TestStraightSolidBounds(t *testing.T) {
	s, err := Straight(straightParams())
	if err != nil {
		t.Fatalf("Straight() error = %v", err)
	}

	bb := s.BoundingBox()
	if math.Abs(bb.Min.Z) > 1e-9 || math.Abs(bb.Max.Z-40) > 1e-9 {
		t.Errorf("solid spans z [%v, %v], want [0, 40]", bb.Min.Z, bb.Max.Z)
	}
	if math.Abs(bb.Max.X-20) > 1e-9 || math.Abs(bb.Min.X+20) > 1e-9 {
		t.Errorf("solid spans x [%v, %v], want [-20, 20]", bb.Min.X, bb.Max.X)
	}
}

func TestCurvedSolidBounds(t *testing.T) {
	p := vessel.DefaultParameters()
	p.Clamp()
	s, err := Curved(p)
	if err != nil {
		t.Fatalf("Curved() error = %v", err)
	}

	bb := s.BoundingBox()
	if bb.Max.X < 61 || bb.Max.X > 63 {
		t.Errorf("Max.X = %v, want about the belly radius 62", bb.Max.X)
	}
	if bb.Max.Z < 219 || bb.Max.Z > 221 {
		t.Errorf("Max.Z = %v, want about the height 220", bb.Max.Z)
	}
	if bb.Min.Z < -0.5 || bb.Min.Z > 0.5 {
		t.Errorf("Min.Z = %v, want about 0", bb.Min.Z)
	}
}

func TestSilhouetteOutline(t *testing.T) {
	p := vessel.DefaultParameters()
	p.Clamp()
	pts := silhouette(p)

	first, last := pts[0], pts[len(pts)-1]
	if first.X != 0 || first.Y != 0 {
		t.Errorf("outline starts at (%v, %v), want the axis base", first.X, first.Y)
	}
	if last.X != 0 || math.Abs(last.Y-p.BottomThickness()) > 1e-9 {
		t.Errorf("outline ends at (%v, %v), want the axis at floor height", last.X, last.Y)
	}

	maxX := 0.0
	for i, pt := range pts {
		if pt.X < 0 {
			t.Fatalf("outline point %d has negative radius %v", i, pt.X)
		}
		maxX = math.Max(maxX, pt.X)
	}
	if math.Abs(maxX-p.BellyRadius) > 1e-9 {
		t.Errorf("widest outline radius = %v, want belly %v", maxX, p.BellyRadius)
	}
}

func TestToMeshStraight(t *testing.T) {
	p := straightParams()
	s, err := Straight(p)
	if err != nil {
		t.Fatalf("Straight() error = %v", err)
	}

	m := ToMesh(s, 48)
	if m.TriangleCount() == 0 {
		t.Fatal("ToMesh() produced no triangles")
	}
	if m.VertexCount() != 3*m.TriangleCount() {
		t.Errorf("soup has %d vertices for %d triangles, want 3 per face", m.VertexCount(), m.TriangleCount())
	}

	// The renderer inflates the sampling box by 1%, so allow a little slack.
	if m.Bounds.Box.Max.Z > 41 || m.Bounds.Box.Min.Z < -1 {
		t.Errorf("mesh spans z [%v, %v], want within [0, 40] plus slack", m.Bounds.Box.Min.Z, m.Bounds.Box.Max.Z)
	}

	want := math.Pi * (20*20*40 - 15*15*30)
	got := measure.MeshVolume(m)
	if rel := math.Abs(got-want) / want; rel > 0.05 {
		t.Errorf("solid volume = %v, want %v within 5%%", got, want)
	}
}

func TestToMeshCurved(t *testing.T) {
	p := curvedParams()
	s, err := From(p)
	if err != nil {
		t.Fatalf("From() error = %v", err)
	}

	m := ToMesh(s, 48)
	if m.TriangleCount() == 0 {
		t.Fatal("ToMesh() produced no triangles")
	}
	vol := measure.MeshVolume(m)
	if vol <= 0 {
		t.Fatalf("solid volume = %v, want > 0", vol)
	}
	box := m.Bounds.Size()
	if boxVol := box.X * box.Y * box.Z; vol >= boxVol {
		t.Errorf("solid volume %v exceeds its bounding box %v", vol, boxVol)
	}
}

func TestFromDispatchesOnMode(t *testing.T) {
	s, err := From(straightParams())
	if err != nil {
		t.Fatalf("From(straight) error = %v", err)
	}
	bb := s.BoundingBox()
	if math.Abs(bb.Max.X-20) > 1e-9 {
		t.Errorf("straight dispatch Max.X = %v, want 20", bb.Max.X)
	}

	s, err = From(curvedParams())
	if err != nil {
		t.Fatalf("From(curved) error = %v", err)
	}
	bb = s.BoundingBox()
	if bb.Max.X < 31 || bb.Max.X > 33 {
		t.Errorf("curved dispatch Max.X = %v, want about the belly 32", bb.Max.X)
	}
}
