package studio

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/amphora/pkg/vessel"
)

func TestNewStartsDirty(t *testing.T) {
	s := New()
	if !s.Dirty() {
		t.Error("New() studio should start dirty")
	}
	if s.Mesh() != nil {
		t.Error("Mesh() should be nil before the first Frame")
	}
}

func TestFrameCoalescesEdits(t *testing.T) {
	s := New()
	if _, err := s.Set("height", 180); err != nil {
		t.Fatalf("Set(height) error = %v", err)
	}
	if _, err := s.Set("bellyRadius", 70); err != nil {
		t.Fatalf("Set(bellyRadius) error = %v", err)
	}
	if _, err := s.Set("radialSegments", 48); err != nil {
		t.Fatalf("Set(radialSegments) error = %v", err)
	}

	res, err := s.Frame()
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if !res.Changed {
		t.Error("first Frame() after edits should report Changed")
	}
	if res.Mesh == nil || res.Mesh.TriangleCount() == 0 {
		t.Fatal("Frame() produced no mesh")
	}

	again, err := s.Frame()
	if err != nil {
		t.Fatalf("second Frame() error = %v", err)
	}
	if again.Changed {
		t.Error("clean Frame() should not report Changed")
	}
	if again.Mesh != res.Mesh {
		t.Error("clean Frame() should hand back the same mesh, not a rebuild")
	}
}

func TestSetReturnsAppliedValue(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value float64
		want  float64
	}{
		{"section offset snaps to limit", "sectionOffset", 900, 41},
		{"wall floors", "wallThickness", -3, 0.2},
		{"radial segments floor", "radialSegments", 4, 12},
		{"nan falls back to default", "height", math.NaN(), 220},
		{"in range passes through", "baseRadius", 52, 52},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			got, err := s.Set(tt.field, tt.value)
			if err != nil {
				t.Fatalf("Set(%q) error = %v", tt.field, err)
			}
			if got != tt.want {
				t.Errorf("Set(%q, %v) = %v, want %v", tt.field, tt.value, got, tt.want)
			}
			if !s.Dirty() {
				t.Error("Set() should mark the studio dirty")
			}
		})
	}
}

func TestSetUnknownParameter(t *testing.T) {
	s := New()
	if _, err := s.Set("girth", 10); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("Set(girth) error = %v, want ErrUnknownParameter", err)
	}
}

func TestSectionToggle(t *testing.T) {
	s := New()
	if _, err := s.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	s.SetSectionEnabled(true)
	if !s.Dirty() {
		t.Fatal("enabling the section should mark the studio dirty")
	}
	res, err := s.Frame()
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if res.Section.SegmentCount() == 0 {
		t.Error("axis section of the default vessel should produce segments")
	}

	s.SetSectionEnabled(false)
	res, err = s.Frame()
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if res.Section.SegmentCount() != 0 {
		t.Errorf("disabled section yielded %d segments, want 0", res.Section.SegmentCount())
	}

	s.SetSectionEnabled(false)
	if s.Dirty() {
		t.Error("re-sending the same toggle should not dirty the studio")
	}
}

func TestSetParametersEndToEnd(t *testing.T) {
	s := New()
	s.SetParameters(vessel.Parameters{
		Height:         220,
		BaseRadius:     45,
		WallThickness:  4,
		RadialSegments: 96,
		HeightSegments: 110,
	})

	res, err := s.Frame()
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	want := math.Pi * 41 * 41 * 212
	if rel := math.Abs(res.Metrics.CavityMM3-want) / want; rel > 0.01 {
		t.Errorf("CavityMM3 = %v, want %v within 1%%", res.Metrics.CavityMM3, want)
	}
	if res.Metrics.Height < 219 || res.Metrics.Height > 221 {
		t.Errorf("Metrics.Height = %v, want about 220", res.Metrics.Height)
	}
}

func TestDiagnosticsRefresh(t *testing.T) {
	s := New()
	if _, err := s.Set("wallThickness", 0.5); err != nil {
		t.Fatalf("Set(wallThickness) error = %v", err)
	}
	if _, err := s.Frame(); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if len(s.Diagnostics()) == 0 {
		t.Error("thin wall should surface a diagnostic after Frame()")
	}
}
