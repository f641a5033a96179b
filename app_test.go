package main

import (
	"math"
	"os"
	"testing"
)

// TestE2EClassicAmphora exercises the full pipeline: recipe source → engine →
// parameters → studio rebuild → frame result. This is the same path the Wails
// bindings take, but without the Wails runtime.
func TestE2EClassicAmphora(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/classic_amphora.amph")
	if err != nil {
		t.Fatalf("failed to read classic_amphora.amph: %v", err)
	}

	res := app.ApplyRecipe(string(source))
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			t.Errorf("recipe error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	if res.Applied == nil {
		t.Fatal("expected applied parameter state")
	}
	if res.Applied.Height != 220 {
		t.Errorf("applied height = %f, want 220", res.Applied.Height)
	}

	frame := app.Frame()
	if frame.Error != "" {
		t.Fatalf("frame error: %s", frame.Error)
	}
	if !frame.Changed {
		t.Fatal("expected first frame after recipe to rebuild")
	}
	if frame.Mesh == nil {
		t.Fatal("expected mesh on rebuilt frame")
	}
	if len(frame.Mesh.Vertices) == 0 {
		t.Error("mesh should have vertices")
	}
	if len(frame.Mesh.Normals) == 0 {
		t.Error("mesh should have normals")
	}
	if len(frame.Mesh.Indices) == 0 {
		t.Error("mesh should have indices")
	}
	if frame.Mesh.Color == "" {
		t.Error("mesh should have a color assigned")
	}

	if math.Abs(frame.Metrics.Height-220) > 0.01 {
		t.Errorf("metrics height = %f, want 220", frame.Metrics.Height)
	}
	if frame.Metrics.MaterialMM3 <= 0 {
		t.Errorf("material volume = %f, want > 0", frame.Metrics.MaterialMM3)
	}
	if len(frame.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics for the classic amphora, got %v", frame.Diagnostics)
	}
}

// TestE2EFirstFrameBuildsDefault ensures a fresh app renders something
// without any input: the studio starts dirty with the default vessel.
func TestE2EFirstFrameBuildsDefault(t *testing.T) {
	app := NewApp()

	frame := app.Frame()
	if frame.Error != "" {
		t.Fatalf("frame error: %s", frame.Error)
	}
	if !frame.Changed {
		t.Fatal("expected first frame to rebuild")
	}
	if frame.Mesh == nil || len(frame.Mesh.Vertices) == 0 {
		t.Fatal("expected default vessel mesh on first frame")
	}

	// Nothing changed since; the next frame must not resend the mesh.
	second := app.Frame()
	if second.Changed {
		t.Error("expected clean frame after no edits")
	}
	if second.Mesh != nil {
		t.Error("clean frame should not carry a mesh payload")
	}
}

// TestE2EEmptyRecipe ensures the pipeline handles empty input gracefully:
// an empty recipe describes the default vessel.
func TestE2EEmptyRecipe(t *testing.T) {
	app := NewApp()
	res := app.ApplyRecipe("")

	if len(res.Errors) > 0 {
		t.Errorf("unexpected errors for empty recipe: %v", res.Errors)
	}
	if res.Applied == nil {
		t.Fatal("expected applied state for empty recipe")
	}
	if res.Applied.Height != 220 {
		t.Errorf("empty recipe height = %f, want default 220", res.Applied.Height)
	}
}

// TestE2ERecipeSyntaxError ensures recipe errors are reported, not fatal.
func TestE2ERecipeSyntaxError(t *testing.T) {
	app := NewApp()
	res := app.ApplyRecipe("(vessel :height 220")

	if len(res.Errors) == 0 {
		t.Fatal("expected recipe errors for syntax error")
	}
	if res.Applied != nil {
		t.Error("expected no applied state on error")
	}
}

// TestE2EUpdateParameter ensures a slider edit round-trips through the
// studio and comes back clamped.
func TestE2EUpdateParameter(t *testing.T) {
	app := NewApp()

	res := app.UpdateParameter("height", 180)
	if res.Error != "" {
		t.Fatalf("update error: %s", res.Error)
	}
	if res.Applied != 180 {
		t.Errorf("applied = %f, want 180", res.Applied)
	}

	frame := app.Frame()
	if !frame.Changed {
		t.Error("expected frame after edit to rebuild")
	}
	if math.Abs(frame.Metrics.Height-180) > 0.01 {
		t.Errorf("metrics height = %f, want 180", frame.Metrics.Height)
	}
}
