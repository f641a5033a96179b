// Package studio drives the edit-refresh loop: parameter mutations mark the
// state dirty, and once per render tick Frame realizes whatever is pending
// as a single rebuild.
package studio

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/amphora/pkg/measure"
	"github.com/chazu/amphora/pkg/mesh"
	"github.com/chazu/amphora/pkg/section"
	"github.com/chazu/amphora/pkg/shell"
	"github.com/chazu/amphora/pkg/vessel"
)

// ErrUnknownParameter reports a Set against a field no control owns.
var ErrUnknownParameter = errors.New("studio: unknown parameter")

// Studio owns the current parameter record and every artifact derived from
// it: mesh, metrics, section polyline, diagnostics. All methods must be
// called from one goroutine; the host render loop is the only driver.
type Studio struct {
	params vessel.Parameters
	dirty  bool

	mesh    *mesh.Mesh
	metrics measure.Metrics
	line    section.Polyline
	diags   []vessel.Diagnostic
}

// Result is the outcome of one Frame call. Mesh and the other artifacts are
// the current ones whether or not this frame rebuilt them.
type Result struct {
	Changed bool
	Mesh    *mesh.Mesh
	Metrics measure.Metrics
	Section section.Polyline
}

// New returns a dirty studio seeded with the classic amphora defaults; the
// first Frame call builds its mesh.
func New() *Studio {
	return NewWith(vessel.DefaultParameters())
}

// NewWith returns a dirty studio seeded with p, clamped on ingestion.
func NewWith(p vessel.Parameters) *Studio {
	p.Clamp()
	return &Studio{params: p, dirty: true}
}

// Parameters returns the current clamped parameter record.
func (s *Studio) Parameters() vessel.Parameters { return s.params }

// SetParameters replaces the whole record, clamps it, and marks the studio
// dirty.
func (s *Studio) SetParameters(p vessel.Parameters) {
	p.Clamp()
	s.params = p
	s.dirty = true
}

// Set updates one named numeric field and returns the value actually in
// effect after clamping, so a control can snap its thumb to reality.
// Integer fields round to the nearest step.
func (s *Studio) Set(name string, value float64) (float64, error) {
	p := s.params
	if !setField(&p, name, value) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	p.Clamp()
	s.params = p
	s.dirty = true
	applied, _ := fieldValue(p, name)
	return applied, nil
}

// SetSectionEnabled toggles the cutting plane.
func (s *Studio) SetSectionEnabled(on bool) {
	if s.params.SectionEnabled == on {
		return
	}
	s.params.SectionEnabled = on
	s.dirty = true
}

// Dirty reports whether a rebuild is pending.
func (s *Studio) Dirty() bool { return s.dirty }

// Mesh returns the mesh from the last successful rebuild, nil before the
// first Frame.
func (s *Studio) Mesh() *mesh.Mesh { return s.mesh }

// Metrics returns the measurements taken after the last rebuild.
func (s *Studio) Metrics() measure.Metrics { return s.metrics }

// Section returns the cut polyline from the last rebuild, empty when the
// section plane is disabled or misses the mesh.
func (s *Studio) Section() section.Polyline { return s.line }

// Diagnostics returns the advisory findings for the current parameters.
func (s *Studio) Diagnostics() []vessel.Diagnostic { return s.diags }

// Frame realizes pending parameter changes. On a clean studio it returns
// the current artifacts with Changed false and does no work. On a dirty one
// it rebuilds the shell, remeasures it, recuts the section when enabled,
// swaps the new mesh in and transitions back to clean. However many fields
// changed since the last call, at most one rebuild happens here.
//
// A rebuild failure keeps the previous mesh on display and still clears the
// dirty flag: parameters are clamped on ingestion, so a failed build is a
// bug to surface, not a state to retry every tick.
func (s *Studio) Frame() (Result, error) {
	if !s.dirty {
		return s.result(false), nil
	}
	s.dirty = false

	m, err := shell.Build(s.params)
	if err != nil {
		return s.result(false), fmt.Errorf("studio: rebuild: %w", err)
	}
	s.mesh = m
	s.metrics = measure.Measure(m, s.params)
	s.line = nil
	if s.params.SectionEnabled {
		s.line = section.Intersect(m, section.PlaneX(s.params.SectionOffset), section.DefaultTolerance)
	}
	s.diags = vessel.Diagnose(s.params)
	return s.result(true), nil
}

func (s *Studio) result(changed bool) Result {
	return Result{Changed: changed, Mesh: s.mesh, Metrics: s.metrics, Section: s.line}
}

func setField(p *vessel.Parameters, name string, v float64) bool {
	switch name {
	case "height":
		p.Height = v
	case "baseRadius":
		p.BaseRadius = v
	case "wallThickness":
		p.WallThickness = v
	case "bellyRadius":
		p.BellyRadius = v
	case "neckRadius":
		p.NeckRadius = v
	case "lipRadius":
		p.LipRadius = v
	case "neckHeightRatio":
		p.NeckHeightRatio = v
	case "profileBias":
		p.ProfileBias = v
	case "radialSegments":
		p.RadialSegments = int(math.Round(v))
	case "heightSegments":
		p.HeightSegments = int(math.Round(v))
	case "sectionOffset":
		p.SectionOffset = v
	default:
		return false
	}
	return true
}

func fieldValue(p vessel.Parameters, name string) (float64, bool) {
	switch name {
	case "height":
		return p.Height, true
	case "baseRadius":
		return p.BaseRadius, true
	case "wallThickness":
		return p.WallThickness, true
	case "bellyRadius":
		return p.BellyRadius, true
	case "neckRadius":
		return p.NeckRadius, true
	case "lipRadius":
		return p.LipRadius, true
	case "neckHeightRatio":
		return p.NeckHeightRatio, true
	case "profileBias":
		return p.ProfileBias, true
	case "radialSegments":
		return float64(p.RadialSegments), true
	case "heightSegments":
		return float64(p.HeightSegments), true
	case "sectionOffset":
		return p.SectionOffset, true
	}
	return 0, false
}
