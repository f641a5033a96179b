package vessel

import (
	"fmt"
	"math"
)

// Mode selects how the silhouette is constructed.
type Mode int

const (
	ModeStraight Mode = iota // constant-radius wall, revolved primitives
	ModeCurved               // sampled profile curve with belly/neck/lip shaping
)

func (m Mode) String() string {
	switch m {
	case ModeStraight:
		return "straight"
	case ModeCurved:
		return "curved"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Parameters is the shape parameter record driving every rebuild. All lengths
// are millimeters. The record is externally owned and mutated field by field;
// Clamp must run before the record reaches any geometry routine.
type Parameters struct {
	Height        float64 `json:"height"`
	BaseRadius    float64 `json:"baseRadius"`
	WallThickness float64 `json:"wallThickness"`

	// Curved-profile shaping. BellyRadius > 0 switches the silhouette to
	// curved mode; the remaining fields are ignored in straight mode.
	BellyRadius     float64 `json:"bellyRadius"`
	NeckRadius      float64 `json:"neckRadius"`
	LipRadius       float64 `json:"lipRadius"`
	NeckHeightRatio float64 `json:"neckHeightRatio"`
	ProfileBias     float64 `json:"profileBias"`

	RadialSegments int `json:"radialSegments"`
	HeightSegments int `json:"heightSegments"`

	SectionEnabled bool    `json:"sectionEnabled"`
	SectionOffset  float64 `json:"sectionOffset"`
}

const (
	minHeight      = 1.0
	minRadius      = 1.0
	minWall        = 0.2
	minProfileBias = 0.1

	minRadialSegments         = 12
	minHeightSegmentsStraight = 1
	minHeightSegmentsCurved   = 8

	// Floor for the straight-mode inner radius, preventing a degenerate
	// or self-intersecting cavity when the wall approaches the base radius.
	innerRadiusFloor = 2.0

	minBottomThickness      = 2.0
	maxBottomThicknessRatio = 0.4

	minSectionLimit = 5.0
)

// DefaultParameters returns the classic amphora the studio opens with.
func DefaultParameters() Parameters {
	return Parameters{
		Height:          220,
		BaseRadius:      45,
		WallThickness:   4,
		BellyRadius:     62,
		NeckRadius:      26,
		LipRadius:       30,
		NeckHeightRatio: 0.35,
		ProfileBias:     1.2,
		RadialSegments:  96,
		HeightSegments:  110,
	}
}

// Clamp normalizes the record in place so that every invariant the geometry
// pipeline relies on holds: all lengths finite and positive, segment counts at
// or above their floors, the neck ratio inside (0,1), and the section offset
// inside its limit. Clamp is idempotent.
func (p *Parameters) Clamp() {
	def := DefaultParameters()

	p.Height = math.Max(finiteOr(p.Height, def.Height), minHeight)
	// Base floor matches the inner-radius floor so the cavity never outgrows
	// the wall it sits inside.
	p.BaseRadius = math.Max(finiteOr(p.BaseRadius, def.BaseRadius), innerRadiusFloor)
	p.WallThickness = math.Max(finiteOr(p.WallThickness, def.WallThickness), minWall)

	p.BellyRadius = finiteOr(p.BellyRadius, 0)
	if p.BellyRadius < 0 {
		p.BellyRadius = 0
	}
	if p.BellyRadius > 0 {
		p.BellyRadius = math.Max(p.BellyRadius, minRadius)
		p.NeckRadius = math.Max(finiteOr(p.NeckRadius, def.NeckRadius), minRadius)
		p.LipRadius = math.Max(finiteOr(p.LipRadius, def.LipRadius), minRadius)
		p.NeckHeightRatio = clampFloat(finiteOr(p.NeckHeightRatio, def.NeckHeightRatio), 0.05, 0.9)
		p.ProfileBias = math.Max(finiteOr(p.ProfileBias, def.ProfileBias), minProfileBias)
	}

	if p.RadialSegments < minRadialSegments {
		p.RadialSegments = minRadialSegments
	}
	minH := minHeightSegmentsStraight
	if p.Mode() == ModeCurved {
		minH = minHeightSegmentsCurved
	}
	if p.HeightSegments < minH {
		p.HeightSegments = minH
	}

	limit := p.SectionLimit()
	p.SectionOffset = clampFloat(finiteOr(p.SectionOffset, 0), -limit, limit)
}

// Mode reports whether the silhouette is a straight cylinder wall or a
// sampled curve. Belly shaping switches the mode.
func (p Parameters) Mode() Mode {
	if p.BellyRadius > 0 {
		return ModeCurved
	}
	return ModeStraight
}

// InnerRadius is the straight-mode cavity radius: wall thickness subtracted
// from the base radius, floored to keep the cavity real.
func (p Parameters) InnerRadius() float64 {
	return math.Max(p.BaseRadius-p.WallThickness, innerRadiusFloor)
}

// InnerGuard is the per-sample floor for curved-mode inner profile radii.
func (p Parameters) InnerGuard() float64 {
	return p.WallThickness * 0.25
}

// BottomThickness is the solid floor thickness: twice the wall, kept between
// 2 mm and 40% of the height. On vessels shorter than 5 mm the height cap
// wins over the 2 mm floor so the floor stays inside the vessel.
func (p Parameters) BottomThickness() float64 {
	hi := maxBottomThicknessRatio * p.Height
	return clampFloat(2*p.WallThickness, math.Min(minBottomThickness, hi), hi)
}

// InnerHeight is the straight-mode cavity height above the floor.
func (p Parameters) InnerHeight() float64 {
	return math.Max(p.Height-p.BottomThickness(), 0)
}

// SectionLimit bounds the cutting-plane offset so the plane stays inside the
// vessel wall. Never below 5 mm so the control stays usable on tiny vessels.
func (p Parameters) SectionLimit() float64 {
	return math.Max(p.BaseRadius-p.WallThickness, minSectionLimit)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
