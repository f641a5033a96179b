package vessel

import "math"

// ProfilePoint is one sample of a silhouette: radius at a height above the base.
type ProfilePoint struct {
	Radius float64
	Y      float64
}

// Profile is an ordered silhouette polyline, monotonically increasing in Y
// from 0 to the vessel height.
type Profile []ProfilePoint

// Profile samples the outer (inner=false) or inner (inner=true) silhouette.
//
// In curved mode the result has HeightSegments+1 points following the
// belly/neck/lip blend; the inner curve subtracts the wall thickness from
// every sample, floored at InnerGuard. In straight mode the silhouette is a
// constant radius and the result is the two-point wall edge (the shell
// builder revolves straight walls from primitives, not from samples); the
// inner edge starts at the floor height so a solid bottom fits below it.
func (p Parameters) Profile(inner bool) Profile {
	if p.Mode() == ModeStraight {
		if inner {
			r := p.InnerRadius()
			return Profile{{Radius: r, Y: p.BottomThickness()}, {Radius: r, Y: p.Height}}
		}
		return Profile{{Radius: p.BaseRadius, Y: 0}, {Radius: p.BaseRadius, Y: p.Height}}
	}

	n := p.HeightSegments
	prof := make(Profile, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		r := p.outerRadiusAt(t)
		if inner {
			// Floored at the guard, but never past the outer sample: an
			// oversized wall collapses to zero thickness, not an inverted one.
			r = math.Min(math.Max(r-p.WallThickness, p.InnerGuard()), r)
		}
		prof = append(prof, ProfilePoint{Radius: r, Y: t * p.Height})
	}
	return prof
}

// outerRadiusAt evaluates the curved silhouette at t in [0,1]. Three zones
// blend into each other: the lower body swells from the base radius to the
// belly radius, the neck contracts toward the neck radius, and the lip flares
// back out. The neck blend uses a softer exponent than the lip blend so the
// shoulder rolls over before the lip kicks out.
func (p Parameters) outerRadiusAt(t float64) float64 {
	body := lerp(p.BaseRadius, p.BellyRadius, math.Pow(math.Sin(math.Pi*t), p.ProfileBias))

	neckStart := 1 - clampFloat(p.NeckHeightRatio, 0.05, 0.9)
	if t < neckStart {
		return body
	}

	neckT := clampFloat((t-neckStart)/(1-neckStart), 0, 1)
	neckBlend := lerp(p.BellyRadius, p.NeckRadius, math.Pow(neckT, 0.85))
	lipBlend := lerp(p.NeckRadius, p.LipRadius, math.Pow(neckT, 1.6))
	return lerp(neckBlend, lipBlend, neckT)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
