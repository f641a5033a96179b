package vessel

import "fmt"

// Severity indicates whether a finding blocks a rebuild or is advisory.
type Severity int

const (
	SeverityError   Severity = iota // blocks a rebuild
	SeverityWarning                 // advisory
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic describes a single design finding against a parameter record.
type Diagnostic struct {
	Field    string
	Message  string
	Severity Severity
}

func (d Diagnostic) Error() string {
	if d.Field == "" {
		return fmt.Sprintf("[%s] %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Field, d.Message)
}

// Diagnose checks a clamped record for shapes that build fine but are likely
// not what the designer wants. Findings never block a rebuild; Clamp already
// guarantees buildable values, so errors here would indicate a broken clamp.
func Diagnose(p Parameters) []Diagnostic {
	var ds []Diagnostic

	if p.WallThickness < 1 {
		ds = append(ds, Diagnostic{
			Field:    "wallThickness",
			Message:  fmt.Sprintf("wall of %.2f mm is thinner than 1 mm and may not print", p.WallThickness),
			Severity: SeverityWarning,
		})
	}

	if p.Mode() == ModeStraight {
		if p.BaseRadius-p.WallThickness < innerRadiusFloor {
			ds = append(ds, Diagnostic{
				Field:    "wallThickness",
				Message:  fmt.Sprintf("wall consumes the base; cavity radius floored at %.0f mm", innerRadiusFloor),
				Severity: SeverityWarning,
			})
		}
	} else {
		if p.NeckRadius > p.BellyRadius {
			ds = append(ds, Diagnostic{
				Field:    "neckRadius",
				Message:  "neck is wider than the belly; the shoulder blend will invert",
				Severity: SeverityWarning,
			})
		}
		if p.LipRadius < p.NeckRadius {
			ds = append(ds, Diagnostic{
				Field:    "lipRadius",
				Message:  "lip is narrower than the neck; the rim will taper inward",
				Severity: SeverityWarning,
			})
		}
		if p.HeightSegments == minHeightSegmentsCurved {
			ds = append(ds, Diagnostic{
				Field:    "heightSegments",
				Message:  "vertical resolution at minimum; the profile curve will look faceted",
				Severity: SeverityWarning,
			})
		}
	}

	if p.RadialSegments == minRadialSegments {
		ds = append(ds, Diagnostic{
			Field:    "radialSegments",
			Message:  "radial resolution at minimum; the wall will look faceted",
			Severity: SeverityWarning,
		})
	}

	return ds
}
