package recipe

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/amphora/pkg/vessel"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms recipe source before handing it to zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     This avoids registering keyword symbols as globals, which would
//     conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: base-radius -> base_radius for identifiers.
//     zygomys reads a hyphen inside an identifier as subtraction.
//
//  3. ; line comments become // comments, the form zygomys accepts.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments (and ;; style) to //.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword", preserving := assignment.
		if b[i] == ':' && i+1 < len(b) {
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Kebab-case identifiers: hyphen between identifier characters is a
		// word separator, not a minus operator.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string, returning the
// keyword name without the prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value, treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp, rounding floats to the nearest step.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		return int(math.Round(v.Val)), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// setFloat applies one optional keyword argument to a float field.
func setFloat(pa kwArgs, key, where string, dst *float64) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", where, key, err)
	}
	*dst = f
	return nil
}

// setInt applies one optional keyword argument to an int field.
func setInt(pa kwArgs, key, where string, dst *int) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", where, key, err)
	}
	*dst = n
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the vessel DSL into a zygomys environment. The
// builtins mutate the provided parameter record during evaluation; source
// must be preprocessed with preprocessSource first so :keyword tokens arrive
// as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, p *vessel.Parameters) {

	// -----------------------------------------------------------------------
	// (vessel :height 220 :base-radius 45 :wall 4)
	// -----------------------------------------------------------------------
	env.AddFunction("vessel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := setFloat(pa, "height", "vessel", &p.Height); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "base-radius", "vessel", &p.BaseRadius); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "wall", "vessel", &p.WallThickness); err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (belly :radius 62 :bias 1.2) — radius 0 selects straight walls
	// -----------------------------------------------------------------------
	env.AddFunction("belly", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := setFloat(pa, "radius", "belly", &p.BellyRadius); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "bias", "belly", &p.ProfileBias); err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (neck :radius 26 :height-ratio 0.35)
	// -----------------------------------------------------------------------
	env.AddFunction("neck", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := setFloat(pa, "radius", "neck", &p.NeckRadius); err != nil {
			return zygo.SexpNull, err
		}
		if err := setFloat(pa, "height-ratio", "neck", &p.NeckHeightRatio); err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (lip :radius 30)
	// -----------------------------------------------------------------------
	env.AddFunction("lip", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := setFloat(pa, "radius", "lip", &p.LipRadius); err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (resolution :radial 96 :height 110)
	// -----------------------------------------------------------------------
	env.AddFunction("resolution", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := setInt(pa, "radial", "resolution", &p.RadialSegments); err != nil {
			return zygo.SexpNull, err
		}
		if err := setInt(pa, "height", "resolution", &p.HeightSegments); err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (section :offset 10 :enabled true)
	// -----------------------------------------------------------------------
	env.AddFunction("section", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := setFloat(pa, "offset", "section", &p.SectionOffset); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["enabled"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("section: enabled: %w", err)
			}
			p.SectionEnabled = b
		}
		return zygo.SexpNull, nil
	})
}
