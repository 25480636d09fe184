package engine

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/isomesh/pkg/field"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms isomesh Lisp source before passing it to
// zygomys:
//
//  1. ; line comments become // comments (zygomys uses // rather than the
//     traditional Lisp ;).
//
//  2. Kebab-case identifiers become underscore form (half-space ->
//     half_space), since zygomys reads a hyphen as the subtraction operator.
//
// Both transformations respect string literal boundaries.
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
		// Convert ; line comments to // comments.
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
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters (not a
		// minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
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

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpField wraps a field.Field so solids can be passed between builtins.
type sexpField struct {
	f field.Field
}

func (s *sexpField) SexpString(ps *zygo.PrintState) string {
	min, max := s.f.BoundingBox()
	return fmt.Sprintf("(field :bounds [%.1f %.1f %.1f]..[%.1f %.1f %.1f])",
		min[0], min[1], min[2], max[0], max[1], max[2])
}
func (s *sexpField) Type() *zygo.RegisteredType { return nil }

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

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toField extracts a field.Field from a sexpField.
func toField(s zygo.Sexp) (field.Field, error) {
	if f, ok := s.(*sexpField); ok {
		return f.f, nil
	}
	return nil, fmt.Errorf("expected field, got %T (%s)", s, s.SexpString(nil))
}

// floatArgs extracts exactly n numeric arguments.
func floatArgs(name string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s: expected %d arguments, got %d", name, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// fieldThenFloats extracts a field argument followed by exactly n numbers.
func fieldThenFloats(name string, args []zygo.Sexp, n int) (field.Field, []float64, error) {
	if len(args) != n+1 {
		return nil, nil, fmt.Errorf("%s: expected field plus %d numbers, got %d arguments", name, n, len(args))
	}
	f, err := toField(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	nums, err := floatArgs(name, args[1:], n)
	if err != nil {
		return nil, nil, err
	}
	return f, nums, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the field DSL into a zygomys environment. The
// builtins populate the provided Scene during evaluation.
func registerBuiltins(env *zygo.Zlisp, scene *Scene) {

	// (sphere radius)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		nums, err := floatArgs("sphere", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpField{f: field.Sphere(nums[0])}, nil
	})

	// (box x y z)
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		nums, err := floatArgs("box", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpField{f: field.Box(nums[0], nums[1], nums[2])}, nil
	})

	// (cylinder height radius)
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		nums, err := floatArgs("cylinder", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpField{f: field.Cylinder(nums[0], nums[1])}, nil
	})

	// (union a b ...)
	env.AddFunction("union", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("union: expected at least 2 fields, got %d", len(args))
		}
		acc, err := toField(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("union: %w", err)
		}
		for _, a := range args[1:] {
			f, err := toField(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("union: %w", err)
			}
			acc = field.Union(acc, f)
		}
		return &sexpField{f: acc}, nil
	})

	// (difference a b)
	env.AddFunction("difference", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("difference: expected 2 fields, got %d", len(args))
		}
		a, err := toField(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("difference: %w", err)
		}
		b, err := toField(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("difference: %w", err)
		}
		return &sexpField{f: field.Difference(a, b)}, nil
	})

	// (intersect a b)
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersect: expected 2 fields, got %d", len(args))
		}
		a, err := toField(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		b, err := toField(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		return &sexpField{f: field.Intersect(a, b)}, nil
	})

	// (translate f x y z)
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, nums, err := fieldThenFloats("translate", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpField{f: field.Translate(f, nums[0], nums[1], nums[2])}, nil
	})

	// (rotate f xdeg ydeg zdeg)
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, nums, err := fieldThenFloats("rotate", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpField{f: field.Rotate(f, nums[0], nums[1], nums[2])}, nil
	})

	// (surface f) — adds a field to the scene. Multiple calls union.
	env.AddFunction("surface", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("surface: expected 1 field, got %d", len(args))
		}
		f, err := toField(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("surface: %w", err)
		}
		if scene.Field == nil {
			scene.Field = f
		} else {
			scene.Field = field.Union(scene.Field, f)
		}
		return args[0], nil
	})

	// (isovalue v)
	env.AddFunction("isovalue", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		nums, err := floatArgs("isovalue", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		scene.Isovalue = nums[0]
		return zygo.SexpNull, nil
	})

	// (resolution n)
	env.AddFunction("resolution", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("resolution: expected 1 integer, got %d arguments", len(args))
		}
		n, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("resolution: %w", err)
		}
		if n < 2 {
			return zygo.SexpNull, fmt.Errorf("resolution: need at least 2 points per axis, got %d", n)
		}
		scene.Resolution = n
		return zygo.SexpNull, nil
	})
}
