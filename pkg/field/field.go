// Package field defines scalar fields that can be sampled onto a grid for
// isosurface extraction. The primitive constructors are backed by the
// github.com/deadsy/sdfx signed-distance CAD library, so a field built here
// is negative inside the solid, zero on its boundary, and positive outside.
package field

// Field is a continuous scalar field over 3-space.
type Field interface {
	// Evaluate returns the field value at a world coordinate.
	Evaluate(x, y, z float64) float64

	// BoundingBox returns an axis-aligned box outside of which the field's
	// zero crossing is guaranteed not to occur.
	BoundingBox() (min, max [3]float64)
}

// Func adapts a plain function plus explicit bounds into a Field. Useful for
// analytic test fields that have no sdfx representation.
type Func struct {
	Eval     func(x, y, z float64) float64
	Min, Max [3]float64
}

// Evaluate returns the field value at a world coordinate.
func (f *Func) Evaluate(x, y, z float64) float64 {
	return f.Eval(x, y, z)
}

// BoundingBox returns the declared bounds.
func (f *Func) BoundingBox() (min, max [3]float64) {
	return f.Min, f.Max
}

// Compile-time interface check.
var _ Field = (*Func)(nil)
